package media

// suggestedCategories is the fixed set offered by the admin UI. Categories are
// free-form; this list only seeds the picker.
var suggestedCategories = []CategoryUsage{
	{ID: "general", Name: "General", Description: "General website media"},
	{ID: "hero-images", Name: "Hero Images", Description: "Homepage and banner images"},
	{ID: "service-photos", Name: "Service Photos", Description: "Investigation service images"},
	{ID: "team-photos", Name: "Team Photos", Description: "Staff and team member photos"},
	{ID: "testimonials", Name: "Testimonials", Description: "Client testimonial media"},
	{ID: "case-studies", Name: "Case Studies", Description: "Investigation case study materials"},
	{ID: "blog-media", Name: "Blog Media", Description: "Blog post images and videos"},
	{ID: "legal-documents", Name: "Legal Documents", Description: "Legal and compliance files"},
}

// SuggestedCategories returns a copy of the admin UI's category list.
func SuggestedCategories() []CategoryUsage {
	out := make([]CategoryUsage, len(suggestedCategories))
	for i, c := range suggestedCategories {
		c.Suggested = true
		out[i] = c
	}
	return out
}
