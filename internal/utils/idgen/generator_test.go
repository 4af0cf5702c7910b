package idgen

import "testing"

func TestRandomString(t *testing.T) {
	tests := []struct {
		name    string
		length  int
		wantErr bool
	}{
		{name: "storage key suffix", length: 6},
		{name: "single char", length: 1},
		{name: "long", length: 32},
		{name: "zero length", length: 0, wantErr: true},
		{name: "negative length", length: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RandomString(tt.length)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RandomString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != tt.length {
				t.Errorf("RandomString() length = %d, want %d", len(got), tt.length)
			}
			for _, char := range got {
				if !((char >= 'a' && char <= 'z') || (char >= '0' && char <= '9')) {
					t.Errorf("RandomString() contains invalid character: %c", char)
				}
			}
		})
	}
}

func TestRandomString_Distinct(t *testing.T) {
	const iterations = 10000
	seen := make(map[string]bool, iterations)

	for i := 0; i < iterations; i++ {
		s, err := RandomString(12)
		if err != nil {
			t.Fatalf("RandomString() error = %v", err)
		}
		if seen[s] {
			t.Errorf("RandomString() produced duplicate: %v", s)
		}
		seen[s] = true
	}
}
