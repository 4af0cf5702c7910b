package media

import "sync"

// recentWindow keeps the latest successful uploads of this process for the
// admin screen. It is display state only; the repository is authoritative.
type recentWindow struct {
	mu    sync.Mutex
	size  int
	items []UploadedAsset
}

func newRecentWindow(size int) *recentWindow {
	if size <= 0 {
		size = 20
	}
	return &recentWindow{size: size}
}

func (w *recentWindow) add(asset UploadedAsset) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.items = append(w.items, asset)
	if over := len(w.items) - w.size; over > 0 {
		w.items = append(w.items[:0:0], w.items[over:]...)
	}
}

// list returns up to limit entries, newest first.
func (w *recentWindow) list(limit int) []UploadedAsset {
	w.mu.Lock()
	defer w.mu.Unlock()
	if limit <= 0 || limit > len(w.items) {
		limit = len(w.items)
	}
	out := make([]UploadedAsset, 0, limit)
	for i := len(w.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, w.items[i])
	}
	return out
}
