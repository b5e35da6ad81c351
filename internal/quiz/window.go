package quiz

// RecentCapacity bounds the no-repeat window: only the most recently
// asked question texts participate in exact-match suppression.
const RecentCapacity = 25

// RecentWindow is a bounded, ordered list of the most recently asked
// question texts. Inserting beyond capacity evicts the oldest entry.
type RecentWindow struct {
	texts []string
	cap   int
}

// NewRecentWindow creates a window with the standard capacity.
func NewRecentWindow() *RecentWindow {
	return &RecentWindow{cap: RecentCapacity}
}

// Add appends text, evicting the oldest entry when full.
func (w *RecentWindow) Add(text string) {
	w.texts = append(w.texts, text)
	if len(w.texts) > w.cap {
		w.texts = w.texts[len(w.texts)-w.cap:]
	}
}

// Contains reports whether text is in the window (exact equality).
func (w *RecentWindow) Contains(text string) bool {
	for _, t := range w.texts {
		if t == text {
			return true
		}
	}
	return false
}

// Items returns the window contents, oldest first.
func (w *RecentWindow) Items() []string {
	out := make([]string, len(w.texts))
	copy(out, w.texts)
	return out
}

// Len returns the number of texts currently held.
func (w *RecentWindow) Len() int {
	return len(w.texts)
}
