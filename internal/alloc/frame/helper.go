package frame

// CreateTestFrame builds a frame already holding the given pages.
// Pages that do not fit are dropped.
func CreateTestFrame(size int, pages ...int) *Frame {
	f := New(size)
	for _, p := range pages {
		_ = f.Place(p)
	}
	return f
}
