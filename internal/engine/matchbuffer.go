package engine

// MatchBuffer is (buffer, bufferlen, styles, styles_cursor) from §3: a
// mutable byte buffer together with its pending style ranges and a
// bidirectional cursor over them. Each RemarkInput holds three independent
// match buffers: main, append and prepend.
type MatchBuffer struct {
	Buf    *Buffer
	Styles StyleList
	cursor int
}

// NewMatchBuffer creates a MatchBuffer over text, with an empty style list.
func NewMatchBuffer(text string) *MatchBuffer {
	return &MatchBuffer{Buf: NewBuffer(text)}
}

// Reset clears the buffer back to text and empties the style list and
// cursor, as done between lines for a reused RemarkInput.
func (mb *MatchBuffer) Reset(text string) {
	mb.Buf.Set(text)
	mb.Styles.Clear()
	mb.cursor = 0
}

// RootState returns a fresh root MatchState spanning the whole buffer.
func (mb *MatchBuffer) RootState() *MatchState {
	return &MatchState{
		MBuf: mb,
		Subv: []Span{{So: 0, Eo: mb.Buf.Len()}},
	}
}

// CursorReset rewinds the style cursor to the start of the list, used by
// the wrapper at the start of each emission pass.
func (mb *MatchBuffer) CursorReset() {
	mb.cursor = 0
}

// CursorPeek returns the range at the current cursor position and whether
// one exists.
func (mb *MatchBuffer) CursorPeek() (StyleRange, bool) {
	items := mb.Styles.Ranges()
	if mb.cursor < 0 || mb.cursor >= len(items) {
		return StyleRange{}, false
	}
	return items[mb.cursor], true
}

// CursorNext advances the cursor by one and returns the range it now
// points to, if any. Together with CursorPeek and CursorPrev this is the
// "forward iterator" referenced in §9. The wrapper itself only walks
// forward (CursorReset, CursorPeek, CursorAdvance) and never calls
// CursorPrev.
func (mb *MatchBuffer) CursorNext() (StyleRange, bool) {
	mb.cursor++
	return mb.CursorPeek()
}

// CursorPrev rewinds the cursor by one.
func (mb *MatchBuffer) CursorPrev() {
	if mb.cursor > 0 {
		mb.cursor--
	}
}

// CursorAdvance moves the cursor forward by one without returning anything,
// used when a caller has already inspected the range at CursorPeek and
// decided to consume it.
func (mb *MatchBuffer) CursorAdvance() {
	mb.cursor++
}

// CursorPos returns the cursor's raw index, mostly useful for tests.
func (mb *MatchBuffer) CursorPos() int {
	return mb.cursor
}
