package engine

// Span is a submatch's byte offsets into the current match buffer,
// half-open [So, Eo). A value of -1 on either side means "not matched".
type Span struct {
	So, Eo int
}

// Unmatched reports whether the span represents an unmatched submatch slot.
func (s Span) Unmatched() bool {
	return s.So < 0 || s.Eo < 0
}

// Len returns the byte length of the span, or 0 if unmatched.
func (s Span) Len() int {
	if s.Unmatched() {
		return 0
	}
	return s.Eo - s.So
}

// MatchState is one frame of the match-state stack described in §3/§9: a
// pointer to the enclosing match buffer, an optional parent state, and a
// vector of submatch spans with Subv[0] being the whole-scope span. States
// form a stack walked when offsets are edited (see posupdate.go); the
// pointer from child to parent is a borrow, never ownership. (The §9 note
// against child-to-parent back-pointers concerns the rule tree, not this
// match-state stack.)
type MatchState struct {
	MBuf   *MatchBuffer
	Parent *MatchState
	Subv   []Span
}

// Scope returns the byte range this state operates over (Subv[0]).
func (ms *MatchState) Scope() Span {
	return ms.Subv[0]
}

// Submatch returns submatch k, or an unmatched Span if k is out of range.
func (ms *MatchState) Submatch(k int) Span {
	if k < 0 || k >= len(ms.Subv) {
		return Span{So: -1, Eo: -1}
	}
	return ms.Subv[k]
}

// IsRoot reports whether this state has no parent, i.e. it is the
// outermost scope for its match buffer.
func (ms *MatchState) IsRoot() bool {
	return ms.Parent == nil
}

// ParentScope returns the parent state's scope, or the full buffer extent
// if this state is already the root.
func (ms *MatchState) ParentScope() Span {
	if ms.Parent != nil {
		return ms.Parent.Scope()
	}
	return Span{So: 0, Eo: ms.MBuf.Buf.Len()}
}

// Child creates a new match state scoped under ms with the given submatch
// vector (subv[0] is the match span, subv[1:] the regex sub-captures).
func (ms *MatchState) Child(subv []Span) *MatchState {
	return &MatchState{MBuf: ms.MBuf, Parent: ms, Subv: subv}
}
