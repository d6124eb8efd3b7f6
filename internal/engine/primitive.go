package engine

import "regexp"

// Primitive is a compiled match primitive: either a regex match or a
// submatch back-reference (§4.3).
type Primitive interface {
	// tryMatch attempts to match starting at or after start, within
	// parent's scope. It returns a child state (subv[0] the match span,
	// subv[1:] regex sub-captures) or ok=false if no match. nextStart is
	// where a subsequent call should resume from to make progress
	// (guaranteeing global-iteration advancement on empty matches).
	tryMatch(parent *MatchState, start int) (child *MatchState, nextStart int, ok bool)
}

// RegexPrimitive is a compiled POSIX-extended-flavoured regex matched
// against a byte window [start, scope.Eo) of the current buffer. regexp's
// RE2 engine is the closest stdlib analogue to a compiled extended regex
// matcher and is what every regex-consuming file in the teacher and the
// retrieval pack builds on (see SPEC_FULL.md's DOMAIN STACK table).
type RegexPrimitive struct {
	Source     string
	Re         *regexp.Regexp
	IgnoreCase bool
	Global     bool
}

// CompileRegex compiles pattern, folding IgnoreCase into the RE2 flag
// syntax understood by regexp.Compile.
func CompileRegex(pattern string, ignoreCase, global bool) (*RegexPrimitive, error) {
	src := pattern
	if ignoreCase {
		src = "(?i)" + src
	}
	re, err := regexp.Compile(src)
	if err != nil {
		return nil, err
	}
	return &RegexPrimitive{Source: pattern, Re: re, IgnoreCase: ignoreCase, Global: global}, nil
}

func (p *RegexPrimitive) tryMatch(parent *MatchState, start int) (*MatchState, int, bool) {
	scope := parent.Scope()
	if start < scope.So {
		start = scope.So
	}
	if start > scope.Eo {
		return nil, start, false
	}

	window := parent.MBuf.Buf.Slice(start, scope.Eo)
	locs := p.Re.FindSubmatchIndex(window)
	if locs == nil {
		return nil, start, false
	}

	subv := make([]Span, len(locs)/2)
	for i := 0; i < len(subv); i++ {
		so, eo := locs[2*i], locs[2*i+1]
		if so < 0 || eo < 0 {
			subv[i] = Span{So: -1, Eo: -1}
			continue
		}
		subv[i] = Span{So: start + so, Eo: start + eo}
	}

	child := parent.Child(subv)

	next := subv[0].Eo
	if subv[0].So == subv[0].Eo {
		// Empty match: advance by one extra byte to guarantee progress
		// for global iteration, per the design note in §9.
		next++
	}
	return child, next, true
}

// BackrefPrimitive references submatch k of the enclosing match state.
// It fails if k is out of range or the slot is unmatched, and otherwise
// yields exactly the referenced submatch's span as a single-element subv
// (a back-reference has no sub-captures of its own).
type BackrefPrimitive struct {
	K int
}

func (p *BackrefPrimitive) tryMatch(parent *MatchState, start int) (*MatchState, int, bool) {
	sp := parent.Submatch(p.K)
	if sp.Unmatched() {
		return nil, start, false
	}
	if sp.So < start {
		return nil, start, false
	}

	child := parent.Child([]Span{sp})
	next := sp.Eo
	if sp.So == sp.Eo {
		next++
	}
	return child, next, true
}
