package engine

// ApplyMutation replaces [lo, lo+oldLen) of the match state's buffer with
// new and propagates the position-update law of §4.6 to every submatch span
// of state and its ancestor chain, and to the buffer's style list.
//
// The law, applied independently to each endpoint p of every span:
//   - if the span is zero-width and p == lo: the end grows with the
//     mutation (eo <- max(eo+diff, lo)), so a zero-width marker sitting
//     exactly at an insertion point comes to cover the inserted text.
//   - otherwise, if p > lo, or p == lo and p is a "boundary" endpoint (the
//     outermost scope's eo, or a style range's eo): p <- max(p+diff, lo).
//   - endpoints strictly below lo are untouched.
//
// Propagation walks the parent chain; siblings of ancestors are never
// touched (see spec.md §9 Open Question (a)).
func ApplyMutation(state *MatchState, lo, oldLen int, new []byte) (diff int) {
	diff = state.MBuf.Buf.Replace(lo, oldLen, new)
	if diff != 0 {
		propagate(state, lo, diff)
		adjustStyleList(&state.MBuf.Styles, lo, diff)
	}
	return diff
}

func propagate(state *MatchState, lo, diff int) {
	for cur := state; cur != nil; cur = cur.Parent {
		isRoot := cur.Parent == nil
		for idx := range cur.Subv {
			boundary := isRoot && idx == 0
			cur.Subv[idx] = adjustSpan(cur.Subv[idx], lo, diff, boundary)
		}
	}
}

func adjustSpan(sp Span, lo, diff int, eoIsBoundary bool) Span {
	if sp.Unmatched() {
		return sp
	}

	if sp.So == sp.Eo && sp.So == lo {
		newEo := sp.Eo + diff
		if newEo < lo {
			newEo = lo
		}
		return Span{So: sp.So, Eo: newEo}
	}

	newSo := sp.So
	if sp.So > lo {
		newSo = clampMax(sp.So+diff, lo)
	}

	newEo := sp.Eo
	if sp.Eo > lo || (sp.Eo == lo && eoIsBoundary) {
		newEo = clampMax(sp.Eo+diff, lo)
	}

	return Span{So: newSo, Eo: newEo}
}

func adjustStyleList(l *StyleList, lo, diff int) {
	for i, r := range l.items {
		sp := adjustSpan(Span{So: r.So, Eo: r.Eo}, lo, diff, true)
		l.items[i].So = sp.So
		l.items[i].Eo = sp.Eo
	}
}

func clampMax(v, floor int) int {
	if v < floor {
		return floor
	}
	return v
}
