package engine

import (
	"math"
	"sort"
)

// WrapMode selects how the wrapper breaks an overlong line into segments
// (§4.8).
type WrapMode int

const (
	WrapNone WrapMode = iota
	WrapChar
	WrapWord
)

// WrapOptions configures one call to Emit: the target width, how many bytes
// of the first segment to repeat as a prefix on every continuation segment,
// and the literal prepend/append strings materialised at segment
// boundaries.
type WrapOptions struct {
	Width   int
	Retain  int
	Prepend string
	Append  string
	Mode    WrapMode
}

// styleGroup is a run of StyleRange sharing the exact same span, which the
// list invariant (§4.2) guarantees are always adjacent. Coincident styles
// open in declaration order and close in reverse, so that nesting inverts.
type styleGroup struct {
	So, Eo int
	Styles []*Style
}

type pendingInsert struct {
	pos int // original (pre-wrap) coordinate
	b   []byte
}

type eventKind int

const (
	eventOpen eventKind = iota
	eventClose
)

// styleEvent is one pre- or post-string to splice into the plain buffer at
// byte position Pos, in original (pre-wrap, pre-materialisation)
// coordinates.
type styleEvent struct {
	Pos  int
	Str  string
	Kind eventKind
}

// styleEvents walks mb's style list once and reduces it to the open/close
// events needed to render it correctly. A style range list may carry the
// same style across several adjacent, exact-span groups -- that is how
// §4.2's splitting keeps a style's nesting relationship with an inner style
// consistent (scenario 4's s1 becomes the three groups [0,1), [1,3), [3,4)
// around s2's [1,3)) -- and naively opening/closing at every group boundary
// would emit the pre/post strings once per fragment instead of once for the
// whole logical span. Adjacent groups that both carry a style, with no gap
// between them, are therefore treated as one continuous run: the style
// opens once at the first such group's So and closes once at the last
// one's Eo. This also gives wrap-boundary continuity for free: a style
// still open when a segment ends simply has its close event land in a
// later segment, with no separate bookkeeping for "already opened".
func styleEvents(mb *MatchBuffer) []styleEvent {
	return styleEventsUpTo(mb, math.MaxInt32)
}

// styleEventsUpTo is styleEvents but stops considering groups starting at or
// after hi, force-closing whatever is still open at hi. Used by
// materialiseRetain to render a self-contained prefix even when a style's
// true close lies beyond the retained window.
func styleEventsUpTo(mb *MatchBuffer, hi int) []styleEvent {
	mb.CursorReset()
	var events []styleEvent
	var stack []*Style

	closeFrom := func(k, pos int) {
		for len(stack) > k {
			top := stack[len(stack)-1]
			events = append(events, styleEvent{Pos: pos, Str: top.PostString, Kind: eventClose})
			stack = stack[:len(stack)-1]
		}
	}

	prevEo := -1
	for {
		g, ok := nextGroup(mb)
		if !ok || g.So >= hi {
			break
		}
		if prevEo >= 0 && g.So != prevEo {
			closeFrom(0, prevEo)
		}

		k := 0
		for k < len(stack) && k < len(g.Styles) && stack[k] == g.Styles[k] {
			k++
		}
		closeFrom(k, g.So)
		for _, st := range g.Styles[k:] {
			events = append(events, styleEvent{Pos: g.So, Str: st.PreString, Kind: eventOpen})
			stack = append(stack, st)
		}
		prevEo = g.Eo
		if prevEo >= hi {
			prevEo = hi
			break
		}
	}
	if prevEo < 0 || prevEo > hi {
		prevEo = hi
	}
	closeFrom(0, prevEo)

	sort.SliceStable(events, func(i, j int) bool { return events[i].Pos < events[j].Pos })
	return events
}

// Emit runs the wrapper/emitter (§4.8) over the main buffer of ri, producing
// the final, newline-terminated text for one input line: styles
// materialised as literal pre/post strings, content split into width-bound
// segments, and prepend/append/retain literals inserted at each break.
func Emit(ri *RemarkInput, opts WrapOptions) string {
	mb := ri.Main

	if mb.Buf.Len() == 0 {
		materialiseAll(mb)
		mb.Buf.Insert(mb.Buf.Len(), []byte("\n"))
		return mb.Buf.String()
	}

	events := styleEvents(mb)
	eventIdx := 0

	var retainBuf []byte
	if opts.Retain > 0 {
		retainBuf = materialiseRetain(mb, opts.Retain)
	}

	effectiveWidth := opts.Width
	if opts.Mode == WrapNone || effectiveWidth <= 0 {
		effectiveWidth = math.MaxInt32
	}

	prependBytes := []byte(opts.Prepend)
	appendBytes := []byte(opts.Append)

	sp := 0
	mod := 0
	length := mb.Buf.Len()
	first := true

	for sp < length {
		ep := sp + effectiveWidth
		if ep > length {
			ep = length
		}
		notLast := ep < length
		if notLast {
			ep -= len(appendBytes)
			if ep < sp {
				ep = sp
			}
		}

		if opts.Mode != WrapNone && ep < length && ep > sp && mb.Buf.CharAt(ep) != ' ' {
			if opts.Mode == WrapWord {
				t := lastSpaceBefore(mb.Buf, sp, ep)
				if t >= 0 {
					u := nextSpaceAtOrAfter(mb.Buf, ep, length)
					end := u
					if end < 0 {
						end = length
					}
					nextWidth := effectiveWidth
					if first {
						nextWidth -= opts.Retain + len(prependBytes)
					}
					if end-t-1 <= nextWidth {
						// Land the break exactly on the space so the
						// space-run deletion below swallows the
						// separator instead of carrying it into this
						// segment's content.
						ep = t
					}
				}
				// No space found at all: fall through to character wrap
				// at the width limit, per the design note on pathological
				// single-word-overlong input.
			}
		}

		// baseMod is the original->current translator for every position
		// at or before ep (sp, ep itself, and every pending style event,
		// all of which precede the space run about to be deleted). The
		// deletion only ever removes bytes at or after ep, so it can
		// never invalidate positions computed against baseMod.
		baseMod := mod
		oEp := ep - baseMod

		deletedLen := 0
		if ep < length {
			runEnd := ep
			for runEnd < length && mb.Buf.CharAt(runEnd) == ' ' {
				runEnd++
			}
			if runEnd > ep {
				diff := mb.Buf.Delete(ep, runEnd)
				deletedLen = runEnd - ep
				length += diff
			}
		}

		// cur tracks ep's current-buffer position as subsequent inserts
		// (all at or before ep) shift it rightward. ep itself is still
		// valid post-deletion: the deletion only removed bytes strictly
		// after it.
		cur := ep

		var inserts []pendingInsert
		for eventIdx < len(events) {
			ev := events[eventIdx]
			if ev.Pos > oEp || (ev.Pos == oEp && ev.Kind == eventOpen) {
				break
			}
			inserts = append(inserts, pendingInsert{pos: ev.Pos, b: []byte(ev.Str)})
			eventIdx++
		}
		sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].pos < inserts[j].pos })
		for _, ins := range inserts {
			pos := ins.pos + baseMod
			mb.Buf.Insert(pos, ins.b)
			baseMod += len(ins.b)
			cur += len(ins.b)
		}

		epCur := cur

		if sp > 0 {
			mb.Buf.Insert(sp, prependBytes)
			epCur += len(prependBytes)
		}
		if sp > 0 && retainBuf != nil {
			mb.Buf.Insert(sp, retainBuf)
			epCur += len(retainBuf)
		}
		if notLast {
			mb.Buf.Insert(epCur, appendBytes)
			epCur += len(appendBytes)
		}
		mb.Buf.Insert(epCur, []byte("\n"))
		epCur += 1

		if first {
			effectiveWidth -= opts.Retain + len(prependBytes)
			if effectiveWidth < 1 {
				effectiveWidth = 1
			}
			first = false
		}

		// mod must map the next iteration's sp (== epCur) back to its
		// original coordinate: the segment's original end, advanced past
		// whatever the space-run deletion consumed.
		mod = epCur - (oEp + deletedLen)

		sp = epCur
		length = mb.Buf.Len()
	}

	return mb.Buf.String()
}

// nextGroup consumes one run of coincident StyleRange from mb's cursor and
// returns it as a styleGroup, or ok=false if the cursor is exhausted.
func nextGroup(mb *MatchBuffer) (styleGroup, bool) {
	r, ok := mb.CursorPeek()
	if !ok {
		return styleGroup{}, false
	}
	so, eo := r.So, r.Eo
	g := styleGroup{So: so, Eo: eo}
	for {
		r, ok := mb.CursorPeek()
		if !ok || r.So != so || r.Eo != eo {
			break
		}
		g.Styles = append(g.Styles, r.Style)
		mb.CursorAdvance()
	}
	return g, true
}

// materialiseAll renders every style range in mb onto its own buffer in
// place, ignoring width: used for the empty-line case and for immediately
// resolving the prepend/append rule trees in the script runtime (§4.7,
// where the call is described as "materialise with ep = infinity").
func materialiseAll(mb *MatchBuffer) {
	events := styleEvents(mb)
	mod := 0
	for _, ev := range events {
		b := []byte(ev.Str)
		mb.Buf.Insert(ev.Pos+mod, b)
		mod += len(b)
	}
}

// materialiseRetain renders the styled form of mb's first retainLen bytes
// into a detached byte slice, leaving mb untouched. This is the "retain
// buffer" constructed once up front and then reinserted verbatim at the
// start of every continuation segment. Any style still open at retainLen
// is force-closed there, since the retain buffer is a standalone rendering
// with no later segment to carry the close into.
func materialiseRetain(mb *MatchBuffer, retainLen int) []byte {
	if retainLen > mb.Buf.Len() {
		retainLen = mb.Buf.Len()
	}
	content := mb.Buf.Slice(0, retainLen)

	var inserts []pendingInsert
	for _, ev := range styleEventsUpTo(mb, retainLen) {
		inserts = append(inserts, pendingInsert{pos: ev.Pos, b: []byte(ev.Str)})
	}
	sort.SliceStable(inserts, func(i, j int) bool { return inserts[i].pos < inserts[j].pos })

	out := make([]byte, 0, len(content))
	ci := 0
	for _, ins := range inserts {
		out = append(out, content[ci:ins.pos]...)
		out = append(out, ins.b...)
		ci = ins.pos
	}
	out = append(out, content[ci:]...)
	return out
}

func lastSpaceBefore(buf *Buffer, sp, ep int) int {
	for i := ep - 1; i >= sp; i-- {
		if buf.CharAt(i) == ' ' {
			return i
		}
	}
	return -1
}

func nextSpaceAtOrAfter(buf *Buffer, from, length int) int {
	for i := from; i < length; i++ {
		if buf.CharAt(i) == ' ' {
			return i
		}
	}
	return -1
}
