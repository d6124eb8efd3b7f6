package engine

// StyleRange is a half-open [So, Eo) byte span tagged with a style,
// pending materialisation by the wrapper. Ranges with So == Eo are
// zero-width markers and are permitted.
type StyleRange struct {
	So, Eo int
	Style  *Style
}

// StyleList is the ordered list of StyleRange for one match buffer. It is
// kept sorted by (So, Eo) ascending with no two ranges partially
// overlapping: any overlap has been split into aligned coincident segments
// or nested disjoint segments (§4.2 of the design).
type StyleList struct {
	items []StyleRange
}

// Ranges returns the current ranges in sorted order. The slice is owned by
// the StyleList; callers must not mutate it.
func (l *StyleList) Ranges() []StyleRange {
	return l.items
}

// Len returns the number of ranges currently in the list.
func (l *StyleList) Len() int {
	return len(l.items)
}

// Clear empties the list, used between lines when a match buffer is reused.
func (l *StyleList) Clear() {
	l.items = l.items[:0]
}

// runBounds returns the contiguous index range [start, end) of entries
// sharing the exact span (lo, hi). Because the list invariant guarantees
// ranges sharing a span are always adjacent (sorted by (so, eo), and a
// shared span sorts identically), a single linear scan suffices.
func runBounds(items []StyleRange, lo, hi int) (start, end int) {
	start = -1
	for i, r := range items {
		if r.So == lo && r.Eo == hi {
			if start == -1 {
				start = i
			}
			end = i + 1
		} else if start != -1 {
			break
		}
	}
	if start == -1 {
		// Insertion point: first index whose span sorts after (lo,hi).
		for i, r := range items {
			if r.So > lo || (r.So == lo && r.Eo > hi) {
				return i, i
			}
		}
		return len(items), len(items)
	}
	return start, end
}

// splitRun splits every range in the coincident run sharing span (lo, hi)
// into two ranges at cut: (lo, cut) and (cut, hi), preserving each
// original range's style and the overall sort order (all first halves
// precede all second halves, since lo < cut <= hi puts their `so` strictly
// before the second halves' `so`).
func splitRun(items []StyleRange, lo, hi, cut int) []StyleRange {
	start, end := runBounds(items, lo, hi)
	if start == end {
		return items
	}
	run := items[start:end]
	firstHalves := make([]StyleRange, len(run))
	secondHalves := make([]StyleRange, len(run))
	for i, r := range run {
		firstHalves[i] = StyleRange{So: lo, Eo: cut, Style: r.Style}
		secondHalves[i] = StyleRange{So: cut, Eo: hi, Style: r.Style}
	}

	out := make([]StyleRange, 0, len(items)+len(run))
	out = append(out, items[:start]...)
	out = append(out, firstHalves...)
	out = append(out, secondHalves...)
	out = append(out, items[end:]...)
	return out
}

// insertAfterRun inserts r immediately after the coincident run sharing
// span (lo, hi), returning the new list and the index r now occupies.
func insertAfterRun(items []StyleRange, lo, hi int, r StyleRange) ([]StyleRange, int) {
	_, end := runBounds(items, lo, hi)
	out := make([]StyleRange, 0, len(items)+1)
	out = append(out, items[:end]...)
	out = append(out, r)
	out = append(out, items[end:]...)
	return out, end
}

// insertBefore inserts r at index idx, shifting everything from idx
// onward to the right by one.
func insertBefore(items []StyleRange, idx int, r StyleRange) []StyleRange {
	out := make([]StyleRange, 0, len(items)+1)
	out = append(out, items[:idx]...)
	out = append(out, r)
	out = append(out, items[idx:]...)
	return out
}

// Insert adds s1 to the list, applying the casework of §4.2: walk existing
// ranges in order and apply the first applicable case; cases that extend
// across several existing ranges mutate a local copy of s1 and continue.
func (l *StyleList) Insert(s1 StyleRange) {
	l.items = insert(l.items, s1)
}

func insert(items []StyleRange, s1 StyleRange) []StyleRange {
	origLo := s1.So
	i := 0

	for i < len(items) {
		s2 := items[i]
		lo1, hi1 := s1.So, s1.Eo
		lo2, hi2 := s2.So, s2.Eo

		if lo1 == hi1 {
			switch {
			case lo1 == hi2:
				// Z1
				items, _ = insertAfterRun(items, lo2, hi2, s1)
				return items
			case lo2 < lo1 && lo1 < hi2:
				// Z2
				items = splitRun(items, lo2, hi2, lo1)
				items, _ = insertAfterRun(items, lo2, lo1, s1)
				return items
			case lo2 == hi2 && lo1 == lo2:
				// Z3
				if lo1 > origLo {
					clone := StyleRange{So: lo2, Eo: hi2, Style: s2.Style}
					var at int
					items, at = insertAfterRun(items, lo2, hi2, clone)
					i = at + 1
					continue
				}
				i++
				continue
			default:
				i++
				continue
			}
		}

		switch {
		case hi1 <= lo2:
			// Disjoint before.
			return insertBefore(items, i, s1)

		case lo1 == lo2 && hi1 == hi2:
			// Exact alignment (1).
			items, _ = insertAfterRun(items, lo2, hi2, s1)
			return items

		case lo1 == lo2 && hi1 < hi2:
			// Prefix (2a).
			items = splitRun(items, lo2, hi2, hi1)
			items, _ = insertAfterRun(items, lo2, hi1, s1)
			return items

		case lo1 > lo2 && hi1 == hi2:
			// Suffix (2b).
			items = splitRun(items, lo2, hi2, lo1)
			items, _ = insertAfterRun(items, lo1, hi2, s1)
			return items

		case lo1 > lo2 && hi1 < hi2:
			// Interior (2c).
			items = splitRun(items, lo2, hi2, lo1)
			items = splitRun(items, lo1, hi2, hi1)
			items, _ = insertAfterRun(items, lo1, hi1, s1)
			return items

		case lo1 == lo2 && hi1 > hi2:
			// Extends right (3a).
			var at int
			items, at = insertAfterRun(items, lo2, hi2, StyleRange{So: lo2, Eo: hi2, Style: s1.Style})
			s1.So = hi2
			i = at + 1
			continue

		case lo1 < lo2 && hi1 == hi2:
			// Extends left (3b).
			items = insertBefore(items, i, StyleRange{So: lo1, Eo: lo2, Style: s1.Style})
			items, _ = insertAfterRun(items, lo2, hi2, StyleRange{So: lo2, Eo: hi2, Style: s1.Style})
			return items

		case lo1 < lo2 && hi1 > hi2:
			// Straddles (3c).
			items = insertBefore(items, i, StyleRange{So: lo1, Eo: lo2, Style: s1.Style})
			var at int
			items, at = insertAfterRun(items, lo2, hi2, StyleRange{So: lo2, Eo: hi2, Style: s1.Style})
			s1.So = hi2
			i = at + 1
			continue

		case lo1 < lo2 && hi1 > lo2 && hi1 < hi2:
			// Overhangs right (4a).
			items = insertBefore(items, i, StyleRange{So: lo1, Eo: lo2, Style: s1.Style})
			items = splitRun(items, lo2, hi2, hi1)
			items, _ = insertAfterRun(items, lo2, hi1, s1)
			return items

		case lo2 < lo1 && hi2 > lo1 && hi2 < hi1:
			// Overhangs left (4b).
			items = splitRun(items, lo2, hi2, lo1)
			var at int
			items, at = insertAfterRun(items, lo1, hi2, StyleRange{So: lo1, Eo: hi2, Style: s1.Style})
			s1.So = hi2
			i = at + 1
			continue

		default:
			i++
		}
	}

	return append(items, s1)
}
