package engine

// Execute interprets rule against state, returning the Action it yields
// per §4.4.
func Execute(rule *Rule, state *MatchState) Action {
	if rule == nil {
		return Continue
	}

	switch rule.Kind {
	case KindMulti:
		return execMulti(rule, state)
	case KindMacroRef:
		return Execute(rule.MacroTarget, state)
	case KindStyle:
		return execStyle(rule, state)
	case KindAction:
		return rule.ActionValue
	case KindSubst:
		return execSubst(rule, state)
	case KindSet:
		return execSet(rule, state)
	case KindMatch:
		return execMatch(rule, state)
	default:
		return Continue
	}
}

func execMulti(rule *Rule, state *MatchState) Action {
	for _, child := range rule.Children {
		if act := Execute(child, state); act != Continue {
			return act
		}
	}
	return Continue
}

func execStyle(rule *Rule, state *MatchState) Action {
	sc := state.Scope()
	state.MBuf.Styles.Insert(StyleRange{So: sc.So, Eo: sc.Eo, Style: rule.StyleRef})
	return Continue
}

// execSubst repeats within the current scope: find the next regex match,
// expand the replacement against it, splice it into the buffer and update
// positions. It stops after the first match unless Global, and stops at
// the scope boundary -- the stdlib-slice equivalent of the sentinel-NUL
// stop condition in §4.4 (there is no physical sentinel byte backing a Go
// []byte, so "start has reached scope.Eo" is the exact analogue).
func execSubst(rule *Rule, state *MatchState) Action {
	scope := state.Scope()
	start := scope.So
	first := true

	for start <= state.Scope().Eo {
		if !first && !rule.Global {
			break
		}

		child, _, ok := rule.Regex.tryMatch(state, start)
		if !ok {
			break
		}

		matchScope := child.Scope()
		wasEmpty := matchScope.So == matchScope.Eo
		repl := Expand(rule.Replacement, child)
		lo := matchScope.So
		oldLen := matchScope.Len()
		ApplyMutation(child, lo, oldLen, repl)

		start = lo + len(repl)
		if wasEmpty {
			// A zero-width match must still advance by one extra byte to
			// guarantee global-iteration progress, per §4.4/§9 -- even
			// though the replacement itself may also be zero-width.
			start++
		}
		first = false
	}

	return Continue
}

func execSet(rule *Rule, state *MatchState) Action {
	repl := Expand(rule.Replacement, state)
	sc := state.Scope()
	ApplyMutation(state, sc.So, sc.Len(), repl)
	return Continue
}

func execMatch(rule *Rule, state *MatchState) Action {
	result := Continue

	for _, prim := range rule.Primitives {
		start := state.Scope().So
		first := true

		for start <= state.Scope().Eo {
			if !first && !primitiveIsGlobal(prim) {
				break
			}

			child, next, ok := prim.tryMatch(state, start)
			if !ok {
				break
			}

			act := Execute(rule.Child, child)
			if act == Skip {
				return Skip
			}
			if act == Break {
				result = Break
			}

			start = next
			first = false
		}
	}

	return result
}

func primitiveIsGlobal(p Primitive) bool {
	if re, ok := p.(*RegexPrimitive); ok {
		return re.Global
	}
	return false
}
