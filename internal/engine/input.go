package engine

// RemarkInput holds the three independent match buffers that a script's
// rule trees run over for a single line: the main text, and the scratch
// buffers that accumulate the resolved prepend and append strings (§3).
type RemarkInput struct {
	Main    *MatchBuffer
	Prepend *MatchBuffer
	Append  *MatchBuffer
}

// NewRemarkInput allocates a RemarkInput with three empty match buffers.
func NewRemarkInput() *RemarkInput {
	return &RemarkInput{
		Main:    NewMatchBuffer(""),
		Prepend: NewMatchBuffer(""),
		Append:  NewMatchBuffer(""),
	}
}

// ResetForLine reuses ri's three buffers for the next input line: main is
// set to text, and prepend/append are seeded from the CLI-configured
// literals (-p/-a) before their rule trees get a chance to restyle or
// rewrite them.
func (ri *RemarkInput) ResetForLine(text, prependSeed, appendSeed string) {
	ri.Main.Reset(text)
	ri.Prepend.Reset(prependSeed)
	ri.Append.Reset(appendSeed)
}

// ExecuteScript runs script's rule trees over input in the order fixed by
// §4.7:
//
//  1. main_rule runs over the main buffer. A top-level Skip drops the line
//     (ExecuteScript returns false, and the caller must not emit it).
//  2. prepend_rule and append_rule each run over their own buffer, and
//     their styles are immediately materialised (there is no later wrap
//     pass over these buffers, so they can't be left pending) and their
//     style lists cleared.
//  3. The wrapper is left to the caller, which now has resolved prepend
//     and append strings in input.Prepend/input.Append to pass to Emit.
//  4. The main buffer's style list is left untouched here: Emit consumes
//     it directly, and the caller clears it afterward by calling Reset (or
//     ClearMainStyles) before the buffer is reused for the next line.
func ExecuteScript(script *Script, input *RemarkInput) (ok bool) {
	if script.MainRule != nil {
		if Execute(script.MainRule, input.Main.RootState()) == Skip {
			return false
		}
	}

	if script.PrependRule != nil {
		Execute(script.PrependRule, input.Prepend.RootState())
		materialiseAll(input.Prepend)
		input.Prepend.Styles.Clear()
	}

	if script.AppendRule != nil {
		Execute(script.AppendRule, input.Append.RootState())
		materialiseAll(input.Append)
		input.Append.Styles.Clear()
	}

	return true
}

// ClearMainStyles drops the main buffer's style list, done after the
// wrapper has consumed it for the line just emitted.
func (ri *RemarkInput) ClearMainStyles() {
	ri.Main.Styles.Clear()
}
