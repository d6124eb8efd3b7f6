package engine

// Style is a named decoration: a pre-string emitted before a styled range of
// text and a post-string emitted after it. Pre/post strings are computed
// once at script-definition time from the style's declared components (see
// StyleComponent) and then treated as immutable for the life of the script.
type Style struct {
	Name       string
	PreString  string
	PostString string

	// refCount tracks how many rule-tree nodes and macros reference this
	// style, mirroring the teacher's reference-counted script objects. A
	// style is only eligible for collection once refCount drops to zero,
	// which in practice here is "never, until the Script is discarded",
	// since scripts live for the process lifetime.
	refCount int
}

// componentKind distinguishes the three things a style declaration can be
// built from.
type componentKind int

const (
	componentParentRef componentKind = iota
	componentPrependLiteral
	componentAppendLiteral
)

// StyleComponent is one declared element of a style_decl: either a reference
// to an already-declared parent style (contributing both its pre and post
// strings) or an explicit literal contributing to only pre or only post.
type StyleComponent struct {
	Kind    componentKind
	Literal string
	Parent  *Style
}

// ParentComponent declares that the style being built inherits the pre/post
// strings of parent.
func ParentComponent(parent *Style) StyleComponent {
	return StyleComponent{Kind: componentParentRef, Parent: parent}
}

// PrependComponent declares an explicit pre-string literal.
func PrependComponent(literal string) StyleComponent {
	return StyleComponent{Kind: componentPrependLiteral, Literal: literal}
}

// AppendComponent declares an explicit post-string literal.
func AppendComponent(literal string) StyleComponent {
	return StyleComponent{Kind: componentAppendLiteral, Literal: literal}
}

// NewStyle builds a Style from its declared components, in declaration
// order. Pre-string components are concatenated in declaration order;
// post-string components are concatenated in REVERSE declaration order so
// that nested nesting inverts correctly (the last-declared post piece closes
// first).
func NewStyle(name string, components ...StyleComponent) *Style {
	s := &Style{Name: name}

	var pre string
	var postPieces []string

	for _, c := range components {
		switch c.Kind {
		case componentParentRef:
			pre += c.Parent.PreString
			postPieces = append(postPieces, c.Parent.PostString)
		case componentPrependLiteral:
			pre += c.Literal
		case componentAppendLiteral:
			postPieces = append(postPieces, c.Literal)
		}
	}

	var post string
	for i := len(postPieces) - 1; i >= 0; i-- {
		post += postPieces[i]
	}

	s.PreString = pre
	s.PostString = post
	return s
}

// Ref increments the style's reference count, called whenever a rule-tree
// node or macro starts referencing it.
func (s *Style) Ref() {
	s.refCount++
}

// Unref decrements the style's reference count.
func (s *Style) Unref() {
	if s.refCount > 0 {
		s.refCount--
	}
}
