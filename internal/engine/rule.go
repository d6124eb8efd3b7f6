package engine

// Action is the result of executing a rule: whether to keep evaluating
// later rules, stop the enclosing Multi early, or drop the line entirely.
type Action int

const (
	Continue Action = iota
	Break
	Skip
)

func (a Action) String() string {
	switch a {
	case Continue:
		return "continue"
	case Break:
		return "break"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// Kind distinguishes the rule-tree variants of §3's "Rule tree" data model.
type Kind int

const (
	KindMulti Kind = iota
	KindMacroRef
	KindStyle
	KindAction
	KindSubst
	KindSet
	KindMatch
)

// Rule is the algebraic rule tree node. Only the fields relevant to Kind
// are populated; this mirrors the teacher's practice of a single tagged
// struct for AST-like trees (see tunascript/syntax/ast.go) rather than a
// family of small interfaces, since the interpreter (Execute) is the only
// consumer and needs exhaustive dispatch on Kind anyway.
//
// Macros and included sub-scripts can make this a DAG rather than a strict
// tree: MacroTarget is a shared pointer, never copied. Style nodes bump the
// referenced Style's reference count; macro targets are shared without a
// count of their own (ref is a no-op).
type Rule struct {
	Kind Kind

	// KindMulti
	Children []*Rule

	// KindMacroRef
	MacroName   string
	MacroTarget *Rule

	// KindStyle
	StyleRef *Style

	// KindAction
	ActionValue Action

	// KindSubst, KindSet
	Regex       *RegexPrimitive // KindSubst only
	Replacement string
	Global      bool // KindSubst only

	// KindMatch
	Primitives []Primitive
	Child      *Rule
}

// Multi builds a KindMulti rule from children run in sequence.
func Multi(children ...*Rule) *Rule {
	return &Rule{Kind: KindMulti, Children: children}
}

// MacroRef builds a KindMacroRef rule tail-calling target.
func MacroRef(name string, target *Rule) *Rule {
	if target != nil {
		target.ref()
	}
	return &Rule{Kind: KindMacroRef, MacroName: name, MacroTarget: target}
}

// StyleRule builds a KindStyle rule applying style to the enclosing match.
func StyleRule(style *Style) *Rule {
	style.Ref()
	return &Rule{Kind: KindStyle, StyleRef: style}
}

// ActionRule builds a KindAction rule yielding value unconditionally.
func ActionRule(value Action) *Rule {
	return &Rule{Kind: KindAction, ActionValue: value}
}

// SubstRule builds a KindSubst rule.
func SubstRule(re *RegexPrimitive, replacement string, global bool) *Rule {
	return &Rule{Kind: KindSubst, Regex: re, Replacement: replacement, Global: global}
}

// SetRule builds a KindSet rule.
func SetRule(replacement string) *Rule {
	return &Rule{Kind: KindSet, Replacement: replacement}
}

// MatchRule builds a KindMatch rule over the given primitives, running
// child once per successful match of each primitive in turn.
func MatchRule(child *Rule, primitives ...Primitive) *Rule {
	return &Rule{Kind: KindMatch, Primitives: primitives, Child: child}
}

// ref is a placeholder hook for reference counting when a rule node is
// installed behind a macro or include; style nodes carry their own
// refcount on the underlying Style (see style.go).
func (r *Rule) ref() {}
