// Package grammar parses a script file into the declarations that
// internal/engine needs (styles, macros and the prepend/main/append rule
// trees), per the grammar summarized in §6: tokens STYLE PREPEND APPEND SKIP
// BREAK MACRO INCLUDE SET NUMBER STRING MATCH SUBST { } , and their
// productions. The grammar there is explicitly a summary ("the parser is a
// collaborator"), so the concrete surface below -- in particular how style
// application, macro calls and regex flags are spelled -- is this package's
// own resolution of that summary, recorded in DESIGN.md.
package grammar

// ScriptFile is the root production: a sequence of top-level declarations.
type ScriptFile struct {
	Decls []*TopDecl `@@*`
}

// TopDecl is one top-level production: `style_decl | macro_decl |
// match_decl | PREPEND match_body | APPEND match_body`.
type TopDecl struct {
	Prepend *PrependDecl `(  @@`
	Append  *AppendDecl  ` | @@`
	Style   *StyleDecl   ` | @@`
	Macro   *MacroDecl   ` | @@`
	Match   *MatchDecl   ` | @@ )`
}

// PrependDecl is `PREPEND match_body`, installing the script's prepend_rule.
type PrependDecl struct {
	Body *MatchBody `"PREPEND" @@`
}

// AppendDecl is `APPEND match_body`, installing the script's append_rule.
type AppendDecl struct {
	Body *MatchBody `"APPEND" @@`
}

// StyleDecl is `STYLE STRING { style_stmts }` or `STYLE STRING style_stmt`.
type StyleDecl struct {
	Name string     `"STYLE" @String`
	Body *StyleBody `@@`
}

// StyleBody is a brace-delimited block of style_stmt, or a single bare one.
type StyleBody struct {
	Block *StyleBlock `(  @@`
	One   *StyleStmt  ` | @@ )`
}

type StyleBlock struct {
	Stmts []*StyleStmt `"{" @@* "}"`
}

// StyleStmt is `PREPEND STRING`, `APPEND STRING`, or a bare STRING naming an
// already-declared style to inherit from.
type StyleStmt struct {
	Prepend *string `(  "PREPEND" @String`
	Append  *string ` | "APPEND" @String`
	Parent  *string ` | @String )`
}

// MacroDecl is `MACRO STRING match_body`.
type MacroDecl struct {
	Name string     `"MACRO" @String`
	Body *MatchBody `@@`
}

// MatchDecl is `match_items match_body` -- match_body already covers the
// single-statement case, so this also covers the summary's second
// alternative `match_items match_stmt`.
type MatchDecl struct {
	Items []*MatchItem `@@ ( "," @@ )*`
	Body  *MatchBody   `@@`
}

// MatchItem is one comma-separated match primitive: a regex literal (with
// optional flags) or a bare integer naming a submatch back-reference.
type MatchItem struct {
	Regex *RegexLit `(  @@`
	Ref   *int      ` | @Int )`
}

// RegexLit is `MATCH STRING`, optionally followed directly by a bare word of
// flag letters ('i' for ignore-case, 'g' for global).
type RegexLit struct {
	Pattern string  `"MATCH" @String`
	Flags   *string `@Ident?`
}

// MatchBody is a brace-delimited block of match_stmt, or a single bare one.
type MatchBody struct {
	Block *MatchBlock `(  @@`
	One   *MatchStmt  ` | @@ )`
}

type MatchBlock struct {
	Stmts []*MatchStmt `"{" @@* "}"`
}

// MatchStmt is one statement inside a match body: `INCLUDE STRING`, a bare
// STRING (a previously-declared style or macro name), `SUBST STRING`, `SET
// STRING`, `SKIP`, `BREAK`, or a nested match_decl.
type MatchStmt struct {
	Include *string    `(  "INCLUDE" @String`
	Subst   *string    ` | "SUBST" @String`
	Set     *string    ` | "SET" @String`
	Skip    bool       ` | @"SKIP"`
	Break   bool       ` | @"BREAK"`
	Nested  *MatchDecl ` | @@`
	Name    *string    ` | @String )`
}
