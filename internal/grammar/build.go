package grammar

import (
	"os"
	"path/filepath"

	"github.com/dekarrin/remark/internal/engine"
)

// builder accumulates a Script across a script file and any files it
// INCLUDEs, and is discarded once Build returns.
type builder struct {
	script *Script

	baseDir string // directory holding the script file currently being read
	homeDir string // $HOME/.remark, second stop on the include search path
	dataDir string // package data dir, third stop on the include search path
	visited map[string]bool
}

// Script is the linked result of parsing one script file: the engine.Script
// ready for ExecuteScript, plus the macro names declared so Load's caller can
// report on unused macros if it wants to.
type Script = engine.Script

// Build links a parsed ScriptFile (and, transitively, anything it INCLUDEs)
// into an engine.Script. filename is the originating file's path: its
// directory is the first stop of the INCLUDE search path, and its absolute
// form seeds include-cycle detection. homeDir and dataDir feed the second
// and third stops of the INCLUDE search path (§6).
func Build(file *ScriptFile, filename, homeDir, dataDir string) (*engine.Script, error) {
	b := &builder{
		script:  engine.NewScript(),
		baseDir: filepath.Dir(filename),
		homeDir: homeDir,
		dataDir: dataDir,
		visited: map[string]bool{},
	}
	if abs, err := filepath.Abs(filename); err == nil {
		b.visited[abs] = true
	}

	var mainRules, prependRules, appendRules []*engine.Rule

	for _, d := range file.Decls {
		switch {
		case d.Style != nil:
			if err := b.installStyle(d.Style); err != nil {
				return nil, err
			}
		case d.Macro != nil:
			if err := b.installMacro(d.Macro); err != nil {
				return nil, err
			}
		case d.Prepend != nil:
			r, err := b.buildBody(d.Prepend.Body)
			if err != nil {
				return nil, err
			}
			prependRules = append(prependRules, r)
		case d.Append != nil:
			r, err := b.buildBody(d.Append.Body)
			if err != nil {
				return nil, err
			}
			appendRules = append(appendRules, r)
		case d.Match != nil:
			r, err := b.buildMatchDecl(d.Match)
			if err != nil {
				return nil, err
			}
			mainRules = append(mainRules, r)
		}
	}

	// An INCLUDE nested somewhere in this loop (it is always a match_stmt,
	// never a top-level decl) may already have merged PrependRule/AppendRule
	// as a side effect of mergeInclude (MainRule is not touched that way --
	// see mergeInclude); join rather than overwrite so that merge survives.
	if r := joinRules(mainRules); r != nil {
		b.script.MainRule = joinRules([]*engine.Rule{b.script.MainRule, r})
	}
	if r := joinRules(prependRules); r != nil {
		b.script.PrependRule = joinRules([]*engine.Rule{b.script.PrependRule, r})
	}
	if r := joinRules(appendRules); r != nil {
		b.script.AppendRule = joinRules([]*engine.Rule{b.script.AppendRule, r})
	}

	return b.script, nil
}

func joinRules(rules []*engine.Rule) *engine.Rule {
	var nonNil []*engine.Rule
	for _, r := range rules {
		if r != nil {
			nonNil = append(nonNil, r)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return engine.Multi(nonNil...)
	}
}

// installStyle evaluates one style_decl in declaration order, so that a
// style_stmt naming a parent must refer to a style declared earlier in the
// file (or in an already-merged INCLUDE).
func (b *builder) installStyle(decl *StyleDecl) error {
	if _, dup := b.script.Styles[decl.Name]; dup {
		return newSemanticError("", "", 0, 0, "style %q declared more than once", decl.Name)
	}

	var stmts []*StyleStmt
	if decl.Body.Block != nil {
		stmts = decl.Body.Block.Stmts
	} else {
		stmts = []*StyleStmt{decl.Body.One}
	}

	var components []engine.StyleComponent
	for _, st := range stmts {
		switch {
		case st.Prepend != nil:
			components = append(components, engine.PrependComponent(*st.Prepend))
		case st.Append != nil:
			components = append(components, engine.AppendComponent(*st.Append))
		case st.Parent != nil:
			parent, ok := b.script.Styles[*st.Parent]
			if !ok {
				return newSemanticError("", "", 0, 0, "style %q: unknown parent style %q", decl.Name, *st.Parent)
			}
			components = append(components, engine.ParentComponent(parent))
		}
	}

	b.script.Styles[decl.Name] = engine.NewStyle(decl.Name, components...)
	return nil
}

func (b *builder) installMacro(decl *MacroDecl) error {
	if _, dup := b.script.Macros[decl.Name]; dup {
		return newSemanticError("", "", 0, 0, "macro %q declared more than once", decl.Name)
	}
	// Install the Macro entry before compiling the body, so a macro can
	// reference itself (direct recursion) through MacroTarget.
	m := &engine.Macro{Name: decl.Name}
	b.script.Macros[decl.Name] = m

	rule, err := b.buildBody(decl.Body)
	if err != nil {
		return err
	}
	m.Rule = rule
	return nil
}

func (b *builder) buildMatchDecl(decl *MatchDecl) (*engine.Rule, error) {
	primitives := make([]engine.Primitive, 0, len(decl.Items))
	var firstRegex *engine.RegexPrimitive

	for _, item := range decl.Items {
		switch {
		case item.Regex != nil:
			ignoreCase, global := parseFlags(item.Regex.Flags)
			re, err := engine.CompileRegex(item.Regex.Pattern, ignoreCase, global)
			if err != nil {
				return nil, newSemanticError("", "", 0, 0, "regex %q: %v", item.Regex.Pattern, err)
			}
			if firstRegex == nil {
				firstRegex = re
			}
			primitives = append(primitives, re)
		case item.Ref != nil:
			primitives = append(primitives, &engine.BackrefPrimitive{K: *item.Ref})
		}
	}

	// firstRegex must be in hand before the body is built: a bare SUBST
	// statement directly inside this match's own body resolves against it
	// (the "enclosing MATCH regex" from §6's match_stmt production).
	var stmts []*MatchStmt
	if decl.Body.Block != nil {
		stmts = decl.Body.Block.Stmts
	} else {
		stmts = []*MatchStmt{decl.Body.One}
	}
	child, err := b.buildStmts(stmts, firstRegex)
	if err != nil {
		return nil, err
	}

	rule := engine.MatchRule(child, primitives...)
	rule.Regex = firstRegex // carried for SUBST statements nested in this match's body
	return rule, nil
}

// parseFlags splits the bare flag word following a MATCH regex literal into
// the ignoreCase/global booleans the engine expects. Unrecognized letters
// are ignored rather than rejected, since the grammar doesn't reserve any
// other letters here.
func parseFlags(flags *string) (ignoreCase, global bool) {
	if flags == nil {
		return false, false
	}
	for _, r := range *flags {
		switch r {
		case 'i':
			ignoreCase = true
		case 'g':
			global = true
		}
	}
	return
}

// buildBody compiles a MatchBody (a brace-delimited block or a single bare
// statement) into one Rule.
func (b *builder) buildBody(body *MatchBody) (*engine.Rule, error) {
	var stmts []*MatchStmt
	if body.Block != nil {
		stmts = body.Block.Stmts
	} else {
		stmts = []*MatchStmt{body.One}
	}
	return b.buildStmts(stmts, nil)
}

// buildStmts compiles a statement sequence, threading enclosingRegex (the
// regex primitive that SUBST statements in this scope reuse, per the
// resolution of the grammar's bare `SUBST STRING` form) down from the
// enclosing match_decl.
func (b *builder) buildStmts(stmts []*MatchStmt, enclosingRegex *engine.RegexPrimitive) (*engine.Rule, error) {
	var rules []*engine.Rule
	for _, st := range stmts {
		r, err := b.buildStmt(st, enclosingRegex)
		if err != nil {
			return nil, err
		}
		if r != nil {
			rules = append(rules, r)
		}
	}
	return joinRules(rules), nil
}

func (b *builder) buildStmt(st *MatchStmt, enclosingRegex *engine.RegexPrimitive) (*engine.Rule, error) {
	switch {
	case st.Include != nil:
		r, err := b.mergeInclude(*st.Include)
		if err != nil {
			return nil, err
		}
		return r, nil

	case st.Subst != nil:
		if enclosingRegex == nil {
			return nil, newSemanticError("", "", 0, 0, "SUBST with no enclosing MATCH regex")
		}
		return engine.SubstRule(enclosingRegex, *st.Subst, enclosingRegex.Global), nil

	case st.Set != nil:
		return engine.SetRule(*st.Set), nil

	case st.Skip:
		return engine.ActionRule(engine.Skip), nil

	case st.Break:
		return engine.ActionRule(engine.Break), nil

	case st.Nested != nil:
		return b.buildMatchDeclWithRegex(st.Nested, enclosingRegex)

	case st.Name != nil:
		if style, ok := b.script.Styles[*st.Name]; ok {
			return engine.StyleRule(style), nil
		}
		if macro, ok := b.script.Macros[*st.Name]; ok {
			return engine.MacroRef(*st.Name, macro.Rule), nil
		}
		return nil, newSemanticError("", "", 0, 0, "%q is not a declared style or macro", *st.Name)
	}
	return nil, newSemanticError("", "", 0, 0, "empty match statement")
}

// buildMatchDeclWithRegex is buildMatchDecl, but threading the parent
// scope's enclosing regex through to the nested match_decl's own body (a
// nested SUBST with no MATCH items of its own still refers outward).
func (b *builder) buildMatchDeclWithRegex(decl *MatchDecl, outerRegex *engine.RegexPrimitive) (*engine.Rule, error) {
	var stmts []*MatchStmt
	if decl.Body.Block != nil {
		stmts = decl.Body.Block.Stmts
	} else {
		stmts = []*MatchStmt{decl.Body.One}
	}

	primitives := make([]engine.Primitive, 0, len(decl.Items))
	regex := outerRegex
	for _, item := range decl.Items {
		switch {
		case item.Regex != nil:
			ignoreCase, global := parseFlags(item.Regex.Flags)
			re, err := engine.CompileRegex(item.Regex.Pattern, ignoreCase, global)
			if err != nil {
				return nil, newSemanticError("", "", 0, 0, "regex %q: %v", item.Regex.Pattern, err)
			}
			regex = re
			primitives = append(primitives, re)
		case item.Ref != nil:
			primitives = append(primitives, &engine.BackrefPrimitive{K: *item.Ref})
		}
	}

	child, err := b.buildStmts(stmts, regex)
	if err != nil {
		return nil, err
	}

	rule := engine.MatchRule(child, primitives...)
	rule.Regex = regex
	return rule, nil
}

// mergeInclude resolves name per the search path (dir of the current
// script, then $HOME/.remark, then the package data dir; an absolute path
// is used verbatim), parses it, and splices its top-level declarations into
// the script under construction. INCLUDE is only ever a match_stmt, so the
// included file's own top-level MATCH rules are returned rather than
// written to the script directly: the caller (buildStmt, by way of
// buildStmts) splices them into the rule sequence at the INCLUDE
// statement's own position, mirroring the original include_script, which
// returns a multi-rule spliced at the include site. The included file's
// top-level STYLE/MACRO declarations and PREPEND/APPEND rules have no
// statement position of their own -- they describe the script as a whole --
// so those still merge directly into the script under construction.
func (b *builder) mergeInclude(name string) (*engine.Rule, error) {
	path, err := b.resolveInclude(name)
	if err != nil {
		return nil, err
	}
	abs, _ := filepath.Abs(path)
	if b.visited[abs] {
		return nil, newSemanticError("", "", 0, 0, "include cycle detected at %q", name)
	}
	b.visited[abs] = true

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, newSemanticError("", "", 0, 0, "INCLUDE %q: %v", name, err)
	}

	file, err := ParseBytes(path, data)
	if err != nil {
		return nil, err
	}

	sub := &builder{
		script:  b.script,
		baseDir: filepath.Dir(path),
		homeDir: b.homeDir,
		dataDir: b.dataDir,
		visited: b.visited,
	}

	var mainRules, prependRules, appendRules []*engine.Rule
	for _, d := range file.Decls {
		switch {
		case d.Style != nil:
			if err := sub.installStyle(d.Style); err != nil {
				return nil, err
			}
		case d.Macro != nil:
			if err := sub.installMacro(d.Macro); err != nil {
				return nil, err
			}
		case d.Prepend != nil:
			r, err := sub.buildBody(d.Prepend.Body)
			if err != nil {
				return nil, err
			}
			prependRules = append(prependRules, r)
		case d.Append != nil:
			r, err := sub.buildBody(d.Append.Body)
			if err != nil {
				return nil, err
			}
			appendRules = append(appendRules, r)
		case d.Match != nil:
			r, err := sub.buildMatchDecl(d.Match)
			if err != nil {
				return nil, err
			}
			mainRules = append(mainRules, r)
		}
	}

	if r := joinRules(prependRules); r != nil {
		b.script.PrependRule = joinRules([]*engine.Rule{b.script.PrependRule, r})
	}
	if r := joinRules(appendRules); r != nil {
		b.script.AppendRule = joinRules([]*engine.Rule{b.script.AppendRule, r})
	}

	return joinRules(mainRules), nil
}

// resolveInclude implements the three-stop search path from §6: the
// directory of the script currently being parsed, then $HOME/.remark, then
// the package data directory, first existing file wins. An absolute name is
// returned verbatim without a search.
func (b *builder) resolveInclude(name string) (string, error) {
	if filepath.IsAbs(name) {
		if _, err := os.Stat(name); err != nil {
			return "", newSemanticError("", "", 0, 0, "INCLUDE %q: %v", name, err)
		}
		return name, nil
	}

	candidates := []string{
		filepath.Join(b.baseDir, name),
	}
	if b.homeDir != "" {
		candidates = append(candidates, filepath.Join(b.homeDir, ".remark", name))
	}
	if b.dataDir != "" {
		candidates = append(candidates, filepath.Join(b.dataDir, name))
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		}
	}
	return "", newSemanticError("", "", 0, 0, "INCLUDE %q: not found on search path", name)
}
