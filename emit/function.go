// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

package emit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pxlarchive/dwscribe/ir"
)

// EmitFunction renders a function or method. declarationOnly is true when
// called from inside a class body (emitting the method's declaration line
// only, never its body, and never the ClassName:: qualifier); false for a
// top-level definition, where a non-empty NamespacePath wraps the output in
// nested namespace blocks to match where the class itself lives.
func EmitFunction(w *OutputWriter, fn ir.Function, cfg Config, declarationOnly bool) {
	wrapped := fn.IsMethod && !declarationOnly && len(fn.NamespacePath) > 0
	if wrapped {
		for _, ns := range fn.NamespacePath {
			w.Line("namespace " + ns + " {")
			if !cfg.SkipNamespaceIndentation {
				w.Indent()
			}
		}
	}

	if !cfg.NoFunctionAddresses && fn.LowPC != nil && fn.HighPC != nil {
		w.Line(fmt.Sprintf("// @ 0x%x-0x%x (%d bytes)", *fn.LowPC, *fn.HighPC, *fn.HighPC-*fn.LowPC))
	}

	switch {
	case fn.IsMethod && declarationOnly:
		// In-class method declaration: virtual keyword, never static/inline,
		// no ClassName:: qualifier, parameters always joined on one line.
		w.Line(formatMethodDeclaration(fn, cfg))

	case declarationOnly || !fn.HasBody:
		decl := formatStandaloneDeclaration(fn, cfg, true)
		w.Line(insertSemicolonBeforeComment(decl))

	default:
		decl := formatStandaloneDeclaration(fn, cfg, false)
		if declEndsWithComment(decl) {
			w.Line(decl)
			w.Line("{")
		} else {
			w.Line(decl + " {")
		}
		w.Indent()
		emitFunctionBody(w, fn, cfg)
		w.Dedent()
		w.Line(appendLineAndMeta("}", fn, cfg))
	}

	if wrapped {
		for i := len(fn.NamespacePath) - 1; i >= 0; i-- {
			if !cfg.SkipNamespaceIndentation {
				w.Dedent()
			}
			w.Line("} //" + fn.NamespacePath[i])
		}
	}
}

// emitFunctionBody renders a function's body content, collapsing the
// common case of a single top-level lexical block with no sibling
// variables/inlined-calls/labels into the function's own braces instead of
// opening a redundant nested block.
func emitFunctionBody(w *OutputWriter, fn ir.Function, cfg Config) {
	vars, blocks, inlined, labels := fn.Variables, fn.LexicalBlocks, fn.InlinedCalls, fn.Labels
	if len(vars) == 0 && len(inlined) == 0 && len(labels) == 0 && len(blocks) == 1 {
		b := blocks[0]
		vars, blocks, inlined, labels = b.Variables, b.NestedBlocks, b.InlinedCalls, b.Labels
	}
	emitBlockContent(w, vars, blocks, inlined, labels, cfg)
}

// bodyItem is one interleaved element of a function or lexical block body,
// ordered first by source line (items with no line sort last) and then by
// the order they were appended in, to keep output deterministic.
type bodyItem struct {
	line   *int
	order  int
	render func(w *OutputWriter)
}

func emitBlockContent(w *OutputWriter, vars []ir.Variable, blocks []ir.LexicalBlock, inlined []ir.InlinedSubroutine, labels []ir.Label, cfg Config) {
	var items []bodyItem
	idx := 0

	for _, v := range vars {
		v := v
		items = append(items, bodyItem{line: v.Line, order: idx, render: func(w *OutputWriter) {
			w.Line(variableStatement(v, cfg))
		}})
		idx++
	}
	for _, ic := range inlined {
		ic := ic
		items = append(items, bodyItem{line: ic.Line, order: idx, render: func(w *OutputWriter) {
			line := ic.Name + "();"
			if ic.Line != nil {
				line += fmt.Sprintf(" //%d", *ic.Line)
			}
			w.Line(line)
		}})
		idx++
	}
	for _, l := range labels {
		l := l
		items = append(items, bodyItem{line: l.Line, order: idx, render: func(w *OutputWriter) {
			w.Line(l.Name + ":")
		}})
		idx++
	}
	for _, b := range blocks {
		b := b
		items = append(items, bodyItem{line: b.MinContentLine(), order: idx, render: func(w *OutputWriter) {
			w.Line("{")
			w.Indent()
			emitBlockContent(w, b.Variables, b.NestedBlocks, b.InlinedCalls, b.Labels, cfg)
			w.Dedent()
			w.Line("}")
		}})
		idx++
	}

	sort.SliceStable(items, func(i, j int) bool {
		li, lj := items[i].line, items[j].line
		switch {
		case li == nil && lj == nil:
			return items[i].order < items[j].order
		case li == nil:
			return false
		case lj == nil:
			return true
		case *li != *lj:
			return *li < *lj
		default:
			return items[i].order < items[j].order
		}
	})

	for _, it := range items {
		it.render(w)
	}
}

func variableStatement(v ir.Variable, cfg Config) string {
	decl := FormatDeclaration(v.Type, v.Name, cfg)
	if v.ConstValue.HasValue() {
		decl += " = " + constValueString(v.ConstValue)
	}
	decl += ";"
	if v.Line != nil {
		decl += fmt.Sprintf(" //%d", *v.Line)
	} else if !cfg.DisableNoLineComment {
		decl += " //No line number"
	}
	return decl
}

func appendLineAndMeta(base string, fn ir.Function, cfg Config) string {
	if fn.Line != nil {
		base += fmt.Sprintf(" //%d", *fn.Line)
	} else if !cfg.DisableNoLineComment {
		base += " //No line number"
	}
	if meta := metadataComment(fn, cfg); meta != "" {
		base += " " + meta
	}
	return base
}

func metadataComment(fn ir.Function, cfg Config) string {
	if cfg.NoFunctionPrototypes || fn.LinkageName == "" {
		return ""
	}
	name, ok := Demangle(fn.LinkageName)
	if !ok {
		name = fn.LinkageName
	}
	comment := "[" + name + "]"
	if fn.IsArtificial {
		comment += " [compiler-generated]"
	}
	return comment
}

// formatMethodDeclaration renders an in-class method declaration: virtual
// keyword (never static/inline), unqualified name, parameters always joined
// on a single line, and the closing ");" with its line/metadata comment
// baked in directly (there is no separate body-vs-no-body case inside a
// class).
func formatMethodDeclaration(fn ir.Function, cfg Config) string {
	var b strings.Builder
	if fn.IsVirtual {
		b.WriteString("virtual ")
	}
	if !fn.IsConstructor && !fn.IsDestructor {
		b.WriteString(formatReturnType(fn.Return, cfg))
		b.WriteString(" ")
	}
	b.WriteString(fn.Name)
	b.WriteString("(")
	b.WriteString(joinParams(filterParams(fn.Parameters), cfg))
	b.WriteString(");")

	writeLineComment(&b, fn.Line)
	writeMetadataTail(&b, fn, cfg, fn.Line)
	return b.String()
}

// formatStandaloneDeclaration renders the signature of a top-level function
// or an out-of-line method definition: static/inline keywords (never
// virtual), a ClassName::-qualified name for methods, and a parameter list
// that splits across continuation lines when the parameters themselves are
// spread across more than one source line. attachTail controls whether the
// function's own line/metadata comment is embedded in the returned string
// (used for the prototype-only case, where the caller still needs to insert
// a semicolon before it) or left for the caller to attach elsewhere (used
// when a body follows, so the comment can be moved to the closing brace).
func formatStandaloneDeclaration(fn ir.Function, cfg Config, attachTail bool) string {
	var b strings.Builder
	if !fn.IsMethod && !fn.IsExternal {
		b.WriteString("static ")
	}
	if fn.IsInline {
		b.WriteString("inline ")
	}
	if !fn.IsConstructor && !fn.IsDestructor {
		b.WriteString(formatReturnType(fn.Return, cfg))
		b.WriteString(" ")
	}

	name := fn.Name
	if fn.IsMethod && fn.ClassName != "" {
		name = fn.ClassName + "::" + fn.Name
	}
	b.WriteString(name)
	b.WriteString("(")

	writeParamList(&b, filterParams(fn.Parameters), fn, cfg, attachTail)
	return b.String()
}

// writeParamList renders a parameter list and closing paren. When every
// parameter shares the function's own declaration line, they are joined on
// one line. Otherwise parameters are grouped by source line; the first
// group continues the signature line, and each subsequent group starts on
// its own line indented 8 spaces, with its own line-number comment.
// Metadata is only ever attached after the last group, and only when
// attachTail is set.
func writeParamList(b *strings.Builder, params []ir.Parameter, fn ir.Function, cfg Config, attachTail bool) {
	if len(params) == 0 {
		b.WriteString(")")
		if attachTail {
			writeLineComment(b, fn.Line)
			writeMetadataTail(b, fn, cfg, fn.Line)
		}
		return
	}

	allSameLine := true
	for _, p := range params {
		if !sameLine(p.Line, fn.Line) {
			allSameLine = false
			break
		}
	}

	if allSameLine {
		b.WriteString(joinParams(params, cfg))
		b.WriteString(")")
		if attachTail {
			writeLineComment(b, fn.Line)
			writeMetadataTail(b, fn, cfg, fn.Line)
		}
		return
	}

	groups := groupParamsByLine(params)
	for i, g := range groups {
		if i > 0 {
			b.WriteString("\n        ")
		}
		b.WriteString(joinParams(g.params, cfg))
		if i == len(groups)-1 {
			b.WriteString(")")
		} else {
			b.WriteString(",")
		}
		writeLineComment(b, g.line)
		if i == len(groups)-1 && attachTail {
			writeMetadataTail(b, fn, cfg, g.line)
		}
	}
}

func joinParams(params []ir.Parameter, cfg Config) string {
	strs := make([]string, 0, len(params))
	for _, p := range params {
		strs = append(strs, FormatDeclaration(p.Type, p.Name, cfg))
	}
	return strings.Join(strs, ", ")
}

// paramGroup is a run of parameters declared on the same source line.
type paramGroup struct {
	line   *int
	params []ir.Parameter
}

// groupParamsByLine buckets parameters by their Line (nil counts as its own
// bucket) and sorts the buckets ascending, with the no-line bucket first -
// matching the original generator's Option<u64> ordering (None < Some(_)).
func groupParamsByLine(params []ir.Parameter) []paramGroup {
	var groups []paramGroup
	for _, p := range params {
		idx := -1
		for i := range groups {
			if sameLine(groups[i].line, p.Line) {
				idx = i
				break
			}
		}
		if idx == -1 {
			groups = append(groups, paramGroup{line: p.Line, params: []ir.Parameter{p}})
		} else {
			groups[idx].params = append(groups[idx].params, p)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		li, lj := groups[i].line, groups[j].line
		switch {
		case li == nil && lj == nil:
			return false
		case li == nil:
			return true
		case lj == nil:
			return false
		default:
			return *li < *lj
		}
	})
	return groups
}

func writeLineComment(b *strings.Builder, line *int) {
	if line != nil {
		fmt.Fprintf(b, " //%d", *line)
	}
}

func writeMetadataTail(b *strings.Builder, fn ir.Function, cfg Config, line *int) {
	meta := metadataComment(fn, cfg)
	if meta == "" {
		return
	}
	if line == nil {
		b.WriteString(" //")
	}
	b.WriteString(" ")
	b.WriteString(meta)
}

// insertSemicolonBeforeComment inserts a semicolon immediately before a
// trailing line/metadata comment (if any), so declarations built with the
// comment already embedded can still be turned into a terminated statement.
func insertSemicolonBeforeComment(decl string) string {
	if i := strings.LastIndex(decl, " //"); i != -1 {
		return decl[:i] + ";" + decl[i:]
	}
	return decl + ";"
}

// declEndsWithComment reports whether decl's final line carries a trailing
// "//" comment, in which case an opening brace must start its own line
// rather than being appended to decl (or it would be commented out).
func declEndsWithComment(decl string) bool {
	last := decl
	if i := strings.LastIndexByte(decl, '\n'); i != -1 {
		last = decl[i+1:]
	}
	return strings.Contains(last, " //")
}

func formatReturnType(t ir.TypeInfo, cfg Config) string {
	name := FormatTypeName(t.BaseType, cfg)
	if t.IsConst {
		name = "const " + name
	}
	if stars := strings.Repeat("*", t.PointerCount); stars != "" {
		name += " " + stars
	}
	if t.IsReference {
		name += " &"
	} else if t.IsRvalueReference {
		name += " &&"
	}
	return name
}

// filterParams drops implicit parameters: a "this" with no line, or a
// compiler-generated "__"-prefixed parameter with no line.
func filterParams(params []ir.Parameter) []ir.Parameter {
	var out []ir.Parameter
	for _, p := range params {
		if p.Line == nil && (p.Name == "this" || strings.HasPrefix(p.Name, "__")) {
			continue
		}
		out = append(out, p)
	}
	return out
}
