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

// EmitCompound renders a struct, class, union or enum.
func EmitCompound(w *OutputWriter, c ir.Compound, cfg Config, compoundSizes map[string]uint64) {
	switch c.Kind {
	case ir.CompoundEnum:
		emitEnum(w, c, cfg)
	case ir.CompoundClass:
		emitClass(w, c, cfg, compoundSizes)
	default:
		emitStructOrUnion(w, c, cfg, compoundSizes)
	}
}

func emitEnum(w *OutputWriter, c ir.Compound, cfg Config) {
	header := ""
	if c.IsTypedef {
		header += "typedef "
	}
	header += "enum"
	if c.Name != "" {
		header += " " + c.Name
	}
	header += " {"
	w.Line(header)

	w.Indent()
	for _, e := range c.Enumerators {
		if e.Value != nil {
			w.Line(fmt.Sprintf("%s = %d, // 0x%x", e.Name, *e.Value, uint64(*e.Value)))
		} else {
			w.Line(e.Name + ",")
		}
	}
	w.Dedent()

	w.Line(closingBrace(c, cfg))
}

func emitStructOrUnion(w *OutputWriter, c ir.Compound, cfg Config, compoundSizes map[string]uint64) {
	if len(c.Members) == 0 && len(c.NestedTypes) == 0 {
		if c.Name == "" && c.TypedefName == "" {
			return
		}
		w.Line(forwardDeclarationText(c) + ";")
		return
	}

	header := ""
	if c.IsTypedef {
		header += "typedef "
	}
	header += c.Kind.String()
	if c.Name != "" {
		header += " " + c.Name
	}
	if len(c.BaseClasses) > 0 {
		header += " : " + formatBaseClasses(c.BaseClasses, cfg)
	}
	header += " {"
	w.Line(header)

	w.Indent()
	for _, nt := range c.NestedTypes {
		EmitCompound(w, nt, cfg, compoundSizes)
	}
	emitMembers(w, c.Members, cfg, compoundSizes)
	w.Dedent()

	w.Line(closingBrace(c, cfg))
}

func emitClass(w *OutputWriter, c ir.Compound, cfg Config, compoundSizes map[string]uint64) {
	if len(c.Members) == 0 && len(c.Methods) == 0 && len(c.BaseClasses) == 0 && len(c.NestedTypes) == 0 {
		w.Line("class " + c.Name + ";")
		return
	}

	header := "class " + c.Name
	if len(c.BaseClasses) > 0 {
		header += " : " + formatBaseClasses(c.BaseClasses, cfg)
	}
	header += " {"
	w.Line(header)

	w.Indent()
	for _, nt := range c.NestedTypes {
		EmitCompound(w, nt, cfg, compoundSizes)
	}

	for _, access := range []ir.Accessibility{ir.AccessPublic, ir.AccessProtected, ir.AccessPrivate} {
		members := filterMembersByAccess(c.Members, access)
		methods := filterMethodsByAccess(c.Methods, access)
		if len(members) == 0 && len(methods) == 0 {
			continue
		}

		w.Line(accessibilityKeyword(access) + ":")
		w.Indent()
		emitMembers(w, members, cfg, compoundSizes)
		sortMethodsByLine(methods)
		for _, m := range methods {
			EmitFunction(w, m, cfg, true)
		}
		w.Dedent()
	}
	w.Dedent()

	footer := "};"
	if c.Line != nil {
		footer += fmt.Sprintf(" //%d", *c.Line)
	} else if !cfg.DisableNoLineComment {
		footer += " //No line number"
	}
	w.Line(footer)
}

func forwardDeclarationText(c ir.Compound) string {
	name := c.Name
	if name == "" {
		name = c.TypedefName
	}
	return c.Kind.String() + " " + name
}

func closingBrace(c ir.Compound, cfg Config) string {
	footer := "}"
	if c.IsTypedef {
		footer += " " + c.TypedefName
	}
	footer += ";"

	line := c.Line
	if c.IsTypedef && c.TypedefLine != nil {
		line = c.TypedefLine
	}
	if line != nil {
		footer += fmt.Sprintf(" //%d", *line)
	} else if !cfg.DisableNoLineComment {
		footer += " //No line number"
	}
	if c.ByteSize != nil {
		footer += fmt.Sprintf(" // sizeof: %d", *c.ByteSize)
	}
	return footer
}

func formatBaseClasses(bases []ir.BaseClass, cfg Config) string {
	parts := make([]string, 0, len(bases))
	for _, b := range bases {
		part := accessibilityKeyword(b.Accessibility)
		if b.IsVirtual {
			part = strings.TrimSpace(part + " virtual")
		}
		part = strings.TrimSpace(part + " " + StripCompoundPrefix(b.TypeName))
		if b.Offset != nil {
			part += fmt.Sprintf(" /* @ offset %d */", *b.Offset)
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, ", ")
}

func accessibilityKeyword(a ir.Accessibility) string {
	switch a {
	case ir.AccessPublic:
		return "public"
	case ir.AccessProtected:
		return "protected"
	case ir.AccessPrivate:
		return "private"
	default:
		return ""
	}
}

func filterMembersByAccess(members []ir.Variable, access ir.Accessibility) []ir.Variable {
	var out []ir.Variable
	for _, m := range members {
		if m.Accessibility == access {
			out = append(out, m)
		}
	}
	return out
}

func filterMethodsByAccess(methods []ir.Function, access ir.Accessibility) []ir.Function {
	var out []ir.Function
	for _, m := range methods {
		if m.Accessibility == access {
			out = append(out, m)
		}
	}
	return out
}

func sortMethodsByLine(methods []ir.Function) {
	sort.SliceStable(methods, func(i, j int) bool {
		li, lj := methods[i].Line, methods[j].Line
		if li == nil || lj == nil {
			return false
		}
		return *li < *lj
	})
}

// emitMembers chooses between the offset-annotated and the plain rendering,
// depending on whether any member carries an offset and whether offsets are
// suppressed by configuration.
func emitMembers(w *OutputWriter, members []ir.Variable, cfg Config, compoundSizes map[string]uint64) {
	if len(members) == 0 {
		return
	}

	hasOffsets := false
	for _, m := range members {
		if m.Offset != nil {
			hasOffsets = true
			break
		}
	}

	if hasOffsets && !cfg.NoOffsets {
		emitMembersWithOffsets(w, members, cfg, compoundSizes)
	} else {
		emitMembersWithoutOffsets(w, members, cfg)
	}
}

// emitMembersWithOffsets sorts members by offset and, between consecutive
// members, reports any positive gap between the previous member's end
// (offset + estimated size) and the next member's own offset as alignment
// padding.
func emitMembersWithOffsets(w *OutputWriter, members []ir.Variable, cfg Config, compoundSizes map[string]uint64) {
	sorted := append([]ir.Variable(nil), members...)
	sort.SliceStable(sorted, func(i, j int) bool {
		oi, oj := sorted[i].Offset, sorted[j].Offset
		if oi == nil || oj == nil {
			return false
		}
		return *oi < *oj
	})

	var expectedNext uint64
	haveExpected := false
	for _, m := range sorted {
		if m.Offset != nil && haveExpected && *m.Offset > expectedNext {
			padding := *m.Offset - expectedNext
			unit := "bytes"
			if padding == 1 {
				unit = "byte"
			}
			w.Line(fmt.Sprintf("// [%d %s padding for alignment]", padding, unit))
		}

		decl := memberDeclarator(m, cfg) + ";"
		if m.Line != nil {
			decl += fmt.Sprintf(" //%d", *m.Line)
		} else if !cfg.DisableNoLineComment {
			decl += " //No line number"
		}
		if m.Offset != nil {
			decl += fmt.Sprintf(" @ offset %d", *m.Offset)
		}
		if m.BitOffset != nil {
			decl += fmt.Sprintf(" [bit offset: %d]", *m.BitOffset)
		}
		w.Line(decl)

		if m.Offset != nil {
			expectedNext = *m.Offset + EstimateSize(m.Type, cfg, compoundSizes)
			haveExpected = true
		}
	}
}

func emitMembersWithoutOffsets(w *OutputWriter, members []ir.Variable, cfg Config) {
	for _, group := range groupByLine(members) {
		parts := make([]string, 0, len(group.members))
		for _, m := range group.members {
			parts = append(parts, memberDeclarator(m, cfg))
		}
		line := strings.Join(parts, "; ") + ";"
		if group.line != nil {
			line += fmt.Sprintf(" //%d", *group.line)
		} else if !cfg.DisableNoLineComment {
			line += " //No line number"
		}
		w.Line(line)
	}
}

type memberGroup struct {
	line    *int
	members []ir.Variable
}

func groupByLine(members []ir.Variable) []memberGroup {
	var groups []memberGroup
	for _, m := range members {
		if len(groups) > 0 && sameLine(groups[len(groups)-1].line, m.Line) {
			last := &groups[len(groups)-1]
			last.members = append(last.members, m)
			continue
		}
		groups = append(groups, memberGroup{line: m.Line, members: []ir.Variable{m}})
	}
	return groups
}

func sameLine(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func memberDeclarator(m ir.Variable, cfg Config) string {
	decl := FormatDeclaration(m.Type, m.Name, cfg)
	if m.ConstValue.HasValue() {
		decl += " = " + constValueString(m.ConstValue)
	}
	if m.BitSize != nil {
		decl += fmt.Sprintf(" : %d", *m.BitSize)
	}
	return decl
}

func constValueString(c ir.ConstValue) string {
	if c.Kind == ir.ConstValueSigned {
		return fmt.Sprintf("%d", c.Signed)
	}
	return fmt.Sprintf("%d", c.Unsigned)
}
