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

	"github.com/pxlarchive/dwscribe/ir"
)

// Generate renders a top-level element list - a whole compile unit, or one
// file's slice of it after postprocess.SplitByFile - as pseudo-source text.
// Elements are sorted by source line before rendering; the call is pure:
// the same elements and Config always produce the same string.
func Generate(elements []ir.Element, cfg Config) string {
	sizes := collectCompoundSizes(elements)

	sorted := append([]ir.Element(nil), elements...)
	ir.SortElements(sorted)

	w := NewOutputWriter()
	emitElements(w, sorted, cfg, sizes)
	return w.String()
}

func emitElements(w *OutputWriter, elements []ir.Element, cfg Config, sizes map[string]uint64) {
	for _, e := range elements {
		switch e.Kind {
		case ir.ElementCompound:
			EmitCompound(w, *e.Compound, cfg, sizes)
		case ir.ElementFunction:
			EmitFunction(w, *e.Function, cfg, false)
		case ir.ElementVariable:
			w.Line(variableStatement(*e.Variable, cfg))
		case ir.ElementTypedefAlias:
			emitTypedefAlias(w, *e.TypedefAlias, cfg)
		case ir.ElementNamespace:
			emitNamespace(w, *e.Namespace, cfg, sizes)
		}
	}
}

func emitNamespace(w *OutputWriter, ns ir.Namespace, cfg Config, sizes map[string]uint64) {
	w.Line("namespace " + ns.Name + " {")
	if !cfg.SkipNamespaceIndentation {
		w.Indent()
	}

	sorted := append([]ir.Element(nil), ns.Children...)
	ir.SortElements(sorted)
	emitElements(w, sorted, cfg, sizes)

	if !cfg.SkipNamespaceIndentation {
		w.Dedent()
	}
	w.Line("} //" + ns.Name)
}

func emitTypedefAlias(w *OutputWriter, t ir.TypedefAlias, cfg Config) {
	line := "typedef " + FormatDeclaration(t.Target, t.Name, cfg) + ";"
	if t.Line != nil {
		line += fmt.Sprintf(" //%d", *t.Line)
	} else if !cfg.DisableNoLineComment {
		line += " //No line number"
	}
	w.Line(line)
}

// collectCompoundSizes walks the whole element tree (including nested
// namespaces and nested types) gathering each named compound's byte_size,
// first occurrence wins, for use by EstimateSize's fallback lookup.
func collectCompoundSizes(elements []ir.Element) map[string]uint64 {
	sizes := make(map[string]uint64)
	var walk func([]ir.Element)
	walk = func(es []ir.Element) {
		for _, e := range es {
			switch e.Kind {
			case ir.ElementCompound:
				collectCompoundSize(e.Compound, sizes)
			case ir.ElementNamespace:
				walk(e.Namespace.Children)
			}
		}
	}
	walk(elements)
	return sizes
}

func collectCompoundSize(c *ir.Compound, sizes map[string]uint64) {
	if c.ByteSize != nil {
		name := c.Name
		if name == "" {
			name = c.TypedefName
		}
		if name != "" {
			if _, ok := sizes[name]; !ok {
				sizes[name] = *c.ByteSize
			}
		}
	}
	for i := range c.NestedTypes {
		collectCompoundSize(&c.NestedTypes[i], sizes)
	}
}
