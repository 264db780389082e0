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

package dwarfbuild

import "github.com/pxlarchive/dwscribe/ir"

// walkElements visits every compound (recursing into nested types) and
// every function directly reachable from elements, tracking the namespace
// path leading to each. Either visitor may be nil.
func walkElements(elements []ir.Element, path []string, visitCompound func(*ir.Compound, []string), visitFunction func(*ir.Function, []string)) {
	for i := range elements {
		e := &elements[i]
		switch e.Kind {
		case ir.ElementCompound:
			walkCompound(e.Compound, path, visitCompound, visitFunction)
		case ir.ElementFunction:
			if visitFunction != nil {
				visitFunction(e.Function, path)
			}
		case ir.ElementNamespace:
			childPath := append(append([]string{}, path...), e.Namespace.Name)
			walkElements(e.Namespace.Children, childPath, visitCompound, visitFunction)
		}
	}
}

func walkCompound(c *ir.Compound, path []string, visitCompound func(*ir.Compound, []string), visitFunction func(*ir.Function, []string)) {
	if visitCompound != nil {
		visitCompound(c, path)
	}
	for i := range c.NestedTypes {
		walkCompound(&c.NestedTypes[i], path, visitCompound, visitFunction)
	}
}

type funcRef struct {
	fn   *ir.Function
	path []string
}

type methodRef struct {
	compound *ir.Compound
	index    int
	path     []string
}

// matchIntraCU runs the first method-matching pass (4.F.1): associating
// each method declaration inside a compound with its out-of-line
// definition elsewhere in the same compile unit, and marking top-level
// definitions that turn out to be methods as such.
func (b *Builder) matchIntraCU(cu *ir.CompileUnit) {
	var funcRefs []funcRef
	var methodRefs []methodRef

	walkElements(cu.Elements, nil,
		func(c *ir.Compound, path []string) {
			for i := range c.Methods {
				m := &c.Methods[i]
				if m.NamespacePath == nil {
					m.NamespacePath = append([]string{}, path...)
				}
				methodRefs = append(methodRefs, methodRef{compound: c, index: i, path: path})
			}
		},
		func(fn *ir.Function, path []string) {
			funcRefs = append(funcRefs, funcRef{fn: fn, path: path})
		},
	)

	defsBySpec := make(map[uint64]*ir.Function)
	defsByLinkage := make(map[string]*ir.Function)
	for _, fr := range funcRefs {
		if fr.fn.SpecificationOffset != nil {
			defsBySpec[*fr.fn.SpecificationOffset] = fr.fn
		}
		if fr.fn.LinkageName != "" {
			defsByLinkage[fr.fn.LinkageName] = fr.fn
		}
	}

	for _, mr := range methodRefs {
		m := &mr.compound.Methods[mr.index]
		def := lookupDefinition(m, defsBySpec, defsByLinkage)
		if def != nil {
			adoptDefinition(m, def)
		}
	}

	classBySpec := make(map[uint64]methodRef)
	classByLinkage := make(map[string]methodRef)
	for _, mr := range methodRefs {
		m := mr.compound.Methods[mr.index]
		if m.DeclOffset != nil {
			classBySpec[*m.DeclOffset] = mr
		}
		if m.LinkageName != "" {
			classByLinkage[m.LinkageName] = mr
		}
	}

	for _, fr := range funcRefs {
		if fr.fn.ClassName != "" {
			continue
		}

		var mr *methodRef
		if fr.fn.SpecificationOffset != nil {
			if r, ok := classBySpec[*fr.fn.SpecificationOffset]; ok {
				mr = &r
			}
		}
		if mr == nil && fr.fn.LinkageName != "" {
			if r, ok := classByLinkage[fr.fn.LinkageName]; ok {
				mr = &r
			}
		}
		if mr != nil {
			fr.fn.IsMethod = true
			fr.fn.ClassName = mr.compound.Name
			fr.fn.NamespacePath = append([]string{}, mr.path...)
			fr.fn.IsConstructor = fr.fn.Name != "" && fr.fn.Name == mr.compound.Name
		}
	}
}

func lookupDefinition(m *ir.Function, bySpec map[uint64]*ir.Function, byLinkage map[string]*ir.Function) *ir.Function {
	if m.DeclOffset != nil {
		if d, ok := bySpec[*m.DeclOffset]; ok {
			return d
		}
	}
	if m.LinkageName != "" {
		if d, ok := byLinkage[m.LinkageName]; ok {
			return d
		}
	}
	return nil
}

func adoptDefinition(m, def *ir.Function) {
	m.Parameters = def.Parameters
	m.Variables = def.Variables
	m.LexicalBlocks = def.LexicalBlocks
	m.InlinedCalls = def.InlinedCalls
	m.Labels = def.Labels
	m.HasBody = def.HasBody
	m.LowPC = def.LowPC
	m.HighPC = def.HighPC
}

// matchCrossCU runs the second method-matching pass (4.F.2), after every
// compile unit has been parsed: a method whose declaration was pulled into
// many CUs via a shared header, but whose single .cpp definition lives in
// just one of them, is matched solely by linkage name against every CU's
// functions.
func (b *Builder) matchCrossCU(units []*ir.CompileUnit) {
	global := make(map[string]*ir.Function)
	for _, cu := range units {
		walkElements(cu.Elements, nil, nil, func(fn *ir.Function, _ []string) {
			if fn.LinkageName == "" || !fn.HasBody {
				return
			}
			if _, ok := global[fn.LinkageName]; !ok {
				global[fn.LinkageName] = fn
			}
		})
	}

	for _, cu := range units {
		walkElements(cu.Elements, nil, func(c *ir.Compound, path []string) {
			for i := range c.Methods {
				m := &c.Methods[i]
				if len(m.Parameters) > 0 || m.LinkageName == "" {
					continue
				}
				if def, ok := global[m.LinkageName]; ok {
					adoptDefinition(m, def)
					if def.ClassName == "" {
						def.IsMethod = true
						def.ClassName = c.Name
						def.NamespacePath = append([]string{}, path...)
						def.IsConstructor = def.Name != "" && def.Name == c.Name
					}
				}
			}
		}, nil)
	}
}
