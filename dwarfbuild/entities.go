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

import (
	"debug/dwarf"
	"strings"

	"github.com/pxlarchive/dwscribe/ir"
)

// parseElements parses a flat list of sibling DIEs - the direct children of
// a compile unit or a namespace - into the five kinds of Element that can
// appear at that level.
func (b *Builder) parseElements(kids []*dwarf.Entry) ([]ir.Element, error) {
	typedefByTarget := make(map[dwarf.Offset]*dwarf.Entry)
	consumed := make(map[dwarf.Offset]bool)
	for _, child := range kids {
		if child.Tag != dwarf.TagTypedef {
			continue
		}
		target, ok := attrRef(child, dwarf.AttrType)
		if !ok {
			continue
		}
		typedefByTarget[target] = child
		if name, ok := attrString(child, dwarf.AttrName); ok {
			b.resolver.RegisterTypedef(target, name)
		}
	}

	var elements []ir.Element
	for _, child := range kids {
		switch child.Tag {
		case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType, dwarf.TagEnumerationType:
			compound, err := b.parseCompound(child)
			if err != nil {
				return nil, err
			}
			if td, ok := typedefByTarget[child.Offset]; ok && !consumed[td.Offset] && !attrFlag(child, dwarf.AttrDeclaration) {
				if sameDeclFile(attrUintPtr(td, dwarf.AttrDeclFile), compound.DeclFile) {
					name, _ := attrString(td, dwarf.AttrName)
					compound.IsTypedef = true
					compound.TypedefName = name
					compound.TypedefLine = attrIntPtr(td, dwarf.AttrDeclLine)
					consumed[td.Offset] = true
				}
			}
			elements = append(elements, ir.Element{Kind: ir.ElementCompound, Compound: compound})

		case dwarf.TagTypedef:
			if consumed[child.Offset] {
				continue
			}
			elements = append(elements, ir.Element{Kind: ir.ElementTypedefAlias, TypedefAlias: b.parseTypedefAlias(child)})

		case dwarf.TagSubprogram:
			fn, ok, err := b.parseTopLevelFunction(child)
			if err != nil {
				return nil, err
			}
			if ok {
				elements = append(elements, ir.Element{Kind: ir.ElementFunction, Function: fn})
			}

		case dwarf.TagVariable:
			v := b.parseVariable(child)
			elements = append(elements, ir.Element{Kind: ir.ElementVariable, Variable: &v})

		case dwarf.TagNamespace:
			ns, err := b.parseNamespace(child)
			if err != nil {
				return nil, err
			}
			elements = append(elements, ir.Element{Kind: ir.ElementNamespace, Namespace: ns})
		}
	}
	return elements, nil
}

func sameDeclFile(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func compoundKindFromTag(tag dwarf.Tag) ir.CompoundKind {
	switch tag {
	case dwarf.TagClassType:
		return ir.CompoundClass
	case dwarf.TagUnionType:
		return ir.CompoundUnion
	case dwarf.TagEnumerationType:
		return ir.CompoundEnum
	default:
		return ir.CompoundStruct
	}
}

func isVptrName(name string) bool {
	return name == "_vptr" || name == "__vptr" ||
		strings.HasPrefix(name, "_vptr$") || strings.HasPrefix(name, "_vptr.")
}

func isVirtual(entry *dwarf.Entry) bool {
	v, ok := attrUint(entry, dwarf.AttrVirtuality)
	return ok && v != 0
}

func linkageName(entry *dwarf.Entry) string {
	n, _ := attrString(entry, dwarf.AttrLinkageName)
	return n
}

func hasInline(entry *dwarf.Entry) bool {
	_, ok := attrUint(entry, dwarf.AttrInline)
	return ok
}

func offsetPtr(off dwarf.Offset) *uint64 {
	v := uint64(off)
	return &v
}

// parseCompound builds a struct/class/union/enum, including nested types,
// members, method declarations and base classes.
func (b *Builder) parseCompound(entry *dwarf.Entry) (*ir.Compound, error) {
	name, _ := attrString(entry, dwarf.AttrName)
	compound := &ir.Compound{
		Name:          name,
		Kind:          compoundKindFromTag(entry.Tag),
		Line:          attrIntPtr(entry, dwarf.AttrDeclLine),
		ByteSize:      attrUintPtr(entry, dwarf.AttrByteSize),
		DeclFile:      attrUintPtr(entry, dwarf.AttrDeclFile),
		OriginalIndex: b.nextIndex(),
	}

	kids, err := childrenOf(b.data, entry.Offset)
	if err != nil {
		return nil, err
	}

	for _, child := range kids {
		switch child.Tag {
		case dwarf.TagMember:
			v := b.parseVariable(child)
			if isVptrName(v.Name) {
				compound.IsVirtual = true
			}
			compound.Members = append(compound.Members, v)

		case dwarf.TagSubprogram:
			method, ok, err := b.parseMethodDeclaration(child, compound.Name)
			if err != nil {
				return nil, err
			}
			if ok {
				compound.Methods = append(compound.Methods, *method)
			}

		case dwarf.TagInheritance:
			compound.BaseClasses = append(compound.BaseClasses, b.parseBaseClass(child))

		case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType, dwarf.TagEnumerationType:
			nested, err := b.parseCompound(child)
			if err != nil {
				return nil, err
			}
			compound.NestedTypes = append(compound.NestedTypes, *nested)

		case dwarf.TagEnumerator:
			compound.Enumerators = append(compound.Enumerators, b.parseEnumerator(child))
		}
	}

	return compound, nil
}

func (b *Builder) parseEnumerator(entry *dwarf.Entry) ir.Enumerator {
	name, _ := attrString(entry, dwarf.AttrName)
	e := ir.Enumerator{Name: name}
	if v, ok := attrInt(entry, dwarf.AttrConstValue); ok {
		e.Value = &v
	}
	return e
}

func (b *Builder) parseBaseClass(entry *dwarf.Entry) ir.BaseClass {
	t := b.resolver.Resolve(entry)
	return ir.BaseClass{
		TypeName:      t.BaseType,
		Offset:        attrLocationExpr(entry, dwarf.AttrDataMemberLoc),
		Accessibility: accessibility(entry),
		IsVirtual:     isVirtual(entry),
	}
}

// parseVariable builds a Variable from a member, global, or local DIE -
// the three tags (member, variable, formal_parameter's sibling concerns)
// that share an attribute shape.
func (b *Builder) parseVariable(entry *dwarf.Entry) ir.Variable {
	name, _ := attrString(entry, dwarf.AttrName)
	v := ir.Variable{
		Name:          name,
		Type:          b.resolver.Resolve(entry),
		Line:          attrIntPtr(entry, dwarf.AttrDeclLine),
		Accessibility: accessibility(entry),
		Offset:        attrLocationExpr(entry, dwarf.AttrDataMemberLoc),
		BitSize:       attrUintPtr(entry, dwarf.AttrBitSize),
		DeclFile:      attrUintPtr(entry, dwarf.AttrDeclFile),
		ConstValue:    constValue(entry),
		OriginalIndex: b.nextIndex(),
	}
	if bo := attrUintPtr(entry, dwarf.AttrDataBitOffset); bo != nil {
		v.BitOffset = bo
	} else {
		v.BitOffset = attrUintPtr(entry, dwarf.AttrBitOffset)
	}
	v.Type.IsExtern = attrFlag(entry, dwarf.AttrExternal)
	return v
}

func (b *Builder) parseParameter(entry *dwarf.Entry) ir.Parameter {
	name, _ := attrString(entry, dwarf.AttrName)
	return ir.Parameter{
		Name: name,
		Type: b.resolver.Resolve(entry),
		Line: attrIntPtr(entry, dwarf.AttrDeclLine),
	}
}

// parseTopLevelFunction handles a subprogram DIE found directly inside a
// compile unit or namespace. A pure declaration with no specification
// (i.e. not a method definition referring back to a class) contributes
// nothing - it is the class-side declaration, parsed separately, that
// survives.
func (b *Builder) parseTopLevelFunction(entry *dwarf.Entry) (*ir.Function, bool, error) {
	isDecl := attrFlag(entry, dwarf.AttrDeclaration)
	_, hasSpec := attrRef(entry, dwarf.AttrSpecification)

	if isDecl && !hasSpec {
		return nil, false, nil
	}

	fn, err := b.buildFunction(entry)
	if err != nil {
		return nil, false, err
	}
	return fn, true, nil
}

// parseMethodDeclaration handles a subprogram DIE found inside a compound.
// It is almost always a declaration with no body; className seeds the
// method's class context and constructor detection.
func (b *Builder) parseMethodDeclaration(entry *dwarf.Entry, className string) (*ir.Function, bool, error) {
	fn, err := b.buildFunction(entry)
	if err != nil {
		return nil, false, err
	}

	fn.IsMethod = true
	fn.ClassName = className
	fn.DeclOffset = offsetPtr(entry.Offset)
	fn.IsConstructor = fn.Name != "" && fn.Name == className
	return fn, true, nil
}

// buildFunction extracts the attributes and body common to every
// subprogram DIE, borrowing name/type/accessibility/linkage-name from its
// DW_AT_specification target when the entry is a definition.
func (b *Builder) buildFunction(entry *dwarf.Entry) (*ir.Function, error) {
	fn := &ir.Function{OriginalIndex: b.nextIndex()}

	declEntry := entry
	if specOff, ok := attrRef(entry, dwarf.AttrSpecification); ok {
		fn.SpecificationOffset = offsetPtr(specOff)
		if spec := b.entryAt(specOff); spec != nil {
			declEntry = spec
		}
	}

	name, _ := attrString(declEntry, dwarf.AttrName)
	fn.Name = name
	fn.Return = b.resolver.Resolve(declEntry)
	fn.Accessibility = accessibility(declEntry)
	fn.IsVirtual = isVirtual(declEntry)
	fn.LinkageName = linkageName(declEntry)
	fn.DeclFile = attrUintPtr(declEntry, dwarf.AttrDeclFile)
	fn.Line = attrIntPtr(declEntry, dwarf.AttrDeclLine)
	fn.IsExternal = attrFlag(entry, dwarf.AttrExternal)
	fn.IsInline = hasInline(entry)
	fn.IsArtificial = attrFlag(entry, dwarf.AttrArtificial)
	fn.IsDestructor = strings.HasPrefix(fn.Name, "~")

	if low, ok := attrUint(entry, dwarf.AttrLowpc); ok {
		fn.LowPC = &low
		if high, ok := attrUint(entry, dwarf.AttrHighpc); ok {
			if high < low {
				high = low + high
			}
			fn.HighPC = &high
		}
		fn.HasBody = true
	}

	kids, err := childrenOf(b.data, entry.Offset)
	if err != nil {
		return nil, err
	}

	for _, child := range kids {
		switch child.Tag {
		case dwarf.TagFormalParameter:
			fn.Parameters = append(fn.Parameters, b.parseParameter(child))
		case dwarf.TagVariable:
			fn.Variables = append(fn.Variables, b.parseVariable(child))
		case dwarf.TagLexDwarfBlock:
			block, err := b.parseLexicalBlock(child)
			if err != nil {
				return nil, err
			}
			fn.LexicalBlocks = append(fn.LexicalBlocks, *block)
		case dwarf.TagInlinedSubroutine:
			fn.InlinedCalls = append(fn.InlinedCalls, b.parseInlinedSubroutine(child))
		case dwarf.TagLabel:
			fn.Labels = append(fn.Labels, b.parseLabel(child))
		}
	}

	return fn, nil
}

func (b *Builder) parseLexicalBlock(entry *dwarf.Entry) (*ir.LexicalBlock, error) {
	block := &ir.LexicalBlock{
		Line:          attrIntPtr(entry, dwarf.AttrDeclLine),
		OriginalIndex: b.nextIndex(),
	}

	kids, err := childrenOf(b.data, entry.Offset)
	if err != nil {
		return nil, err
	}

	for _, child := range kids {
		switch child.Tag {
		case dwarf.TagVariable:
			block.Variables = append(block.Variables, b.parseVariable(child))
		case dwarf.TagLexDwarfBlock:
			nested, err := b.parseLexicalBlock(child)
			if err != nil {
				return nil, err
			}
			block.NestedBlocks = append(block.NestedBlocks, *nested)
		case dwarf.TagInlinedSubroutine:
			block.InlinedCalls = append(block.InlinedCalls, b.parseInlinedSubroutine(child))
		case dwarf.TagLabel:
			block.Labels = append(block.Labels, b.parseLabel(child))
		}
	}
	return block, nil
}

func (b *Builder) parseInlinedSubroutine(entry *dwarf.Entry) ir.InlinedSubroutine {
	var name string
	if origin, ok := attrRef(entry, dwarf.AttrAbstractOrigin); ok {
		name = b.origins[origin]
	}
	line := attrIntPtr(entry, dwarf.AttrCallLine)
	if line == nil {
		line = attrIntPtr(entry, dwarf.AttrDeclLine)
	}
	return ir.InlinedSubroutine{Name: name, Line: line}
}

func (b *Builder) parseLabel(entry *dwarf.Entry) ir.Label {
	name, _ := attrString(entry, dwarf.AttrName)
	return ir.Label{Name: name, Line: attrIntPtr(entry, dwarf.AttrDeclLine)}
}

func (b *Builder) parseNamespace(entry *dwarf.Entry) (*ir.Namespace, error) {
	name, _ := attrString(entry, dwarf.AttrName)
	ns := &ir.Namespace{
		Name:          name,
		Line:          attrIntPtr(entry, dwarf.AttrDeclLine),
		OriginalIndex: b.nextIndex(),
	}

	kids, err := childrenOf(b.data, entry.Offset)
	if err != nil {
		return nil, err
	}
	elements, err := b.parseElements(kids)
	if err != nil {
		return nil, err
	}
	ns.Children = elements
	return ns, nil
}

func (b *Builder) parseTypedefAlias(entry *dwarf.Entry) *ir.TypedefAlias {
	name, _ := attrString(entry, dwarf.AttrName)
	return &ir.TypedefAlias{
		Name:          name,
		Target:        b.resolver.ResolveRaw(entry),
		Line:          attrIntPtr(entry, dwarf.AttrDeclLine),
		DeclFile:      attrUintPtr(entry, dwarf.AttrDeclFile),
		OriginalIndex: b.nextIndex(),
	}
}
