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

	"github.com/pxlarchive/dwscribe/ir"
)

// maxTypedefDepth bounds how many typedef-of-typedef hops ResolveRaw will
// follow before giving up and surfacing whatever name it last saw. Real
// code never nests typedefs this deep; this only guards pathological or
// corrupt input.
const maxTypedefDepth = 20

// TypeResolver resolves DW_AT_type references into flattened ir.TypeInfo
// values, memoizing every result by the target DIE's absolute offset so a
// type shared by thousands of variables is only ever walked once.
type TypeResolver struct {
	data  *dwarf.Data
	cache map[dwarf.Offset]ir.TypeInfo

	// typedefNames maps a named compound's own offset to the name of a
	// typedef that aliases it. Populated by the entity parsers during a
	// metadata pre-pass, consulted here for typedef substitution.
	typedefNames map[dwarf.Offset]string
}

// NewTypeResolver returns a resolver reading DIEs from data.
func NewTypeResolver(data *dwarf.Data) *TypeResolver {
	return &TypeResolver{
		data:         data,
		cache:        make(map[dwarf.Offset]ir.TypeInfo),
		typedefNames: make(map[dwarf.Offset]string),
	}
}

// RegisterTypedef records that the compound at offset is aliased by name,
// for later typedef substitution. First registration wins.
func (r *TypeResolver) RegisterTypedef(offset dwarf.Offset, name string) {
	if _, ok := r.typedefNames[offset]; !ok {
		r.typedefNames[offset] = name
	}
}

func (r *TypeResolver) entryAt(off dwarf.Offset) *dwarf.Entry {
	reader := r.data.Reader()
	reader.Seek(off)
	entry, err := reader.Next()
	if err != nil || entry == nil {
		return nil
	}
	return entry
}

// Resolve resolves entry's DW_AT_type, substituting typedef names for their
// underlying compound where one is registered.
func (r *TypeResolver) Resolve(entry *dwarf.Entry) ir.TypeInfo {
	return r.resolveAttr(entry, true, 0)
}

// ResolveRaw resolves entry's DW_AT_type without typedef substitution,
// returning the underlying struct/class/union/enum name with its keyword
// prefix. Used when building a TypedefAlias element, which needs the target
// it aliases rather than another typedef's name.
func (r *TypeResolver) ResolveRaw(entry *dwarf.Entry) ir.TypeInfo {
	return r.resolveAttr(entry, false, 0)
}

func (r *TypeResolver) resolveAttr(entry *dwarf.Entry, substitute bool, depth int) ir.TypeInfo {
	off, ok := attrRef(entry, dwarf.AttrType)
	if !ok {
		return ir.NewTypeInfo("void")
	}
	return r.resolveOffset(off, substitute, depth)
}

func (r *TypeResolver) resolveOffset(off dwarf.Offset, substitute bool, depth int) ir.TypeInfo {
	if substitute {
		if cached, ok := r.cache[off]; ok {
			return cached
		}
	}

	target := r.entryAt(off)
	if target == nil {
		return ir.NewTypeInfo("void")
	}

	info := r.resolveEntry(target, substitute, depth)
	if substitute {
		r.cache[off] = info
	}
	return info
}

func (r *TypeResolver) resolveEntry(entry *dwarf.Entry, substitute bool, depth int) ir.TypeInfo {
	switch entry.Tag {
	case dwarf.TagBaseType:
		name, _ := attrString(entry, dwarf.AttrName)
		return ir.NewTypeInfo(name)

	case dwarf.TagPointerType:
		pointee := r.resolveAttr(entry, substitute, depth)
		if pointee.IsFunctionPointer {
			return pointee
		}
		pointee.PointerCount++
		return pointee

	case dwarf.TagArrayType:
		elem := r.resolveAttr(entry, substitute, depth)
		elem.ArraySizes = append(append([]uint64{}, elem.ArraySizes...), r.arrayDimensions(entry)...)
		return elem

	case dwarf.TagConstType:
		t := r.resolveAttr(entry, substitute, depth)
		t.IsConst = true
		return t

	case dwarf.TagVolatileType:
		t := r.resolveAttr(entry, substitute, depth)
		t.IsVolatile = true
		return t

	case dwarf.TagRestrictType:
		t := r.resolveAttr(entry, substitute, depth)
		t.IsRestrict = true
		return t

	case dwarf.TagReferenceType:
		t := r.resolveAttr(entry, substitute, depth)
		t.IsReference = true
		return t

	case dwarf.TagRvalueReferenceType:
		t := r.resolveAttr(entry, substitute, depth)
		t.IsRvalueReference = true
		return t

	case dwarf.TagTypedef:
		if !substitute {
			if depth >= maxTypedefDepth {
				name, _ := attrString(entry, dwarf.AttrName)
				return ir.NewTypeInfo(name)
			}
			return r.resolveAttr(entry, false, depth+1)
		}
		name, _ := attrString(entry, dwarf.AttrName)
		return ir.NewTypeInfo(name)

	case dwarf.TagStructType, dwarf.TagClassType, dwarf.TagUnionType, dwarf.TagEnumerationType:
		return r.resolveCompoundReference(entry, substitute)

	case dwarf.TagSubroutineType:
		return r.resolveSubroutineType(entry, substitute, depth)

	default:
		return ir.NewTypeInfo("void")
	}
}

func (r *TypeResolver) resolveCompoundReference(entry *dwarf.Entry, substitute bool) ir.TypeInfo {
	keyword := compoundKeyword(entry.Tag)

	if substitute {
		if alias, ok := r.typedefNames[entry.Offset]; ok {
			return ir.NewTypeInfo(alias)
		}
	}

	name, hasName := attrString(entry, dwarf.AttrName)
	if hasName && name != "" {
		return ir.NewTypeInfo(keyword + " " + name)
	}
	return ir.NewTypeInfo(keyword + " {anonymous}")
}

func compoundKeyword(tag dwarf.Tag) string {
	switch tag {
	case dwarf.TagStructType:
		return "struct"
	case dwarf.TagClassType:
		return "class"
	case dwarf.TagUnionType:
		return "union"
	case dwarf.TagEnumerationType:
		return "enum"
	default:
		return "struct"
	}
}

func (r *TypeResolver) resolveSubroutineType(entry *dwarf.Entry, substitute bool, depth int) ir.TypeInfo {
	ret := r.resolveAttr(entry, substitute, depth)

	info := ir.NewTypeInfo("")
	info.IsFunctionPointer = true
	info.FunctionReturn = &ret

	kids, err := childrenOf(r.data, entry.Offset)
	if err != nil {
		return info
	}
	for _, child := range kids {
		if child.Tag == dwarf.TagFormalParameter {
			info.FunctionParams = append(info.FunctionParams, r.resolveAttr(child, substitute, depth))
		}
	}
	return info
}

func (r *TypeResolver) arrayDimensions(entry *dwarf.Entry) []uint64 {
	var sizes []uint64

	kids, err := childrenOf(r.data, entry.Offset)
	if err != nil {
		return sizes
	}
	for _, child := range kids {
		if child.Tag != dwarf.TagSubrangeType {
			continue
		}
		if count, ok := attrUint(child, dwarf.AttrCount); ok {
			sizes = append(sizes, count)
		} else if upper, ok := attrUint(child, dwarf.AttrUpperBound); ok {
			sizes = append(sizes, upper+1)
		} else {
			sizes = append(sizes, 0)
		}
	}
	return sizes
}
