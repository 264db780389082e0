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

// Package dwarfbuild walks a compile unit's DIE tree and builds this tool's
// flattened ir.CompileUnit out of it: attribute extraction, type
// resolution, entity parsing and method matching all live here.
package dwarfbuild

import (
	"debug/dwarf"

	"github.com/pxlarchive/dwscribe/ir"
	"github.com/pxlarchive/dwscribe/leb128"
)

// dwOpPlusUconst is the one single-operation location expression the
// member-location and inheritance-offset attributes are ever encoded as
// when they aren't a bare constant.
const dwOpPlusUconst = 0x23

// attrUint reads attr as an unsigned integer regardless of whether the
// underlying DWARF form decoded to Go's signed or unsigned representation.
// Every numeric width (Data1/2/4/8, Addr, FileIndex) lands here.
func attrUint(entry *dwarf.Entry, attr dwarf.Attr) (uint64, bool) {
	switch v := entry.Val(attr).(type) {
	case int64:
		return uint64(v), true
	case uint64:
		return v, true
	default:
		return 0, false
	}
}

// attrInt is attrUint's signed counterpart, for attributes that are
// naturally signed (DW_AT_const_value on a signed enumerator, for
// instance).
func attrInt(entry *dwarf.Entry, attr dwarf.Attr) (int64, bool) {
	switch v := entry.Val(attr).(type) {
	case int64:
		return v, true
	case uint64:
		return int64(v), true
	default:
		return 0, false
	}
}

func attrString(entry *dwarf.Entry, attr dwarf.Attr) (string, bool) {
	v, ok := entry.Val(attr).(string)
	return v, ok
}

func attrFlag(entry *dwarf.Entry, attr dwarf.Attr) bool {
	v, ok := entry.Val(attr).(bool)
	return ok && v
}

// attrRef reads a reference attribute. debug/dwarf already normalizes both
// unit-relative (DW_FORM_ref1..ref8) and section-relative
// (DW_FORM_ref_addr) forms into one absolute dwarf.Offset, so there is no
// separate "convert to unit-relative" step to perform here - every
// reference this tool sees is already directly seekable.
func attrRef(entry *dwarf.Entry, attr dwarf.Attr) (dwarf.Offset, bool) {
	v, ok := entry.Val(attr).(dwarf.Offset)
	return v, ok
}

// attrUintPtr returns attrUint as a *uint64, or nil if absent - the shape
// every optional numeric field in the ir package wants.
func attrUintPtr(entry *dwarf.Entry, attr dwarf.Attr) *uint64 {
	v, ok := attrUint(entry, attr)
	if !ok {
		return nil
	}
	return &v
}

func attrIntPtr(entry *dwarf.Entry, attr dwarf.Attr) *int {
	v, ok := attrInt(entry, attr)
	if !ok {
		return nil
	}
	r := int(v)
	return &r
}

// attrLocationExpr decodes either a bare Udata constant or a single
// DW_OP_plus_uconst expression into an unsigned offset. Used for
// DW_AT_data_member_location and the inheritance offset, the two places the
// spec allows either encoding.
func attrLocationExpr(entry *dwarf.Entry, attr dwarf.Attr) *uint64 {
	v := entry.Val(attr)
	switch x := v.(type) {
	case int64:
		u := uint64(x)
		return &u
	case uint64:
		return &x
	case []byte:
		if len(x) > 0 && x[0] == dwOpPlusUconst {
			val, _ := leb128.DecodeULEB128(x[1:])
			return &val
		}
	}
	return nil
}

// accessibility maps the DWARF DW_ACCESS_* encoding (1=public, 2=protected,
// 3=private) to ir.Accessibility.
func accessibility(entry *dwarf.Entry) ir.Accessibility {
	v, ok := attrUint(entry, dwarf.AttrAccessibility)
	if !ok {
		return ir.AccessUnspecified
	}
	switch v {
	case 1:
		return ir.AccessPublic
	case 2:
		return ir.AccessProtected
	case 3:
		return ir.AccessPrivate
	default:
		return ir.AccessUnspecified
	}
}

// constValue reads DW_AT_const_value, tagged with whichever signedness the
// underlying form actually carried.
func constValue(entry *dwarf.Entry) ir.ConstValue {
	v := entry.Val(dwarf.AttrConstValue)
	switch x := v.(type) {
	case int64:
		return ir.ConstValue{Kind: ir.ConstValueSigned, Signed: x}
	case uint64:
		return ir.ConstValue{Kind: ir.ConstValueUnsigned, Unsigned: x}
	default:
		return ir.ConstValue{}
	}
}

// isNullEntry reports whether entry is the zero-valued DIE debug/dwarf
// synthesizes to mark the end of a sibling list.
func isNullEntry(entry *dwarf.Entry) bool {
	return !entry.Children && len(entry.Field) == 0 && entry.Offset == 0 && entry.Tag == 0
}
