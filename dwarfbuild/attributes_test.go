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
	"testing"

	"github.com/pxlarchive/dwscribe/ir"
	"github.com/pxlarchive/dwscribe/test"
)

func entryWith(fields ...dwarf.Field) *dwarf.Entry {
	return &dwarf.Entry{Field: fields}
}

func TestAttrUintAcceptsSignedOrUnsigned(t *testing.T) {
	e := entryWith(dwarf.Field{Attr: dwarf.AttrByteSize, Val: int64(4)})
	v, ok := attrUint(e, dwarf.AttrByteSize)
	test.ExpectSuccess(t, ok)
	test.Equate(t, v, uint64(4))

	e2 := entryWith(dwarf.Field{Attr: dwarf.AttrByteSize, Val: uint64(8)})
	v2, ok2 := attrUint(e2, dwarf.AttrByteSize)
	test.ExpectSuccess(t, ok2)
	test.Equate(t, v2, uint64(8))

	e3 := entryWith()
	_, ok3 := attrUint(e3, dwarf.AttrByteSize)
	test.ExpectFailure(t, ok3)
}

func TestAttrIntAcceptsSignedOrUnsigned(t *testing.T) {
	e := entryWith(dwarf.Field{Attr: dwarf.AttrConstValue, Val: int64(-4)})
	v, ok := attrInt(e, dwarf.AttrConstValue)
	test.ExpectSuccess(t, ok)
	test.Equate(t, v, int64(-4))
}

func TestAttrStringAndFlag(t *testing.T) {
	e := entryWith(
		dwarf.Field{Attr: dwarf.AttrName, Val: "widget"},
		dwarf.Field{Attr: dwarf.AttrExternal, Val: true},
	)
	s, ok := attrString(e, dwarf.AttrName)
	test.ExpectSuccess(t, ok)
	test.Equate(t, s, "widget")

	test.Equate(t, attrFlag(e, dwarf.AttrExternal), true)
	test.Equate(t, attrFlag(e, dwarf.AttrArtificial), false)
}

func TestAttrRef(t *testing.T) {
	e := entryWith(dwarf.Field{Attr: dwarf.AttrType, Val: dwarf.Offset(0x42)})
	off, ok := attrRef(e, dwarf.AttrType)
	test.ExpectSuccess(t, ok)
	test.Equate(t, off, dwarf.Offset(0x42))
}

func TestAttrUintPtrAndIntPtr(t *testing.T) {
	e := entryWith()
	test.Equate(t, attrUintPtr(e, dwarf.AttrByteSize) == nil, true)
	test.Equate(t, attrIntPtr(e, dwarf.AttrByteSize) == nil, true)

	e2 := entryWith(dwarf.Field{Attr: dwarf.AttrByteSize, Val: uint64(12)})
	p := attrUintPtr(e2, dwarf.AttrByteSize)
	test.Equate(t, *p, uint64(12))

	ip := attrIntPtr(e2, dwarf.AttrByteSize)
	test.Equate(t, *ip, 12)
}

func TestAttrLocationExprBareConstant(t *testing.T) {
	e := entryWith(dwarf.Field{Attr: dwarf.AttrDataMemberLoc, Val: uint64(4)})
	v := attrLocationExpr(e, dwarf.AttrDataMemberLoc)
	test.Equate(t, *v, uint64(4))
}

func TestAttrLocationExprPlusUconst(t *testing.T) {
	// DW_OP_plus_uconst (0x23) followed by ULEB128(20)
	e := entryWith(dwarf.Field{Attr: dwarf.AttrDataMemberLoc, Val: []byte{0x23, 20}})
	v := attrLocationExpr(e, dwarf.AttrDataMemberLoc)
	test.Equate(t, *v, uint64(20))
}

func TestAttrLocationExprUnsupportedOpReturnsNil(t *testing.T) {
	e := entryWith(dwarf.Field{Attr: dwarf.AttrDataMemberLoc, Val: []byte{0x03, 1, 2, 3, 4, 5, 6, 7, 8}})
	v := attrLocationExpr(e, dwarf.AttrDataMemberLoc)
	test.Equate(t, v == nil, true)
}

func TestAccessibilityMapping(t *testing.T) {
	pub := entryWith(dwarf.Field{Attr: dwarf.AttrAccessibility, Val: int64(1)})
	test.Equate(t, accessibility(pub), ir.AccessPublic)

	prot := entryWith(dwarf.Field{Attr: dwarf.AttrAccessibility, Val: int64(2)})
	test.Equate(t, accessibility(prot), ir.AccessProtected)

	priv := entryWith(dwarf.Field{Attr: dwarf.AttrAccessibility, Val: int64(3)})
	test.Equate(t, accessibility(priv), ir.AccessPrivate)

	unspecified := entryWith()
	test.Equate(t, accessibility(unspecified), ir.AccessUnspecified)
}

func TestConstValueSignedAndUnsigned(t *testing.T) {
	signed := entryWith(dwarf.Field{Attr: dwarf.AttrConstValue, Val: int64(-1)})
	cv := constValue(signed)
	test.Equate(t, cv.Kind, ir.ConstValueSigned)
	test.Equate(t, cv.Signed, int64(-1))

	unsigned := entryWith(dwarf.Field{Attr: dwarf.AttrConstValue, Val: uint64(7)})
	cv2 := constValue(unsigned)
	test.Equate(t, cv2.Kind, ir.ConstValueUnsigned)
	test.Equate(t, cv2.Unsigned, uint64(7))
}

func TestIsNullEntry(t *testing.T) {
	test.Equate(t, isNullEntry(&dwarf.Entry{}), true)
	test.Equate(t, isNullEntry(&dwarf.Entry{Tag: dwarf.TagStructType}), false)
}
