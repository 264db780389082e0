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

package emit_test

import (
	"strings"
	"testing"

	"github.com/pxlarchive/dwscribe/emit"
	"github.com/pxlarchive/dwscribe/ir"
	"github.com/pxlarchive/dwscribe/test"
)

func ip(v int) *int       { return &v }
func up(v uint64) *uint64 { return &v }
func ip64(v int64) *int64 { return &v }

// TestEnumTypedefSameFile covers spec.md §8 scenario 1.
func TestEnumTypedefSameFile(t *testing.T) {
	c := ir.Compound{
		Name: "State",
		Kind: ir.CompoundEnum,
		Enumerators: []ir.Enumerator{
			{Name: "IDLE", Value: ip64(0)},
			{Name: "BUSY", Value: ip64(1)},
		},
		Line:        ip(10),
		ByteSize:    up(4),
		IsTypedef:   true,
		TypedefName: "State_t",
		TypedefLine: ip(12),
	}

	w := emit.NewOutputWriter()
	emit.EmitCompound(w, c, emit.Config{CodeStyle: "c"}, nil)

	want := "typedef enum State {\n" +
		"    IDLE = 0, // 0x0\n" +
		"    BUSY = 1, // 0x1\n" +
		"} State_t; //12 // sizeof: 4\n"
	test.Equate(t, w.String(), want)
}

// TestMemberPadding covers spec.md §8 scenario 2.
func TestMemberPadding(t *testing.T) {
	c := ir.Compound{
		Name: "S",
		Kind: ir.CompoundStruct,
		Members: []ir.Variable{
			{Name: "a", Type: ir.NewTypeInfo("char"), Offset: up(0), Line: ip(2)},
			{Name: "b", Type: ir.NewTypeInfo("int"), Offset: up(4), Line: ip(3)},
		},
	}

	w := emit.NewOutputWriter()
	emit.EmitCompound(w, c, emit.Config{CodeStyle: "c", PointerSize: 8}, nil)

	out := w.String()
	test.Equate(t, strings.Contains(out, "// [3 bytes padding for alignment]"), true)
	test.Equate(t, strings.Contains(out, "char a; //2 @ offset 0"), true)
	test.Equate(t, strings.Contains(out, "int b; //3 @ offset 4"), true)
}

func TestMemberPaddingSingularByte(t *testing.T) {
	c := ir.Compound{
		Name: "S",
		Kind: ir.CompoundStruct,
		Members: []ir.Variable{
			{Name: "a", Type: ir.NewTypeInfo("char"), Offset: up(0), Line: ip(2)},
			{Name: "b", Type: ir.NewTypeInfo("char"), Offset: up(2), Line: ip(3)},
		},
	}

	w := emit.NewOutputWriter()
	emit.EmitCompound(w, c, emit.Config{CodeStyle: "c", PointerSize: 8}, nil)

	out := w.String()
	test.Equate(t, strings.Contains(out, "// [1 byte padding for alignment]"), true)
}

func TestForwardDeclarationSuppressedWhenAnonymous(t *testing.T) {
	c := ir.Compound{Kind: ir.CompoundStruct}
	w := emit.NewOutputWriter()
	emit.EmitCompound(w, c, emit.Config{CodeStyle: "c"}, nil)
	test.Equate(t, w.String(), "")
}

func TestForwardDeclarationNamed(t *testing.T) {
	c := ir.Compound{Name: "Widget", Kind: ir.CompoundStruct}
	w := emit.NewOutputWriter()
	emit.EmitCompound(w, c, emit.Config{CodeStyle: "c"}, nil)
	test.Equate(t, w.String(), "struct Widget;\n")
}

func TestClassForwardDeclaration(t *testing.T) {
	c := ir.Compound{Name: "Widget", Kind: ir.CompoundClass}
	w := emit.NewOutputWriter()
	emit.EmitCompound(w, c, emit.Config{CodeStyle: "c"}, nil)
	test.Equate(t, w.String(), "class Widget;\n")
}
