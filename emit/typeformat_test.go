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
	"testing"

	"github.com/pxlarchive/dwscribe/emit"
	"github.com/pxlarchive/dwscribe/ir"
	"github.com/pxlarchive/dwscribe/test"
)

func TestStripCompoundPrefix(t *testing.T) {
	test.Equate(t, emit.StripCompoundPrefix("struct Foo"), "Foo")
	test.Equate(t, emit.StripCompoundPrefix("class Bar"), "Bar")
	test.Equate(t, emit.StripCompoundPrefix("union Baz"), "Baz")
	test.Equate(t, emit.StripCompoundPrefix("enum Qux"), "Qux")
	test.Equate(t, emit.StripCompoundPrefix("int"), "int")
}

func TestShortenIntType(t *testing.T) {
	test.Equate(t, emit.ShortenIntType("short int"), "short")
	test.Equate(t, emit.ShortenIntType("unsigned long int"), "unsigned long")
	test.Equate(t, emit.ShortenIntType("int"), "int")
}

func TestFormatTypeName(t *testing.T) {
	cCfg := emit.Config{CodeStyle: "c"}
	test.Equate(t, emit.FormatTypeName("struct Foo", cCfg), "struct Foo")
	test.Equate(t, emit.FormatTypeName("class Bar", cCfg), "Bar")

	verbose := emit.Config{CodeStyle: "c", VerboseClassUsage: true}
	test.Equate(t, emit.FormatTypeName("class Bar", verbose), "class Bar")

	cppCfg := emit.Config{CodeStyle: "c++"}
	test.Equate(t, emit.FormatTypeName("struct Foo", cppCfg), "Foo")
	test.Equate(t, emit.FormatTypeName("class Bar", cppCfg), "Bar")
}

func TestEstimateSizeArrayMultiplication(t *testing.T) {
	cfg := emit.Config{PointerSize: 8}
	ty := ir.TypeInfo{BaseType: "int", ArraySizes: []uint64{4}}
	test.Equate(t, emit.EstimateSize(ty, cfg, nil), uint64(16))
}

func TestEstimateSizePointerUsesPointerSize(t *testing.T) {
	cfg := emit.Config{PointerSize: 8}
	ty := ir.TypeInfo{BaseType: "char", PointerCount: 1}
	test.Equate(t, emit.EstimateSize(ty, cfg, nil), uint64(8))
}

func TestEstimateSizeFallsBackToCompoundSizes(t *testing.T) {
	cfg := emit.Config{PointerSize: 4}
	ty := ir.TypeInfo{BaseType: "struct Widget"}
	sizes := map[string]uint64{"Widget": 12}
	test.Equate(t, emit.EstimateSize(ty, cfg, sizes), uint64(12))
}

func TestEstimateSizeUnknownDefaultsToFour(t *testing.T) {
	cfg := emit.Config{PointerSize: 4}
	ty := ir.TypeInfo{BaseType: "struct Mystery"}
	test.Equate(t, emit.EstimateSize(ty, cfg, nil), uint64(4))
}

func TestFormatDeclarationPointerAndArray(t *testing.T) {
	cfg := emit.Config{CodeStyle: "c"}
	ty := ir.TypeInfo{BaseType: "char", PointerCount: 1}
	test.Equate(t, emit.FormatDeclaration(ty, "name", cfg), "char *name")

	arr := ir.TypeInfo{BaseType: "int", ArraySizes: []uint64{4}}
	test.Equate(t, emit.FormatDeclaration(arr, "values", cfg), "int values[4]")
}

func TestFormatDeclarationConst(t *testing.T) {
	cfg := emit.Config{CodeStyle: "c"}
	ty := ir.TypeInfo{BaseType: "int", IsConst: true}
	test.Equate(t, emit.FormatDeclaration(ty, "MAX", cfg), "const int MAX")
}
