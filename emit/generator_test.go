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
	"github.com/pxlarchive/dwscribe/postprocess"
	"github.com/pxlarchive/dwscribe/test"
)

// TestNamespaceSplitByFileThenGenerate covers spec.md §8 scenario 4 end to
// end: a namespace split by decl_file, then each file's skeleton rendered.
func TestNamespaceSplitByFileThenGenerate(t *testing.T) {
	fn := ir.Function{Name: "f", Return: ir.NewTypeInfo("void"), IsExternal: true, DeclFile: up(1), Line: ip(4)}
	compound := ir.Compound{Name: "Widget", Kind: ir.CompoundStruct, DeclFile: up(2)}

	ns := ir.Namespace{
		Name: "N",
		Children: []ir.Element{
			{Kind: ir.ElementFunction, Function: &fn},
			{Kind: ir.ElementCompound, Compound: &compound},
		},
	}

	buckets := postprocess.SplitByFile([]ir.Element{{Kind: ir.ElementNamespace, Namespace: &ns}})
	test.Equate(t, len(buckets), 2)

	fileOne := emit.Generate(buckets[1], emit.Config{CodeStyle: "c"})
	test.Equate(t, strings.Contains(fileOne, "namespace N {"), true)
	test.Equate(t, strings.Contains(fileOne, "void f()"), true)
	test.Equate(t, strings.Contains(fileOne, "Widget"), false)

	fileTwo := emit.Generate(buckets[2], emit.Config{CodeStyle: "c"})
	test.Equate(t, strings.Contains(fileTwo, "namespace N {"), true)
	test.Equate(t, strings.Contains(fileTwo, "struct Widget;"), true)
	test.Equate(t, strings.Contains(fileTwo, "void f()"), false)
}

func TestGenerateOrdersByLine(t *testing.T) {
	later := ir.Variable{Name: "b", Type: ir.NewTypeInfo("int"), Line: ip(10)}
	earlier := ir.Variable{Name: "a", Type: ir.NewTypeInfo("int"), Line: ip(2)}

	elements := []ir.Element{
		{Kind: ir.ElementVariable, Variable: &later},
		{Kind: ir.ElementVariable, Variable: &earlier},
	}

	out := emit.Generate(elements, emit.Config{CodeStyle: "c"})
	test.Equate(t, strings.Index(out, "int a") < strings.Index(out, "int b"), true)
}
