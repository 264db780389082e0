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

package postprocess_test

import (
	"testing"

	"github.com/pxlarchive/dwscribe/ir"
	"github.com/pxlarchive/dwscribe/postprocess"
	"github.com/pxlarchive/dwscribe/test"
)

func intPtr(v int) *int { return &v }

func varElement(name string, idx int) ir.Element {
	v := ir.Variable{Name: name, Type: ir.NewTypeInfo("int"), OriginalIndex: idx}
	return ir.Element{Kind: ir.ElementVariable, Variable: &v}
}

func TestMergeNamespacesCombinesRepeatedOccurrences(t *testing.T) {
	first := ir.Namespace{
		Name:          "engine",
		Line:          intPtr(10),
		OriginalIndex: 0,
		Children:      []ir.Element{varElement("a", 1)},
	}
	second := ir.Namespace{
		Name:          "engine",
		Line:          intPtr(3),
		OriginalIndex: 5,
		Children:      []ir.Element{varElement("b", 6)},
	}

	merged := postprocess.MergeNamespaces([]ir.Element{
		{Kind: ir.ElementNamespace, Namespace: &first},
		{Kind: ir.ElementNamespace, Namespace: &second},
	})

	test.Equate(t, len(merged), 1)
	test.Equate(t, merged[0].Kind, ir.ElementNamespace)
	test.Equate(t, *merged[0].Namespace.Line, 3)
	test.Equate(t, len(merged[0].Namespace.Children), 2)
}

func TestMergeNamespacesDropsDuplicateVariables(t *testing.T) {
	ns := ir.Namespace{
		Name: "engine",
		Children: []ir.Element{
			varElement("counter", 0),
			varElement("counter", 1),
			varElement("other", 2),
		},
	}

	merged := postprocess.MergeNamespaces([]ir.Element{{Kind: ir.ElementNamespace, Namespace: &ns}})

	test.Equate(t, len(merged), 1)
	test.Equate(t, len(merged[0].Namespace.Children), 2)
}

func TestMergeNamespacesRecursesIntoNestedDuplicates(t *testing.T) {
	innerA := ir.Namespace{Name: "detail", Children: []ir.Element{varElement("x", 0)}}
	innerB := ir.Namespace{Name: "detail", Children: []ir.Element{varElement("y", 1)}}
	outerA := ir.Namespace{Name: "engine", Children: []ir.Element{{Kind: ir.ElementNamespace, Namespace: &innerA}}}
	outerB := ir.Namespace{Name: "engine", Children: []ir.Element{{Kind: ir.ElementNamespace, Namespace: &innerB}}}

	merged := postprocess.MergeNamespaces([]ir.Element{
		{Kind: ir.ElementNamespace, Namespace: &outerA},
		{Kind: ir.ElementNamespace, Namespace: &outerB},
	})

	test.Equate(t, len(merged), 1)
	inner := merged[0].Namespace.Children
	test.Equate(t, len(inner), 1)
	test.Equate(t, len(inner[0].Namespace.Children), 2)
}
