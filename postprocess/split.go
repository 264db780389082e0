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

package postprocess

import "github.com/pxlarchive/dwscribe/ir"

// NoFile is the bucket key used for elements that carry no decl_file of
// their own - an anonymous compound with no DW_AT_decl_file, say. It is
// chosen far outside the range of real DWARF file-table indices.
const NoFile = ^uint64(0)

// SplitByFile groups elements by the file their DW_AT_decl_file attribute
// names. Nested namespaces are split recursively first: each file that
// appears among a namespace's own children gets its own skeleton copy of
// that namespace - same name and line, but holding only the children
// belonging to that file - which then takes part in its parent's split.
func SplitByFile(elements []ir.Element) map[uint64][]ir.Element {
	buckets := make(map[uint64][]ir.Element)

	for _, e := range elements {
		if e.Kind == ir.ElementNamespace {
			for file, children := range SplitByFile(e.Namespace.Children) {
				skeleton := ir.Namespace{
					Name:          e.Namespace.Name,
					Line:          e.Namespace.Line,
					Children:      children,
					OriginalIndex: e.Namespace.OriginalIndex,
				}
				buckets[file] = append(buckets[file], ir.Element{Kind: ir.ElementNamespace, Namespace: &skeleton})
			}
			continue
		}

		file := NoFile
		if df := e.DeclFile(); df != nil {
			file = *df
		}
		buckets[file] = append(buckets[file], e)
	}

	for file := range buckets {
		ir.SortElements(buckets[file])
	}
	return buckets
}
