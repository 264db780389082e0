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

// Package postprocess cleans up the flattened IR once the DWARF tree has
// been fully walked: namespaces are merged and deduplicated, elements are
// bucketed by declaration file, and file paths are normalised for use as
// output filenames.
package postprocess

import "github.com/pxlarchive/dwscribe/ir"

// nsGroup accumulates every occurrence of a namespace of a given name
// across a sibling list, before those occurrences are flattened into one.
type nsGroup struct {
	name     string
	line     *int
	index    int
	children []ir.Element
}

// MergeNamespaces groups elements by namespace name and folds repeated
// namespace bodies into one, dropping duplicate non-namespace children
// (by their dedup key) while keeping every nested namespace's own children
// so they can be merged in turn. Namespaces reported multiple times by
// different compile units - the common case for a header-declared
// namespace - end up as a single tree with the earliest line number seen.
func MergeNamespaces(elements []ir.Element) []ir.Element {
	var nsOrder []string
	groups := make(map[string]*nsGroup)

	seenKeys := make(map[string]bool)
	var flat []ir.Element

	for _, e := range elements {
		if e.Kind == ir.ElementNamespace {
			g, ok := groups[e.Namespace.Name]
			if !ok {
				g = &nsGroup{name: e.Namespace.Name, line: e.Namespace.Line, index: e.Namespace.OriginalIndex}
				groups[e.Namespace.Name] = g
				nsOrder = append(nsOrder, e.Namespace.Name)
			} else if earlier(e.Namespace.Line, g.line) {
				g.line = e.Namespace.Line
			}
			g.children = append(g.children, e.Namespace.Children...)
			continue
		}

		if key := e.DedupKey(); key != "" {
			if seenKeys[key] {
				continue
			}
			seenKeys[key] = true
		}
		flat = append(flat, e)
	}

	for _, name := range nsOrder {
		g := groups[name]
		merged := ir.Namespace{
			Name:          g.name,
			Line:          g.line,
			Children:      MergeNamespaces(g.children),
			OriginalIndex: g.index,
		}
		flat = append(flat, ir.Element{Kind: ir.ElementNamespace, Namespace: &merged})
	}

	ir.SortElements(flat)
	return flat
}

// earlier reports whether candidate is an earlier line than current,
// treating a nil line as "no information yet" rather than as smallest.
func earlier(candidate, current *int) bool {
	if candidate == nil {
		return false
	}
	if current == nil {
		return true
	}
	return *candidate < *current
}
