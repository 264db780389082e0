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

package ir

import "sort"

// SortElements orders elements the way the emitter wants to see them:
// source line ascending, elements carrying no line of their own sorting
// after every element that has one, ties broken by parse order so the
// output stays deterministic across runs.
func SortElements(elements []Element) {
	sort.SliceStable(elements, func(i, j int) bool {
		li, lj := elements[i].Line(), elements[j].Line()
		switch {
		case li == nil && lj == nil:
			return elements[i].OriginalIndex() < elements[j].OriginalIndex()
		case li == nil:
			return false
		case lj == nil:
			return true
		case *li != *lj:
			return *li < *lj
		default:
			return elements[i].OriginalIndex() < elements[j].OriginalIndex()
		}
	})
}
