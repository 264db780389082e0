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

package emit

import "github.com/ianlancetaylor/demangle"

// Demangle is the symbol-demangling collaborator (spec.md §6): given a raw
// linkage name, it returns a human-readable form and true, or the input
// unchanged and false when it isn't a mangled name this library recognizes.
func Demangle(linkage string) (string, bool) {
	if linkage == "" {
		return "", false
	}
	result, err := demangle.ToString(linkage)
	if err != nil {
		return linkage, false
	}
	return result, true
}
