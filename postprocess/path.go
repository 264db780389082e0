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

import (
	"path"
	"strings"
)

// fallbackPath is used whenever a DWARF file-table entry normalizes away
// to nothing - an empty string, or a path made up entirely of "." and ".."
// components.
const fallbackPath = "unknown.c"

// NormalizePath turns a raw DWARF file-table path - which may use
// either slash convention, and may contain "." or ".." components left
// over from how the compiler recorded its include path - into a clean,
// forward-slash-separated relative path suitable for use as an output
// filename. Inputs that carry no real path information collapse to
// fallbackPath.
func NormalizePath(raw string) string {
	if raw == "" {
		return fallbackPath
	}

	slashed := strings.ReplaceAll(raw, `\`, "/")
	var stack []string
	for _, part := range strings.Split(slashed, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		default:
			stack = append(stack, part)
		}
	}

	if len(stack) == 0 {
		return fallbackPath
	}
	return path.Join(stack...)
}
