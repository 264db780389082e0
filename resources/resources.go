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

// Package resources locates this tool's own on-disk artifacts: the default
// output directory, IR-graph dumps, and anything else written alongside a
// reconstruction run rather than specified explicitly on the command line.
package resources

import "path"

// rootDir is the directory, relative to the current working directory, all
// resource paths are rooted under.
const rootDir = ".dwscribe"

// JoinPath joins parts onto the tool's resource directory. Empty parts are
// skipped so that JoinPath("", "baz") and JoinPath("baz", "") both collapse
// sensibly.
func JoinPath(parts ...string) (string, error) {
	p := []string{rootDir}
	for _, s := range parts {
		if s == "" {
			continue
		}
		p = append(p, s)
	}
	return path.Join(p...), nil
}
