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

package dwarfbuild

import "debug/dwarf"

// childrenOf reads the direct children of the DIE at off - the entries one
// absolute depth below it - with each child's own descendants skipped.
// A caller that wants to recurse further into one of those children does
// so by calling childrenOf again with that child's offset.
//
// This re-seeks a fresh *dwarf.Reader per call rather than threading one
// cursor through the whole tree. debug/dwarf's Reader has no notion of
// "absolute depth" of its own - just Children plus a null-entry sibling
// terminator - so the depth-first, entry-depth-bounded walk the DIE walker
// needs (direct children of a compile unit at depth 1, of a namespace /
// compound / function at depth 2, and so on) is reproduced here by
// re-rooting at each container rather than tracking one counter globally;
// a subtree parser still stops exactly at its own terminating null entry,
// which is what matters.
func childrenOf(data *dwarf.Data, off dwarf.Offset) ([]*dwarf.Entry, error) {
	reader := data.Reader()
	reader.Seek(off)

	entry, err := reader.Next()
	if err != nil {
		return nil, err
	}
	if entry == nil || !entry.Children {
		return nil, nil
	}

	var out []*dwarf.Entry
	for {
		child, err := reader.Next()
		if err != nil {
			return nil, err
		}
		if child == nil || isNullEntry(child) {
			break
		}
		out = append(out, child)
		if child.Children {
			reader.SkipChildren()
		}
	}
	return out, nil
}
