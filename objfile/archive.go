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

package objfile

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pxlarchive/dwscribe/curated"
)

const arMagic = "!<arch>\n"

// ArchiveMember is one named file inside a Unix ar(1) archive - a static
// library built from many .o files, each carrying its own DWARF.
type ArchiveMember struct {
	Name string
	Data []byte
}

// ReadArchive parses the common ar(1) layout: an 8-byte magic, then a
// sequence of 60-byte headers each followed by that member's (even-padded)
// data. It understands the GNU "//" long-filename table and skips the "/"
// and "/SYM64/" symbol tables. No ecosystem library in the retrieval pack
// reads this format, so this is a direct implementation of the on-disk
// layout rather than an adaptation of existing code.
func ReadArchive(r io.Reader) ([]ArchiveMember, error) {
	br := bufio.NewReader(r)

	magic := make([]byte, len(arMagic))
	if _, err := io.ReadFull(br, magic); err != nil {
		return nil, curated.Errorf(curated.IOFailure, err)
	}
	if string(magic) != arMagic {
		return nil, curated.Errorf(curated.UnsupportedFormat, "not an ar archive")
	}

	var longNames string
	var members []ArchiveMember

	for {
		hdr := make([]byte, 60)
		if _, err := io.ReadFull(br, hdr); err != nil {
			if err == io.EOF {
				break
			}
			return nil, curated.Errorf(curated.IOFailure, err)
		}

		name := strings.TrimRight(string(hdr[0:16]), " ")
		sizeField := strings.TrimSpace(string(hdr[48:58]))
		size, err := strconv.ParseInt(sizeField, 10, 64)
		if err != nil {
			return nil, curated.Errorf(curated.ObjectParseFailure, err)
		}

		data := make([]byte, size)
		if _, err := io.ReadFull(br, data); err != nil {
			return nil, curated.Errorf(curated.IOFailure, err)
		}
		if size%2 != 0 {
			if _, err := br.Discard(1); err != nil {
				return nil, curated.Errorf(curated.IOFailure, err)
			}
		}

		switch {
		case name == "//":
			longNames = string(data)
			continue
		case name == "/" || name == "/SYM64/":
			continue
		case strings.HasPrefix(name, "/"):
			if off, err := strconv.Atoi(strings.TrimSuffix(name[1:], "/")); err == nil && off < len(longNames) {
				name = longNames[off:]
				if i := strings.Index(name, "/\n"); i >= 0 {
					name = name[:i]
				}
			}
		default:
			name = strings.TrimSuffix(name, "/")
		}

		members = append(members, ArchiveMember{Name: name, Data: data})
	}

	return members, nil
}
