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

// Package objfile loads the DWARF debug sections out of an object file of
// any of the three container formats the toolchain is likely to produce
// (ELF, Mach-O, PE), applying relocations to each section along the way.
package objfile

import (
	"debug/macho"
	"encoding/binary"
)

// Format is the container format sniffed from an object file's leading
// bytes.
type Format int

const (
	FormatUnknown Format = iota
	FormatELF
	FormatMachO
	FormatPE
)

// String names the format, for diagnostics.
func (f Format) String() string {
	switch f {
	case FormatELF:
		return "ELF"
	case FormatMachO:
		return "Mach-O"
	case FormatPE:
		return "PE"
	default:
		return "unknown"
	}
}

// DetectFormat sniffs data's magic number. It never consults a file
// extension - archive members carry no name of their own worth trusting.
func DetectFormat(data []byte) Format {
	switch {
	case len(data) >= 4 && data[0] == 0x7f && data[1] == 'E' && data[2] == 'L' && data[3] == 'F':
		return FormatELF
	case len(data) >= 4 && isMachOMagic(data[:4]):
		return FormatMachO
	case len(data) >= 2 && binary.LittleEndian.Uint16(data[:2]) == 0x5a4d:
		return FormatPE
	default:
		return FormatUnknown
	}
}

func isMachOMagic(b []byte) bool {
	be := binary.BigEndian.Uint32(b)
	switch be {
	case macho.Magic32, macho.Magic64, macho.MagicFat:
		return true
	}
	le := binary.LittleEndian.Uint32(b)
	switch le {
	case macho.Magic32, macho.Magic64:
		return true
	}
	return false
}
