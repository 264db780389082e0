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
	"debug/elf"
)

// relocWidth classifies a relocation as a 32-bit absolute write, a 64-bit
// absolute write, or something this reconstructor has no business
// understanding.
type relocWidth int

const (
	relocNone relocWidth = iota
	relocAbs32
	relocAbs64
)

// classifyReloc maps a machine-specific relocation type to the two widths
// this tool applies. Anything else is left alone; object code relocations
// (branches, PC-relative fixups) never touch DWARF sections in practice.
func classifyReloc(machine elf.Machine, relType uint32) relocWidth {
	switch machine {
	case elf.EM_386:
		if elf.R_386(relType) == elf.R_386_32 {
			return relocAbs32
		}
	case elf.EM_ARM:
		switch elf.R_ARM(relType) {
		case elf.R_ARM_ABS32, elf.R_ARM_TARGET1:
			return relocAbs32
		}
	case elf.EM_X86_64:
		switch elf.R_X86_64(relType) {
		case elf.R_X86_64_32, elf.R_X86_64_32S:
			return relocAbs32
		case elf.R_X86_64_64:
			return relocAbs64
		}
	case elf.EM_AARCH64:
		switch elf.R_AARCH64(relType) {
		case elf.R_AARCH64_ABS32:
			return relocAbs32
		case elf.R_AARCH64_ABS64:
			return relocAbs64
		}
	case elf.EM_MIPS:
		if elf.R_MIPS(relType) == elf.R_MIPS_32 {
			return relocAbs32
		}
	}
	return relocNone
}

// applyELFRelocations returns section's data with every 32/64-bit absolute
// relocation patched in place. The returned slice is a private copy, safe to
// hold onto for as long as parsing needs it.
//
// Grounded on the teacher's coprocessor/developer/relocate.go, generalized
// from a single hard-coded ARM case to the handful of absolute relocation
// kinds that matter across the machines debug/elf understands, and to both
// REL (implicit addend) and RELA (explicit addend) relocation sections.
func applyELFRelocations(ef *elf.File, section *elf.Section) ([]byte, error) {
	data, err := section.Data()
	if err != nil {
		return nil, err
	}

	rel := ef.Section(".rel" + section.Name)
	explicitAddend := false
	if rel == nil {
		rel = ef.Section(".rela" + section.Name)
		explicitAddend = true
	}
	if rel == nil {
		return data, nil
	}

	relData, err := rel.Data()
	if err != nil {
		return nil, err
	}

	symbols, err := ef.Symbols()
	if err != nil {
		return nil, err
	}

	is64 := ef.Class == elf.ELFCLASS64
	entSize := 8
	if explicitAddend {
		entSize = 12
	}
	if is64 {
		entSize *= 2
	}

	for i := 0; i+entSize <= len(relData); i += entSize {
		var offset uint64
		var info uint64
		var addend int64

		if is64 {
			offset = ef.ByteOrder.Uint64(relData[i:])
			info = ef.ByteOrder.Uint64(relData[i+8:])
			if explicitAddend {
				addend = int64(ef.ByteOrder.Uint64(relData[i+16:]))
			}
		} else {
			offset = uint64(ef.ByteOrder.Uint32(relData[i:]))
			info = uint64(ef.ByteOrder.Uint32(relData[i+4:]))
			if explicitAddend {
				addend = int64(int32(ef.ByteOrder.Uint32(relData[i+8:])))
			}
		}

		var symbolIdx uint32
		var relType uint32
		if is64 {
			symbolIdx = uint32(info >> 32)
			relType = uint32(info)
		} else {
			symbolIdx = uint32(info >> 8)
			relType = uint32(info & 0xff)
		}

		width := classifyReloc(ef.Machine, relType)
		if width == relocNone {
			continue
		}

		// section symbols contribute zero - the addend alone carries the
		// meaningful offset for a relocation against a section.
		var symValue uint64
		if symbolIdx > 0 && int(symbolIdx-1) < len(symbols) {
			sym := symbols[symbolIdx-1]
			if elf.ST_TYPE(sym.Info) != elf.STT_SECTION {
				symValue = sym.Value
			}
		}

		if !explicitAddend {
			if width == relocAbs64 {
				if int(offset)+8 > len(data) {
					continue
				}
				addend = int64(ef.ByteOrder.Uint64(data[offset:]))
			} else {
				if int(offset)+4 > len(data) {
					continue
				}
				addend = int64(int32(ef.ByteOrder.Uint32(data[offset:])))
			}
		}

		v := symValue + uint64(addend)

		switch width {
		case relocAbs64:
			if int(offset)+8 > len(data) {
				continue
			}
			ef.ByteOrder.PutUint64(data[offset:], v)
		case relocAbs32:
			if int(offset)+4 > len(data) {
				continue
			}
			ef.ByteOrder.PutUint32(data[offset:], uint32(v))
		}
	}

	return data, nil
}
