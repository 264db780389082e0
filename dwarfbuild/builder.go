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

import (
	"debug/dwarf"

	"github.com/pxlarchive/dwscribe/curated"
	"github.com/pxlarchive/dwscribe/ir"
)

// Builder walks one object file's DWARF data and produces this tool's
// flattened ir.CompileUnit for each compile unit it contains.
type Builder struct {
	data     *dwarf.Data
	resolver *TypeResolver

	// origins maps a subprogram DIE's absolute offset to its name, built by
	// a pre-pass over every unit before any of them are parsed. An
	// inlined_subroutine's own name always comes from here, via its
	// abstract_origin reference, never from an attribute of its own.
	origins map[dwarf.Offset]string

	seq int
}

// NewBuilder returns a Builder reading from data.
func NewBuilder(data *dwarf.Data) *Builder {
	return &Builder{
		data:     data,
		resolver: NewTypeResolver(data),
		origins:  make(map[dwarf.Offset]string),
	}
}

// Build parses every compile unit in data.
func Build(data *dwarf.Data) ([]*ir.CompileUnit, error) {
	return NewBuilder(data).Build()
}

func (b *Builder) nextIndex() int {
	b.seq++
	return b.seq
}

// Build parses every compile unit this Builder's data contains, then runs
// the intra-CU and cross-CU method-matching passes (4.F).
func (b *Builder) Build() ([]*ir.CompileUnit, error) {
	if err := b.prescanOrigins(); err != nil {
		return nil, curated.Errorf(curated.DWARFParseFailure, err)
	}

	var units []*ir.CompileUnit
	reader := b.data.Reader()
	for {
		entry, err := reader.Next()
		if err != nil {
			return nil, curated.Errorf(curated.DWARFParseFailure, err)
		}
		if entry == nil {
			break
		}
		if entry.Tag != dwarf.TagCompileUnit {
			if entry.Children {
				reader.SkipChildren()
			}
			continue
		}

		cu, err := b.buildCompileUnit(entry)
		if err != nil {
			return nil, err
		}
		units = append(units, cu)

		if entry.Children {
			reader.SkipChildren()
		}
	}

	b.matchCrossCU(units)

	return units, nil
}

// prescanOrigins walks every DIE exactly once, recording each subprogram's
// offset and name before any real parsing begins.
func (b *Builder) prescanOrigins() error {
	reader := b.data.Reader()
	for {
		entry, err := reader.Next()
		if err != nil {
			return err
		}
		if entry == nil {
			break
		}
		if entry.Tag == dwarf.TagSubprogram {
			if name, ok := attrString(entry, dwarf.AttrName); ok {
				b.origins[entry.Offset] = name
			}
		}
	}
	return nil
}

func (b *Builder) buildCompileUnit(entry *dwarf.Entry) (*ir.CompileUnit, error) {
	name, _ := attrString(entry, dwarf.AttrName)
	producer, _ := attrString(entry, dwarf.AttrProducer)

	cu := &ir.CompileUnit{
		Name:      name,
		Producer:  producer,
		FileTable: b.buildFileTable(entry),
	}

	kids, err := childrenOf(b.data, entry.Offset)
	if err != nil {
		return nil, curated.Errorf(curated.DWARFParseFailure, err)
	}

	elements, err := b.parseElements(kids)
	if err != nil {
		return nil, err
	}
	cu.Elements = elements

	b.matchIntraCU(cu)

	return cu, nil
}

func (b *Builder) buildFileTable(entry *dwarf.Entry) map[uint64]string {
	table := make(map[uint64]string)

	lr, err := b.data.LineReader(entry)
	if err != nil || lr == nil {
		return table
	}
	for i, f := range lr.Files() {
		if f == nil {
			continue
		}
		table[uint64(i)] = f.Name
	}
	return table
}

func (b *Builder) entryAt(off dwarf.Offset) *dwarf.Entry {
	reader := b.data.Reader()
	reader.Seek(off)
	entry, err := reader.Next()
	if err != nil || entry == nil {
		return nil
	}
	return entry
}
