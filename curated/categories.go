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

package curated

// The six terminal error patterns a reconstruction run can fail with.
// Everything else (a missing attribute, an unresolvable type reference, an
// unhandled tag) is tolerated in-IR and never reaches these.
const (
	IOFailure            = "io failure: %v"
	UnsupportedFormat    = "unsupported object format: %v"
	ObjectParseFailure   = "object file parse failure: %v"
	DWARFParseFailure    = "dwarf parse failure: %v"
	NoDWARFData          = "no dwarf data"
	ArchiveMemberFailure = "archive member %q: %v"
)
