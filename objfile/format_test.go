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

package objfile_test

import (
	"testing"

	"github.com/pxlarchive/dwscribe/objfile"
	"github.com/pxlarchive/dwscribe/test"
)

func TestDetectFormat(t *testing.T) {
	test.Equate(t, objfile.DetectFormat([]byte{0x7f, 'E', 'L', 'F', 0, 0}), objfile.FormatELF)
	test.Equate(t, objfile.DetectFormat([]byte{0xcf, 0xfa, 0xed, 0xfe, 0, 0}), objfile.FormatMachO)
	test.Equate(t, objfile.DetectFormat([]byte{0xfe, 0xed, 0xfa, 0xcf, 0, 0}), objfile.FormatMachO)
	test.Equate(t, objfile.DetectFormat([]byte{'M', 'Z', 0, 0}), objfile.FormatPE)
	test.Equate(t, objfile.DetectFormat([]byte{0, 0, 0, 0}), objfile.FormatUnknown)
	test.Equate(t, objfile.DetectFormat(nil), objfile.FormatUnknown)
}

func TestFormatString(t *testing.T) {
	test.Equate(t, objfile.FormatELF.String(), "ELF")
	test.Equate(t, objfile.FormatMachO.String(), "Mach-O")
	test.Equate(t, objfile.FormatPE.String(), "PE")
	test.Equate(t, objfile.FormatUnknown.String(), "unknown")
}
