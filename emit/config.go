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

// Package emit walks the post-processed IR and renders it as pseudo-source:
// a deterministic, configuration-driven text formatter. Identical IR and
// Config always produce byte-identical output.
package emit

// Config mirrors the command-line flags documented in SPEC_FULL.md's
// AMBIENT STACK / Configuration section, one field per flag.
type Config struct {
	ShortenIntTypes          bool
	NoFunctionAddresses      bool
	NoOffsets                bool
	NoFunctionPrototypes     bool
	PointerSize              int // 4 or 8
	DisableNoLineComment     bool
	VerboseClassUsage        bool
	CodeStyle                string // "c" or "c++"
	SkipNamespaceIndentation bool
}

// DefaultConfig returns the configuration main.go falls back to when no
// flags override it.
func DefaultConfig() Config {
	return Config{
		PointerSize: 4,
		CodeStyle:   "c",
	}
}
