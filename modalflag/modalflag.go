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

// Package modalflag parses a command line made of a common set of flags
// followed by an optional sub-mode keyword and that sub-mode's own
// remaining arguments. It is the dispatch mechanism main.go uses to choose
// between the reconstruct and archive-list sub-modes.
package modalflag

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
)

// ParseResult is the outcome of a call to Modes.Parse.
type ParseResult int

const (
	// ParseContinue means parsing succeeded and the caller should proceed.
	ParseContinue ParseResult = iota

	// ParseHelp means help text was printed to Output and the caller should
	// exit without doing any further work.
	ParseHelp
)

// Modes parses flags and an optional sub-mode keyword from a command line.
type Modes struct {
	// Output receives help text.
	Output io.Writer

	args      []string
	fs        *flag.FlagSet
	modes     []string
	mode      string
	path      []string
	remaining []string
}

// NewArgs resets Modes with a new argument list (typically os.Args[1:]).
func (md *Modes) NewArgs(args []string) {
	md.args = args
	md.fs = flag.NewFlagSet("", flag.ContinueOnError)
	md.fs.SetOutput(io.Discard)
	md.modes = nil
	md.mode = ""
	md.path = nil
	md.remaining = nil
}

// AddBool registers a boolean flag, as *flag.FlagSet.Bool does.
func (md *Modes) AddBool(name string, value bool, usage string) *bool {
	if md.fs == nil {
		md.NewArgs(nil)
	}
	return md.fs.Bool(name, value, usage)
}

// AddString registers a string flag, as *flag.FlagSet.String does.
func (md *Modes) AddString(name string, value string, usage string) *string {
	if md.fs == nil {
		md.NewArgs(nil)
	}
	return md.fs.String(name, value, usage)
}

// AddInt registers an integer flag, as *flag.FlagSet.Int does.
func (md *Modes) AddInt(name string, value int, usage string) *int {
	if md.fs == nil {
		md.NewArgs(nil)
	}
	return md.fs.Int(name, value, usage)
}

// AddSubModes declares the accepted sub-mode keywords. The first is the
// default.
func (md *Modes) AddSubModes(modes ...string) {
	md.modes = modes
}

// Mode returns the sub-mode keyword consumed by Parse, or the empty string
// if none was configured or none matched.
func (md *Modes) Mode() string {
	return md.mode
}

// Path returns the slash-joined sequence of sub-modes consumed so far.
func (md *Modes) Path() string {
	return strings.Join(md.path, "/")
}

// RemainingArgs returns the arguments left over after flags and any
// sub-mode keyword have been consumed.
func (md *Modes) RemainingArgs() []string {
	return md.remaining
}

// Parse parses flags, then (if sub-modes were declared) consumes a leading
// sub-mode keyword from what remains.
func (md *Modes) Parse() (ParseResult, error) {
	for _, a := range md.args {
		if a == "-help" || a == "--help" || a == "-h" {
			md.printHelp()
			return ParseHelp, nil
		}
	}

	if md.fs == nil {
		md.fs = flag.NewFlagSet("", flag.ContinueOnError)
	}
	md.fs.SetOutput(io.Discard)

	if err := md.fs.Parse(md.args); err != nil {
		return ParseContinue, err
	}
	md.remaining = md.fs.Args()

	if len(md.modes) > 0 && len(md.remaining) > 0 {
		for _, m := range md.modes {
			if m == md.remaining[0] {
				md.mode = m
				md.path = append(md.path, m)
				md.remaining = md.remaining[1:]
				break
			}
		}
	}

	return ParseContinue, nil
}

func (md *Modes) printHelp() {
	var hasFlags bool
	var buf bytes.Buffer

	if md.fs != nil {
		md.fs.VisitAll(func(*flag.Flag) { hasFlags = true })
		md.fs.SetOutput(&buf)
		md.fs.PrintDefaults()
	}
	hasModes := len(md.modes) > 0

	if !hasFlags && !hasModes {
		fmt.Fprint(md.Output, "No help available\n")
		return
	}

	fmt.Fprint(md.Output, "Usage:\n")
	if hasFlags {
		md.Output.Write(buf.Bytes())
	}
	if hasModes {
		if hasFlags {
			fmt.Fprint(md.Output, "\n")
		}
		fmt.Fprintf(md.Output, "  available sub-modes: %s\n", strings.Join(md.modes, ", "))
		fmt.Fprintf(md.Output, "    default: %s\n", md.modes[0])
	}
}
