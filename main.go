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

// Command dwscribe reconstructs pseudo C/C++ source from the DWARF debug
// information embedded in an object file or static-library archive.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/pxlarchive/dwscribe/curated"
	"github.com/pxlarchive/dwscribe/dwarfbuild"
	"github.com/pxlarchive/dwscribe/emit"
	"github.com/pxlarchive/dwscribe/ir"
	"github.com/pxlarchive/dwscribe/logger"
	"github.com/pxlarchive/dwscribe/modalflag"
	"github.com/pxlarchive/dwscribe/objfile"
	"github.com/pxlarchive/dwscribe/postprocess"
	"github.com/pxlarchive/dwscribe/resources"
)

const arMagic = "!<arch>\n"

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var md modalflag.Modes
	md.Output = os.Stderr
	md.NewArgs(args)

	shortenIntTypes := md.AddBool("shorten-int-types", false, "shorten multi-word integer type names")
	noFunctionAddresses := md.AddBool("no-function-addresses", false, "omit function address comments")
	noOffsets := md.AddBool("no-offsets", false, "omit member offset comments")
	noFunctionPrototypes := md.AddBool("no-function-prototypes", false, "omit linkage-name metadata comments")
	pointerSize := md.AddInt("pointer-size", 4, "pointer size in bytes (4 or 8)")
	disableNoLineComment := md.AddBool("disable-no-line-comment", false, "omit the //No line number fallback comment")
	verboseClassUsage := md.AddBool("verbose-class-usage", false, "keep the class keyword in C code style")
	codeStyle := md.AddString("code-style", "c", "output style: c or c++")
	skipNamespaceIndentation := md.AddBool("skip-namespace-indentation", false, "don't indent namespace bodies")
	outputDir := md.AddString("o", "", "output directory (default .dwscribe/output)")
	dumpIRGraph := md.AddString("dump-ir-graph", "", "write a Graphviz dot of the parsed IR to this path")
	profileAddr := md.AddString("profile-addr", "", "address to serve live stats on, e.g. :6060")

	md.AddSubModes("reconstruct", "archive-list")

	result, err := md.Parse()
	if err != nil {
		return curated.Errorf(curated.IOFailure, err)
	}
	if result == modalflag.ParseHelp {
		return nil
	}

	cfg := emit.Config{
		ShortenIntTypes:          *shortenIntTypes,
		NoFunctionAddresses:      *noFunctionAddresses,
		NoOffsets:                *noOffsets,
		NoFunctionPrototypes:     *noFunctionPrototypes,
		PointerSize:              *pointerSize,
		DisableNoLineComment:     *disableNoLineComment,
		VerboseClassUsage:        *verboseClassUsage,
		CodeStyle:                *codeStyle,
		SkipNamespaceIndentation: *skipNamespaceIndentation,
	}

	outDir := *outputDir
	if outDir == "" {
		outDir, err = resources.JoinPath("output")
		if err != nil {
			return curated.Errorf(curated.IOFailure, err)
		}
	}

	paths := md.RemainingArgs()
	if len(paths) == 0 {
		return curated.Errorf(curated.IOFailure, "no input files given")
	}

	if *profileAddr != "" {
		v := statsview.New(viewer.WithAddr(*profileAddr))
		go v.Start()
	}

	mode := md.Mode()
	if mode == "" {
		mode = "reconstruct"
	}

	switch mode {
	case "archive-list":
		return runArchiveList(paths)
	default:
		return runReconstruct(paths, cfg, outDir, *dumpIRGraph)
	}
}

// runArchiveList is the archive-list diagnostic sub-mode: list a static
// library's members without touching DWARF at all.
func runArchiveList(paths []string) error {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return curated.Errorf(curated.IOFailure, err)
		}

		members, err := objfile.ReadArchive(bytes.NewReader(data))
		if err != nil {
			return curated.Errorf(curated.ArchiveMemberFailure, p, err)
		}

		fmt.Printf("%s:\n", p)
		for _, mem := range members {
			fmt.Printf("  %s (%d bytes)\n", mem.Name, len(mem.Data))
		}
	}
	return nil
}

// runReconstruct is the default sub-mode: parse DWARF out of every input
// (expanding archives into their members), build the IR, post-process it,
// emit pseudo source, and write one file per decl_file bucket.
func runReconstruct(paths []string, cfg emit.Config, outputDir, dumpIRGraph string) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return curated.Errorf(curated.IOFailure, err)
	}

	var allUnits []*ir.CompileUnit

	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return curated.Errorf(curated.IOFailure, err)
		}

		objects, err := expandObjects(p, data)
		if err != nil {
			return err
		}

		for _, obj := range objects {
			units, err := buildUnits(obj.name, obj.data)
			if err != nil {
				logger.Logf("reconstruct", "%s: %v", obj.name, err)
				continue
			}
			allUnits = append(allUnits, units...)
		}
	}

	if dumpIRGraph != "" {
		if err := writeIRGraph(dumpIRGraph, allUnits); err != nil {
			logger.Logf("dump-ir-graph", "%v", err)
		}
	}

	for _, cu := range allUnits {
		if err := writeCompileUnit(cu, cfg, outputDir); err != nil {
			logger.Logf("reconstruct", "%s: %v", cu.Name, err)
		}
	}

	return nil
}

type namedObject struct {
	name string
	data []byte
}

// expandObjects turns one input path into one or more named object-file
// byte slices - itself, if it's a single object file, or each of its
// members, if it's an ar(1) archive.
func expandObjects(p string, data []byte) ([]namedObject, error) {
	if len(data) >= len(arMagic) && string(data[:len(arMagic)]) == arMagic {
		members, err := objfile.ReadArchive(bytes.NewReader(data))
		if err != nil {
			return nil, curated.Errorf(curated.ArchiveMemberFailure, p, err)
		}

		objects := make([]namedObject, 0, len(members))
		for _, m := range members {
			objects = append(objects, namedObject{name: m.Name, data: m.Data})
		}
		return objects, nil
	}

	return []namedObject{{name: path.Base(p), data: data}}, nil
}

func buildUnits(name string, data []byte) ([]*ir.CompileUnit, error) {
	if objfile.DetectFormat(data) == objfile.FormatUnknown {
		return nil, curated.Errorf(curated.UnsupportedFormat, name)
	}

	dwarfData, err := objfile.Load(data)
	if err != nil {
		// objfile.Load already tags its errors (NoDWARFData, DWARFParseFailure,
		// IOFailure); re-wrapping here would collapse that taxonomy.
		return nil, err
	}

	units, err := dwarfbuild.Build(dwarfData)
	if err != nil {
		return nil, curated.Errorf(curated.DWARFParseFailure, err)
	}
	return units, nil
}

// writeCompileUnit merges and splits one compile unit's elements, then
// writes one pseudo-source file per decl_file bucket under outputDir.
func writeCompileUnit(cu *ir.CompileUnit, cfg emit.Config, outputDir string) error {
	merged := postprocess.MergeNamespaces(cu.Elements)
	buckets := postprocess.SplitByFile(merged)

	for file, elements := range buckets {
		name := outputFileName(cu, file)
		out := emit.Generate(elements, cfg)

		fullPath := path.Join(outputDir, name)
		if err := os.WriteFile(fullPath, []byte(out), 0o644); err != nil {
			return curated.Errorf(curated.IOFailure, err)
		}
	}
	return nil
}

// outputFileName mirrors original_source/src/main.rs: the basename of the
// file table entry (or the CU name, when the elements weren't split by
// file), normalized and falling back to unknown.c.
func outputFileName(cu *ir.CompileUnit, file uint64) string {
	var raw string
	if file != postprocess.NoFile {
		raw = cu.FileTable[file]
	}
	if raw == "" {
		raw = cu.Name
	}
	return path.Base(postprocess.NormalizePath(raw))
}

func writeIRGraph(p string, units []*ir.CompileUnit) error {
	f, err := os.Create(p)
	if err != nil {
		return curated.Errorf(curated.IOFailure, err)
	}
	defer f.Close()

	memviz.Map(f, &units)
	return nil
}
