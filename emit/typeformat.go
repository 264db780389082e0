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

package emit

import (
	"fmt"
	"strings"

	"github.com/pxlarchive/dwscribe/ir"
)

// compoundPrefixes are the DWARF-derived keyword prefixes TypeInfo.BaseType
// may carry, in the order StripCompoundPrefix tries them.
var compoundPrefixes = []string{"struct ", "class ", "union ", "enum "}

// StripCompoundPrefix removes a leading "struct "/"class "/"union "/"enum "
// from name, if present.
func StripCompoundPrefix(name string) string {
	for _, p := range compoundPrefixes {
		if strings.HasPrefix(name, p) {
			return strings.TrimPrefix(name, p)
		}
	}
	return name
}

// intTypeShortenings maps the verbose "int"-suffixed spellings DWARF
// producers emit to the shorter form C programmers actually write.
var intTypeShortenings = map[string]string{
	"short int":              "short",
	"signed short int":       "short",
	"unsigned short int":     "unsigned short",
	"long int":               "long",
	"signed long int":        "long",
	"unsigned long int":      "unsigned long",
	"long long int":          "long long",
	"signed long long int":   "long long",
	"unsigned long long int": "unsigned long long",
	"signed int":             "int",
}

// ShortenIntType applies the shorten_int_types normalization to a base type
// name, leaving anything it doesn't recognize untouched.
func ShortenIntType(name string) string {
	if short, ok := intTypeShortenings[name]; ok {
		return short
	}
	return name
}

// FormatTypeName renders a base type name under cfg's code_style and
// verbose_class_usage settings, after an optional shorten_int_types pass.
//
// code_style "c++" strips every compound keyword prefix. code_style "c"
// keeps struct/union/enum prefixes (the native C spelling), and keeps the
// "class" prefix too only when verbose_class_usage is set - "class" isn't
// a C keyword, so by default it is dropped in C-style output and the name
// alone is shown.
func FormatTypeName(name string, cfg Config) string {
	if cfg.ShortenIntTypes {
		name = ShortenIntType(name)
	}

	if cfg.CodeStyle == "c++" {
		return StripCompoundPrefix(name)
	}

	if strings.HasPrefix(name, "class ") && !cfg.VerboseClassUsage {
		return strings.TrimPrefix(name, "class ")
	}
	return name
}

// primitiveSize returns the byte size of a known C/C++ primitive type name,
// and whether it was recognized. "long" and its variants are keyed off
// pointerSize, matching common LP64/ILP32 data models.
func primitiveSize(name string, pointerSize int) (uint64, bool) {
	switch name {
	case "void":
		return 0, true
	case "char", "signed char", "unsigned char", "bool", "_Bool":
		return 1, true
	case "short", "short int", "signed short", "signed short int",
		"unsigned short", "unsigned short int":
		return 2, true
	case "int", "signed", "signed int", "unsigned", "unsigned int", "float":
		return 4, true
	case "long", "signed long", "long int", "signed long int",
		"unsigned long", "unsigned long int":
		return uint64(pointerSize), true
	case "long long", "signed long long", "long long int", "signed long long int",
		"unsigned long long", "unsigned long long int":
		return 8, true
	case "double":
		return 8, true
	case "long double":
		return 16, true
	default:
		return 0, false
	}
}

// defaultUnknownSize is what EstimateSize falls back to when a base type is
// neither a recognized primitive nor a previously-seen compound.
const defaultUnknownSize = 4

// EstimateSize estimates the in-memory size of t for padding detection,
// consulting compoundSizes (byte sizes collected from every parsed
// Compound, keyed by bare name with any keyword prefix stripped) when t's
// base type isn't a primitive. Arrays multiply by the product of their
// dimensions; a zero (undetermined) dimension counts as one.
func EstimateSize(t ir.TypeInfo, cfg Config, compoundSizes map[string]uint64) uint64 {
	var base uint64
	switch {
	case t.IsFunctionPointer, t.PointerCount > 0, t.IsReference, t.IsRvalueReference:
		base = uint64(cfg.PointerSize)
	default:
		if sz, ok := primitiveSize(t.BaseType, cfg.PointerSize); ok {
			base = sz
		} else if sz, ok := compoundSizes[StripCompoundPrefix(t.BaseType)]; ok {
			base = sz
		} else {
			base = defaultUnknownSize
		}
	}

	for _, n := range t.ArraySizes {
		if n == 0 {
			n = 1
		}
		base *= n
	}
	return base
}

// FormatDeclaration renders a full C/C++ declarator: storage qualifiers,
// cv-qualifiers, base type, pointer/reference markers, the declared name,
// and array dimensions. A function-pointer TypeInfo is rendered as a
// function-pointer declarator instead.
func FormatDeclaration(t ir.TypeInfo, name string, cfg Config) string {
	if t.IsFunctionPointer {
		return formatFunctionPointerDeclaration(t, name, cfg)
	}

	var b strings.Builder
	if t.IsExtern {
		b.WriteString("extern ")
	}
	if t.IsStatic {
		b.WriteString("static ")
	}
	if t.IsConst {
		b.WriteString("const ")
	}
	if t.IsVolatile {
		b.WriteString("volatile ")
	}
	b.WriteString(FormatTypeName(t.BaseType, cfg))
	if t.IsRestrict {
		b.WriteString(" restrict")
	}

	stars := strings.Repeat("*", t.PointerCount)
	switch {
	case t.IsReference:
		b.WriteString(" &")
		b.WriteString(stars)
	case t.IsRvalueReference:
		b.WriteString(" &&")
		b.WriteString(stars)
	case stars != "":
		b.WriteByte(' ')
		b.WriteString(stars)
	default:
		b.WriteByte(' ')
	}
	b.WriteString(name)

	for _, n := range t.ArraySizes {
		if n == 0 {
			b.WriteString("[]")
		} else {
			fmt.Fprintf(&b, "[%d]", n)
		}
	}

	return strings.TrimRight(b.String(), " ")
}

func formatFunctionPointerDeclaration(t ir.TypeInfo, name string, cfg Config) string {
	ret := "void"
	if t.FunctionReturn != nil {
		ret = FormatTypeName(t.FunctionReturn.BaseType, cfg)
	}

	params := make([]string, 0, len(t.FunctionParams))
	for _, p := range t.FunctionParams {
		params = append(params, FormatDeclaration(p, "", cfg))
	}
	if len(params) == 0 {
		params = append(params, "void")
	}

	return fmt.Sprintf("%s (*%s)(%s)", ret, name, strings.Join(params, ", "))
}
