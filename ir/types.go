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

// Package ir is the intermediate representation the DWARF builder produces
// and the emitter consumes: an owned tree of C/C++ declarations, flattened
// out of the DWARF DIE graph so that no cross-reference survives as a
// pointer into someone else's compile unit.
package ir

// TypeInfo is a flattened type descriptor. It never points back into DWARF;
// everything it needs (including a function pointer's return and parameter
// types) is inlined.
type TypeInfo struct {
	// BaseType is the textual type name, possibly already prefixed with
	// "struct ", "class ", "union " or "enum " by the type resolver.
	BaseType string

	// PointerCount is the number of '*' this type carries. A pointer to a
	// subroutine type does not increment this - the subroutine type itself
	// is the function pointer.
	PointerCount int

	// ArraySizes holds one entry per array dimension, outermost first. A
	// dimension of zero means the bound could not be determined.
	ArraySizes []uint64

	IsConst           bool
	IsVolatile        bool
	IsRestrict        bool
	IsStatic          bool
	IsExtern          bool
	IsReference       bool
	IsRvalueReference bool

	// IsFunctionPointer marks this TypeInfo as a function-pointer
	// declarator; when true, FunctionReturn and FunctionParams are used in
	// place of PointerCount/ArraySizes for declarator formatting.
	IsFunctionPointer bool
	FunctionReturn    *TypeInfo
	FunctionParams    []TypeInfo
}

// NewTypeInfo returns a bare TypeInfo naming baseType, with every other
// field at its zero value.
func NewTypeInfo(baseType string) TypeInfo {
	return TypeInfo{BaseType: baseType}
}

// Accessibility is a C++ member/method access specifier.
type Accessibility int

const (
	AccessUnspecified Accessibility = iota
	AccessPublic
	AccessProtected
	AccessPrivate
)

// ConstValueKind distinguishes how a constant's bits should be read.
type ConstValueKind int

const (
	ConstValueNone ConstValueKind = iota
	ConstValueSigned
	ConstValueUnsigned
)

// ConstValue is an optional, signedness-tagged constant.
type ConstValue struct {
	Kind     ConstValueKind
	Signed   int64
	Unsigned uint64
}

// HasValue reports whether a ConstValue actually carries a value.
func (c ConstValue) HasValue() bool {
	return c.Kind != ConstValueNone
}

// Variable is a struct/class/union member, a global, or a local.
type Variable struct {
	Name string
	Type TypeInfo

	Line           *int
	Accessibility  Accessibility
	Offset         *uint64
	BitSize        *uint64
	BitOffset      *uint64
	ConstValue     ConstValue
	DeclFile       *uint64
	OriginalIndex  int
}

// Parameter is a function or method formal parameter.
type Parameter struct {
	Name string
	Type TypeInfo
	Line *int
}

// Label is a goto target.
type Label struct {
	Name string
	Line *int
}

// InlinedSubroutine marks a point where another function's body was
// inlined; it is a marker, not a recovered call expression.
type InlinedSubroutine struct {
	Name string
	Line *int
}

// LexicalBlock is a nested scope within a function body.
type LexicalBlock struct {
	Line          *int
	Variables     []Variable
	NestedBlocks  []LexicalBlock
	InlinedCalls  []InlinedSubroutine
	Labels        []Label
	OriginalIndex int
}

// MinContentLine returns the smallest line number found anywhere within the
// block, including nested blocks, or nil if nothing in it carries a line.
// Used to order lexical blocks relative to their function's other body
// elements when the block itself has no line of its own.
func (b LexicalBlock) MinContentLine() *int {
	var min *int
	consider := func(l *int) {
		if l == nil {
			return
		}
		if min == nil || *l < *min {
			v := *l
			min = &v
		}
	}

	consider(b.Line)
	for _, v := range b.Variables {
		consider(v.Line)
	}
	for _, c := range b.InlinedCalls {
		consider(c.Line)
	}
	for _, l := range b.Labels {
		consider(l.Line)
	}
	for _, nb := range b.NestedBlocks {
		consider(nb.MinContentLine())
	}

	return min
}

// Function is a C/C++ function or method, either a declaration (no body) or
// a definition.
type Function struct {
	Name   string
	Return TypeInfo

	Parameters    []Parameter
	Variables     []Variable
	LexicalBlocks []LexicalBlock
	InlinedCalls  []InlinedSubroutine
	Labels        []Label

	Line *int

	IsMethod      bool
	ClassName     string
	NamespacePath []string
	Accessibility Accessibility
	HasBody       bool

	LowPC  *uint64
	HighPC *uint64

	IsInline      bool
	IsExternal    bool
	IsVirtual     bool
	IsConstructor bool
	IsDestructor  bool
	IsArtificial  bool

	LinkageName string
	DeclFile    *uint64

	// SpecificationOffset, on a definition, is the absolute offset of the
	// declaration it defines. DeclOffset, on a method declaration, is the
	// entry's own absolute offset - the value a matching definition's
	// SpecificationOffset is expected to carry.
	SpecificationOffset *uint64
	DeclOffset          *uint64

	OriginalIndex int
}

// BaseClass is one entry in a Compound's inheritance list.
type BaseClass struct {
	TypeName      string
	Offset        *uint64
	Accessibility Accessibility
	IsVirtual     bool
}

// CompoundKind names the four DWARF "compound" tag kinds the emitter treats
// uniformly.
type CompoundKind int

const (
	CompoundStruct CompoundKind = iota
	CompoundClass
	CompoundUnion
	CompoundEnum
)

// String returns the C/C++ keyword for k.
func (k CompoundKind) String() string {
	switch k {
	case CompoundStruct:
		return "struct"
	case CompoundClass:
		return "class"
	case CompoundUnion:
		return "union"
	case CompoundEnum:
		return "enum"
	default:
		return "struct"
	}
}

// Enumerator is one enum_type child: a name and optional value.
type Enumerator struct {
	Name  string
	Value *int64
}

// Compound is a struct, class, union, or enum.
type Compound struct {
	Name string
	Kind CompoundKind

	Members     []Variable
	Methods     []Function
	NestedTypes []Compound
	Enumerators []Enumerator
	BaseClasses []BaseClass

	Line *int

	IsTypedef    bool
	TypedefName  string
	TypedefLine  *int

	ByteSize  *uint64
	IsVirtual bool
	DeclFile  *uint64

	OriginalIndex int
}

// TypedefAlias is a typedef that could not be merged into its target
// Compound (different decl_file, or the target is only forward-declared).
type TypedefAlias struct {
	Name     string
	Target   TypeInfo
	Line     *int
	DeclFile *uint64

	OriginalIndex int
}

// Namespace groups child elements under a name.
type Namespace struct {
	Name     string
	Line     *int
	Children []Element

	OriginalIndex int
}

// ElementKind discriminates the Element tagged union.
type ElementKind int

const (
	ElementCompound ElementKind = iota
	ElementFunction
	ElementVariable
	ElementNamespace
	ElementTypedefAlias
)

// Element is a tagged union over the five things that can appear directly
// inside a compile unit or a namespace.
type Element struct {
	Kind ElementKind

	Compound      *Compound
	Function      *Function
	Variable      *Variable
	Namespace     *Namespace
	TypedefAlias  *TypedefAlias
}

// Line returns the element's own primary line number, for sort ordering.
// Compounds prefer TypedefLine over Line, matching the emitter's ordering
// rule (spec.md 4.H "Ordering").
func (e Element) Line() *int {
	switch e.Kind {
	case ElementCompound:
		if e.Compound.TypedefLine != nil {
			return e.Compound.TypedefLine
		}
		return e.Compound.Line
	case ElementFunction:
		return e.Function.Line
	case ElementVariable:
		return e.Variable.Line
	case ElementNamespace:
		return e.Namespace.Line
	case ElementTypedefAlias:
		return e.TypedefAlias.Line
	default:
		return nil
	}
}

// OriginalIndex returns the element's parse-order tiebreaker.
func (e Element) OriginalIndex() int {
	switch e.Kind {
	case ElementCompound:
		return e.Compound.OriginalIndex
	case ElementFunction:
		return e.Function.OriginalIndex
	case ElementVariable:
		return e.Variable.OriginalIndex
	case ElementNamespace:
		return e.Namespace.OriginalIndex
	case ElementTypedefAlias:
		return e.TypedefAlias.OriginalIndex
	default:
		return 0
	}
}

// DeclFile returns the element's own decl_file, or nil if it doesn't carry
// one (namespaces never do - their children are split individually).
func (e Element) DeclFile() *uint64 {
	switch e.Kind {
	case ElementCompound:
		return e.Compound.DeclFile
	case ElementFunction:
		return e.Function.DeclFile
	case ElementVariable:
		return e.Variable.DeclFile
	case ElementTypedefAlias:
		return e.TypedefAlias.DeclFile
	default:
		return nil
	}
}

// DedupKey returns the post-processor's de-duplication key for the element,
// or "" for elements (namespaces) that are never deduplicated by key.
func (e Element) DedupKey() string {
	switch e.Kind {
	case ElementCompound:
		name := e.Compound.Name
		if e.Compound.IsTypedef {
			name = e.Compound.TypedefName
		}
		return e.Compound.Kind.String() + ":" + name
	case ElementTypedefAlias:
		return "typedef:" + e.TypedefAlias.Name
	case ElementFunction:
		if e.Function.LinkageName != "" {
			return "func:" + e.Function.LinkageName
		}
		return "func:" + e.Function.Name
	case ElementVariable:
		return "var:" + e.Variable.Name
	default:
		return ""
	}
}

// CompileUnit is everything parsed from one DWARF compile unit.
type CompileUnit struct {
	Name     string
	Producer string
	Elements []Element

	// FileTable maps a DWARF file-table index (1-based) to the file's path as
	// recorded in the line table; it is not normalized.
	FileTable map[uint64]string
}
