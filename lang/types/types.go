// Package types implements the C-subset type system described in
// SPEC_FULL.md §5 (spec.md §3, §4.2): arithmetic type singletons, the
// pointer/array/function/struct/union constructors, and the predicates the
// parser and code generator query to decide how to lower an expression.
//
// Types are interned per-constructor call but never deduplicated, and live
// for the duration of one compilation, matching spec.md §3's Lifecycles
// section; there is no explicit arena, Go's garbage collector plays that
// role since nothing is freed mid-compilation.
package types

import "golang.org/x/exp/slices"

// Kind discriminates the variant of a Type record.
type Kind uint8

const (
	Void Kind = iota
	Char
	Short
	Int
	Long
	Ptr
	Array
	Func
	Struct
	Union
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Char:
		return "char"
	case Short:
		return "short"
	case Int:
		return "int"
	case Long:
		return "long"
	case Ptr:
		return "pointer"
	case Array:
		return "array"
	case Func:
		return "function"
	case Struct:
		return "struct"
	case Union:
		return "union"
	}
	return "unknown"
}

// Member is a struct/union field: its name, type and byte offset within the
// record.
type Member struct {
	Name   string
	Type   *Type
	Offset int
}

// Type is a tagged record for one of the Kind variants. Pointer and array
// share the Base field (the "access path used whenever pointer-ness is
// queried", per spec.md §3), so IsPointerLike treats both uniformly.
type Type struct {
	Kind  Kind
	Size  int
	Align int

	// Base is the pointee/element type for Ptr and Array.
	Base *Type
	// Len is the element count for Array.
	Len int

	// Return and Params describe a Func type. Params is a singly linked
	// structure mirroring the parser's declarator grammar, kept as a slice
	// here since nothing downstream needs pointer-identity sharing of the
	// list. ParamNames parallels Params with the declared parameter names, so
	// that a function definition's parameter Objs can be created without
	// re-parsing the declarator.
	Return     *Type
	Params     []*Type
	ParamNames []string

	// Members lists Struct/Union fields in declaration order.
	Members []*Member

	// Name is the tag of a struct or union type declared with one (empty
	// otherwise; typedef names are not recorded here); it is not part of
	// type identity.
	Name string
}

// Arithmetic singletons, per spec.md §3: char=1/1, short=2/2, int=4/4,
// long=8/8.
var (
	TypeVoid  = &Type{Kind: Void, Size: 1, Align: 1}
	TypeChar  = &Type{Kind: Char, Size: 1, Align: 1}
	TypeShort = &Type{Kind: Short, Size: 2, Align: 2}
	TypeInt   = &Type{Kind: Int, Size: 4, Align: 4}
	TypeLong  = &Type{Kind: Long, Size: 8, Align: 8}
)

// PointerTo returns a fresh pointer-to-base type; size and alignment are
// both 8 on this System V x86-64 target.
func PointerTo(base *Type) *Type {
	return &Type{Kind: Ptr, Size: 8, Align: 8, Base: base}
}

// ArrayOf returns a fresh array-of-base type of length n.
func ArrayOf(base *Type, n int) *Type {
	return &Type{Kind: Array, Size: base.Size * n, Align: base.Align, Base: base, Len: n}
}

// FuncType returns a fresh function type with the given return type; the
// caller fills in Params once they are known.
func FuncType(ret *Type) *Type {
	return &Type{Kind: Func, Return: ret}
}

// NewStruct and NewUnion build an aggregate type from already-laid-out
// members (see lang/parser's layout routine, grounded on spec.md §4.3's
// "Struct/union layout" rules).
func NewStruct(members []*Member, size, align int) *Type {
	return &Type{Kind: Struct, Size: size, Align: align, Members: members}
}

func NewUnion(members []*Member, size, align int) *Type {
	return &Type{Kind: Union, Size: size, Align: align, Members: members}
}

// Copy produces an independently owned shallow duplicate of t, so that a
// caller may mutate the copy (e.g. to wrap it in a pointer/array) without
// aliasing the original — used while threading a type through a declarator.
func Copy(t *Type) *Type {
	cp := *t
	return &cp
}

// IsInteger reports whether t is one of the arithmetic integer kinds.
func IsInteger(t *Type) bool {
	switch t.Kind {
	case Char, Short, Int, Long:
		return true
	}
	return false
}

// IsPointerLike reports whether t behaves as a pointer at sites that test
// for pointer-ness: both Ptr and Array qualify, since array types decay to a
// pointer to their element type in most expression contexts.
func IsPointerLike(t *Type) bool {
	return t.Kind == Ptr || t.Kind == Array
}

// IsScalar reports whether t is a single machine word value (integer or
// pointer-like), as opposed to an aggregate (struct/union) or void.
func IsScalar(t *Type) bool {
	return IsInteger(t) || IsPointerLike(t)
}

// IsAggregate reports whether t is a struct or union.
func IsAggregate(t *Type) bool {
	return t.Kind == Struct || t.Kind == Union
}

// FindMember returns the member named name in the struct/union type t, or
// nil if t has no such member.
func FindMember(t *Type, name string) *Member {
	i := slices.IndexFunc(t.Members, func(m *Member) bool { return m.Name == name })
	if i < 0 {
		return nil
	}
	return t.Members[i]
}

// AlignUp rounds n up to the next multiple of align.
func AlignUp(n, align int) int {
	return (n + align - 1) / align * align
}
