package ast

import (
	"github.com/dolthub/swiss"

	"github.com/mna/minic/lang/types"
)

// VarBinding is what a variable or typedef name resolves to in a Scope
// frame: either an Obj (ordinary variable/parameter) or, for a typedef name,
// just the aliased Type.
type VarBinding struct {
	Obj     *Obj
	Typedef *types.Type
}

// TagBinding is what a struct/union tag resolves to in a Scope frame.
type TagBinding struct {
	Type *types.Type
}

// scopeFrame is one lexical block's two namespaces (spec.md §4.3: C keeps
// tag names and ordinary names in separate namespaces). Frames are backed by
// swiss.Map rather than a builtin map, grounded on the teacher's
// lang/machine package, which backs its own scope-like frames
// (machine.Map) with swiss.Map for its open-addressing performance.
type scopeFrame struct {
	vars *swiss.Map[string, *VarBinding]
	tags *swiss.Map[string, *TagBinding]
}

func newScopeFrame() *scopeFrame {
	return &scopeFrame{
		vars: swiss.NewMap[string, *VarBinding](8),
		tags: swiss.NewMap[string, *TagBinding](8),
	}
}

// Scope is the transient, push/pop lexical scope chain used only during
// parsing and discarded once parsing completes, per spec.md §3's Lifecycles
// section. Frame 0 is the innermost (current) block; lookups walk outward
// toward the translation unit's file scope.
type Scope struct {
	frames []*scopeFrame
}

// NewScope returns a Scope with a single file-scope frame pushed.
func NewScope() *Scope {
	s := &Scope{}
	s.Push()
	return s
}

// Push enters a new block, adding a frame in front of the chain.
func (s *Scope) Push() {
	s.frames = append([]*scopeFrame{newScopeFrame()}, s.frames...)
}

// Pop leaves the innermost block, discarding its frame.
func (s *Scope) Pop() {
	s.frames = s.frames[1:]
}

// DeclareVar binds name to b in the current (innermost) frame.
func (s *Scope) DeclareVar(name string, b *VarBinding) {
	s.frames[0].vars.Put(name, b)
}

// DeclareTag binds tag to b in the current (innermost) frame.
func (s *Scope) DeclareTag(tag string, b *TagBinding) {
	s.frames[0].tags.Put(tag, b)
}

// LookupVar walks outward from the innermost frame and returns the first
// binding found for name, or nil if name is undeclared in any enclosing
// scope.
func (s *Scope) LookupVar(name string) *VarBinding {
	for _, f := range s.frames {
		if b, ok := f.vars.Get(name); ok {
			return b
		}
	}
	return nil
}

// LookupTag walks outward from the innermost frame and returns the first
// binding found for tag, or nil if tag is undeclared in any enclosing scope.
func (s *Scope) LookupTag(tag string) *TagBinding {
	for _, f := range s.frames {
		if b, ok := f.tags.Get(tag); ok {
			return b
		}
	}
	return nil
}

// LookupVarInCurrentScope restricts the search to the innermost frame, so a
// redeclaration within the same block can be told apart from shadowing of
// an outer declaration. lang/parser does not call it: a redeclaration in
// the same block replaces the earlier binding.
func (s *Scope) LookupVarInCurrentScope(name string) *VarBinding {
	if b, ok := s.frames[0].vars.Get(name); ok {
		return b
	}
	return nil
}
