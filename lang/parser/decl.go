package parser

import (
	"github.com/mna/minic/lang/ast"
	"github.com/mna/minic/lang/token"
	"github.com/mna/minic/lang/types"
)

// Bit weights for declspec's counter, one per arithmetic keyword that may
// combine with others ("long int", "int long" are equivalent; "long long"
// is accepted and maps to long, since spec.md's arithmetic set stops at
// long). Each
// keyword contributes a distinct weight so the accumulated counter value
// uniquely identifies the combination, mirroring original_source/parse.c's
// VOID/CHAR/SHORT/INT/LONG/OTHER bit-counter approach.
const (
	declVoid  = 1 << 0
	declChar  = 1 << 2
	declShort = 1 << 4
	declInt   = 1 << 6
	declLong  = 1 << 8
)

// declspec = ( "void" | "char" | "short" | "int" | "long"
//            | "typedef" | struct-decl | union-decl | typedef-name )+
//
// Returns the accumulated base type, whether "typedef" appeared, and
// whether "static" appeared (SPEC_FULL.md §7's supplemented storage
// qualifier).
func (p *parser) declspec() (ty *types.Type, isTypedef, isStatic bool) {
	counter := 0
	var named *types.Type // set when a struct/union/typedef-name was consumed

	for p.isTypeName() {
		if p.at("typedef") {
			p.advance()
			isTypedef = true
			continue
		}
		if p.at("static") {
			p.advance()
			isStatic = true
			continue
		}
		if p.at("struct") {
			named = p.structDecl()
			continue
		}
		if p.at("union") {
			named = p.unionDecl()
			continue
		}
		if p.cur.Kind == token.IDENT {
			if b := p.scope.LookupVar(p.cur.Text); b != nil && b.Typedef != nil {
				if named != nil || counter != 0 {
					p.errorf("invalid combination of type names")
				}
				named = b.Typedef
				p.advance()
				continue
			}
		}

		switch p.cur.Text {
		case "void":
			counter += declVoid
		case "char":
			counter += declChar
		case "short":
			counter += declShort
		case "int":
			counter += declInt
		case "long":
			counter += declLong
		default:
			p.errorf("invalid combination of type names")
		}
		p.advance()
	}

	if named != nil {
		if counter != 0 {
			p.errorf("invalid combination of type names")
		}
		return named, isTypedef, isStatic
	}

	switch counter {
	case 0:
		// No keyword consumed at all defaults to int, matching the original
		// implementation's permissive behavior for bare declarators.
		return types.TypeInt, isTypedef, isStatic
	case declVoid:
		return types.TypeVoid, isTypedef, isStatic
	case declChar:
		return types.TypeChar, isTypedef, isStatic
	case declShort, declShort + declInt:
		return types.TypeShort, isTypedef, isStatic
	case declInt:
		return types.TypeInt, isTypedef, isStatic
	case declLong, declLong + declInt, declLong + declLong:
		return types.TypeLong, isTypedef, isStatic
	default:
		p.errorf("invalid combination of type names")
		panic("unreachable")
	}
}

// declarator = "*"* ( "(" declarator ")" | ident ) type-suffix
//
// base is threaded through pointer prefixes and the suffix grammar,
// producing right-recursive type structure per spec.md §4.3 (so
// "int (*p)[3]" yields pointer-to-array-of-3-int). name is "" for an
// abstract declarator (used by sizeof's type-name grammar).
func (p *parser) declarator(base *types.Type) (ty *types.Type, name string, nameTok *token.Token) {
	for p.consume("*") {
		base = types.PointerTo(base)
	}

	if p.consume("(") {
		// Grouped declarator: parse the inner declarator against a placeholder,
		// then graft the suffix-built type onto it once known.
		placeholder := &types.Type{}
		innerTy, innerName, innerTok := p.declarator(placeholder)
		p.expect(")")
		ty = p.typeSuffix(base)
		*placeholder = *ty
		return innerTy, innerName, innerTok
	}

	var tok *token.Token
	if p.cur.Kind == token.IDENT {
		tok = p.advance()
		name = tok.Text
	}
	// A missing identifier is legal only for abstract declarators (sizeof's
	// type-name); callers that require a name check for name == "".
	ty = p.typeSuffix(base)
	return ty, name, tok
}

// type-suffix = "(" func-params | "[" num "]" type-suffix | ε
func (p *parser) typeSuffix(base *types.Type) *types.Type {
	if p.consume("(") {
		return p.funcParams(base)
	}
	if p.consume("[") {
		n := int(p.expectNumber())
		p.expect("]")
		base = p.typeSuffix(base)
		return types.ArrayOf(base, n)
	}
	return base
}

// funcParams parses the parenthesized parameter list following the opening
// "(" already consumed by typeSuffix, and returns a function type wrapping
// ret.
func (p *parser) funcParams(ret *types.Type) *types.Type {
	ty := types.FuncType(ret)
	first := true
	for !p.at(")") {
		if !first {
			p.expect(",")
		}
		first = false
		paramBase, _, _ := p.declspec()
		paramTy, paramName, _ := p.declarator(paramBase)
		// Array parameters decay to pointer-to-element, matching declarator
		// decay at call/definition boundaries.
		if paramTy.Kind == types.Array {
			paramTy = types.PointerTo(paramTy.Base)
		}
		ty.Params = append(ty.Params, paramTy)
		ty.ParamNames = append(ty.ParamNames, paramName)
	}
	p.expect(")")
	return ty
}

// abstractTypeName parses a declspec followed by an abstract declarator,
// used by sizeof's "(" type-name ")" alternative.
func (p *parser) abstractTypeName() *types.Type {
	base, _, _ := p.declspec()
	ty, _, _ := p.declarator(base)
	return ty
}

// structDecl = "struct" ident? ( "{" struct-members "}" )?
func (p *parser) structDecl() *types.Type { return p.recordDecl(false) }

// unionDecl = "union" ident? ( "{" struct-members "}" )?
func (p *parser) unionDecl() *types.Type { return p.recordDecl(true) }

func (p *parser) recordDecl(isUnion bool) *types.Type {
	p.advance() // "struct" or "union"

	var tagName string
	if p.cur.Kind == token.IDENT {
		tagName = p.advance().Text
	}

	if !p.at("{") {
		// Reference to a previously declared tag.
		if tagName == "" {
			p.errorf("expected a struct/union tag or body")
		}
		b := p.scope.LookupTag(tagName)
		if b == nil {
			p.errorf("unknown struct/union tag: %s", tagName)
		}
		return b.Type
	}

	p.advance() // "{"
	members := p.structMembers()
	p.expect("}")

	var ty *types.Type
	if isUnion {
		ty = unionLayout(members)
	} else {
		ty = structLayout(members)
	}
	ty.Name = tagName

	if tagName != "" {
		p.scope.DeclareTag(tagName, &ast.TagBinding{Type: ty})
	}
	return ty
}

// struct-members = ( declspec declarator ( "," declarator )* ";" )*
func (p *parser) structMembers() []*types.Member {
	var members []*types.Member
	for !p.at("}") {
		base, _, _ := p.declspec()
		first := true
		for !p.consume(";") {
			if !first {
				p.expect(",")
			}
			first = false
			ty, name, _ := p.declarator(base)
			members = append(members, &types.Member{Name: name, Type: ty})
		}
	}
	return members
}

// structLayout assigns offsets per spec.md §4.3's "Struct/union layout":
// each member's offset is the running size rounded up to the member's
// alignment; the record's alignment is the max member alignment; its size
// is the final running size rounded up to the record's own alignment.
func structLayout(members []*types.Member) *types.Type {
	offset := 0
	align := 1
	for _, m := range members {
		offset = types.AlignUp(offset, m.Type.Align)
		m.Offset = offset
		offset += m.Type.Size
		if m.Type.Align > align {
			align = m.Type.Align
		}
	}
	size := types.AlignUp(offset, align)
	return types.NewStruct(members, size, align)
}

// unionLayout places every member at offset 0; size is the max member size
// rounded up to the record's alignment (the max member alignment).
func unionLayout(members []*types.Member) *types.Type {
	size := 0
	align := 1
	for _, m := range members {
		m.Offset = 0
		if m.Type.Size > size {
			size = m.Type.Size
		}
		if m.Type.Align > align {
			align = m.Type.Align
		}
	}
	size = types.AlignUp(size, align)
	return types.NewUnion(members, size, align)
}
