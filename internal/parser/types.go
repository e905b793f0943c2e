package parser

import (
	"github.com/rickenator/vyn/internal/token"
	"github.com/rickenator/vyn/pkg/ast"
)

// parseType is the TypeParser entry point. Grammar (abridged):
//
//	Type       := Ownership | Array | Tuple | FnSig | Named ;
//	Ownership  := ("my"|"our"|"their"|"ptr") "<" Type ">" ;
//	Array      := "[" Type (";" Range)? "]"  -- Range is a constant-foldable size
//	Tuple      := "(" Type ("," Type)* ")" ;
//	FnSig      := "fn" "(" (Type ("," Type)*)? ")" ("->" Type)? ;
//	Named      := IDENTIFIER ;
//
// A trailing "?" on any of the above wraps the result in an OptionalType.
func (p *Parser) parseType() (ast.TypeNode, error) {
	t, err := p.parseTypeCore()
	if err != nil {
		return nil, err
	}
	for p.check(token.QUESTION) {
		loc := p.advance().Location
		t = ast.NewOptionalType(loc, t)
	}
	return t, nil
}

func (p *Parser) parseTypeCore() (ast.TypeNode, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.KEYWORD_MY, token.KEYWORD_OUR, token.KEYWORD_THEIR, token.KEYWORD_PTR:
		return p.parseOwnershipWrappedType()
	case token.LBRACKET:
		return p.parseArrayType()
	case token.LPAREN:
		return p.parseTupleType()
	case token.KEYWORD_FN:
		return p.parseFunctionSignatureType()
	case token.IDENTIFIER:
		p.advance()
		return ast.NewNamedType(tok.Location, tok.Lexeme), nil
	default:
		return nil, p.errorf("expected a type, found %s %q", tok.Kind, tok.Lexeme)
	}
}

func (p *Parser) parseOwnershipWrappedType() (ast.TypeNode, error) {
	tok := p.advance()
	var kind ast.OwnershipKind
	switch tok.Kind {
	case token.KEYWORD_MY:
		kind = ast.OwnershipMy
	case token.KEYWORD_OUR:
		kind = ast.OwnershipOur
	case token.KEYWORD_THEIR:
		kind = ast.OwnershipTheir
	case token.KEYWORD_PTR:
		kind = ast.OwnershipPtr
	}
	if _, err := p.expect(token.LT); err != nil {
		return nil, err
	}
	inner, err := p.parseType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	return ast.NewOwnershipWrappedType(tok.Location, kind, inner), nil
}

func (p *Parser) parseArrayType() (ast.TypeNode, error) {
	start := p.advance() // [
	element, err := p.parseType()
	if err != nil {
		return nil, err
	}
	var size ast.Expression
	if p.match(token.SEMICOLON) {
		size, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return ast.NewArrayType(start.Location, element, size), nil
}

func (p *Parser) parseTupleType() (ast.TypeNode, error) {
	start := p.advance() // (
	var elems []ast.TypeNode
	for !p.check(token.RPAREN) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		elems = append(elems, t)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return ast.NewTupleType(start.Location, elems), nil
}

func (p *Parser) parseFunctionSignatureType() (ast.TypeNode, error) {
	start := p.advance() // fn
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.TypeNode
	for !p.check(token.RPAREN) {
		t, err := p.parseType()
		if err != nil {
			return nil, err
		}
		params = append(params, t)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	var ret ast.TypeNode
	if p.match(token.ARROW) {
		var err error
		ret, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewFunctionSignatureType(start.Location, params, ret), nil
}
