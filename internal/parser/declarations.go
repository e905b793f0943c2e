package parser

import (
	"github.com/rickenator/vyn/internal/token"
	"github.com/rickenator/vyn/pkg/ast"
)

// parseDeclaration is the DeclarationParser entry point, called once per
// top-level (or template-wrapped, or impl-body) item.
func (p *Parser) parseDeclaration() (ast.Declaration, error) {
	p.skipNewlines()
	if p.isAtEnd() {
		return nil, nil
	}

	isPublic := false
	if p.check(token.KEYWORD_PUB) {
		p.advance()
		isPublic = true
	}

	switch p.peek().Kind {
	case token.KEYWORD_TEMPLATE:
		return p.parseTemplateDeclaration()
	case token.KEYWORD_FN:
		return p.parseFunctionDeclaration(isPublic, false)
	case token.KEYWORD_EXTERN:
		p.advance()
		if _, err := p.expect(token.KEYWORD_FN); err != nil {
			return nil, err
		}
		return p.parseFunctionSignatureOnly(isPublic, true)
	case token.KEYWORD_STRUCT:
		return p.parseStructDeclaration()
	case token.KEYWORD_CLASS:
		return p.parseClassDeclaration()
	case token.KEYWORD_ENUM:
		return p.parseEnumDeclaration()
	case token.KEYWORD_TRAIT:
		return p.parseTraitDeclaration()
	case token.KEYWORD_IMPL:
		return p.parseImplDeclaration()
	case token.KEYWORD_TYPE:
		return p.parseTypeAliasDeclaration()
	case token.KEYWORD_LET, token.KEYWORD_VAR, token.KEYWORD_CONST:
		return p.parseGlobalVarDeclaration()
	case token.KEYWORD_IMPORT:
		return p.parseImportDeclaration(false)
	case token.KEYWORD_SMUGGLE:
		return p.parseImportDeclaration(true)
	default:
		return nil, p.errorf("expected a declaration, found %s %q", p.peek().Kind, p.peek().Lexeme)
	}
}

func (p *Parser) parseTemplateDeclaration() (ast.Declaration, error) {
	loc := p.advance().Location // template
	if _, err := p.expect(token.LT); err != nil {
		return nil, err
	}
	var params []string
	for !p.check(token.GT) {
		name, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		params = append(params, name.Lexeme)
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.GT); err != nil {
		return nil, err
	}
	p.skipNewlines()
	inner, err := p.parseDeclaration()
	if err != nil {
		return nil, err
	}
	return ast.NewTemplateDeclaration(loc, params, inner), nil
}

func (p *Parser) parseParamList() ([]ast.Param, error) {
	if _, err := p.expect(token.LPAREN); err != nil {
		return nil, err
	}
	var params []ast.Param
	for !p.check(token.RPAREN) {
		name, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		var annotation ast.TypeNode
		if p.match(token.COLON) {
			annotation, err = p.parseType()
			if err != nil {
				return nil, err
			}
		}
		params = append(params, ast.Param{Name: name.Lexeme, Annotation: annotation})
		if !p.match(token.COMMA) {
			break
		}
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return params, nil
}

func (p *Parser) parseFunctionHead() (string, []ast.Param, ast.TypeNode, ast.TypeNode, error) {
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return "", nil, nil, nil, err
	}
	params, err := p.parseParamList()
	if err != nil {
		return "", nil, nil, nil, err
	}
	var ret ast.TypeNode
	if p.match(token.ARROW) {
		ret, err = p.parseType()
		if err != nil {
			return "", nil, nil, nil, err
		}
	}
	var throws ast.TypeNode
	if p.check(token.KEYWORD_THROWS) {
		p.advance()
		throws, err = p.parseType()
		if err != nil {
			return "", nil, nil, nil, err
		}
	}
	return name.Lexeme, params, ret, throws, nil
}

func (p *Parser) parseFunctionDeclaration(isPublic, isAsync bool) (ast.Declaration, error) {
	loc := p.advance().Location // fn
	if p.check(token.KEYWORD_ASYNC) {
		p.advance()
		isAsync = true
	}
	name, params, ret, throws, err := p.parseFunctionHead()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	decl := ast.NewFunctionDeclaration(loc, name, params, ret, throws, body)
	decl.IsPublic = isPublic
	decl.IsAsync = isAsync
	return decl, nil
}

// parseFunctionSignatureOnly parses a header with no body, for `extern fn`
// declarations and trait method signatures.
func (p *Parser) parseFunctionSignatureOnly(isPublic, isExtern bool) (*ast.FunctionDeclaration, error) {
	loc := p.peek().Location
	name, params, ret, throws, err := p.parseFunctionHead()
	if err != nil {
		return nil, err
	}
	decl := ast.NewFunctionDeclaration(loc, name, params, ret, throws, nil)
	decl.IsPublic = isPublic
	decl.IsExtern = isExtern
	return decl, nil
}

func (p *Parser) parseFieldList() ([]ast.Field, error) {
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var fields []ast.Field
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		isPublic := false
		if p.check(token.KEYWORD_PUB) {
			p.advance()
			isPublic = true
		}
		name, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		annotation, err := p.parseType()
		if err != nil {
			return nil, err
		}
		fields = append(fields, ast.Field{Name: name.Lexeme, Annotation: annotation, IsPublic: isPublic})
		p.skipNewlines()
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return fields, nil
}

func (p *Parser) parseStructDeclaration() (ast.Declaration, error) {
	loc := p.advance().Location // struct
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	fields, err := p.parseFieldList()
	if err != nil {
		return nil, err
	}
	return ast.NewStructDeclaration(loc, name.Lexeme, fields), nil
}

func (p *Parser) parseClassDeclaration() (ast.Declaration, error) {
	loc := p.advance().Location // class
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var fields []ast.Field
	var methods []*ast.FunctionDeclaration
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		isPublic := false
		if p.check(token.KEYWORD_PUB) {
			p.advance()
			isPublic = true
		}
		if p.check(token.KEYWORD_FN) {
			decl, err := p.parseFunctionDeclaration(isPublic, false)
			if err != nil {
				return nil, err
			}
			methods = append(methods, decl.(*ast.FunctionDeclaration))
		} else {
			name, err := p.expect(token.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.COLON); err != nil {
				return nil, err
			}
			annotation, err := p.parseType()
			if err != nil {
				return nil, err
			}
			fields = append(fields, ast.Field{Name: name.Lexeme, Annotation: annotation, IsPublic: isPublic})
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return ast.NewClassDeclaration(loc, name.Lexeme, fields, methods), nil
}

func (p *Parser) parseEnumDeclaration() (ast.Declaration, error) {
	loc := p.advance().Location // enum
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var variants []ast.EnumVariant
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		name, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		var value ast.Expression
		if p.match(token.EQ) {
			value, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		variants = append(variants, ast.EnumVariant{Name: name.Lexeme, Value: value})
		p.skipNewlines()
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return ast.NewEnumDeclaration(loc, name.Lexeme, variants), nil
}

func (p *Parser) parseTraitDeclaration() (ast.Declaration, error) {
	loc := p.advance().Location // trait
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionDeclaration
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		if _, err := p.expect(token.KEYWORD_FN); err != nil {
			return nil, err
		}
		sig, err := p.parseFunctionSignatureOnly(false, false)
		if err != nil {
			return nil, err
		}
		if p.check(token.COLON) {
			body, err := p.parseBlock()
			if err != nil {
				return nil, err
			}
			sig.Body = body
		}
		methods = append(methods, sig)
		p.skipNewlines()
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return ast.NewTraitDeclaration(loc, name.Lexeme, methods), nil
}

func (p *Parser) parseImplDeclaration() (ast.Declaration, error) {
	loc := p.advance().Location // impl
	first, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	traitName := ""
	typeName := first.Lexeme
	if p.check(token.KEYWORD_FOR) {
		p.advance()
		traitName = first.Lexeme
		typeTok, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		typeName = typeTok.Lexeme
	}
	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var methods []*ast.FunctionDeclaration
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		decl, err := p.parseFunctionDeclaration(false, false)
		if err != nil {
			return nil, err
		}
		methods = append(methods, decl.(*ast.FunctionDeclaration))
		p.skipNewlines()
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return ast.NewImplDeclaration(loc, traitName, typeName, methods), nil
}

func (p *Parser) parseTypeAliasDeclaration() (ast.Declaration, error) {
	loc := p.advance().Location // type
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.EQ); err != nil {
		return nil, err
	}
	aliased, err := p.parseType()
	if err != nil {
		return nil, err
	}
	return ast.NewTypeAliasDeclaration(loc, name.Lexeme, aliased), nil
}

func (p *Parser) parseGlobalVarDeclaration() (ast.Declaration, error) {
	tok := p.advance() // let/var/const
	isMutable := tok.Kind == token.KEYWORD_VAR
	isConst := tok.Kind == token.KEYWORD_CONST
	name, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}
	var annotation ast.TypeNode
	if p.match(token.COLON) {
		annotation, err = p.parseType()
		if err != nil {
			return nil, err
		}
	}
	var init ast.Expression
	if p.match(token.EQ) {
		init, err = p.parseExpression()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewGlobalVarDeclaration(tok.Location, isMutable, isConst, name.Lexeme, annotation, init), nil
}

func (p *Parser) parseImportDeclaration(smuggled bool) (ast.Declaration, error) {
	loc := p.advance().Location // import/smuggle
	path, err := p.expect(token.STRING_LITERAL)
	if err != nil {
		return nil, err
	}
	alias := ""
	if p.check(token.KEYWORD_AS) {
		p.advance()
		aliasTok, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		alias = aliasTok.Lexeme
	}
	return ast.NewImportDeclaration(loc, path.Lexeme, alias, smuggled), nil
}
