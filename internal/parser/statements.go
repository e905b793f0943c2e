package parser

import (
	"github.com/rickenator/vyn/internal/token"
	"github.com/rickenator/vyn/pkg/ast"
)

// parseBlock parses an indented or braced statement sequence. Vyn allows
// either `:` NEWLINE INDENT stmts DEDENT or a brace-delimited `{ stmts }`,
// matching the mixed syntax named in the language's design.
func (p *Parser) parseBlock() (*ast.BlockStmt, error) {
	loc := p.peek().Location
	if p.match(token.LBRACE) {
		var stmts []ast.Statement
		p.skipNewlines()
		for !p.check(token.RBRACE) && !p.isAtEnd() {
			s, err := p.parseStatement()
			if err != nil {
				if !p.options.Tolerant {
					return nil, err
				}
				p.synchronize()
				continue
			}
			if s != nil {
				stmts = append(stmts, s)
			}
			p.skipNewlines()
		}
		if _, err := p.expect(token.RBRACE); err != nil {
			return nil, err
		}
		return ast.NewBlockStmt(loc, stmts), nil
	}

	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	p.skipNewlines()
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}
	var stmts []ast.Statement
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		s, err := p.parseStatement()
		if err != nil {
			if !p.options.Tolerant {
				return nil, err
			}
			p.synchronize()
			continue
		}
		if s != nil {
			stmts = append(stmts, s)
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return ast.NewBlockStmt(loc, stmts), nil
}

// parseStatement is the StatementParser entry point.
func (p *Parser) parseStatement() (ast.Statement, error) {
	p.skipNewlines()
	if p.check(token.DEDENT) || p.check(token.RBRACE) || p.isAtEnd() {
		return nil, nil
	}
	switch p.peek().Kind {
	case token.KEYWORD_LET, token.KEYWORD_VAR, token.KEYWORD_CONST:
		return p.parseLetStmt()
	case token.KEYWORD_IF:
		return p.parseIfStmt()
	case token.KEYWORD_WHILE:
		return p.parseWhileStmt()
	case token.KEYWORD_FOR:
		return p.parseForStmt()
	case token.KEYWORD_RETURN:
		return p.parseReturnStmt()
	case token.KEYWORD_BREAK:
		loc := p.advance().Location
		return ast.NewBreakStmt(loc), nil
	case token.KEYWORD_CONTINUE:
		loc := p.advance().Location
		return ast.NewContinueStmt(loc), nil
	case token.KEYWORD_DEFER:
		return p.parseDeferStmt()
	case token.KEYWORD_TRY:
		return p.parseTryStmt()
	case token.KEYWORD_MATCH:
		return p.parseMatchStmt()
	case token.LBRACE:
		return p.parseBlock()
	default:
		return p.parseExpressionStmt()
	}
}

func (p *Parser) parseLetStmt() (ast.Statement, error) {
	tok := p.advance() // let/var/const
	isMutable := tok.Kind == token.KEYWORD_VAR
	isConst := tok.Kind == token.KEYWORD_CONST
	if p.check(token.KEYWORD_MUT) {
		p.advance()
		isMutable = true
	}
	target, err := p.parsePattern()
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
	return ast.NewLetStmt(tok.Location, isMutable, isConst, target, annotation, init), nil
}

// parsePattern parses the binding-pattern grammar shared by let, for, and
// match: identifiers (optionally `mut`), `_`, tuples, and literals.
func (p *Parser) parsePattern() (ast.Pattern, error) {
	tok := p.peek()
	switch {
	case tok.Kind == token.IDENTIFIER && tok.Lexeme == "_":
		p.advance()
		return ast.NewWildcardPattern(tok.Location), nil
	case tok.Kind == token.KEYWORD_MUT:
		p.advance()
		name, err := p.expect(token.IDENTIFIER)
		if err != nil {
			return nil, err
		}
		return ast.NewIdentifierPattern(tok.Location, name.Lexeme, true), nil
	case tok.Kind == token.IDENTIFIER:
		p.advance()
		return ast.NewIdentifierPattern(tok.Location, tok.Lexeme, false), nil
	case tok.Kind == token.LPAREN:
		p.advance()
		var elems []ast.Pattern
		for !p.check(token.RPAREN) {
			el, err := p.parsePattern()
			if err != nil {
				return nil, err
			}
			elems = append(elems, el)
			if !p.match(token.COMMA) {
				break
			}
		}
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return ast.NewTuplePattern(tok.Location, elems), nil
	default:
		expr, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewLiteralPattern(tok.Location, expr), nil
	}
}

func (p *Parser) parseIfStmt() (ast.Statement, error) {
	loc := p.advance().Location // if
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	then, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var elseStmt ast.Statement
	p.skipNewlines()
	if p.check(token.KEYWORD_ELSE) {
		p.advance()
		if p.check(token.KEYWORD_IF) {
			elseStmt, err = p.parseIfStmt()
		} else {
			elseStmt, err = p.parseBlock()
		}
		if err != nil {
			return nil, err
		}
	}
	return ast.NewIfStmt(loc, cond, then, elseStmt), nil
}

func (p *Parser) parseWhileStmt() (ast.Statement, error) {
	loc := p.advance().Location // while
	cond, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewWhileStmt(loc, cond, body), nil
}

func (p *Parser) parseForStmt() (ast.Statement, error) {
	loc := p.advance().Location // for
	binding, err := p.parsePattern()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.KEYWORD_IN); err != nil {
		return nil, err
	}
	iterable, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return ast.NewForStmt(loc, binding, iterable, body), nil
}

func (p *Parser) parseReturnStmt() (ast.Statement, error) {
	loc := p.advance().Location // return
	if p.check(token.NEWLINE) || p.check(token.DEDENT) || p.check(token.RBRACE) || p.isAtEnd() {
		return ast.NewReturnStmt(loc, nil), nil
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewReturnStmt(loc, value), nil
}

func (p *Parser) parseDeferStmt() (ast.Statement, error) {
	loc := p.advance().Location // defer
	call, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewDeferStmt(loc, call), nil
}

func (p *Parser) parseTryStmt() (ast.Statement, error) {
	loc := p.advance().Location // try
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	var catches []*ast.CatchClause
	p.skipNewlines()
	for p.check(token.KEYWORD_CATCH) {
		catchLoc := p.advance().Location
		var binding ast.Pattern
		if !p.check(token.COLON) && !p.check(token.LBRACE) {
			binding, err = p.parsePattern()
			if err != nil {
				return nil, err
			}
		}
		catchBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		catches = append(catches, ast.NewCatchClause(catchLoc, binding, catchBody))
		p.skipNewlines()
	}
	var finally *ast.BlockStmt
	if p.check(token.KEYWORD_FINALLY) {
		p.advance()
		finally, err = p.parseBlock()
		if err != nil {
			return nil, err
		}
	}
	return ast.NewTryStmt(loc, body, catches, finally), nil
}

func (p *Parser) parseMatchStmt() (ast.Statement, error) {
	loc := p.advance().Location // match
	subject, err := p.parseExpression()
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
	var arms []*ast.MatchArm
	for !p.check(token.DEDENT) && !p.isAtEnd() {
		armLoc := p.peek().Location
		pattern, err := p.parsePattern()
		if err != nil {
			return nil, err
		}
		var guard ast.Expression
		if p.check(token.KEYWORD_IF) {
			p.advance()
			guard, err = p.parseExpression()
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.FAT_ARROW); err != nil {
			return nil, err
		}
		body, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		arms = append(arms, ast.NewMatchArm(armLoc, pattern, guard, body))
		p.skipNewlines()
	}
	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}
	return ast.NewMatchStmt(loc, subject, arms), nil
}

func (p *Parser) parseExpressionStmt() (ast.Statement, error) {
	loc := p.peek().Location
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return ast.NewExpressionStmt(loc, expr), nil
}
