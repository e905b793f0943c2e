package parser

import (
	"strconv"

	"github.com/rickenator/vyn/internal/token"
	"github.com/rickenator/vyn/pkg/ast"
)

// parseExpression is the ExpressionParser entry point, implementing the
// 16-level precedence climb: assignment, conditional, logical or/and,
// bitwise or/xor/and, equality, relational, range, shift, additive,
// multiplicative, unary, postfix (incl. "as" casts), primary.
func (p *Parser) parseExpression() (ast.Expression, error) {
	return p.parseAssignment()
}

var compoundAssignOps = map[token.Kind]string{
	token.EQ: "=",
}

func (p *Parser) parseAssignment() (ast.Expression, error) {
	left, err := p.parseConditional()
	if err != nil {
		return nil, err
	}
	if op, ok := compoundAssignOps[p.peek().Kind]; ok {
		loc := p.advance().Location
		right, err := p.parseAssignment()
		if err != nil {
			return nil, err
		}
		return ast.NewAssignmentExpr(loc, op, left, right), nil
	}
	return left, nil
}

func (p *Parser) parseConditional() (ast.Expression, error) {
	cond, err := p.parseLogicalOr()
	if err != nil {
		return nil, err
	}
	if p.match(token.QUESTION) {
		then, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return nil, err
		}
		els, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		return ast.NewConditionalExpr(cond.Location(), cond, then, els), nil
	}
	return cond, nil
}

// binaryLevel builds one left-associative precedence level out of the level
// below it, matching any of ops.
func (p *Parser) binaryLevel(next func() (ast.Expression, error), ops map[token.Kind]string) (ast.Expression, error) {
	left, err := next()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := ops[p.peek().Kind]
		if !ok {
			return left, nil
		}
		loc := p.advance().Location
		right, err := next()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinaryExpr(loc, op, left, right)
	}
}

func (p *Parser) parseLogicalOr() (ast.Expression, error) {
	return p.binaryLevel(p.parseLogicalAnd, map[token.Kind]string{token.OR_OR: "||"})
}

func (p *Parser) parseLogicalAnd() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitOr, map[token.Kind]string{token.AND_AND: "&&"})
}

func (p *Parser) parseBitOr() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitXor, map[token.Kind]string{token.PIPE: "|"})
}

func (p *Parser) parseBitXor() (ast.Expression, error) {
	return p.binaryLevel(p.parseBitAnd, map[token.Kind]string{token.CARET: "^"})
}

func (p *Parser) parseBitAnd() (ast.Expression, error) {
	return p.binaryLevel(p.parseEquality, map[token.Kind]string{token.AMP: "&"})
}

func (p *Parser) parseEquality() (ast.Expression, error) {
	return p.binaryLevel(p.parseRelational, map[token.Kind]string{
		token.EQEQ: "==", token.NOTEQ: "!=",
	})
}

func (p *Parser) parseRelational() (ast.Expression, error) {
	return p.binaryLevel(p.parseRange, map[token.Kind]string{
		token.LT: "<", token.GT: ">", token.LTEQ: "<=", token.GTEQ: ">=",
	})
}

// parseRange handles the non-associative ".." operator used by for-in
// loops and array-size expressions; it sits between relational and shift
// so `a < b..c` parses predictably as `a < (b..c)`.
func (p *Parser) parseRange() (ast.Expression, error) {
	left, err := p.parseShift()
	if err != nil {
		return nil, err
	}
	if p.check(token.DOTDOT) {
		loc := p.advance().Location
		right, err := p.parseShift()
		if err != nil {
			return nil, err
		}
		return ast.NewRangeExpr(loc, left, right), nil
	}
	return left, nil
}

func (p *Parser) parseShift() (ast.Expression, error) {
	return p.binaryLevel(p.parseAdditive, map[token.Kind]string{
		token.SHL: "<<", token.SHR: ">>",
	})
}

func (p *Parser) parseAdditive() (ast.Expression, error) {
	return p.binaryLevel(p.parseMultiplicative, map[token.Kind]string{
		token.PLUS: "+", token.MINUS: "-",
	})
}

func (p *Parser) parseMultiplicative() (ast.Expression, error) {
	return p.binaryLevel(p.parseUnary, map[token.Kind]string{
		token.STAR: "*", token.SLASH: "/", token.PERCENT: "%",
	})
}

var unaryOps = map[token.Kind]string{
	token.MINUS: "-", token.BANG: "!", token.TILDE: "~", token.AMP: "&", token.STAR: "*",
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	if op, ok := unaryOps[p.peek().Kind]; ok {
		loc := p.advance().Location
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpr(loc, op, operand), nil
	}
	if p.check(token.KEYWORD_BORROW) || p.check(token.KEYWORD_VIEW) {
		tok := p.advance()
		kind := ast.MutableBorrow
		if tok.Kind == token.KEYWORD_VIEW {
			kind = ast.ImmutableView
		}
		target, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewBorrowExpr(tok.Location, kind, target), nil
	}
	if p.check(token.KEYWORD_AWAIT) {
		loc := p.advance().Location
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return ast.NewAwaitExpr(loc, operand), nil
	}
	return p.parseCast()
}

func (p *Parser) parseCast() (ast.Expression, error) {
	expr, err := p.parsePostfix()
	if err != nil {
		return nil, err
	}
	for p.check(token.KEYWORD_AS) {
		loc := p.advance().Location
		target, err := p.parseType()
		if err != nil {
			return nil, err
		}
		expr = ast.NewCastExpr(loc, expr, target)
	}
	return expr, nil
}

func (p *Parser) parsePostfix() (ast.Expression, error) {
	expr, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	for {
		switch {
		case p.check(token.LPAREN):
			loc := p.advance().Location
			args, err := p.parseExpressionList(token.RPAREN)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RPAREN); err != nil {
				return nil, err
			}
			expr = ast.NewCallExpr(loc, expr, args)
		case p.check(token.DOT):
			loc := p.advance().Location
			name, err := p.expect(token.IDENTIFIER)
			if err != nil {
				return nil, err
			}
			expr = ast.NewMemberAccessExpr(loc, expr, name.Lexeme)
		case p.check(token.LBRACKET):
			loc := p.advance().Location
			index, err := p.parseExpression()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBRACKET); err != nil {
				return nil, err
			}
			expr = ast.NewIndexExpr(loc, expr, index)
		default:
			return expr, nil
		}
	}
}

func (p *Parser) parseExpressionList(terminator token.Kind) ([]ast.Expression, error) {
	var args []ast.Expression
	for !p.check(terminator) {
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, e)
		if !p.match(token.COMMA) {
			break
		}
	}
	return args, nil
}

func (p *Parser) parsePrimary() (ast.Expression, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.INT_LITERAL:
		p.advance()
		v, _ := strconv.ParseInt(tok.Lexeme, 10, 64)
		return ast.NewIntLiteral(tok.Location, tok.Lexeme, v), nil
	case token.FLOAT_LITERAL:
		p.advance()
		v, _ := strconv.ParseFloat(tok.Lexeme, 64)
		return ast.NewFloatLiteral(tok.Location, tok.Lexeme, v), nil
	case token.STRING_LITERAL:
		p.advance()
		return ast.NewStringLiteral(tok.Location, tok.Lexeme), nil
	case token.CHAR_LITERAL:
		p.advance()
		return ast.NewCharLiteral(tok.Location, tok.Lexeme[0]), nil
	case token.BOOL_LITERAL:
		p.advance()
		return ast.NewBoolLiteral(tok.Location, tok.Lexeme == "true"), nil
	case token.KEYWORD_NIL:
		p.advance()
		return ast.NewNilLiteral(tok.Location), nil
	case token.IDENTIFIER:
		p.advance()
		return ast.NewIdentifier(tok.Location, tok.Lexeme), nil
	case token.LPAREN:
		return p.parseParenOrTuple()
	case token.LBRACKET:
		return p.parseArrayLiteral()
	default:
		return nil, p.errorf("expected an expression, found %s %q", tok.Kind, tok.Lexeme)
	}
}

func (p *Parser) parseParenOrTuple() (ast.Expression, error) {
	loc := p.advance().Location // (
	if p.check(token.RPAREN) {
		p.advance()
		return ast.NewTupleExpr(loc, nil), nil
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if !p.check(token.COMMA) {
		if _, err := p.expect(token.RPAREN); err != nil {
			return nil, err
		}
		return first, nil
	}
	elems := []ast.Expression{first}
	for p.match(token.COMMA) {
		if p.check(token.RPAREN) {
			break
		}
		e, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
	}
	if _, err := p.expect(token.RPAREN); err != nil {
		return nil, err
	}
	return ast.NewTupleExpr(loc, elems), nil
}

func (p *Parser) parseArrayLiteral() (ast.Expression, error) {
	loc := p.advance().Location // [
	elems, err := p.parseExpressionList(token.RBRACKET)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RBRACKET); err != nil {
		return nil, err
	}
	return ast.NewArrayLiteralExpr(loc, elems), nil
}
