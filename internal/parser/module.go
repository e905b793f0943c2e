package parser

import (
	"github.com/rickenator/vyn/internal/token"
	"github.com/rickenator/vyn/pkg/ast"
)

// ParseModule is the ModuleParser entry point: a sequence of top-level
// declarations until END_OF_FILE.
func (p *Parser) ParseModule(path string) (*ast.Module, error) {
	loc := p.peek().Location
	var decls []ast.Declaration
	p.skipNewlines()
	for !p.isAtEnd() {
		decl, err := p.parseDeclaration()
		if err != nil {
			if !p.options.Tolerant {
				return nil, err
			}
			p.synchronize()
			p.skipNewlines()
			continue
		}
		if decl != nil {
			decls = append(decls, decl)
		}
		p.skipNewlines()
	}
	if _, err := p.expect(token.END_OF_FILE); err != nil {
		return nil, err
	}
	return ast.NewModule(loc, path, decls), nil
}
