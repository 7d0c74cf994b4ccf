package query

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/brandquery/internal/normalize"
)

// Parse lexes and parses a rule string into an AST, honoring the
// precedence OR < AND < NEAR < NOT < primary, with implicit AND before
// a bare NOT.
func Parse(raw string) (*Node, error) {
	tokens, err := lex(raw)
	if err != nil {
		return nil, fmt.Errorf("lex rule: %w", err)
	}
	p := &parser{tokens: tokens}
	node, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != lexEOF {
		return nil, fmt.Errorf("unexpected token after expression: %v", p.peek())
	}
	return node, nil
}

type parser struct {
	tokens []lexToken
	pos    int
}

func (p *parser) peek() lexToken {
	return p.tokens[p.pos]
}

func (p *parser) next() lexToken {
	t := p.tokens[p.pos]
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// parseOr := and (OR and)*
func (p *parser) parseOr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == lexOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: KindOr, Left: left, Right: right}
	}
	return left, nil
}

// parseAnd := near ((AND | implicit-before-NOT) near)*
func (p *parser) parseAnd() (*Node, error) {
	left, err := p.parseNear()
	if err != nil {
		return nil, err
	}
	for {
		switch p.peek().kind {
		case lexAnd:
			p.next()
		case lexNot:
			// implicit AND: leave NOT for the unary parser below.
		default:
			return left, nil
		}
		right, err := p.parseNear()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: KindAnd, Left: left, Right: right}
	}
}

// parseNear := unary (NEAR unary)*
func (p *parser) parseNear() (*Node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == lexNear {
		dist := p.peek().dist
		p.next()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: KindNear, Distance: dist, Left: left, Right: right}
	}
	return left, nil
}

// parseUnary := NOT unary | primary
func (p *parser) parseUnary() (*Node, error) {
	if p.peek().kind == lexNot {
		p.next()
		child, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: KindNot, Child: child}, nil
	}
	return p.parsePrimary()
}

// parsePrimary := LPAREN or RPAREN | PHRASE | TERM
func (p *parser) parsePrimary() (*Node, error) {
	tok := p.peek()
	switch tok.kind {
	case lexLParen:
		p.next()
		node, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if p.peek().kind != lexRParen {
			return nil, fmt.Errorf("expected closing parenthesis, got %v", p.peek())
		}
		p.next()
		return node, nil
	case lexPhrase:
		p.next()
		return &Node{Kind: KindPhrase, Tokens: normalize.Tokenize(tok.text)}, nil
	case lexTerm:
		p.next()
		return parseTermLeaf(tok.text)
	default:
		return nil, fmt.Errorf("unexpected token: %v", tok)
	}
}

// parseTermLeaf turns a bare term into a WILDCARD or TERM leaf,
// normalizing the raw fragment (steps 1-3 of the normalizer; a bare
// run carries no internal whitespace, so the collapse step is a no-op).
func parseTermLeaf(raw string) (*Node, error) {
	if strings.HasSuffix(raw, "*") {
		prefix := normalize.Normalize(strings.TrimSuffix(raw, "*"))
		if prefix == "" {
			return nil, fmt.Errorf("empty wildcard prefix in %q", raw)
		}
		return &Node{Kind: KindWildcard, Value: prefix}, nil
	}
	return &Node{Kind: KindTerm, Value: normalize.Normalize(raw)}, nil
}
