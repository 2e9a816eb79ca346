package ql

import "fmt"

// Parse turns filter expression text into a surface tree. On success it
// also returns the flat list of significant tokens scanned, mirroring the
// public `parse(text) -> (surfaceTree, tokens)` operation of the
// specification; callers that do not need the token list can ignore it.
func Parse(text string) (*Node, []Token, error) {
	p := &parser{s: NewScanner(text)}
	p.s.NextNonWhitespaceToken()

	root, err := p.parseExpression()
	if err != nil {
		return nil, p.tokens, err
	}
	if p.s.TokenType() != EOFToken {
		return nil, p.tokens, newParseError(p.s.Start(), p.s.Token(),
			fmt.Sprintf("Unexpected trailing input '%s'", p.s.Token()))
	}
	return root, p.tokens, nil
}

// Token is a lightweight record of a scanned significant token, returned
// alongside the surface tree for callers that want to inspect raw lexemes
// (e.g. a syntax highlighter).
type Token struct {
	Type TokenType
	Text string
	Pos  Pos
}

type parser struct {
	s      *Scanner
	tokens []Token
}

// advance records the current token (for the Parse token list) and moves
// the scanner to the next significant token.
func (p *parser) advance() TokenType {
	p.tokens = append(p.tokens, Token{Type: p.s.TokenType(), Text: p.s.Token(), Pos: p.s.Start()})
	return p.s.NextNonWhitespaceToken()
}

func (p *parser) fail() error {
	tt := p.s.TokenType()
	switch tt {
	case UnexpectedCharacterErrorToken:
		return newUnexpectedTokenError(p.s.Start(), p.s.Token())
	case UnterminatedStringErrorToken:
		return newParseError(p.s.Start(), p.s.Token(), "Unterminated string literal")
	case EOFToken:
		return newParseError(p.s.Start(), "", "Unexpected end of input")
	default:
		return newParseError(p.s.Start(), p.s.Token(), fmt.Sprintf("Unexpected token '%s'", p.s.Token()))
	}
}

// expect consumes the current token if it matches tt, else returns a parse
// error.
func (p *parser) expect(tt TokenType) error {
	if p.s.TokenType() != tt {
		return p.fail()
	}
	p.advance()
	return nil
}

func (p *parser) parseExpression() (*Node, error) {
	return p.parseOr()
}

func (p *parser) parseOr() (*Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.s.TokenType() == OrToken {
		pos := p.s.Start()
		p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NLogical, Pos: pos, LogicalOp: OpOr, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (*Node, error) {
	left, err := p.parseNot()
	if err != nil {
		return nil, err
	}
	for p.s.TokenType() == AndToken {
		pos := p.s.Start()
		p.advance()
		right, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		left = &Node{Kind: NLogical, Pos: pos, LogicalOp: OpAnd, Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseNot() (*Node, error) {
	if p.s.TokenType() == NotToken {
		pos := p.s.Start()
		p.advance()
		arg, err := p.parseNot()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NNot, Pos: pos, Arg: arg}, nil
	}
	return p.parseAtomic()
}

func (p *parser) parseAtomic() (*Node, error) {
	switch p.s.TokenType() {
	case LeftParenToken:
		return p.parseGroup()
	case ContainsToken:
		return p.parseCall("contains", false)
	case StartsWithToken:
		return p.parseCall("startsWith", false)
	case EndsWithToken:
		return p.parseCall("endsWith", false)
	case AnyToken:
		return p.parseCall("any", true)
	case AllToken:
		return p.parseCall("all", true)
	case NoneToken:
		return p.parseCall("none", true)
	case StringToken, NumberToken, TrueToken, FalseToken, NullToken:
		return p.parseLiteralNode()
	case IdentifierToken:
		return p.parsePathBased()
	default:
		return nil, p.fail()
	}
}

func (p *parser) parseGroup() (*Node, error) {
	pos := p.s.Start()
	if err := p.expect(LeftParenToken); err != nil {
		return nil, err
	}
	inner, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if err := p.expect(RightParenToken); err != nil {
		return nil, err
	}
	return &Node{Kind: NGroup, Pos: pos, Arg: inner}, nil
}

func (p *parser) parseCall(name string, isQuantifier bool) (*Node, error) {
	pos := p.s.Start()
	p.advance() // consume function-name token
	if err := p.expect(LeftParenToken); err != nil {
		return nil, err
	}
	first, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	args := []*Node{first}
	if p.s.TokenType() == CommaToken {
		p.advance()
		second, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, second)
	} else if isQuantifier {
		return nil, newParseError(p.s.Start(), p.s.Token(),
			fmt.Sprintf("'%s' requires exactly 2 arguments", name))
	}
	if err := p.expect(RightParenToken); err != nil {
		return nil, err
	}
	if isQuantifier && len(args) != 2 {
		return nil, newParseError(pos, name, fmt.Sprintf("'%s' requires exactly 2 arguments", name))
	}
	return &Node{Kind: NCall, Pos: pos, Name: name, Args: args}, nil
}

func (p *parser) parseLiteralNode() (*Node, error) {
	pos := p.s.Start()
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: NLiteral, Pos: pos, Lit: lit}, nil
}

// parseLiteral consumes the current literal token and returns its decoded
// value, advancing past it.
func (p *parser) parseLiteral() (Literal, error) {
	switch p.s.TokenType() {
	case StringToken:
		v, err := p.s.StringValue()
		if err != nil {
			return Literal{}, err
		}
		p.advance()
		return Str(v), nil
	case NumberToken:
		v, err := p.s.NumberValue()
		if err != nil {
			return Literal{}, newParseError(p.s.Start(), p.s.Token(),
				fmt.Sprintf("Invalid number literal '%s'", p.s.Token()))
		}
		p.advance()
		return Num(v), nil
	case TrueToken:
		p.advance()
		return Bool(true), nil
	case FalseToken:
		p.advance()
		return Bool(false), nil
	case NullToken:
		p.advance()
		return Null(), nil
	case UnexpectedCharacterErrorToken, UnterminatedStringErrorToken:
		return Literal{}, p.fail()
	default:
		return Literal{}, newParseError(p.s.Start(), p.s.Token(), "Expected a literal (string, number, true, false or null)")
	}
}

func compOpFor(tt TokenType) (CompOp, bool) {
	switch tt {
	case EqToken:
		return OpEq, true
	case NeqToken:
		return OpNeq, true
	case GtToken:
		return OpGt, true
	case GteToken:
		return OpGte, true
	case LtToken:
		return OpLt, true
	case LteToken:
		return OpLte, true
	}
	return 0, false
}

func shorthandCompOpFor(tt TokenType) (CompOp, bool) {
	switch tt {
	case GtToken:
		return OpGt, true
	case GteToken:
		return OpGte, true
	case LtToken:
		return OpLt, true
	case LteToken:
		return OpLte, true
	}
	return 0, false
}

func (p *parser) parsePathBased() (*Node, error) {
	pos := p.s.Start()
	path, err := p.parseFieldPath()
	if err != nil {
		return nil, err
	}

	if op, ok := compOpFor(p.s.TokenType()); ok {
		p.advance()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NComparison, Pos: pos, Path: path, CompOp: op, Lit: lit}, nil
	}

	if p.s.TokenType() == ColonToken {
		p.advance()
		return p.parseShorthandRHS(pos, path)
	}

	return &Node{Kind: NPath, Pos: pos, Path: path}, nil
}

func (p *parser) parseFieldPath() (Path, error) {
	if p.s.TokenType() != IdentifierToken {
		return nil, p.fail()
	}
	first := p.s.Token()
	p.advance()
	path := Path{first}

	for p.s.TokenType() == DotToken {
		p.advance()
		switch p.s.TokenType() {
		case IdentifierToken:
			path = append(path, p.s.Token())
			p.advance()
		case StringToken:
			v, err := p.s.StringValue()
			if err != nil {
				return nil, err
			}
			path = append(path, v)
			p.advance()
		default:
			return nil, newParseError(p.s.Start(), p.s.Token(), "Expected an identifier or quoted string after '.'")
		}
	}
	return path, nil
}

// parseShorthandRHS parses the right-hand side of `path :` and assembles
// the resulting NShorthand node. The scanner is positioned on the first
// token of the RHS.
func (p *parser) parseShorthandRHS(pos Pos, path Path) (*Node, error) {
	switch {
	case p.s.TokenType() == LeftParenToken:
		items, listOp, err := p.parseValueList()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NShorthand, Pos: pos, Path: path, RHSKind: RHSValueList, Items: items, ListOp: listOp}, nil
	default:
		if op, ok := shorthandCompOpFor(p.s.TokenType()); ok {
			p.advance()
			lit, err := p.parseLiteral()
			if err != nil {
				return nil, err
			}
			return &Node{Kind: NShorthand, Pos: pos, Path: path, RHSKind: RHSCompShorthand, CompOp: op, Lit: lit}, nil
		}
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NShorthand, Pos: pos, Path: path, RHSKind: RHSLiteral, Lit: lit}, nil
	}
}

// parseValueList parses '(' (AND|OR)? item (',' item)* ')'. The optional
// leading AND/OR keyword is this implementation's resolution of the
// surface syntax for the "explicit AND|OR" that spec.md's data model
// mentions but whose concrete syntax the grammar in spec.md §4.1 leaves
// unstated (see DESIGN.md, Open Question "value-list explicit operator").
func (p *parser) parseValueList() ([]*Node, *LogicalOp, error) {
	if err := p.expect(LeftParenToken); err != nil {
		return nil, nil, err
	}

	var listOp *LogicalOp
	if p.s.TokenType() == AndToken || p.s.TokenType() == OrToken {
		op := OpAnd
		if p.s.TokenType() == OrToken {
			op = OpOr
		}
		listOp = &op
		p.advance()
	}

	item, err := p.parseValueListItem()
	if err != nil {
		return nil, nil, err
	}
	items := []*Node{item}

	for p.s.TokenType() == CommaToken {
		p.advance()
		item, err := p.parseValueListItem()
		if err != nil {
			return nil, nil, err
		}
		items = append(items, item)
	}

	if err := p.expect(RightParenToken); err != nil {
		return nil, nil, err
	}
	if len(items) == 0 {
		return nil, nil, newParseError(p.s.Start(), p.s.Token(), "Value list must not be empty")
	}
	return items, listOp, nil
}

func (p *parser) parseValueListItem() (*Node, error) {
	pos := p.s.Start()
	if op, ok := shorthandCompOpFor(p.s.TokenType()); ok {
		p.advance()
		lit, err := p.parseLiteral()
		if err != nil {
			return nil, err
		}
		return &Node{Kind: NCompShorthand, Pos: pos, CompOp: op, Lit: lit}, nil
	}
	lit, err := p.parseLiteral()
	if err != nil {
		return nil, err
	}
	return &Node{Kind: NLiteral, Pos: pos, Lit: lit}, nil
}
