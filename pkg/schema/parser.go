package schema

import "fmt"

// ParseError reports a parser failure: the set of token types that would
// have been accepted, the token actually found, and its source span.
type ParseError struct {
	Expected []TokenType
	Got      Token
	Span     Position
}

func (e *ParseError) Error() string {
	if len(e.Expected) == 1 {
		return fmt.Sprintf("%s: expected %s, got %s", e.Span, e.Expected[0], e.Got)
	}
	return fmt.Sprintf("%s: expected one of %v, got %s", e.Span, e.Expected, e.Got)
}

// scalarKeyword maps the scalar-type identifier spellings to their kind.
// Scalar types are lexed as plain identifiers (TokenIdent), distinguished
// from named-type references only during parsing.
func scalarKeyword(name string) (ScalarKind, bool) {
	return LookupScalar(name)
}

// Parser is a recursive-descent parser over a token stream produced by the
// Lexer, implementing the grammar in the EBNF description of the schema
// language.
type Parser struct {
	filename string
	tokens   []Token
	pos      int
}

// NewParser creates a Parser over a pre-lexed token stream (including the
// trailing TokenEOF, excluding comments).
func NewParser(filename string, tokens []Token) *Parser {
	return &Parser{filename: filename, tokens: tokens}
}

// ParseFile parses filename's source text into a SchemaFile.
func ParseFile(filename, source string) (*SchemaFile, error) {
	tokens, err := Tokenize(filename, source)
	if err != nil {
		return nil, err
	}
	return NewParser(filename, tokens).Parse()
}

func (p *Parser) cur() Token {
	if p.pos >= len(p.tokens) {
		return Token{Type: TokenEOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) advance() Token {
	t := p.cur()
	if p.pos < len(p.tokens) {
		p.pos++
	}
	return t
}

func (p *Parser) expect(tt TokenType) (Token, error) {
	if p.cur().Type != tt {
		return Token{}, &ParseError{Expected: []TokenType{tt}, Got: p.cur(), Span: p.cur().Position}
	}
	return p.advance(), nil
}

// Parse consumes the entire token stream, returning a file-level AST with
// declarations in source order.
func (p *Parser) Parse() (*SchemaFile, error) {
	start := p.cur().Position
	file := &SchemaFile{Position: start}

	for p.cur().Type != TokenEOF {
		switch p.cur().Type {
		case TokenMessage:
			msg, err := p.parseMessage()
			if err != nil {
				return nil, err
			}
			file.Declarations = append(file.Declarations, msg)
		case TokenEnum:
			en, err := p.parseEnum()
			if err != nil {
				return nil, err
			}
			file.Declarations = append(file.Declarations, en)
		default:
			return nil, &ParseError{
				Expected: []TokenType{TokenMessage, TokenEnum},
				Got:      p.cur(),
				Span:     p.cur().Position,
			}
		}
	}
	file.EndPos = p.cur().Position
	return file, nil
}

func (p *Parser) parseMessage() (*MessageDecl, error) {
	kw := p.advance() // 'message'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	msg := &MessageDecl{Position: kw.Position, Name: name.Value}
	for p.cur().Type != TokenRBrace {
		if p.skipSeparator() {
			continue
		}
		field, err := p.parseField()
		if err != nil {
			return nil, err
		}
		msg.Fields = append(msg.Fields, field)
	}
	end, err := p.expect(TokenRBrace)
	if err != nil {
		return nil, err
	}
	msg.EndPos = end.Position
	return msg, nil
}

// skipSeparator consumes a stray trailing comma or semicolon between
// fields/variants, returning true if it consumed one.
func (p *Parser) skipSeparator() bool {
	if p.cur().Type == TokenComma || p.cur().Type == TokenSemicolon {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) parseField() (*FieldDecl, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenColon); err != nil {
		return nil, err
	}
	ft, err := p.parseType()
	if err != nil {
		return nil, err
	}
	end := ft.End()
	if p.cur().Type == TokenSemicolon {
		end = p.cur().Position
		p.advance()
	} else if p.cur().Type == TokenComma {
		end = p.cur().Position
		p.advance()
	}
	return &FieldDecl{Position: name.Position, EndPos: end, Name: name.Value, FieldType: ft}, nil
}

func (p *Parser) parseType() (FieldType, error) {
	tok := p.cur()
	switch tok.Type {
	case TokenLBracket:
		p.advance()
		elem, err := p.parseType()
		if err != nil {
			return nil, err
		}
		end, err := p.expect(TokenRBracket)
		if err != nil {
			return nil, err
		}
		return &VectorType{Position: tok.Position, EndPos: end.Position, Element: elem}, nil
	case TokenIdent:
		p.advance()
		if kind, ok := scalarKeyword(tok.Value); ok {
			return &ScalarType{Position: tok.Position, EndPos: tok.Position, Kind: kind}, nil
		}
		return &NamedType{Position: tok.Position, EndPos: tok.Position, Name: tok.Value}, nil
	default:
		return nil, &ParseError{Expected: []TokenType{TokenIdent, TokenLBracket}, Got: tok, Span: tok.Position}
	}
}

func (p *Parser) parseEnum() (*EnumDecl, error) {
	kw := p.advance() // 'enum'
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenLBrace); err != nil {
		return nil, err
	}

	en := &EnumDecl{Position: kw.Position, Name: name.Value}
	for p.cur().Type != TokenRBrace {
		if p.skipSeparator() {
			continue
		}
		variant, err := p.parseVariant()
		if err != nil {
			return nil, err
		}
		en.Variants = append(en.Variants, variant)
	}
	end, err := p.expect(TokenRBrace)
	if err != nil {
		return nil, err
	}
	en.EndPos = end.Position
	return en, nil
}

func (p *Parser) parseVariant() (*EnumVariant, error) {
	name, err := p.expect(TokenIdent)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(TokenEquals); err != nil {
		return nil, err
	}
	valTok := p.cur()
	if valTok.Type != TokenInt {
		return nil, &ParseError{Expected: []TokenType{TokenInt}, Got: valTok, Span: valTok.Position}
	}
	p.advance()
	value, err := parseInt64(valTok.Value)
	if err != nil {
		return nil, &ParseError{Expected: []TokenType{TokenInt}, Got: valTok, Span: valTok.Position}
	}

	end := valTok.Position
	if p.cur().Type == TokenSemicolon {
		end = p.cur().Position
		p.advance()
	} else if p.cur().Type == TokenComma {
		end = p.cur().Position
		p.advance()
	}
	return &EnumVariant{Position: name.Position, EndPos: end, Name: name.Value, Value: value}, nil
}

func parseInt64(s string) (int64, error) {
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, fmt.Errorf("empty integer literal")
	}
	limit := uint64(1<<63 - 1)
	if neg {
		limit = 1 << 63
	}
	var v uint64
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid digit %q", r)
		}
		d := uint64(r - '0')
		if v > (limit-d)/10 {
			return 0, fmt.Errorf("integer literal out of range")
		}
		v = v*10 + d
	}
	if neg {
		return -int64(v), nil
	}
	return int64(v), nil
}
