package scss

import (
	"strings"

	"bennypowers.dev/sls/internal/symbols"
)

// TokenKind classifies a lexical token
type TokenKind int

const (
	// TokenWord is any run of selector, property or value characters,
	// including interpolations (#{...}) and raw url(...) calls
	TokenWord TokenKind = iota
	// TokenVariable is a $name reference or declaration
	TokenVariable
	// TokenAtKeyword is an @name directive
	TokenAtKeyword
	// TokenString is a single- or double-quoted string, quotes included
	TokenString
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenSemicolon
	TokenColon
	TokenComma
	// TokenComment is a // line comment or /* block */ comment
	TokenComment
	// TokenSpace is a run of whitespace
	TokenSpace
)

// Token is a lexical token with its byte range in the source
type Token struct {
	Kind  TokenKind
	Start int
	End   int
	Text  string
}

// Significant reports whether the token takes part in statement structure
func (t Token) Significant() bool {
	return t.Kind != TokenComment && t.Kind != TokenSpace
}

// Scan tokenizes source, failing on unterminated strings, comments and
// interpolations
func Scan(source string) ([]Token, error) {
	s := &scanner{src: source, strict: true}
	return s.scan()
}

type scanner struct {
	src    string
	pos    int
	strict bool
	tokens []Token
}

// bom is the UTF-8 byte order mark some editors prepend
const bom = "\ufeff"

func (s *scanner) scan() ([]Token, error) {
	if s.pos == 0 && strings.HasPrefix(s.src, bom) {
		s.pos = len(bom)
	}
	for s.pos < len(s.src) {
		start := s.pos
		c := s.src[s.pos]
		var kind TokenKind
		var err error

		switch {
		case isSpace(c):
			for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
				s.pos++
			}
			kind = TokenSpace
		case c == '/' && s.peek(1) == '/':
			s.skipLineComment()
			kind = TokenComment
		case c == '/' && s.peek(1) == '*':
			err = s.skipBlockComment()
			kind = TokenComment
		case c == '"' || c == '\'':
			err = s.skipString(c)
			kind = TokenString
		case c == '$' && isIdentChar(s.peek(1)):
			s.pos++
			s.skipIdent()
			kind = TokenVariable
		case c == '@' && isIdentChar(s.peek(1)):
			s.pos++
			s.skipIdent()
			kind = TokenAtKeyword
		case c == '{':
			s.pos++
			kind = TokenLBrace
		case c == '}':
			s.pos++
			kind = TokenRBrace
		case c == '(':
			s.pos++
			kind = TokenLParen
		case c == ')':
			s.pos++
			kind = TokenRParen
		case c == ';':
			s.pos++
			kind = TokenSemicolon
		case c == ':':
			s.pos++
			kind = TokenColon
		case c == ',':
			s.pos++
			kind = TokenComma
		default:
			err = s.skipWord()
			kind = TokenWord
		}
		if err != nil {
			return nil, err
		}
		s.tokens = append(s.tokens, Token{Kind: kind, Start: start, End: s.pos, Text: s.src[start:s.pos]})
	}
	return s.tokens, nil
}

func (s *scanner) peek(n int) byte {
	if s.pos+n < len(s.src) {
		return s.src[s.pos+n]
	}
	return 0
}

func (s *scanner) skipIdent() {
	for s.pos < len(s.src) && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) skipLineComment() {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
}

func (s *scanner) skipBlockComment() error {
	start := s.pos
	end := strings.Index(s.src[s.pos+2:], "*/")
	if end < 0 {
		s.pos = len(s.src)
		return s.fail(start, "unterminated comment")
	}
	s.pos += 2 + end + 2
	return nil
}

// skipString consumes a quoted string. A newline before the closing quote
// ends the string.
func (s *scanner) skipString(quote byte) error {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case '\\':
			s.pos += 2
			continue
		case quote:
			s.pos++
			return nil
		case '\n':
			return s.fail(start, "unterminated string")
		}
		s.pos++
	}
	s.pos = len(s.src)
	return s.fail(start, "unterminated string")
}

// skipInterpolation consumes #{...}, honoring nested braces and strings
func (s *scanner) skipInterpolation() error {
	start := s.pos
	s.pos += 2
	depth := 1
	for s.pos < len(s.src) {
		switch c := s.src[s.pos]; c {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				s.pos++
				return nil
			}
		case '"', '\'':
			if err := s.skipString(c); err != nil {
				return err
			}
			continue
		}
		s.pos++
	}
	return s.fail(start, "unterminated interpolation")
}

// skipURL consumes an unquoted url(...) so that "//" inside it is not
// taken for a comment
func (s *scanner) skipURL() {
	for s.pos < len(s.src) && s.src[s.pos] != ')' && s.src[s.pos] != '\n' {
		s.pos++
	}
	if s.pos < len(s.src) && s.src[s.pos] == ')' {
		s.pos++
	}
}

func (s *scanner) skipWord() error {
	start := s.pos
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == '#' && s.peek(1) == '{':
			if err := s.skipInterpolation(); err != nil {
				return err
			}
			continue
		case c == '(' && strings.EqualFold(s.src[start:s.pos], "url") && !isQuote(s.nextNonSpace(1)):
			s.skipURL()
			return nil
		case c == '\\' && s.pos+1 < len(s.src):
			s.pos += 2
			continue
		case isSpace(c), isPunct(c), isQuote(c):
			return nil
		case c == '/' && (s.peek(1) == '/' || s.peek(1) == '*'):
			return nil
		case (c == '$' || c == '@') && isIdentChar(s.peek(1)) && s.pos > start:
			return nil
		}
		s.pos++
	}
	return nil
}

func (s *scanner) nextNonSpace(n int) byte {
	for i := s.pos + n; i < len(s.src); i++ {
		if !isSpace(s.src[i]) {
			return s.src[i]
		}
	}
	return 0
}

// fail reports a scan error. Outside strict mode the construct simply runs
// to where scanning stopped.
func (s *scanner) fail(offset int, reason string) error {
	if !s.strict {
		return nil
	}
	return symbols.NewSyntaxExtractionError(offset, reason)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isQuote(c byte) bool {
	return c == '"' || c == '\''
}

func isPunct(c byte) bool {
	switch c {
	case '{', '}', '(', ')', ';', ':', ',':
		return true
	}
	return false
}

func isIdentChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c >= 0x80
}
