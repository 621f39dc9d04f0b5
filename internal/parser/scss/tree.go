package scss

import (
	"regexp"
	"strings"

	"bennypowers.dev/sls/internal/ast"
	"bennypowers.dev/sls/internal/symbols"
)

// Mode selects how Build treats input it cannot structure
type Mode int

const (
	// Strict fails with a SyntaxExtractionError on unterminated blocks,
	// strings, comments and interpolations, and on unmatched closing braces
	Strict Mode = iota
	// Lenient closes open constructs at end of input and skips stray braces
	Lenient
)

// flagPattern matches the !default and !global variable flags
var flagPattern = regexp.MustCompile(`\s*!(default|global)\b`)

// Build parses source into a tree rooted at a stylesheet node spanning the
// whole input
func Build(source string, mode Mode) (*Node, error) {
	s := &scanner{src: source, strict: mode == Strict}
	tokens, err := s.scan()
	if err != nil {
		return nil, err
	}

	significant := make([]Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Significant() {
			significant = append(significant, tok)
		}
	}

	b := &builder{src: source, toks: significant, strict: mode == Strict}
	children, _, err := b.body(-1)
	if err != nil {
		return nil, err
	}

	root := &Node{kind: ast.KindStylesheet, start: 0, end: len(source)}
	root.add(children...)
	return root, nil
}

type builder struct {
	src    string
	toks   []Token
	pos    int
	strict bool
}

func (b *builder) atEOF() bool {
	return b.pos >= len(b.toks)
}

// body parses statements up to the brace closing the block opened at
// offset open, or to end of input when open is negative. It returns the
// statements and the offset just past the block.
func (b *builder) body(open int) ([]*Node, int, error) {
	var nodes []*Node
	for {
		if b.atEOF() {
			if open >= 0 && b.strict {
				return nil, 0, symbols.NewSyntaxExtractionError(open, "unterminated block")
			}
			return nodes, len(b.src), nil
		}

		tok := b.toks[b.pos]
		switch tok.Kind {
		case TokenRBrace:
			b.pos++
			if open >= 0 {
				return nodes, tok.End, nil
			}
			if b.strict {
				return nil, 0, symbols.NewSyntaxExtractionError(tok.Start, "unmatched closing brace")
			}
			continue
		case TokenSemicolon:
			b.pos++
			continue
		}

		stmts, err := b.statement()
		if err != nil {
			return nil, 0, err
		}
		nodes = append(nodes, stmts...)
	}
}

// statement parses one statement: a header running to a top-level ";",
// or to a brace, optionally followed by a block
func (b *builder) statement() ([]*Node, error) {
	headerStart := b.pos
	depth := 0
scan:
	for !b.atEOF() {
		switch b.toks[b.pos].Kind {
		case TokenLBrace, TokenRBrace:
			break scan
		case TokenSemicolon:
			if depth == 0 {
				break scan
			}
		case TokenLParen:
			depth++
		case TokenRParen:
			if depth > 0 {
				depth--
			}
		}
		b.pos++
	}
	header := b.toks[headerStart:b.pos]

	var term *Token
	if !b.atEOF() {
		term = &b.toks[b.pos]
	}
	hasBlock := term != nil && term.Kind == TokenLBrace

	if !hasBlock && len(header) > 0 && header[0].Kind == TokenAtKeyword {
		switch keyword := atKeyword(header[0]); keyword {
		case "import", "use", "forward":
			if term != nil && term.Kind == TokenSemicolon {
				b.pos++
			}
			return b.importTargets(keyword, header[1:]), nil
		}
	}

	n := b.declaration(header, hasBlock)
	switch {
	case len(header) > 0:
		n.start = header[0].Start
		n.end = header[len(header)-1].End
	case term != nil:
		n.start, n.end = term.Start, term.Start
	}

	if term == nil {
		return []*Node{n}, nil
	}
	switch term.Kind {
	case TokenLBrace:
		b.pos++
		children, end, err := b.body(term.Start)
		if err != nil {
			return nil, err
		}
		block := &Node{kind: ast.KindBlock, start: term.Start, end: end}
		block.add(children...)
		n.add(block)
		n.end = end
	case TokenSemicolon:
		b.pos++
		n.end = term.End
	}
	return []*Node{n}, nil
}

// declaration classifies a statement header
func (b *builder) declaration(header []Token, hasBlock bool) *Node {
	if len(header) == 0 {
		return &Node{kind: ast.KindRule}
	}

	first := header[0]
	switch first.Kind {
	case TokenVariable:
		if len(header) > 1 && header[1].Kind == TokenColon {
			value := flagPattern.ReplaceAllString(b.text(header[2:]), "")
			return &Node{
				kind:  ast.KindVariable,
				name:  first.Text[1:],
				value: strings.TrimSpace(value),
			}
		}
	case TokenAtKeyword:
		keyword := atKeyword(first)
		switch keyword {
		case "mixin", "function":
			kind := ast.KindMixin
			if keyword == "function" {
				kind = ast.KindFunction
			}
			n := &Node{kind: kind}
			rest := header[1:]
			if len(rest) > 0 && rest[0].Kind == TokenWord {
				n.name = rest[0].Text
				rest = rest[1:]
			}
			n.add(b.parameters(rest)...)
			return n
		case "include":
			n := &Node{kind: ast.KindInclude}
			if len(header) > 1 && header[1].Kind == TokenWord {
				n.name = header[1].Text
			}
			return n
		default:
			return &Node{kind: ast.KindAtRule, name: keyword, value: b.text(header[1:])}
		}
	}

	if hasBlock {
		return &Node{kind: ast.KindRule, name: b.text(header)}
	}
	for i, tok := range header {
		if tok.Kind == TokenColon {
			return &Node{kind: ast.KindDeclaration, name: b.text(header[:i]), value: b.text(header[i+1:])}
		}
	}
	return &Node{kind: ast.KindDeclaration, name: b.text(header)}
}

// parameters reads a "($a, $b: default, $rest...)" list
func (b *builder) parameters(tokens []Token) []*Node {
	if len(tokens) == 0 || tokens[0].Kind != TokenLParen {
		return nil
	}
	inner := tokens[1:]
	end := len(inner)
	depth := 0
	for i, tok := range inner {
		if tok.Kind == TokenLParen {
			depth++
		} else if tok.Kind == TokenRParen {
			if depth == 0 {
				end = i
				break
			}
			depth--
		}
	}

	var params []*Node
	for _, piece := range splitTopLevel(inner[:end]) {
		if len(piece) == 0 || piece[0].Kind != TokenVariable {
			continue
		}
		p := &Node{
			kind:  ast.KindParameter,
			name:  piece[0].Text[1:],
			start: piece[0].Start,
			end:   piece[len(piece)-1].End,
		}
		if len(piece) > 1 && piece[1].Kind == TokenColon {
			p.value = b.text(piece[2:])
		}
		params = append(params, p)
	}
	return params
}

// importTargets turns the items of an @import, @use or @forward into
// import nodes. @use and @forward take a single target; @use of a sass:
// built-in module yields nothing.
func (b *builder) importTargets(keyword string, tokens []Token) []*Node {
	items := splitTopLevel(tokens)
	if keyword != "import" && len(items) > 1 {
		items = items[:1]
	}

	var nodes []*Node
	for _, item := range items {
		if len(item) == 0 {
			continue
		}
		n := &Node{kind: ast.KindImport, start: item[0].Start, end: item[len(item)-1].End}
		first := item[0]
		switch {
		case first.Kind == TokenString:
			n.name = unquote(first.Text)
			n.css = isCSSPath(n.name) || (keyword == "import" && len(item) > 1)
		case first.Kind == TokenWord && len(first.Text) > 4 && strings.EqualFold(first.Text[:4], "url("):
			n.name = unquote(strings.TrimSpace(strings.TrimSuffix(first.Text[4:], ")")))
			n.css = true
		case first.Kind == TokenWord && strings.EqualFold(first.Text, "url") &&
			len(item) > 2 && item[1].Kind == TokenLParen && item[2].Kind == TokenString:
			n.name = unquote(item[2].Text)
			n.css = true
		default:
			n.name = b.text(item)
			n.dynamic = true
		}
		if strings.Contains(n.name, "#{") {
			n.dynamic = true
		}
		if strings.HasPrefix(n.name, "sass:") {
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

// text returns the trimmed source covered by tokens
func (b *builder) text(tokens []Token) string {
	if len(tokens) == 0 {
		return ""
	}
	return strings.TrimSpace(b.src[tokens[0].Start:tokens[len(tokens)-1].End])
}

// splitTopLevel splits tokens on commas outside parentheses
func splitTopLevel(tokens []Token) [][]Token {
	var parts [][]Token
	depth := 0
	start := 0
	for i, tok := range tokens {
		switch tok.Kind {
		case TokenLParen:
			depth++
		case TokenRParen:
			if depth > 0 {
				depth--
			}
		case TokenComma:
			if depth == 0 {
				parts = append(parts, tokens[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, tokens[start:])
}

func atKeyword(tok Token) string {
	return strings.ToLower(tok.Text[1:])
}

func unquote(s string) string {
	if s == "" || !isQuote(s[0]) {
		return s
	}
	quote := s[0]
	s = s[1:]
	if len(s) > 0 && s[len(s)-1] == quote {
		s = s[:len(s)-1]
	}
	return s
}

func isCSSPath(p string) bool {
	lower := strings.ToLower(p)
	return strings.HasSuffix(lower, ".css") ||
		strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "//")
}
