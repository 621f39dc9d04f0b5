// Package treesitter adapts tree-sitter-css syntax trees to ast.Node.
//
// The CSS grammar has no SCSS productions, so SCSS-only constructs are
// recognized from node text: declarations whose property starts with "$"
// are variables, and @mixin/@function at-rules carry their parameter list in
// the rule prelude. ERROR nodes are dissolved into their parent.
package treesitter

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"bennypowers.dev/sls/internal/ast"
	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_css "github.com/tree-sitter/tree-sitter-css/bindings/go"
)

var cssLang = sitter.NewLanguage(tree_sitter_css.Language())

// parserPool is a pool of reusable CSS parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(cssLang); err != nil {
			panic(fmt.Sprintf("failed to set CSS language: %v", err))
		}
		return parser
	},
}

// acquireParser gets a parser from the pool
func acquireParser() *sitter.Parser {
	p := parserPool.Get().(*sitter.Parser)
	p.Reset()
	return p
}

// releaseParser returns a parser to the pool
func releaseParser(p *sitter.Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// ClosePool closes pooled parsers
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*sitter.Parser); ok && p != nil {
			p.Close()
		}
	}
}

var (
	parameterPattern = regexp.MustCompile(`\$([\w-]+)\s*(?::\s*([^,)]*))?`)
	flagPattern      = regexp.MustCompile(`\s*!(default|global)\b`)
)

// Parser implements ast.Parser over tree-sitter-css. It is safe for
// concurrent use.
type Parser struct{}

// NewParser creates a tree-sitter backed parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse parses source and converts the syntax tree. The returned tree does
// not reference tree-sitter memory.
func (p *Parser) Parse(source string) (ast.Node, error) {
	parser := acquireParser()
	defer releaseParser(parser)

	src := []byte(source)
	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse CSS")
	}
	defer tree.Close()

	c := &converter{src: src}
	root := &Node{kind: ast.KindStylesheet, start: 0, end: len(src)}
	root.children = c.children(tree.RootNode())
	return root, nil
}

type converter struct {
	src []byte
}

func (c *converter) text(n *sitter.Node) string {
	return string(c.src[n.StartByte():n.EndByte()])
}

// children converts the named children of n, lifting the contents of ERROR
// nodes into n
func (c *converter) children(n *sitter.Node) []ast.Node {
	var out []ast.Node
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		if child.IsError() {
			out = append(out, c.children(child)...)
			continue
		}
		out = append(out, c.convert(child))
	}
	return out
}

func (c *converter) convert(n *sitter.Node) *Node {
	node := &Node{
		kind:  ast.KindOther,
		start: int(n.StartByte()),
		end:   int(n.EndByte()),
	}

	switch n.Kind() {
	case "block", "keyframe_block_list":
		node.kind = ast.KindBlock
	case "rule_set":
		node.kind = ast.KindRule
		if sel := childOfKind(n, "selectors"); sel != nil {
			node.name = c.text(sel)
		}
	case "import_statement":
		node.kind = ast.KindImport
		node.name = c.importTarget(n)
	case "declaration":
		c.declaration(n, node)
	case "at_rule":
		c.atRule(n, node)
		return node
	case "media_statement", "keyframes_statement", "supports_statement",
		"charset_statement", "namespace_statement", "scope_statement":
		node.kind = ast.KindAtRule
		node.name = strings.TrimSuffix(n.Kind(), "_statement")
	case "comment", "js_comment":
		return node
	}

	node.children = c.children(n)
	return node
}

func (c *converter) declaration(n *sitter.Node, node *Node) {
	text := strings.TrimSuffix(strings.TrimSpace(c.text(n)), ";")
	name, value, _ := strings.Cut(text, ":")
	name = strings.TrimSpace(name)
	value = strings.TrimSpace(flagPattern.ReplaceAllString(value, ""))

	if strings.HasPrefix(name, "$") {
		node.kind = ast.KindVariable
		node.name = name[1:]
	} else {
		node.kind = ast.KindDeclaration
		node.name = name
	}
	node.value = value
}

// atRule handles generic at-rules, which is where the CSS grammar puts
// @mixin, @function and @include
func (c *converter) atRule(n *sitter.Node, node *Node) {
	keyword := ""
	preludeStart := int(n.StartByte())
	if kw := childOfKind(n, "at_keyword"); kw != nil {
		keyword = strings.TrimPrefix(c.text(kw), "@")
		preludeStart = int(kw.EndByte())
	}

	block := childOfKind(n, "block")
	preludeEnd := int(n.EndByte())
	if block != nil {
		preludeEnd = int(block.StartByte())
	}
	prelude := string(c.src[preludeStart:preludeEnd])

	switch keyword {
	case "mixin", "function":
		node.kind = ast.KindMixin
		if keyword == "function" {
			node.kind = ast.KindFunction
		}
		node.name = leadingIdent(prelude)
		node.children = append(node.children, parameters(prelude, preludeStart)...)
	case "include":
		node.kind = ast.KindInclude
		node.name = leadingIdent(prelude)
	default:
		node.kind = ast.KindAtRule
		node.name = keyword
		node.value = strings.TrimSuffix(strings.TrimSpace(prelude), ";")
	}

	if block != nil {
		node.children = append(node.children, c.convert(block))
	}
}

func (c *converter) importTarget(n *sitter.Node) string {
	for i := uint(0); i < n.NamedChildCount(); i++ {
		child := n.NamedChild(i)
		switch child.Kind() {
		case "string_value":
			return unquote(c.text(child))
		case "call_expression":
			if args := childOfKind(child, "arguments"); args != nil {
				inner := strings.TrimSpace(c.text(args))
				return unquote(strings.TrimSuffix(strings.TrimPrefix(inner, "("), ")"))
			}
		}
	}
	return ""
}

// parameters finds "$name: default" entries in the parenthesized part of a
// mixin or function prelude. base is the prelude's offset in the source.
func parameters(prelude string, base int) []ast.Node {
	open := strings.IndexByte(prelude, '(')
	if open < 0 {
		return nil
	}
	closing := strings.LastIndexByte(prelude, ')')
	if closing < open {
		closing = len(prelude)
	}
	list := prelude[open:closing]

	var params []ast.Node
	for _, m := range parameterPattern.FindAllStringSubmatchIndex(list, -1) {
		start := base + open + m[0]
		p := &Node{
			kind:  ast.KindParameter,
			start: start,
			end:   start + len(strings.TrimSpace(list[m[0]:m[1]])),
			name:  list[m[2]:m[3]],
		}
		if m[4] >= 0 {
			p.value = strings.TrimSpace(list[m[4]:m[5]])
		}
		params = append(params, p)
	}
	return params
}

func childOfKind(n *sitter.Node, kind string) *sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child != nil && child.Kind() == kind {
			return child
		}
	}
	return nil
}

func leadingIdent(s string) string {
	s = strings.TrimSpace(s)
	end := strings.IndexFunc(s, func(r rune) bool {
		return !(r == '-' || r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r > 0x7f)
	})
	if end < 0 {
		return s
	}
	return s[:end]
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}
