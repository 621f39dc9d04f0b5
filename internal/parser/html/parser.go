// Package html finds style regions in HTML and Vue single-file components.
package html

import (
	"fmt"
	"strings"
	"sync"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_html "github.com/tree-sitter/tree-sitter-html/bindings/go"
)

// Parser extracts <style> regions with tree-sitter-html
type Parser struct {
	parser     *sitter.Parser
	styleQuery *sitter.Query
}

var htmlLang = sitter.NewLanguage(tree_sitter_html.Language())

// parserPool is a pool of reusable HTML parsers
var parserPool = sync.Pool{
	New: func() any {
		parser := sitter.NewParser()
		if err := parser.SetLanguage(htmlLang); err != nil {
			panic(fmt.Sprintf("failed to set HTML language: %v", err))
		}

		styleQuery, qerr := sitter.NewQuery(htmlLang, `(style_element) @style`)
		if qerr != nil {
			panic(fmt.Sprintf("failed to compile style query: %v", qerr))
		}

		return &Parser{
			parser:     parser,
			styleQuery: styleQuery,
		}
	},
}

// AcquireParser gets a parser from the pool
func AcquireParser() *Parser {
	p := parserPool.Get().(*Parser)
	p.parser.Reset()
	return p
}

// ReleaseParser returns a parser to the pool
func ReleaseParser(p *Parser) {
	if p != nil {
		parserPool.Put(p)
	}
}

// Close closes the parser and releases its resources
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
	if p.styleQuery != nil {
		p.styleQuery.Close()
	}
}

// ClosePool closes all parsers in the pool
func ClosePool() {
	for range 100 {
		if p, ok := parserPool.Get().(*Parser); ok && p != nil {
			p.Close()
		}
	}
}

// StyleRegions returns the contents of every <style> element in source
// order. Empty elements yield no region.
func (p *Parser) StyleRegions(source string) []Region {
	sourceBytes := []byte(source)
	tree := p.parser.Parse(sourceBytes, nil)
	if tree == nil {
		return nil
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()

	var regions []Region
	matches := cursor.Matches(p.styleQuery, tree.RootNode(), sourceBytes)
	for match := matches.Next(); match != nil; match = matches.Next() {
		for _, capture := range match.Captures {
			element := capture.Node
			var lang string
			var body *sitter.Node
			for i := uint(0); i < element.ChildCount(); i++ {
				child := element.Child(i)
				switch child.Kind() {
				case "start_tag":
					lang = langAttribute(child, sourceBytes)
				case "raw_text":
					body = child
				}
			}
			if body == nil {
				continue
			}
			regions = append(regions, Region{
				Content:   string(sourceBytes[body.StartByte():body.EndByte()]),
				Start:     int(body.StartByte()),
				StartLine: body.StartPosition().Row,
				StartCol:  body.StartPosition().Column,
				Lang:      strings.ToLower(lang),
			})
		}
	}
	return regions
}

// langAttribute reads lang="..." from a start tag
func langAttribute(tag *sitter.Node, source []byte) string {
	for i := uint(0); i < tag.NamedChildCount(); i++ {
		attr := tag.NamedChild(i)
		if attr.Kind() != "attribute" {
			continue
		}
		var name, value string
		for j := uint(0); j < attr.NamedChildCount(); j++ {
			part := attr.NamedChild(j)
			switch part.Kind() {
			case "attribute_name":
				name = part.Utf8Text(source)
			case "attribute_value":
				value = part.Utf8Text(source)
			case "quoted_attribute_value":
				value = strings.Trim(part.Utf8Text(source), `"'`)
			}
		}
		if strings.EqualFold(name, "lang") {
			return value
		}
	}
	return ""
}

// RegionAt returns the region containing a host document offset
func RegionAt(regions []Region, offset int) (Region, bool) {
	for _, r := range regions {
		if r.Contains(offset) {
			return r, true
		}
	}
	return Region{}, false
}
