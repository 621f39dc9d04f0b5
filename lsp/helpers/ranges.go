package helpers

import (
	"bennypowers.dev/sls/internal/position"
	"bennypowers.dev/sls/internal/symbols"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// OffsetToPosition converts a byte offset in content to an LSP position
func OffsetToPosition(content string, offset int) protocol.Position {
	line, col := position.OffsetToLineCol(content, offset)
	return protocol.Position{
		Line:      uint32(line), //nolint:gosec // G115: bounded by document size
		Character: uint32(col),  //nolint:gosec // G115: bounded by document size
	}
}

// PositionToOffset converts an LSP position to a byte offset in content
func PositionToOffset(content string, pos protocol.Position) int {
	return position.LineColToOffset(content, int(pos.Line), int(pos.Character))
}

// SpanToRange converts a byte span in content to an LSP range
func SpanToRange(content string, span symbols.Span) protocol.Range {
	return protocol.Range{
		Start: OffsetToPosition(content, span.Start),
		End:   OffsetToPosition(content, span.End),
	}
}

// RangeContains reports whether pos lies in the half-open range r
func RangeContains(r protocol.Range, pos protocol.Position) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}
