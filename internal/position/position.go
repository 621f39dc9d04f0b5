// Package position converts between byte offsets and the zero-based line
// and UTF-16 column pairs used by LSP positions.
package position

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// UTF16ToByteOffset returns the byte offset of UTF-16 column col in s.
// A column inside a surrogate pair snaps to the start of its rune, and
// columns past the end clamp to len(s).
func UTF16ToByteOffset(s string, col int) int {
	units := 0
	for i, r := range s {
		n := utf16.RuneLen(r)
		if units+n > col {
			return i
		}
		units += n
	}
	return len(s)
}

// ByteOffsetToUTF16 counts the UTF-16 code units before byte offset in s.
// A rune that offset splits is not counted.
func ByteOffsetToUTF16(s string, offset int) int {
	units := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if i+size > offset {
			break
		}
		units += utf16.RuneLen(r)
		i += size
	}
	return units
}

// UTF16Len returns the length of s in UTF-16 code units
func UTF16Len(s string) int {
	return ByteOffsetToUTF16(s, len(s))
}

// OffsetToLineCol converts a byte offset into a zero-based line number and
// UTF-16 column. Offsets past the end clamp to the end of the string.
func OffsetToLineCol(s string, offset int) (line, col int) {
	offset = max(0, min(offset, len(s)))
	prefix := s[:offset]
	line = strings.Count(prefix, "\n")
	lineStart := strings.LastIndexByte(prefix, '\n') + 1
	return line, ByteOffsetToUTF16(s[lineStart:], offset-lineStart)
}

// LineColToOffset converts a zero-based line and UTF-16 column into a byte
// offset. Lines past the end clamp to the end of the string and columns past
// the end of a line clamp to the line's end.
func LineColToOffset(s string, line, col int) int {
	start := 0
	for range line {
		next := strings.IndexByte(s[start:], '\n')
		if next < 0 {
			return len(s)
		}
		start += next + 1
	}
	end := strings.IndexByte(s[start:], '\n')
	if end < 0 {
		end = len(s) - start
	}
	return start + UTF16ToByteOffset(s[start:start+end], col)
}
