package token

import "fmt"

// Position is a location in the query text.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column, counted in runes
	Offset int // 0-based byte offset
}

// IsValid reports whether the position was set (line > 0).
func (p Position) IsValid() bool {
	return p.Line > 0
}

func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Span is a half-open range [Start, End) of the query text.
type Span struct {
	Start Position
	End   Position
}

// Contains reports whether the span contains the given byte offset.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start.Offset && offset < s.End.Offset
}

// IsValid reports whether both ends are set.
func (s Span) IsValid() bool {
	return s.Start.IsValid() && s.End.IsValid()
}

// Text returns the slice of src covered by the span.
func (s Span) Text(src string) string {
	if s.Start.Offset < 0 || s.End.Offset > len(src) || s.Start.Offset > s.End.Offset {
		return ""
	}
	return src[s.Start.Offset:s.End.Offset]
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%s", s.Start, s.End)
}
