package token

import "talfront/internal/source"

// TriviaKind classifies non-significant source text.
type TriviaKind uint8

const (
	TriviaSpace TriviaKind = iota
	TriviaNewline
	// TriviaComment is '!' up to the next '!' or end of line.
	TriviaComment
	// TriviaDashComment is '--' to end of line.
	TriviaDashComment
)

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "space"
	case TriviaNewline:
		return "newline"
	case TriviaComment:
		return "comment"
	case TriviaDashComment:
		return "dash_comment"
	}
	return "unknown"
}
