package slrgen

import (
	"fmt"
	"text/scanner"
)

// --- A general purpose interface for tokens --------------------------------

// TokType is a category type for a Token. Grammars bind terminals to token
// types, scanners produce them.
type TokType int

// EOF is the token type scanners deliver at the end of input.
// It is identical to text/scanner.EOF.
const EOF TokType = scanner.EOF

// Tokens represent input tokens. They are usually produced by a scanner and
// reflect terminals in a language.
//
// An example would be a token for an integer:
//
//    TokType = Int         // identifier for this kind of tokens
//    Lexeme  = "42"        // lexeme how it appeared in the input stream
//    Span    = 67…69       // occured from position 67 in the input stream
//
type Token interface {
	TokType() TokType
	Lexeme() string
	Value() interface{}
	Span() Span
}

// --- Spans ------------------------------------------------------------

// Span is a small type for capturing a length of input token run.
// A span denotes a start position and the position just behind the end.
type Span [2]uint64 // (x…y)

// From returns the start value of a span.
func (s Span) From() uint64 {
	return s[0]
}

// To returns the end value of a span.
func (s Span) To() uint64 {
	return s[1]
}

// Len returns the length of (x…y)
func (s Span) Len() uint64 {
	return s[1] - s[0]
}

func (s Span) String() string {
	return fmt.Sprintf("(%d…%d)", s[0], s[1])
}
