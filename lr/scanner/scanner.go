/*
Package scanner defines an interface for scanners to be used with the parser of
package lr/slr.

Two default scanner implementations are provided: (1) a thin wrapper over the Go std lib
'text/scanner', and (2) an adapter for lexmachine, living in sub-package `lexmach`.

Scanners deliver tokens with token types. The parser maps token types to terminals
with the help of the grammar (see lr.TokenTypes and lr.GrammarBuilder.T).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package scanner

import (
	"fmt"
	"io"
	"strconv"
	"text/scanner"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrgen"
)

// tracer traces with key 'slrgen.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("slrgen.scanner")
}

// EOF is identical to text/scanner.EOF.
// Token types are replicated here for practical reasons.
const (
	EOF       = scanner.EOF
	Ident     = scanner.Ident
	Int       = scanner.Int
	Float     = scanner.Float
	Char      = scanner.Char
	String    = scanner.String
	RawString = scanner.RawString
	Comment   = scanner.Comment
)

// Tokenizer is a scanner interface. At the end of input, NextToken returns
// a token of type slrgen.EOF.
type Tokenizer interface {
	NextToken() slrgen.Token
	SetErrorHandler(func(error))
}

// DefaultTokenizer is a default implementation, backed by scanner.Scanner.
// Create one with GoTokenizer.
type DefaultTokenizer struct {
	scanner.Scanner
	lastToken    rune        // last token this scanner has produced
	Error        func(error) // error handler
	unifyStrings bool        // convert single chars to strings
}

var _ Tokenizer = (*DefaultTokenizer)(nil)

// Default error reporting function for scanners
func logError(e error) {
	tracer().Errorf("scanner error: " + e.Error())
}

// GoTokenizer creates a scanner/tokenizer accepting tokens similar to the Go language.
// Operators are delivered as single runes, e.g. '+', with the rune as token type.
func GoTokenizer(sourceID string, input io.Reader, opts ...Option) *DefaultTokenizer {
	t := &DefaultTokenizer{}
	t.Error = logError
	t.Init(input)
	t.Filename = sourceID
	t.Scanner.Error = func(s *scanner.Scanner, msg string) {
		t.Error(fmt.Errorf("%s: %s", s.Position, msg))
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetErrorHandler sets an error handler for the scanner.
func (t *DefaultTokenizer) SetErrorHandler(h func(error)) {
	if h == nil {
		t.Error = logError
		return
	}
	t.Error = h
}

// NextToken is part of the Tokenizer interface.
// Tokens of type Int and Float carry their numeric value.
func (t *DefaultTokenizer) NextToken() slrgen.Token {
	t.lastToken = t.Scan()
	if t.lastToken == scanner.EOF {
		tracer().Debugf("DefaultTokenizer reached end of input")
	}
	if t.unifyStrings &&
		(t.lastToken == scanner.RawString || t.lastToken == scanner.Char) {
		t.lastToken = scanner.String
	}
	token := DefaultToken{
		kind:   slrgen.TokType(t.lastToken),
		lexeme: t.TokenText(),
		span:   slrgen.Span{uint64(t.Position.Offset), uint64(t.Pos().Offset)},
	}
	switch t.lastToken {
	case scanner.Int:
		if n, err := strconv.ParseInt(token.lexeme, 0, 64); err == nil {
			token.Val = n
		}
	case scanner.Float:
		if x, err := strconv.ParseFloat(token.lexeme, 64); err == nil {
			token.Val = x
		}
	}
	return token
}

// --- Default tokens --------------------------------------------------------

// DefaultToken is a very unsophisticated token type, used as default for the Go
// tokenizer as well as the LexMachine scanner.
type DefaultToken struct {
	kind   slrgen.TokType
	lexeme string
	Val    interface{}
	span   slrgen.Span
}

var _ slrgen.Token = DefaultToken{}

// MakeDefaultToken creates a token without a value.
func MakeDefaultToken(typ slrgen.TokType, lexeme string, span slrgen.Span) DefaultToken {
	return DefaultToken{
		kind:   typ,
		lexeme: lexeme,
		span:   span,
	}
}

// TokType is part of interface slrgen.Token.
func (t DefaultToken) TokType() slrgen.TokType {
	return t.kind
}

// Value is part of interface slrgen.Token.
func (t DefaultToken) Value() interface{} {
	return t.Val
}

// Lexeme is part of interface slrgen.Token.
func (t DefaultToken) Lexeme() string {
	return t.lexeme
}

// Span is part of interface slrgen.Token.
func (t DefaultToken) Span() slrgen.Span {
	return t.span
}

func (t DefaultToken) String() string {
	return fmt.Sprintf("%q/%d%v", t.lexeme, t.kind, t.span)
}

// --- Scanner options for the default (Go) tokenizer ---------------------------

// Option configures a default tokenizer.
type Option func(p *DefaultTokenizer)

// SkipComments sets or clears mode-flag SkipComments.
func SkipComments(b bool) Option {
	return func(t *DefaultTokenizer) {
		if b {
			t.Mode |= scanner.SkipComments
		} else {
			t.Mode &^= scanner.SkipComments
		}
	}
}

// UnifyStrings sets or clears option UnifyStrings:
// treat raw strings and single chars as strings.
func UnifyStrings(b bool) Option {
	return func(t *DefaultTokenizer) {
		t.unifyStrings = b
	}
}

// --- Symbol lists ----------------------------------------------------------

// Tokens drains a tokenizer and returns all tokens up to, but not including,
// the end of input.
func Tokens(t Tokenizer) []slrgen.Token {
	var tokens []slrgen.Token
	for token := t.NextToken(); token.TokType() != slrgen.EOF; token = t.NextToken() {
		tokens = append(tokens, token)
	}
	return tokens
}
