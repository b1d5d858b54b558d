package lexmach

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrgen"
	"github.com/npillmayer/slrgen/lr"
	"github.com/npillmayer/slrgen/lr/scanner"
	"github.com/timtadh/lexmachine"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var TokenCounts = []int{1, 3, 2, 3, 3}

func TestLM(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	initTokens()
	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`//[^\n]*\n?`), Skip)
		lexer.Add([]byte(`\"[^"]*\"`), MakeToken("STRING", tokenIds["STRING"]))
		lexer.Add([]byte(`#?([a-z]|[A-Z])([a-z]|[A-Z]|[0-9]|_|-)*[!\?]?`), MakeToken("ID", tokenIds["ID"]))
		lexer.Add([]byte(`[1-9][0-9]*`), MakeToken("NUM", tokenIds["NUM"]))
		lexer.Add([]byte(`( |\,|\t|\n|\r)+`), Skip)
	}
	LM, err := NewLMAdapter(init, literals, keywords, tokenIds)
	if err != nil {
		t.Error(err)
	}
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		sc, err := LM.Scanner(input)
		if err != nil {
			t.Error(err)
		}
		token := sc.NextToken()
		count := 0
		for token.TokType() != scanner.EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = sc.NextToken()
			count++
		}
		if count != TokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, TokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

var literals []string       // The tokens representing literal strings
var keywords []string       // The keyword tokens
var tokens []string         // All of the tokens (including literals and keywords)
var tokenIds map[string]int // A map from the token names to their int ids

func initTokens() {
	literals = []string{
		"'",
		"(",
		")",
		"[",
		"]",
		"=",
		"+",
		"-",
		"*",
		"/",
	}
	keywords = []string{
		"nil",
		"t",
	}
	tokens = []string{
		"COMMENT",
		"ID",
		"NUM",
		"STRING",
	}
	tokens = append(tokens, keywords...)
	tokens = append(tokens, literals...)
	tokenIds = make(map[string]int)
	tokenIds["COMMENT"] = scanner.Comment
	tokenIds["ID"] = scanner.Ident
	tokenIds["NUM"] = scanner.Int
	tokenIds["STRING"] = int(scanner.String)
	for i, tok := range tokens[4:] {
		tokenIds[tok] = i + 10
	}
}

func exprGrammar(t *testing.T) *lr.Grammar {
	g, err := lr.NewGrammar("Expr",
		[]string{"E", "T"},
		[]string{"+", "/", "(", ")", "num", "mod"},
		map[string][][]string{
			"E": {{"E", "+", "T"}, {"E", "mod", "T"}, {"T"}},
			"T": {{"T", "/", "num"}, {"(", "E", ")"}, {"num"}},
		},
		lr.TokenTypes(map[string]slrgen.TokType{"num": scanner.Int}))
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGrammarAdapter(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	g := exprGrammar(t)
	LM, err := GrammarAdapter(g, map[string]string{"num": `[0-9]+`})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("(1 + 22) / 3 mod 4")
	if err != nil {
		t.Fatal(err)
	}
	tokens := scanner.Tokens(sc)
	expected := []slrgen.TokType{'(', scanner.Int, '+', scanner.Int, ')', '/', scanner.Int,
		g.SymbolByName("mod").TokenType(), scanner.Int}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, have %d", len(expected), len(tokens))
	}
	for i, token := range tokens {
		if token.TokType() != expected[i] {
			t.Errorf("expected token #%d to be of type %d, is %d", i, expected[i], token.TokType())
		}
		if A := g.TerminalByToken(token.TokType()); A == nil {
			t.Errorf("token %q does not map to a terminal", token.Lexeme())
		}
	}
	if span := tokens[3].Span(); span != (slrgen.Span{5, 7}) || tokens[3].Lexeme() != "22" {
		t.Errorf("expected token 22 at (5…7), is %q at %v", tokens[3].Lexeme(), span)
	}
}

func TestGrammarAdapterErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	g := exprGrammar(t)
	if _, err := GrammarAdapter(g, map[string]string{"E": `[a-z]+`}); !errors.Is(err, lr.ErrUndeclaredSymbol) {
		t.Errorf("expected pattern for non-terminal to be rejected, got %v", err)
	}
	LM, err := GrammarAdapter(g, map[string]string{"num": `[0-9]+`})
	if err != nil {
		t.Fatal(err)
	}
	sc, err := LM.Scanner("1 ? 2")
	if err != nil {
		t.Fatal(err)
	}
	var errs []error
	sc.SetErrorHandler(func(e error) {
		errs = append(errs, e)
	})
	if tokens := scanner.Tokens(sc); len(tokens) != 2 {
		t.Errorf("expected 2 tokens around illegal input, have %d", len(tokens))
	}
	if len(errs) != 1 {
		t.Errorf("expected 1 scanner error, have %d", len(errs))
	}
}
