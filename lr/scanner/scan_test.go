package scanner

import (
	"fmt"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrgen"
)

var inputStrings = []string{
	"1",
	"1+12",
	"Hello #World",
	`x="mystring" // commented `,
	"1,22,333",
}

var tokenCounts = []int{1, 3, 3, 3, 5}

func TestScan1(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	for i, input := range inputStrings {
		t.Logf("------+-----------------+--------")
		reader := strings.NewReader(input)
		name := fmt.Sprintf("input #%d", i)
		scanner := GoTokenizer(name, reader)
		token := scanner.NextToken()
		count := 0
		for token.TokType() != EOF {
			t.Logf(" %4d | %15s | @%5d", token.TokType(), token.Lexeme(), token.Span().From())
			token = scanner.NextToken()
			count++
		}
		if count != tokenCounts[i] {
			t.Errorf("Expected token count for #%d to be %d, is %d", i, tokenCounts[i], count)
		}
	}
	t.Logf("------+-----------------+--------")
}

func TestScanValuesAndSpans(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	tokens := Tokens(GoTokenizer("test", strings.NewReader("1+12")))
	if len(tokens) != 3 {
		t.Fatalf("expected 3 tokens, have %d", len(tokens))
	}
	if tokens[1].TokType() != '+' {
		t.Errorf("expected second token to be '+', is %d", tokens[1].TokType())
	}
	if tokens[2].TokType() != Int || tokens[2].Value() != int64(12) {
		t.Errorf("expected third token to be Int 12, is %v", tokens[2])
	}
	expected := []slrgen.Span{{0, 1}, {1, 2}, {2, 4}}
	for i, token := range tokens {
		if token.Span() != expected[i] {
			t.Errorf("expected span of token #%d to be %v, is %v", i, expected[i], token.Span())
		}
	}
}

func TestScanOptions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	tokens := Tokens(GoTokenizer("test", strings.NewReader("x // comment"), SkipComments(false)))
	if len(tokens) != 2 || tokens[1].TokType() != Comment {
		t.Errorf("expected comment to be passed on, have %v", tokens)
	}
	tokens = Tokens(GoTokenizer("test", strings.NewReader("'a' `b`"), UnifyStrings(true)))
	for _, token := range tokens {
		if token.TokType() != String {
			t.Errorf("expected %q to be unified to a string", token.Lexeme())
		}
	}
}

func TestScanErrorHandler(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrgen.scanner")
	defer teardown()
	//
	var errs []error
	scanner := GoTokenizer("test", strings.NewReader(`x = "unterminated`))
	scanner.SetErrorHandler(func(e error) {
		errs = append(errs, e)
	})
	Tokens(scanner)
	if len(errs) == 0 {
		t.Errorf("expected error handler to be called for unterminated string")
	}
}
