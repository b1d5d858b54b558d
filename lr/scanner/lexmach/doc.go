/*
Package lexmach provides an adapter to use the lexmachine scanner generator with
the SLR(1) parser of package lr/slr.

For more information on lexmachine, see e.g.
https://hackthology.com/how-to-tokenize-complex-strings-with-lexmachine.html

The simplest way to get a scanner is to derive it from the terminals of a
grammar. Terminals are matched literally, unless a regular expression is
given for them. Whitespace is skipped.

	LM, err := lexmach.GrammarAdapter(g, map[string]string{"num": `[0-9]+`})
	if err != nil {
		// pattern for an undeclared terminal or invalid regular expression
	}
	scan, err := LM.Scanner("(1 + 22) * 3")

Tokens carry the token type of their terminal, which lets slr.Parser map
them back to grammar symbols:

	trace, err := parser.ParseTokens(scan)

Clients in need of keywords, custom actions or more liberty in how the DFA is
set up use NewLMAdapter with an init function, which receives the
lexmachine.Lexer before compilation:

	init := func(lexer *lexmachine.Lexer) {
		lexer.Add([]byte(`( |\t)+`), lexmach.Skip)
		lexer.Add([]byte(`[0-9]+`), lexmach.MakeToken("num", int(scanner.Int)))
	}
	LM, err := lexmach.NewLMAdapter(init, literals, keywords, tokenIds)

Input which no pattern matches is reported to the scanner's error handler
and skipped.

Please refer to package lr/slr on
how to create parsers and plug in a scanner.Tokenizer.

________________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package lexmach
