/*
Package slrgen is a small SLR(1) parser generator toolbox.

It builds, from a context-free grammar, the characteristic finite state
machine of LR(0) item sets, computes FIRST and FOLLOW sets, derives
ACTION and GOTO tables and drives a shift-reduce parser with them, recording
every step of a parse. Package structure is as follows:

■ lr: Package lr implements grammars, grammar analysis, the CFSM and the
parser tables.

■ lr/slr: Package slr implements the table driven shift-reduce parser.

■ lr/scanner: Package scanner defines the tokenizer interface the parser relies on.

■ lr/report: Package report renders tables and parse traces for terminals.

The base package contains data types which are used throughout all the other packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package slrgen
