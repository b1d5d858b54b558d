/*
Command slrgen constructs SLR(1) parser tables for a built-in grammar and
shows the intermediate results: the states of the CFSM, FIRST and FOLLOW
sets, and the ACTION/GOTO tables. Input may be parsed step by step, either
from the command line or interactively.

	slrgen automaton [--dot cfsm.dot]
	slrgen sets
	slrgen tables [--html prefix]
	slrgen parse "(1 + 2) / 3"
	slrgen parse --scanner names "( num + num ) / num"
	slrgen repl

Flag --grammar selects one of the built-in grammars, --trace sets the trace
level.


License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/

package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'slrgen.cli'
func tracer() tracing.Trace {
	return tracing.Select("slrgen.cli")
}
