/*
Package iteratable implements a set type which may be iterated while it grows.

Closures of LR(0) items are most easily written as worklist algorithms over a
set: every item added during an iteration will be visited before the
iteration ends. Set keeps its elements in insertion order, which makes
iteration deterministic.

	S := iteratable.NewSet(0)
	S.Add(start)
	S.IterateOnce()
	for S.Next() {
		x := S.Item()
		… // S.Add(y) for everything derived from x
	}

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package iteratable
