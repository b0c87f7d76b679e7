package gorules

import "github.com/quasilyte/go-ruleguard/dsl"

func smells(m dsl.Matcher) {
	// Two consecutive guard-ifs returning the same value => merge with ||
	m.Match(`if $c1 { return $ret }; if $c2 { return $ret }`).
		Report(`two consecutive guards return the same value; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { return $ret }`)

	// Same pattern with continue (inside loops)
	m.Match(`if $c1 { continue }; if $c2 { continue }`).
		Report(`two consecutive continues; consider merging conditions with ||`).
		Suggest(`if $c1 || $c2 { continue }`)

	// time.Now().Sub(x) is time.Since(x)
	m.Match(`time.Now().Sub($x)`).
		Report(`use time.Since instead of time.Now().Sub`).
		Suggest(`time.Since($x)`)

	// Nested for-loops: not always wrong, but a useful extract-function smell
	m.Match(`for $*_ { for $*_ { $*_ } }`).
		Report(`nested for-loop; consider extracting inner loop logic or reducing algorithmic complexity`)
}
