package earley

import (
	"bytes"

	"github.com/npillmayer/earleybird/iteratable"
)

func dumpState(states []*iteratable.Set, stateno int) {
	tracer().Debugf("--- State %04d ------------------------------------", stateno)
	n := 1
	for _, el := range states[stateno].Values() {
		tracer().Debugf("[%2d] %s", n, el.(Item))
		n++
	}
}

func itemSetString(S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	first := true
	for _, el := range S.Values() {
		if first {
			b.WriteString(" ")
			first = false
		} else {
			b.WriteString(", ")
		}
		b.WriteString(el.(Item).String())
	}
	b.WriteString(" }")
	return b.String()
}
