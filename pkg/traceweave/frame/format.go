package frame

import (
	"strconv"
	"strings"
)

// String renders the frame as a single human-readable line without a prefix,
// e.g. "main.fire (/src/app/main.go:42)". Absent fields render as
// "<anonymous>" and "<unknown>" so a partially resolved frame still prints.
func (f Frame) String() string {
	var b strings.Builder
	writeFrame(&b, f)
	return b.String()
}

// Format renders a trace one frame per line, innermost first, each line
// indented and prefixed with "at " in the conventional stack-trace shape:
//
//	    at main.fire (/src/app/main.go:42)
//	    at main.main (/src/app/main.go:17)
//
// An empty trace renders as the empty string.
func Format(frames []Frame) string {
	var b strings.Builder
	for _, f := range frames {
		b.WriteString("    at ")
		writeFrame(&b, f)
		b.WriteByte('\n')
	}
	return b.String()
}

func writeFrame(b *strings.Builder, f Frame) {
	if fn, ok := f.Function(); ok {
		b.WriteString(fn)
	} else {
		b.WriteString("<anonymous>")
	}
	b.WriteString(" (")
	if file, ok := f.File(); ok {
		line, _ := f.Line()
		b.WriteString(file)
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(line))
		if col, _ := f.Column(); col > 0 {
			b.WriteByte(':')
			b.WriteString(strconv.Itoa(col))
		}
	} else {
		b.WriteString("<unknown>")
	}
	b.WriteByte(')')
}
