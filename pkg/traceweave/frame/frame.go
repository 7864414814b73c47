// Package frame captures, compares, and renders synchronous call-stack frames.
//
// A Frame is an immutable snapshot of one call site, taken at the moment an
// asynchronous operation is scheduled. Snapshots never change after capture
// and never fail on access: a field the source could not resolve is reported
// as absent rather than as an error. Frames may be shared between multiple
// stored traces, which is safe precisely because they are immutable.
package frame

// Frame is an immutable snapshot of one call-stack frame.
//
// The zero Frame is valid and reports every positional field as absent.
// Construct resolved frames with New; the accessors use the (value, ok)
// form so callers can distinguish "line 0" from "line unknown".
type Frame struct {
	pc       uintptr
	file     string
	line     int
	column   int
	function string
}

// New constructs a Frame from resolved call-site data.
//
// An empty file or a non-positive line marks the frame as unresolved; its
// positional accessors then report absent values. The Go runtime does not
// track column numbers, so sources backed by it pass column 0.
func New(pc uintptr, file string, line, column int, function string) Frame {
	return Frame{
		pc:       pc,
		file:     file,
		line:     line,
		column:   column,
		function: function,
	}
}

// resolved reports whether the frame carries usable positional data.
func (f Frame) resolved() bool {
	return f.file != "" && f.line > 0
}

// File returns the source file path, and whether it is present.
func (f Frame) File() (string, bool) {
	if !f.resolved() {
		return "", false
	}
	return f.file, true
}

// Line returns the line number, and whether it is present.
func (f Frame) Line() (int, bool) {
	if !f.resolved() {
		return 0, false
	}
	return f.line, true
}

// Column returns the column number, and whether positional data is present.
// A present column of 0 means the source does not track columns.
func (f Frame) Column() (int, bool) {
	if !f.resolved() {
		return 0, false
	}
	return f.column, true
}

// Function returns the fully-qualified function name, and whether it is present.
func (f Frame) Function() (string, bool) {
	if f.function == "" {
		return "", false
	}
	return f.function, true
}

// PC returns the program counter of the call, or 0 when unknown.
func (f Frame) PC() uintptr {
	return f.pc
}

// Equal reports whether a and b refer to the same call site.
//
// Two frames are equal only when both carry present positional data and
// their file, line, and column all match. Absent data forces inequality:
// an unresolved frame is never claimed equal to anything, including itself.
func Equal(a, b Frame) bool {
	if !a.resolved() || !b.resolved() {
		return false
	}
	return a.file == b.file && a.line == b.line && a.column == b.column
}
