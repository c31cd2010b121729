// Package buffer builds plain text while tracking UTF-16 offsets.
package buffer

import "github.com/riverfjs/tgmarkup/internal/util"

// TextBuffer accumulates plain text and tracks the current UTF-16 offset.
type TextBuffer struct {
	data        []byte
	utf16Offset int
	lastLen     int
}

// New creates a new TextBuffer.
func New() *TextBuffer {
	return &TextBuffer{}
}

// Write appends text to the buffer.
func (tb *TextBuffer) Write(text string) {
	tb.data = append(tb.data, text...)
	tb.utf16Offset += util.UTF16Len(text)
	tb.lastLen = len(text)
}

// UTF16Offset returns the current UTF-16 offset.
func (tb *TextBuffer) UTF16Offset() int {
	return tb.utf16Offset
}

// Len returns the current length in bytes.
func (tb *TextBuffer) Len() int {
	return len(tb.data)
}

// TrailingNewlineCount counts trailing newline characters in the buffer.
func (tb *TextBuffer) TrailingNewlineCount() int {
	count := 0
	for i := len(tb.data) - 1; i >= 0 && tb.data[i] == '\n'; i-- {
		count++
	}
	return count
}

// PopLast removes and returns the last write. Only one level is kept;
// a second call returns "".
// Used for replacing just-written bullet prefixes in task lists.
func (tb *TextBuffer) PopLast() string {
	if tb.lastLen == 0 {
		return ""
	}
	cut := len(tb.data) - tb.lastLen
	last := string(tb.data[cut:])
	tb.data = tb.data[:cut]
	tb.utf16Offset -= util.UTF16Len(last)
	tb.lastLen = 0
	return last
}

// String returns the accumulated text.
func (tb *TextBuffer) String() string {
	return string(tb.data)
}

// Reset clears the buffer.
func (tb *TextBuffer) Reset() {
	tb.data = tb.data[:0]
	tb.utf16Offset = 0
	tb.lastLen = 0
}
