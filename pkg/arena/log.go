package arena

import "github.com/flier/cssmatch/internal/debug"

// log is shared by Arena and Recycled so that both report under the same
// "arena/..." debug tag.
func log(a Allocator, op, format string, args ...any) {
	debug.Log([]any{"%p", a}, op, format, args...)
}
