package reader

import (
	"fmt"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

// ParseError wraps any error surfaced while walking the document, recording
// the byte offset and the element path active when it occurred — spec.md
// §7's requirement that errors be locatable. It implements Unwrap so
// callers can errors.As/errors.Is through to the underlying cause, matching
// the teacher's ExecutionError/PlatformError wrapping pattern.
type ParseError struct {
	Offset int64
	Path   string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("sdmx: parse error at byte %d (in %s): %v", e.Offset, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// UnknownElement is returned when an encountered (tag, event) pair names an
// element the dispatch table has never heard of for either event — not
// skipped, not given a start handler, not given an end handler. Per
// spec.md §1/§4.1 this is fatal, wrapped in a ParseError by the caller: an
// element the engine recognizes (has a handler for one event, even if not
// this one) is not an UnknownElement, just a no-op for that event.
type UnknownElement struct {
	Tag string
}

func (e *UnknownElement) Error() string {
	return fmt.Sprintf("sdmx: no handler registered for element %q", e.Tag)
}

// MalformedReference is returned when a <Ref>/URN cannot be decoded into a
// Reference at all (as opposed to decoding fine but failing to resolve,
// which is ForwardReference/StructureMismatch territory).
type MalformedReference struct {
	Detail string
}

func (e *MalformedReference) Error() string {
	return fmt.Sprintf("sdmx: malformed reference: %s", e.Detail)
}

// ForwardReference is recorded (warn-and-continue, per spec.md's explicit
// Non-goal carve-out) when a Reference cannot be resolved against anything
// already parsed. Nothing is filed in its place.
type ForwardReference struct {
	Cls sdmx.Class
	ID  string
}

func (e *ForwardReference) Error() string {
	return fmt.Sprintf("sdmx: forward reference to %s %q could not be resolved", e.Cls, e.ID)
}
