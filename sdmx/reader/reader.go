package reader

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"go.opentelemetry.io/otel/trace"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

// Options configures ReadMessage. All fields are optional.
type Options struct {
	// DSD is the caller-supplied data structure definition used to
	// interpret a structure-specific data message. If nil and the message
	// turns out to be structure-specific, the reader synthesizes one from
	// the observed attributes/dimensions on demand (spec.md §8 scenario 3).
	DSD *sdmx.DataStructureDefinition

	// AllowStructureExtension permits key/observation partitioning to grow
	// DSD (the ss_missing_dsd flag of spec.md §8) even when DSD is
	// non-nil — for a caller that knows its supplied structure is
	// incomplete. When DSD is nil for a structure-specific message,
	// extension is always permitted regardless of this field.
	AllowStructureExtension bool

	Logger *slog.Logger
	Tracer trace.Tracer
}

// Reader holds the state threaded through a single ReadMessage call: the
// working stack (§4.2), the persistent maintained-artefact index the
// resolver consults (§4.3), the in-progress Message, and the ambient
// XML-element context (the open-element stack and accumulated
// diagnostics).
type Reader struct {
	stk        *stack
	maintained *maintainedIndex
	msg        *sdmx.Message

	frames []*frame
	ctx    context.Context

	callerDSD            *sdmx.DataStructureDefinition
	resolvedStructureDSD *sdmx.DataStructureDefinition
	inferredDSD          *sdmx.DataStructureDefinition
	ssMissingDSD         bool
	allowExtension       bool
	structureRef         *Reference

	logger    *slog.Logger
	tracer    trace.Tracer
	sessionID uuid.UUID

	warnings []error
}

func newReader(opts Options) *Reader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rd := &Reader{
		stk:            newStack(),
		maintained:     newMaintainedIndex(),
		callerDSD:      opts.DSD,
		allowExtension: opts.AllowStructureExtension,
		logger:         logger,
		tracer:         opts.Tracer,
		sessionID:      uuid.New(),
	}
	if rd.callerDSD != nil {
		rd.maintained.commit(sdmx.ClassDataStructureDefinition, rd.callerDSD.ID, rd.callerDSD)
	}
	return rd
}

// warn records a non-fatal diagnostic (forward reference, ambiguous DSD,
// ...) without aborting the parse — spec.md §7's warn-and-continue policy.
func (rd *Reader) warn(err error) {
	rd.logger.Warn("sdmx: continuing after non-fatal condition",
		"session", rd.sessionID, "error", err, "path", rd.path())
	rd.warnings = append(rd.warnings, err)
}

// Warnings returns every non-fatal diagnostic collected during the parse.
func (rd *Reader) Warnings() []error { return rd.warnings }

// parentTag returns the localname of the element enclosing the one
// currently on top of the frame stack (the frame stack always includes the
// element whose handler is running), or "" at the document root.
func (rd *Reader) parentTag() string {
	if len(rd.frames) < 2 {
		return ""
	}
	return rd.frames[len(rd.frames)-2].name.Local
}

// top returns the currently open frame.
func (rd *Reader) top() *frame {
	if len(rd.frames) == 0 {
		return nil
	}
	return rd.frames[len(rd.frames)-1]
}

func (rd *Reader) path() string {
	parts := make([]string, len(rd.frames))
	for i, f := range rd.frames {
		parts[i] = f.name.Local
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += "/"
		}
		out += p
	}
	return out
}
