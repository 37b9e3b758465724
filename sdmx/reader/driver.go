package reader

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/agentflare-ai/sdmx-go/sdmx"
	"github.com/agentflare-ai/sdmx-go/sdmx/qname"
)

// tracerName identifies this package's spans in any configured
// OpenTelemetry exporter.
const tracerName = "github.com/agentflare-ai/sdmx-go/sdmx/reader"

// ReadMessage streams r token-by-token (never materializing the whole
// document) and returns the fully resolved Message it describes. The walk
// dispatches each (tag, event) pair through the handler registry built by
// this package's init() functions: SKIP elements are structural wrappers
// with no handler; an element known to the table but with no handler for
// this particular event is a silent no-op; an element the table has never
// heard of for either event is, per spec.md §1/§4.1, a fatal
// UnknownElement wrapped in a ParseError. Most reference resolution
// failures (ForwardReference among them), a caller-supplied DSD on a
// message that is not structure-specific, and a structure-specific Group
// whose xsi:type names no group of a synthesized DSD are recorded as
// warnings and the walk continues. Values left uncollected on the working
// stack at end of document make the call fail with a ParseError.
func ReadMessage(ctx context.Context, r io.Reader, opts Options) (*sdmx.Message, []error, error) {
	rd := newReader(opts)

	tracer := rd.tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}
	ctx, span := tracer.Start(ctx, "sdmx.ReadMessage",
		trace.WithAttributes(attribute.String("sdmx.session_id", rd.sessionID.String())))
	defer span.End()
	rd.ctx = ctx

	dec := xml.NewDecoder(r)
	for {
		select {
		case <-ctx.Done():
			err := ctx.Err()
			pe := &ParseError{Offset: dec.InputOffset(), Path: rd.path(), Err: err}
			span.RecordError(pe)
			return nil, nil, pe
		default:
		}

		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			pe := &ParseError{Offset: dec.InputOffset(), Path: rd.path(), Err: err}
			span.RecordError(pe)
			return nil, nil, pe
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if err := rd.handleStart(t); err != nil {
				pe := &ParseError{Offset: dec.InputOffset(), Path: rd.path(), Err: err}
				span.RecordError(pe)
				return nil, nil, pe
			}
		case xml.CharData:
			if f := rd.top(); f != nil {
				f.text.Write(t)
			}
		case xml.EndElement:
			if err := rd.handleEnd(t); err != nil {
				pe := &ParseError{Offset: dec.InputOffset(), Path: rd.path(), Err: err}
				span.RecordError(pe)
				return nil, nil, pe
			}
		}
	}

	if rd.msg == nil {
		return nil, nil, &ParseError{Err: fmt.Errorf("sdmx: empty document, no recognized message root element")}
	}

	if u := rd.stk.uncollected(); len(u) > 0 {
		pe := &ParseError{Offset: dec.InputOffset(), Path: rd.path(),
			Err: fmt.Errorf("sdmx: %d value(s) left uncollected on the working stack at end of document (first: %T)", len(u), u[0])}
		span.RecordError(pe)
		return nil, nil, pe
	}

	span.SetAttributes(
		attribute.String("sdmx.message_kind", string(rd.msg.Kind)),
		attribute.Int("sdmx.observation_count", countObs(rd.msg)),
		attribute.Int("sdmx.warning_count", len(rd.warnings)),
	)
	return rd.msg, rd.warnings, nil
}

func countObs(msg *sdmx.Message) int {
	n := 0
	for _, ds := range msg.Data {
		n += len(ds.Obs)
	}
	return n
}

func (rd *Reader) handleStart(se xml.StartElement) error {
	f := newFrame(se)
	rd.frames = append(rd.frames, f)
	local := se.Name.Local

	if rd.msg == nil {
		kind, ok := qname.MessageKind[local]
		if !ok {
			return fmt.Errorf("sdmx: unrecognized message root element %q", local)
		}
		rd.msg = sdmx.NewMessage(sdmx.Kind(kind))
		if rd.callerDSD != nil && rd.msg.Kind != sdmx.KindStructureSpecificData && rd.msg.Kind != sdmx.KindStructureSpecificTS {
			rd.warn(fmt.Errorf("sdmx: ambiguous data structure definition: one was supplied for a %s message, which is not structure-specific", kind))
		}
	}

	if skipSet[local] {
		return nil
	}
	if h, ok := startHandlers[local]; ok {
		return h(rd, f)
	}
	if _, ok := endHandlers[local]; ok {
		// Known element, just has nothing to do on start.
		return nil
	}
	// Neither skipped nor handled for either event: genuinely unknown.
	// ReadMessage wraps this in a ParseError with the offset/path.
	return &UnknownElement{Tag: local}
}

func (rd *Reader) handleEnd(ee xml.EndElement) error {
	local := ee.Name.Local
	f := rd.top()

	var err error
	if !skipSet[local] {
		if h, ok := endHandlers[local]; ok {
			err = h(rd, f)
		} else if _, ok := startHandlers[local]; ok {
			// Known element, just has nothing to do on end.
		} else {
			// Neither skipped nor handled for either event: genuinely
			// unknown. ReadMessage wraps this in a ParseError.
			err = &UnknownElement{Tag: local}
		}
	}
	rd.frames = rd.frames[:len(rd.frames)-1]
	return err
}
