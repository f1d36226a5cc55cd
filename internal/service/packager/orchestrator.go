package packager

import (
	"bytes"
	"context"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"snapp-packager/internal/archive"
	"snapp-packager/internal/logger"
	"snapp-packager/internal/packerrors"
	"snapp-packager/internal/project"
	"snapp-packager/internal/resources"
	"snapp-packager/internal/target"
)

// Phase tracks where a packaging run currently is. Phases advance in
// declaration order; Done and Failed are terminal.
type Phase int

const (
	// PhaseIdle is the initial state before any work.
	PhaseIdle Phase = iota
	// PhaseExtractingName scans the project document for its declared name.
	PhaseExtractingName
	// PhaseComposingRuntime builds the inner runtime bundle (the
	// OS-specific layout of the final package is composed concurrently).
	PhaseComposingRuntime
	// PhaseDrainingRuntime drains the finalized runtime bundle into memory.
	PhaseDrainingRuntime
	// PhaseComposingFinal resumes the final package with the buffer in hand.
	PhaseComposingFinal
	// PhaseEmbeddingPayload writes the one entry derived from the buffer.
	PhaseEmbeddingPayload
	// PhaseFinalizing closes the final package.
	PhaseFinalizing
	// PhaseDone means the archive stream was handed to the caller.
	PhaseDone
	// PhaseFailed means the first error aborted the run; no stream escapes.
	PhaseFailed
)

// String returns the phase name for logging.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseExtractingName:
		return "extracting_name"
	case PhaseComposingRuntime:
		return "composing_runtime"
	case PhaseDrainingRuntime:
		return "draining_runtime"
	case PhaseComposingFinal:
		return "composing_final"
	case PhaseEmbeddingPayload:
		return "embedding_payload"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Request is one packaging request. It is immutable once validated; the
// orchestrator never mutates it.
type Request struct {
	// Filename is the display filename used for OS-facing names
	// (bundle directories, launcher, desktop entry, plist).
	Filename string
	// ProjectXML is the raw project document.
	ProjectXML string
	// OS is the packaging target.
	OS target.OS
	// Resolution is the requested window size.
	Resolution target.Resolution
	// UseCompleteSnap selects the full resource variant over the reduced one.
	UseCompleteSnap bool
}

// ParseRequest builds a validated request from raw transport fields.
func ParseRequest(filename, projectXML, osRaw, resolutionRaw string, useCompleteSnap bool) (*Request, error) {
	osID, err := target.Parse(osRaw)
	if err != nil {
		return nil, err
	}

	res, err := target.ParseResolution(resolutionRaw)
	if err != nil {
		return nil, err
	}

	req := &Request{
		Filename:        filename,
		ProjectXML:      projectXML,
		OS:              osID,
		Resolution:      res,
		UseCompleteSnap: useCompleteSnap,
	}

	if err := req.validate(); err != nil {
		return nil, err
	}

	return req, nil
}

// validate checks the request fields that gate the pipeline. The OS value
// is deliberately not checked here: an unsupported OS is classified as
// InvalidOperatingSystem by strategy selection, not as a validation error.
func (r *Request) validate() error {
	if r.Filename == "" {
		return packerrors.New(packerrors.KindValidation, "filename must be provided")
	}

	if strings.ContainsAny(r.Filename, `/\`) || r.Filename == "." || r.Filename == ".." {
		return packerrors.Newf(packerrors.KindValidation, "filename %q must not contain path separators", r.Filename)
	}

	if r.ProjectXML == "" {
		return packerrors.New(packerrors.KindValidation, "project document must not be empty")
	}

	if r.Resolution.Width <= 0 || r.Resolution.Height <= 0 {
		return packerrors.Newf(packerrors.KindValidation, "resolution %s must have positive dimensions", r.Resolution)
	}

	return nil
}

// Orchestrator sequences the packaging pipeline. One instance serves any
// number of concurrent requests: all per-request state lives in a run.
type Orchestrator struct {
	// store is the shared read-only resource store.
	store *resources.Store
}

// NewOrchestrator creates an orchestrator over the given resource store.
func NewOrchestrator(store *resources.Store) *Orchestrator {
	return &Orchestrator{store: store}
}

// Package executes the pipeline and returns the finished archive as a
// single readable stream. On any failure the first error is returned and
// no stream: partial output never escapes.
func (o *Orchestrator) Package(ctx context.Context, req *Request) (io.Reader, error) {
	run := newRun(o.store, req)

	return run.execute(ctx)
}

// run is the per-request pipeline state: two builders, two buffers and the
// current phase. Nothing here is shared across requests.
type run struct {
	store *resources.Store
	req   *Request
	// phase is advanced only by the orchestrating goroutine.
	phase Phase
}

// newRun prepares a pipeline run in the idle phase.
func newRun(store *resources.Store, req *Request) *run {
	return &run{
		store: store,
		req:   req,
		phase: PhaseIdle,
	}
}

// to advances the phase and logs the transition.
func (r *run) to(ctx context.Context, p Phase) {
	r.phase = p
	logger.DebugKV(ctx, "Packaging phase", "phase", p.String())
}

// fail marks the run failed and passes the first error through.
func (r *run) fail(ctx context.Context, err error) error {
	r.phase = PhaseFailed
	logger.ErrorKV(ctx, "Packaging failed", "phase", PhaseFailed.String(), "error", err.Error())

	return err
}

// execute walks the pipeline phases in order. The runtime bundle and the
// OS-specific layout are composed concurrently on separate builders; the
// runtime bundle is finalized and fully drained before a single byte of it
// is embedded, and the final package is finalized only after the embedding
// entry has been appended.
func (r *run) execute(ctx context.Context) (io.Reader, error) {
	ctx = logger.WithKV(ctx, "os", string(r.req.OS), "filename", r.req.Filename)

	if err := r.req.validate(); err != nil {
		return nil, r.fail(ctx, err)
	}

	r.to(ctx, PhaseExtractingName)

	projectName, err := project.ExtractName(r.req.ProjectXML)
	if err != nil {
		return nil, r.fail(ctx, err)
	}

	ctx = logger.WithKV(ctx, "project_name", projectName)

	// Strategy selection rejects unsupported targets before any entry is
	// written or any resource is read.
	strategy, err := strategyFor(r.store, r.req, projectName)
	if err != nil {
		return nil, r.fail(ctx, err)
	}

	var (
		innerBuf bytes.Buffer
		outerBuf bytes.Buffer
	)

	inner := archive.New(&innerBuf)
	outer := archive.New(&outerBuf)

	r.to(ctx, PhaseComposingRuntime)

	composer := &runtimeComposer{store: r.store}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if composeErr := composer.compose(gctx, inner, r.req, projectName); composeErr != nil {
			return composeErr
		}

		// The runtime bundle must be a complete container before draining.
		return inner.Finalize()
	})

	g.Go(func() error {
		return strategy.composeLayout(gctx, outer)
	})

	if err = g.Wait(); err != nil {
		return nil, r.fail(ctx, err)
	}

	r.to(ctx, PhaseDrainingRuntime)

	payload := innerBuf.Bytes()

	r.to(ctx, PhaseComposingFinal)
	r.to(ctx, PhaseEmbeddingPayload)

	if err = strategy.embedPayload(ctx, outer, payload); err != nil {
		return nil, r.fail(ctx, err)
	}

	r.to(ctx, PhaseFinalizing)

	if err = outer.Finalize(); err != nil {
		return nil, r.fail(ctx, err)
	}

	r.to(ctx, PhaseDone)
	logger.InfoKV(ctx, "Packaging finished", "entries", outer.Len(), "bytes", outerBuf.Len())

	return bytes.NewReader(outerBuf.Bytes()), nil
}
