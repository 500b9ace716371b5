package quantize

import (
	"context"
	"errors"
	"image"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/blockify/internal/palette"
)

// ErrSuperseded is the cancellation cause of a run replaced by a newer Submit.
var ErrSuperseded = errors.New("conversion superseded by a newer request")

// Runner serialises interactive conversions: submitting a new conversion
// cancels the one in flight instead of waiting for it.
type Runner struct {
	mu     sync.Mutex
	cancel context.CancelCauseFunc
	gen    uint64
	logger hclog.Logger
}

// NewRunner creates a Runner. A nil logger disables logging.
func NewRunner(logger hclog.Logger) *Runner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Runner{logger: logger.Named("runner")}
}

// Submit cancels any in-flight conversion and runs a new one. A superseded run
// returns an error matching both context.Canceled and ErrSuperseded, and its
// partial work is discarded.
func (r *Runner) Submit(ctx context.Context, src image.Image, snap *palette.Snapshot, opts Options) (*Result, error) {
	runCtx, cancel := context.WithCancelCause(ctx)

	r.mu.Lock()
	if r.cancel != nil {
		r.cancel(ErrSuperseded)
	}
	r.gen++
	gen := r.gen
	r.cancel = cancel
	r.mu.Unlock()

	defer func() {
		r.mu.Lock()
		if r.gen == gen {
			r.cancel = nil
		}
		r.mu.Unlock()
		cancel(nil)
	}()

	res, err := Quantize(runCtx, src, snap, opts)
	if err != nil {
		if cause := context.Cause(runCtx); errors.Is(cause, ErrSuperseded) {
			r.logger.Debug("discarding superseded conversion", "generation", gen)
			return nil, errors.Join(context.Canceled, ErrSuperseded)
		}
		return nil, err
	}

	// A run may finish before noticing it was superseded.
	if errors.Is(context.Cause(runCtx), ErrSuperseded) {
		r.logger.Debug("discarding superseded conversion", "generation", gen)
		return nil, errors.Join(context.Canceled, ErrSuperseded)
	}
	return res, nil
}

// Cancel stops the in-flight conversion, if any.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel(context.Canceled)
		r.cancel = nil
	}
}
