package simplify

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vk/vecmap/internal/cast"
	"github.com/vk/vecmap/internal/ctxlog"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
)

// Options selects how a collection is simplified.
type Options struct {
	// Type is the requested output type. nil means infer it.
	Type ptype.Type
	// Strict requires Type and never falls back to a list.
	Strict bool
	// Workers bounds the goroutines used for the per-value cast. Values
	// below 2 cast sequentially.
	Workers int
}

// Simplify collapses per-element results into one vector, inferring the
// type when requested is nil.
func Simplify(ctx context.Context, values []vector.Value, requested ptype.Type) (vector.Value, error) {
	return Run(ctx, values, Options{Type: requested})
}

// SimplifyStrict is Simplify with a mandatory requested type.
func SimplifyStrict(ctx context.Context, values []vector.Value, requested ptype.Type) (vector.Value, error) {
	return Run(ctx, values, Options{Type: requested, Strict: true})
}

// Run resolves the common type, enforces the size rule, casts every value
// and concatenates the results in input order. Any failure aborts the whole
// run and no container is returned.
//
// When the resolved type is ptype.Any the result is a list holding the
// original values unchanged, one list element per value.
func Run(ctx context.Context, values []vector.Value, opts Options) (vector.Value, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Simplification started.", "values", len(values), "requested", ptype.Name(opts.Type), "strict", opts.Strict)

	if opts.Strict && opts.Type == nil {
		return vector.Value{}, fmt.Errorf("%w: strict mode requires a type", ErrInvalidInput)
	}

	t, fellBack, err := resolve(values, opts.Type)
	if err != nil {
		return vector.Value{}, err
	}
	if fellBack {
		logger.Debug("No common type, keeping results as a list.")
	}
	logger.Debug("Resolved common type.", "type", t.String())

	sized, err := Enforce(values, t)
	if err != nil {
		return vector.Value{}, err
	}
	if ptype.IsAny(t) {
		return vector.List(sized...), nil
	}

	casted, err := castAll(ctx, sized, t, opts.Workers)
	if err != nil {
		return vector.Value{}, err
	}

	out, err := vector.Concat(t, casted...)
	if err != nil {
		return vector.Value{}, fmt.Errorf("simplify: %w", err)
	}
	logger.Debug("Simplification finished.", "type", t.String(), "length", out.Len())
	return out, nil
}

// castAll casts every value to t, preserving order. With more than one
// worker the casts run concurrently; the error reported is always the one
// with the lowest index. A cancelled ctx stops casts that have not started.
func castAll(ctx context.Context, values []vector.Value, t ptype.Type, workers int) ([]vector.Value, error) {
	out := make([]vector.Value, len(values))
	if workers < 2 {
		for i, v := range values {
			cv, err := cast.Cast(v, t)
			if err != nil {
				return nil, fmt.Errorf("simplify: element %d: %w", i, err)
			}
			out[i] = cv
		}
		return out, nil
	}

	ctxlog.FromContext(ctx).Debug("Casting values concurrently.", "workers", workers)
	errs := make([]error, len(values))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, v := range values {
		g.Go(func() error {
			// A failure does not stop the other casts.
			if err := ctx.Err(); err != nil {
				return err
			}
			out[i], errs[i] = cast.Cast(v, t)
			return errs[i]
		})
	}
	if err := g.Wait(); err == nil {
		return out, nil
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("simplify: element %d: %w", i, err)
		}
	}
	return nil, ctx.Err()
}
