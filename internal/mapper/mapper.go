package mapper

import (
	"context"
	"fmt"

	"github.com/vk/vecmap/internal/cast"
	"github.com/vk/vecmap/internal/ctxlog"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/simplify"
	"github.com/vk/vecmap/internal/vector"
)

// Func transforms one input element into its result vector.
type Func[T any] func(ctx context.Context, item T, index int) (vector.Value, error)

// ElementError wraps a failure of the transformation for one element.
type ElementError struct {
	Index int
	Err   error
}

// Error implements the error interface.
func (e *ElementError) Error() string {
	return fmt.Sprintf("mapper: element %d: %v", e.Index, e.Err)
}

// Unwrap returns the transformation's error.
func (e *ElementError) Unwrap() error { return e.Err }

// Map applies fn to every item strictly in input order and returns one
// result per item. The first failure stops the walk.
//
//	results, err := mapper.Map(ctx, []int64{1, 2, 3},
//	    func(_ context.Context, n int64, _ int) (vector.Value, error) {
//	        return vector.Integers(n * n), nil
//	    })
func Map[T any](ctx context.Context, items []T, fn Func[T]) ([]vector.Value, error) {
	out := make([]vector.Value, len(items))
	for i, item := range items {
		v, err := fn(ctx, item, i)
		if err != nil {
			return nil, &ElementError{Index: i, Err: err}
		}
		out[i] = v
	}
	return out, nil
}

// MapVec is Map followed by simplify.Run.
func MapVec[T any](ctx context.Context, items []T, fn Func[T], opts simplify.Options) (vector.Value, error) {
	results, err := Map(ctx, items, fn)
	if err != nil {
		return vector.Value{}, err
	}
	return simplify.Run(ctx, results, opts)
}

// MapRows binds record results row-wise. Unlike MapVec each result may
// contribute any number of rows. The common record type is resolved as in
// simplify.Resolve; requested may be nil, a record or a partial record.
func MapRows[T any](ctx context.Context, items []T, fn Func[T], requested ptype.Type) (vector.Value, error) {
	results, err := Map(ctx, items, fn)
	if err != nil {
		return vector.Value{}, err
	}
	t, err := simplify.Resolve(results, requested)
	if err != nil {
		return vector.Value{}, err
	}
	if len(results) == 0 && requested == nil {
		return vector.Empty(ptype.Record{}), nil
	}
	rec, ok := t.(ptype.Record)
	if !ok {
		return vector.Value{}, fmt.Errorf("mapper: results do not share a record type (resolved %s)", ptype.Name(t))
	}

	rows := make([]vector.Value, len(results))
	for i, r := range results {
		cv, err := cast.Cast(r, rec)
		if err != nil {
			return vector.Value{}, fmt.Errorf("mapper: element %d: %w", i, err)
		}
		rows[i] = cv
	}
	ctxlog.FromContext(ctx).Debug("Binding rows.", "results", len(rows), "type", rec.String())
	return vector.Concat(rec, rows...)
}

// MapCols binds each result as a column of one record, named by name.
// Columns are recycled together: every result must have length 1 or the
// length of the longest result.
func MapCols[T any](ctx context.Context, items []T, fn Func[T], name func(item T, index int) string) (vector.Value, error) {
	results, err := Map(ctx, items, fn)
	if err != nil {
		return vector.Value{}, err
	}
	cols := make([]vector.Column, len(results))
	for i, r := range results {
		cols[i] = vector.Column{Name: name(items[i], i), Value: r}
	}
	ctxlog.FromContext(ctx).Debug("Binding columns.", "results", len(cols))
	return vector.RecordOf(cols...)
}
