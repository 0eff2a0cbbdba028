// Package mapper applies a transformation to every element of a collection
// and hands the ordered results to the simplify package.
//
// The transformation always runs sequentially in input order; errors carry
// the index of the element that produced them.
//
//	squares, err := mapper.MapVec(ctx, []int64{1, 2, 3},
//	    func(_ context.Context, n int64, _ int) (vector.Value, error) {
//	        return vector.Integers(n * n), nil
//	    },
//	    simplify.Options{})
//	// squares: integer[3]{1, 4, 9}
package mapper
