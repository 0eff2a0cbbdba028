package mapper_test

import (
	"context"
	"fmt"

	"github.com/vk/vecmap/internal/mapper"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/simplify"
	"github.com/vk/vecmap/internal/vector"
)

func ExampleMapVec() {
	out, _ := mapper.MapVec(context.Background(), []int64{1, 2, 3},
		func(_ context.Context, n int64, _ int) (vector.Value, error) {
			return vector.Integers(n * n), nil
		},
		simplify.Options{})
	fmt.Println(out)
	// Output: integer[3]{1, 4, 9}
}

func ExampleMapVec_fallback() {
	out, _ := mapper.MapVec(context.Background(), []any{1, "x"},
		func(_ context.Context, item any, _ int) (vector.Value, error) {
			if s, ok := item.(string); ok {
				return vector.Characters(s), nil
			}
			return vector.Integers(int64(item.(int))), nil
		},
		simplify.Options{})
	fmt.Println(out.Type(), out.Len())

	typed, _ := mapper.MapVec(context.Background(), []any{1, "x"},
		func(_ context.Context, item any, _ int) (vector.Value, error) {
			if s, ok := item.(string); ok {
				return vector.Characters(s), nil
			}
			return vector.Integers(int64(item.(int))), nil
		},
		simplify.Options{Type: ptype.Character{}})
	fmt.Println(typed)
	// Output:
	// any 2
	// character[2]{"1", "x"}
}
