package simplify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/vecmap/internal/cast"
	"github.com/vk/vecmap/internal/ctxlog"
	"github.com/vk/vecmap/internal/ptype"
	"github.com/vk/vecmap/internal/vector"
)

func mustRecord(t *testing.T, cols ...vector.Column) vector.Value {
	t.Helper()
	v, err := vector.RecordOf(cols...)
	require.NoError(t, err)
	return v
}

func TestSimplify_Scenarios(t *testing.T) {
	t.Parallel()

	factor := ptype.Factor{Levels: []string{"1", "2"}}

	testCases := []struct {
		name      string
		values    []vector.Value
		requested ptype.Type
		want      vector.Value
		checkErr  func(t *testing.T, err error)
	}{
		{
			name:   "integers infer integer",
			values: []vector.Value{vector.Integers(1), vector.Integers(2)},
			want:   vector.Integers(1, 2),
		},
		{
			name:      "any keeps a list",
			values:    []vector.Value{vector.Integers(1), vector.Integers(2)},
			requested: ptype.Any{},
			want:      vector.List(vector.Integers(1), vector.Integers(2)),
		},
		{
			name:      "factor request fails",
			values:    []vector.Value{vector.Integers(1), vector.Integers(2)},
			requested: factor,
			checkErr: func(t *testing.T, err error) {
				var ce *cast.Error
				require.True(t, errors.As(err, &ce), "expected a cast error, got %v", err)
				assert.True(t, ptype.Equal(ptype.Integer{}, ce.From))
				assert.True(t, ptype.Equal(factor, ce.To))

				var nct *NoCommonTypeError
				require.True(t, errors.As(err, &nct))
				assert.Equal(t, 0, nct.Index)
			},
		},
		{
			name:   "long element fails size check",
			values: []vector.Value{vector.Integers(1, 2), vector.Integers(3)},
			checkErr: func(t *testing.T, err error) {
				var se *SizeError
				require.True(t, errors.As(err, &se), "expected a size error, got %v", err)
				assert.Equal(t, SizeError{Expected: 1, Got: 2, Index: 0}, *se)
			},
		},
		{
			name:      "long element allowed in list",
			values:    []vector.Value{vector.Integers(1, 2), vector.Integers(3)},
			requested: ptype.Any{},
			want:      vector.List(vector.Integers(1, 2), vector.Integers(3)),
		},
		{
			name:   "integer and character fall back to list",
			values: []vector.Value{vector.Integers(1), vector.Characters("x")},
			want:   vector.List(vector.Integers(1), vector.Characters("x")),
		},
		{
			name:      "integer and character with character request",
			values:    []vector.Value{vector.Integers(1), vector.Characters("x")},
			requested: ptype.Character{},
			want:      vector.Characters("1", "x"),
		},
		{
			name:   "numeric promotion",
			values: []vector.Value{vector.Logicals(true), vector.Integers(2), vector.Doubles(2.5)},
			want:   vector.Doubles(1, 2, 2.5),
		},
		{
			name:   "empty input is an empty list",
			values: []vector.Value{},
			want:   vector.List(),
		},
		{
			name:      "empty input with request",
			values:    []vector.Value{},
			requested: ptype.Double{},
			want:      vector.Doubles(),
		},
		{
			name:      "element conversion failure names element",
			values:    []vector.Value{vector.Characters("1"), vector.Characters("nope")},
			requested: ptype.Double{},
			checkErr: func(t *testing.T, err error) {
				var ce *cast.Error
				require.True(t, errors.As(err, &ce))
				assert.Contains(t, err.Error(), "element 1")
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			got, err := Simplify(context.Background(), tc.values, tc.requested)

			// --- Assert ---
			if tc.checkErr != nil {
				require.Error(t, err)
				assert.False(t, got.IsValid(), "no partial container on failure")
				tc.checkErr(t, err)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("Simplify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSimplify_LengthInvariant(t *testing.T) {
	t.Parallel()

	inputs := map[string][]vector.Value{
		"single":  {vector.Integers(1)},
		"numeric": {vector.Logicals(true), vector.Logicals(false), vector.Integers(9)},
		"letters": {vector.Characters("a"), vector.Characters("b"), vector.Characters("c"), vector.Characters("d")},
		"mixed":   {vector.Integers(1), vector.Characters("x")},
	}
	requests := []ptype.Type{nil, ptype.Double{}, ptype.Character{}, ptype.Any{}}
	// Letters cannot be parsed as doubles; every other pair must succeed.
	mustFail := map[string]bool{
		"letters/double": true,
		"mixed/double":   true,
	}

	for name, values := range inputs {
		for _, requested := range requests {
			key := name + "/" + ptype.Name(requested)
			got, err := Simplify(context.Background(), values, requested)
			if mustFail[key] {
				var ce *cast.Error
				assert.True(t, errors.As(err, &ce), "%s: expected a cast error, got %v", key, err)
				continue
			}
			if assert.NoError(t, err, key) {
				assert.Equal(t, len(values), got.Len(), key)
			}
		}
	}
}

func TestSimplify_FallbackKeepsOriginals(t *testing.T) {
	t.Parallel()

	values := []vector.Value{
		vector.Dates(),
		vector.Integers(1, 2, 3),
		vector.Characters("x"),
	}
	got, err := Simplify(context.Background(), values, nil)
	require.NoError(t, err)
	require.True(t, ptype.IsAny(got.Type()))
	require.Equal(t, len(values), got.Len())
	for i, v := range values {
		assert.True(t, got.Elem(i).(vector.Value).Equal(v), "element %d changed", i)
	}
}

func TestSimplifyStrict(t *testing.T) {
	t.Parallel()

	values := []vector.Value{vector.Integers(1), vector.Characters("x")}

	_, err := SimplifyStrict(context.Background(), values, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = SimplifyStrict(context.Background(), values, ptype.Integer{})
	var ce *cast.Error
	require.True(t, errors.As(err, &ce), "strict mode must not fall back to a list")

	got, err := SimplifyStrict(context.Background(), values, ptype.Character{})
	require.NoError(t, err)
	assert.True(t, got.Equal(vector.Characters("1", "x")))
}

func TestSimplify_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Simplify(context.Background(), nil, nil)
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = Simplify(context.Background(), []vector.Value{vector.Integers(1), {}}, nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "element 1")
}

func TestSimplify_Records(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	values := []vector.Value{
		mustRecord(t, vector.Column{Name: "id", Value: vector.Integers(1)}, vector.Column{Name: "score", Value: vector.Logicals(true)}),
		mustRecord(t, vector.Column{Name: "id", Value: vector.Integers(2)}, vector.Column{Name: "note", Value: vector.Characters("b")}),
	}

	// --- Act ---
	got, err := Simplify(context.Background(), values, nil)

	// --- Assert ---
	require.NoError(t, err)
	wantType := ptype.RecordOf(
		ptype.Req("id", ptype.Integer{}),
		ptype.Opt("score", ptype.Logical{}),
		ptype.Opt("note", ptype.Character{}),
	)
	if diff := cmp.Diff(wantType, got.Type()); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 2, got.Len())
	score, _ := got.Column("score")
	assert.False(t, score.IsMissing(0))
	assert.True(t, score.IsMissing(1))
	note, _ := got.Column("note")
	assert.True(t, note.IsMissing(0))
	assert.Equal(t, "b", note.Elem(1))
}

func TestResolve_PartialRequest(t *testing.T) {
	t.Parallel()

	values := []vector.Value{
		mustRecord(t, vector.Column{Name: "id", Value: vector.Integers(1)}, vector.Column{Name: "w", Value: vector.Integers(5)}),
		mustRecord(t, vector.Column{Name: "id", Value: vector.Characters("2")}, vector.Column{Name: "w", Value: vector.Doubles(0.5)}, vector.Column{Name: "tag", Value: vector.Characters("t")}),
	}
	requested := ptype.PartialOf(ptype.Req("id", ptype.Integer{}))

	got, err := Resolve(values, requested)
	require.NoError(t, err)
	want := ptype.RecordOf(
		ptype.Req("id", ptype.Integer{}),
		ptype.Req("w", ptype.Double{}),
		ptype.Opt("tag", ptype.Character{}),
	)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Resolve mismatch (-want +got):\n%s", diff)
	}

	out, err := Simplify(context.Background(), values, requested)
	require.NoError(t, err)
	id, _ := out.Column("id")
	assert.True(t, id.Equal(vector.Integers(1, 2)))
}

func TestSimplify_NestedPartialRequest(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	inner := func(x int64, y string) vector.Value {
		return mustRecord(t,
			vector.Column{Name: "x", Value: vector.Integers(x)},
			vector.Column{Name: "y", Value: vector.Characters(y)},
		)
	}
	values := []vector.Value{
		mustRecord(t, vector.Column{Name: "p", Value: inner(1, "q")}),
		mustRecord(t, vector.Column{Name: "p", Value: inner(2, "r")}),
		mustRecord(t, vector.Column{Name: "id", Value: vector.Integers(3)}),
	}
	requested := ptype.RecordOf(
		ptype.Opt("p", ptype.PartialOf(ptype.Req("x", ptype.Double{}))),
		ptype.Opt("id", ptype.Integer{}),
	)

	// --- Act ---
	got, err := Simplify(context.Background(), values, requested)

	// --- Assert ---
	require.NoError(t, err)
	want := ptype.RecordOf(
		ptype.Opt("p", ptype.RecordOf(ptype.Req("x", ptype.Double{}), ptype.Req("y", ptype.Character{}))),
		ptype.Opt("id", ptype.Integer{}),
	)
	if diff := cmp.Diff(ptype.Type(want), got.Type()); diff != "" {
		t.Fatalf("type mismatch (-want +got):\n%s", diff)
	}
	require.Equal(t, 3, got.Len())
	p, _ := got.Column("p")
	x, _ := p.Column("x")
	assert.Equal(t, 1.0, x.Elem(0))
	assert.True(t, x.IsMissing(2), "the value without p gets a missing row")
	y, _ := p.Column("y")
	assert.Equal(t, "r", y.Elem(1))

	resolved, err := Resolve(values, requested)
	require.NoError(t, err)
	assert.True(t, ptype.Equal(want, resolved))
}

func TestResolve_ExplicitRequestIsMandatory(t *testing.T) {
	t.Parallel()

	values := []vector.Value{vector.Doubles(1), vector.Dates()}
	_, err := Resolve(values, ptype.Double{})

	var nct *NoCommonTypeError
	require.True(t, errors.As(err, &nct))
	assert.Equal(t, 1, nct.Index)
	assert.Len(t, nct.Types, 2)
}

func TestEnforce(t *testing.T) {
	t.Parallel()

	values := []vector.Value{vector.Integers(1), vector.Integers(), vector.Integers(1, 2)}

	same, err := Enforce(values, ptype.Any{})
	require.NoError(t, err)
	assert.Len(t, same, 3)

	_, err = Enforce(values, ptype.Integer{})
	var se *SizeError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, 1, se.Index)
	assert.Equal(t, 0, se.Got)
	assert.Equal(t, "simplify: element 1 must have length 1, not 0", se.Error())
}

func TestRun_ParallelCastReportsLowestIndex(t *testing.T) {
	t.Parallel()

	values := make([]vector.Value, 50)
	for i := range values {
		values[i] = vector.Characters("1")
	}
	values[7] = vector.Characters("bad")
	values[31] = vector.Characters("worse")

	for i := 0; i < 20; i++ {
		_, err := Run(context.Background(), values, Options{Type: ptype.Integer{}, Workers: 8})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simplify: element 7:")
	}

	values[7] = vector.Characters("7")
	values[31] = vector.Characters("31")
	got, err := Run(context.Background(), values, Options{Type: ptype.Integer{}, Workers: 8})
	require.NoError(t, err)
	require.Equal(t, 50, got.Len())
	assert.Equal(t, int64(7), got.Elem(7))
	assert.Equal(t, int64(31), got.Elem(31))
}

func TestRun_ParallelCastHonorsCancellation(t *testing.T) {
	t.Parallel()

	values := []vector.Value{vector.Characters("1"), vector.Characters("2"), vector.Characters("3")}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := Run(ctx, values, Options{Type: ptype.Integer{}, Workers: 2})

	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, got.IsValid())
}

func TestRun_LogsThroughContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	ctx := ctxlog.WithLogger(context.Background(), logger)

	_, err := Simplify(ctx, []vector.Value{vector.Integers(1), vector.Characters("x")}, nil)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No common type, keeping results as a list.")
	assert.Contains(t, buf.String(), "type=any")
}
