package tensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape_NumElements(t *testing.T) {
	assert.Equal(t, 1, Shape{}.NumElements())
	assert.Equal(t, 0, Shape{3, 0}.NumElements())
	assert.Equal(t, 24, Shape{2, 3, 4}.NumElements())
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, Shape{2, 0, 3}.Validate())
	assert.ErrorIs(t, Shape{2, -1}.Validate(), ErrShapeMismatch)
}

func TestShape_ComputeStrides(t *testing.T) {
	assert.Equal(t, []int{12, 4, 1}, Shape{2, 3, 4}.ComputeStrides())
	assert.Empty(t, Shape{}.ComputeStrides())
}

func TestShape_String(t *testing.T) {
	assert.Equal(t, "()", Shape{}.String())
	assert.Equal(t, "(2, 3)", Shape{2, 3}.String())
}

func TestBroadcastShapes(t *testing.T) {
	tests := []struct {
		name      string
		a, b      Shape
		want      Shape
		broadcast bool
		wantErr   bool
	}{
		{"same", Shape{3, 4}, Shape{3, 4}, Shape{3, 4}, false, false},
		{"column", Shape{3, 1}, Shape{3, 4}, Shape{3, 4}, true, false},
		{"row vector", Shape{4}, Shape{3, 4}, Shape{3, 4}, true, false},
		{"scalar", Shape{}, Shape{2, 2}, Shape{2, 2}, true, false},
		{"both stretch", Shape{3, 1}, Shape{1, 4}, Shape{3, 4}, true, false},
		{"incompatible", Shape{3}, Shape{4}, nil, false, true},
		{"inner mismatch", Shape{2, 3}, Shape{3, 2}, nil, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, broadcast, err := BroadcastShapes(tt.a, tt.b)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrShapeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.broadcast, broadcast)
		})
	}
}

func TestBroadcastIndex(t *testing.T) {
	dst := Shape{2, 3}
	dstStrides := dst.ComputeStrides()

	// A column (2, 1) repeats its element along each row.
	col := Shape{2, 1}
	colStrides := col.ComputeStrides()
	var got []int
	for i := 0; i < dst.NumElements(); i++ {
		got = append(got, BroadcastIndex(i, dst, dstStrides, col, colStrides))
	}
	assert.Equal(t, []int{0, 0, 0, 1, 1, 1}, got)

	// A row (3,) repeats across rows.
	row := Shape{3}
	rowStrides := row.ComputeStrides()
	got = got[:0]
	for i := 0; i < dst.NumElements(); i++ {
		got = append(got, BroadcastIndex(i, dst, dstStrides, row, rowStrides))
	}
	assert.Equal(t, []int{0, 1, 2, 0, 1, 2}, got)
}
