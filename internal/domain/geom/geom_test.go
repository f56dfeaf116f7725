package geom

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Intersects(t *testing.T) {
	base := Rect{X: 64, Y: 128, W: 64, H: 64}

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"overlapping", Rect{X: 100, Y: 105, W: 60, H: 60}, true},
		{"touching right edge", Rect{X: 128, Y: 128, W: 10, H: 10}, false},
		{"touching top edge", Rect{X: 64, Y: 118, W: 10, H: 10}, false},
		{"inside", Rect{X: 70, Y: 130, W: 4, H: 4}, true},
		{"far away", Rect{X: 500, Y: 500, W: 4, H: 4}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Intersects(tt.other))
			assert.Equal(t, tt.want, tt.other.Intersects(base))
		})
	}
}

func TestVec_Normalize(t *testing.T) {
	n, ok := Vec{X: 3, Y: 4}.Normalize()
	assert.True(t, ok)
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)

	n, ok = Vec{}.Normalize()
	assert.False(t, ok)
	assert.True(t, n.IsZero())
}

func TestRect_Edges(t *testing.T) {
	r := RectAt(Vec{X: 100, Y: 100}, Vec{X: 60, Y: 60})

	assert.Equal(t, 100.0, r.Left())
	assert.Equal(t, 160.0, r.Right())
	assert.Equal(t, 100.0, r.Top())
	assert.Equal(t, 160.0, r.Bottom())
	assert.Equal(t, Vec{X: 130, Y: 130}, r.Center())
	assert.Equal(t, Rect{X: 100, Y: 105, W: 60, H: 60}, r.Offset(0, 5))
}
