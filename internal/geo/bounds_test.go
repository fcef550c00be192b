package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBounds(t *testing.T) {
	t.Run("empty input fails", func(t *testing.T) {
		_, err := ComputeBounds(nil)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})

	t.Run("single point yields zero span", func(t *testing.T) {
		b, err := ComputeBounds([]Point{{ID: "a", Lat: 6.9, Lng: 79.8}})
		require.NoError(t, err)
		assert.Equal(t, Bounds{MinLat: 6.9, MaxLat: 6.9, MinLng: 79.8, MaxLng: 79.8}, b)
		assert.True(t, b.IsDegenerate())
		assert.Zero(t, b.AreaKm2())
	})

	t.Run("spans all points", func(t *testing.T) {
		b, err := ComputeBounds([]Point{
			{ID: "a", Lat: 0, Lng: 0},
			{ID: "b", Lat: 0, Lng: 0.05},
			{ID: "c", Lat: 10, Lng: 10},
			{ID: "d", Lat: -3, Lng: 2},
		})
		require.NoError(t, err)
		assert.Equal(t, -3.0, b.MinLat)
		assert.Equal(t, 10.0, b.MaxLat)
		assert.Equal(t, 0.0, b.MinLng)
		assert.Equal(t, 10.0, b.MaxLng)
		assert.False(t, b.IsDegenerate())
		assert.InDelta(t, 13*10*111*111, b.AreaKm2(), 1e-6)
	})

	t.Run("contains its own corners", func(t *testing.T) {
		b := Bounds{MinLat: 1, MaxLat: 2, MinLng: 3, MaxLng: 4}
		assert.True(t, b.Contains(Point{Lat: 1, Lng: 3}))
		assert.True(t, b.Contains(Point{Lat: 2, Lng: 4}))
		assert.False(t, b.Contains(Point{Lat: 2.1, Lng: 4}))
	})
}

func TestPointValidate(t *testing.T) {
	assert.NoError(t, Point{Lat: -90, Lng: 180}.Validate())
	assert.ErrorIs(t, Point{Lat: 91}.Validate(), ErrInvalidArgument)
	assert.ErrorIs(t, Point{Lng: -181}.Validate(), ErrInvalidArgument)
}
