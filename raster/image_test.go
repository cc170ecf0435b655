package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		img, err := New(4, 2)
		require.NoError(t, err)
		w, h := img.Bounds()
		assert.Equal(t, 4, w)
		assert.Equal(t, 2, h)
		assert.Equal(t, 4, img.Width())
		assert.Equal(t, 2, img.Height())
		assert.Len(t, img.Pix(), 4*2*BytesPerPixel)
	})

	for _, size := range [][2]int{{0, 1}, {1, 0}, {-1, 5}, {MaxDimension + 1, 1}} {
		_, err := New(size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidSize, "%v", size)
	}
}

func TestFromPix(t *testing.T) {
	img, err := FromPix(1, 1, []byte{1, 2, 3})
	require.NoError(t, err)
	c, err := img.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, RGB(1, 2, 3), c)

	_, err = FromPix(2, 1, []byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func TestSetAt(t *testing.T) {
	img, err := New(3, 3)
	require.NoError(t, err)

	require.NoError(t, img.Set(2, 1, RGB(10, 20, 30)))
	c, err := img.At(2, 1)
	require.NoError(t, err)
	assert.Equal(t, RGB(10, 20, 30), c)

	c, err = img.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, Color{}, c)

	assert.ErrorIs(t, img.Set(3, 0, Color{}), ErrOutOfRange)
	_, err = img.At(0, -1)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestFillCloneEqual(t *testing.T) {
	img, err := New(2, 2)
	require.NoError(t, err)
	img.Fill(RGB(255, 0, 128))

	clone := img.Clone()
	assert.True(t, img.Equal(clone))

	require.NoError(t, clone.Set(0, 0, RGB(0, 0, 0)))
	assert.False(t, img.Equal(clone))

	c, err := img.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 0, 128), c)

	other, err := New(2, 3)
	require.NoError(t, err)
	assert.False(t, img.Equal(other))
}

func TestPixIsCopy(t *testing.T) {
	img, err := New(1, 1)
	require.NoError(t, err)
	pix := img.Pix()
	pix[0] = 99

	c, err := img.At(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), c.R)
}

func TestStd(t *testing.T) {
	img, err := New(2, 1)
	require.NoError(t, err)
	require.NoError(t, img.Set(1, 0, RGB(1, 2, 3)))

	std := img.Std()
	assert.Equal(t, 2, std.Bounds().Dx())
	assert.Equal(t, 1, std.Bounds().Dy())

	r, g, b, a := std.At(1, 0).RGBA()
	assert.Equal(t, uint32(0x0101), r)
	assert.Equal(t, uint32(0x0202), g)
	assert.Equal(t, uint32(0x0303), b)
	assert.Equal(t, uint32(0xffff), a)

	assert.Equal(t, color.RGBA{}, std.At(5, 5))
}
