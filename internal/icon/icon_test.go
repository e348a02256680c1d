package icon

import (
	"bytes"
	"encoding/binary"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrayIsCached(t *testing.T) {
	a := Tray()
	require.NotEmpty(t, a)
	assert.Same(t, &a[0], &Tray()[0])
}

func TestDrawnIconDecodes(t *testing.T) {
	raw, err := encodePNG(draw())
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(raw))
	require.NoError(t, err)
	assert.Equal(t, size, img.Bounds().Dx())
	assert.Equal(t, size, img.Bounds().Dy())

	// Угол прозрачный, центр переднего окна закрашен
	_, _, _, a := img.At(0, 0).RGBA()
	assert.Zero(t, a)
	_, _, _, a = img.At(40, 45).RGBA()
	assert.NotZero(t, a)
}

func TestToICOHeader(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G'}
	ico := toICO(payload)

	require.Len(t, ico, 22+len(payload))
	le := binary.LittleEndian
	assert.Equal(t, uint16(0), le.Uint16(ico[0:]))
	assert.Equal(t, uint16(1), le.Uint16(ico[2:]))
	assert.Equal(t, uint16(1), le.Uint16(ico[4:]))
	assert.Equal(t, byte(size), ico[6])
	assert.Equal(t, uint32(len(payload)), le.Uint32(ico[14:]))
	assert.Equal(t, uint32(22), le.Uint32(ico[18:]))
	assert.Equal(t, payload, ico[22:])
}
