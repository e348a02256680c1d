package window

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

// icoFile собирает ICO из готовых картинок (PNG или DIB) с заданными ширинами.
func icoFile(widths []byte, payloads [][]byte) []byte {
	var buf bytes.Buffer
	le := binary.LittleEndian
	binary.Write(&buf, le, uint16(0))
	binary.Write(&buf, le, uint16(1))
	binary.Write(&buf, le, uint16(len(payloads)))

	offset := 6 + 16*len(payloads)
	for i, p := range payloads {
		buf.Write([]byte{widths[i], widths[i], 0, 0})
		binary.Write(&buf, le, uint16(1))
		binary.Write(&buf, le, uint16(32))
		binary.Write(&buf, le, uint32(len(p)))
		binary.Write(&buf, le, uint32(offset))
		offset += len(p)
	}
	for _, p := range payloads {
		buf.Write(p)
	}
	return buf.Bytes()
}

func newTestCache(extracted image.Image) (*IconCache, *int) {
	calls := 0
	c := NewIconCache()
	c.load = func(Handle) image.Image {
		calls++
		return extracted
	}
	return c, &calls
}

func TestIconOverrideBeatsWindowIcon(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "firefox.png")
	writePNG(t, custom, solid(4, 4, color.NRGBA{R: 0xFF, A: 0xFF}))

	extracted := solid(2, 2, color.NRGBA{B: 0xFF, A: 0xFF})
	c, calls := newTestCache(extracted)
	c.SetOverrides(map[string]string{"Firefox.exe": custom})

	img := c.Icon(`C:\Program Files\Mozilla\firefox.exe`, 1)
	require.NotNil(t, img)
	assert.Equal(t, image.Rect(0, 0, 4, 4), img.Bounds())
	assert.Zero(t, *calls, "window icon is not extracted when an override exists")

	// Приложение без переопределения берёт иконку окна
	assert.Same(t, extracted, c.Icon("/usr/bin/code", 2))
	assert.Equal(t, 1, *calls)
}

func TestIconOverrideMissingFileFallsBack(t *testing.T) {
	extracted := solid(2, 2, color.NRGBA{G: 0xFF, A: 0xFF})
	c, calls := newTestCache(extracted)
	c.SetOverrides(map[string]string{"code": filepath.Join(t.TempDir(), "missing.png")})

	assert.Same(t, extracted, c.Icon("/usr/bin/code", 1))
	assert.Same(t, extracted, c.Icon("/usr/bin/code", 1))
	assert.Equal(t, 1, *calls, "result is cached")
}

func TestIconOverridesSurviveReset(t *testing.T) {
	dir := t.TempDir()
	custom := filepath.Join(dir, "term.png")
	writePNG(t, custom, solid(3, 3, color.NRGBA{A: 0xFF}))

	c, calls := newTestCache(nil)
	c.SetOverrides(map[string]string{"term": custom})
	require.NotNil(t, c.Icon("/usr/bin/term", 1))

	c.Reset()
	assert.Empty(t, c.icons)
	require.NotNil(t, c.Icon("/usr/bin/term", 1))
	assert.Zero(t, *calls)

	c.SetOverrides(nil)
	assert.Nil(t, c.Icon("/usr/bin/term", 1))
	assert.Equal(t, 1, *calls)
}

func TestLoadIconFileICO(t *testing.T) {
	var small, large bytes.Buffer
	require.NoError(t, png.Encode(&small, solid(16, 16, color.NRGBA{R: 1, A: 0xFF})))
	require.NoError(t, png.Encode(&large, solid(32, 32, color.NRGBA{R: 2, A: 0xFF})))

	path := filepath.Join(t.TempDir(), "app.ico")
	require.NoError(t, os.WriteFile(path, icoFile([]byte{16, 32}, [][]byte{small.Bytes(), large.Bytes()}), 0o644))

	img, err := LoadIconFile(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 32, 32), img.Bounds(), "largest image wins")
}

func TestDecodeDIB(t *testing.T) {
	// 1x2 пикселя, строки снизу вверх: нижняя синяя, верхняя красная
	le := binary.LittleEndian
	dib := make([]byte, 40, 40+8+8)
	le.PutUint32(dib[0:], 40)
	le.PutUint32(dib[4:], 1)
	le.PutUint32(dib[8:], 4) // высота удвоена маской
	le.PutUint16(dib[12:], 1)
	le.PutUint16(dib[14:], 32)
	dib = append(dib, 0xFF, 0, 0, 0xFF) // BGRA: синий
	dib = append(dib, 0, 0, 0xFF, 0xFF) // BGRA: красный
	dib = append(dib, make([]byte, 8)...)

	img, err := decodeICO(icoFile([]byte{1}, [][]byte{dib}))
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 1, 2), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 0xFF, A: 0xFF}, img.At(0, 0))
	assert.Equal(t, color.NRGBA{B: 0xFF, A: 0xFF}, img.At(0, 1))
}

func TestLoadIconFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadIconFile(filepath.Join(dir, "none.png"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.ico")
	require.NoError(t, os.WriteFile(bad, []byte{0, 0, 2, 0}, 0o644))
	_, err = LoadIconFile(bad)
	assert.ErrorIs(t, err, errBadICO)

	text := filepath.Join(dir, "text.png")
	require.NoError(t, os.WriteFile(text, []byte("not an image"), 0o644))
	_, err = LoadIconFile(text)
	assert.Error(t, err)
}
