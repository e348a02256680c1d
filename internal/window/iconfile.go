package window

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
)

// LoadIconFile читает пользовательскую иконку: .ico или картинку,
// которую умеет image.Decode (png, jpeg, gif, bmp).
func LoadIconFile(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read icon: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".ico") {
		return decodeICO(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode icon %s: %w", filepath.Base(path), err)
	}
	return img, nil
}

var errBadICO = errors.New("malformed ico")

// decodeICO выбирает самую большую картинку из ICO.
// Поддерживаются PNG внутри ICO и 32-битные DIB.
func decodeICO(data []byte) (image.Image, error) {
	le := binary.LittleEndian
	if len(data) < 6 || le.Uint16(data[0:]) != 0 || le.Uint16(data[2:]) != 1 {
		return nil, errBadICO
	}
	count := int(le.Uint16(data[4:]))
	if count == 0 || len(data) < 6+16*count {
		return nil, errBadICO
	}

	best, bestSize := -1, 0
	for i := 0; i < count; i++ {
		e := data[6+16*i:]
		w := int(e[0])
		if w == 0 {
			w = 256
		}
		if w > bestSize {
			best, bestSize = i, w
		}
	}

	e := data[6+16*best:]
	size := int(le.Uint32(e[8:]))
	offset := int(le.Uint32(e[12:]))
	if offset < 0 || size <= 0 || offset+size > len(data) {
		return nil, errBadICO
	}
	payload := data[offset : offset+size]

	if bytes.HasPrefix(payload, []byte("\x89PNG")) {
		return png.Decode(bytes.NewReader(payload))
	}
	return decodeDIB(payload)
}

// decodeDIB разбирает BITMAPINFOHEADER с 32 бит на пиксель.
// Высота в заголовке удвоена: за цветом идёт маска AND, она не нужна.
func decodeDIB(b []byte) (image.Image, error) {
	le := binary.LittleEndian
	if len(b) < 40 {
		return nil, errBadICO
	}
	headerSize := int(le.Uint32(b[0:]))
	w := int(int32(le.Uint32(b[4:])))
	h := int(int32(le.Uint32(b[8:]))) / 2
	bpp := le.Uint16(b[14:])
	if bpp != 32 {
		return nil, fmt.Errorf("ico: unsupported %d bpp", bpp)
	}
	if w <= 0 || h <= 0 || headerSize < 40 || headerSize+w*h*4 > len(b) {
		return nil, errBadICO
	}

	// Строки идут снизу вверх
	pix := b[headerSize:]
	top := make([]byte, 0, w*h*4)
	for y := h - 1; y >= 0; y-- {
		top = append(top, pix[y*w*4:(y+1)*w*4]...)
	}
	return bgraToImage(top, w, h), nil
}
