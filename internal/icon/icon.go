// Package icon рисует иконку трея.
package icon

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"
)

const size = 64

var (
	accent = color.RGBA{88, 166, 255, 255}
	muted  = color.RGBA{200, 200, 210, 255}
)

var (
	once sync.Once
	data []byte
)

// Tray возвращает иконку трея в формате, который ждёт systray на текущей ОС.
func Tray() []byte {
	once.Do(func() {
		raw, err := encodePNG(draw())
		if err != nil {
			return
		}
		data = wrap(raw)
	})
	return data
}

// draw рисует два перекрывающихся окна: заднее серое, переднее цветное.
func draw() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))

	frame(img, image.Rect(6, 6, 42, 36), muted)
	fill(img, image.Rect(20, 22, 58, 56), accent)
	// Заголовок переднего окна
	fill(img, image.Rect(20, 22, 58, 28), color.RGBA{40, 90, 170, 255})

	return img
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func frame(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	const w = 3
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	fill(img, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	fill(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	fill(img, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
