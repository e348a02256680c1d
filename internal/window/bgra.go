package window

import "image"

// bgraToImage переводит 32-битный DIB (BGRA, сверху вниз) в NRGBA.
// Иконки без альфа-канала приходят с нулевой альфой: тогда они непрозрачны.
func bgraToImage(buf []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))

	hasAlpha := false
	for i := 3; i < len(buf); i += 4 {
		if buf[i] != 0 {
			hasAlpha = true
			break
		}
	}

	for i := 0; i+3 < len(buf) && i < len(img.Pix); i += 4 {
		img.Pix[i+0] = buf[i+2]
		img.Pix[i+1] = buf[i+1]
		img.Pix[i+2] = buf[i+0]
		if hasAlpha {
			img.Pix[i+3] = buf[i+3]
		} else {
			img.Pix[i+3] = 0xFF
		}
	}
	return img
}
