package icon

// systray на Windows загружает иконку через LoadImage и ждёт ICO.
func wrap(pngData []byte) []byte {
	return toICO(pngData)
}
