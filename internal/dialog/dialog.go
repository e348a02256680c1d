// Package dialog показывает модальные сообщения пользователю.
package dialog

import (
	"github.com/ncruces/zenity"
)

// ShowInfo показывает информационное сообщение.
func ShowInfo(title, message string) {
	zenity.Info(message, zenity.Title(title), zenity.InfoIcon)
}

// ShowError показывает сообщение об ошибке.
func ShowError(title, message string) {
	zenity.Error(message, zenity.Title(title), zenity.ErrorIcon)
}

// ShowErrorAsync показывает ошибку, не блокируя вызывающий поток.
func ShowErrorAsync(title, message string) {
	go ShowError(title, message)
}

// ShowInfoAsync показывает сообщение, не блокируя вызывающий поток.
func ShowInfoAsync(title, message string) {
	go ShowInfo(title, message)
}
