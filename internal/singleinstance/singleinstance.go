// Package singleinstance не даёт запустить вторую копию приложения
// и позволяет второй копии попросить первую перечитать конфиг.
package singleinstance

import (
	"errors"
	"os"
	"os/user"
	"strings"
)

// ErrAlreadyRunning возвращается TryLock, если блокировку держит другой процесс.
var ErrAlreadyRunning = errors.New("another instance is already running")

// ErrNotRunning возвращается SignalReload, если некому посылать сигнал.
var ErrNotRunning = errors.New("no running instance")

const appName = "winswitch"

// DefaultName возвращает имя блокировки для текущего пользователя.
func DefaultName() string {
	username := strings.TrimSpace(os.Getenv("USERNAME"))
	if username == "" {
		username = strings.TrimSpace(os.Getenv("USER"))
	}
	if username == "" {
		if current, err := user.Current(); err == nil {
			username = current.Username
		}
	}
	return appName + "-" + sanitize(username)
}

// sanitize оставляет в имени только безопасные символы.
func sanitize(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}
