// Package startup управляет автозапуском приложения при входе в систему.
package startup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// ErrUnsupported возвращается на платформах без автозапуска.
var ErrUnsupported = errors.New("run at login is not supported on this platform")

const entryName = "WinSwitch"

// Startup хранит текущее состояние автозапуска.
type Startup struct {
	mu      sync.Mutex
	exe     string
	enabled bool
}

// New определяет путь к бинарнику и читает текущее состояние.
func New() (*Startup, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return newWithExe(exe)
}

func newWithExe(exe string) (*Startup, error) {
	enabled, err := isRegistered(exe)
	if err != nil && !errors.Is(err, ErrUnsupported) {
		return nil, err
	}
	return &Startup{exe: exe, enabled: enabled}, nil
}

// Enabled сообщает, включён ли автозапуск.
func (s *Startup) Enabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enabled
}

// Toggle переключает автозапуск и возвращает новое состояние.
func (s *Startup) Toggle() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.enabled {
		if err := unregister(); err != nil {
			return s.enabled, fmt.Errorf("disable run at login: %w", err)
		}
	} else {
		if err := register(s.exe); err != nil {
			return s.enabled, fmt.Errorf("enable run at login: %w", err)
		}
	}
	s.enabled = !s.enabled
	return s.enabled, nil
}
