//go:build unix

package singleinstance

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// Lock держит flock на pid-файле. Ядро снимает блокировку при завершении процесса.
type Lock struct {
	file *os.File
	path string
}

func lockPath(name string) string {
	return filepath.Join(os.TempDir(), name+".lock")
}

// TryLock пытается захватить pid-файл и записывает в него свой pid.
func TryLock(name string) (*Lock, error) {
	if name == "" {
		return nil, errors.New("lock name is required")
	}
	path := lockPath(name)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open lock file: %w", err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, ErrAlreadyRunning
		}
		return nil, fmt.Errorf("flock %s: %w", path, err)
	}

	if err := f.Truncate(0); err == nil {
		f.WriteAt([]byte(strconv.Itoa(os.Getpid())), 0)
	}
	return &Lock{file: f, path: path}, nil
}

// Release снимает блокировку и удаляет файл. Безопасен для nil и идемпотентен.
func (l *Lock) Release() error {
	if l == nil || l.file == nil {
		return nil
	}
	os.Remove(l.path)
	unix.Flock(int(l.file.Fd()), unix.LOCK_UN)
	err := l.file.Close()
	l.file = nil
	return err
}

// SignalReload посылает SIGUSR1 процессу, записанному в pid-файле.
func SignalReload(name string) error {
	data, err := os.ReadFile(lockPath(name))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotRunning, err)
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil || pid <= 0 {
		return fmt.Errorf("%w: bad pid file", ErrNotRunning)
	}
	if err := unix.Kill(pid, unix.SIGUSR1); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
	return nil
}

// ReloadListener ждёт SIGUSR1 в отдельной горутине.
type ReloadListener struct {
	sigCh    chan os.Signal
	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

// ListenReload вызывает fn на каждый SIGUSR1.
func ListenReload(_ string, fn func()) (*ReloadListener, error) {
	l := &ReloadListener{
		sigCh: make(chan os.Signal, 1),
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
	signal.Notify(l.sigCh, unix.SIGUSR1)

	go func() {
		defer close(l.done)
		for {
			select {
			case <-l.stop:
				return
			case <-l.sigCh:
				fn()
			}
		}
	}()
	return l, nil
}

// Close останавливает ожидание. Идемпотентен.
func (l *ReloadListener) Close() error {
	l.stopOnce.Do(func() {
		signal.Stop(l.sigCh)
		close(l.stop)
		<-l.done
	})
	return nil
}
