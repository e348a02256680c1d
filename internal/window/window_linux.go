//go:build linux

package window

import (
	"context"
	"fmt"
	"image"
	"os"
	"os/exec"
	"strconv"
	"time"
)

const (
	commandTimeout = 2 * time.Second
	stateTTL       = time.Second
)

// Desktop работает с окнами X11 через wmctrl и xprop.
type Desktop struct {
	self   int
	states *stateCache
}

// NewDesktop проверяет наличие wmctrl и xprop.
func NewDesktop() (*Desktop, error) {
	for _, tool := range []string{"wmctrl", "xprop"} {
		if _, err := exec.LookPath(tool); err != nil {
			return nil, fmt.Errorf("%s not found: %w", tool, ErrUnsupported)
		}
	}
	return &Desktop{self: os.Getpid(), states: newStateCache(stateTTL, queryState)}, nil
}

// ListWindows возвращает окна, сгруппированные по исполняемому файлу.
func (d *Desktop) ListWindows(opts ListOptions) ([]Group, error) {
	out, err := run("wmctrl", "-lp")
	if err != nil {
		return nil, err
	}
	list, err := parseWmctrl(out)
	if err != nil {
		return nil, err
	}

	rootOut, err := run("xprop", "-root", "_NET_CLIENT_LIST_STACKING", "_NET_ACTIVE_WINDOW", "_NET_CURRENT_DESKTOP")
	if err != nil {
		return nil, err
	}
	root := parseRootProps(rootOut)

	var candidates []x11Window
	for _, w := range orderByStacking(list, root.stacking) {
		if w.pid == d.self || w.title == "" {
			continue
		}
		if opts.CurrentDesktopOnly && w.desktop >= 0 && w.desktop != root.currentDesktop {
			continue
		}
		candidates = append(candidates, w)
	}

	ids := make([]uint64, len(candidates))
	for i, w := range candidates {
		ids[i] = w.id
	}
	states := d.states.lookup(ids)

	var (
		keys []string
		wins []Window
	)
	for _, w := range candidates {
		st, ok := states[w.id]
		if !ok || st.skipTaskbar || (opts.IgnoreMinimized && st.hidden) {
			continue
		}

		keys = append(keys, appKeyForPID(w.pid))
		wins = append(wins, Window{Handle: Handle(w.id), Title: w.title, Minimized: st.hidden})
	}

	return groupBy(keys, wins), nil
}

// Foreground возвращает активное окно.
func (d *Desktop) Foreground() Handle {
	out, err := run("xprop", "-root", "_NET_ACTIVE_WINDOW")
	if err != nil {
		return 0
	}
	return Handle(parseRootProps(out).active)
}

// Activate переключает рабочий стол при необходимости и активирует окно.
func (d *Desktop) Activate(h Handle) error {
	// Активация разворачивает окно, закэшированное состояние устарело
	d.states.forget(uint64(h))
	if _, err := run("wmctrl", "-i", "-a", fmt.Sprintf("0x%x", uint64(h))); err != nil {
		return fmt.Errorf("%w: %v", ErrGone, err)
	}
	return nil
}

// IsElevated сообщает, запущен ли процесс от root.
func IsElevated() bool {
	return os.Geteuid() == 0
}

func queryState(id uint64) (windowState, error) {
	out, err := run("xprop", "-id", fmt.Sprintf("0x%x", id), "_NET_WM_STATE")
	if err != nil {
		return windowState{}, err
	}
	hidden, skip := parseWindowState(out)
	return windowState{hidden: hidden, skipTaskbar: skip}, nil
}

func appKeyForPID(pid int) string {
	if pid > 0 {
		if exe, err := os.Readlink("/proc/" + strconv.Itoa(pid) + "/exe"); err == nil {
			return exe
		}
	}
	return "pid:" + strconv.Itoa(pid)
}

func loadIcon(Handle) image.Image {
	return nil
}

func run(name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return string(out), nil
}
