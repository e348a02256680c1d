// Package window перечисляет окна рабочего стола и активирует их.
package window

import (
	"errors"
	"path/filepath"
	"strings"
)

// Handle - непрозрачный идентификатор окна верхнего уровня (HWND на Windows).
type Handle uintptr

// Window - одно окно верхнего уровня.
type Window struct {
	Handle    Handle
	Title     string
	Minimized bool
}

// Group - окна одного приложения в z-порядке, сверху вниз.
type Group struct {
	// AppKey идентифицирует приложение (путь к исполняемому файлу).
	AppKey  string
	Windows []Window
}

// Name возвращает отображаемое имя приложения.
func (g Group) Name() string {
	return AppName(g.AppKey)
}

// Handles возвращает дескрипторы окон группы в том же порядке.
func (g Group) Handles() []Handle {
	hs := make([]Handle, len(g.Windows))
	for i, w := range g.Windows {
		hs[i] = w.Handle
	}
	return hs
}

// Representative возвращает окно, которое активируется при выборе приложения:
// верхнее окно, а если оно свёрнуто, последнее несвёрнутое.
func (g Group) Representative() (Window, bool) {
	if len(g.Windows) == 0 {
		return Window{}, false
	}
	top := g.Windows[0]
	if !top.Minimized {
		return top, true
	}
	for i := len(g.Windows) - 1; i > 0; i-- {
		if !g.Windows[i].Minimized {
			return g.Windows[i], true
		}
	}
	return top, true
}

// ListOptions - фильтры перечисления.
type ListOptions struct {
	IgnoreMinimized    bool
	CurrentDesktopOnly bool
	// Elevated: процесс запущен с повышенными правами и может
	// активировать окна других повышенных процессов.
	Elevated bool
}

// ErrUnsupported возвращается на платформах без управления окнами.
var ErrUnsupported = errors.New("window management is not supported on this platform")

// ErrGone возвращается, если окно закрылось до активации.
var ErrGone = errors.New("window no longer exists")

// FindGroup ищет группу, содержащую окно h.
func FindGroup(groups []Group, h Handle) (Group, bool) {
	for _, g := range groups {
		for _, w := range g.Windows {
			if w.Handle == h {
				return g, true
			}
		}
	}
	return Group{}, false
}

// AppName - имя исполняемого файла без расширения.
func AppName(appKey string) string {
	base := filepath.Base(strings.ReplaceAll(appKey, `\`, "/"))
	if ext := filepath.Ext(base); strings.EqualFold(ext, ".exe") {
		base = base[:len(base)-len(ext)]
	}
	return base
}

// MatchesBlacklist сообщает, входит ли приложение в список
// (сравнение имени файла без учёта регистра, с .exe или без).
func MatchesBlacklist(appKey string, list []string) bool {
	name := AppName(appKey)
	for _, item := range list {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if strings.EqualFold(AppName(item), name) {
			return true
		}
	}
	return false
}

// groupBy собирает окна в группы по ключу приложения, сохраняя
// z-порядок внутри группы и порядок первого появления групп.
func groupBy(keys []string, wins []Window) []Group {
	index := make(map[string]int)
	var groups []Group
	for i, w := range wins {
		k := keys[i]
		gi, ok := index[k]
		if !ok {
			gi = len(groups)
			index[k] = gi
			groups = append(groups, Group{AppKey: k})
		}
		groups[gi].Windows = append(groups[gi].Windows, w)
	}
	return groups
}
