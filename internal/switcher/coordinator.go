// Package switcher содержит движок переключения: состояния жестов
// по приложениям и окнам и координатор, который применяет к ним намерения.
package switcher

import (
	"context"
	"image"
	"log/slog"
	"runtime"
	"runtime/debug"
	"sync"

	"winswitch/internal/window"
)

// Enumerator перечисляет окна, сгруппированные по приложениям.
type Enumerator interface {
	ListWindows(opts window.ListOptions) ([]window.Group, error)
}

// Activator выводит окно на передний план.
type Activator interface {
	Activate(h window.Handle) error
}

// ForegroundSource возвращает текущее активное окно.
type ForegroundSource interface {
	Foreground() window.Handle
}

// Painter рисует оверлей кандидатов. Все методы идемпотентны.
type Painter interface {
	Paint(candidates []Candidate, selected int)
	Unpaint()
	// CandidateAt возвращает индекс кандидата под точкой оверлея.
	CandidateAt(x, y int) (int, bool)
}

// IconSource возвращает иконку приложения или nil.
type IconSource interface {
	Icon(appKey string, h window.Handle) image.Image
}

// Reloader перечитывает конфигурацию и возвращает новые фильтры.
type Reloader interface {
	Reload() (Settings, error)
}

// Settings - фильтры перечисления для каждой оси переключения.
type Settings struct {
	Apps    window.ListOptions
	Windows window.ListOptions
}

// Deps - внешние зависимости координатора. Icons и Reloader необязательны.
type Deps struct {
	Enumerator Enumerator
	Activator  Activator
	Foreground ForegroundSource
	Painter    Painter
	Icons      IconSource
	Reloader   Reloader
}

// Coordinator владеет состояниями переключения и обрабатывает намерения
// строго по одному, в порядке поступления. Все методы, кроме Done,
// вызываются только из горутины Run.
type Coordinator struct {
	deps     Deps
	settings Settings

	apps    *AppCycle
	windows *WindowCycle

	closed    bool
	done      chan struct{}
	closeOnce sync.Once
}

// NewCoordinator создаёт координатор в состоянии Idle.
func NewCoordinator(deps Deps, settings Settings) *Coordinator {
	return &Coordinator{
		deps:     deps,
		settings: settings,
		windows:  NewWindowCycle(),
		done:     make(chan struct{}),
	}
}

// Run обрабатывает намерения из mb до IntentExit или отмены ctx.
// Горутина закрепляется за потоком ОС: активация окон и оверлей
// требуют постоянного UI-потока.
func (c *Coordinator) Run(ctx context.Context, mb *Mailbox) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	for {
		select {
		case <-ctx.Done():
			c.teardown()
			return ctx.Err()
		case <-mb.Ready():
			for _, in := range mb.Drain() {
				c.Handle(in)
				if c.closed {
					return nil
				}
			}
		}
	}
}

// Done закрывается после завершения работы координатора.
func (c *Coordinator) Done() <-chan struct{} {
	return c.done
}

// AppsActive сообщает, идёт ли жест переключения приложений.
func (c *Coordinator) AppsActive() bool {
	return c.apps != nil
}

// Handle применяет одно намерение. Паника внутри обработчика
// логируется и не останавливает цикл.
func (c *Coordinator) Handle(in Intent) {
	if c.closed {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in intent handler",
				"intent", in.Kind.String(),
				"panic", r,
				"stack", string(debug.Stack()),
			)
		}
	}()

	slog.Debug("intent", "kind", in.Kind.String(), "reverse", in.Reverse)

	switch in.Kind {
	case IntentAdvanceApps:
		c.advanceApps(in.Reverse)
	case IntentCommitApps:
		c.commitApps()
	case IntentCancelApps:
		c.cancelApps()
	case IntentAdvanceWindows:
		c.advanceWindows(in.Reverse)
	case IntentCommitWindows:
		c.windows.Commit()
	case IntentClick:
		c.click(in.X, in.Y)
	case IntentReload:
		c.reload()
	case IntentExit:
		c.teardown()
	default:
		slog.Warn("unknown intent ignored", "kind", in.Kind.String())
	}
}

func (c *Coordinator) advanceApps(reverse bool) {
	if c.apps != nil {
		c.apps.Advance(reverse)
		c.deps.Painter.Paint(c.apps.Candidates(), c.apps.Index())
		return
	}

	groups, err := c.deps.Enumerator.ListWindows(c.settings.Apps)
	if err != nil {
		slog.Error("list windows failed", "error", err)
		return
	}

	cycle := NewAppCycle(candidatesFrom(groups, c.deps.Icons), reverse)
	if cycle == nil {
		slog.Debug("no applications to switch")
		return
	}
	c.apps = cycle
	c.deps.Painter.Paint(cycle.Candidates(), cycle.Index())
}

func (c *Coordinator) commitApps() {
	if c.apps == nil {
		return
	}
	selected := c.apps.Selected()
	c.apps = nil

	c.activate(selected.Handle)
	c.deps.Painter.Unpaint()
}

func (c *Coordinator) cancelApps() {
	if c.apps == nil {
		return
	}
	c.apps = nil
	c.deps.Painter.Unpaint()
}

func (c *Coordinator) click(x, y int) {
	if c.apps == nil {
		return
	}
	i, ok := c.deps.Painter.CandidateAt(x, y)
	if !ok || !c.apps.Select(i) {
		return
	}
	c.commitApps()
}

func (c *Coordinator) advanceWindows(reverse bool) {
	var target window.Handle
	if c.apps != nil {
		target = c.apps.Selected().Handle
	} else {
		target = c.deps.Foreground.Foreground()
	}
	if target == 0 {
		return
	}

	groups, err := c.deps.Enumerator.ListWindows(c.settings.Windows)
	if err != nil {
		slog.Error("list windows failed", "error", err)
		return
	}

	group, ok := window.FindGroup(groups, target)
	if !ok {
		slog.Debug("target window not found", "hwnd", uintptr(target))
		return
	}

	next, ok := c.windows.Advance(group.AppKey, group.Handles(), reverse)
	if !ok {
		return
	}
	c.activate(next)
}

func (c *Coordinator) activate(h window.Handle) {
	if err := c.deps.Activator.Activate(h); err != nil {
		slog.Debug("activate failed", "hwnd", uintptr(h), "error", err)
	}
}

func (c *Coordinator) reload() {
	if c.deps.Reloader == nil {
		return
	}
	settings, err := c.deps.Reloader.Reload()
	if err != nil {
		slog.Error("reload config failed", "error", err)
		return
	}
	c.settings = settings
	slog.Info("config reloaded")
}

// teardown - единственная точка завершения. Повторные вызовы ничего не делают.
func (c *Coordinator) teardown() {
	c.closeOnce.Do(func() {
		if c.apps != nil {
			c.apps = nil
			c.deps.Painter.Unpaint()
		}
		c.closed = true
		close(c.done)
	})
}
