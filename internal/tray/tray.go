// Package tray предоставляет системный трей с меню.
package tray

import (
	"log/slog"

	"github.com/getlantern/systray"

	"winswitch/internal/i18n"
	"winswitch/internal/icon"
)

// Callbacks содержит обработчики событий меню.
type Callbacks struct {
	// OnStartupToggle переключает автозапуск и возвращает новое состояние.
	OnStartupToggle func() (bool, error)
	OnConfigure     func()
	OnQuit          func()
}

// Tray управляет иконкой в системном трее.
type Tray struct {
	callbacks    Callbacks
	startup      bool
	startupBtn   *systray.MenuItem
	configureBtn *systray.MenuItem
	quitBtn      *systray.MenuItem
	quit         chan struct{}
}

// New создаёт новый Tray. startup - текущее состояние автозапуска.
func New(callbacks Callbacks, startup bool) *Tray {
	return &Tray{
		callbacks: callbacks,
		startup:   startup,
		quit:      make(chan struct{}),
	}
}

// Run запускает системный трей. Блокирующая функция.
func (t *Tray) Run(onReady func()) {
	systray.Run(func() {
		t.onReady()
		if onReady != nil {
			onReady()
		}
	}, t.onExit)
}

func (t *Tray) onReady() {
	systray.SetIcon(icon.Tray())
	systray.SetTitle(i18n.T("app_name"))
	systray.SetTooltip(i18n.T("app_tooltip"))

	// Автозапуск
	t.startupBtn = systray.AddMenuItemCheckbox(i18n.T("tray_startup"), i18n.T("tray_startup_hint"), t.startup)

	// Настройки
	t.configureBtn = systray.AddMenuItem(i18n.T("tray_configure"), i18n.T("tray_configure_hint"))

	systray.AddSeparator()

	// Выход
	t.quitBtn = systray.AddMenuItem(i18n.T("tray_quit"), i18n.T("tray_quit_hint"))

	// Обработка событий меню
	go t.handleMenuEvents()
}

func (t *Tray) handleMenuEvents() {
	for {
		select {
		case <-t.quit:
			return

		// Автозапуск
		case <-t.startupBtn.ClickedCh:
			if t.callbacks.OnStartupToggle == nil {
				continue
			}
			enabled, err := t.callbacks.OnStartupToggle()
			if err != nil {
				slog.Warn("toggle startup", "error", err)
			}
			if enabled {
				t.startupBtn.Check()
			} else {
				t.startupBtn.Uncheck()
			}

		// Настройки
		case <-t.configureBtn.ClickedCh:
			if t.callbacks.OnConfigure != nil {
				t.callbacks.OnConfigure()
			}

		// Выход: само закрытие трея делает владелец через Quit,
		// когда координатор завершит работу.
		case <-t.quitBtn.ClickedCh:
			if t.callbacks.OnQuit != nil {
				t.callbacks.OnQuit()
			} else {
				systray.Quit()
			}
		}
	}
}

func (t *Tray) onExit() {
	select {
	case <-t.quit:
	default:
		close(t.quit)
	}
}

// Quit закрывает системный трей.
func (t *Tray) Quit() {
	systray.Quit()
}

// RefreshUI обновляет все тексты меню на текущем языке.
func (t *Tray) RefreshUI() {
	systray.SetTooltip(i18n.T("app_tooltip"))

	if t.startupBtn != nil {
		t.startupBtn.SetTitle(i18n.T("tray_startup"))
		t.startupBtn.SetTooltip(i18n.T("tray_startup_hint"))
	}
	if t.configureBtn != nil {
		t.configureBtn.SetTitle(i18n.T("tray_configure"))
		t.configureBtn.SetTooltip(i18n.T("tray_configure_hint"))
	}
	if t.quitBtn != nil {
		t.quitBtn.SetTitle(i18n.T("tray_quit"))
		t.quitBtn.SetTooltip(i18n.T("tray_quit_hint"))
	}
}
