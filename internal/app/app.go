// Package app содержит основную логику приложения.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	"winswitch/internal/config"
	"winswitch/internal/dialog"
	"winswitch/internal/hook"
	"winswitch/internal/hotkey"
	"winswitch/internal/i18n"
	"winswitch/internal/logging"
	"winswitch/internal/notify"
	"winswitch/internal/overlay"
	"winswitch/internal/singleinstance"
	"winswitch/internal/startup"
	"winswitch/internal/switcher"
	"winswitch/internal/tray"
	"winswitch/internal/window"
)

// Options - параметры запуска приложения.
type Options struct {
	ConfigPath   string
	Config       *config.Config
	InstanceName string // имя для сигнала перечитывания настроек
}

// App представляет главное приложение.
type App struct {
	mu            sync.Mutex
	configPath    string
	config        *config.Config
	elevated      bool
	foregroundKey string
	trayShown     bool

	desktop     *window.Desktop
	icons       *window.IconCache
	mailbox     *switcher.Mailbox
	coordinator *switcher.Coordinator
	overlay     *overlay.Window
	listener    *hook.Listener
	notifier    *notify.Notifier
	tray        *tray.Tray
	startup     *startup.Startup
	watcher     *config.Watcher
	reloads     *singleinstance.ReloadListener
	foreground  *window.ForegroundWatcher

	closeOnce sync.Once
	closeErr  error
}

// New создаёт новое приложение и устанавливает хук клавиатуры.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	// Инициализируем язык интерфейса из конфига
	i18n.SetLanguage(i18n.Parse(cfg.Language))

	bindings, err := cfg.Bindings()
	if err != nil {
		return nil, fmt.Errorf("hotkeys: %w", err)
	}

	desktop, err := window.NewDesktop()
	if err != nil {
		return nil, fmt.Errorf("window backend: %w", err)
	}

	app := &App{
		configPath: opts.ConfigPath,
		config:     cfg,
		elevated:   window.IsElevated(),
		desktop:    desktop,
		icons:      window.NewIconCache(),
		mailbox:    switcher.NewMailbox(),
		overlay:    overlay.New(overlay.DefaultConfig()),
		notifier:   notify.New(cfg.TrayIcon),
		trayShown:  cfg.TrayIcon,
	}

	app.icons.SetOverrides(cfg.IconOverrides(filepath.Dir(opts.ConfigPath)))

	// Клик по кандидату проходит через ту же очередь, что и клавиши
	app.overlay.OnClick(func(x, y int) {
		app.mailbox.Post(switcher.Click(x, y))
	})

	app.coordinator = switcher.NewCoordinator(switcher.Deps{
		Enumerator: desktop,
		Activator:  desktop,
		Foreground: desktop,
		Painter:    app.overlay,
		Icons:      app.icons,
		Reloader:   app,
	}, app.settings(cfg))

	if st, err := startup.New(); err != nil {
		slog.Warn("run at login unavailable", "error", err)
	} else {
		app.startup = st
	}

	app.tray = tray.New(tray.Callbacks{
		OnStartupToggle: app.toggleStartup,
		OnConfigure:     app.configure,
		OnQuit: func() {
			app.mailbox.Post(switcher.Intent{Kind: switcher.IntentExit})
		},
	}, app.startup != nil && app.startup.Enabled())

	app.listener, err = hook.Start(bindings, app.mailbox)
	if err != nil {
		return nil, fmt.Errorf("install keyboard hook: %w", err)
	}

	app.startWatchers(opts.InstanceName)

	slog.Info("switcher started",
		"config", opts.ConfigPath,
		"hotkeys", len(bindings),
		"elevated", app.elevated,
	)
	return app, nil
}

// startWatchers подключает необязательные источники событий.
// Их ошибки не мешают работе переключателя.
func (a *App) startWatchers(instanceName string) {
	if a.configPath != "" {
		w, err := config.Watch(a.configPath, a.requestReload)
		if err != nil {
			slog.Warn("config watcher disabled", "error", err)
		} else {
			a.watcher = w
		}
	}

	if instanceName != "" {
		l, err := singleinstance.ListenReload(instanceName, a.requestReload)
		if err != nil {
			slog.Warn("reload signal disabled", "error", err)
		} else {
			a.reloads = l
		}
	}

	fw, err := window.WatchForeground(a.onForeground)
	switch {
	case errors.Is(err, window.ErrUnsupported):
		slog.Debug("foreground tracking unsupported, blacklist disabled")
	case err != nil:
		slog.Warn("foreground tracking disabled", "error", err)
	default:
		a.foreground = fw
	}
}

// Run запускает координатор и трей. Блокирует до выхода.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.coordinator.Run(ctx, a.mailbox)
	}()

	if a.trayShown {
		go func() {
			<-a.coordinator.Done()
			a.tray.Quit()
		}()
		a.tray.Run(a.notifier.Ready)
		// Трей мог закрыться сам, координатор должен завершиться вслед за ним
		a.mailbox.Post(switcher.Intent{Kind: switcher.IntentExit})
	}

	err := <-errCh
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	return errors.Join(err, a.Close())
}

// Reload перечитывает конфиг. Вызывается координатором из его горутины.
func (a *App) Reload() (switcher.Settings, error) {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		dialog.ShowErrorAsync(i18n.T("error_title"), i18n.T("error_reload")+":\n"+err.Error())
		return switcher.Settings{}, err
	}
	bindings, err := cfg.Bindings()
	if err != nil {
		dialog.ShowErrorAsync(i18n.T("error_title"), i18n.T("error_reload")+":\n"+err.Error())
		return switcher.Settings{}, err
	}

	a.listener.SetBindings(bindings)
	i18n.SetLanguage(i18n.Parse(cfg.Language))
	if err := logging.SetLevel(cfg.LogLevel); err != nil {
		slog.Warn("keep log level", "error", err)
	}
	a.icons.SetOverrides(cfg.IconOverrides(filepath.Dir(a.configPath)))

	a.mu.Lock()
	a.config = cfg
	foregroundKey := a.foregroundKey
	trayShown := a.trayShown
	a.mu.Unlock()

	// Чёрный список мог измениться для текущего окна
	if foregroundKey != "" {
		a.onForeground(foregroundKey)
	}

	if trayShown {
		a.tray.RefreshUI()
		a.notifier.Reloaded()
	} else {
		dialog.ShowInfoAsync(i18n.T("app_name"), i18n.T("notify_reloaded"))
	}
	return a.settings(cfg), nil
}

func (a *App) settings(cfg *config.Config) switcher.Settings {
	return switcher.Settings{
		Apps:    cfg.AppsFilter(a.elevated),
		Windows: cfg.WindowsFilter(a.elevated),
	}
}

func (a *App) requestReload() {
	a.mailbox.Post(switcher.Intent{Kind: switcher.IntentReload})
}

// onForeground блокирует переключение окон в приложениях из чёрного списка.
func (a *App) onForeground(appKey string) {
	a.mu.Lock()
	a.foregroundKey = appKey
	blocked := window.MatchesBlacklist(appKey, a.config.SwitchWindows.Blacklist)
	a.mu.Unlock()

	if a.listener != nil {
		a.listener.SetBlocked(hotkey.SwitchWindows, blocked)
	}
}

func (a *App) toggleStartup() (bool, error) {
	if a.startup == nil {
		return false, startup.ErrUnsupported
	}
	enabled, err := a.startup.Toggle()
	if err != nil {
		dialog.ShowErrorAsync(i18n.T("error_title"), i18n.T("error_startup")+":\n"+err.Error())
	}
	return enabled, err
}

// configure создаёт файл настроек при необходимости и открывает его в редакторе.
func (a *App) configure() {
	err := config.WriteDefault(a.configPath)
	if err == nil {
		err = openEditor(a.configPath)
	}
	if err != nil {
		slog.Error("open config", "path", a.configPath, "error", err)
		dialog.ShowErrorAsync(i18n.T("error_title"), i18n.T("error_configure")+":\n"+err.Error())
	}
}

// Close освобождает ресурсы приложения. Повторные вызовы ничего не делают.
func (a *App) Close() error {
	a.closeOnce.Do(func() {
		var errs []error
		if a.foreground != nil {
			errs = append(errs, a.foreground.Close())
		}
		if a.reloads != nil {
			errs = append(errs, a.reloads.Close())
		}
		if a.watcher != nil {
			errs = append(errs, a.watcher.Close())
		}
		if a.listener != nil {
			errs = append(errs, a.listener.Stop())
		}
		a.overlay.Unpaint()
		a.closeErr = errors.Join(errs...)
	})
	return a.closeErr
}
