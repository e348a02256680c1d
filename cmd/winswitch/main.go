// WinSwitch - переключатель окон и приложений по горячим клавишам.
//
// Работает в системном трее. Alt+` листает окна текущего приложения,
// Alt+Tab (если включён) показывает оверлей со списком приложений.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"winswitch/internal/app"
	"winswitch/internal/config"
	"winswitch/internal/dialog"
	"winswitch/internal/hotkey"
	"winswitch/internal/i18n"
	"winswitch/internal/logging"
	"winswitch/internal/singleinstance"
)

// Version устанавливается при сборке через -ldflags.
var Version = "dev"

func main() {
	// Запускаем в главном потоке (требование для macOS и некоторых GUI)
	hotkey.RunOnMainThread(func() {
		if err := run(); err != nil {
			slog.Error("fatal", "error", err)
			dialog.ShowError(i18n.T("error_title"), i18n.T("error_fatal")+":\n"+err.Error())
			os.Exit(1)
		}
	})
}

func run() error {
	path, err := config.DefaultPath()
	if err != nil {
		return err
	}

	cfg, cfgErr := config.Load(path)
	if cfgErr != nil {
		// Битый конфиг не мешает запуску: работаем на значениях по умолчанию
		cfg = config.Default()
	}

	closer, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("setup logging: %w", err)
	}
	defer closer.Close()

	slog.Info("winswitch starting", "version", Version, "config", path)
	if cfgErr != nil {
		slog.Warn("config ignored, using defaults", "error", cfgErr)
		i18n.SetLanguage(i18n.Parse(cfg.Language))
		dialog.ShowErrorAsync(i18n.T("error_title"), i18n.T("error_reload")+":\n"+cfgErr.Error())
	}

	name := singleinstance.DefaultName()
	lock, err := singleinstance.TryLock(name)
	if errors.Is(err, singleinstance.ErrAlreadyRunning) {
		// Второй запуск просит работающую копию перечитать настройки
		slog.Info("already running, asking it to reload")
		return singleinstance.SignalReload(name)
	}
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer lock.Release()

	application, err := app.New(app.Options{
		ConfigPath:   path,
		Config:       cfg,
		InstanceName: name,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = application.Run(ctx)
	slog.Info("winswitch stopped")
	return err
}
