// Package config загружает настройки из TOML-файла рядом с бинарником.
package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"winswitch/internal/hotkey"
	"winswitch/internal/window"
)

// FileName - имя файла конфигурации.
const FileName = "winswitch.toml"

//go:embed default.toml
var defaultTemplate []byte

// SwitchWindows - настройки переключения окон одного приложения.
type SwitchWindows struct {
	Enable             bool     `toml:"enable"`
	Hotkey             string   `toml:"hotkey"`
	IgnoreMinimal      bool     `toml:"ignore_minimal"`
	OnlyCurrentDesktop bool     `toml:"only_current_desktop"`
	Blacklist          []string `toml:"blacklist"`
}

// SwitchApps - настройки переключения приложений.
type SwitchApps struct {
	Enable             bool   `toml:"enable"`
	Hotkey             string `toml:"hotkey"`
	IgnoreMinimal      bool   `toml:"ignore_minimal"`
	OnlyCurrentDesktop bool   `toml:"only_current_desktop"`
	// OverrideIcons: имя приложения -> путь к своей иконке.
	OverrideIcons map[string]string `toml:"override_icons"`
}

// Config - настройки приложения. После загрузки не изменяется.
type Config struct {
	TrayIcon      bool          `toml:"trayicon"`
	Language      string        `toml:"language"`
	LogLevel      string        `toml:"log_level"`
	LogFile       string        `toml:"log_file"`
	SwitchWindows SwitchWindows `toml:"switch_windows"`
	SwitchApps    SwitchApps    `toml:"switch_apps"`
}

// Default возвращает настройки по умолчанию.
func Default() *Config {
	return &Config{
		TrayIcon: true,
		Language: "en",
		LogLevel: "info",
		SwitchWindows: SwitchWindows{
			Enable:             true,
			Hotkey:             "alt+`",
			OnlyCurrentDesktop: true,
		},
		SwitchApps: SwitchApps{
			Enable:             false,
			Hotkey:             "alt+tab",
			OnlyCurrentDesktop: true,
		},
	}
}

// DefaultPath возвращает путь к конфигу рядом с исполняемым файлом.
func DefaultPath() (string, error) {
	execPath, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	// Резолвим симлинки
	if resolved, err := filepath.EvalSymlinks(execPath); err == nil {
		execPath = resolved
	}
	return filepath.Join(filepath.Dir(execPath), FileName), nil
}

// Load читает конфиг. Если файла нет, возвращаются настройки по умолчанию.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse разбирает TOML поверх настроек по умолчанию и проверяет результат.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	for _, key := range md.Undecoded() {
		slog.Warn("unknown config key", "key", key.String())
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет горячие клавиши и значения перечислений.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log_level: unknown level %q", c.LogLevel))
	}

	if _, err := c.Bindings(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Bindings возвращает включённые горячие клавиши.
func (c *Config) Bindings() ([]hotkey.Binding, error) {
	var out []hotkey.Binding

	if c.SwitchWindows.Enable {
		b, err := hotkey.ParseBinding(hotkey.SwitchWindows, c.SwitchWindows.Hotkey)
		if err != nil {
			return nil, fmt.Errorf("switch_windows.hotkey: %w", err)
		}
		out = append(out, b)
	}
	if c.SwitchApps.Enable {
		b, err := hotkey.ParseBinding(hotkey.SwitchApps, c.SwitchApps.Hotkey)
		if err != nil {
			return nil, fmt.Errorf("switch_apps.hotkey: %w", err)
		}
		out = append(out, b)
	}

	if err := hotkey.ValidateBindings(out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppsFilter - фильтры перечисления для переключения приложений.
func (c *Config) AppsFilter(elevated bool) window.ListOptions {
	return window.ListOptions{
		IgnoreMinimized:    c.SwitchApps.IgnoreMinimal,
		CurrentDesktopOnly: c.SwitchApps.OnlyCurrentDesktop,
		Elevated:           elevated,
	}
}

// WindowsFilter - фильтры перечисления для переключения окон.
func (c *Config) WindowsFilter(elevated bool) window.ListOptions {
	return window.ListOptions{
		IgnoreMinimized:    c.SwitchWindows.IgnoreMinimal,
		CurrentDesktopOnly: c.SwitchWindows.OnlyCurrentDesktop,
		Elevated:           elevated,
	}
}

// IconOverrides возвращает пользовательские иконки.
// Относительные пути считаются от каталога baseDir (каталог конфига).
func (c *Config) IconOverrides(baseDir string) map[string]string {
	if len(c.SwitchApps.OverrideIcons) == 0 {
		return nil
	}
	out := make(map[string]string, len(c.SwitchApps.OverrideIcons))
	for name, path := range c.SwitchApps.OverrideIcons {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if !filepath.IsAbs(path) && baseDir != "" {
			path = filepath.Join(baseDir, path)
		}
		out[name] = path
	}
	return out
}

// WriteDefault создаёт файл с шаблоном настроек, если его ещё нет.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, defaultTemplate, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
