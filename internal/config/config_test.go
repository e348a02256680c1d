package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winswitch/internal/hotkey"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.TrayIcon)
	assert.True(t, cfg.SwitchWindows.Enable)
	assert.Equal(t, "alt+`", cfg.SwitchWindows.Hotkey)
	assert.False(t, cfg.SwitchApps.Enable)
	assert.Equal(t, "alt+tab", cfg.SwitchApps.Hotkey)

	bindings, err := cfg.Bindings()
	require.NoError(t, err)
	require.Len(t, bindings, 1)
	assert.Equal(t, hotkey.SwitchWindows, bindings[0].ID)
}

func TestDefaultTemplateMatchesDefaults(t *testing.T) {
	cfg, err := Parse(defaultTemplate)
	require.NoError(t, err)

	want := Default()
	assert.Empty(t, cfg.SwitchWindows.Blacklist)
	cfg.SwitchWindows.Blacklist = nil
	assert.Equal(t, want, cfg)
}

func TestParseOverridesDefaults(t *testing.T) {
	data := []byte(`
trayicon = false
language = "ru"
log_level = "debug"

[switch_windows]
hotkey = "ctrl+q"
blacklist = ["mstsc.exe"]

[switch_apps]
enable = true
ignore_minimal = true
`)
	cfg, err := Parse(data)
	require.NoError(t, err)

	assert.False(t, cfg.TrayIcon)
	assert.Equal(t, "ru", cfg.Language)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.SwitchWindows.Enable, "unset keys keep defaults")
	assert.Equal(t, "ctrl+q", cfg.SwitchWindows.Hotkey)
	assert.Equal(t, []string{"mstsc.exe"}, cfg.SwitchWindows.Blacklist)
	assert.True(t, cfg.SwitchApps.Enable)
	assert.Equal(t, "alt+tab", cfg.SwitchApps.Hotkey)

	bindings, err := cfg.Bindings()
	require.NoError(t, err)
	assert.Len(t, bindings, 2)

	apps := cfg.AppsFilter(true)
	assert.True(t, apps.IgnoreMinimized)
	assert.True(t, apps.CurrentDesktopOnly)
	assert.True(t, apps.Elevated)
	assert.False(t, cfg.WindowsFilter(false).IgnoreMinimized)
}

func TestIconOverrides(t *testing.T) {
	abs := filepath.Join(t.TempDir(), "code.ico")
	data := []byte(`
[switch_apps.override_icons]
firefox = "icons/firefox.png"
empty = "  "
`)
	cfg, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, cfg.SwitchApps.OverrideIcons, 2)
	cfg.SwitchApps.OverrideIcons["Code.exe"] = abs

	base := filepath.Join("home", "user")
	got := cfg.IconOverrides(base)
	assert.Equal(t, map[string]string{
		"firefox":  filepath.Join(base, "icons", "firefox.png"),
		"Code.exe": abs,
	}, got)

	assert.Nil(t, Default().IconOverrides(base))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad toml", "trayicon = "},
		{"wrong type", "trayicon = \"yes\""},
		{"bad hotkey", "[switch_windows]\nhotkey = \"alt+pause\""},
		{"bad level", "log_level = \"loud\""},
		{"conflict", "[switch_apps]\nenable = true\nhotkey = \"alt+`\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestDisabledHotkeyNotValidated(t *testing.T) {
	cfg, err := Parse([]byte("[switch_apps]\nenable = false\nhotkey = \"nonsense\""))
	require.NoError(t, err)
	assert.False(t, cfg.SwitchApps.Enable)
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte("[switch_windows\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", FileName)
	require.NoError(t, WriteDefault(path))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.SwitchWindows.Enable)

	// Существующий файл не перезаписывается
	require.NoError(t, os.WriteFile(path, []byte("trayicon = false\n"), 0o644))
	require.NoError(t, WriteDefault(path))
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.False(t, cfg.TrayIcon)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, FileName, filepath.Base(path))
}

func TestWatcherDebounces(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("trayicon = true\n"), 0o644))

	changes := make(chan struct{}, 10)
	w, err := Watch(path, func() { changes <- struct{}{} })
	require.NoError(t, err)
	defer w.Close()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("trayicon = false\n"), 0o644))
	}
	// Изменение другого файла игнорируется
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-changes:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	time.Sleep(3 * debounceDelay)
	assert.Empty(t, changes, "rapid writes collapse into one notification")

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
