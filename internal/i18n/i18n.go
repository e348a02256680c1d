// Package i18n provides internationalization support.
package i18n

import (
	"strings"
	"sync"
)

// Language represents a UI language.
type Language string

const (
	RU Language = "ru"
	EN Language = "en"
)

var (
	mu      sync.RWMutex
	current = EN // Default language
)

// Translations for all supported languages.
var translations = map[Language]map[string]string{
	RU: {
		// App
		"app_name":    "WinSwitch",
		"app_tooltip": "WinSwitch - переключение окон",

		// Tray menu
		"tray_startup":        "Запускать при входе",
		"tray_startup_hint":   "Запускать WinSwitch при входе в систему",
		"tray_configure":      "Настроить...",
		"tray_configure_hint": "Открыть файл настроек",
		"tray_quit":           "Выход",
		"tray_quit_hint":      "Закрыть приложение",

		// Notifications
		"notify_ready":    "WinSwitch запущен",
		"notify_reloaded": "Настройки перечитаны",
		"notify_error":    "Ошибка",

		// Errors
		"error_title":     "WinSwitch",
		"error_reload":    "Не удалось перечитать настройки",
		"error_startup":   "Не удалось изменить автозапуск",
		"error_configure": "Не удалось открыть файл настроек",
		"error_fatal":     "Не удалось запустить WinSwitch",
	},
	EN: {
		// App
		"app_name":    "WinSwitch",
		"app_tooltip": "WinSwitch - window switcher",

		// Tray menu
		"tray_startup":        "Run at startup",
		"tray_startup_hint":   "Start WinSwitch when you sign in",
		"tray_configure":      "Configure...",
		"tray_configure_hint": "Open the configuration file",
		"tray_quit":           "Exit",
		"tray_quit_hint":      "Close the application",

		// Notifications
		"notify_ready":    "WinSwitch is running",
		"notify_reloaded": "Configuration reloaded",
		"notify_error":    "Error",

		// Errors
		"error_title":     "WinSwitch",
		"error_reload":    "Failed to reload configuration",
		"error_startup":   "Failed to change run at startup",
		"error_configure": "Failed to open the configuration file",
		"error_fatal":     "Failed to start WinSwitch",
	},
}

// T returns translated string for the given key.
func T(key string) string {
	mu.RLock()
	defer mu.RUnlock()

	if tr, ok := translations[current]; ok {
		if s, ok := tr[key]; ok {
			return s
		}
	}
	// Fallback to key itself
	return key
}

// SetLanguage sets the current UI language. Unknown languages fall back to English.
func SetLanguage(lang Language) {
	if _, ok := translations[lang]; !ok {
		lang = EN
	}
	mu.Lock()
	defer mu.Unlock()
	current = lang
}

// Parse converts a config value like "RU" or "ru-RU" to a Language.
func Parse(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	lang := Language(s)
	if _, ok := translations[lang]; ok {
		return lang
	}
	return EN
}

// GetLanguage returns the current UI language.
func GetLanguage() Language {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// AvailableLanguages returns list of supported languages.
func AvailableLanguages() []Language {
	return []Language{RU, EN}
}

// LanguageName returns display name for a language.
func LanguageName(lang Language) string {
	switch lang {
	case RU:
		return "Русский"
	case EN:
		return "English"
	default:
		return string(lang)
	}
}
