package window

import (
	"image"
	"log/slog"
	"strings"
	"sync"
)

// IconCache хранит иконки приложений по ключу приложения.
// Отсутствие иконки тоже запоминается.
type IconCache struct {
	mu        sync.Mutex
	icons     map[string]image.Image
	overrides map[string]string

	load     func(Handle) image.Image
	loadFile func(path string) (image.Image, error)
}

// NewIconCache создаёт пустой кэш.
func NewIconCache() *IconCache {
	return &IconCache{
		icons:    make(map[string]image.Image),
		load:     loadIcon,
		loadFile: LoadIconFile,
	}
}

// SetOverrides задаёт пользовательские иконки: имя приложения -> путь к файлу.
// Имя сравнивается как в чёрном списке. Кэш при этом очищается.
func (c *IconCache) SetOverrides(overrides map[string]string) {
	m := make(map[string]string, len(overrides))
	for name, path := range overrides {
		name = strings.ToLower(AppName(strings.TrimSpace(name)))
		if name == "" || path == "" {
			continue
		}
		m[name] = path
	}

	c.mu.Lock()
	c.overrides = m
	c.icons = make(map[string]image.Image)
	c.mu.Unlock()
}

// Icon возвращает иконку приложения или nil.
// Пользовательская иконка важнее иконки окна; если её не удалось
// прочитать, берётся иконка окна.
func (c *IconCache) Icon(appKey string, h Handle) image.Image {
	c.mu.Lock()
	img, ok := c.icons[appKey]
	path := c.overrides[strings.ToLower(AppName(appKey))]
	c.mu.Unlock()
	if ok {
		return img
	}

	if path != "" {
		var err error
		img, err = c.loadFile(path)
		if err != nil {
			slog.Warn("icon override ignored", "app", AppName(appKey), "path", path, "error", err)
			img = nil
		}
	}
	if img == nil {
		img = c.load(h)
	}

	c.mu.Lock()
	c.icons[appKey] = img
	c.mu.Unlock()
	return img
}

// Reset очищает кэш. Пользовательские иконки остаются.
func (c *IconCache) Reset() {
	c.mu.Lock()
	c.icons = make(map[string]image.Image)
	c.mu.Unlock()
}
