//go:build !windows

package window

// ForegroundWatcher не поддерживается вне Windows.
type ForegroundWatcher struct{}

// WatchForeground возвращает ErrUnsupported.
func WatchForeground(func(appKey string)) (*ForegroundWatcher, error) {
	return nil, ErrUnsupported
}

// Close ничего не делает.
func (w *ForegroundWatcher) Close() error { return nil }
