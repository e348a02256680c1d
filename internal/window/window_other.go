//go:build !windows && !linux

package window

import "image"

// Desktop не поддерживается на этой платформе.
type Desktop struct{}

// NewDesktop возвращает ErrUnsupported.
func NewDesktop() (*Desktop, error) {
	return nil, ErrUnsupported
}

func (d *Desktop) ListWindows(ListOptions) ([]Group, error) { return nil, ErrUnsupported }

func (d *Desktop) Foreground() Handle { return 0 }

func (d *Desktop) Activate(Handle) error { return ErrUnsupported }

// IsElevated всегда false.
func IsElevated() bool { return false }

func loadIcon(Handle) image.Image { return nil }
