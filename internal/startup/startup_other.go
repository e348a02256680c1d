//go:build !windows && !linux

package startup

func isRegistered(string) (bool, error) { return false, ErrUnsupported }

func register(string) error { return ErrUnsupported }

func unregister() error { return ErrUnsupported }
