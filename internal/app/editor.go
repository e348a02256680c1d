package app

import (
	"log/slog"
	"os/exec"
	"runtime"
)

// editorCommand возвращает команду, открывающую файл в редакторе по умолчанию.
func editorCommand(goos, path string) (string, []string) {
	switch goos {
	case "windows":
		return "notepad.exe", []string{path}
	case "darwin":
		return "open", []string{"-t", path}
	default:
		return "xdg-open", []string{path}
	}
}

// openEditor запускает редактор и не ждёт его закрытия.
func openEditor(path string) error {
	name, args := editorCommand(runtime.GOOS, path)
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			slog.Debug("editor exited", "error", err)
		}
	}()
	return nil
}
