//go:build linux

package overlay

import (
	"bufio"
	"image"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"gioui.org/app"
	"gioui.org/io/event"
	"gioui.org/unit"
)

type platform struct{}

func (p *platform) shown(_ *app.Window, _ image.Point) {
	go positionWindow(windowTitle)
}

func (p *platform) viewEvent(event.Event) {}

func (p *platform) resize(win *app.Window, size image.Point) {
	win.Option(app.Size(unit.Dp(size.X), unit.Dp(size.Y)))
	go positionWindow(windowTitle)
}

// positionWindow centers the window on the screen and sets it to always-on-top.
// This function should be called after the window is created.
func positionWindow(windowTitle string) {
	// Give the window time to appear
	time.Sleep(100 * time.Millisecond)

	screenWidth, screenHeight := getScreenSize()
	if screenWidth == 0 || screenHeight == 0 {
		return
	}

	// Find window by title
	output, err := exec.Command("xdotool", "search", "--name", windowTitle).Output()
	if err != nil {
		return
	}
	windowIDs := strings.Fields(string(output))
	if len(windowIDs) == 0 {
		return
	}
	windowID := windowIDs[0]

	output, err = exec.Command("xdotool", "getwindowgeometry", "--shell", windowID).Output()
	if err != nil {
		return
	}
	width, height := parseGeometry(string(output))
	if width == 0 || height == 0 {
		return
	}

	x := (screenWidth - width) / 2
	y := (screenHeight - height) / 2
	exec.Command("xdotool", "windowmove", windowID, strconv.Itoa(x), strconv.Itoa(y)).Run()

	// Try to set always-on-top using wmctrl
	if err := exec.Command("wmctrl", "-i", "-r", windowID, "-b", "add,above,skip_taskbar").Run(); err != nil {
		// wmctrl might not be installed, try xprop alternative
		exec.Command("xprop", "-id", windowID, "-f", "_NET_WM_STATE", "32a",
			"-set", "_NET_WM_STATE", "_NET_WM_STATE_ABOVE").Run()
	}
}

// getScreenSize returns the screen dimensions using xdotool.
func getScreenSize() (width, height int) {
	output, err := exec.Command("xdotool", "getdisplaygeometry").Output()
	if err != nil {
		return 0, 0
	}

	parts := strings.Fields(string(output))
	if len(parts) != 2 {
		return 0, 0
	}

	width, _ = strconv.Atoi(parts[0])
	height, _ = strconv.Atoi(parts[1])
	return width, height
}

// parseGeometry reads WIDTH and HEIGHT from `xdotool getwindowgeometry --shell`.
func parseGeometry(out string) (width, height int) {
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok {
			continue
		}
		switch key {
		case "WIDTH":
			width, _ = strconv.Atoi(value)
		case "HEIGHT":
			height, _ = strconv.Atoi(value)
		}
	}
	return width, height
}
