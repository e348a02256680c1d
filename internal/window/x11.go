package window

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// x11Window - строка вывода wmctrl -lp.
type x11Window struct {
	id      uint64
	desktop int
	pid     int
	title   string
}

// rootProps - свойства корневого окна EWMH.
type rootProps struct {
	stacking       []uint64 // снизу вверх
	active         uint64
	currentDesktop int
}

// parseWmctrl разбирает вывод `wmctrl -lp`:
// "0x02400007  0 12345  host Заголовок окна".
func parseWmctrl(out string) ([]x11Window, error) {
	var list []x11Window
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, fmt.Errorf("wmctrl: malformed line %q", line)
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(fields[0], "0x"), 16, 64)
		if err != nil {
			return nil, fmt.Errorf("wmctrl: bad window id %q: %w", fields[0], err)
		}
		desktop, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("wmctrl: bad desktop %q: %w", fields[1], err)
		}
		pid, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("wmctrl: bad pid %q: %w", fields[2], err)
		}

		// Заголовок - всё после имени хоста, с сохранением пробелов
		rest := line
		for i := 0; i < 4; i++ {
			rest = strings.TrimLeft(rest, " \t")
			if j := strings.IndexAny(rest, " \t"); j >= 0 {
				rest = rest[j:]
			} else {
				rest = ""
			}
		}
		list = append(list, x11Window{id: id, desktop: desktop, pid: pid, title: strings.TrimSpace(rest)})
	}
	return list, sc.Err()
}

// parseRootProps разбирает вывод
// `xprop -root _NET_CLIENT_LIST_STACKING _NET_ACTIVE_WINDOW _NET_CURRENT_DESKTOP`.
func parseRootProps(out string) rootProps {
	var p rootProps
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := sc.Text()
		name, value, ok := splitProp(line)
		if !ok {
			continue
		}
		switch name {
		case "_NET_CLIENT_LIST_STACKING":
			p.stacking = parseIDs(value)
		case "_NET_ACTIVE_WINDOW":
			if ids := parseIDs(value); len(ids) > 0 {
				p.active = ids[0]
			}
		case "_NET_CURRENT_DESKTOP":
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				p.currentDesktop = n
			}
		}
	}
	return p
}

// splitProp делит строку xprop на имя свойства и значение.
func splitProp(line string) (name, value string, ok bool) {
	i := strings.IndexByte(line, '(')
	if i <= 0 {
		return "", "", false
	}
	name = line[:i]
	switch {
	case strings.Contains(line, "# "):
		value = line[strings.Index(line, "# ")+2:]
	case strings.Contains(line, "= "):
		value = line[strings.Index(line, "= ")+2:]
	default:
		return "", "", false
	}
	return name, value, true
}

func parseIDs(value string) []uint64 {
	var ids []uint64
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(strings.TrimPrefix(part, "0x"), 16, 64)
		if err != nil || id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// parseWindowState возвращает (свёрнуто, скрыто от панели задач)
// по выводу `xprop -id ID _NET_WM_STATE`.
func parseWindowState(out string) (hidden, skipTaskbar bool) {
	return strings.Contains(out, "_NET_WM_STATE_HIDDEN"),
		strings.Contains(out, "_NET_WM_STATE_SKIP_TASKBAR")
}

// windowState - нужная часть _NET_WM_STATE.
type windowState struct {
	hidden      bool
	skipTaskbar bool
}

type stateEntry struct {
	state windowState
	at    time.Time
}

// stateCache помнит _NET_WM_STATE окон недолго (ttl), чтобы серия нажатий
// не запускала xprop на каждое окно. Активация окна сбрасывает его запись.
type stateCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	query   func(id uint64) (windowState, error)
	entries map[uint64]stateEntry
}

func newStateCache(ttl time.Duration, query func(id uint64) (windowState, error)) *stateCache {
	return &stateCache{
		ttl:     ttl,
		now:     time.Now,
		query:   query,
		entries: make(map[uint64]stateEntry),
	}
}

// lookup возвращает состояния окон ids. Окна, состояние которых
// прочитать не удалось, в результат не попадают. Записи закрытых окон удаляются.
func (c *stateCache) lookup(ids []uint64) map[uint64]windowState {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	alive := make(map[uint64]bool, len(ids))
	out := make(map[uint64]windowState, len(ids))
	for _, id := range ids {
		alive[id] = true
		if e, ok := c.entries[id]; ok && now.Sub(e.at) < c.ttl {
			out[id] = e.state
			continue
		}
		st, err := c.query(id)
		if err != nil {
			delete(c.entries, id)
			continue
		}
		c.entries[id] = stateEntry{state: st, at: now}
		out[id] = st
	}

	for id := range c.entries {
		if !alive[id] {
			delete(c.entries, id)
		}
	}
	return out
}

func (c *stateCache) forget(id uint64) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// orderByStacking упорядочивает окна сверху вниз по стеку EWMH.
// Окна, которых нет в стеке, идут в конце в исходном порядке.
func orderByStacking(list []x11Window, stacking []uint64) []x11Window {
	byID := make(map[uint64]x11Window, len(list))
	for _, w := range list {
		byID[w.id] = w
	}

	out := make([]x11Window, 0, len(list))
	seen := make(map[uint64]bool, len(list))
	for i := len(stacking) - 1; i >= 0; i-- {
		id := stacking[i]
		if w, ok := byID[id]; ok && !seen[id] {
			out = append(out, w)
			seen[id] = true
		}
	}
	for _, w := range list {
		if !seen[w.id] {
			out = append(out, w)
		}
	}
	return out
}
