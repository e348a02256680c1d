package switcher

import (
	"slices"

	"winswitch/internal/window"
)

// windowCache - последний разрешённый контекст переключения окон.
type windowCache struct {
	appKey string
	anchor window.Handle
	index  int
	order  []window.Handle
}

// WindowCycle хранит «липкий» порядок окон одного приложения между нажатиями.
// Пока модификатор зажат, повторные шаги продолжают обход с того же места;
// после отпускания следующий жест начинается с естественного порядка.
type WindowCycle struct {
	cache            *windowCache
	modifierReleased bool
}

// NewWindowCycle создаёт состояние без кэша.
func NewWindowCycle() *WindowCycle {
	return &WindowCycle{modifierReleased: true}
}

// Advance выбирает следующее окно приложения appKey.
// siblings - окна приложения в z-порядке, siblings[0] - текущее.
// Возвращает false, если переключать нечего.
func (c *WindowCycle) Advance(appKey string, siblings []window.Handle, reverse bool) (window.Handle, bool) {
	n := len(siblings)
	if n <= 1 {
		return 0, false
	}

	anchor := siblings[0]
	order := siblings
	index := 1

	if cache := c.cache; cache != nil && cache.appKey == appKey {
		released := c.modifierReleased
		if !released && !slices.Contains(siblings, cache.anchor) {
			// Якорь закрылся посреди жеста: начинаем заново
			released = true
		}

		if released {
			if cache.anchor != anchor {
				if i := slices.Index(siblings, cache.anchor); i >= 0 {
					index = i
				}
			}
		} else {
			anchor = cache.anchor
			order, index = continueOrder(cache, siblings, reverse)
		}
	}

	if index < 0 || index >= len(order) {
		index = 0
	}

	c.cache = &windowCache{
		appKey: appKey,
		anchor: anchor,
		index:  index,
		order:  slices.Clone(order),
	}
	c.modifierReleased = false

	return order[index], true
}

// Commit отмечает, что модификатор отпущен. Кэш сохраняется.
func (c *WindowCycle) Commit() {
	c.modifierReleased = true
}

// ModifierReleased сообщает, завершён ли предыдущий жест.
func (c *WindowCycle) ModifierReleased() bool {
	return c.modifierReleased
}

// continueOrder восстанавливает рабочий порядок из кэша и сдвигает индекс.
// Выжившие окна идут в порядке кэша, новые добавляются в конец.
func continueOrder(cache *windowCache, siblings []window.Handle, reverse bool) ([]window.Handle, int) {
	order := make([]window.Handle, 0, len(siblings))
	for _, h := range cache.order {
		if slices.Contains(siblings, h) {
			order = append(order, h)
		}
	}
	for _, h := range siblings {
		if !slices.Contains(order, h) {
			order = append(order, h)
		}
	}
	n := len(order)

	var selected window.Handle
	if cache.index >= 0 && cache.index < len(cache.order) {
		selected = cache.order[cache.index]
	}

	if pos := slices.Index(order, selected); pos >= 0 {
		if reverse {
			return order, (pos - 1 + n) % n
		}
		return order, (pos + 1) % n
	}

	// Выбранное окно закрылось: его место занимает следующее выжившее
	k := 0
	for _, h := range cache.order[:min(cache.index, len(cache.order))] {
		if slices.Contains(siblings, h) {
			k++
		}
	}
	if reverse {
		return order, (k - 1 + n) % n
	}
	return order, k % n
}
