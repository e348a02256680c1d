package switcher

import (
	"image"

	"winswitch/internal/window"
)

// Candidate - одно приложение в оверлее.
type Candidate struct {
	AppKey string
	Name   string
	Title  string
	Handle window.Handle
	// Icon может быть nil: тогда оверлей рисует первую букву имени.
	Icon image.Image
}

// AppCycle - активный жест переключения приложений.
// Существует только между первым шагом и подтверждением или отменой.
type AppCycle struct {
	candidates []Candidate
	index      int
}

// NewAppCycle начинает жест. Возвращает nil, если кандидатов нет.
func NewAppCycle(candidates []Candidate, reverse bool) *AppCycle {
	n := len(candidates)
	if n == 0 {
		return nil
	}

	index := 1
	switch {
	case n == 1:
		index = 0
	case reverse:
		index = n - 1
	}

	return &AppCycle{candidates: candidates, index: index}
}

// Advance сдвигает выбор на один шаг с переходом через край.
func (c *AppCycle) Advance(reverse bool) {
	n := len(c.candidates)
	if reverse {
		c.index = (c.index - 1 + n) % n
	} else {
		c.index = (c.index + 1) % n
	}
}

// Select выбирает кандидата напрямую (щелчок по оверлею).
func (c *AppCycle) Select(i int) bool {
	if i < 0 || i >= len(c.candidates) {
		return false
	}
	c.index = i
	return true
}

// Index возвращает текущую позицию.
func (c *AppCycle) Index() int { return c.index }

// Selected возвращает выбранного кандидата.
func (c *AppCycle) Selected() Candidate { return c.candidates[c.index] }

// Candidates возвращает снимок кандидатов. Срез не изменяется.
func (c *AppCycle) Candidates() []Candidate { return c.candidates }

// candidatesFrom строит список кандидатов по группам окон:
// один представитель на приложение, в порядке групп.
func candidatesFrom(groups []window.Group, icons IconSource) []Candidate {
	out := make([]Candidate, 0, len(groups))
	for _, g := range groups {
		rep, ok := g.Representative()
		if !ok {
			continue
		}
		c := Candidate{
			AppKey: g.AppKey,
			Name:   g.Name(),
			Title:  rep.Title,
			Handle: rep.Handle,
		}
		if icons != nil {
			c.Icon = icons.Icon(g.AppKey, rep.Handle)
		}
		out = append(out, c)
	}
	return out
}
