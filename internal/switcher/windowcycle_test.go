package switcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winswitch/internal/window"
)

const (
	hA window.Handle = 0xA
	hB window.Handle = 0xB
	hC window.Handle = 0xC
	hD window.Handle = 0xD
	hE window.Handle = 0xE
)

const appKey = `C:\Program Files\Editor\editor.exe`

func mustAdvance(t *testing.T, c *WindowCycle, siblings []window.Handle, reverse bool) window.Handle {
	t.Helper()
	h, ok := c.Advance(appKey, siblings, reverse)
	require.True(t, ok)
	return h
}

func TestWindowCycleSingleSiblingIsNoop(t *testing.T) {
	c := NewWindowCycle()

	_, ok := c.Advance(appKey, []window.Handle{hA}, false)
	assert.False(t, ok)
	_, ok = c.Advance(appKey, nil, false)
	assert.False(t, ok)

	assert.Nil(t, c.cache)
	assert.True(t, c.ModifierReleased())
}

func TestWindowCycleTourAndRestart(t *testing.T) {
	c := NewWindowCycle()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))
	// B стал активным, модификатор всё ещё зажат
	assert.Equal(t, hC, mustAdvance(t, c, []window.Handle{hB, hA, hC, hD}, false))
	assert.Equal(t, hD, mustAdvance(t, c, []window.Handle{hC, hB, hA, hD}, false))
	assert.Equal(t, hA, mustAdvance(t, c, []window.Handle{hD, hC, hB, hA}, false))

	c.Commit()
	assert.True(t, c.ModifierReleased())

	// Новый жест с тем же якорем начинается с естественного порядка
	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))
}

func TestWindowCycleFreshGestureAfterCommit(t *testing.T) {
	c := NewWindowCycle()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))
	c.Commit()

	// Активен B, якорь кэша A: новый жест возвращает к A
	assert.Equal(t, hA, mustAdvance(t, c, []window.Handle{hB, hA, hC, hD}, false))
	c.Commit()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))
}

func TestWindowCycleExternalFocusChange(t *testing.T) {
	c := NewWindowCycle()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))
	c.Commit()

	// Пользователь сам активировал D; якорь A находится на позиции 2
	assert.Equal(t, hA, mustAdvance(t, c, []window.Handle{hD, hB, hA, hC}, false))
}

func TestWindowCycleReverseReturnsToStart(t *testing.T) {
	c := NewWindowCycle()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))
	assert.Equal(t, hA, mustAdvance(t, c, []window.Handle{hB, hA, hC, hD}, true))
}

func TestWindowCycleFirstReverse(t *testing.T) {
	c := NewWindowCycle()
	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, true))
	assert.Equal(t, hA, mustAdvance(t, c, []window.Handle{hB, hA, hC, hD}, true))
	assert.Equal(t, hD, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, true))
}

func TestWindowCycleWrapsForward(t *testing.T) {
	c := NewWindowCycle()

	mustAdvance(t, c, []window.Handle{hA, hB, hC}, false)
	mustAdvance(t, c, []window.Handle{hB, hA, hC}, false)
	assert.Equal(t, hA, mustAdvance(t, c, []window.Handle{hC, hB, hA}, false))
}

func TestWindowCycleSelectedWindowClosed(t *testing.T) {
	c := NewWindowCycle()
	c.cache = &windowCache{
		appKey: appKey,
		anchor: hA,
		index:  1,
		order:  []window.Handle{hA, hB, hC, hD},
	}
	c.modifierReleased = false

	// B закрылся: его место занимает C
	assert.Equal(t, hC, mustAdvance(t, c, []window.Handle{hA, hC, hD}, false))
	assert.Equal(t, []window.Handle{hA, hC, hD}, c.cache.order)
	assert.Equal(t, 1, c.cache.index)
}

func TestWindowCycleSelectedWindowClosedReverse(t *testing.T) {
	c := NewWindowCycle()
	c.cache = &windowCache{
		appKey: appKey,
		anchor: hA,
		index:  2,
		order:  []window.Handle{hA, hB, hC, hD},
	}
	c.modifierReleased = false

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hD}, true))
}

func TestWindowCycleNewWindowAppended(t *testing.T) {
	c := NewWindowCycle()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC}, false))
	// Открылось E: оно попадает в конец рабочего порядка
	assert.Equal(t, hC, mustAdvance(t, c, []window.Handle{hB, hE, hA, hC}, false))
	assert.Equal(t, []window.Handle{hA, hB, hC, hE}, c.cache.order)
	assert.Equal(t, hE, mustAdvance(t, c, []window.Handle{hC, hB, hE, hA}, false))
}

func TestWindowCycleAnchorClosedMidGesture(t *testing.T) {
	c := NewWindowCycle()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))
	// Якорь A закрылся, модификатор зажат: естественный порядок
	assert.Equal(t, hC, mustAdvance(t, c, []window.Handle{hB, hC, hD}, false))
	assert.Equal(t, hB, c.cache.anchor)
}

func TestWindowCycleOtherAppResetsCache(t *testing.T) {
	c := NewWindowCycle()

	assert.Equal(t, hB, mustAdvance(t, c, []window.Handle{hA, hB, hC, hD}, false))

	h, ok := c.Advance("other.exe", []window.Handle{hE, hD}, false)
	require.True(t, ok)
	assert.Equal(t, hD, h)
	assert.Equal(t, "other.exe", c.cache.appKey)
}

func TestWindowCycleIndexAlwaysValid(t *testing.T) {
	c := NewWindowCycle()
	lists := [][]window.Handle{
		{hA, hB, hC, hD, hE},
		{hB, hA},
		{hC, hD, hE},
		{hE, hA, hB, hC, hD},
		{hD, hE},
	}
	for i := 0; i < 50; i++ {
		siblings := lists[i%len(lists)]
		h, ok := c.Advance(appKey, siblings, i%3 == 0)
		require.True(t, ok)
		assert.Contains(t, siblings, h)
		assert.GreaterOrEqual(t, c.cache.index, 0)
		assert.Less(t, c.cache.index, len(c.cache.order))
		if i%7 == 0 {
			c.Commit()
		}
	}
}
