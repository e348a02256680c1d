package overlay

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"

	"winswitch/internal/switcher"
)

func TestLetter(t *testing.T) {
	assert.Equal(t, "F", letter("firefox"))
	assert.Equal(t, "Ж", letter("  жук"))
	assert.Equal(t, "7", letter("7zip"))
	assert.Equal(t, "?", letter(""))
	assert.Equal(t, "?", letter("--"))
}

func TestSameCandidates(t *testing.T) {
	a := []switcher.Candidate{{AppKey: "a", Handle: 1}, {AppKey: "b", Handle: 2}}
	b := []switcher.Candidate{{AppKey: "a", Handle: 1, Title: "other"}, {AppKey: "b", Handle: 2}}

	assert.True(t, sameCandidates(a, b))
	assert.False(t, sameCandidates(a, b[:1]))
	assert.False(t, sameCandidates(a, []switcher.Candidate{{AppKey: "a", Handle: 1}, {AppKey: "b", Handle: 3}}))
}

func TestImageOpsSkipsMissingIcons(t *testing.T) {
	ops := imageOps([]switcher.Candidate{
		{AppKey: "a", Icon: image.NewNRGBA(image.Rect(0, 0, 4, 4))},
		{AppKey: "b"},
	})
	assert.Len(t, ops, 2)
	assert.NotNil(t, ops[0])
	assert.Nil(t, ops[1])
}

func TestCandidateAtWhenHidden(t *testing.T) {
	w := New(DefaultConfig())
	_, ok := w.CandidateAt(10, 10)
	assert.False(t, ok)
	assert.False(t, w.IsVisible())

	// Unpaint без Paint ничего не делает
	w.Unpaint()
	assert.False(t, w.IsVisible())
}
