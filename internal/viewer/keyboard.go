package viewer

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"robot3d/internal/input"
)

var arrows = []struct {
	key     ebiten.Key
	special input.Special
}{
	{ebiten.KeyArrowUp, input.ArrowUp},
	{ebiten.KeyArrowDown, input.ArrowDown},
	{ebiten.KeyArrowLeft, input.ArrowLeft},
	{ebiten.KeyArrowRight, input.ArrowRight},
}

// Held arrow keys repeat after repeatDelay updates, every repeatEvery updates.
const (
	repeatDelay = 30
	repeatEvery = 5
)

// keyboard collects key presses since the previous update. Letters come from
// text input so shifted keys arrive as upper case.
type keyboard struct {
	buf   []input.Key
	chars []rune
}

func (k *keyboard) poll() []input.Key {
	k.buf = k.buf[:0]
	k.chars = ebiten.AppendInputChars(k.chars[:0])
	for _, r := range k.chars {
		k.buf = append(k.buf, input.Char(r))
	}
	for _, a := range arrows {
		if repeating(inpututil.KeyPressDuration(a.key)) {
			k.buf = append(k.buf, input.Arrow(a.special))
		}
	}
	return k.buf
}

func repeating(d int) bool {
	if d == 1 {
		return true
	}
	return d >= repeatDelay && (d-repeatDelay)%repeatEvery == 0
}
