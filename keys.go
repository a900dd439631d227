package main

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/platformer/input"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

var keyNames = map[string]ebiten.Key{
	"A": ebiten.KeyA, "B": ebiten.KeyB, "C": ebiten.KeyC, "D": ebiten.KeyD,
	"E": ebiten.KeyE, "F": ebiten.KeyF, "G": ebiten.KeyG, "H": ebiten.KeyH,
	"I": ebiten.KeyI, "J": ebiten.KeyJ, "K": ebiten.KeyK, "L": ebiten.KeyL,
	"M": ebiten.KeyM, "N": ebiten.KeyN, "O": ebiten.KeyO, "P": ebiten.KeyP,
	"Q": ebiten.KeyQ, "R": ebiten.KeyR, "S": ebiten.KeyS, "T": ebiten.KeyT,
	"U": ebiten.KeyU, "V": ebiten.KeyV, "W": ebiten.KeyW, "X": ebiten.KeyX,
	"Y": ebiten.KeyY, "Z": ebiten.KeyZ,

	"ARROWUP":    ebiten.KeyArrowUp,
	"ARROWLEFT":  ebiten.KeyArrowLeft,
	"ARROWDOWN":  ebiten.KeyArrowDown,
	"ARROWRIGHT": ebiten.KeyArrowRight,
	"SPACE":      ebiten.KeySpace,
}

func parseKey(name string) (ebiten.Key, error) {
	k, ok := keyNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown key %q", name)
	}
	return k, nil
}

func bindings(spec prefabs.KeysSpec) (physics.Bindings, error) {
	var b physics.Bindings
	for _, f := range []struct {
		name string
		dst  *input.Key
	}{
		{spec.Up, &b.Up},
		{spec.Left, &b.Left},
		{spec.Down, &b.Down},
		{spec.Right, &b.Right},
	} {
		k, err := parseKey(f.name)
		if err != nil {
			return b, fmt.Errorf("player keys: %w", err)
		}
		*f.dst = input.Key(k)
	}
	return b, nil
}

// polled lists the ebiten keys behind the bindings.
func polled(b physics.Bindings) []ebiten.Key {
	return []ebiten.Key{
		ebiten.Key(b.Up),
		ebiten.Key(b.Left),
		ebiten.Key(b.Down),
		ebiten.Key(b.Right),
	}
}
