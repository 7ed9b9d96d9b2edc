package scenes

import (
	"testing"

	"github.com/gonewx/peashot/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
)

// keySet 返回一个只认给定按键的查询函数
func keySet(keys ...ebiten.Key) func(ebiten.Key) bool {
	set := make(map[ebiten.Key]bool, len(keys))
	for _, k := range keys {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestReadInput(t *testing.T) {
	tests := []struct {
		name        string
		pressed     []ebiten.Key
		justPressed []ebiten.Key
		want        systems.InputState
	}{
		{"nothing", nil, nil, systems.InputState{}},
		{"arrow_left", []ebiten.Key{ebiten.KeyArrowLeft}, nil, systems.InputState{Left: true}},
		{"a_key", []ebiten.Key{ebiten.KeyA}, nil, systems.InputState{Left: true}},
		{"d_key", []ebiten.Key{ebiten.KeyD}, nil, systems.InputState{Right: true}},
		{"space_tap", []ebiten.Key{ebiten.KeySpace}, []ebiten.Key{ebiten.KeySpace}, systems.InputState{JumpPressed: true, JumpHeld: true}},
		{"w_tap", []ebiten.Key{ebiten.KeyW}, []ebiten.Key{ebiten.KeyW}, systems.InputState{JumpPressed: true, JumpHeld: true}},
		{"up_tap", []ebiten.Key{ebiten.KeyArrowUp}, []ebiten.Key{ebiten.KeyArrowUp}, systems.InputState{JumpPressed: true, JumpHeld: true}},
		{"up_held", []ebiten.Key{ebiten.KeyArrowUp}, nil, systems.InputState{JumpHeld: true}},
		{"run_right_and_jump", []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyW}, []ebiten.Key{ebiten.KeyW}, systems.InputState{Right: true, JumpPressed: true, JumpHeld: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := readInput(keySet(tc.pressed...), keySet(tc.justPressed...))
			if got != tc.want {
				t.Errorf("readInput() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
