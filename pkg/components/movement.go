package components

import "github.com/gonewx/peashot/pkg/behavior"

// MovementComponent 挂载一个 MovementBehavior
// MovementSystem 每帧调用 Behavior.Update(dt)
type MovementComponent struct {
	Behavior *behavior.MovementBehavior
}
