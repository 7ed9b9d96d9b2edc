package behavior

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// MovementBehavior 每个 tick 将 actor 平移 velocity*dt
//
// actor 不归 MovementBehavior 所有，只会被修改位置。
// 积分方式为显式欧拉：大 dt 下精度不做保证。
type MovementBehavior struct {
	actor    Actor
	velocity cp.Vector // 单位/秒
}

// NewMovementBehavior 创建移动行为
//
// 参数:
//   - actor: 被移动的对象，不能为 nil
//   - velocity: 速度（单位/秒）
//
// 返回:
//   - error: actor 为 nil（包括 nil 指针）时返回包装了 ErrMissingActor 的错误
func NewMovementBehavior(actor Actor, velocity cp.Vector) (*MovementBehavior, error) {
	if isNil(actor) {
		return nil, fmt.Errorf("movement behavior: %w", ErrMissingActor)
	}
	return &MovementBehavior{actor: actor, velocity: velocity}, nil
}

// Update 按经过时间 dt（秒）推进一次
//
// dt 为 0、速度为零或 dt 为负时不调用 Translate。
func (m *MovementBehavior) Update(dt float64) {
	if dt <= 0 {
		return
	}
	if m.velocity.X == 0 && m.velocity.Y == 0 {
		return
	}
	m.actor.Translate(m.velocity.Mult(dt))
}

// Velocity 返回当前速度
func (m *MovementBehavior) Velocity() cp.Vector {
	return m.velocity
}

// SetVelocity 修改速度，下一次 Update 生效
func (m *MovementBehavior) SetVelocity(v cp.Vector) {
	m.velocity = v
}
