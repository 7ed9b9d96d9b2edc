package systems

import (
	"github.com/gonewx/peashot/pkg/behavior"
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/jakecoffman/cp"
)

// newMovingEntity 创建一个带 MovementBehavior 的测试实体
func newMovingEntity(em *ecs.EntityManager, x, y float64, velocity cp.Vector) ecs.EntityID {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	actor, err := NewEntityActor(em, id)
	if err != nil {
		panic(err)
	}
	movement, err := behavior.NewMovementBehavior(actor, velocity)
	if err != nil {
		panic(err)
	}
	em.AddComponent(id, &components.MovementComponent{Behavior: movement})
	return id
}

// position 读取实体位置，实体不存在时返回零值
func position(em *ecs.EntityManager, id ecs.EntityID) components.PositionComponent {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return components.PositionComponent{}
	}
	return *pos
}
