package entities

import (
	"fmt"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
)

// NewPlatform 创建静态平台（玩家下落时会被阻挡）
//
// 参数:
//   - x, y: 平台中心
//   - width, height: 平台尺寸
//   - img: 平台外观，可为 nil（只有碰撞，不绘制）
func NewPlatform(em *ecs.EntityManager, x, y, width, height float64, img *ebiten.Image) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if width <= 0 || height <= 0 {
		return 0, fmt.Errorf("platform size must be positive, got %.0fx%.0f", width, height)
	}

	entityID := em.CreateEntity()
	em.AddComponent(entityID, &components.PositionComponent{X: x, Y: y})
	em.AddComponent(entityID, &components.CollisionComponent{Width: width, Height: height})
	em.AddComponent(entityID, &components.StaticComponent{})
	if img != nil {
		em.AddComponent(entityID, &components.SpriteComponent{Image: img})
	}
	return entityID, nil
}
