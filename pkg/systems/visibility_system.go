package systems

import (
	"log"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/gonewx/peashot/pkg/utils"
	"github.com/jakecoffman/cp"
)

// VisibilitySystem 屏幕可见性检测
//
// 实体包围盒与视口不再相交、且此前出现在屏幕上过时，
// 通知该实体的所有订阅者。每个实体只通知一次。
type VisibilitySystem struct {
	entityManager *ecs.EntityManager
	viewport      cp.BB

	// Verbose 打印每次离屏事件
	Verbose bool
}

// NewVisibilitySystem 创建可见性系统
//
// 参数:
//   - em: 实体管理器
//   - width, height: 视口大小（像素）
//   - margin: 视口向外扩展的边距（像素）
func NewVisibilitySystem(em *ecs.EntityManager, width, height, margin float64) *VisibilitySystem {
	return &VisibilitySystem{
		entityManager: em,
		viewport:      utils.ScreenBounds(width, height, margin),
	}
}

// SetViewport 修改视口（配置热重载或窗口尺寸变化时调用）
func (s *VisibilitySystem) SetViewport(width, height, margin float64) {
	s.viewport = utils.ScreenBounds(width, height, margin)
}

// Viewport 返回当前视口包围盒
func (s *VisibilitySystem) Viewport() cp.BB {
	return s.viewport
}

// Update 检测可见性变化
func (s *VisibilitySystem) Update(dt float64) {
	entities := ecs.GetEntitiesWith2[
		*components.VisibilityNotifierComponent,
		*components.PositionComponent,
	](s.entityManager)

	for _, id := range entities {
		notifier, ok := ecs.GetComponent[*components.VisibilityNotifierComponent](s.entityManager, id)
		if !ok || notifier.Fired {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !ok {
			continue
		}

		hw, hh := notifier.HalfWidth, notifier.HalfHeight
		if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
			hw *= scale.ScaleX
			hh *= scale.ScaleY
		}
		onScreen := utils.Overlaps(utils.BoundsAround(pos.X, pos.Y, hw, hh), s.viewport)

		if onScreen {
			notifier.Seen = true
		} else if notifier.Seen && notifier.OnScreen {
			notifier.Fired = true
			if s.Verbose {
				log.Printf("[VisibilitySystem] 实体 %d 离开屏幕 (X=%.1f, Y=%.1f)", id, pos.X, pos.Y)
			}
			// 回调可能修改订阅列表，先复制
			subscribers := append([]func(){}, notifier.Subscribers...)
			for _, fn := range subscribers {
				fn()
			}
		}
		notifier.OnScreen = onScreen
	}
}
