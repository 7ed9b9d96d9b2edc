package systems

import (
	"fmt"

	"github.com/gonewx/peashot/pkg/behavior"
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/jakecoffman/cp"
)

// 本文件把 ECS 实体包装成 behavior 包的协作者接口。
// behavior 包不知道 ECS 的存在；工厂函数用这些适配器把两者接起来。

var (
	_ behavior.Actor              = (*EntityActor)(nil)
	_ behavior.ScaleEffect        = (*ScaleEffectAdapter)(nil)
	_ behavior.FlashEffect        = (*FlashEffectAdapter)(nil)
	_ behavior.VisibilityNotifier = (*VisibilityNotifierAdapter)(nil)
	_ behavior.Destroyer          = (*EntityDestroyer)(nil)
)

// LifecycleHooks 可选的统计回调，nil 字段会被忽略
type LifecycleHooks struct {
	OnScale func(id ecs.EntityID)
	OnFlash func(id ecs.EntityID)
	OnFree  func(id ecs.EntityID)
}

// EntityActor 通过 PositionComponent 平移实体
type EntityActor struct {
	em *ecs.EntityManager
	id ecs.EntityID
}

// NewEntityActor 创建实体 Actor
// 实体必须已经拥有 PositionComponent
func NewEntityActor(em *ecs.EntityManager, id ecs.EntityID) (*EntityActor, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	if !ecs.HasComponent[*components.PositionComponent](em, id) {
		return nil, fmt.Errorf("entity %d has no PositionComponent", id)
	}
	return &EntityActor{em: em, id: id}, nil
}

// Translate 平移实体位置
// 实体已被回收时为空操作
func (a *EntityActor) Translate(delta cp.Vector) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](a.em, a.id)
	if !ok {
		return
	}
	pos.X += delta.X
	pos.Y += delta.Y
}

// ScaleEffectAdapter 播放缩放效果：挂载一个 ScaleAnimationComponent
type ScaleEffectAdapter struct {
	em    *ecs.EntityManager
	id    ecs.EntityID
	cfg   config.ScaleEffectConfig
	hooks *LifecycleHooks
}

// NewScaleEffectAdapter 创建缩放效果适配器
func NewScaleEffectAdapter(em *ecs.EntityManager, id ecs.EntityID, cfg config.ScaleEffectConfig, hooks *LifecycleHooks) *ScaleEffectAdapter {
	return &ScaleEffectAdapter{em: em, id: id, cfg: cfg, hooks: hooks}
}

// PlayScale 从 From 开始播放缩放动画
func (s *ScaleEffectAdapter) PlayScale() {
	if !s.em.IsAlive(s.id) {
		return
	}
	scale, ok := ecs.GetComponent[*components.ScaleComponent](s.em, s.id)
	if !ok {
		scale = &components.ScaleComponent{}
		s.em.AddComponent(s.id, scale)
	}
	scale.ScaleX = s.cfg.From
	scale.ScaleY = s.cfg.From

	s.em.AddComponent(s.id, &components.ScaleAnimationComponent{
		From:     s.cfg.From,
		To:       s.cfg.To,
		Duration: s.cfg.Duration,
		Easing:   s.cfg.EasingFunc(),
	})

	if s.hooks != nil && s.hooks.OnScale != nil {
		s.hooks.OnScale(s.id)
	}
}

// FlashEffectAdapter 播放闪烁效果：挂载一个 FlashEffectComponent
type FlashEffectAdapter struct {
	em    *ecs.EntityManager
	id    ecs.EntityID
	cfg   config.FlashEffectConfig
	hooks *LifecycleHooks
}

// NewFlashEffectAdapter 创建闪烁效果适配器
func NewFlashEffectAdapter(em *ecs.EntityManager, id ecs.EntityID, cfg config.FlashEffectConfig, hooks *LifecycleHooks) *FlashEffectAdapter {
	return &FlashEffectAdapter{em: em, id: id, cfg: cfg, hooks: hooks}
}

// PlayFlash 重新开始闪烁
func (f *FlashEffectAdapter) PlayFlash() {
	if !f.em.IsAlive(f.id) {
		return
	}
	f.em.AddComponent(f.id, &components.FlashEffectComponent{
		Duration:  f.cfg.Duration,
		Intensity: f.cfg.Intensity,
		IsActive:  true,
	})

	if f.hooks != nil && f.hooks.OnFlash != nil {
		f.hooks.OnFlash(f.id)
	}
}

// VisibilityNotifierAdapter 订阅实体的离屏事件
type VisibilityNotifierAdapter struct {
	notifier *components.VisibilityNotifierComponent
}

// NewVisibilityNotifierAdapter 创建可见性适配器
// 实体必须已经拥有 VisibilityNotifierComponent
func NewVisibilityNotifierAdapter(em *ecs.EntityManager, id ecs.EntityID) (*VisibilityNotifierAdapter, error) {
	if em == nil {
		return nil, fmt.Errorf("entity manager cannot be nil")
	}
	notifier, ok := ecs.GetComponent[*components.VisibilityNotifierComponent](em, id)
	if !ok {
		return nil, fmt.Errorf("entity %d has no VisibilityNotifierComponent", id)
	}
	return &VisibilityNotifierAdapter{notifier: notifier}, nil
}

// OnScreenExited 注册离屏回调
func (v *VisibilityNotifierAdapter) OnScreenExited(fn func()) {
	if fn == nil {
		return
	}
	v.notifier.Subscribers = append(v.notifier.Subscribers, fn)
}

// EntityDestroyer 通过 EntityManager 延迟销毁实体
type EntityDestroyer struct {
	em    *ecs.EntityManager
	id    ecs.EntityID
	hooks *LifecycleHooks
}

// NewEntityDestroyer 创建销毁适配器
func NewEntityDestroyer(em *ecs.EntityManager, id ecs.EntityID, hooks *LifecycleHooks) *EntityDestroyer {
	return &EntityDestroyer{em: em, id: id, hooks: hooks}
}

// QueueFree 标记实体待删除，World 在 tick 结束时回收
func (d *EntityDestroyer) QueueFree() {
	d.em.DestroyEntity(d.id)
	if d.hooks != nil && d.hooks.OnFree != nil {
		d.hooks.OnFree(d.id)
	}
}
