package game

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/gonewx/peashot/pkg/entities"
	"github.com/gonewx/peashot/pkg/scripting"
	"github.com/gonewx/peashot/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
)

// World 沙盒世界：持有实体管理器和按固定顺序更新的系统
//
// 更新顺序：
//  1. PlayerControlSystem  输入 → 玩家速度
//  2. MovementSystem       所有 MovementBehavior
//  3. PlayerPhysicsSystem  跳跃、下落、落地检测
//  4. VisibilitySystem     离屏事件（子弹在这里请求销毁）
//  5. ScaleEffectSystem / FlashEffectSystem
//  6. LifetimeSystem
//  7. SpriteAnimationSystem
//
// 最后统一回收标记删除的实体。World 不是并发安全的，只能在游戏循环所在的 goroutine 使用。
type World struct {
	cfg   *config.BehaviorConfig
	em    *ecs.EntityManager
	stats *StatsStore
	hooks *systems.LifecycleHooks

	volley *scripting.VolleyScript

	controls   *systems.PlayerControlSystem
	movement   *systems.MovementSystem
	physics    *systems.PlayerPhysicsSystem
	visibility *systems.VisibilitySystem
	scale      *systems.ScaleEffectSystem
	flash      *systems.FlashEffectSystem
	lifetime   *systems.LifetimeSystem
	animation  *systems.SpriteAnimationSystem
	render     *systems.RenderSystem

	player ecs.EntityID
}

// NewWorld 创建世界
//
// 参数:
//   - cfg: 行为配置，必须已通过 Validate
//   - stats: 统计存储，可为 nil（不统计）
func NewWorld(cfg *config.BehaviorConfig, stats *StatsStore) (*World, error) {
	if cfg == nil {
		return nil, fmt.Errorf("behavior config cannot be nil")
	}

	em := ecs.NewEntityManager()
	controls := systems.NewPlayerControlSystem(em)
	w := &World{
		cfg:        cfg,
		em:         em,
		stats:      stats,
		controls:   controls,
		movement:   systems.NewMovementSystem(em),
		physics:    systems.NewPlayerPhysicsSystem(em, controls),
		visibility: systems.NewVisibilitySystem(em, cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Margin),
		scale:      systems.NewScaleEffectSystem(em),
		flash:      systems.NewFlashEffectSystem(em),
		lifetime:   systems.NewLifetimeSystem(em),
		animation:  systems.NewSpriteAnimationSystem(em),
		render:     systems.NewRenderSystem(em),
	}

	if stats != nil {
		w.hooks = &systems.LifecycleHooks{
			OnScale: func(ecs.EntityID) { stats.RecordScale() },
			OnFlash: func(ecs.EntityID) { stats.RecordFlash() },
			OnFree:  func(ecs.EntityID) { stats.RecordFree() },
		}
		w.lifetime.OnExpire = func(ecs.EntityID) { stats.RecordExpired(1) }
	}

	return w, nil
}

// EntityManager 返回实体管理器
func (w *World) EntityManager() *ecs.EntityManager { return w.em }

// Config 返回当前配置
func (w *World) Config() *config.BehaviorConfig { return w.cfg }

// SetConfig 替换配置（热重载）
// 只影响之后生成的实体；视口立即更新
func (w *World) SetConfig(cfg *config.BehaviorConfig) {
	if cfg == nil {
		return
	}
	w.cfg = cfg
	w.visibility.SetViewport(cfg.Screen.Width, cfg.Screen.Height, cfg.Screen.Margin)
}

// SetVolley 设置齐射脚本，nil 表示单发直射
func (w *World) SetVolley(script *scripting.VolleyScript) { w.volley = script }

// SetVerbose 打开系统调试日志
func (w *World) SetVerbose(verbose bool) { w.visibility.Verbose = verbose }

// SetInput 设置本帧玩家输入
func (w *World) SetInput(input systems.InputState) { w.controls.SetInput(input) }

// Player 返回玩家实体，0 表示没有
func (w *World) Player() ecs.EntityID { return w.player }

// SpawnProjectile 在 (x, y) 生成一颗子弹
func (w *World) SpawnProjectile(x, y float64, velocity cp.Vector) (ecs.EntityID, error) {
	id, err := entities.NewProjectile(w.em, w.cfg, x, y, velocity, w.hooks)
	if err != nil {
		return 0, err
	}
	if w.stats != nil {
		w.stats.RecordSpawn(w.ProjectileCount())
	}
	return id, nil
}

// FireVolley 从 (x, y) 朝 angle（弧度）发射一次齐射
//
// 子弹速度由齐射脚本计算；脚本出错时退回单发直射并记录日志。
// 返回已生成的子弹 ID，出错时也可能非空。
func (w *World) FireVolley(x, y, angle float64) ([]ecs.EntityID, error) {
	params := scripting.VolleyParams{
		Speed:  w.cfg.Projectile.Speed,
		Count:  w.cfg.Projectile.Count,
		Angle:  angle,
		Spread: w.cfg.Projectile.SpreadDegrees * math.Pi / 180,
	}

	velocities := scripting.StraightVolley(params)
	if w.volley != nil {
		v, err := w.volley.Velocities(params)
		if err != nil {
			log.Printf("[World] Warning: %v (falling back to a single shot)", err)
		} else {
			velocities = v
		}
	}

	return w.spawnVolley(velocities, func(v cp.Vector) (ecs.EntityID, error) {
		return w.SpawnProjectile(x, y, v)
	})
}

// spawnVolley 依次生成齐射中的子弹
// 中途失败时已生成的子弹继续飞行，只要生成了至少一颗就计为一次齐射
func (w *World) spawnVolley(velocities []cp.Vector, spawn func(cp.Vector) (ecs.EntityID, error)) ([]ecs.EntityID, error) {
	ids := make([]ecs.EntityID, 0, len(velocities))
	var err error
	for _, v := range velocities {
		id, spawnErr := spawn(v)
		if spawnErr != nil {
			err = fmt.Errorf("failed to fire volley (%d/%d spawned): %w", len(ids), len(velocities), spawnErr)
			break
		}
		ids = append(ids, id)
	}
	if len(ids) > 0 && w.stats != nil {
		w.stats.RecordVolley()
	}
	return ids, err
}

// SpawnActor 生成玩家角色；已有玩家时先移除旧的
func (w *World) SpawnActor(x, y float64, sheet *ebiten.Image) (ecs.EntityID, error) {
	if w.player != 0 {
		w.em.DestroyEntity(w.player)
	}
	id, err := entities.NewActor(w.em, w.cfg, x, y, sheet)
	if err != nil {
		return 0, err
	}
	w.player = id
	return id, nil
}

// SpawnPlatform 生成静态平台
func (w *World) SpawnPlatform(x, y, width, height float64, img *ebiten.Image) (ecs.EntityID, error) {
	return entities.NewPlatform(w.em, x, y, width, height, img)
}

// Tick 推进一帧
//
// 返回本帧回收的实体数量
func (w *World) Tick(dt float64) int {
	if dt < 0 {
		dt = 0
	}

	w.controls.Update(dt)
	w.movement.Update(dt)
	w.physics.Update(dt)
	w.visibility.Update(dt)
	w.scale.Update(dt)
	w.flash.Update(dt)
	w.lifetime.Update(dt)
	w.animation.Update(dt)

	removed := w.em.RemoveMarkedEntities()
	if w.player != 0 && !w.em.IsAlive(w.player) {
		w.player = 0
	}
	return removed
}

// Draw 绘制世界
func (w *World) Draw(screen *ebiten.Image) {
	w.render.Draw(screen)
}

// ProjectileCount 存活且未请求销毁的子弹数量
func (w *World) ProjectileCount() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](w.em) {
		p, _ := ecs.GetComponent[*components.ProjectileComponent](w.em, id)
		if p.Lifecycle != nil && !p.Lifecycle.IsDestroyed() && !w.em.IsPendingDestroy(id) {
			count++
		}
	}
	return count
}
