package systems

import (
	"testing"

	"github.com/gonewx/peashot/pkg/behavior"
	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/jakecoffman/cp"
)

func TestEntityActor(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()

	if _, err := NewEntityActor(em, id); err == nil {
		t.Fatal("expected error for entity without PositionComponent")
	}
	if _, err := NewEntityActor(nil, id); err == nil {
		t.Fatal("expected error for nil entity manager")
	}

	em.AddComponent(id, &components.PositionComponent{X: 1, Y: 2})
	actor, err := NewEntityActor(em, id)
	if err != nil {
		t.Fatalf("NewEntityActor: %v", err)
	}
	actor.Translate(cp.Vector{X: 3, Y: -4})

	got := position(em, id)
	if got.X != 4 || got.Y != -2 {
		t.Errorf("position = (%v, %v), want (4, -2)", got.X, got.Y)
	}

	// 实体被回收后平移是空操作
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
	actor.Translate(cp.Vector{X: 1})
}

func TestScaleEffectAdapter(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	cfg := config.ScaleEffectConfig{From: 0.5, To: 1.5, Duration: 0.2, Easing: "outCubic"}

	scaled := 0
	hooks := &LifecycleHooks{OnScale: func(ecs.EntityID) { scaled++ }}
	NewScaleEffectAdapter(em, id, cfg, hooks).PlayScale()

	scale, ok := ecs.GetComponent[*components.ScaleComponent](em, id)
	if !ok {
		t.Fatal("ScaleComponent not added")
	}
	if scale.ScaleX != 0.5 || scale.ScaleY != 0.5 {
		t.Errorf("scale = (%v, %v), want starting value 0.5", scale.ScaleX, scale.ScaleY)
	}

	anim, ok := ecs.GetComponent[*components.ScaleAnimationComponent](em, id)
	if !ok {
		t.Fatal("ScaleAnimationComponent not added")
	}
	if anim.From != 0.5 || anim.To != 1.5 || anim.Duration != 0.2 || anim.Easing == nil {
		t.Errorf("unexpected animation %+v", anim)
	}
	if scaled != 1 {
		t.Errorf("OnScale called %d times, want 1", scaled)
	}
}

func TestFlashEffectAdapter(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()

	flashes := 0
	adapter := NewFlashEffectAdapter(em, id, config.FlashEffectConfig{Duration: 0.1, Intensity: 0.8},
		&LifecycleHooks{OnFlash: func(ecs.EntityID) { flashes++ }})
	adapter.PlayFlash()

	flash, ok := ecs.GetComponent[*components.FlashEffectComponent](em, id)
	if !ok {
		t.Fatal("FlashEffectComponent not added")
	}
	if !flash.IsActive || flash.Duration != 0.1 || flash.Intensity != 0.8 {
		t.Errorf("unexpected flash %+v", flash)
	}
	if flashes != 1 {
		t.Errorf("OnFlash called %d times, want 1", flashes)
	}

	// 已回收实体不再挂载组件，也不计数
	em.DestroyEntity(id)
	em.RemoveMarkedEntities()
	adapter.PlayFlash()
	if flashes != 1 {
		t.Errorf("OnFlash called for freed entity")
	}
}

func TestVisibilityNotifierAdapter(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()

	if _, err := NewVisibilityNotifierAdapter(em, id); err == nil {
		t.Fatal("expected error for entity without VisibilityNotifierComponent")
	}

	notifier := &components.VisibilityNotifierComponent{}
	em.AddComponent(id, notifier)
	adapter, err := NewVisibilityNotifierAdapter(em, id)
	if err != nil {
		t.Fatalf("NewVisibilityNotifierAdapter: %v", err)
	}

	adapter.OnScreenExited(func() {})
	adapter.OnScreenExited(nil)
	if len(notifier.Subscribers) != 1 {
		t.Errorf("subscribers = %d, want 1", len(notifier.Subscribers))
	}
}

func TestEntityDestroyerIsDeferred(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()

	freed := 0
	d := NewEntityDestroyer(em, id, &LifecycleHooks{OnFree: func(ecs.EntityID) { freed++ }})
	d.QueueFree()

	if !em.IsAlive(id) {
		t.Fatal("entity removed synchronously, want deferred removal")
	}
	if !em.IsPendingDestroy(id) {
		t.Fatal("entity not marked for removal")
	}
	if n := em.RemoveMarkedEntities(); n != 1 {
		t.Errorf("RemoveMarkedEntities = %d, want 1", n)
	}
	if freed != 1 {
		t.Errorf("OnFree called %d times, want 1", freed)
	}
}

// 适配器组合后走完整的子弹生命周期
func TestAdaptersDriveProjectileLifecycle(t *testing.T) {
	em := ecs.NewEntityManager()
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: 10, Y: 10})
	em.AddComponent(id, &components.VisibilityNotifierComponent{HalfWidth: 2, HalfHeight: 2})

	notifier, err := NewVisibilityNotifierAdapter(em, id)
	if err != nil {
		t.Fatal(err)
	}
	lifecycle, err := behavior.NewProjectileLifecycle(
		NewScaleEffectAdapter(em, id, config.ScaleEffectConfig{From: 0, To: 1, Duration: 0.1}, nil),
		NewFlashEffectAdapter(em, id, config.FlashEffectConfig{Duration: 0.1, Intensity: 1}, nil),
		notifier,
		NewEntityDestroyer(em, id, nil),
	)
	if err != nil {
		t.Fatal(err)
	}
	lifecycle.Ready()

	if !ecs.HasComponent[*components.ScaleAnimationComponent](em, id) {
		t.Error("scale effect not started")
	}
	if !ecs.HasComponent[*components.FlashEffectComponent](em, id) {
		t.Error("flash effect not started")
	}

	vis := NewVisibilitySystem(em, 100, 100, 0)
	vis.Update(0)
	pos := position(em, id)
	if pos.X != 10 {
		t.Fatalf("unexpected position %+v", pos)
	}

	p, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	p.X = -50
	vis.Update(0)

	if !lifecycle.IsDestroyed() {
		t.Fatal("lifecycle not destroyed after exit")
	}
	if !em.IsPendingDestroy(id) {
		t.Fatal("entity not queued for removal")
	}
}
