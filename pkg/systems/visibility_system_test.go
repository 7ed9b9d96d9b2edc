package systems

import (
	"testing"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
)

func newNotifierEntity(em *ecs.EntityManager, x, y float64) (ecs.EntityID, *int) {
	id := em.CreateEntity()
	em.AddComponent(id, &components.PositionComponent{X: x, Y: y})
	calls := 0
	em.AddComponent(id, &components.VisibilityNotifierComponent{
		HalfWidth:   5,
		HalfHeight:  5,
		Subscribers: []func(){func() { calls++ }},
	})
	return id, &calls
}

func moveTo(em *ecs.EntityManager, id ecs.EntityID, x, y float64) {
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	pos.X, pos.Y = x, y
}

func TestVisibilitySystemFiresOnExit(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewVisibilitySystem(em, 800, 600, 0)
	id, calls := newNotifierEntity(em, 400, 300)

	sys.Update(0.016)
	if *calls != 0 {
		t.Fatalf("fired while on screen")
	}

	// 部分在屏幕内仍然可见
	moveTo(em, id, 803, 300)
	sys.Update(0.016)
	if *calls != 0 {
		t.Fatalf("fired while partially visible")
	}

	moveTo(em, id, 900, 300)
	sys.Update(0.016)
	if *calls != 1 {
		t.Fatalf("calls = %d after exit, want 1", *calls)
	}

	// 回到屏幕再离开不会重复通知
	moveTo(em, id, 400, 300)
	sys.Update(0.016)
	moveTo(em, id, -100, 300)
	sys.Update(0.016)
	if *calls != 1 {
		t.Errorf("calls = %d, want exactly 1", *calls)
	}
}

func TestVisibilitySystemIgnoresNeverSeen(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewVisibilitySystem(em, 800, 600, 0)
	_, calls := newNotifierEntity(em, -200, -200)

	for i := 0; i < 5; i++ {
		sys.Update(0.016)
	}
	if *calls != 0 {
		t.Errorf("entity that was never on screen fired %d times", *calls)
	}
}

func TestVisibilitySystemMargin(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewVisibilitySystem(em, 800, 600, 50)
	id, calls := newNotifierEntity(em, 400, 300)
	sys.Update(0)

	moveTo(em, id, 830, 300)
	sys.Update(0)
	if *calls != 0 {
		t.Fatalf("fired inside margin")
	}

	moveTo(em, id, 860, 300)
	sys.Update(0)
	if *calls != 1 {
		t.Errorf("calls = %d after leaving margin, want 1", *calls)
	}
}

func TestVisibilitySystemUsesScale(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewVisibilitySystem(em, 100, 100, 0)
	id, calls := newNotifierEntity(em, 50, 50)
	em.AddComponent(id, &components.ScaleComponent{ScaleX: 4, ScaleY: 4})
	sys.Update(0)

	// 半宽 5*4=20，中心在 115 时左边缘 95 仍在屏幕内
	moveTo(em, id, 115, 50)
	sys.Update(0)
	if *calls != 0 {
		t.Errorf("scaled entity reported off screen")
	}
}

func TestVisibilitySystemSetViewport(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewVisibilitySystem(em, 100, 100, 0)
	sys.SetViewport(200, 150, 10)

	bb := sys.Viewport()
	if bb.L != -10 || bb.B != -10 || bb.R != 210 || bb.T != 160 {
		t.Errorf("viewport = %+v", bb)
	}
}
