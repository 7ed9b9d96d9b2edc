package behavior

import (
	"errors"
	"strings"
	"testing"
)

// callLog 按调用顺序记录事件，序号充当时间戳
type callLog struct {
	seq    int
	events []string
	stamps map[string][]int
}

func newCallLog() *callLog {
	return &callLog{stamps: make(map[string][]int)}
}

func (l *callLog) record(name string) {
	l.seq++
	l.events = append(l.events, name)
	l.stamps[name] = append(l.stamps[name], l.seq)
}

func (l *callLog) count(name string) int {
	return len(l.stamps[name])
}

type fakeScale struct{ log *callLog }

func (f *fakeScale) PlayScale() { f.log.record("scale") }

type fakeFlash struct{ log *callLog }

func (f *fakeFlash) PlayFlash() { f.log.record("flash") }

type fakeDestroyer struct{ log *callLog }

func (f *fakeDestroyer) QueueFree() { f.log.record("free") }

// fakeNotifier 保存订阅，由测试手动触发
type fakeNotifier struct {
	subscribers []func()
}

func (n *fakeNotifier) OnScreenExited(fn func()) {
	n.subscribers = append(n.subscribers, fn)
}

func (n *fakeNotifier) fire() {
	for _, fn := range n.subscribers {
		fn()
	}
}

func newTestLifecycle(t *testing.T) (*ProjectileLifecycle, *callLog, *fakeNotifier) {
	t.Helper()
	log := newCallLog()
	notifier := &fakeNotifier{}
	p, err := NewProjectileLifecycle(&fakeScale{log}, &fakeFlash{log}, notifier, &fakeDestroyer{log})
	if err != nil {
		t.Fatalf("NewProjectileLifecycle failed: %v", err)
	}
	return p, log, notifier
}

func TestNewProjectileLifecycleMissingCollaborator(t *testing.T) {
	log := newCallLog()
	scale := &fakeScale{log}
	flash := &fakeFlash{log}
	notifier := &fakeNotifier{}
	destroyer := &fakeDestroyer{log}

	tests := []struct {
		name      string
		scale     ScaleEffect
		flash     FlashEffect
		notifier  VisibilityNotifier
		destroyer Destroyer
		wantMsg   string
	}{
		{"missing_scale", nil, flash, notifier, destroyer, "scale effect"},
		{"missing_flash", scale, nil, notifier, destroyer, "flash effect"},
		{"missing_notifier", scale, flash, nil, destroyer, "visibility notifier"},
		{"missing_destroyer", scale, flash, notifier, nil, "destroyer"},
		{"nil_scale_pointer", (*fakeScale)(nil), flash, notifier, destroyer, "scale effect"},
		{"nil_flash_pointer", scale, (*fakeFlash)(nil), notifier, destroyer, "flash effect"},
		{"nil_notifier_pointer", scale, flash, (*fakeNotifier)(nil), destroyer, "visibility notifier"},
		{"nil_destroyer_pointer", scale, flash, notifier, (*fakeDestroyer)(nil), "destroyer"},
		{"nil_destroyer_func", scale, flash, notifier, DestroyerFunc(nil), "destroyer"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewProjectileLifecycle(tc.scale, tc.flash, tc.notifier, tc.destroyer)
			if p != nil {
				t.Error("Expected nil lifecycle")
			}
			if !errors.Is(err, ErrMissingCollaborator) {
				t.Fatalf("Expected ErrMissingCollaborator, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.wantMsg) {
				t.Errorf("Error %q should name %q", err, tc.wantMsg)
			}
		})
	}

	if len(notifier.subscribers) != 0 {
		t.Error("Failed construction must not subscribe to the notifier")
	}
}

func TestNewProjectileLifecycleSubscribes(t *testing.T) {
	p, _, notifier := newTestLifecycle(t)
	if len(notifier.subscribers) != 1 {
		t.Fatalf("Expected 1 subscription, got %d", len(notifier.subscribers))
	}
	if p.State() != StateSpawned {
		t.Errorf("Initial state should be spawned, got %s", p.State())
	}
}

func TestReadyPlaysScaleThenFlashOnce(t *testing.T) {
	p, log, _ := newTestLifecycle(t)

	p.Ready()
	p.Ready()

	if log.count("scale") != 1 || log.count("flash") != 1 {
		t.Fatalf("Expected scale=1 flash=1, got scale=%d flash=%d", log.count("scale"), log.count("flash"))
	}
	if log.events[0] != "scale" || log.events[1] != "flash" {
		t.Errorf("Expected scale before flash, got %v", log.events)
	}
	if p.IsDestroyed() {
		t.Error("Ready must not destroy the projectile")
	}
}

func TestNoDestroyWithoutExitEvent(t *testing.T) {
	p, log, _ := newTestLifecycle(t)
	p.Ready()

	if log.count("free") != 0 {
		t.Error("Destruction must not be requested without an exit event")
	}
	if p.State() != StateSpawned {
		t.Errorf("Expected spawned, got %s", p.State())
	}
}

func TestSpawnThenImmediateExit(t *testing.T) {
	p, log, notifier := newTestLifecycle(t)

	p.Ready()
	notifier.fire()

	if log.count("free") != 1 {
		t.Errorf("Expected exactly one destruction request, got %d", log.count("free"))
	}
	if log.count("scale") != 1 || log.count("flash") != 1 {
		t.Errorf("Expected one scale and one flash, got %d/%d", log.count("scale"), log.count("flash"))
	}
	if log.stamps["flash"][0] < log.stamps["scale"][0] {
		t.Error("flash timestamp should be >= scale timestamp")
	}
	if log.stamps["free"][0] < log.stamps["flash"][0] {
		t.Error("destruction should come after the spawn effects")
	}
	if !p.IsDestroyed() {
		t.Error("Projectile should be destroyed")
	}
}

func TestRepeatedExitIsNoOp(t *testing.T) {
	p, log, notifier := newTestLifecycle(t)
	p.Ready()

	notifier.fire()
	notifier.fire()
	notifier.fire()

	if log.count("free") != 1 {
		t.Errorf("Expected exactly one destruction request, got %d", log.count("free"))
	}
	if p.State() != StateDestroyed {
		t.Errorf("Expected destroyed, got %s", p.State())
	}
}

func TestExitBeforeReady(t *testing.T) {
	p, log, notifier := newTestLifecycle(t)

	notifier.fire()
	p.Ready()

	if log.count("free") != 1 {
		t.Errorf("Expected one destruction request, got %d", log.count("free"))
	}
	if log.count("scale") != 0 || log.count("flash") != 0 {
		t.Error("Effects must not play after destruction")
	}
}

func TestDestroyerFunc(t *testing.T) {
	freed := 0
	notifier := &fakeNotifier{}
	log := newCallLog()
	_, err := NewProjectileLifecycle(&fakeScale{log}, &fakeFlash{log}, notifier, DestroyerFunc(func() { freed++ }))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	notifier.fire()
	if freed != 1 {
		t.Errorf("Expected 1 free, got %d", freed)
	}
}

func TestLifecycleStateString(t *testing.T) {
	if StateSpawned.String() != "spawned" || StateDestroyed.String() != "destroyed" {
		t.Error("Unexpected state names")
	}
	if LifecycleState(9).String() != "LifecycleState(9)" {
		t.Errorf("Unexpected fallback name: %s", LifecycleState(9).String())
	}
}
