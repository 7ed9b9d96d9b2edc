package behavior

import "fmt"

// LifecycleState 子弹生命周期状态
type LifecycleState int

const (
	// StateSpawned 初始状态
	StateSpawned LifecycleState = iota
	// StateDestroyed 终止状态，已请求销毁
	StateDestroyed
)

// String 返回状态名
func (s LifecycleState) String() string {
	switch s {
	case StateSpawned:
		return "spawned"
	case StateDestroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("LifecycleState(%d)", int(s))
	}
}

// ProjectileLifecycle 子弹生命周期
//
// 状态机只有 Spawned -> Destroyed 一条边：
//   - Ready: 依次播放缩放和闪烁效果，各一次
//   - 第一次收到离屏通知: 进入 Destroyed 并请求销毁
//
// 重复的离屏通知是安全的空操作。
type ProjectileLifecycle struct {
	scale     ScaleEffect
	flash     FlashEffect
	destroyer Destroyer

	state   LifecycleState
	readied bool
}

// NewProjectileLifecycle 创建子弹生命周期并订阅离屏事件
//
// 参数:
//   - scale: 缩放效果协作者
//   - flash: 闪烁效果协作者
//   - notifier: 可见性协作者
//   - destroyer: 延迟销毁设施
//
// 返回:
//   - error: 任一协作者为 nil 时返回包装了 ErrMissingCollaborator 的错误，
//     错误信息指明缺失的是哪一个
func NewProjectileLifecycle(scale ScaleEffect, flash FlashEffect, notifier VisibilityNotifier, destroyer Destroyer) (*ProjectileLifecycle, error) {
	switch {
	case isNil(scale):
		return nil, fmt.Errorf("projectile lifecycle: scale effect: %w", ErrMissingCollaborator)
	case isNil(flash):
		return nil, fmt.Errorf("projectile lifecycle: flash effect: %w", ErrMissingCollaborator)
	case isNil(notifier):
		return nil, fmt.Errorf("projectile lifecycle: visibility notifier: %w", ErrMissingCollaborator)
	case isNil(destroyer):
		return nil, fmt.Errorf("projectile lifecycle: destroyer: %w", ErrMissingCollaborator)
	}

	p := &ProjectileLifecycle{
		scale:     scale,
		flash:     flash,
		destroyer: destroyer,
		state:     StateSpawned,
	}
	notifier.OnScreenExited(p.onScreenExited)
	return p, nil
}

// Ready 生成时调用一次：先缩放，后闪烁
// 已经 Ready 过或已销毁时为空操作。
func (p *ProjectileLifecycle) Ready() {
	if p.readied || p.state == StateDestroyed {
		return
	}
	p.readied = true
	p.scale.PlayScale()
	p.flash.PlayFlash()
}

func (p *ProjectileLifecycle) onScreenExited() {
	if p.state == StateDestroyed {
		return
	}
	p.state = StateDestroyed
	p.destroyer.QueueFree()
}

// State 返回当前状态
func (p *ProjectileLifecycle) State() LifecycleState {
	return p.state
}

// IsDestroyed 是否已请求销毁
func (p *ProjectileLifecycle) IsDestroyed() bool {
	return p.state == StateDestroyed
}
