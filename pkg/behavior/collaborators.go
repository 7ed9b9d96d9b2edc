// Package behavior 提供两个与宿主无关的叶子行为：
//
//   - MovementBehavior: 每个 tick 按 velocity*dt 平移一个 Actor
//   - ProjectileLifecycle: 生成时播放缩放与闪烁效果，离开可见区域时请求销毁
//
// 这两个行为只通过本文件中的小接口与外部协作者交互，
// 不依赖 ECS、渲染或任何全局状态。pkg/systems 提供基于 ECS 的协作者实现。
package behavior

import "github.com/jakecoffman/cp"

// Actor 拥有二维位置并支持相对平移的对象
type Actor interface {
	Translate(delta cp.Vector)
}

// ScaleEffect 缩放动画协作者（无参数，触发即忘）
type ScaleEffect interface {
	PlayScale()
}

// FlashEffect 闪烁效果协作者（无参数，触发即忘）
type FlashEffect interface {
	PlayFlash()
}

// VisibilityNotifier 可见性跟踪协作者
// OnScreenExited 注册一个回调，对象离开可见区域时调用
type VisibilityNotifier interface {
	OnScreenExited(fn func())
}

// Destroyer 宿主的延迟销毁设施
// QueueFree 只是请求销毁，实际回收可能发生在当前调度周期结束时
type Destroyer interface {
	QueueFree()
}

// ActorFunc 让普通函数满足 Actor 接口
type ActorFunc func(delta cp.Vector)

// Translate 调用 f(delta)
func (f ActorFunc) Translate(delta cp.Vector) { f(delta) }

// DestroyerFunc 让普通函数满足 Destroyer 接口
type DestroyerFunc func()

// QueueFree 调用 f()
func (f DestroyerFunc) QueueFree() { f() }
