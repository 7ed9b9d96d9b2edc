package components

import "github.com/gonewx/peashot/pkg/behavior"

// ProjectileComponent 子弹组件
// Lifecycle 负责生成效果与离屏销毁
type ProjectileComponent struct {
	Lifecycle *behavior.ProjectileLifecycle
}
