package behavior

import (
	"errors"
	"reflect"
)

var (
	// ErrMissingActor 构造 MovementBehavior 时 actor 为 nil
	ErrMissingActor = errors.New("behavior: missing actor")
	// ErrMissingCollaborator 构造 ProjectileLifecycle 时某个协作者为 nil
	ErrMissingCollaborator = errors.New("behavior: missing collaborator")
)

// isNil 报告协作者是否缺失
// 包在接口里的 nil 指针（或 nil 函数）同样视为缺失
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Chan, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
