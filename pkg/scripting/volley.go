// Package scripting 运行 tengo 齐射脚本，计算一次齐射中每颗子弹的速度。
//
// 脚本可见的输入变量:
//
//	speed  float  子弹速度（像素/秒）
//	count  int    子弹数
//	angle  float  瞄准方向（弧度）
//	spread float  扇形总角度（弧度）
//	volley array  输出，脚本向其中 append [vx, vy]
package scripting

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
)

// maxRunTime 单次脚本执行的时间上限
const maxRunTime = 50 * time.Millisecond

// VolleyParams 一次齐射的输入
type VolleyParams struct {
	Speed  float64
	Count  int
	Angle  float64
	Spread float64
}

// VolleyScript 编译好的齐射脚本
type VolleyScript struct {
	name     string
	compiled *tengo.Compiled
}

// CompileVolley 编译脚本源码
// name 仅用于错误信息和日志
func CompileVolley(name string, src []byte) (*VolleyScript, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	for _, v := range []struct {
		name  string
		value interface{}
	}{
		{"speed", 0.0},
		{"count", 0},
		{"angle", 0.0},
		{"spread", 0.0},
		{"volley", []interface{}{}},
	} {
		if err := script.Add(v.name, v.value); err != nil {
			return nil, fmt.Errorf("volley %s: add %s: %w", name, v.name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("volley %s: compile: %w", name, err)
	}
	return &VolleyScript{name: name, compiled: compiled}, nil
}

// LoadVolley 从文件读取并编译脚本
func LoadVolley(path string) (*VolleyScript, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read volley script: %w", err)
	}
	return CompileVolley(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)), src)
}

// Name 脚本名
func (v *VolleyScript) Name() string {
	return v.name
}

// Velocities 运行脚本，返回每颗子弹的速度
//
// 每次调用使用编译结果的副本，脚本的全局状态不会在调用之间保留。
func (v *VolleyScript) Velocities(p VolleyParams) ([]cp.Vector, error) {
	c := v.compiled.Clone()
	for name, value := range map[string]interface{}{
		"speed":  p.Speed,
		"count":  p.Count,
		"angle":  p.Angle,
		"spread": p.Spread,
		"volley": []interface{}{},
	} {
		if err := c.Set(name, value); err != nil {
			return nil, fmt.Errorf("volley %s: set %s: %w", v.name, name, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), maxRunTime)
	defer cancel()
	if err := c.RunContext(ctx); err != nil {
		return nil, fmt.Errorf("volley %s: run: %w", v.name, err)
	}

	raw := c.Get("volley").Array()
	out := make([]cp.Vector, 0, len(raw))
	for i, item := range raw {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, fmt.Errorf("volley %s: entry %d is not a [vx, vy] pair", v.name, i)
		}
		vx, okX := toFloat(pair[0])
		vy, okY := toFloat(pair[1])
		if !okX || !okY {
			return nil, fmt.Errorf("volley %s: entry %d has non-numeric components", v.name, i)
		}
		out = append(out, cp.Vector{X: vx, Y: vy})
	}
	return out, nil
}

// StraightVolley 没有脚本时的单发齐射
func StraightVolley(p VolleyParams) []cp.Vector {
	return []cp.Vector{{X: p.Speed * math.Cos(p.Angle), Y: p.Speed * math.Sin(p.Angle)}}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	default:
		return 0, false
	}
}
