package config

import (
	"fmt"
	"os"

	"github.com/gonewx/peashot/pkg/utils"
	"gopkg.in/yaml.v3"
)

// BehaviorConfig 行为配置
//
// 配置文件位置: data/behavior.yaml
type BehaviorConfig struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Projectile  ProjectileConfig  `yaml:"projectile"`
	ScaleEffect ScaleEffectConfig `yaml:"scaleEffect"`
	FlashEffect FlashEffectConfig `yaml:"flashEffect"`
	Actor       ActorConfig       `yaml:"actor"`
	Animation   AnimationConfig   `yaml:"animation"`
}

// ScreenConfig 视口配置
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	// Margin 离屏判定的额外边距（像素），可见区域向外扩展 Margin
	Margin float64 `yaml:"margin"`
}

// ProjectileConfig 子弹配置
type ProjectileConfig struct {
	Speed  float64 `yaml:"speed"`  // 像素/秒
	Radius float64 `yaml:"radius"` // 像素
	// MaxLifetime 兜底生命周期（秒），0 表示不限制
	MaxLifetime float64 `yaml:"maxLifetime"`
	// Script 齐射脚本路径（data/volleys/*.tengo）
	Script string `yaml:"script"`
	// Count 每次齐射的子弹数
	Count int `yaml:"count"`
	// SpreadDegrees 齐射扇形总角度（度）
	SpreadDegrees float64 `yaml:"spreadDegrees"`
}

// ScaleEffectConfig 生成缩放效果
type ScaleEffectConfig struct {
	From     float64 `yaml:"from"`
	To       float64 `yaml:"to"`
	Duration float64 `yaml:"duration"`
	Easing   string  `yaml:"easing"`
}

// FlashEffectConfig 生成闪烁效果
type FlashEffectConfig struct {
	Duration  float64 `yaml:"duration"`
	Intensity float64 `yaml:"intensity"`
}

// ActorConfig 玩家角色配置
type ActorConfig struct {
	Speed     float64 `yaml:"speed"`
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	FallSpeed float64 `yaml:"fallSpeed"`
	JumpPower float64 `yaml:"jumpPower"`
}

// AnimationConfig 角色待机动画
type AnimationConfig struct {
	Frames int `yaml:"frames"`
	FPS    int `yaml:"fps"`
}

// DefaultBehaviorConfig 返回内置默认配置
func DefaultBehaviorConfig() *BehaviorConfig {
	return &BehaviorConfig{
		Screen: ScreenConfig{Width: 800, Height: 600, Margin: 0},
		Projectile: ProjectileConfig{
			Speed:         360,
			Radius:        6,
			MaxLifetime:   30,
			Count:         1,
			SpreadDegrees: 30,
		},
		ScaleEffect: ScaleEffectConfig{From: 0.2, To: 1.0, Duration: 0.25, Easing: "outBack"},
		FlashEffect: FlashEffectConfig{Duration: 0.15, Intensity: 1.0},
		Actor: ActorConfig{
			Speed:     100,
			Width:     18,
			Height:    32,
			FallSpeed: 98,
			JumpPower: 100,
		},
		Animation: AnimationConfig{Frames: 6, FPS: 5},
	}
}

// LoadBehaviorConfig 从文件加载行为配置
//
// 参数:
//   - path: 配置文件路径（如 "data/behavior.yaml"）
//
// 返回:
//   - *BehaviorConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadBehaviorConfig(path string) (*BehaviorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read behavior config: %w", err)
	}
	return ParseBehaviorConfig(data)
}

// ParseBehaviorConfig 解析 YAML 数据
// 文件中缺省的字段保留 DefaultBehaviorConfig 的值
func ParseBehaviorConfig(data []byte) (*BehaviorConfig, error) {
	config := DefaultBehaviorConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse behavior config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid behavior config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
func (c *BehaviorConfig) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %.0fx%.0f", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.Margin < 0 {
		return fmt.Errorf("screen margin must be >= 0, got %.1f", c.Screen.Margin)
	}

	if c.Projectile.Speed < 0 {
		return fmt.Errorf("projectile speed must be >= 0, got %.1f", c.Projectile.Speed)
	}
	if c.Projectile.Radius <= 0 {
		return fmt.Errorf("projectile radius must be positive, got %.1f", c.Projectile.Radius)
	}
	if c.Projectile.MaxLifetime < 0 {
		return fmt.Errorf("projectile maxLifetime must be >= 0, got %.1f", c.Projectile.MaxLifetime)
	}
	if c.Projectile.SpreadDegrees < 0 || c.Projectile.SpreadDegrees > 360 {
		return fmt.Errorf("projectile spreadDegrees must be in [0, 360], got %.1f", c.Projectile.SpreadDegrees)
	}
	if c.Projectile.Count < 1 {
		return fmt.Errorf("projectile count must be >= 1, got %d", c.Projectile.Count)
	}

	if c.ScaleEffect.Duration < 0 {
		return fmt.Errorf("scaleEffect duration must be >= 0, got %.2f", c.ScaleEffect.Duration)
	}
	if _, err := utils.EasingByName(c.ScaleEffect.Easing); err != nil {
		return fmt.Errorf("scaleEffect: %w", err)
	}

	if c.FlashEffect.Duration < 0 {
		return fmt.Errorf("flashEffect duration must be >= 0, got %.2f", c.FlashEffect.Duration)
	}
	if c.FlashEffect.Intensity < 0 || c.FlashEffect.Intensity > 1 {
		return fmt.Errorf("flashEffect intensity must be in [0, 1], got %.2f", c.FlashEffect.Intensity)
	}

	if c.Actor.Width <= 0 || c.Actor.Height <= 0 {
		return fmt.Errorf("actor size must be positive, got %.0fx%.0f", c.Actor.Width, c.Actor.Height)
	}

	if c.Animation.Frames < 1 {
		return fmt.Errorf("animation frames must be >= 1, got %d", c.Animation.Frames)
	}
	if c.Animation.FPS <= 0 {
		return fmt.Errorf("animation fps must be positive, got %d", c.Animation.FPS)
	}

	return nil
}

// EasingFunc 返回缩放效果的缓动函数
// Validate 已经保证名字合法
func (c *ScaleEffectConfig) EasingFunc() utils.EasingFunc {
	fn, err := utils.EasingByName(c.Easing)
	if err != nil {
		return utils.EaseLinear
	}
	return fn
}
