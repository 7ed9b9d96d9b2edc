package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadBehaviorConfig(t *testing.T) {
	tests := []struct {
		name        string
		yamlContent string
		wantErr     bool
		errContains string
		validate    func(*testing.T, *BehaviorConfig)
	}{
		{
			name: "valid config",
			yamlContent: `
screen:
  width: 1280
  height: 720
  margin: 16
projectile:
  speed: 500
  radius: 4
  maxLifetime: 10
  script: data/volleys/spread.tengo
  count: 3
scaleEffect:
  from: 0
  to: 1.5
  duration: 0.5
  easing: outCubic
flashEffect:
  duration: 0.2
  intensity: 0.8
`,
			validate: func(t *testing.T, cfg *BehaviorConfig) {
				if cfg.Screen.Width != 1280 || cfg.Screen.Height != 720 || cfg.Screen.Margin != 16 {
					t.Errorf("unexpected screen %+v", cfg.Screen)
				}
				if cfg.Projectile.Speed != 500 || cfg.Projectile.Count != 3 {
					t.Errorf("unexpected projectile %+v", cfg.Projectile)
				}
				if cfg.ScaleEffect.To != 1.5 || cfg.ScaleEffect.Easing != "outCubic" {
					t.Errorf("unexpected scaleEffect %+v", cfg.ScaleEffect)
				}
				if cfg.FlashEffect.Intensity != 0.8 {
					t.Errorf("expected intensity 0.8, got %f", cfg.FlashEffect.Intensity)
				}
				// 未写的段落保留默认值
				if cfg.Actor.Height != 32 || cfg.Animation.Frames != 6 {
					t.Errorf("expected defaults for actor/animation, got %+v %+v", cfg.Actor, cfg.Animation)
				}
			},
		},
		{
			name:        "invalid yaml",
			yamlContent: "screen: [1, 2",
			wantErr:     true,
			errContains: "failed to parse",
		},
		{
			name: "negative screen",
			yamlContent: `
screen:
  width: -1
  height: 600
`,
			wantErr:     true,
			errContains: "screen size",
		},
		{
			name: "unknown easing",
			yamlContent: `
scaleEffect:
  easing: wobble
`,
			wantErr:     true,
			errContains: "unknown easing",
		},
		{
			name: "intensity out of range",
			yamlContent: `
flashEffect:
  intensity: 1.5
`,
			wantErr:     true,
			errContains: "intensity",
		},
		{
			name: "zero count",
			yamlContent: `
projectile:
  count: 0
`,
			wantErr:     true,
			errContains: "count",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "behavior.yaml")
			if err := os.WriteFile(path, []byte(tt.yamlContent), 0o644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := LoadBehaviorConfig(path)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !strings.Contains(err.Error(), tt.errContains) {
					t.Errorf("error %q should contain %q", err, tt.errContains)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.validate(t, cfg)
		})
	}
}

func TestLoadBehaviorConfigMissingFile(t *testing.T) {
	_, err := LoadBehaviorConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("expected read error, got %v", err)
	}
}

func TestDefaultBehaviorConfigIsValid(t *testing.T) {
	if err := DefaultBehaviorConfig().Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestShippedBehaviorConfig(t *testing.T) {
	cfg, err := LoadBehaviorConfig(filepath.Join("..", "..", "data", "behavior.yaml"))
	if err != nil {
		t.Fatalf("data/behavior.yaml should load: %v", err)
	}
	if cfg.Projectile.Script == "" {
		t.Error("shipped config should reference a volley script")
	}
}

func TestScaleEffectEasingFunc(t *testing.T) {
	c := ScaleEffectConfig{Easing: "outQuad"}
	if got := c.EasingFunc()(0.5); got != 0.75 {
		t.Errorf("outQuad(0.5) = %v, expected 0.75", got)
	}

	bad := ScaleEffectConfig{Easing: "???"}
	if got := bad.EasingFunc()(0.5); got != 0.5 {
		t.Errorf("invalid easing should fall back to linear, got %v", got)
	}
}
