// Package main provides a headless verification tool for projectile behavior.
//
// Usage:
//
//	go run ./cmd/verify_projectile [flags]
//
// Flags:
//
//	--config <path>   Behavior config (default: built-in defaults)
//	--script <path>   Volley script (default: value from config, empty = single shot)
//	--angle <deg>     Volley direction in degrees (default: 0, to the right)
//	--dt <seconds>    Fixed tick length (default: 1/60)
//	--max-ticks <n>   Give up after n ticks (default: 3600)
//	--verbose         Enable verbose logging
//
// Purpose:
//   - Print the collaborator call sequence of a single projectile
//   - Run a full volley in a headless world until every projectile is freed
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/gonewx/peashot/pkg/behavior"
	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/game"
	"github.com/gonewx/peashot/pkg/scripting"
	"github.com/jakecoffman/cp"
)

var (
	configFlag   = flag.String("config", "", "Behavior config path (empty = defaults)")
	scriptFlag   = flag.String("script", "", "Volley script path (overrides config)")
	angleFlag    = flag.Float64("angle", 0, "Volley direction in degrees")
	dtFlag       = flag.Float64("dt", 1.0/60, "Fixed tick length in seconds")
	maxTicksFlag = flag.Int("max-ticks", 3600, "Maximum ticks to simulate")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging")
)

// tracer 打印每次协作者调用的假实现
type tracer struct {
	pos  cp.Vector
	exit func()
}

func (t *tracer) Translate(d cp.Vector) {
	t.pos = t.pos.Add(d)
	fmt.Printf("  Translate(%.2f, %.2f) -> position (%.2f, %.2f)\n", d.X, d.Y, t.pos.X, t.pos.Y)
}
func (t *tracer) PlayScale()               { fmt.Println("  PlayScale()") }
func (t *tracer) PlayFlash()               { fmt.Println("  PlayFlash()") }
func (t *tracer) OnScreenExited(fn func()) { t.exit = fn; fmt.Println("  OnScreenExited(subscribed)") }
func (t *tracer) QueueFree()               { fmt.Println("  QueueFree()") }

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
	}

	if err := traceBehaviors(); err != nil {
		fmt.Fprintf(os.Stderr, "behavior trace failed: %v\n", err)
		os.Exit(1)
	}
	if err := runVolley(); err != nil {
		fmt.Fprintf(os.Stderr, "volley run failed: %v\n", err)
		os.Exit(1)
	}
}

func traceBehaviors() error {
	fmt.Println("== MovementBehavior: velocity (10, 0), dt 0.5")
	t := &tracer{}
	movement, err := behavior.NewMovementBehavior(t, cp.Vector{X: 10})
	if err != nil {
		return err
	}
	movement.Update(0.5)
	movement.Update(0)

	fmt.Println("== ProjectileLifecycle: spawn, exit, exit again")
	lifecycle, err := behavior.NewProjectileLifecycle(t, t, t, t)
	if err != nil {
		return err
	}
	lifecycle.Ready()
	t.exit()
	t.exit()
	fmt.Printf("  state = %s\n", lifecycle.State())

	fmt.Println("== ProjectileLifecycle: missing destroyer")
	if _, err := behavior.NewProjectileLifecycle(t, t, t, nil); err != nil {
		fmt.Printf("  error: %v\n", err)
	}
	return nil
}

func runVolley() error {
	cfg := config.DefaultBehaviorConfig()
	if *configFlag != "" {
		loaded, err := config.LoadBehaviorConfig(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	stats := game.NewStatsStore(nil)
	world, err := game.NewWorld(cfg, stats)
	if err != nil {
		return err
	}

	scriptPath := cfg.Projectile.Script
	if *scriptFlag != "" {
		scriptPath = *scriptFlag
	}
	if scriptPath != "" {
		script, err := scripting.LoadVolley(scriptPath)
		if err != nil {
			return err
		}
		world.SetVolley(script)
	}

	ids, err := world.FireVolley(cfg.Screen.Width/2, cfg.Screen.Height/2, *angleFlag*math.Pi/180)
	if err != nil {
		return err
	}
	fmt.Printf("== World: fired %d projectiles from the screen center\n", len(ids))

	ticks := 0
	for ; ticks < *maxTicksFlag && world.ProjectileCount() > 0; ticks++ {
		if removed := world.Tick(*dtFlag); removed > 0 {
			fmt.Printf("  tick %4d (%.2fs): freed %d, %d in flight\n", ticks+1, float64(ticks+1)**dtFlag, removed, world.ProjectileCount())
		}
	}
	// 回收最后一帧标记的实体
	world.Tick(0)

	st := stats.Stats()
	fmt.Printf("== Stats: spawned=%d scales=%d flashes=%d freed=%d expired=%d\n",
		st.Spawned, st.Scales, st.Flashes, st.Freed, st.Expired)
	if world.ProjectileCount() > 0 {
		return fmt.Errorf("%d projectiles still alive after %d ticks", world.ProjectileCount(), ticks)
	}
	return nil
}
