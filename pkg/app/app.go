// Package app 提供沙盒应用的核心包装器
//
// 该包把初始化逻辑从 main 包提取出来：main.go 只负责解析参数、
// 初始化嵌入资源，然后调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"path/filepath"

	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/game"
	"github.com/gonewx/peashot/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 行为配置路径
	ConfigPath string
	// Watch 监听 data/ 目录并热重载配置和脚本
	Watch bool
	// AppName gdata 存储名，为空时不持久化统计
	AppName string
}

// App 是沙盒应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager *game.SceneManager
	sandbox      *scenes.SandboxScene
	watcher      *config.Watcher
	width        int
	height       int
	verbose      bool
}

// NewApp 创建并初始化沙盒应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = "data/behavior.yaml"
	}

	stats := game.NewStatsStore(openGdata(cfg.AppName))

	sandbox, err := scenes.NewSandboxScene(scenes.SandboxOptions{
		ConfigPath: cfg.ConfigPath,
		Stats:      stats,
		Verbose:    cfg.Verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("沙盒场景创建失败: %w", err)
	}

	sceneManager := game.NewSceneManager()
	sceneManager.SwitchTo(sandbox)

	screen := sandbox.World().Config().Screen
	a := &App{
		sceneManager: sceneManager,
		sandbox:      sandbox,
		width:        int(screen.Width),
		height:       int(screen.Height),
		verbose:      cfg.Verbose,
	}

	if cfg.Watch {
		a.startWatcher(cfg.ConfigPath, sandbox.World().Config().Projectile.Script)
	}

	return a, nil
}

// openGdata 打开 gdata 存储，失败时返回 nil（降级模式）
func openGdata(appName string) *gdata.Manager {
	if appName == "" {
		return nil
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (stats will not be saved)", err)
		return nil
	}
	return m
}

// startWatcher 监听配置和脚本所在目录
// 目录不存在（只使用嵌入资源）时不监听
func (a *App) startWatcher(paths ...string) {
	seen := make(map[string]bool)
	dirs := make([]string, 0, len(paths))
	for _, p := range paths {
		if p == "" {
			continue
		}
		dir := filepath.Dir(p)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}

	w, err := config.NewWatcher(dirs...)
	if err != nil {
		log.Printf("[App] Warning: hot reload disabled: %v", err)
		return
	}
	a.watcher = w
	log.Printf("[App] 热重载已启用: %v", dirs)
}

// drainWatcher 处理所有待处理的文件变化（非阻塞）
func (a *App) drainWatcher() {
	if a.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.watcher.Events:
			if !ok {
				a.watcher = nil
				return
			}
			if a.sandbox.Reload(path) {
				log.Printf("[App] 已重载 %s", path)
			}
		case err, ok := <-a.watcher.Errors:
			if !ok {
				a.watcher = nil
				return
			}
			log.Printf("[App] Warning: watcher error: %v", err)
		default:
			return
		}
	}
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// Esc 退出，RunGame 返回后 main 调用 Close 保存统计
	if quitRequested(inpututil.IsKeyJustPressed) {
		log.Printf("[App] Esc pressed, exiting")
		return ebiten.Termination
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	a.drainWatcher()

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)
	return nil
}

// quitRequested 报告本帧是否按下了退出键
func quitRequested(justPressed func(ebiten.Key) bool) bool {
	return justPressed(ebiten.KeyEscape)
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.width, a.height
}

// Size 逻辑屏幕尺寸，用于设置窗口大小
func (a *App) Size() (int, int) {
	return a.width, a.height
}

// Close 保存状态并停止热重载
func (a *App) Close() error {
	a.sceneManager.SaveOnExit()
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
