package scenes

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/config"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/gonewx/peashot/pkg/embedded"
	"github.com/gonewx/peashot/pkg/game"
	"github.com/gonewx/peashot/pkg/scripting"
	"github.com/gonewx/peashot/pkg/systems"
	"github.com/gonewx/peashot/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	backgroundColor = color.RGBA{R: 24, G: 28, B: 40, A: 255}
	platformColor   = color.RGBA{R: 90, G: 110, B: 140, A: 255}
	actorColor      = color.RGBA{R: 240, G: 200, B: 90, A: 255}
	hudColor        = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// platformHeight 地面平台高度（像素）
const platformHeight = 40

// SandboxOptions 沙盒场景启动参数
type SandboxOptions struct {
	// ConfigPath 行为配置路径，磁盘上不存在时读取嵌入版本
	ConfigPath string
	// Stats 统计存储，可为 nil
	Stats *game.StatsStore
	// Verbose 打开系统调试日志
	Verbose bool
}

// SandboxScene 子弹沙盒
//
// 鼠标点击（或触摸）朝指针方向发射一次齐射，方向键或 A/D 移动角色，
// 空格、W 或上方向键跳跃，R 键重置角色。data/ 下的配置和脚本修改后通过 Reload 生效。
type SandboxScene struct {
	opts  SandboxOptions
	world *game.World

	face    *text.GoXFace
	sheet   *ebiten.Image
	ground  *ebiten.Image
	artDone bool

	lastReload string
}

// NewSandboxScene 创建沙盒场景
//
// 不创建任何 ebiten 图像，图像在第一次 Draw 时生成，
// 所以可以在游戏循环之外（测试、无头模式）构造。
func NewSandboxScene(opts SandboxOptions) (*SandboxScene, error) {
	if opts.ConfigPath == "" {
		opts.ConfigPath = "data/behavior.yaml"
	}

	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	world, err := game.NewWorld(cfg, opts.Stats)
	if err != nil {
		return nil, err
	}
	world.SetVerbose(opts.Verbose)

	s := &SandboxScene{opts: opts, world: world}
	if err := s.loadVolley(cfg.Projectile.Script); err != nil {
		log.Printf("[SandboxScene] Warning: %v (using single shots)", err)
	}

	if _, err := world.SpawnPlatform(cfg.Screen.Width/2, cfg.Screen.Height-platformHeight/2, cfg.Screen.Width, platformHeight, nil); err != nil {
		return nil, fmt.Errorf("failed to create ground: %w", err)
	}
	if err := s.resetActor(); err != nil {
		return nil, err
	}

	if opts.Stats != nil {
		opts.Stats.BeginSession()
	}
	return s, nil
}

// World 返回沙盒世界
func (s *SandboxScene) World() *game.World { return s.world }

func loadConfig(path string) (*config.BehaviorConfig, error) {
	data, fromDisk, err := embedded.ReadFileOrEmbedded(path)
	if err != nil {
		return nil, err
	}
	cfg, err := config.ParseBehaviorConfig(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[SandboxScene] 加载配置 %s (磁盘=%v)", path, fromDisk)
	return cfg, nil
}

func (s *SandboxScene) loadVolley(path string) error {
	if path == "" {
		s.world.SetVolley(nil)
		return nil
	}
	src, _, err := embedded.ReadFileOrEmbedded(path)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	script, err := scripting.CompileVolley(name, src)
	if err != nil {
		return err
	}
	s.world.SetVolley(script)
	log.Printf("[SandboxScene] 加载齐射脚本 %s", path)
	return nil
}

// resetActor 在屏幕中央上方重新生成角色
func (s *SandboxScene) resetActor() error {
	cfg := s.world.Config()
	id, err := s.world.SpawnActor(cfg.Screen.Width/2, cfg.Screen.Height/3, s.sheet)
	if err != nil {
		return fmt.Errorf("failed to create actor: %w", err)
	}
	log.Printf("[SandboxScene] 角色 %d 已生成", id)
	return nil
}

// Reload 处理一个发生变化的文件
//
// 配置文件变化时重新解析配置（失败时保留旧配置），
// 当前齐射脚本变化时重新编译。其他文件忽略。
//
// 返回: 是否应用了新内容
func (s *SandboxScene) Reload(path string) bool {
	path = filepath.ToSlash(filepath.Clean(path))
	cfg := s.world.Config()

	switch {
	case sameFile(path, s.opts.ConfigPath):
		newCfg, err := loadConfig(s.opts.ConfigPath)
		if err != nil {
			log.Printf("[SandboxScene] Warning: reload failed: %v (keeping previous config)", err)
			return false
		}
		s.world.SetConfig(newCfg)
		if newCfg.Projectile.Script != cfg.Projectile.Script {
			if err := s.loadVolley(newCfg.Projectile.Script); err != nil {
				log.Printf("[SandboxScene] Warning: %v (keeping previous script)", err)
			}
		}
	case cfg.Projectile.Script != "" && sameFile(path, cfg.Projectile.Script):
		if err := s.loadVolley(cfg.Projectile.Script); err != nil {
			log.Printf("[SandboxScene] Warning: %v (keeping previous script)", err)
			return false
		}
	default:
		return false
	}

	s.lastReload = filepath.Base(path)
	return true
}

// sameFile 比较监听到的路径和配置中的相对路径
// fsnotify 返回的路径可能带目录前缀
func sameFile(changed, configured string) bool {
	configured = filepath.ToSlash(filepath.Clean(configured))
	return changed == configured || strings.HasSuffix(changed, "/"+configured)
}

// Update 读取输入并推进世界
func (s *SandboxScene) Update(deltaTime float64) {
	s.world.SetInput(readInput(ebiten.IsKeyPressed, inpututil.IsKeyJustPressed))

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := s.resetActor(); err != nil {
			log.Printf("[SandboxScene] Warning: %v", err)
		}
	}

	if pressed, px, py := utils.IsPointerJustPressed(); pressed {
		s.fire(float64(px), float64(py))
	}

	s.world.Tick(deltaTime)
}

var (
	leftKeys  = []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}
	rightKeys = []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}
	jumpKeys  = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}
)

// readInput 把按键状态映射为角色输入
// pressed/justPressed 通常是 ebiten.IsKeyPressed 和 inpututil.IsKeyJustPressed
func readInput(pressed, justPressed func(ebiten.Key) bool) systems.InputState {
	return systems.InputState{
		Left:        anyKey(leftKeys, pressed),
		Right:       anyKey(rightKeys, pressed),
		JumpPressed: anyKey(jumpKeys, justPressed),
		JumpHeld:    anyKey(jumpKeys, pressed),
	}
}

func anyKey(keys []ebiten.Key, fn func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if fn(k) {
			return true
		}
	}
	return false
}

// fire 从角色位置（没有角色时从屏幕中心）朝 (tx, ty) 齐射
func (s *SandboxScene) fire(tx, ty float64) {
	cfg := s.world.Config()
	ox, oy := cfg.Screen.Width/2, cfg.Screen.Height/2
	if player := s.world.Player(); player != 0 {
		if pos, ok := ecs.GetComponent[*components.PositionComponent](s.world.EntityManager(), player); ok {
			ox, oy = pos.X, pos.Y
		}
	}

	if _, err := s.world.FireVolley(ox, oy, utils.AimAngle(ox, oy, tx, ty)); err != nil {
		log.Printf("[SandboxScene] Warning: %v", err)
	}
}

// Draw 绘制世界和状态栏
func (s *SandboxScene) Draw(screen *ebiten.Image) {
	s.ensureArt()

	screen.Fill(backgroundColor)
	s.world.Draw(screen)
	s.drawHUD(screen)
}

// ensureArt 生成角色帧图集和地面图像，并挂到已有实体上
func (s *SandboxScene) ensureArt() {
	if s.artDone {
		return
	}
	s.artDone = true

	cfg := s.world.Config()
	s.face = text.NewGoXFace(basicfont.Face7x13)
	s.sheet = newActorSheet(int(cfg.Actor.Width), int(cfg.Actor.Height), cfg.Animation.Frames)
	s.ground = ebiten.NewImage(int(cfg.Screen.Width), platformHeight)
	s.ground.Fill(platformColor)

	em := s.world.EntityManager()
	for _, id := range ecs.GetEntitiesWith1[*components.StaticComponent](em) {
		em.AddComponent(id, &components.SpriteComponent{Image: s.ground})
	}
	if player := s.world.Player(); player != 0 {
		if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, player); ok {
			sprite.Image = s.sheet
		}
	}
}

// newActorSheet 生成横向排列的待机动画帧：身体上下起伏
func newActorSheet(w, h, frames int) *ebiten.Image {
	if frames < 1 {
		frames = 1
	}
	sheet := ebiten.NewImage(w*frames, h)
	for i := 0; i < frames; i++ {
		bob := float32(i%3) - 1
		x := float32(i * w)
		vector.DrawFilledRect(sheet, x+2, 4+bob, float32(w-4), float32(h-6), actorColor, false)
		vector.DrawFilledRect(sheet, x+float32(w)/2, 8+bob, 3, 3, backgroundColor, false)
	}
	return sheet
}

func (s *SandboxScene) drawHUD(screen *ebiten.Image) {
	lines := []string{
		fmt.Sprintf("projectiles: %d", s.world.ProjectileCount()),
		"click: fire  arrows/AD: move  space/W/up: jump  R: reset  esc: quit",
	}
	if s.opts.Stats != nil {
		st := s.opts.Stats.Stats()
		lines = append(lines, fmt.Sprintf("spawned %d  freed %d  expired %d  peak %d", st.Spawned, st.Freed, st.Expired, st.MaxAlive))
	}
	if s.lastReload != "" {
		lines = append(lines, "reloaded "+s.lastReload)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 6)
	op.ColorScale.ScaleWithColor(hudColor)
	op.LineSpacing = 16
	text.Draw(screen, strings.Join(lines, "\n"), s.face, op)
}

// SaveOnExit 保存统计
func (s *SandboxScene) SaveOnExit() bool {
	if s.opts.Stats == nil {
		return true
	}
	if err := s.opts.Stats.Save(); err != nil {
		log.Printf("[SandboxScene] Warning: failed to save stats: %v", err)
		return false
	}
	return true
}
