package systems

import (
	"image"
	"image/color"
	"sort"

	"github.com/gonewx/peashot/pkg/components"
	"github.com/gonewx/peashot/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// circleTextureRadius 圆形纹理的基准半径，绘制时按 Radius 缩放
const circleTextureRadius = 32

// RenderSystem 绘制游戏世界实体
//
// 支持两种外观：
//   - RenderableComponent: 纯色圆（子弹）
//   - SpriteComponent: 精灵图集中的一帧（玩家、平台）
//
// ScaleComponent 缩放绘制尺寸，FlashEffectComponent 叠加一层白色。
type RenderSystem struct {
	entityManager *ecs.EntityManager
	circle        *ebiten.Image
}

// NewRenderSystem 创建一个新的渲染系统
func NewRenderSystem(em *ecs.EntityManager) *RenderSystem {
	return &RenderSystem{entityManager: em}
}

// drawItem 一个待绘制实体
type drawItem struct {
	id    ecs.EntityID
	layer int
}

// drawQueue 返回按图层升序、同图层按 ID 升序排列的绘制队列
func (s *RenderSystem) drawQueue() []drawItem {
	seen := make(map[ecs.EntityID]struct{})
	queue := make([]drawItem, 0)

	for _, id := range ecs.GetEntitiesWith2[*components.RenderableComponent, *components.PositionComponent](s.entityManager) {
		r, _ := ecs.GetComponent[*components.RenderableComponent](s.entityManager, id)
		queue = append(queue, drawItem{id: id, layer: r.Layer})
		seen[id] = struct{}{}
	}
	for _, id := range ecs.GetEntitiesWith2[*components.SpriteComponent, *components.PositionComponent](s.entityManager) {
		if _, ok := seen[id]; ok {
			continue
		}
		queue = append(queue, drawItem{id: id})
	}

	sort.SliceStable(queue, func(i, j int) bool {
		if queue[i].layer != queue[j].layer {
			return queue[i].layer < queue[j].layer
		}
		return queue[i].id < queue[j].id
	})
	return queue
}

// Draw 绘制所有实体
func (s *RenderSystem) Draw(screen *ebiten.Image) {
	for _, item := range s.drawQueue() {
		s.drawEntity(screen, item.id)
	}
}

func (s *RenderSystem) drawEntity(screen *ebiten.Image, id ecs.EntityID) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return
	}

	scaleX, scaleY := 1.0, 1.0
	if scale, ok := ecs.GetComponent[*components.ScaleComponent](s.entityManager, id); ok {
		scaleX, scaleY = scale.ScaleX, scale.ScaleY
	}
	flash := 0.0
	if f, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, id); ok {
		flash = f.CurrentIntensity()
	}

	if r, ok := ecs.GetComponent[*components.RenderableComponent](s.entityManager, id); ok {
		s.drawCircle(screen, pos, r, scaleX, scaleY, flash)
		return
	}
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		drawSprite(screen, pos, sprite, scaleX, scaleY, flash)
	}
}

func (s *RenderSystem) drawCircle(screen *ebiten.Image, pos *components.PositionComponent, r *components.RenderableComponent, scaleX, scaleY, flash float64) {
	if s.circle == nil {
		size := circleTextureRadius * 2
		s.circle = ebiten.NewImage(size, size)
		vector.DrawFilledCircle(s.circle, circleTextureRadius, circleTextureRadius, circleTextureRadius, color.White, true)
	}

	k := r.Radius / circleTextureRadius
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-circleTextureRadius, -circleTextureRadius)
	op.GeoM.Scale(k*scaleX, k*scaleY)
	op.GeoM.Translate(pos.X, pos.Y)
	op.ColorScale.ScaleWithColor(r.Color)
	screen.DrawImage(s.circle, op)

	// 闪烁：同一位置叠加半透明白色
	if flash > 0 {
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(flash))
		screen.DrawImage(s.circle, op)
	}
}

func drawSprite(screen *ebiten.Image, pos *components.PositionComponent, sprite *components.SpriteComponent, scaleX, scaleY, flash float64) {
	if sprite.Image == nil {
		return
	}

	frame := sprite.Image
	w, h := sprite.FrameWidth, sprite.FrameHeight
	if w > 0 && h > 0 {
		cols := sprite.Image.Bounds().Dx() / w
		if cols < 1 {
			cols = 1
		}
		x := (sprite.Index % cols) * w
		y := (sprite.Index / cols) * h
		frame = sprite.Image.SubImage(image.Rect(x, y, x+w, y+h)).(*ebiten.Image)
	} else {
		w, h = sprite.Image.Bounds().Dx(), sprite.Image.Bounds().Dy()
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(w)/2, -float64(h)/2)
	op.GeoM.Scale(scaleX, scaleY)
	op.GeoM.Translate(pos.X, pos.Y)
	if sprite.Tint.A != 0 {
		op.ColorScale.ScaleWithColor(sprite.Tint)
	}
	if flash > 0 {
		f := float32(1 + flash)
		op.ColorScale.Scale(f, f, f, 1)
	}
	screen.DrawImage(frame, op)
}
