package entities

import (
	"fmt"

	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/config"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/decker502/farmtown/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/resolv"
)

// Facings 四个行走方向，顺序与动画表中的行一致
var Facings = []string{components.FacingDown, components.FacingUp, components.FacingLeft, components.FacingRight}

// WalkAnimation 返回方向对应的行走动画名，如 "upWalk"
func WalkAnimation(facing string) string {
	return facing + "Walk"
}

// IdleAnimation 返回方向对应的待机动画名，如 "upIdle"
func IdleAnimation(facing string) string {
	return facing + "Idle"
}

// PlayerSpawn 玩家出生参数
type PlayerSpawn struct {
	X, Y   float64
	Facing string
	Keys   components.KeyBindings
}

// ParseKeyBindings 解析配置中的四个移动键
func ParseKeyBindings(cfg config.KeyBindingConfig) (components.KeyBindings, error) {
	var kb components.KeyBindings
	for _, b := range []struct {
		name string
		dst  *ebiten.Key
	}{
		{cfg.Up, &kb.Up},
		{cfg.Down, &kb.Down},
		{cfg.Left, &kb.Left},
		{cfg.Right, &kb.Right},
	} {
		key, err := utils.ParseKey(b.name)
		if err != nil {
			return components.KeyBindings{}, fmt.Errorf("invalid key binding: %w", err)
		}
		*b.dst = key
	}
	return kb, nil
}

// BuildAnimationClips 把动画配置与切好的帧组合成命名动画
func BuildAnimationClips(set *config.AnimationSetConfig, frames []*ebiten.Image) (map[string]*components.AnimationClip, error) {
	if maxIdx := set.MaxFrameIndex(); maxIdx >= len(frames) {
		return nil, fmt.Errorf("animation frame %d out of range: sprite sheet has %d frames", maxIdx, len(frames))
	}

	clips := make(map[string]*components.AnimationClip, len(set.Animations))
	for _, a := range set.Animations {
		clipFrames := make([]*ebiten.Image, len(a.Frames))
		for i, idx := range a.Frames {
			clipFrames[i] = frames[idx]
		}
		clips[a.Key] = &components.AnimationClip{
			Key:        a.Key,
			Frames:     clipFrames,
			FrameSpeed: 1.0 / a.FrameRate,
			Repeat:     a.Repeat,
		}
	}
	return clips, nil
}

// NewPlayerEntity 创建玩家实体
//
// 精灵以中心为锚点放置在出生点，按配置缩放。碰撞盒尺寸与偏移以源图像素给出，
// 偏移相对于帧左上角，都会乘以缩放后换算为相对实体中心的世界像素。
// 玩家初始不播放任何动画，显示朝向对应待机动画的第一帧。
//
// 参数:
//   - em: 实体管理器
//   - space: 碰撞空间，为 nil 时不加入空间
//   - rm: 资源加载器
//   - cfg: 玩家配置
//   - spawn: 出生位置、朝向与按键
func NewPlayerEntity(em *ecs.EntityManager, space *resolv.Space, rm ResourceLoader, cfg config.PlayerConfig, spawn PlayerSpawn) (ecs.EntityID, error) {
	set, err := rm.LoadAnimationSet(cfg.Animations)
	if err != nil {
		return 0, fmt.Errorf("failed to load player animations: %w", err)
	}

	required := make([]string, 0, len(Facings)*2)
	for _, f := range Facings {
		required = append(required, WalkAnimation(f), IdleAnimation(f))
	}
	if err := set.RequireClips(required...); err != nil {
		return 0, fmt.Errorf("player animations: %w", err)
	}

	sheet, err := rm.LoadImage(set.Image)
	if err != nil {
		return 0, fmt.Errorf("failed to load player sprite sheet: %w", err)
	}
	frames, err := utils.SliceFrames(sheet, set.FrameWidth, set.FrameHeight)
	if err != nil {
		return 0, fmt.Errorf("failed to slice player sprite sheet: %w", err)
	}
	clips, err := BuildAnimationClips(set, frames)
	if err != nil {
		return 0, err
	}

	facing := spawn.Facing
	if facing == "" {
		facing = cfg.Facing
	}

	// 碰撞盒：相对实体中心的偏移 = 帧左上角偏移 + 配置偏移，全部乘以缩放
	scale := cfg.Scale
	bodyW := cfg.Body.Width * scale
	bodyH := cfg.Body.Height * scale
	offX := -float64(set.FrameWidth)*scale/2 + cfg.Body.OffsetX*scale
	offY := -float64(set.FrameHeight)*scale/2 + cfg.Body.OffsetY*scale

	obj := resolv.NewObject(spawn.X+offX, spawn.Y+offY, bodyW, bodyH, components.TagPlayer)
	if space != nil {
		space.Add(obj)
	}

	entityID := em.CreateEntity()

	ecs.AddComponent(em, entityID, &components.PositionComponent{X: spawn.X, Y: spawn.Y})
	ecs.AddComponent(em, entityID, &components.VelocityComponent{})
	ecs.AddComponent(em, entityID, &components.SpriteComponent{
		Image:   clips[IdleAnimation(facing)].Frames[0],
		OriginX: 0.5,
		OriginY: 0.5,
		Depth:   cfg.Depth,
	})
	ecs.AddComponent(em, entityID, &components.ScaleComponent{ScaleX: scale, ScaleY: scale})
	ecs.AddComponent(em, entityID, &components.AnimationComponent{Clips: clips})
	ecs.AddComponent(em, entityID, &components.BodyComponent{
		Object:             obj,
		Width:              bodyW,
		Height:             bodyH,
		OffsetX:            offX,
		OffsetY:            offY,
		CollideWorldBounds: true,
	})
	ecs.AddComponent(em, entityID, &components.PlayerComponent{
		Keys:   spawn.Keys,
		Facing: facing,
		Speed:  cfg.Speed,
	})

	return entityID, nil
}
