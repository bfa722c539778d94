package systems

import (
	"log"

	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
)

// AnimationSystem 管理所有实体的命名帧动画
type AnimationSystem struct {
	entityManager *ecs.EntityManager
}

// NewAnimationSystem 创建一个新的动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{
		entityManager: em,
	}
}

// PlayAnimation 播放命名动画
//
// ignoreIfPlaying 为 true 且该动画正在播放时不做任何事；否则从第 0 帧重新开始。
// 动画不存在时返回 false。
func PlayAnimation(anim *components.AnimationComponent, key string, ignoreIfPlaying bool) bool {
	clip, ok := anim.Clips[key]
	if !ok || len(clip.Frames) == 0 {
		log.Printf("[AnimationSystem] 动画不存在: %s", key)
		return false
	}

	if ignoreIfPlaying && anim.IsPlaying && anim.CurrentKey == key {
		return true
	}

	anim.CurrentKey = key
	anim.CurrentFrame = 0
	anim.FrameCounter = 0
	anim.RepeatCount = 0
	anim.IsPlaying = true
	anim.IsFinished = false
	return true
}

// CurrentClip 返回当前动画片段，未设置时返回 nil
func CurrentClip(anim *components.AnimationComponent) *components.AnimationClip {
	if anim.CurrentKey == "" {
		return nil
	}
	return anim.Clips[anim.CurrentKey]
}

// Update 推进所有正在播放的动画，并把当前帧写入 SpriteComponent
func (s *AnimationSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.AnimationComponent, *components.SpriteComponent](s.entityManager)

	for _, id := range entities {
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		sprite, _ := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)

		clip := CurrentClip(anim)
		if clip == nil || len(clip.Frames) == 0 {
			continue
		}

		if anim.IsPlaying {
			advance(anim, clip, deltaTime)
		}

		if anim.CurrentFrame < len(clip.Frames) {
			sprite.Image = clip.Frames[anim.CurrentFrame]
		}
	}
}

// advance 按帧速度前进，处理循环与重复次数
func advance(anim *components.AnimationComponent, clip *components.AnimationClip, deltaTime float64) {
	if clip.FrameSpeed <= 0 {
		return
	}

	anim.FrameCounter += deltaTime
	for anim.FrameCounter >= clip.FrameSpeed {
		anim.FrameCounter -= clip.FrameSpeed
		anim.CurrentFrame++

		if anim.CurrentFrame < len(clip.Frames) {
			continue
		}

		switch {
		case clip.Repeat < 0:
			// 无限循环
			anim.CurrentFrame = 0
		case anim.RepeatCount < clip.Repeat:
			anim.RepeatCount++
			anim.CurrentFrame = 0
		default:
			// 停在最后一帧并标记完成
			anim.CurrentFrame = len(clip.Frames) - 1
			anim.FrameCounter = 0
			anim.IsPlaying = false
			anim.IsFinished = true
			return
		}
	}
}
