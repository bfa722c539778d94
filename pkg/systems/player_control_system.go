package systems

import (
	"strings"

	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/decker502/farmtown/pkg/entities"
	"github.com/decker502/farmtown/pkg/game"
	"github.com/decker502/farmtown/pkg/utils"
)

// PlayerControlSystem 把键盘状态转换为玩家速度与行走/待机动画
//
// 每帧:
//  1. 速度清零
//  2. 按 上 > 下 > 左 > 右 的优先级检查按键，只有第一个按下的键生效：
//     设置对应轴速度为 ±Speed，播放对应行走动画（正在播放则不重置）
//  3. 没有按键时，如果当前动画是 "<方向>Walk"，切换到 "<方向>Idle"；
//     否则不改变动画
//
// 因此任意一帧最多只有一个速度分量非零。
type PlayerControlSystem struct {
	entityManager *ecs.EntityManager
	keys          utils.KeyState
	events        *game.EventDispatcher // 可为 nil
}

// NewPlayerControlSystem 创建玩家控制系统
//
// 参数:
//   - em: 实体管理器
//   - keys: 按键状态来源
//   - events: 事件分发器，朝向变化时发送 game.EventPlayerFacing；可为 nil
func NewPlayerControlSystem(em *ecs.EntityManager, keys utils.KeyState, events *game.EventDispatcher) *PlayerControlSystem {
	return &PlayerControlSystem{
		entityManager: em,
		keys:          keys,
		events:        events,
	}
}

// SetKeyState 替换按键状态来源
func (s *PlayerControlSystem) SetKeyState(keys utils.KeyState) {
	s.keys = keys
}

// Update 处理所有玩家实体
func (s *PlayerControlSystem) Update(deltaTime float64) {
	players := ecs.GetEntitiesWith3[*components.PlayerComponent, *components.VelocityComponent, *components.AnimationComponent](s.entityManager)

	for _, id := range players {
		player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, id)
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id)
		s.control(player, vel, anim)
	}
}

// pressedDirection 按优先级返回第一个按下的方向，没有则返回空字符串
func (s *PlayerControlSystem) pressedDirection(keys components.KeyBindings) string {
	switch {
	case s.keys.IsKeyPressed(keys.Up):
		return components.FacingUp
	case s.keys.IsKeyPressed(keys.Down):
		return components.FacingDown
	case s.keys.IsKeyPressed(keys.Left):
		return components.FacingLeft
	case s.keys.IsKeyPressed(keys.Right):
		return components.FacingRight
	}
	return ""
}

func (s *PlayerControlSystem) control(player *components.PlayerComponent, vel *components.VelocityComponent, anim *components.AnimationComponent) {
	vel.VX, vel.VY = 0, 0

	if s.keys == nil {
		return
	}

	dir := s.pressedDirection(player.Keys)
	switch dir {
	case components.FacingUp:
		vel.VY = -player.Speed
	case components.FacingDown:
		vel.VY = player.Speed
	case components.FacingLeft:
		vel.VX = -player.Speed
	case components.FacingRight:
		vel.VX = player.Speed
	default:
		// 松开按键：行走动画切换为同方向的待机动画
		if facing, ok := strings.CutSuffix(anim.CurrentKey, "Walk"); ok {
			PlayAnimation(anim, entities.IdleAnimation(facing), true)
		}
		return
	}

	PlayAnimation(anim, entities.WalkAnimation(dir), true)

	if player.Facing != dir {
		player.Facing = dir
		if s.events != nil {
			s.events.Emit(game.EventPlayerFacing, game.PlayerFacingEvent{Facing: dir})
		}
	}
}
