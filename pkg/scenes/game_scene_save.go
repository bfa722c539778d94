package scenes

import (
	"log"

	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/decker502/farmtown/pkg/game"
)

// SaveOnExit 实现 game.Saveable 接口
//
// 保存玩家位置与朝向，下次 Create 时恢复。
// 场景未创建成功时无需保存，返回 true。
func (s *GameScene) SaveOnExit() bool {
	if !s.created || s.gameState == nil {
		return true
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, s.playerEntity)
	if !ok {
		return true
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](s.entityManager, s.playerEntity)

	save := &game.PlayerSave{X: pos.X, Y: pos.Y}
	if player != nil {
		save.Facing = player.Facing
	}

	if err := s.gameState.GetSaveManager().Save(s.cfg.Key, save); err != nil {
		log.Printf("[GameScene] Failed to save on exit: %v", err)
		return false
	}
	return true
}
