package game

import (
	"fmt"
	"log"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// PlayerSave 玩家在某个场景中的存档
type PlayerSave struct {
	X       float64   `yaml:"x"`       // 世界坐标（精灵中心）
	Y       float64   `yaml:"y"`       //
	Facing  string    `yaml:"facing"`  // 最后的行走方向
	SavedAt time.Time `yaml:"savedAt"` // 保存时间
}

// SaveManager 保存管理器
//
// 每个场景一份存档，存储在 gdata 的 "saves" 对象下，属性名为场景键。
// gdataManager 为 nil 时进入降级模式：读取总是返回"无存档"，写入静默成功。
type SaveManager struct {
	gdataManager *gdata.Manager
}

const savesObject = "saves"

// NewSaveManager 创建保存管理器
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	return &SaveManager{gdataManager: gdataManager}
}

// HasSave 检查场景是否有存档
func (sm *SaveManager) HasSave(sceneKey string) bool {
	if sm.gdataManager == nil {
		return false
	}
	return sm.gdataManager.ObjectPropExists(savesObject, sceneKey)
}

// Load 加载场景存档
//
// 返回：
//   - *PlayerSave: 存档数据，没有存档时为 nil
//   - error: 存档存在但无法读取或解析
func (sm *SaveManager) Load(sceneKey string) (*PlayerSave, error) {
	if !sm.HasSave(sceneKey) {
		return nil, nil
	}

	data, err := sm.gdataManager.LoadObjectProp(savesObject, sceneKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load save for scene %s: %w", sceneKey, err)
	}

	var save PlayerSave
	if err := yaml.Unmarshal(data, &save); err != nil {
		return nil, fmt.Errorf("failed to unmarshal save for scene %s: %w", sceneKey, err)
	}

	log.Printf("[SaveManager] Loaded save for scene %s: (%.1f, %.1f) facing %s", sceneKey, save.X, save.Y, save.Facing)
	return &save, nil
}

// Save 写入场景存档，SavedAt 为零值时填入当前时间
func (sm *SaveManager) Save(sceneKey string, save *PlayerSave) error {
	if sm.gdataManager == nil {
		return nil
	}
	if save == nil {
		return fmt.Errorf("save data is nil")
	}
	if save.SavedAt.IsZero() {
		save.SavedAt = time.Now()
	}

	data, err := yaml.Marshal(save)
	if err != nil {
		return fmt.Errorf("failed to marshal save: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(savesObject, sceneKey, data); err != nil {
		return fmt.Errorf("failed to save scene %s: %w", sceneKey, err)
	}

	log.Printf("[SaveManager] Saved scene %s", sceneKey)
	return nil
}
