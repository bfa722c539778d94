package game

import "testing"

// TestDefaultSettings 测试 DefaultSettings() 返回正确的默认值
func TestDefaultSettings(t *testing.T) {
	settings := DefaultSettings()
	if settings.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if settings.ShowDebug {
		t.Error("ShowDebug: got true, want false")
	}
}

// TestSettingsManager_NilGdata 测试降级模式
func TestSettingsManager_NilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	sm.SetFullscreen(true)
	if !sm.GetSettings().Fullscreen {
		t.Error("In-memory setting should change")
	}
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode: %v", err)
	}
	// 降级模式下 Load 恢复默认值
	if err := sm.Load(); err != nil {
		t.Errorf("Load() in degraded mode: %v", err)
	}
	if sm.GetSettings().Fullscreen {
		t.Error("Load() in degraded mode should reset to defaults")
	}
}

// TestSettingsManager_SaveAndLoad 测试持久化往返
func TestSettingsManager_SaveAndLoad(t *testing.T) {
	manager := createTestGdataManager(t, "settings")

	sm := NewSettingsManager(manager)
	sm.SetFullscreen(true)
	if !sm.ToggleShowDebug() {
		t.Fatal("ToggleShowDebug should return the new state (true)")
	}
	if err := sm.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	reloaded := NewSettingsManager(manager)
	got := reloaded.GetSettings()
	if !got.Fullscreen || !got.ShowDebug {
		t.Errorf("Reloaded settings = %+v, want fullscreen and debug enabled", got)
	}
}

// TestSettingsManager_CorruptData 测试损坏的存储数据回退到默认值
func TestSettingsManager_CorruptData(t *testing.T) {
	manager := createTestGdataManager(t, "settings_corrupt")
	if err := manager.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: [not a bool")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(manager)
	if sm.GetSettings().Fullscreen {
		t.Error("Corrupt settings should fall back to defaults")
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() should report corrupt data")
	}
}
