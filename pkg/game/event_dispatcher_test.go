package game

import "testing"

// TestEventDispatcher_OnEmitOff 测试订阅、分发与取消
func TestEventDispatcher_OnEmitOff(t *testing.T) {
	d := NewEventDispatcher()

	var order []string
	idA := d.On(EventPlayerFacing, func(data interface{}) {
		order = append(order, "a:"+data.(PlayerFacingEvent).Facing)
	})
	d.On(EventPlayerFacing, func(data interface{}) {
		order = append(order, "b:"+data.(PlayerFacingEvent).Facing)
	})

	if n := d.Emit(EventPlayerFacing, PlayerFacingEvent{Facing: "up"}); n != 2 {
		t.Errorf("Emit returned %d, want 2", n)
	}
	if len(order) != 2 || order[0] != "a:up" || order[1] != "b:up" {
		t.Errorf("Unexpected call order: %v", order)
	}

	d.Off(EventPlayerFacing, idA)
	order = nil
	d.Emit(EventPlayerFacing, PlayerFacingEvent{Facing: "left"})
	if len(order) != 1 || order[0] != "b:left" {
		t.Errorf("After Off, calls = %v", order)
	}
	if d.ListenerCount(EventPlayerFacing) != 1 {
		t.Errorf("ListenerCount = %d, want 1", d.ListenerCount(EventPlayerFacing))
	}
}

// TestEventDispatcher_NoListeners 测试无订阅者时的分发
func TestEventDispatcher_NoListeners(t *testing.T) {
	d := NewEventDispatcher()
	if n := d.Emit(EventPlayerMoved, PlayerMovedEvent{}); n != 0 {
		t.Errorf("Emit without listeners returned %d", n)
	}
	// 取消不存在的订阅不应 panic
	d.Off(EventPlayerMoved, 42)
}

// TestEventDispatcher_OffDuringEmit 测试回调中取消后续订阅
func TestEventDispatcher_OffDuringEmit(t *testing.T) {
	d := NewEventDispatcher()
	called := false
	var idB int
	d.On("e", func(interface{}) { d.Off("e", idB) })
	idB = d.On("e", func(interface{}) { called = true })

	d.Emit("e", nil)
	if called {
		t.Error("Handler removed during Emit should not be called")
	}
}

func TestEventDispatcher_Clear(t *testing.T) {
	d := NewEventDispatcher()
	d.On("a", func(interface{}) {})
	d.On("b", func(interface{}) {})
	d.Clear()
	if d.ListenerCount("a")+d.ListenerCount("b") != 0 {
		t.Error("Clear should remove all listeners")
	}
}

func TestGetEventDispatcher_Singleton(t *testing.T) {
	if GetEventDispatcher() != GetEventDispatcher() {
		t.Error("GetEventDispatcher should return the same instance")
	}
}
