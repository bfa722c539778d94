package game

import (
	"log"
	"sort"
)

// 场景间事件名
const (
	// EventPlayerFacing 玩家朝向变化，数据为 PlayerFacingEvent
	EventPlayerFacing = "player:facing"
	// EventPlayerMoved 玩家本帧发生移动，数据为 PlayerMovedEvent
	EventPlayerMoved = "player:moved"
)

// PlayerFacingEvent 朝向变化事件数据
type PlayerFacingEvent struct {
	Facing string
}

// PlayerMovedEvent 玩家移动事件数据（世界坐标与所在瓦片）
type PlayerMovedEvent struct {
	X, Y         float64
	TileX, TileY int
}

// EventHandler 事件回调
type EventHandler func(data interface{})

// EventDispatcher 同步事件分发器
//
// 所有回调在调用 Emit 的 goroutine（游戏主循环）中按订阅顺序执行，
// 因此不需要加锁。
type EventDispatcher struct {
	nextID   int
	handlers map[string]map[int]EventHandler
}

// 全局事件分发器
var globalEventDispatcher *EventDispatcher

// NewEventDispatcher 创建独立的事件分发器
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		handlers: make(map[string]map[int]EventHandler),
	}
}

// GetEventDispatcher 返回全局事件分发器（延迟初始化）
func GetEventDispatcher() *EventDispatcher {
	if globalEventDispatcher == nil {
		globalEventDispatcher = NewEventDispatcher()
	}
	return globalEventDispatcher
}

// On 订阅事件，返回订阅 ID（用于 Off）
func (d *EventDispatcher) On(event string, handler EventHandler) int {
	d.nextID++
	if d.handlers[event] == nil {
		d.handlers[event] = make(map[int]EventHandler)
	}
	d.handlers[event][d.nextID] = handler
	return d.nextID
}

// Off 取消订阅
func (d *EventDispatcher) Off(event string, id int) {
	if hs, ok := d.handlers[event]; ok {
		delete(hs, id)
		if len(hs) == 0 {
			delete(d.handlers, event)
		}
	}
}

// Emit 按订阅顺序同步调用事件的所有回调
// 返回被调用的回调数量
func (d *EventDispatcher) Emit(event string, data interface{}) int {
	hs := d.handlers[event]
	if len(hs) == 0 {
		return 0
	}

	ids := make([]int, 0, len(hs))
	for id := range hs {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	for _, id := range ids {
		// 回调可能在执行中取消其他订阅
		if h, ok := hs[id]; ok {
			h(data)
		}
	}
	return len(ids)
}

// ListenerCount 返回事件的订阅数量
func (d *EventDispatcher) ListenerCount(event string) int {
	return len(d.handlers[event])
}

// Clear 移除所有订阅
func (d *EventDispatcher) Clear() {
	if len(d.handlers) > 0 {
		log.Printf("[EventDispatcher] 清除 %d 个事件的订阅", len(d.handlers))
	}
	d.handlers = make(map[string]map[int]EventHandler)
}
