package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/decker502/farmtown/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudFontSize = 14.0
	hudPadding  = 8.0
	hudX        = 10.0
	hudY        = 10.0
	hudWidth    = 180.0
)

var (
	hudPanelColor = color.RGBA{R: 0, G: 0, B: 0, A: 140}
	hudTextColor  = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// HUDScene 与主场景并行运行的文字覆盖层
//
// 通过事件分发器接收主场景的玩家朝向与位置，不直接引用主场景。
type HUDScene struct {
	resourceManager *game.ResourceManager
	events          *game.EventDispatcher

	font *text.GoTextFace

	facing       string
	tileX, tileY int
	hasPosition  bool

	facingHandler int
	movedHandler  int
}

// NewHUDScene 创建覆盖层场景
func NewHUDScene(rm *game.ResourceManager, events *game.EventDispatcher) *HUDScene {
	return &HUDScene{
		resourceManager: rm,
		events:          events,
	}
}

// Create 加载字体并订阅事件
func (h *HUDScene) Create() error {
	font, err := h.resourceManager.LoadDefaultFont(hudFontSize)
	if err != nil {
		return fmt.Errorf("failed to load HUD font: %w", err)
	}
	h.font = font

	if h.events != nil {
		h.facingHandler = h.events.On(game.EventPlayerFacing, h.onPlayerFacing)
		h.movedHandler = h.events.On(game.EventPlayerMoved, h.onPlayerMoved)
	}

	log.Printf("[HUDScene] Created")
	return nil
}

func (h *HUDScene) onPlayerFacing(data interface{}) {
	if e, ok := data.(game.PlayerFacingEvent); ok {
		h.facing = e.Facing
	}
}

func (h *HUDScene) onPlayerMoved(data interface{}) {
	if e, ok := data.(game.PlayerMovedEvent); ok {
		h.tileX, h.tileY = e.TileX, e.TileY
		h.hasPosition = true
	}
}

// Update 覆盖层没有自己的逻辑
func (h *HUDScene) Update(deltaTime float64) {}

// lines 返回要显示的文字行
func (h *HUDScene) lines() []string {
	lines := make([]string, 0, 2)
	if h.facing != "" {
		lines = append(lines, "Facing: "+h.facing)
	}
	if h.hasPosition {
		lines = append(lines, fmt.Sprintf("Tile: %d, %d", h.tileX, h.tileY))
	}
	return lines
}

// Draw 绘制半透明面板和状态文字
func (h *HUDScene) Draw(screen *ebiten.Image) {
	lines := h.lines()
	if len(lines) == 0 || h.font == nil {
		return
	}

	lineHeight := hudFontSize * 1.4
	panelHeight := float64(len(lines))*lineHeight + hudPadding*2
	vector.DrawFilledRect(screen, hudX, hudY, hudWidth, float32(panelHeight), hudPanelColor, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(hudX+hudPadding, hudY+hudPadding+float64(i)*lineHeight)
		op.ColorScale.ScaleWithColor(hudTextColor)
		text.Draw(screen, line, h.font, op)
	}
}

// Shutdown 取消事件订阅
func (h *HUDScene) Shutdown() {
	if h.events != nil {
		h.events.Off(game.EventPlayerFacing, h.facingHandler)
		h.events.Off(game.EventPlayerMoved, h.movedHandler)
	}
	log.Printf("[HUDScene] Shutdown")
}
