package systems

import (
	"github.com/decker502/farmtown/pkg/components"
	"github.com/decker502/farmtown/pkg/ecs"
	"github.com/decker502/farmtown/pkg/utils"
)

// CameraSystem 管理跟随镜头
//
// 镜头以目标实体的位置为视口中心，再把视口限制在边界矩形内。
// 没有设置边界（宽或高 <= 0）时不做限制。
type CameraSystem struct {
	entityManager *ecs.EntityManager
	cameraEntity  ecs.EntityID // 镜头实体ID
}

// NewCameraSystem 创建镜头系统和镜头实体
//
// 参数:
//   - em: 实体管理器
//   - viewWidth/viewHeight: 视口尺寸（逻辑屏幕像素）
func NewCameraSystem(em *ecs.EntityManager, viewWidth, viewHeight float64) *CameraSystem {
	cs := &CameraSystem{
		entityManager: em,
	}

	cs.cameraEntity = em.CreateEntity()
	ecs.AddComponent(em, cs.cameraEntity, &components.CameraComponent{
		ViewWidth:  viewWidth,
		ViewHeight: viewHeight,
		LerpX:      1,
		LerpY:      1,
	})

	return cs
}

// CameraEntity 返回镜头实体ID
func (cs *CameraSystem) CameraEntity() ecs.EntityID {
	return cs.cameraEntity
}

func (cs *CameraSystem) camera() *components.CameraComponent {
	cam, _ := ecs.GetComponent[*components.CameraComponent](cs.entityManager, cs.cameraEntity)
	return cam
}

// SetBounds 设置镜头边界（世界坐标）并立即限制当前视口
func (cs *CameraSystem) SetBounds(x, y, width, height float64) {
	cam := cs.camera()
	if cam == nil {
		return
	}
	cam.BoundsX, cam.BoundsY = x, y
	cam.BoundsWidth, cam.BoundsHeight = width, height
	cs.clamp(cam)
}

// SetLerp 设置跟随平滑系数，超出 (0, 1] 的值按 1 处理
func (cs *CameraSystem) SetLerp(lerpX, lerpY float64) {
	cam := cs.camera()
	if cam == nil {
		return
	}
	cam.LerpX = normalizeLerp(lerpX)
	cam.LerpY = normalizeLerp(lerpY)
}

func normalizeLerp(v float64) float64 {
	if v <= 0 || v > 1 {
		return 1
	}
	return v
}

// StartFollow 开始跟随目标实体，并立即把镜头移到目标位置（不做平滑）
func (cs *CameraSystem) StartFollow(target ecs.EntityID) {
	cam := cs.camera()
	if cam == nil {
		return
	}
	cam.Target = target
	cam.Following = true
	cs.follow(cam, true)
	cs.clamp(cam)
}

// StopFollow 停止跟随
func (cs *CameraSystem) StopFollow() {
	if cam := cs.camera(); cam != nil {
		cam.Following = false
	}
}

// Update 将视口中心对准跟随目标并限制在边界内
func (cs *CameraSystem) Update(dt float64) {
	cam := cs.camera()
	if cam == nil {
		return
	}

	if cam.Following {
		cs.follow(cam, false)
	}
	cs.clamp(cam)
}

// follow 让视口中心靠近目标，snap 为 true 时直接对准
func (cs *CameraSystem) follow(cam *components.CameraComponent, snap bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](cs.entityManager, cam.Target)
	if !ok {
		return
	}
	targetX := pos.X - cam.ViewWidth/2
	targetY := pos.Y - cam.ViewHeight/2
	if snap {
		cam.ScrollX, cam.ScrollY = targetX, targetY
		return
	}
	cam.ScrollX = utils.Lerp(cam.ScrollX, targetX, cam.LerpX)
	cam.ScrollY = utils.Lerp(cam.ScrollY, targetY, cam.LerpY)
}

func (cs *CameraSystem) clamp(cam *components.CameraComponent) {
	if cam.BoundsWidth <= 0 || cam.BoundsHeight <= 0 {
		return
	}
	cam.ScrollX = utils.ClampScroll(cam.ScrollX, cam.ViewWidth, cam.BoundsX, cam.BoundsWidth)
	cam.ScrollY = utils.ClampScroll(cam.ScrollY, cam.ViewHeight, cam.BoundsY, cam.BoundsHeight)
}

// Scroll 返回视口左上角的世界坐标
func (cs *CameraSystem) Scroll() (float64, float64) {
	cam := cs.camera()
	if cam == nil {
		return 0, 0
	}
	return cam.ScrollX, cam.ScrollY
}

// WorldToScreen 世界坐标 → 屏幕坐标
func (cs *CameraSystem) WorldToScreen(x, y float64) (float64, float64) {
	sx, sy := cs.Scroll()
	return utils.WorldToScreen(x, y, sx, sy)
}

// ScreenToWorld 屏幕坐标 → 世界坐标
func (cs *CameraSystem) ScreenToWorld(x, y float64) (float64, float64) {
	sx, sy := cs.Scroll()
	return utils.ScreenToWorld(x, y, sx, sy)
}
