package config

import (
	"fmt"

	"github.com/decker502/farmtown/pkg/embedded"
	"gopkg.in/yaml.v3"
)

// AnimationSetConfig 精灵表动画配置
//
// 一张精灵表按固定帧尺寸切片，帧索引按行优先编号（左上角为 0）。
// 每个动画片段引用若干帧索引。
//
// 配置文件位置: data/animations/player.yaml
type AnimationSetConfig struct {
	// Image 精灵表图片路径
	Image string `yaml:"image"`

	// FrameWidth/FrameHeight 单帧尺寸（像素）
	FrameWidth  int `yaml:"frameWidth"`
	FrameHeight int `yaml:"frameHeight"`

	// Animations 动画片段列表
	Animations []AnimationClipConfig `yaml:"animations"`
}

// AnimationClipConfig 单个动画片段
type AnimationClipConfig struct {
	// Key 动画名，如 "upWalk"
	Key string `yaml:"key"`
	// Frames 帧索引
	Frames []int `yaml:"frames"`
	// FrameRate 帧率（帧/秒）
	FrameRate float64 `yaml:"frameRate"`
	// Repeat 重复次数，-1 表示无限循环，0 表示只播放一次
	Repeat int `yaml:"repeat"`
}

// ParseAnimationSetConfig 解析动画配置
func ParseAnimationSetConfig(data []byte) (*AnimationSetConfig, error) {
	var cfg AnimationSetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse animation config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid animation config: %w", err)
	}

	return &cfg, nil
}

// LoadAnimationSetConfig 从嵌入资源加载动画配置
//
// 参数:
//   - path: 配置文件路径（如 "data/animations/player.yaml"）
func LoadAnimationSetConfig(path string) (*AnimationSetConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read animation config: %w", err)
	}
	return ParseAnimationSetConfig(data)
}

// Validate 验证配置有效性
func (c *AnimationSetConfig) Validate() error {
	if c.Image == "" {
		return fmt.Errorf("sprite sheet image is empty")
	}
	if c.FrameWidth <= 0 || c.FrameHeight <= 0 {
		return fmt.Errorf("frame size must be positive, got %dx%d", c.FrameWidth, c.FrameHeight)
	}

	seen := make(map[string]bool, len(c.Animations))
	for _, clip := range c.Animations {
		if clip.Key == "" {
			return fmt.Errorf("animation key is empty")
		}
		if seen[clip.Key] {
			return fmt.Errorf("duplicate animation %q", clip.Key)
		}
		seen[clip.Key] = true

		if len(clip.Frames) == 0 {
			return fmt.Errorf("animation %q has no frames", clip.Key)
		}
		for _, f := range clip.Frames {
			if f < 0 {
				return fmt.Errorf("animation %q has negative frame index %d", clip.Key, f)
			}
		}
		if clip.FrameRate <= 0 {
			return fmt.Errorf("animation %q frameRate must be > 0, got %.2f", clip.Key, clip.FrameRate)
		}
		if clip.Repeat < -1 {
			return fmt.Errorf("animation %q repeat must be >= -1, got %d", clip.Key, clip.Repeat)
		}
	}

	return nil
}

// Clip 按名称查找动画片段
func (c *AnimationSetConfig) Clip(key string) (AnimationClipConfig, bool) {
	for _, clip := range c.Animations {
		if clip.Key == key {
			return clip, true
		}
	}
	return AnimationClipConfig{}, false
}

// RequireClips 检查必需的动画片段是否全部存在
func (c *AnimationSetConfig) RequireClips(keys ...string) error {
	for _, key := range keys {
		if _, ok := c.Clip(key); !ok {
			return fmt.Errorf("animation %q is missing", key)
		}
	}
	return nil
}

// MaxFrameIndex 返回所有片段中引用的最大帧索引，用于校验精灵表尺寸
func (c *AnimationSetConfig) MaxFrameIndex() int {
	maxIdx := -1
	for _, clip := range c.Animations {
		for _, f := range clip.Frames {
			if f > maxIdx {
				maxIdx = f
			}
		}
	}
	return maxIdx
}
