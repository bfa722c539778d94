// Package utils 提供通用工具函数
package utils

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// KeyState 查询按键当前是否处于按下状态
// 运行时由 EbitenKeyState 提供，测试中使用 KeySet 模拟
type KeyState interface {
	IsKeyPressed(key ebiten.Key) bool
}

// EbitenKeyState 直接读取 Ebitengine 的键盘状态
type EbitenKeyState struct{}

// IsKeyPressed 实现 KeyState
func (EbitenKeyState) IsKeyPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

// KeySet 固定的按下键集合
type KeySet map[ebiten.Key]bool

// NewKeySet 创建包含给定按键的集合
func NewKeySet(keys ...ebiten.Key) KeySet {
	s := make(KeySet, len(keys))
	for _, k := range keys {
		s[k] = true
	}
	return s
}

// IsKeyPressed 实现 KeyState
func (s KeySet) IsKeyPressed(key ebiten.Key) bool {
	return s[key]
}

// ParseKey 将按键名解析为 ebiten.Key
//
// 接受 Ebitengine 的按键名（"W"、"ArrowUp"、"Space"，大小写不敏感）。
// 单个字母或数字也可以直接写，如 "w"、"1"。
func ParseKey(name string) (ebiten.Key, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("key name is empty")
	}

	var key ebiten.Key
	if err := key.UnmarshalText([]byte(name)); err == nil {
		return key, nil
	}

	// 单字符按键名：字母统一转大写，数字加 "Digit" 前缀
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
			if err := key.UnmarshalText([]byte{c}); err == nil {
				return key, nil
			}
		case c >= '0' && c <= '9':
			if err := key.UnmarshalText([]byte("Digit" + name)); err == nil {
				return key, nil
			}
		}
	}

	return 0, fmt.Errorf("unknown key name %q", name)
}
