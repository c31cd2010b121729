package tgmarkup

import (
	"sync"

	"github.com/riverfjs/tgmarkup/internal/types"
)

// 导出类型别名
type (
	Symbol       = types.Symbol
	RenderConfig = types.RenderConfig
	Markup       = types.Markup
	Nesting      = types.Nesting
)

const (
	MarkupHTML     = types.MarkupHTML
	MarkupMarkdown = types.MarkupMarkdown

	NestingBestEffort = types.NestingBestEffort
	NestingSplit      = types.NestingSplit
)

var (
	defaultConfig     *RenderConfig
	defaultConfigOnce sync.Once
)

// DefaultConfig returns the default render configuration (singleton).
// Options never modify it; they work on a copy.
func DefaultConfig() *RenderConfig {
	defaultConfigOnce.Do(func() {
		defaultConfig = types.DefaultRenderConfig()
	})
	return defaultConfig
}
