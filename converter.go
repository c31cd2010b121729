package tgmarkup

import (
	"github.com/riverfjs/tgmarkup/internal/converter"
	"github.com/riverfjs/tgmarkup/internal/parser"
)

// Convert 将 Markdown 转换为 (plain_text, entities) 用于 Telegram
//
// 参数:
//   - markdown: 原始 Markdown 文本
//   - opts: WithSymbols、WithConfig 等选项
//
// 返回:
//   - string: 纯文本
//   - []MessageEntity: 实体列表
func Convert(markdown string, opts ...Option) (string, []MessageEntity) {
	return convert(markdown, &applyOptions(opts...).Config)
}

func convert(markdown string, config *RenderConfig) (string, []MessageEntity) {
	preprocessed := converter.PreprocessSpoilers(markdown)
	return parser.Parse(preprocessed, config)
}
