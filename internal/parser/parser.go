package parser

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/tgmarkup/internal/converter"
	"github.com/riverfjs/tgmarkup/internal/types"
)

// markdown goldmark 实例：GFM（表格、删除线、任务列表、自动链接）
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// ParseAST 仅解析为 AST，不遍历
func ParseAST(source []byte) ast.Node {
	return markdown.Parser().Parse(text.NewReader(source))
}

// Parse 解析 Markdown 并遍历 AST 生成 (text, entities)
func Parse(md string, config *types.RenderConfig) (string, []types.MessageEntity) {
	if config == nil {
		config = types.DefaultRenderConfig()
	}
	source := []byte(md)
	walker := converter.NewWalker(source, config)
	_ = ast.Walk(ParseAST(source), walker.Walk)
	return walker.Result()
}
