package tgmarkup

import (
	"context"
)

// DefaultMaxMessageLength is Telegram's text message limit in UTF-16 code units.
const DefaultMaxMessageLength = 4096

// ProcessMarkdown 完整管道：markdown → 可发送的消息列表
//
// 步骤：
//  1. Convert 得到 (text, entities)
//  2. 按 maxMessageLength 在换行处拆分，实体随之裁剪
//  3. 去除每块首尾换行后，用 Reconstruct 生成对应 parse mode 的标记文本
//
// maxMessageLength <= 0 时使用 DefaultMaxMessageLength。ctx 取消时返回 ctx.Err()。
//
// Markup 只包含固定标签表能表达的实体；spoiler、blockquote 等会在 Markup 中
// 以纯文本出现，但仍保留在 Entities 里。需要这些样式时请发送 Text + Entities。
func ProcessMarkdown(ctx context.Context, content string, maxMessageLength int, opts ...Option) ([]*Text, error) {
	if maxMessageLength <= 0 {
		maxMessageLength = DefaultMaxMessageLength
	}
	config := &applyOptions(opts...).Config

	fullText, fullEntities := convert(content, config)
	fullText, fullEntities = stripNewlinesAdjust(fullText, fullEntities)

	result := make([]*Text, 0)
	for i, chunk := range SplitEntities(fullText, fullEntities, maxMessageLength) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chunkText, chunkEntities := stripNewlinesAdjust(chunk.Text, chunk.Entities)
		if chunkText == "" {
			continue
		}
		result = append(result, &Text{
			Text:      chunkText,
			Entities:  chunkEntities,
			Markup:    reconstruct(chunkText, chunkEntities, config),
			ParseMode: config.Markup.String(),
			ContentTrace: ContentTrace{
				SourceType: "text",
				Extra: map[string]interface{}{
					"chunk": i,
				},
			},
		})
	}
	return result, nil
}
