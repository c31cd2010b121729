// Package tgmarkup 将 Telegram 消息的 (text, entities) 还原为带内联标记的字符串
//
// Telegram 以 UTF-16 code units 报告实体位置，而 Go 字符串按 UTF-8 / rune 处理。
// 本包先把每个实体的位置换算为 code point 下标，再从右向左把标签注入文本，
// 保证尚未处理的实体下标始终有效。
//
// 核心功能：
//   - Reconstruct(): (text, entities) → HTML 或 MarkdownV2
//   - ReconstructStrict(): 同上，但拒绝交叉实体和缺少 URL 的链接
//   - Convert(): Markdown → (text, entities)
//   - ProcessMarkdown(): Markdown → 按长度拆分后的可发送消息
//
// 示例：
//
//	html := tgmarkup.Reconstruct(msg.Text, msg.Entities)
//
//	// 嵌套交叉实体时拆分为合法嵌套
//	html = tgmarkup.Reconstruct(msg.Text, msg.Entities, tgmarkup.WithNesting(tgmarkup.NestingSplit))
//
//	// LLM 生成的 Markdown 帖子
//	texts, err := tgmarkup.ProcessMarkdown(ctx, markdown, 4096)
package tgmarkup
