package tgmarkup

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/riverfjs/tgmarkup/internal/render"
	"github.com/riverfjs/tgmarkup/internal/resolver"
	"github.com/riverfjs/tgmarkup/internal/types"
)

// Reconstruct 将 (text, entities) 还原为带内联标记的字符串
//
// 没有实体时原样返回 text。实体位置越界时截断到文本末尾，负长度或零长度
// 实体输出一对空标签，未知类型原样输出子串。缺少 URL 的 text_link 按未知
// 类型处理并记录警告。交叉实体按配置的 Nesting 策略处理。
//
// 参数：
//   - text: 消息纯文本
//   - entities: Telegram 实体，位置以 UTF-16 code units 计
//   - opts: WithMarkup、WithNesting 等选项
//
// 返回：
//   - string: 带标记的文本
func Reconstruct(text string, entities []MessageEntity, opts ...Option) string {
	if len(entities) == 0 {
		return text
	}
	return reconstruct(text, entities, &applyOptions(opts...).Config)
}

// ReconstructStrict is Reconstruct that rejects input it would otherwise
// repair: a text_link without URL or a pair of crossing entities.
func ReconstructStrict(text string, entities []MessageEntity, opts ...Option) (string, error) {
	if err := Validate(text, entities); err != nil {
		return "", err
	}
	return Reconstruct(text, entities, opts...), nil
}

// Validate checks that entities render to well-formed markup.
func Validate(text string, entities []MessageEntity) error {
	spans := make([]types.Span, 0, len(entities))
	for i, ent := range entities {
		span := ent.Span()
		if span.Kind == types.KindLink && span.URL == "" {
			return fmt.Errorf("entity %d: %w", i, ErrMissingLinkURL)
		}
		spans = append(spans, span)
	}
	plan := resolver.Resolve([]rune(text), spans)
	if crossings := resolver.Crossings(plan); len(crossings) > 0 {
		return &CrossingError{Outer: crossings[0].Outer, Inner: crossings[0].Inner}
	}
	return nil
}

func reconstruct(text string, entities []MessageEntity, config *RenderConfig) string {
	if len(entities) == 0 {
		return text
	}
	runes := []rune(text)
	plan := resolver.Resolve(runes, spansOf(entities))

	if config.Nesting == NestingSplit {
		plan = resolver.SplitCrossing(plan)
	} else if crossings := resolver.Crossings(plan); len(crossings) > 0 {
		Logger.Warn("crossing entities render as interleaved tags",
			"count", len(crossings),
			"outer", crossings[0].Outer.Kind.String(),
			"inner", crossings[0].Inner.Kind.String())
	}
	return splice(runes, plan, render.For(config.Markup))
}

// spansOf converts wire entities, demoting links without a URL to plain text.
func spansOf(entities []MessageEntity) []types.Span {
	spans := make([]types.Span, 0, len(entities))
	for i, ent := range entities {
		span := ent.Span()
		if span.Kind == types.KindLink && span.URL == "" {
			Logger.Warn("text_link without url rendered as plain text", "entity", i, "offset", ent.Offset)
			span.Kind = types.KindUnknown
		}
		spans = append(spans, span)
	}
	return spans
}

// inserted records the tags already spliced for one span, in original
// code point coordinates.
type inserted struct {
	start, end      int
	openLen, endLen int
}

// splice injects tags right to left. A span's start is still valid in the
// mutated text because every earlier splice starts at or after it. Its end
// moves right by the tags already placed inside [start, end].
func splice(runes []rune, plan resolver.Plan, r render.Renderer) string {
	text := runes
	done := make([]inserted, 0, plan.Len())
	for span := range plan.Backward() {
		end := span.End
		for _, ins := range done {
			if ins.start >= span.End {
				continue
			}
			end += ins.openLen
			if ins.end <= span.End {
				end += ins.endLen
			}
		}

		open, close := r.Tags(span)
		rendered := []rune(render.Render(r, span, string(text[span.Start:end])))
		text = slices.Concat(text[:span.Start], rendered, text[end:])

		done = append(done, inserted{
			start:   span.Start,
			end:     span.End,
			openLen: utf8.RuneCountInString(open),
			endLen:  utf8.RuneCountInString(close),
		})
	}
	return string(text)
}
