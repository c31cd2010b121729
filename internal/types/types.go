package types

// MessageEntity 表示 Telegram 消息实体
//
// Offset 和 Length 以 UTF-16 code units 计量，与 Bot API 一致。
type MessageEntity struct {
	Type          string `json:"type"`
	Offset        int    `json:"offset"`
	Length        int    `json:"length"`
	URL           string `json:"url,omitempty"`
	Language      string `json:"language,omitempty"`
	CustomEmojiID string `json:"custom_emoji_id,omitempty"`
}

// Span converts the wire entity into a style span.
func (e MessageEntity) Span() Span {
	return Span{
		Kind:        KindOf(e.Type),
		StartUTF16:  e.Offset,
		LengthUTF16: e.Length,
		URL:         e.URL,
		Language:    e.Language,
	}
}

// Kind 标记 span 的样式类型
type Kind int

const (
	KindUnknown Kind = iota
	KindBold
	KindItalic
	KindUnderline
	KindStrikethrough
	KindCode
	KindPre
	KindLink
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindBold:          "bold",
	KindItalic:        "italic",
	KindUnderline:     "underline",
	KindStrikethrough: "strikethrough",
	KindCode:          "code",
	KindPre:           "pre",
	KindLink:          "text_link",
}

// String returns the Telegram entity type name for k.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// KindOf maps a Telegram entity type to a Kind. Types without a markup
// equivalent (spoiler, blockquote, mention, ...) map to KindUnknown.
func KindOf(entityType string) Kind {
	switch entityType {
	case "bold":
		return KindBold
	case "italic":
		return KindItalic
	case "underline":
		return KindUnderline
	case "strikethrough":
		return KindStrikethrough
	case "code":
		return KindCode
	case "pre":
		return KindPre
	case "text_link":
		return KindLink
	default:
		return KindUnknown
	}
}

// Span 一个样式标注，位置以 UTF-16 code units 表示
type Span struct {
	Kind        Kind
	StartUTF16  int
	LengthUTF16 int
	URL         string
	Language    string
}

// ResolvedSpan 已转换为 code point 边界 [Start, End) 的 span
type ResolvedSpan struct {
	Start    int
	End      int
	Kind     Kind
	URL      string
	Language string
}

// Contains reports whether r fully contains o.
func (r ResolvedSpan) Contains(o ResolvedSpan) bool {
	return r.Start <= o.Start && o.End <= r.End
}

// Markup 输出标记语法
type Markup int

const (
	MarkupHTML Markup = iota
	MarkupMarkdown
)

// String returns the Telegram parse_mode name for m.
func (m Markup) String() string {
	if m == MarkupMarkdown {
		return "MarkdownV2"
	}
	return "HTML"
}

// Nesting 交叉（非嵌套）span 的处理策略
type Nesting int

const (
	// NestingBestEffort emits crossing spans as-is; tags interleave.
	NestingBestEffort Nesting = iota
	// NestingSplit splits crossing spans at enclosing boundaries.
	NestingSplit
)

// Symbol 定义 Markdown 元素的显示符号
type Symbol struct {
	HeadingLevel1   string
	HeadingLevel2   string
	HeadingLevel3   string
	HeadingLevel4   string
	HeadingLevel5   string
	HeadingLevel6   string
	Image           string
	TaskCompleted   string
	TaskUncompleted string
}

// DefaultSymbol 返回默认符号配置
func DefaultSymbol() *Symbol {
	return &Symbol{
		HeadingLevel1:   "📌",
		HeadingLevel2:   "📝",
		HeadingLevel3:   "📋",
		HeadingLevel4:   "📄",
		HeadingLevel5:   "📃",
		HeadingLevel6:   "🔖",
		Image:           "🖼",
		TaskCompleted:   "✅",
		TaskUncompleted: "☑️",
	}
}

// RenderConfig 渲染配置
type RenderConfig struct {
	MarkdownSymbol *Symbol
	CiteExpandable bool
	Markup         Markup
	Nesting        Nesting
}

// DefaultRenderConfig 返回默认渲染配置
func DefaultRenderConfig() *RenderConfig {
	return &RenderConfig{
		MarkdownSymbol: DefaultSymbol(),
		CiteExpandable: true,
		Markup:         MarkupHTML,
		Nesting:        NestingBestEffort,
	}
}
