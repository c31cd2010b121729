package converter

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"

	"github.com/riverfjs/tgmarkup/internal/buffer"
	"github.com/riverfjs/tgmarkup/internal/types"
)

// expandableQuoteLen 超过该长度（UTF-16）的引用升级为 expandable_blockquote
const expandableQuoteLen = 200

// scope 一个尚未闭合的实体
type scope struct {
	entityType    string
	start         int
	url           string
	customEmojiID string
}

type listLevel struct {
	ordered bool
	next    int
}

type tableState struct {
	rows [][]string
	row  []string
	cell *strings.Builder
}

// Walker 遍历 goldmark AST 并生成 (text, entities)
type Walker struct {
	buf      *buffer.TextBuffer
	source   []byte
	config   *types.RenderConfig
	entities []types.MessageEntity

	inline []scope
	quotes []int

	blocks     int
	lists      []*listLevel
	itemIndent string
	heading    []string
	table      *tableState
}

// NewWalker 创建新的 Walker
func NewWalker(source []byte, config *types.RenderConfig) *Walker {
	return &Walker{
		buf:    buffer.New(),
		source: source,
		config: config,
	}
}

// Result 返回转换结果
func (w *Walker) Result() (string, []types.MessageEntity) {
	return w.buf.String(), w.entities
}

// Walk 处理一个 AST 节点，签名与 ast.Walker 一致
func (w *Walker) Walk(node ast.Node, entering bool) (ast.WalkStatus, error) {
	switch n := node.(type) {
	case *ast.Document:
		if !entering {
			w.finishDocument()
		}

	case *ast.Text:
		if entering {
			w.onText(n)
		}

	case *ast.String:
		if entering {
			w.write(string(n.Value))
		}

	case *ast.CodeSpan:
		if entering {
			w.onCodeSpan(n)
			return ast.WalkSkipChildren, nil
		}

	case *ast.Emphasis:
		entityType := "italic"
		if n.Level == 2 {
			entityType = "bold"
		}
		w.toggle(entering, entityType, "")

	case *east.Strikethrough:
		w.toggle(entering, "strikethrough", "")

	case *ast.Link:
		if entering {
			w.openLink(string(n.Destination))
		} else {
			w.closeLast()
		}

	case *ast.Image:
		if entering {
			w.onImage(string(n.Destination))
		} else {
			w.closeLast()
		}

	case *ast.AutoLink:
		if entering {
			url := string(n.URL(w.source))
			w.open("text_link", url)
			w.buf.Write(url)
			w.close("text_link")
			return ast.WalkSkipChildren, nil
		}

	case *ast.RawHTML:
		if entering {
			w.onRawHTML(n)
		}

	case *ast.Paragraph:
		if len(w.lists) > 0 {
			if !entering && w.buf.TrailingNewlineCount() == 0 {
				w.buf.Write("\n")
			}
		} else if entering {
			w.startBlock()
		} else {
			w.blocks++
		}

	case *ast.Heading:
		if entering {
			w.startHeading(n.Level)
		} else {
			w.endHeading()
		}

	case *ast.Blockquote:
		if entering {
			w.startBlock()
			w.quotes = append(w.quotes, w.buf.UTF16Offset())
		} else {
			w.endBlockquote()
		}

	case *ast.List:
		if entering {
			if len(w.lists) == 0 {
				w.startBlock()
			}
			w.lists = append(w.lists, &listLevel{ordered: n.IsOrdered(), next: n.Start})
		} else {
			w.lists = w.lists[:len(w.lists)-1]
			if len(w.lists) == 0 {
				w.blocks++
			}
		}

	case *ast.ListItem:
		if entering {
			w.startItem()
		} else if w.buf.TrailingNewlineCount() == 0 {
			w.buf.Write("\n")
		}

	case *east.TaskCheckBox:
		if entering {
			w.onTaskCheckBox(n.IsChecked)
		}

	case *ast.FencedCodeBlock:
		if entering {
			w.onCodeBlock(n, string(n.Language(w.source)))
		}
		return ast.WalkSkipChildren, nil

	case *ast.CodeBlock:
		if entering {
			w.onCodeBlock(n, "")
		}
		return ast.WalkSkipChildren, nil

	case *ast.ThematicBreak:
		if entering {
			w.startBlock()
			w.buf.Write("————————")
			w.blocks++
		}

	case *ast.HTMLBlock:
		return ast.WalkSkipChildren, nil

	case *east.Table:
		if entering {
			w.startBlock()
			w.table = &tableState{}
		} else {
			w.endTable()
		}

	case *east.TableHeader, *east.TableRow:
		if w.table == nil {
			break
		}
		if entering {
			w.table.row = nil
		} else {
			w.table.rows = append(w.table.rows, w.table.row)
		}

	case *east.TableCell:
		if w.table == nil {
			break
		}
		if entering {
			w.table.cell = &strings.Builder{}
		} else {
			w.table.row = append(w.table.row, strings.TrimSpace(w.table.cell.String()))
			w.table.cell = nil
		}
	}

	return ast.WalkContinue, nil
}

// write sends text to the current table cell, or to the buffer.
func (w *Walker) write(text string) {
	if w.table != nil && w.table.cell != nil {
		w.table.cell.WriteString(text)
		return
	}
	w.buf.Write(text)
}

func (w *Walker) onText(n *ast.Text) {
	text := string(n.Segment.Value(w.source))
	inCell := w.table != nil && w.table.cell != nil
	switch {
	case n.HardLineBreak() && !inCell:
		text += "\n"
	case n.SoftLineBreak() && inCell:
		text += " "
	case n.SoftLineBreak():
		text += "\n"
	}
	w.write(text)
}

func (w *Walker) onCodeSpan(n *ast.CodeSpan) {
	var code strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			code.Write(t.Segment.Value(w.source))
		case *ast.String:
			code.Write(t.Value)
		}
	}
	if w.table != nil && w.table.cell != nil {
		w.table.cell.WriteString(code.String())
		return
	}
	w.open("code", "")
	w.buf.Write(code.String())
	w.close("code")
}

func (w *Walker) onRawHTML(n *ast.RawHTML) {
	var raw strings.Builder
	for i := 0; i < n.Segments.Len(); i++ {
		seg := n.Segments.At(i)
		raw.Write(seg.Value(w.source))
	}
	switch strings.ToLower(strings.TrimSpace(raw.String())) {
	case "<tg-spoiler>":
		w.open("spoiler", "")
	case "</tg-spoiler>":
		w.close("spoiler")
	}
}

func (w *Walker) openLink(dest string) {
	if id := validateTelegramEmoji(dest); id != "" {
		w.inline = append(w.inline, scope{entityType: "custom_emoji", start: w.buf.UTF16Offset(), customEmojiID: id})
		return
	}
	// Empty URL links are rendered as plain text; the scope keeps
	// closeLast balanced.
	entityType := "text_link"
	if dest == "" {
		entityType = ""
	}
	w.open(entityType, dest)
}

func (w *Walker) onImage(dest string) {
	if id := validateTelegramEmoji(dest); id != "" {
		w.inline = append(w.inline, scope{entityType: "custom_emoji", start: w.buf.UTF16Offset(), customEmojiID: id})
		return
	}
	w.buf.Write(w.config.MarkdownSymbol.Image)
	w.open("text_link", dest)
}

// --- Blocks ---

// startBlock ensures a blank line between top-level blocks.
func (w *Walker) startBlock() {
	if w.blocks == 0 {
		return
	}
	if need := 2 - w.buf.TrailingNewlineCount(); need > 0 {
		w.buf.Write(strings.Repeat("\n", need))
	}
}

var headingEntities = map[int][]string{
	1: {"bold", "underline"},
	2: {"bold", "underline"},
	3: {"bold"},
	4: {"bold"},
	5: {"italic"},
	6: {"italic"},
}

func (w *Walker) headingSymbol(level int) string {
	s := w.config.MarkdownSymbol
	switch level {
	case 1:
		return s.HeadingLevel1
	case 2:
		return s.HeadingLevel2
	case 3:
		return s.HeadingLevel3
	case 4:
		return s.HeadingLevel4
	case 5:
		return s.HeadingLevel5
	default:
		return s.HeadingLevel6
	}
}

func (w *Walker) startHeading(level int) {
	w.startBlock()
	if symbol := w.headingSymbol(level); symbol != "" {
		w.buf.Write(symbol + " ")
	}
	w.heading = headingEntities[level]
	for _, entityType := range w.heading {
		w.open(entityType, "")
	}
}

func (w *Walker) endHeading() {
	for i := len(w.heading) - 1; i >= 0; i-- {
		w.close(w.heading[i])
	}
	w.heading = nil
	w.blocks++
}

func (w *Walker) endBlockquote() {
	start := w.quotes[len(w.quotes)-1]
	w.quotes = w.quotes[:len(w.quotes)-1]
	w.appendEntity(types.MessageEntity{Type: "blockquote", Offset: start})
	w.blocks++
}

func (w *Walker) onCodeBlock(n ast.Node, info string) {
	var code strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		code.Write(line.Value(w.source))
	}
	raw := strings.TrimSuffix(code.String(), "\n")

	w.startBlock()
	start := w.buf.UTF16Offset()
	w.buf.Write(raw)
	lang, _, _ := strings.Cut(info, ",")
	w.appendEntity(types.MessageEntity{Type: "pre", Offset: start, Language: strings.TrimSpace(lang)})
	w.blocks++
}

// --- Lists ---

func (w *Walker) startItem() {
	// 嵌套列表：父项文本后没有换行时，插入换行确保子项独占一行
	if w.buf.Len() > 0 && w.buf.TrailingNewlineCount() == 0 {
		w.buf.Write("\n")
	}
	w.itemIndent = strings.Repeat("  ", len(w.lists)-1)
	level := w.lists[len(w.lists)-1]
	if level.ordered {
		w.buf.Write(w.itemIndent + strconv.Itoa(level.next) + ". ")
		level.next++
		return
	}
	// 先写 bullet，如果后面遇到 TaskCheckBox 会被替换
	w.buf.Write(w.itemIndent + "⦁ ")
}

func (w *Walker) onTaskCheckBox(checked bool) {
	w.buf.PopLast()
	symbol := w.config.MarkdownSymbol.TaskUncompleted
	if checked {
		symbol = w.config.MarkdownSymbol.TaskCompleted
	}
	w.buf.Write(w.itemIndent + symbol + " ")
}

// --- Tables ---

func (w *Walker) endTable() {
	rows := w.table.rows
	w.table = nil
	start := w.buf.UTF16Offset()
	w.buf.Write(formatTable(rows))
	w.appendEntity(types.MessageEntity{Type: "pre", Offset: start})
	w.blocks++
}

// formatTable lays rows out as left-justified columns separated by " | ",
// with a rule under the header row.
func formatTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], utf8.RuneCountInString(cell))
		}
	}

	lines := make([]string, 0, len(rows)+1)
	for r, row := range rows {
		cells := make([]string, len(widths))
		for i, width := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = cell + strings.Repeat(" ", width-utf8.RuneCountInString(cell))
		}
		lines = append(lines, strings.Join(cells, " | "))
		if r == 0 && len(rows) > 1 {
			rule := make([]string, len(widths))
			for i, width := range widths {
				rule[i] = strings.Repeat("-", width)
			}
			lines = append(lines, strings.Join(rule, "-+-"))
		}
	}
	return strings.Join(lines, "\n")
}

// --- Entity helpers ---

func (w *Walker) toggle(entering bool, entityType, url string) {
	if entering {
		w.open(entityType, url)
	} else {
		w.close(entityType)
	}
}

func (w *Walker) open(entityType, url string) {
	w.inline = append(w.inline, scope{entityType: entityType, start: w.buf.UTF16Offset(), url: url})
}

// close finalizes the innermost open scope of entityType.
func (w *Walker) close(entityType string) {
	for i := len(w.inline) - 1; i >= 0; i-- {
		if w.inline[i].entityType == entityType {
			s := w.inline[i]
			w.inline = append(w.inline[:i], w.inline[i+1:]...)
			w.finalize(s)
			return
		}
	}
}

func (w *Walker) closeLast() {
	if len(w.inline) == 0 {
		return
	}
	s := w.inline[len(w.inline)-1]
	w.inline = w.inline[:len(w.inline)-1]
	w.finalize(s)
}

func (w *Walker) finalize(s scope) {
	if s.entityType == "" {
		return
	}
	w.appendEntity(types.MessageEntity{
		Type:          s.entityType,
		Offset:        s.start,
		URL:           s.url,
		CustomEmojiID: s.customEmojiID,
	})
}

// appendEntity sets the length from the current offset; empty entities are dropped.
func (w *Walker) appendEntity(ent types.MessageEntity) {
	ent.Length = w.buf.UTF16Offset() - ent.Offset
	if ent.Length > 0 {
		w.entities = append(w.entities, ent)
	}
}

func (w *Walker) finishDocument() {
	if !w.config.CiteExpandable {
		return
	}
	for i := range w.entities {
		if w.entities[i].Type == "blockquote" && w.entities[i].Length > expandableQuoteLen {
			w.entities[i].Type = "expandable_blockquote"
		}
	}
}
