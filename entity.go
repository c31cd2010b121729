package tgmarkup

import (
	"strings"
	"unicode"

	"github.com/riverfjs/tgmarkup/internal/types"
	"github.com/riverfjs/tgmarkup/internal/util"
)

// 导出类型别名
type MessageEntity = types.MessageEntity

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Telegram measures entity offsets and lengths in UTF-16 code units,
// not Go string bytes or runes. Characters outside the BMP (codepoint > 0xFFFF)
// take 2 UTF-16 code units (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	return util.UTF16Len(text)
}

// TextChunk represents a chunk of text with its entities.
type TextChunk struct {
	Text     string
	Entities []MessageEntity
}

// clipEntities keeps the part of each entity inside the UTF-16 range
// [lo, hi) and rebases it to lo. Entities left empty are dropped.
func clipEntities(entities []MessageEntity, lo, hi int) []MessageEntity {
	var clipped []MessageEntity
	for _, ent := range entities {
		start := max(ent.Offset, lo)
		end := min(ent.Offset+ent.Length, hi)
		if end <= start {
			continue
		}
		ent.Offset = start - lo
		ent.Length = end - start
		clipped = append(clipped, ent)
	}
	return clipped
}

// SplitEntities splits (text, entities) into chunks not exceeding maxUTF16Len UTF-16 code units.
//
// Tries to split right after a newline. Without a newline inside the budget
// the chunk is cut at the last rune that fits. Entities that span a split
// boundary are clipped into both chunks.
func SplitEntities(text string, entities []MessageEntity, maxUTF16Len int) []TextChunk {
	if maxUTF16Len <= 0 || UTF16Len(text) <= maxUTF16Len {
		return []TextChunk{{Text: text, Entities: entities}}
	}

	// Rune boundaries: byte position, UTF-16 offset, and whether the
	// boundary directly follows a newline.
	var (
		bytePos  []int
		units    []int
		afterNL  []bool
		cum      int
		prevLine bool
	)
	for i, r := range text {
		bytePos = append(bytePos, i)
		units = append(units, cum)
		afterNL = append(afterNL, prevLine)
		if r > 0xFFFF {
			cum += 2
		} else {
			cum++
		}
		prevLine = r == '\n'
	}
	bytePos = append(bytePos, len(text))
	units = append(units, cum)
	afterNL = append(afterNL, prevLine)

	last := len(bytePos) - 1
	var chunks []TextChunk
	for from := 0; from < last; {
		budget := units[from] + maxUTF16Len
		to := last
		if units[last] > budget {
			to = -1
			hard := from
			for k := from + 1; k <= last && units[k] <= budget; k++ {
				hard = k
				if afterNL[k] {
					to = k
				}
			}
			if to == -1 {
				to = hard
			}
			if to == from {
				// A single rune wider than the budget still has to move forward.
				to = from + 1
			}
		}
		chunks = append(chunks, TextChunk{
			Text:     text[bytePos[from]:bytePos[to]],
			Entities: clipEntities(entities, units[from], units[to]),
		})
		from = to
	}
	return chunks
}

// trimAdjust trims runes matching cut from both ends and shifts entities.
func trimAdjust(text string, entities []MessageEntity, cut func(rune) bool) (string, []MessageEntity) {
	left := strings.TrimLeftFunc(text, cut)
	trimmed := strings.TrimRightFunc(left, cut)
	if trimmed == text {
		return text, entities
	}
	if trimmed == "" {
		return "", nil
	}
	lead := UTF16Len(text[:len(text)-len(left)])
	return trimmed, clipEntities(entities, lead, lead+UTF16Len(trimmed))
}

// stripNewlinesAdjust strips leading/trailing newlines from text and adjusts entity offsets.
func stripNewlinesAdjust(text string, entities []MessageEntity) (string, []MessageEntity) {
	return trimAdjust(text, entities, func(r rune) bool { return r == '\n' })
}

// TrimSpace removes leading and trailing whitespace while adjusting entities.
func TrimSpace(text string, entities []MessageEntity) (string, []MessageEntity) {
	return trimAdjust(text, entities, unicode.IsSpace)
}
