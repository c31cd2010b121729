package converter

import (
	"regexp"
	"strings"
)

// codeRegionRe 匹配代码块和行内代码
var codeRegionRe = regexp.MustCompile("(```[\\s\\S]*?```|`[^`\\n]+`)")

// PreprocessSpoilers 将 ||spoiler|| 替换为 <tg-spoiler>spoiler</tg-spoiler>
// 跳过代码块和行内代码中的内容
func PreprocessSpoilers(text string) string {
	var out strings.Builder
	last := 0
	for _, loc := range codeRegionRe.FindAllStringIndex(text, -1) {
		out.WriteString(replaceSpoilerTags(text[last:loc[0]]))
		out.WriteString(text[loc[0]:loc[1]])
		last = loc[1]
	}
	out.WriteString(replaceSpoilerTags(text[last:]))
	return out.String()
}

// replaceSpoilerTags toggles <tg-spoiler> on every unescaped "||".
// An unmatched opener is left as literal text.
func replaceSpoilerTags(text string) string {
	var (
		out     strings.Builder
		openPos = -1
	)
	for i := 0; i < len(text); i++ {
		if text[i] == '|' && i+1 < len(text) && text[i+1] == '|' && (i == 0 || text[i-1] != '\\') {
			if openPos < 0 {
				openPos = out.Len()
				out.WriteString("<tg-spoiler>")
			} else {
				out.WriteString("</tg-spoiler>")
				openPos = -1
			}
			i++
			continue
		}
		out.WriteByte(text[i])
	}
	if openPos < 0 {
		return out.String()
	}
	s := out.String()
	return s[:openPos] + "||" + s[openPos+len("<tg-spoiler>"):]
}

// validateTelegramEmoji 如果 URL 是 tg://emoji?id=<19位数字>，返回 id，否则返回空
func validateTelegramEmoji(url string) string {
	emojiID, ok := strings.CutPrefix(url, "tg://emoji?id=")
	if !ok || len(emojiID) != 19 {
		return ""
	}
	for _, ch := range emojiID {
		if ch < '0' || ch > '9' {
			return ""
		}
	}
	return emojiID
}
