package markdown

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	engine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()

	codeFencePattern   = regexp.MustCompile("(?s)```.*?```")
	punctuationPattern = regexp.MustCompile("[#>*_`-]")
	whitespacePattern  = regexp.MustCompile(`\s+`)
)

// ToHTML 将 Markdown 渲染为净化后的 HTML。
// 渲染失败时原样返回输入，调用方展示原文即可。
func ToHTML(markdown string) string {
	if markdown == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := engine.Convert([]byte(markdown), &buf); err != nil {
		return markdown
	}
	return sanitizer.Sanitize(buf.String())
}

// ExtractSummary 从 Markdown 正文提取纯文本摘要：去掉代码块与
// 常见标记符号，压缩空白后按字符数截断。
func ExtractSummary(markdown string, length int) string {
	if strings.TrimSpace(markdown) == "" || length <= 0 {
		return ""
	}

	text := codeFencePattern.ReplaceAllString(markdown, "")
	text = punctuationPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	text = strings.TrimSpace(text)

	runes := []rune(text)
	if len(runes) <= length {
		return text
	}
	return string(runes[:length])
}
