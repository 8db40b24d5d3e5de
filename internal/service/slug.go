package service

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// slugFallback 标题归一化后为空时的兜底 slug。
const slugFallback = "article"

// Slugify 将任意标题归一化为 URL 安全的 slug：NFKD 分解并去掉
// 组合符号，转小写，仅保留字母数字、空白与连字符，空白压缩为
// 单个连字符。结果为空时返回兜底值。
func Slugify(input string) string {
	decomposed := norm.NFKD.String(input)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	slug := strings.TrimSpace(b.String())
	slug = strings.Join(strings.Fields(slug), "-")
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, "-")

	if slug == "" {
		return slugFallback
	}
	return slug
}
