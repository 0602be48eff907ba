package otp

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// 验证码关键词：中文短语精确匹配，英文 code 要求整词出现
const (
	keywordPhrase  = "验证码"
	keywordEnglish = "code"
)

// 独立数字串的长度范围
const (
	minCodeDigits = 4
	maxCodeDigits = 6
)

// ContainsKeyword 严格关键词判定
// 中文“验证码”出现在任意位置即通过；英文 code 必须是整词
// （两侧为非字母字符或文本边界），以排除 encoded/coding 这类误中
func ContainsKeyword(text string) bool {
	if text == "" {
		return false
	}
	if strings.Contains(text, keywordPhrase) {
		return true
	}
	return containsWholeWordCode(text)
}

// containsWholeWordCode 大小写不敏感地查找整词 code
func containsWholeWordCode(text string) bool {
	lower := strings.ToLower(text)
	for start := 0; ; {
		idx := strings.Index(lower[start:], keywordEnglish)
		if idx < 0 {
			return false
		}
		idx += start

		if !letterBefore(lower, idx) && !letterAfter(lower, idx+len(keywordEnglish)) {
			return true
		}
		start = idx + 1
	}
}

// letterBefore 判断位置 idx 之前的字符是否字母
func letterBefore(s string, idx int) bool {
	if idx == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(s[:idx])
	return unicode.IsLetter(r)
}

// letterAfter 判断位置 idx 起的字符是否字母
func letterAfter(s string, idx int) bool {
	if idx >= len(s) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s[idx:])
	return unicode.IsLetter(r)
}

// ExtractCode 提取验证码
// 从左到右找第一段长度为 4~6 的独立数字串（两侧无相邻数字），
// 11 位手机号之类的长数字串整段跳过
func ExtractCode(text string) (string, bool) {
	for i := 0; i < len(text); {
		if !isDigit(text[i]) {
			i++
			continue
		}

		// 找到一段极大数字串
		start := i
		for i < len(text) && isDigit(text[i]) {
			i++
		}

		length := i - start
		if length >= minCodeDigits && length <= maxCodeDigits {
			return text[start:i], true
		}
	}
	return "", false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
