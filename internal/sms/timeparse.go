package sms

import (
	"strconv"
	"strings"
	"time"
)

// 秒级时间戳的合理上限，超过按毫秒时间戳处理
const maxEpochSeconds = 2000000000

// 常见的日期时间写法，按出现频率排列
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
}

// NormalizeTime 规范化上报时间（全函数，任何输入都有结果）
// 空串用当前时间；纯数字按秒级时间戳，过大按毫秒折算；
// 其余尝试常见格式解析，失败时静默回退当前时间。
// 第二个返回值表示是否发生了解析失败回退（仅用于观测）。
func NormalizeTime(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Now(), false
	}

	if isAllDigits(raw) {
		epoch, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			// 超出 int64 的数字串当作无法解析
			return time.Now(), true
		}
		if epoch > maxEpochSeconds {
			epoch = epoch / 1000
		}
		return time.Unix(epoch, 0), false
	}

	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return t, false
		}
	}

	return time.Now(), true
}

// isAllDigits 判断非空字符串是否全部由十进制数字组成
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
