package sms

import (
	"sort"
	"strconv"
	"strings"
)

// 字段别名表，按优先级排列
// 兼容不同转发客户端对同一字段的命名差异
var (
	phoneAliases   = []string{"phone", "sender", "from", "mobile", "msisdn"}
	contentAliases = []string{"content", "text", "message", "body", "msg"}
	timeAliases    = []string{"time", "timestamp", "receive_time", "received_at", "date", "datetime"}
	deviceAliases  = []string{"device", "sim", "sim_slot", "sim_name", "device_name"}
)

// Payload 上报载荷
// JSON 与表单两种来源合并后的统一键值视图
type Payload map[string]string

// MergePayload 合并 JSON 对象与表单字段
// 同名字段以 JSON 值为准
func MergePayload(jsonFields map[string]interface{}, formFields map[string][]string) Payload {
	payload := Payload{}

	for key, values := range formFields {
		if len(values) > 0 {
			payload[key] = values[0]
		}
	}

	for key, value := range jsonFields {
		payload[key] = stringifyJSONValue(value)
	}

	return payload
}

// stringifyJSONValue 将 JSON 标量转为字符串
// 数值型时间戳等以数字形式出现的字段在此统一
func stringifyJSONValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		// 嵌套对象/数组不参与字段解析
		return ""
	}
}

// Pick 按别名优先级取第一个非空（去除首尾空白后）的值
func (p Payload) Pick(aliases []string) string {
	for _, key := range aliases {
		if value, ok := p[key]; ok {
			if trimmed := strings.TrimSpace(value); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// Keys 返回载荷中出现的所有字段名（排序后，用于调试信息）
func (p Payload) Keys() []string {
	keys := make([]string, 0, len(p))
	for key := range p {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// ResolvedFields 别名解析后的规范字段
type ResolvedFields struct {
	Phone   string
	Content string
	Time    string
	Device  string
}

// Resolve 对载荷做别名解析
func (p Payload) Resolve() ResolvedFields {
	return ResolvedFields{
		Phone:   p.Pick(phoneAliases),
		Content: p.Pick(contentAliases),
		Time:    p.Pick(timeAliases),
		Device:  p.Pick(deviceAliases),
	}
}
