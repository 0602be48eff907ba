package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsKeyword_ChinesePhrase(t *testing.T) {
	assert.True(t, ContainsKeyword("您的验证码是 123456, 请勿泄露"))
	assert.True(t, ContainsKeyword("【商城】验证码123456"))
	assert.False(t, ContainsKeyword("您的话费余额不足"))
}

func TestContainsKeyword_WholeWordCode(t *testing.T) {
	assert.True(t, ContainsKeyword("Your code: 98765 expires in 5 minutes"))
	assert.True(t, ContainsKeyword("Use CODE 1234 to log in"))
	assert.True(t, ContainsKeyword("code"))
	assert.True(t, ContainsKeyword("(code) 5678"))

	// 子串不是整词，必须拒绝
	assert.False(t, ContainsKeyword("Encoded payload 20240501"))
	assert.False(t, ContainsKeyword("happy coding 1234"))
	assert.False(t, ContainsKeyword("barcode 5678"))
}

func TestContainsKeyword_Empty(t *testing.T) {
	assert.False(t, ContainsKeyword(""))
}

func TestExtractCode_Basic(t *testing.T) {
	code, ok := ExtractCode("您的验证码是 123456, 请勿泄露")
	assert.True(t, ok)
	assert.Equal(t, "123456", code)

	code, ok = ExtractCode("Your code: 98765 expires in 5 minutes")
	assert.True(t, ok)
	assert.Equal(t, "98765", code)
}

func TestExtractCode_StandaloneRunOnly(t *testing.T) {
	// 11 位手机号不是独立的 4-6 位数字串
	_, ok := ExtractCode("验证码请联系 13800138000")
	assert.False(t, ok)

	// 长数字串整段跳过，取后面的合法数字串
	code, ok := ExtractCode("单号 1380013800011 验证码 4321")
	assert.True(t, ok)
	assert.Equal(t, "4321", code)

	// 过短的数字串跳过
	_, ok = ExtractCode("code 123")
	assert.False(t, ok)
}

func TestExtractCode_FirstMatchWins(t *testing.T) {
	code, ok := ExtractCode("验证码 1111，备用 2222")
	assert.True(t, ok)
	assert.Equal(t, "1111", code)
}

func TestExtractCode_NoDigits(t *testing.T) {
	_, ok := ExtractCode("no digits here")
	assert.False(t, ok)

	_, ok = ExtractCode("")
	assert.False(t, ok)
}

func TestExtractCode_BoundaryLengths(t *testing.T) {
	code, ok := ExtractCode("pin 1234")
	assert.True(t, ok)
	assert.Equal(t, "1234", code)

	code, ok = ExtractCode("pin 123456")
	assert.True(t, ok)
	assert.Equal(t, "123456", code)

	// 7 位超出范围
	_, ok = ExtractCode("pin 1234567")
	assert.False(t, ok)
}
