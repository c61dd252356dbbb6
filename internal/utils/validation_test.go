package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSanitizeString 测试字符串清理
func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "&lt;script&gt;", SanitizeString("<script>"))
	assert.Equal(t, "line1\nline2", SanitizeString("line1\nline2"))
	// 控制字符被移除,换行与制表符保留
	assert.Equal(t, "ab\tc", SanitizeString("a\x00b\t\x1bc"))
}

// TestValidateResourceID 测试资源 ID 规则
func TestValidateResourceID(t *testing.T) {
	assert.NoError(t, ValidateResourceID("clr-2026_001"))

	assert.ErrorIs(t, ValidateResourceID(""), ErrEmptyID)
	assert.ErrorIs(t, ValidateResourceID("id with spaces"), ErrInvalidIDFormat)
	assert.ErrorIs(t, ValidateResourceID("id;drop"), ErrInvalidIDFormat)
	assert.ErrorIs(t, ValidateResourceID(strings.Repeat("a", 65)), ErrIDTooLong)
}

// TestTrimAndValidate 测试清理加校验
func TestTrimAndValidate(t *testing.T) {
	got, err := TrimAndValidate("  hello <b>world</b>  ", 100)
	require.NoError(t, err)
	assert.Equal(t, "hello &lt;b&gt;world&lt;/b&gt;", got)

	_, err = TrimAndValidate("   ", 100)
	assert.ErrorIs(t, err, ErrEmptyString)

	_, err = TrimAndValidate(strings.Repeat("x", 101), 100)
	assert.ErrorIs(t, err, ErrStringTooLong)
}
