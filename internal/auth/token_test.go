package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTokenValidator_RoundTrip 测试签发与校验
func TestTokenValidator_RoundTrip(t *testing.T) {
	validator := NewTokenValidator("clearance-portal", "test-secret")

	token, err := validator.IssueToken("stu-001", "Abebe Bekele", "student", "Software Engineering", "engineering", time.Hour)
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "stu-001", claims.Subject)
	assert.Equal(t, "Abebe Bekele", claims.FullName)
	assert.Equal(t, "student", claims.Role)
	assert.Equal(t, "Software Engineering", claims.Department)
	assert.Equal(t, "engineering", claims.College)
}

// TestTokenValidator_WrongSecret 测试密钥不匹配
func TestTokenValidator_WrongSecret(t *testing.T) {
	issuer := NewTokenValidator("clearance-portal", "secret-a")
	validator := NewTokenValidator("clearance-portal", "secret-b")

	token, err := issuer.IssueToken("stu-001", "Test", "student", "", "", time.Hour)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

// TestTokenValidator_WrongIssuer 测试签发方不匹配
func TestTokenValidator_WrongIssuer(t *testing.T) {
	issuer := NewTokenValidator("other-portal", "test-secret")
	validator := NewTokenValidator("clearance-portal", "test-secret")

	token, err := issuer.IssueToken("stu-001", "Test", "student", "", "", time.Hour)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

// TestTokenValidator_Expired 测试过期令牌
func TestTokenValidator_Expired(t *testing.T) {
	validator := NewTokenValidator("clearance-portal", "test-secret")

	token, err := validator.IssueToken("stu-001", "Test", "student", "", "", -time.Minute)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

// TestTokenValidator_MissingRole 测试缺少角色声明
func TestTokenValidator_MissingRole(t *testing.T) {
	validator := NewTokenValidator("clearance-portal", "test-secret")

	token, err := validator.IssueToken("stu-001", "Test", "", "", "", time.Hour)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

// TestTokenValidator_Garbage 测试非法令牌串
func TestTokenValidator_Garbage(t *testing.T) {
	validator := NewTokenValidator("clearance-portal", "test-secret")

	_, err := validator.ValidateToken("not-a-token")
	assert.Error(t, err)
}
