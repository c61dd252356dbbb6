package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims 身份令牌声明
// 由外部身份系统(门户登录服务)签发,本服务只校验签名并信任其内容
type IdentityClaims struct {
	FullName   string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	College    string `json:"college,omitempty"`
	jwt.RegisteredClaims
}

// TokenValidator 身份令牌验证器
type TokenValidator struct {
	issuer string
	secret []byte
}

// NewTokenValidator 创建身份令牌验证器
func NewTokenValidator(issuer, secret string) *TokenValidator {
	return &TokenValidator{
		issuer: issuer,
		secret: []byte(secret),
	}
}

// Issuer 返回期望的签发方
func (v *TokenValidator) Issuer() string {
	return v.issuer
}

// ValidateToken 校验身份令牌
func (v *TokenValidator) ValidateToken(tokenString string) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	if v.issuer != "" && claims.Issuer != v.issuer {
		return nil, fmt.Errorf("unexpected issuer: %s", claims.Issuer)
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return nil, errors.New("token expired")
	}
	if claims.Subject == "" {
		return nil, errors.New("token missing subject")
	}
	if claims.Role == "" {
		return nil, errors.New("token missing role")
	}

	return claims, nil
}

// IssueToken 签发身份令牌
// 仅供测试和种子脚本使用,生产环境由外部身份系统签发
func (v *TokenValidator) IssueToken(subject, name, role, department, college string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &IdentityClaims{
		FullName:   name,
		Role:       role,
		Department: department,
		College:    college,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}
