package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/berba-q/hospitality-scheduler-sub001/config"
)

func newTestManager(ttl time.Duration) *Manager {
	return NewManager(&config.AuthConfig{
		JWTSecret:      "test-secret-at-least-16-chars",
		AccessTokenTTL: ttl,
	})
}

func TestGenerateAndParseAccessToken(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	token, err := m.GenerateAccessToken("staff-001", "staff")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	claims, err := m.ParseToken(token)
	if err != nil {
		t.Fatalf("解析 Token 失败: %v", err)
	}
	if claims.UserID != "staff-001" {
		t.Errorf("期望 user_id=staff-001，实际=%s", claims.UserID)
	}
	if claims.Role != "staff" {
		t.Errorf("期望 role=staff，实际=%s", claims.Role)
	}
	if claims.TokenType != "access" {
		t.Errorf("期望 token_type=access，实际=%s", claims.TokenType)
	}
}

func TestParseToken_Expired(t *testing.T) {
	m := newTestManager(-time.Minute) // 已过期

	token, err := m.GenerateAccessToken("staff-001", "staff")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	_, err = m.ParseToken(token)
	if !errors.Is(err, ErrTokenExpired) {
		t.Errorf("期望 ErrTokenExpired，实际: %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	m := newTestManager(15 * time.Minute)
	other := NewManager(&config.AuthConfig{
		JWTSecret:      "another-secret-16-chars-min",
		AccessTokenTTL: 15 * time.Minute,
	})

	token, err := m.GenerateAccessToken("staff-001", "staff")
	if err != nil {
		t.Fatalf("生成 Token 失败: %v", err)
	}

	if _, err := other.ParseToken(token); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	m := newTestManager(15 * time.Minute)

	if _, err := m.ParseToken("not-a-jwt"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("期望 ErrTokenInvalid，实际: %v", err)
	}
}
