package service

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"seat-lock-service/internal/model"
	apperrors "seat-lock-service/pkg/app_errors"
)

const sessionTokenBytes = 16

// SessionService 產生一次結帳流程的 session 識別。
// raw token 存進鎖的 value；transport token 是 AES-GCM 加密後的版本，
// 供對外傳輸，可用 Decode 還原。
type SessionService interface {
	Generate() (*model.LockSession, error)
	Decode(transportToken string) (string, error)
}

type AESSessionService struct {
	aead cipher.AEAD
}

// NewAESSessionService 以 64 字元 hex（32 bytes，AES-256）金鑰建立 session 產生器
func NewAESSessionService(hexKey string) (SessionService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSessionKey, err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("%w: key must be 32 bytes, got %d", apperrors.ErrInvalidSessionKey, len(key))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSessionKey, err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidSessionKey, err)
	}

	return &AESSessionService{aead: aead}, nil
}

func (s *AESSessionService) Generate() (*model.LockSession, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	token := hex.EncodeToString(raw)

	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}

	// nonce 接在密文前面，Decode 時拆回來
	sealed := s.aead.Seal(nonce, nonce, []byte(token), nil)

	return &model.LockSession{
		Token:          token,
		TransportToken: base64.RawURLEncoding.EncodeToString(sealed),
	}, nil
}

func (s *AESSessionService) Decode(transportToken string) (string, error) {
	sealed, err := base64.RawURLEncoding.DecodeString(transportToken)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidSessionToken, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(sealed) < nonceSize {
		return "", apperrors.ErrInvalidSessionToken
	}

	token, err := s.aead.Open(nil, sealed[:nonceSize], sealed[nonceSize:], nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrInvalidSessionToken, err)
	}

	return string(token), nil
}
