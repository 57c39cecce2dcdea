package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HMACSignatureService provides HMAC-SHA256 signing for the audit hash chain
// and for outbound notification payloads.
type HMACSignatureService struct{}

// NewHMACSignatureService creates a new HMAC-SHA256 signature service.
func NewHMACSignatureService() *HMACSignatureService {
	return &HMACSignatureService{}
}

// Sign computes HMAC-SHA256 of payload using secretKey.
// Returns lowercase hex-encoded signature.
func (s *HMACSignatureService) Sign(secretKey string, payload string) string {
	mac := hmac.New(sha256.New, []byte(secretKey))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secretKey, payload).
// Uses constant-time comparison to prevent timing attacks.
func (s *HMACSignatureService) Verify(secretKey string, payload string, signature string) bool {
	expected := s.Sign(secretKey, payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ChainHash links an audit entry to its predecessor.
// Canonical input: PREV_HASH|ACTOR|ACTION|ENTITY_TYPE|ENTITY_ID|NEW_VALUE.
func (s *HMACSignatureService) ChainHash(secretKey, prevHash, canonical string) string {
	return s.Sign(secretKey, fmt.Sprintf("%s|%s", prevHash, canonical))
}
