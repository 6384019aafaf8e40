package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrTokenInvalid = errors.New("invalid download token")
	ErrTokenExpired = errors.New("download token expired")
)

// SignedURLSigner issues and verifies HMAC signed download tokens of the form
// id.expiry.path.signature.
type SignedURLSigner struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSignedURLSigner constructs a signer with the provided secret and TTL.
func NewSignedURLSigner(secret string, ttl time.Duration) *SignedURLSigner {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &SignedURLSigner{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Generate returns a token granting access to relPath until the TTL elapses.
func (s *SignedURLSigner) Generate(id, relPath string) (string, time.Time, error) {
	if id == "" || relPath == "" {
		return "", time.Time{}, fmt.Errorf("id and path required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	encodedPath := base64.RawURLEncoding.EncodeToString([]byte(relPath))
	token := strings.Join([]string{id, ts, encodedPath, s.sign(id, ts, encodedPath)}, ".")
	return token, expiresAt, nil
}

// Verify checks the signature and expiry and returns the embedded id and path.
func (s *SignedURLSigner) Verify(token string) (id, relPath string, err error) {
	parts := strings.Split(token, ".")
	if len(parts) != 4 {
		return "", "", ErrTokenInvalid
	}
	id, ts, encodedPath, signature := parts[0], parts[1], parts[2], parts[3]

	if !hmac.Equal([]byte(s.sign(id, ts, encodedPath)), []byte(signature)) {
		return "", "", ErrTokenInvalid
	}
	expUnix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", "", ErrTokenInvalid
	}
	rawPath, err := base64.RawURLEncoding.DecodeString(encodedPath)
	if err != nil {
		return "", "", ErrTokenInvalid
	}
	if s.now().After(time.Unix(expUnix, 0)) {
		return "", "", ErrTokenExpired
	}
	return id, string(rawPath), nil
}

func (s *SignedURLSigner) sign(id, ts, encodedPath string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(id + "|" + ts + "|" + encodedPath))
	return hex.EncodeToString(mac.Sum(nil))
}
