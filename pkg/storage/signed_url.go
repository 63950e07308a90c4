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
	// ErrInvalidLink is returned for malformed or tampered tokens.
	ErrInvalidLink = errors.New("invalid download link")
	// ErrLinkExpired is returned for tokens past their expiry.
	ErrLinkExpired = errors.New("download link expired")
)

// Signer issues short-lived tokens naming one backend file (resource + row id).
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner constructs a signer. A non-positive ttl falls back to 15 minutes.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Sign returns a token for the row file and its expiry.
func (s *Signer) Sign(resource, id string) (string, time.Time, error) {
	if resource == "" || id == "" {
		return "", time.Time{}, fmt.Errorf("resource and id required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	payload := strings.Join([]string{resource, id, strconv.FormatInt(expiresAt.Unix(), 10)}, "|")
	encoded := base64.RawURLEncoding.EncodeToString([]byte(payload))
	return encoded + "." + s.mac(encoded), expiresAt, nil
}

// Verify checks the signature and expiry and returns the file the token names.
func (s *Signer) Verify(token string) (resource, id string, err error) {
	encoded, signature, ok := strings.Cut(token, ".")
	if !ok || encoded == "" || signature == "" {
		return "", "", ErrInvalidLink
	}
	if !hmac.Equal([]byte(s.mac(encoded)), []byte(signature)) {
		return "", "", ErrInvalidLink
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", "", ErrInvalidLink
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return "", "", ErrInvalidLink
	}
	exp, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return "", "", ErrInvalidLink
	}
	if s.now().After(time.Unix(exp, 0)) {
		return "", "", ErrLinkExpired
	}
	return parts[0], parts[1], nil
}

func (s *Signer) mac(encoded string) string {
	h := hmac.New(sha256.New, s.secret)
	_, _ = h.Write([]byte(encoded))
	return hex.EncodeToString(h.Sum(nil))
}
