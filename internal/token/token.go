package token

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Wire format: base64url(header) "." base64url(payload) "." base64url(signature),
// signature = HMAC-SHA256(secret, header "." payload). The payload keys are part
// of the contract and must not change.

var (
	ErrMalformedToken   = errors.New("malformed token")
	ErrInvalidSignature = errors.New("invalid token signature")
	ErrTokenExpired     = errors.New("token expired")
)

const DefaultTTL = 24 * time.Hour

type Claims struct {
	Subject   uint   `json:"subject"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	IssuedAt  int64  `json:"issued_at"`
	ExpiresAt int64  `json:"expires_at"`
}

type Codec struct {
	Secret []byte
	TTL    time.Duration
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Codec{Secret: secret, TTL: ttl}
}

var header = mustEncodeJSON(map[string]string{"alg": "HS256", "typ": "session"})

func mustEncodeJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func (c *Codec) sign(signing string) string {
	mac := hmac.New(sha256.New, c.Secret)
	mac.Write([]byte(signing))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (c *Codec) Issue(subject uint, username, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Subject:   subject,
		Username:  username,
		Role:      role,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(c.TTL).Unix(),
	}

	payload, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	signing := header + "." + base64.RawURLEncoding.EncodeToString(payload)
	return signing + "." + c.sign(signing), nil
}

func (c *Codec) Verify(raw string) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, ErrMalformedToken
	}

	mac := hmac.New(sha256.New, c.Secret)
	mac.Write([]byte(parts[0] + "." + parts[1]))
	if !hmac.Equal(sig, mac.Sum(nil)) {
		return nil, ErrInvalidSignature
	}

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, ErrMalformedToken
	}

	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, ErrMalformedToken
	}

	if claims.ExpiresAt < time.Now().Unix() {
		return nil, ErrTokenExpired
	}

	return &claims, nil
}
