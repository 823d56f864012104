// Package quota implements the chat-demo message counter carried in a
// client-held cookie. The value is signed and carries its own expiry so
// a tampered or stale cookie decodes to a fresh counter instead of
// being trusted as-is.
package quota

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// CookieName is the quota cookie set on chat-demo responses.
const CookieName = "demo_msg_count"

// sigLen is the number of HMAC bytes kept in the encoded value.
const sigLen = 16

// Codec encodes and decodes the quota counter.
type Codec struct {
	secret []byte
	max    int
	window time.Duration
	now    func() time.Time
}

// NewCodec creates a Codec. It panics if secret is empty or max is not
// positive; both come from validated configuration.
func NewCodec(secret string, max int, window time.Duration) *Codec {
	if secret == "" {
		panic("quota.NewCodec: empty signing secret")
	}
	if max <= 0 {
		panic("quota.NewCodec: non-positive max")
	}
	if window <= 0 {
		window = time.Hour
	}
	return &Codec{
		secret: []byte(secret),
		max:    max,
		window: window,
		now:    time.Now,
	}
}

// Max returns the per-window message ceiling.
func (c *Codec) Max() int { return c.max }

// Window returns the quota window length.
func (c *Codec) Window() time.Duration { return c.window }

// Encode returns the signed cookie value for count. The counter is
// clamped to 0..max and the current window's expiry is embedded.
func (c *Codec) Encode(count int) string {
	if count < 0 {
		count = 0
	}
	if count > c.max {
		count = c.max
	}
	expiry := c.now().Add(c.window).Unix()
	payload := fmt.Sprintf("%d.%d", count, expiry)
	return payload + "." + c.sign(payload)
}

// Decode returns the counter carried by value. A missing, malformed,
// tampered or expired value decodes to 0: the client simply starts a
// fresh window, which is the same outcome as cookie expiry.
func (c *Codec) Decode(value string) int {
	parts := strings.Split(value, ".")
	if len(parts) != 3 {
		return 0
	}
	payload := parts[0] + "." + parts[1]
	if !hmac.Equal([]byte(parts[2]), []byte(c.sign(payload))) {
		return 0
	}
	count, err := strconv.Atoi(parts[0])
	if err != nil || count < 0 {
		return 0
	}
	expiry, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || c.now().Unix() >= expiry {
		return 0
	}
	if count > c.max {
		return c.max
	}
	return count
}

// CountFromRequest reads the quota counter from r's cookies.
func (c *Codec) CountFromRequest(r *http.Request) int {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return 0
	}
	return c.Decode(cookie.Value)
}

// Cookie builds the response cookie carrying count. Attributes match
// the demo contract: scoped to "/", client-inaccessible, same-site
// restricted, max-age equal to the quota window.
func (c *Codec) Cookie(count int) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    c.Encode(count),
		Path:     "/",
		MaxAge:   int(c.window / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *Codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil)[:sigLen])
}
