package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Flash severities.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashCookie carries pending flash messages across a redirect.
const FlashCookie = "flash"

const (
	flashContextKey       = "flashes"
	flashCookieWrittenKey = "flash_cookie_written"
)

// Flash is a one-shot message shown on the next rendered view.
type Flash struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// AddFlash queues a message for the next rendered view, in this request or after a redirect.
func AddFlash(c *gin.Context, severity, message string) {
	pending := append(pendingFlashes(c), Flash{Severity: severity, Message: message})
	c.Set(flashContextKey, pending)

	data, err := json.Marshal(pending)
	if err != nil {
		logrus.WithError(err).Warn("Failed to encode flash messages")
		return
	}
	setCookie(c, FlashCookie, base64.RawURLEncoding.EncodeToString(data), 0)
	c.Set(flashCookieWrittenKey, true)
}

// ConsumeFlashes returns and clears every pending message, expiring the
// cookie whether it came with the request or was written by this response.
func ConsumeFlashes(c *gin.Context) []Flash {
	flashes := pendingFlashes(c)
	c.Set(flashContextKey, []Flash(nil))
	_, cookieErr := c.Cookie(FlashCookie)
	if cookieErr == nil || c.GetBool(flashCookieWrittenKey) {
		setCookie(c, FlashCookie, "", -1)
		c.Set(flashCookieWrittenKey, false)
	}
	if flashes == nil {
		return []Flash{}
	}
	return flashes
}

// pendingFlashes merges messages already queued in this request with those
// that arrived in the request cookie.
func pendingFlashes(c *gin.Context) []Flash {
	if v, ok := c.Get(flashContextKey); ok {
		flashes, _ := v.([]Flash)
		return flashes
	}

	var flashes []Flash
	if raw, err := c.Cookie(FlashCookie); err == nil && raw != "" {
		if data, err := base64.RawURLEncoding.DecodeString(raw); err == nil {
			if err := json.Unmarshal(data, &flashes); err != nil {
				flashes = nil
			}
		}
	}
	c.Set(flashContextKey, flashes)
	return flashes
}

func setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", false, true)
}
