package web

import (
	"net/http"
	"time"

	"github.com/gorilla/securecookie"
)

// sessionCookie signs the session id so a browser cannot pick another
// session by editing its cookie.
type sessionCookie struct {
	codec  *securecookie.SecureCookie
	name   string
	secure bool
	maxAge time.Duration
}

func newSessionCookie(secret, name string, secure bool, maxAge time.Duration) *sessionCookie {
	return &sessionCookie{
		codec:  securecookie.New([]byte(secret), nil),
		name:   name,
		secure: secure,
		maxAge: maxAge,
	}
}

// read returns the session id carried by r, or "" when the cookie is absent
// or has been tampered with.
func (c *sessionCookie) read(r *http.Request) string {
	cookie, err := r.Cookie(c.name)
	if err != nil {
		return ""
	}
	var sessionID string
	if err := c.codec.Decode(c.name, cookie.Value, &sessionID); err != nil {
		return ""
	}
	return sessionID
}

func (c *sessionCookie) write(w http.ResponseWriter, sessionID string) error {
	encoded, err := c.codec.Encode(c.name, sessionID)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    encoded,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.maxAge.Seconds()),
	})
	return nil
}
