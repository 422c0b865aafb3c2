package session

import (
	"crypto/rand"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieOptions controls the attributes of session cookies.
type CookieOptions struct {
	Path   string
	Secure bool
	MaxAge time.Duration // zero means a browser-session cookie
	// Key signs every entry. Empty selects a random key, so entries are
	// only readable through the Cookies value that wrote them.
	Key []byte
}

// sealedEntry is the signed form of a cookie value. Name binds the value to
// its cookie so a signed token cannot be replayed as the user entry.
type sealedEntry struct {
	Name  string `json:"n"`
	Value string `json:"v"`
	jwt.RegisteredClaims
}

// Cookies is a per-request Store over the client's cookie jar. Each entry is
// stored as an HS256 JWS over its name and value. Reads come from the
// request, writes go to the response and are visible to later reads
// through the same Cookies value.
type Cookies struct {
	r       *http.Request
	w       http.ResponseWriter
	opts    CookieOptions
	pending map[string]*string // nil value marks a removed key
}

func NewCookies(w http.ResponseWriter, r *http.Request, opts CookieOptions) *Cookies {
	if opts.Path == "" {
		opts.Path = "/"
	}
	if len(opts.Key) == 0 {
		opts.Key = make([]byte, 32)
		_, _ = rand.Read(opts.Key)
	}
	return &Cookies{
		r:       r,
		w:       w,
		opts:    opts,
		pending: make(map[string]*string),
	}
}

// Get returns the entry stored under key. A cookie whose signature does not
// verify, or that was signed for another name, is reported as absent.
func (c *Cookies) Get(key string) (string, bool) {
	if v, ok := c.pending[key]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}

	cookie, err := c.r.Cookie(key)
	if err != nil {
		return "", false
	}
	return c.open(key, cookie.Value)
}

func (c *Cookies) Put(entries map[string]string) {
	for k, v := range entries {
		sealed, err := c.seal(k, v)
		if err != nil {
			// HS256 with a non-empty key does not fail; drop the entry if it ever does
			continue
		}
		cookie := &http.Cookie{
			Name:     k,
			Value:    sealed,
			Path:     c.opts.Path,
			HttpOnly: true,
			Secure:   c.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		}
		if c.opts.MaxAge > 0 {
			cookie.MaxAge = int(c.opts.MaxAge.Seconds())
			cookie.Expires = time.Now().Add(c.opts.MaxAge)
		}
		http.SetCookie(c.w, cookie)

		value := v
		c.pending[k] = &value
	}
}

func (c *Cookies) Remove(keys ...string) {
	for _, k := range keys {
		http.SetCookie(c.w, &http.Cookie{
			Name:     k,
			Value:    "",
			Path:     c.opts.Path,
			Expires:  time.Unix(0, 0),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   c.opts.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		c.pending[k] = nil
	}
}

func (c *Cookies) seal(name, value string) (string, error) {
	claims := sealedEntry{
		Name:  name,
		Value: value,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.opts.Key)
}

func (c *Cookies) open(name, raw string) (string, bool) {
	var claims sealedEntry
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return c.opts.Key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || claims.Name != name {
		return "", false
	}
	return claims.Value, true
}
