package flash

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Messages is the per-request list of user-facing notices. Handlers build one
// and either render it directly or carry it across a redirect.
type Messages []Message

func (m *Messages) Add(level Level, text string) {
	*m = append(*m, Message{Level: level, Text: text})
}

func (m *Messages) Success(text string) { m.Add(LevelSuccess, text) }
func (m *Messages) Error(text string)   { m.Add(LevelError, text) }

// Errors adds one error message per entry.
func (m *Messages) Errors(texts []string) {
	for _, t := range texts {
		m.Error(t)
	}
}

const CookieName = "contactdesk_flash"

const contextKey = "flash_messages"

type claims struct {
	Messages Messages `json:"msgs"`
	jwt.RegisteredClaims
}

// Codec signs flash messages into a short-lived HS256 token.
type Codec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Codec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (c *Codec) TTL() time.Duration { return c.ttl }

func (c *Codec) Encode(msgs Messages) (string, error) {
	now := c.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Messages: msgs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(c.secret)
}

func (c *Codec) Decode(tokenString string) (Messages, error) {
	if tokenString == "" {
		return nil, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(c.now))
	if err != nil {
		return nil, fmt.Errorf("parse flash token: %w", err)
	}
	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid flash token")
	}
	return cl.Messages, nil
}

// Pending returns the messages carried over from the previous redirect.
func Pending(c *gin.Context) Messages {
	if v, ok := c.Get(contextKey); ok {
		if msgs, ok := v.(Messages); ok {
			return msgs
		}
	}
	return nil
}

func SetPending(c *gin.Context, msgs Messages) {
	c.Set(contextKey, msgs)
}

// Redirect stores msgs in the flash cookie and answers 303 See Other.
func (c *Codec) Redirect(ctx *gin.Context, location string, msgs Messages) error {
	var err error
	if len(msgs) > 0 {
		var token string
		token, err = c.Encode(msgs)
		if err == nil {
			ctx.SetSameSite(http.SameSiteLaxMode)
			ctx.SetCookie(CookieName, token, int(c.ttl.Seconds()), "/", "", false, true)
		}
	}
	ctx.Redirect(http.StatusSeeOther, location)
	return err
}

// Clear expires the flash cookie in the browser.
func Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(CookieName, "", -1, "/", "", false, true)
}
