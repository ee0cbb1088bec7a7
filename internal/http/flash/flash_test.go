package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("s3cret", time.Minute)
	var msgs Messages
	msgs.Success("Data saved successfully!")
	msgs.Errors([]string{"First name is required", "Email is required"})

	token, err := codec.Encode(msgs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len: want=3 got=%d", len(got))
	}
	if got[0].Level != LevelSuccess || got[2].Text != "Email is required" {
		t.Fatalf("unexpected messages: %+v", got)
	}
}

func TestCodecRejectsForeignSignature(t *testing.T) {
	var msgs Messages
	msgs.Success("hi")
	token, err := NewCodec("one", time.Minute).Encode(msgs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := NewCodec("two", time.Minute).Decode(token); err == nil {
		t.Fatalf("Decode with wrong key: want error")
	}
}

func TestCodecRejectsExpired(t *testing.T) {
	codec := NewCodec("k", time.Second)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	codec.now = func() time.Time { return start }
	var msgs Messages
	msgs.Error("Contact not found")
	token, err := codec.Encode(msgs)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	codec.now = func() time.Time { return start.Add(time.Hour) }
	if _, err := codec.Decode(token); err == nil {
		t.Fatalf("Decode expired: want error")
	}
}

func TestRedirectSetsCookie(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := NewCodec("k", time.Minute)
	r := gin.New()
	r.POST("/go", func(c *gin.Context) {
		var msgs Messages
		msgs.Success("Note deleted successfully")
		if err := codec.Redirect(c, "/view", msgs); err != nil {
			t.Errorf("Redirect: %v", err)
		}
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/go", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: want=%d got=%d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/view" {
		t.Fatalf("location: want=/view got=%q", loc)
	}
	var cookie *http.Cookie
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == CookieName {
			cookie = ck
		}
	}
	if cookie == nil {
		t.Fatalf("flash cookie not set")
	}
	msgs, err := codec.Decode(cookie.Value)
	if err != nil || len(msgs) != 1 || msgs[0].Text != "Note deleted successfully" {
		t.Fatalf("cookie content: msgs=%+v err=%v", msgs, err)
	}
}
