package http

import (
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/contactdesk/internal/data/db"
	"github.com/yungbote/contactdesk/internal/data/repos"
	"github.com/yungbote/contactdesk/internal/data/repos/testutil"
	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/http/flash"
	httpH "github.com/yungbote/contactdesk/internal/http/handlers"
	"github.com/yungbote/contactdesk/internal/http/views"
	"github.com/yungbote/contactdesk/internal/services"
)

type testApp struct {
	t      *testing.T
	engine *gin.Engine
	store  *db.Store
	codec  *flash.Codec
	jar    []*http.Cookie
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := testutil.Store(t)
	log := testutil.Logger(t)

	contactRepo := repos.NewContactRepo(store.DB(), log)
	noteRepo := repos.NewNoteRepo(store.DB(), log)
	contacts := services.NewContactService(store, log, contactRepo)
	notes := services.NewNoteService(store, log, contactRepo, noteRepo)
	admin := services.NewAdminService(store, log, contactRepo, noteRepo, repos.NewInspectorRepo(store.DB(), log))

	tmpl, err := views.Load()
	if err != nil {
		t.Fatalf("views.Load: %v", err)
	}
	codec := flash.NewCodec("test-secret", time.Minute)
	engine := NewRouter(RouterConfig{
		Log:            log,
		Templates:      tmpl,
		Flash:          codec,
		PageHandler:    httpH.NewPageHandler(),
		ContactHandler: httpH.NewContactHandler(log, contacts, codec),
		NoteHandler:    httpH.NewNoteHandler(log, notes, codec),
		AdminHandler:   httpH.NewAdminHandler(log, admin),
		APIHandler:     httpH.NewAPIHandler(log, contacts, notes),
		HealthHandler:  httpH.NewHealthHandler(store),
	})
	return &testApp{t: t, engine: engine, store: store, codec: codec}
}

// do sends a request carrying the cookies kept from earlier responses.
func (a *testApp) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	a.t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range a.jar {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)

	a.jar = nil
	for _, ck := range rec.Result().Cookies() {
		if ck.MaxAge >= 0 && ck.Value != "" {
			a.jar = append(a.jar, ck)
		}
	}
	return rec
}

func (a *testApp) doJSON(method, path, body string) *httptest.ResponseRecorder {
	a.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) seedContact(first, last string) *types.Contact {
	a.t.Helper()
	c := &types.Contact{FirstName: first, LastName: last, Email: strings.ToLower(first) + "@x.com", Phone: "1234567890"}
	if err := a.store.DB().Create(c).Error; err != nil {
		a.t.Fatalf("seed contact: %v", err)
	}
	return c
}

func (a *testApp) countContacts() int64 {
	a.t.Helper()
	var n int64
	if err := a.store.DB().Model(&types.Contact{}).Count(&n).Error; err != nil {
		a.t.Fatalf("count: %v", err)
	}
	return n
}

func idPath(format string, ids ...uint) string {
	out := format
	for _, id := range ids {
		out = strings.Replace(out, "{}", strconv.FormatUint(uint64(id), 10), 1)
	}
	return out
}

func expectRedirect(t *testing.T, rec *httptest.ResponseRecorder, location string) {
	t.Helper()
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status: want=%d got=%d body=%s", http.StatusSeeOther, rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != location {
		t.Fatalf("location: want=%q got=%q", location, got)
	}
}

func TestSubmitValidContactRedirectsWithFlash(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPost, "/submit", url.Values{
		"first_name": {" Ann "},
		"last_name":  {"Lee"},
		"email":      {"ann@x.com"},
		"phone":      {"123-456-7890"},
	})
	expectRedirect(t, rec, "/success")

	page := app.do(http.MethodGet, "/success", nil)
	if page.Code != http.StatusOK || !strings.Contains(page.Body.String(), "Data saved successfully!") {
		t.Fatalf("success page missing flash: %d %s", page.Code, page.Body.String())
	}
	again := app.do(http.MethodGet, "/success", nil)
	if strings.Contains(again.Body.String(), "Data saved successfully!") {
		t.Fatalf("flash shown twice")
	}
	if n := app.countContacts(); n != 1 {
		t.Fatalf("contacts: want=1 got=%d", n)
	}
}

func TestSubmitInvalidContactRerendersForm(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPost, "/submit", url.Values{
		"first_name": {""},
		"last_name":  {"Lee"},
		"email":      {"not-an-email"},
		"phone":      {"1234567890"},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: want=%d got=%d", http.StatusUnprocessableEntity, rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"First name is required", "Please enter a valid email address", `value="not-an-email"`, `value="Lee"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("form missing %q", want)
		}
	}
	if n := strings.Count(body, `class="flash flash-error"`); n != 2 {
		t.Fatalf("want exactly two error messages, got %d", n)
	}
	if n := app.countContacts(); n != 0 {
		t.Fatalf("invalid submission stored: %d", n)
	}
}

func TestViewListsNewestFirst(t *testing.T) {
	app := newTestApp(t)
	app.seedContact("Older", "One")
	app.seedContact("Newer", "Two")

	rec := app.do(http.MethodGet, "/view", nil)
	body := rec.Body.String()
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if strings.Index(body, "Newer Two") > strings.Index(body, "Older One") {
		t.Fatalf("contacts not newest first")
	}
}

func TestDeleteContact(t *testing.T) {
	app := newTestApp(t)
	c := app.seedContact("Ann", "Lee")

	rec := app.do(http.MethodPost, idPath("/delete/{}", c.ID+100), nil)
	expectRedirect(t, rec, "/view")
	page := app.do(http.MethodGet, "/view", nil)
	if !strings.Contains(page.Body.String(), "Contact not found") {
		t.Fatalf("missing not-found flash")
	}
	if n := app.countContacts(); n != 1 {
		t.Fatalf("missing delete mutated rows: %d", n)
	}

	rec = app.do(http.MethodPost, idPath("/delete/{}", c.ID), nil)
	expectRedirect(t, rec, "/view")
	page = app.do(http.MethodGet, "/view", nil)
	if !strings.Contains(page.Body.String(), "Contact &#34;Ann Lee&#34; has been deleted successfully") {
		t.Fatalf("missing delete confirmation: %s", page.Body.String())
	}
	if n := app.countContacts(); n != 0 {
		t.Fatalf("contact not deleted: %d", n)
	}
}

func TestDeleteContactNonNumericID(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodPost, "/delete/abc", nil)
	expectRedirect(t, rec, "/view")
}

func TestExportCSV(t *testing.T) {
	app := newTestApp(t)
	c := app.seedContact("Ann", "Lee")

	rec := app.do(http.MethodGet, "/export_csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type: %q", ct)
	}
	cd := rec.Header().Get("Content-Disposition")
	if !strings.HasPrefix(cd, "attachment; filename=contacts_export_") || !strings.HasSuffix(cd, ".csv") {
		t.Fatalf("content disposition: %q", cd)
	}
	records, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 || records[1][0] != strconv.FormatUint(uint64(c.ID), 10) || records[1][5] != c.DateAdded() {
		t.Fatalf("csv rows: %v", records)
	}
}

func TestNotesLifecycle(t *testing.T) {
	app := newTestApp(t)
	c := app.seedContact("Ann", "Lee")
	notes := idPath("/contact/{}/notes", c.ID)

	if rec := app.do(http.MethodGet, notes+"/add", nil); rec.Code != http.StatusOK {
		t.Fatalf("add form: %d", rec.Code)
	}

	rec := app.do(http.MethodPost, notes+"/add", url.Values{"note_text": {"   "}})
	if rec.Code != http.StatusUnprocessableEntity || !strings.Contains(rec.Body.String(), "Note text is required") {
		t.Fatalf("blank note: %d", rec.Code)
	}

	rec = app.do(http.MethodPost, notes+"/add", url.Values{"note_text": {"call back"}})
	expectRedirect(t, rec, notes)
	page := app.do(http.MethodGet, notes, nil)
	if !strings.Contains(page.Body.String(), "Note added successfully!") || !strings.Contains(page.Body.String(), "call back") {
		t.Fatalf("notes page: %s", page.Body.String())
	}

	var note types.Note
	if err := app.store.DB().Where("contact_id = ?", c.ID).First(&note).Error; err != nil {
		t.Fatalf("load note: %v", err)
	}
	edit := idPath("/contact/{}/notes/{}/edit", c.ID, note.ID)
	if rec := app.do(http.MethodGet, edit, nil); rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "call back") {
		t.Fatalf("edit form: %d", rec.Code)
	}
	rec = app.do(http.MethodPost, edit, url.Values{"note_text": {"called"}})
	expectRedirect(t, rec, notes)
	page = app.do(http.MethodGet, notes, nil)
	if !strings.Contains(page.Body.String(), "Note updated successfully!") || !strings.Contains(page.Body.String(), "called") {
		t.Fatalf("updated notes page: %s", page.Body.String())
	}

	del := idPath("/contact/{}/notes/{}/delete", c.ID, note.ID)
	expectRedirect(t, app.do(http.MethodPost, del, nil), notes)
	page = app.do(http.MethodGet, notes, nil)
	if !strings.Contains(page.Body.String(), "Note deleted successfully") {
		t.Fatalf("missing delete flash")
	}
	expectRedirect(t, app.do(http.MethodPost, del, nil), notes)
	page = app.do(http.MethodGet, notes, nil)
	if !strings.Contains(page.Body.String(), "Note not found") {
		t.Fatalf("missing not-found flash")
	}
}

func TestNotesForMissingContactRedirect(t *testing.T) {
	app := newTestApp(t)
	expectRedirect(t, app.do(http.MethodGet, "/contact/999/notes", nil), "/view")
	page := app.do(http.MethodGet, "/view", nil)
	if !strings.Contains(page.Body.String(), "Contact not found") {
		t.Fatalf("missing flash")
	}
	expectRedirect(t, app.do(http.MethodPost, "/contact/999/notes/add", url.Values{"note_text": {"x"}}), "/view")
	expectRedirect(t, app.do(http.MethodGet, "/contact/999/notes/1/edit", nil), "/view")
	expectRedirect(t, app.do(http.MethodGet, "/contact/x/notes", nil), "/view")
}

func TestAdminAndHelpPages(t *testing.T) {
	app := newTestApp(t)
	app.seedContact("Ann", "Lee")

	rec := app.do(http.MethodGet, "/admin", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin status: %d", rec.Code)
	}
	for _, want := range []string{"first_name", "note_text", "Ann"} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("admin page missing %q", want)
		}
	}
	if rec := app.do(http.MethodGet, "/help", nil); rec.Code != http.StatusOK {
		t.Fatalf("help status: %d", rec.Code)
	}
	if rec := app.do(http.MethodGet, "/", nil); rec.Code != http.StatusOK {
		t.Fatalf("index status: %d", rec.Code)
	}
}

func TestHealthcheck(t *testing.T) {
	app := newTestApp(t)
	rec := app.do(http.MethodGet, "/healthcheck", nil)
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("healthcheck: %d %q", rec.Code, rec.Body.String())
	}
}

func TestAPIContactLifecycle(t *testing.T) {
	app := newTestApp(t)

	rec := app.doJSON(http.MethodPost, "/api/contacts", `{"first_name":"","last_name":"Lee","email":"bad","phone":"1234567890"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("invalid create: want=422 got=%d", rec.Code)
	}
	var verr struct {
		Error struct {
			Code    string   `json:"code"`
			Details []string `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &verr); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if verr.Error.Code != "validation_failed" || len(verr.Error.Details) != 2 {
		t.Fatalf("validation body: %+v", verr)
	}

	rec = app.doJSON(http.MethodPost, "/api/contacts", `{"first_name":"Ann","last_name":"Lee","email":"ann@x.com","phone":"1234567890"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: want=201 got=%d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Contact types.Contact `json:"contact"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	base := idPath("/api/contacts/{}", created.Contact.ID)

	rec = app.doJSON(http.MethodPost, base+"/notes", `{"note_text":"hello"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create note: %d %s", rec.Code, rec.Body.String())
	}
	var noteResp struct {
		Note types.Note `json:"note"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &noteResp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	rec = app.doJSON(http.MethodPut, idPath("/api/contacts/{}/notes/{}", created.Contact.ID, noteResp.Note.ID), `{"note_text":"bye"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update note: %d", rec.Code)
	}

	if rec := app.doJSON(http.MethodDelete, base, ""); rec.Code != http.StatusOK {
		t.Fatalf("delete: %d", rec.Code)
	}
	if rec := app.doJSON(http.MethodGet, base, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted: want=404 got=%d", rec.Code)
	}
	if rec := app.doJSON(http.MethodGet, base+"/notes", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("notes of deleted: want=404 got=%d", rec.Code)
	}
	if rec := app.doJSON(http.MethodGet, "/api/contacts/abc", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("invalid id: want=400 got=%d", rec.Code)
	}
}
