package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/contactdesk/internal/data/db"
	"github.com/yungbote/contactdesk/internal/data/repos"
	"github.com/yungbote/contactdesk/internal/data/repos/testutil"
	types "github.com/yungbote/contactdesk/internal/domain"
	"github.com/yungbote/contactdesk/internal/platform/apierr"
)

func newNoteFixture(t *testing.T, store *db.Store) (ContactService, NoteService, *types.Contact) {
	t.Helper()
	log := testutil.Logger(t)
	contactRepo := repos.NewContactRepo(store.DB(), log)
	noteRepo := repos.NewNoteRepo(store.DB(), log)
	contacts := NewContactService(store, log, contactRepo)
	notes := NewNoteService(store, log, contactRepo, noteRepo)
	c, err := contacts.Submit(context.Background(), validForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	return contacts, notes, c
}

func TestNoteServiceAddRequiresContactAndText(t *testing.T) {
	store := testutil.Store(t)
	_, notes, c := newNoteFixture(t, store)
	ctx := context.Background()

	if _, _, err := notes.Add(ctx, c.ID+10, "hello"); !apierr.IsNotFound(err) {
		t.Fatalf("Add for missing contact: want not found, got %v", err)
	}

	contact, _, err := notes.Add(ctx, c.ID, "   ")
	ve, ok := apierr.AsValidation(err)
	if !ok || len(ve.Messages) != 1 || ve.Messages[0] != "Note text is required" {
		t.Fatalf("Add blank: want validation error, got %v", err)
	}
	if contact == nil || contact.ID != c.ID {
		t.Fatalf("Add blank should still return the contact, got %+v", contact)
	}

	_, note, err := notes.Add(ctx, c.ID, "  first call  ")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if note.NoteText != "first call" {
		t.Fatalf("Add: text should be trimmed, got %q", note.NoteText)
	}

	_, list, err := notes.ListForContact(ctx, c.ID)
	if err != nil {
		t.Fatalf("ListForContact: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListForContact: want=1 got=%d", len(list))
	}
}

func TestNoteServiceEditAdvancesUpdatedAt(t *testing.T) {
	store, clock := testutil.StoreWithClock(t)
	_, notes, c := newNoteFixture(t, store)
	ctx := context.Background()

	_, note, err := notes.Add(ctx, c.ID, "draft")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	clock.Advance(2 * time.Second)

	_, edited, err := notes.Edit(ctx, c.ID, note.ID, "final")
	if err != nil {
		t.Fatalf("Edit: %v", err)
	}
	if edited.NoteText != "final" {
		t.Fatalf("Edit text: want=final got=%q", edited.NoteText)
	}
	if !edited.CreatedAt.Equal(note.CreatedAt) {
		t.Fatalf("created_at changed: want=%s got=%s", note.CreatedAt, edited.CreatedAt)
	}
	if !edited.UpdatedAt.After(edited.CreatedAt) {
		t.Fatalf("updated_at not advanced: created=%s updated=%s", edited.CreatedAt, edited.UpdatedAt)
	}

	if _, _, err := notes.Edit(ctx, c.ID, note.ID, ""); err == nil {
		t.Fatalf("Edit blank: want validation error")
	}
	if _, _, err := notes.Edit(ctx, c.ID, note.ID+99, "x"); !apierr.IsNotFound(err) {
		t.Fatalf("Edit missing: want not found, got %v", err)
	}
}

func TestNoteServiceCascadeOnContactDelete(t *testing.T) {
	store := testutil.Store(t)
	contacts, notes, c := newNoteFixture(t, store)
	ctx := context.Background()

	for _, text := range []string{"one", "two"} {
		if _, _, err := notes.Add(ctx, c.ID, text); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}
	if _, err := contacts.Delete(ctx, c.ID); err != nil {
		t.Fatalf("Delete contact: %v", err)
	}
	if _, _, err := notes.ListForContact(ctx, c.ID); !apierr.IsNotFound(err) {
		t.Fatalf("ListForContact after delete: want not found, got %v", err)
	}
	var remaining int64
	if err := store.DB().Model(&types.Note{}).Where("contact_id = ?", c.ID).Count(&remaining).Error; err != nil {
		t.Fatalf("count notes: %v", err)
	}
	if remaining != 0 {
		t.Fatalf("notes after cascade: want=0 got=%d", remaining)
	}
}

func TestNoteServiceDeleteScopedToContact(t *testing.T) {
	store := testutil.Store(t)
	contacts, notes, c := newNoteFixture(t, store)
	ctx := context.Background()

	other, err := contacts.Submit(ctx, validForm())
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	_, note, err := notes.Add(ctx, c.ID, "mine")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := notes.Delete(ctx, other.ID, note.ID); !apierr.IsNotFound(err) {
		t.Fatalf("Delete via wrong contact: want not found, got %v", err)
	}
	if err := notes.Delete(ctx, c.ID, note.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := notes.Load(ctx, c.ID, note.ID); !apierr.IsNotFound(err) {
		t.Fatalf("Load after delete: want not found, got %v", err)
	}
}
