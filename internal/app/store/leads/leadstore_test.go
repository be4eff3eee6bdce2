package leadstore_test

import (
	"errors"
	"testing"
	"time"

	leadstore "github.com/dalemusser/leadhub/internal/app/store/leads"
	"github.com/dalemusser/leadhub/internal/domain/models"
	"github.com/dalemusser/leadhub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()

	created, err := store.Create(ctx, owner, leadstore.NewLead{
		Name:   "  Ada Lovelace  ",
		Mobile: " 555 123 4567 ",
		Email:  "Ada@Example.COM",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.Name != "Ada Lovelace" {
		t.Errorf("Name: got %q, want trimmed %q", created.Name, "Ada Lovelace")
	}
	if created.NameCI == "" {
		t.Error("expected NameCI to be set")
	}
	if created.Mobile != "5551234567" {
		t.Errorf("Mobile: got %q, want %q", created.Mobile, "5551234567")
	}
	if created.Email != "ada@example.com" {
		t.Errorf("Email: got %q, want lowercased", created.Email)
	}
	if created.Status != models.DefaultLeadStatus {
		t.Errorf("Status: got %q, want default %q", created.Status, models.DefaultLeadStatus)
	}
	if created.OwnerID != owner {
		t.Errorf("OwnerID: got %v, want %v", created.OwnerID, owner)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestStore_Create_RequiresOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Create(ctx, primitive.NilObjectID, leadstore.NewLead{Name: "Nobody"})
	if !errors.Is(err, leadstore.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestStore_List_NewestFirst(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	oldest := fixtures.CreateLead(ctx, owner, "Oldest", 2*time.Hour)
	middle := fixtures.CreateLead(ctx, owner, "Middle", time.Hour)
	newest := fixtures.CreateLead(ctx, owner, "Newest", 0)

	got, err := store.List(ctx, owner)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 leads, got %d", len(got))
	}
	if got[0].ID != newest.ID || got[1].ID != middle.ID || got[2].ID != oldest.ID {
		t.Errorf("order: got [%s, %s, %s], want newest first",
			got[0].Name, got[1].Name, got[2].Name)
	}
}

func TestStore_List_OwnerIsolation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()
	mine := fixtures.CreateLead(ctx, alice, "Mine", 0)
	fixtures.CreateLead(ctx, bob, "Theirs", 0)

	got, err := store.List(ctx, alice)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(got))
	}
	if got[0].ID != mine.ID {
		t.Errorf("got lead %q, want own lead only", got[0].Name)
	}
}

func TestStore_List_EmptyIsNotAnError(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	got, err := store.List(ctx, primitive.NewObjectID())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(got) != 0 {
		t.Fatalf("expected no leads, got %d", len(got))
	}
}

func TestStore_List_RequiresOwner(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.List(ctx, primitive.NilObjectID); !errors.Is(err, leadstore.ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestStore_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	lead := fixtures.CreateLead(ctx, owner, "Ada", time.Hour)

	if err := store.UpdateStatus(ctx, owner, lead.ID, "Contacted"); err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}

	got, err := store.GetByID(ctx, owner, lead.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != "Contacted" {
		t.Errorf("Status: got %q, want %q", got.Status, "Contacted")
	}
	if !got.UpdatedAt.After(lead.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
}

func TestStore_UpdateStatus_ForeignLeadIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	lead := fixtures.CreateLead(ctx, owner, "Ada", 0)

	err := store.UpdateStatus(ctx, intruder, lead.ID, "Stolen")
	if !errors.Is(err, leadstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign lead, got %v", err)
	}

	// The real owner's lead is untouched.
	got, err := store.GetByID(ctx, owner, lead.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.DefaultLeadStatus {
		t.Errorf("Status changed by foreign update: %q", got.Status)
	}
}

func TestStore_Update_ReplacesAllFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	lead := fixtures.CreateLead(ctx, owner, "Ada", 0)

	err := store.Update(ctx, owner, lead.ID, leadstore.LeadUpdate{
		Name:       "Ada Lovelace",
		Mobile:     "5559998888",
		Email:      "Lovelace@Example.com",
		IsProspect: true,
		Status:     "Qualified",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := store.GetByID(ctx, owner, lead.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Name != "Ada Lovelace" {
		t.Errorf("Name: got %q", got.Name)
	}
	if got.Mobile != "5559998888" {
		t.Errorf("Mobile: got %q", got.Mobile)
	}
	if got.Email != "lovelace@example.com" {
		t.Errorf("Email: got %q, want lowercased", got.Email)
	}
	if !got.IsProspect {
		t.Error("IsProspect: got false, want true")
	}
	if got.Status != "Qualified" {
		t.Errorf("Status: got %q", got.Status)
	}
	if got.CreatedAt.Round(time.Millisecond) != lead.CreatedAt.Round(time.Millisecond) {
		t.Error("CreatedAt should not change on update")
	}
}

func TestStore_Update_MissingLeadIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	err := store.Update(ctx, primitive.NewObjectID(), primitive.NewObjectID(), leadstore.LeadUpdate{Name: "Ghost"})
	if !errors.Is(err, leadstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStore_Delete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	lead := fixtures.CreateLead(ctx, owner, "Ada", 0)

	if err := store.Delete(ctx, owner, lead.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := store.GetByID(ctx, owner, lead.ID); !errors.Is(err, leadstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Repeating the delete reports not found rather than succeeding silently.
	if err := store.Delete(ctx, owner, lead.ID); !errors.Is(err, leadstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestStore_Delete_ForeignLeadIsNotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := leadstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := primitive.NewObjectID()
	intruder := primitive.NewObjectID()
	lead := fixtures.CreateLead(ctx, owner, "Ada", 0)

	if err := store.Delete(ctx, intruder, lead.ID); !errors.Is(err, leadstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign delete, got %v", err)
	}

	// Still there for the owner.
	if _, err := store.GetByID(ctx, owner, lead.ID); err != nil {
		t.Fatalf("lead vanished after foreign delete attempt: %v", err)
	}
}
