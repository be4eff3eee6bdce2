// internal/app/store/leads/leadstore.go
package leadstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/leadhub/internal/app/system/normalize"
	"github.com/dalemusser/leadhub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrNotAuthenticated is returned when a mutation is attempted without
	// an owner id. No storage round-trip is made in that case.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFound is returned when an update or delete matched zero
	// documents: the lead does not exist or is not owned by the caller.
	// The two cases are deliberately not distinguished.
	ErrNotFound = errors.New("lead not found")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("leads")}
}

// NewLead holds the caller-supplied fields for a lead insert.
type NewLead struct {
	Name       string
	Mobile     string
	Email      string
	IsProspect bool
	Status     string
}

// LeadUpdate holds the full replacement field set for an edit.
// Partial updates are not supported; every field is always written.
type LeadUpdate struct {
	Name       string
	Mobile     string
	Email      string
	IsProspect bool
	Status     string
}

// List returns all leads owned by ownerID, newest first.
// Returns an empty slice (not nil error) when the owner has no leads.
func (s *Store) List(ctx context.Context, ownerID primitive.ObjectID) ([]models.Lead, error) {
	if ownerID.IsZero() {
		return nil, ErrNotAuthenticated
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cur, err := s.c.Find(ctx, bson.M{"owner_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	defer cur.Close(ctx)

	leads := []models.Lead{}
	if err := cur.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("list leads: %w", err)
	}
	return leads, nil
}

// GetByID loads a single lead, filtered by both id and owner.
// Returns ErrNotFound for a missing or foreign lead.
func (s *Store) GetByID(ctx context.Context, ownerID, id primitive.ObjectID) (*models.Lead, error) {
	if ownerID.IsZero() {
		return nil, ErrNotAuthenticated
	}

	var l models.Lead
	err := s.c.FindOne(ctx, bson.M{"_id": id, "owner_id": ownerID}).Decode(&l)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}
	return &l, nil
}

// Create inserts a new lead for ownerID after normalizing fields.
// The store assigns the id and timestamps; Status defaults to "New".
func (s *Store) Create(ctx context.Context, ownerID primitive.ObjectID, in NewLead) (models.Lead, error) {
	if ownerID.IsZero() {
		return models.Lead{}, ErrNotAuthenticated
	}

	name := normalize.Name(in.Name)
	status := normalize.Status(in.Status)
	if status == "" {
		status = models.DefaultLeadStatus
	}

	now := time.Now().UTC()
	l := models.Lead{
		ID:         primitive.NewObjectID(),
		Name:       name,
		NameCI:     text.Fold(name),
		Mobile:     normalize.Mobile(in.Mobile),
		Email:      normalize.Email(in.Email),
		IsProspect: in.IsProspect,
		Status:     status,
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if _, err := s.c.InsertOne(ctx, l); err != nil {
		return models.Lead{}, fmt.Errorf("insert lead: %w", err)
	}
	return l, nil
}

// UpdateStatus sets a lead's status. The filter includes both _id and
// owner_id, so a foreign lead matches zero documents instead of erroring;
// that case is detected via MatchedCount and reported as ErrNotFound.
func (s *Store) UpdateStatus(ctx context.Context, ownerID, id primitive.ObjectID, status string) error {
	if ownerID.IsZero() {
		return ErrNotAuthenticated
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "owner_id": ownerID},
		bson.M{"$set": bson.M{
			"status":     normalize.Status(status),
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return fmt.Errorf("update lead status: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Update replaces all editable fields of a lead. Same double-filter and
// matched-count semantics as UpdateStatus.
func (s *Store) Update(ctx context.Context, ownerID, id primitive.ObjectID, upd LeadUpdate) error {
	if ownerID.IsZero() {
		return ErrNotAuthenticated
	}

	name := normalize.Name(upd.Name)
	set := bson.M{
		"name":        name,
		"name_ci":     text.Fold(name),
		"mobile":      normalize.Mobile(upd.Mobile),
		"email":       normalize.Email(upd.Email),
		"is_prospect": upd.IsProspect,
		"status":      normalize.Status(upd.Status),
		"updated_at":  time.Now().UTC(),
	}

	res, err := s.c.UpdateOne(ctx, bson.M{"_id": id, "owner_id": ownerID}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a lead, filtered by both id and owner. A zero DeletedCount
// (missing or foreign lead, or a repeated delete) reports ErrNotFound.
func (s *Store) Delete(ctx context.Context, ownerID, id primitive.ObjectID) error {
	if ownerID.IsZero() {
		return ErrNotAuthenticated
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
