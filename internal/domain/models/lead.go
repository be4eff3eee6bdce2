// internal/domain/models/lead.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead is one prospective or existing customer contact.
//
// Every lead belongs to exactly one owner (the account that created it);
// the owner_id filter is applied on every store operation, so a lead is
// never visible or mutable outside its owner's session.
type Lead struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	NameCI     string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Mobile     string             `bson:"mobile" json:"mobile"`
	Email      string             `bson:"email" json:"email"`
	IsProspect bool               `bson:"is_prospect" json:"is_prospect"`
	Status     string             `bson:"status" json:"status"`
	OwnerID    primitive.ObjectID `bson:"owner_id" json:"owner_id"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// DefaultLeadStatus is assigned when a lead is created without a status.
// Status is otherwise opaque to the store; only display layers interpret it.
const DefaultLeadStatus = "New"
