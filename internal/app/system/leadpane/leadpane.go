// internal/app/system/leadpane/leadpane.go
package leadpane

import (
	"context"
	"sync"

	leadstore "github.com/dalemusser/leadhub/internal/app/store/leads"
	"github.com/dalemusser/leadhub/internal/app/system/normalize"
	"github.com/dalemusser/leadhub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// State reports where a Pane is in its load lifecycle.
type State int

const (
	// Uninitialized means Load has never been called.
	Uninitialized State = iota
	// Loading means a Load is in flight and no data is available yet.
	Loading
	// Ready means the pane holds the last confirmed list from the store.
	Ready
	// Failed means the last Load returned an error; Err holds it.
	Failed
)

// Store is the subset of the lead repository a Pane needs.
// *leadstore.Store satisfies it; tests supply fakes.
type Store interface {
	List(ctx context.Context, ownerID primitive.ObjectID) ([]models.Lead, error)
	Create(ctx context.Context, ownerID primitive.ObjectID, in leadstore.NewLead) (models.Lead, error)
	UpdateStatus(ctx context.Context, ownerID, id primitive.ObjectID, status string) error
	Update(ctx context.Context, ownerID, id primitive.ObjectID, upd leadstore.LeadUpdate) error
	Delete(ctx context.Context, ownerID, id primitive.ObjectID) error
}

// Pane holds one owner's lead list as last confirmed by the store.
// Mutations write through to the store first and patch the local list
// only after the store reports success, so the pane never shows a
// change the database has not accepted. All methods are safe for
// concurrent use.
type Pane struct {
	store Store
	log   *zap.Logger

	mu      sync.Mutex
	ownerID primitive.ObjectID
	state   State
	err     error
	leads   []models.Lead
}

// New returns a pane for one owner's leads. The pane starts
// Uninitialized; call Load to populate it.
func New(store Store, ownerID primitive.ObjectID, log *zap.Logger) *Pane {
	return &Pane{store: store, log: log, ownerID: ownerID}
}

// State reports the pane's current lifecycle state.
func (p *Pane) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Err returns the error from the last failed Load, or nil.
func (p *Pane) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

// Leads returns a copy of the confirmed list, newest first. Callers
// may mutate the returned slice freely.
func (p *Pane) Leads() []models.Lead {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]models.Lead, len(p.leads))
	copy(out, p.leads)
	return out
}

// Load replaces the pane's contents with a fresh list from the store.
// On error the pane transitions to Failed and drops any stale rows.
func (p *Pane) Load(ctx context.Context) error {
	p.mu.Lock()
	p.state = Loading
	p.mu.Unlock()

	rows, err := p.store.List(ctx, p.ownerID)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.state = Failed
		p.err = err
		p.leads = nil
		p.log.Error("loading leads", zap.Error(err))
		return err
	}
	p.state = Ready
	p.err = nil
	p.leads = rows
	return nil
}

// Add creates the lead in the store and, once confirmed, prepends it
// to the local list so the newest lead stays first.
func (p *Pane) Add(ctx context.Context, in leadstore.NewLead) (models.Lead, error) {
	created, err := p.store.Create(ctx, p.ownerID, in)
	if err != nil {
		return models.Lead{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Ready {
		p.leads = append([]models.Lead{created}, p.leads...)
	}
	return created, nil
}

// ChangeStatus updates one lead's status in the store and, once
// confirmed, patches the row in place.
func (p *Pane) ChangeStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if err := p.store.UpdateStatus(ctx, p.ownerID, id, status); err != nil {
		return err
	}

	status = normalize.Status(status)
	p.patch(id, func(l *models.Lead) {
		l.Status = status
	})
	return nil
}

// Update rewrites one lead's fields in the store and, once confirmed,
// patches the row in place with the same normalized values.
func (p *Pane) Update(ctx context.Context, id primitive.ObjectID, upd leadstore.LeadUpdate) error {
	if err := p.store.Update(ctx, p.ownerID, id, upd); err != nil {
		return err
	}

	p.patch(id, func(l *models.Lead) {
		l.Name = normalize.Name(upd.Name)
		l.Mobile = normalize.Mobile(upd.Mobile)
		l.Email = normalize.Email(upd.Email)
		l.IsProspect = upd.IsProspect
		l.Status = normalize.Status(upd.Status)
	})
	return nil
}

// Remove deletes the lead from the store and drops the confirmed row.
func (p *Pane) Remove(ctx context.Context, id primitive.ObjectID) error {
	if err := p.store.Delete(ctx, p.ownerID, id); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.leads {
		if p.leads[i].ID == id {
			p.leads = append(p.leads[:i], p.leads[i+1:]...)
			break
		}
	}
	return nil
}

func (p *Pane) patch(id primitive.ObjectID, fn func(*models.Lead)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range p.leads {
		if p.leads[i].ID == id {
			fn(&p.leads[i])
			return
		}
	}
}
