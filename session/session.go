// ABOUTME: Session ties the client store to the notification sink
// ABOUTME: Runs the save and delete flows shared by the TUI, web, and MCP surfaces
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/harperreed/clientdesk/db"
	"github.com/harperreed/clientdesk/models"
	"github.com/harperreed/clientdesk/notify"
	"github.com/harperreed/clientdesk/seed"
	"github.com/harperreed/clientdesk/view"
)

// Session is one running view of the client book.
type Session struct {
	Clients *db.ClientsRepository
	Notes   notify.Sink
	Caps    models.Capabilities
}

func New(clients *db.ClientsRepository, notes notify.Sink, caps models.Capabilities) *Session {
	return &Session{Clients: clients, Notes: notes, Caps: caps}
}

// Open creates a fresh in-memory store and loads the seed file into it.
// An explicit seed path must exist; the default one may be absent. The
// returned close func releases the store.
func Open(ctx context.Context, seedPath string, explicit bool, notes notify.Sink, caps models.Capabilities) (*Session, func() error, error) {
	var (
		records []models.Client
		err     error
	)
	if explicit {
		records, err = seed.Load(seedPath)
	} else {
		records, err = seed.LoadDefault(seedPath)
	}
	if err != nil {
		return nil, nil, err
	}

	database, err := db.OpenDatabase()
	if err != nil {
		return nil, nil, err
	}

	repo := db.NewClientsRepository(database)
	if err := repo.Import(ctx, records); err != nil {
		_ = database.Close()
		return nil, nil, fmt.Errorf("failed to load seed %s: %w", seedPath, err)
	}

	return New(repo, notes, caps), database.Close, nil
}

// Records returns every stored client in ID order.
func (s *Session) Records(ctx context.Context) ([]models.Client, error) {
	return s.Clients.List(ctx)
}

// View derives the visible records for a query under the session's capabilities.
func (s *Session) View(ctx context.Context, q view.Query) ([]models.Client, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return q.Apply(records, s.Caps), nil
}

// Options returns the selector values for each filterable field.
func (s *Session) Options(ctx context.Context) (map[models.Field][]string, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	return view.FilterOptions(records), nil
}

// Outcome reports what a save or delete did and the message shown for it.
type Outcome struct {
	Created bool
	Message notify.Message
}

// Save runs the edit flow: invalid candidates are rejected with the
// required-fields message, ID 0 creates, anything else replaces. The outcome
// carries the notification even when err is non-nil.
func (s *Session) Save(ctx context.Context, candidate *models.Client) (Outcome, error) {
	created, err := s.Clients.Save(ctx, candidate)
	out := Outcome{Created: created && err == nil}
	switch {
	case errors.Is(err, models.ErrValidation):
		out.Message = s.Notes.Notify(notify.Error, notify.MsgRequiredFields)
	case err != nil:
		out.Message = s.Notes.Notify(notify.Error, err.Error())
	case created:
		out.Message = s.Notes.Notify(notify.Success, notify.MsgClientCreated)
	default:
		out.Message = s.Notes.Notify(notify.Success, notify.MsgClientUpdated)
	}
	return out, err
}

// Delete removes a client after the caller has confirmed.
func (s *Session) Delete(ctx context.Context, id int64) (Outcome, error) {
	if err := s.Clients.Delete(ctx, id); err != nil {
		return Outcome{Message: s.Notes.Notify(notify.Error, err.Error())}, err
	}
	return Outcome{Message: s.Notes.Notify(notify.Success, notify.MsgClientDeleted)}, nil
}
