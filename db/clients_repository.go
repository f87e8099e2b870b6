// ABOUTME: Client record store backed by the session database
// ABOUTME: Implements validated create, update, delete, and bulk import of clients
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/harperreed/clientdesk/models"
)

var (
	ErrClientNotFound = errors.New("client not found")
	ErrInvalidClient  = errors.New("invalid client")
)

const clientColumns = `id, company, product, status, channel, account_exec, start_date, end_date, deal_amount, monthly_volume`

// ClientsRepository holds the authoritative client list for a session.
type ClientsRepository struct {
	db *sql.DB
}

// NewClientsRepository creates a new clients repository.
func NewClientsRepository(db *sql.DB) *ClientsRepository {
	return &ClientsRepository{db: db}
}

// Create validates the client and inserts it. The store assigns the ID.
func (r *ClientsRepository) Create(ctx context.Context, client *models.Client) error {
	if client == nil {
		return ErrInvalidClient
	}
	*client = models.Normalize(*client)
	if err := models.Validate(*client); err != nil {
		log.Warn("rejected client", "op", "create", "err", err)
		return err
	}

	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO clients (company, product, status, channel, account_exec, start_date, end_date, deal_amount, monthly_volume, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, client.Company, client.Product, client.Status, client.Channel, client.AccountExec,
		client.StartDate, client.EndDate, client.DealAmount, client.MonthlyVolume, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	client.ID = id

	log.Debug("created client", "id", id, "company", client.Company)
	return nil
}

// Get retrieves a client by ID.
func (r *ClientsRepository) Get(ctx context.Context, id int64) (*models.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+clientColumns+` FROM clients WHERE id = ?`, id)

	client, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

// List returns every client in insertion order. Display order is the view's job.
func (r *ClientsRepository) List(ctx context.Context) ([]models.Client, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+clientColumns+` FROM clients ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	clients := make([]models.Client, 0)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return clients, nil
}

// Update replaces the stored record that has the client's ID.
func (r *ClientsRepository) Update(ctx context.Context, client *models.Client) error {
	if client == nil || client.ID == 0 {
		return ErrInvalidClient
	}
	*client = models.Normalize(*client)
	if err := models.Validate(*client); err != nil {
		log.Warn("rejected client", "op", "update", "id", client.ID, "err", err)
		return err
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE clients
		SET company = ?, product = ?, status = ?, channel = ?, account_exec = ?,
			start_date = ?, end_date = ?, deal_amount = ?, monthly_volume = ?, updated_at = ?
		WHERE id = ?
	`, client.Company, client.Product, client.Status, client.Channel, client.AccountExec,
		client.StartDate, client.EndDate, client.DealAmount, client.MonthlyVolume, time.Now().UTC(), client.ID)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClientNotFound
	}

	log.Debug("updated client", "id", client.ID)
	return nil
}

// Save merges a candidate from the edit flow: ID 0 creates, anything else
// replaces the record with that ID.
func (r *ClientsRepository) Save(ctx context.Context, client *models.Client) (created bool, err error) {
	if client == nil {
		return false, ErrInvalidClient
	}
	if client.ID == 0 {
		return true, r.Create(ctx, client)
	}
	return false, r.Update(ctx, client)
}

// Delete removes a client by ID.
func (r *ClientsRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrClientNotFound
	}

	log.Debug("deleted client", "id", id)
	return nil
}

// Count returns the number of stored clients.
func (r *ClientsRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM clients`).Scan(&n)
	return n, err
}

// Import loads a seed set in one transaction. Records keep a non-zero ID;
// the rest are numbered by the store. One invalid record aborts the import.
func (r *ClientsRepository) Import(ctx context.Context, clients []models.Client) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for i := range clients {
		c := models.Normalize(clients[i])
		if err := models.Validate(c); err != nil {
			return fmt.Errorf("record %d (%s): %w", i+1, c.Company, err)
		}

		var id interface{}
		if c.ID != 0 {
			id = c.ID
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO clients (id, company, product, status, channel, account_exec, start_date, end_date, deal_amount, monthly_volume, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, id, c.Company, c.Product, c.Status, c.Channel, c.AccountExec,
			c.StartDate, c.EndDate, c.DealAmount, c.MonthlyVolume, now, now); err != nil {
			return fmt.Errorf("failed to import record %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	log.Debug("imported clients", "count", len(clients))
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanClient(row rowScanner) (*models.Client, error) {
	var c models.Client
	err := row.Scan(
		&c.ID,
		&c.Company,
		&c.Product,
		&c.Status,
		&c.Channel,
		&c.AccountExec,
		&c.StartDate,
		&c.EndDate,
		&c.DealAmount,
		&c.MonthlyVolume,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
