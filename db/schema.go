// ABOUTME: Database schema definitions
// ABOUTME: Handles SQLite table creation for client records
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS clients (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	company TEXT NOT NULL CHECK(length(trim(company)) > 0),
	product TEXT NOT NULL CHECK(length(trim(product)) > 0),
	status TEXT NOT NULL CHECK(length(trim(status)) > 0),
	channel TEXT NOT NULL CHECK(length(trim(channel)) > 0),
	account_exec TEXT NOT NULL CHECK(length(trim(account_exec)) > 0),
	start_date TEXT,
	end_date TEXT,
	deal_amount TEXT,
	monthly_volume TEXT,
	created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_clients_status ON clients(status);
CREATE INDEX IF NOT EXISTS idx_clients_product ON clients(product);
CREATE INDEX IF NOT EXISTS idx_clients_account_exec ON clients(account_exec);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
