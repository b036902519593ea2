package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

// Run describes one generation of the alias output.
type Run struct {
	ID          int64
	GeneratedAt time.Time
	Source      string
	Format      string
	Output      string
	Strict      bool
}

// StartTransaction starts a new database transaction.
func StartTransaction(db *sql.DB) (*sql.Tx, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	return tx, nil
}

// CommitTransaction commits the given transaction.
func CommitTransaction(tx *sql.Tx) error {
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// RollbackTransaction rolls back the given transaction.
func RollbackTransaction(tx *sql.Tx) {
	tx.Rollback()
}

// RecordRun stores a run and its bindings and returns the new run ID.
func RecordRun(db *sql.DB, run Run, bindings []model.Binding) (int64, error) {
	tx, err := StartTransaction(db)
	if err != nil {
		return 0, err
	}
	id, err := RecordRunWithTx(tx, run, bindings)
	if err != nil {
		RollbackTransaction(tx)
		return 0, err
	}
	return id, CommitTransaction(tx)
}

func RecordRunWithTx(tx *sql.Tx, run Run, bindings []model.Binding) (int64, error) {
	if run.GeneratedAt.IsZero() {
		run.GeneratedAt = time.Now()
	}
	res, err := tx.Exec(`INSERT INTO runs (generated_at, source, format, output, strict) VALUES (?, ?, ?, ?, ?)`,
		run.GeneratedAt.UTC().Format(time.RFC3339), run.Source, run.Format, run.Output, run.Strict)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read run id: %w", err)
	}

	for _, b := range bindings {
		_, err = tx.Exec(`INSERT INTO bindings (run_id, logical, target, alt_pin, bank, pin, irq, remap, dma) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, b.Logical.String(), int(b.Target), b.AltPin, b.Pin.Bank.String(), b.Pin.Number, int(b.IRQ), int(b.Remap), b.DMA)
		if err != nil {
			return 0, fmt.Errorf("failed to insert binding %s: %w", b.Logical.Prefix(), err)
		}
	}
	return id, nil
}
