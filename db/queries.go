package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thatsimonsguy/tmr-alias/internal/model"
)

var ErrNoRuns = errors.New("no runs recorded")

// Runs returns the most recent runs, newest first.
func Runs(db *sql.DB, limit int) ([]Run, error) {
	rows, err := db.Query(`SELECT id, generated_at, source, format, output, strict FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// LatestRun returns the newest run, ErrNoRuns on an empty database.
func LatestRun(db *sql.DB) (Run, error) {
	runs, err := Runs(db, 1)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, ErrNoRuns
	}
	return runs[0], nil
}

// Bindings returns the bindings of a run ordered A to D.
func Bindings(db *sql.DB, runID int64) ([]model.Binding, error) {
	rows, err := db.Query(`SELECT logical, target, alt_pin, bank, pin, irq, remap, dma FROM bindings WHERE run_id = ? ORDER BY logical`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bindings: %w", err)
	}
	defer rows.Close()

	var out []model.Binding
	for rows.Next() {
		var (
			b             model.Binding
			logical, bank string
			target, irq   int
			remap         int
		)
		if err := rows.Scan(&logical, &target, &b.AltPin, &bank, &b.Pin.Number, &irq, &remap, &b.DMA); err != nil {
			return nil, fmt.Errorf("failed to scan binding: %w", err)
		}
		l, err := model.ParseLogical(logical)
		if err != nil {
			return nil, err
		}
		if len(bank) != 1 {
			return nil, fmt.Errorf("binding %s has bad bank %q", logical, bank)
		}
		b.Logical = l
		b.Target = model.Target(target)
		b.Pin.Bank = model.Bank(bank[0])
		b.IRQ = model.IRQn(irq)
		b.Remap = model.RemapSelector(remap)
		out = append(out, b)
	}
	return out, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r  Run
		at string
	)
	if err := rows.Scan(&r.ID, &at, &r.Source, &r.Format, &r.Output, &r.Strict); err != nil {
		return Run{}, fmt.Errorf("failed to scan run: %w", err)
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return Run{}, fmt.Errorf("run %d has bad timestamp %q: %w", r.ID, at, err)
	}
	r.GeneratedAt = t
	return r, nil
}
