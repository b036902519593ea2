package db

import (
	"fmt"
	"io"
	"time"
)

func ListRunsCLI(dbPath string, limit int, w io.Writer) error {
	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	runs, err := Runs(db, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return ErrNoRuns
	}
	for _, r := range runs {
		strict := ""
		if r.Strict {
			strict = " strict"
		}
		fmt.Fprintf(w, "%4d  %s  %-2s %s <- %s%s\n", r.ID, r.GeneratedAt.Format(time.RFC3339), r.Format, r.Output, r.Source, strict)
	}
	return nil
}

// ShowRunCLI prints the bindings of a run; runID 0 selects the latest.
func ShowRunCLI(dbPath string, runID int64, w io.Writer) error {
	db, err := Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if runID == 0 {
		run, err := LatestRun(db)
		if err != nil {
			return err
		}
		runID = run.ID
	}

	bindings, err := Bindings(db, runID)
	if err != nil {
		return err
	}
	if len(bindings) == 0 {
		return fmt.Errorf("run %d not found", runID)
	}
	fmt.Fprintf(w, "run %d\n", runID)
	for _, b := range bindings {
		fmt.Fprintf(w, "  %s\n", b)
	}
	return nil
}
