package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/thatsimonsguy/tmr-alias/db"
)

func main() {
	DebugCLI()
}

func DebugCLI() {
	var dbPath, command string
	var runID int64
	var limit int
	flag.StringVar(&dbPath, "db", "tmralias.db", "Path to the manifest database")
	flag.StringVar(&command, "cmd", "", "Command to run: runs, show")
	flag.Int64Var(&runID, "run", 0, "Run ID for show (0 for the latest)")
	flag.IntVar(&limit, "limit", 20, "Number of runs to list")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help || command == "" {
		fmt.Println("\nUsage of tmralias-debug:")
		fmt.Println("  -db string\tPath to the manifest database (default 'tmralias.db')")
		fmt.Println("  -cmd string\tCommand to run: runs, show")
		fmt.Println("  -run int\tRun ID for show (default latest)")
		fmt.Println("  -limit int\tNumber of runs to list (default 20)")
		fmt.Println("  -help\tShow this help message")
		os.Exit(0)
	}

	var err error
	switch command {
	case "runs":
		err = db.ListRunsCLI(dbPath, limit, os.Stdout)
	case "show":
		err = db.ShowRunCLI(dbPath, runID, os.Stdout)
	default:
		fmt.Println("Invalid command")
		os.Exit(1)
	}

	if err != nil {
		fmt.Printf("Command %s failed: %v\n", command, err)
		os.Exit(1)
	}
}
