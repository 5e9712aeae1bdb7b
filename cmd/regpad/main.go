// cmd/regpad/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"regpad/cmd/regpad/commands"
	"regpad/internal/repl"
	"regpad/internal/store"
)

const VERSION = "1.0.0"

// Build variables - can be set during build with ldflags
var (
	BuildDate = time.Now().Format("2006-01-02")
	GitCommit = "unknown"
)

func main() {
	args := os.Args[1:]

	if len(args) > 0 {
		switch args[0] {
		case "--help", "-h", "help":
			showUsage()
			return
		case "--version", "-v", "version":
			showVersion()
			return
		}
	}

	dbPath, args := databasePath(args)

	if len(args) == 0 {
		// default: open the interactive notebook
		st, err := store.Open(dbPath)
		if err != nil {
			log.Fatalf("Error: %v", err)
		}
		defer st.Close()
		if err := repl.Start(st); err != nil {
			log.Fatalf("Error: %v", err)
		}
		return
	}

	switch args[0] {
	case "list":
		if err := commands.ListCommand(dbPath); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "import":
		if err := commands.ImportCommand(dbPath, args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	case "export":
		if err := commands.ExportCommand(dbPath, args[1:]); err != nil {
			log.Fatalf("Error: %v", err)
		}
	default:
		fmt.Printf("Unknown command: %s\n\n", args[0])
		showUsage()
		os.Exit(1)
	}
}

// databasePath resolves the store location: -db flag, REGPAD_DB, then a
// file next to the user's home config.
func databasePath(args []string) (string, []string) {
	for i := 0; i < len(args)-1; i++ {
		if args[i] == "-db" || args[i] == "--db" {
			path := args[i+1]
			rest := append(append([]string{}, args[:i]...), args[i+2:]...)
			return path, rest
		}
	}
	if env := os.Getenv("REGPAD_DB"); env != "" {
		return env, args
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "regpad.db", args
	}
	return filepath.Join(home, ".regpad.db"), args
}

func showUsage() {
	fmt.Println(`regpad - register-trace notebooks for smali methods

Usage:
  regpad [-db <file>]            open the interactive notebook
  regpad list                    list classes and methods in the store
  regpad import <file>           replace the store with a collection document
  regpad export [file]           write the collection document (stdout default)
  regpad version                 show version

Options:
  -db <file>                     store location (default: $REGPAD_DB or ~/.regpad.db)`)
}

func showVersion() {
	fmt.Printf("regpad %s (built %s, commit %s)\n", VERSION, BuildDate, GitCommit)
}
