package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
)

// Reads a match-lab badger store and prints its records. Handy when a
// room points at a game that no longer exists and the server only shows
// the resulting 500.

type userRecord struct {
	Name string `json:"name"`
}

type roomRecord struct {
	ActiveGameID *uuid.UUID  `json:"active_game_id"`
	Members      []uuid.UUID `json:"members"`
}

type gameRecord struct {
	Players []uuid.UUID `json:"players"`
	Moves   []struct {
		UserID uuid.UUID `json:"user_id"`
		X      uint8     `json:"x"`
		Y      uint8     `json:"y"`
	} `json:"moves"`
}

func main() {
	dbPath := flag.String("db", "", "Path to badger DB")
	prefix := flag.String("prefix", "", "Prefix to scan (user:, room:, game:), empty scans all")
	flag.Parse()

	if *dbPath == "" {
		log.Fatal("missing -db flag")
	}

	db, err := openDB(*dbPath)
	if err != nil {
		log.Fatal("Error while opening Badger: ", err)
	}
	defer db.Close()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Key", "Type", "Detail"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	err = db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefixBytes := []byte(*prefix)
		for it.Seek(prefixBytes); it.ValidForPrefix(prefixBytes); it.Next() {
			item := it.Item()
			key := string(item.Key())

			err := item.Value(func(v []byte) error {
				kind, detail := describe(key, v)
				table.Append([]string{key, kind, detail})
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal(err)
	}

	table.Render()
}

func describe(key string, value []byte) (kind, detail string) {
	switch {
	case strings.HasPrefix(key, "user:"):
		var rec userRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return "USER", fmt.Sprintf("unreadable: %v", err)
		}
		return "USER", rec.Name
	case strings.HasPrefix(key, "room:"):
		var rec roomRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return "ROOM", fmt.Sprintf("unreadable: %v", err)
		}
		active := "-"
		if rec.ActiveGameID != nil {
			active = shortID(*rec.ActiveGameID)
		}
		return "ROOM", fmt.Sprintf("members=%d active_game=%s", len(rec.Members), active)
	case strings.HasPrefix(key, "game:"):
		var rec gameRecord
		if err := json.Unmarshal(value, &rec); err != nil {
			return "GAME", fmt.Sprintf("unreadable: %v", err)
		}
		board := ""
		for _, m := range rec.Moves {
			board += fmt.Sprintf("%s@(%d,%d) ", shortID(m.UserID), m.X, m.Y)
		}
		return "GAME", fmt.Sprintf("players=%d moves=[%s]", len(rec.Players), strings.TrimSpace(board))
	default:
		return "?", fmt.Sprintf("%d bytes", len(value))
	}
}

// shortID keeps the first 8 characters for readability.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

func openDB(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithReadOnly(true).
		WithLogger(nil).
		WithBypassLockGuard(true).
		WithValueLogFileSize(10 * 1024 * 1024)

	db, err := badger.Open(opts)
	if err != nil {
		if strings.Contains(err.Error(), "Log truncate required") {
			repairOpts := badger.DefaultOptions(path).
				WithLogger(nil).WithBypassLockGuard(true)

			db, err = badger.Open(repairOpts)
			if err != nil {
				return nil, fmt.Errorf("repair failed: %w", err)
			}

			db.Close()
			return badger.Open(opts)
		}
		return nil, err
	}
	return db, nil
}
