// cmd/regpad/commands/commands.go
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"

	"regpad/internal/docfile"
	"regpad/internal/store"
)

// ListCommand prints every class and method in the store.
func ListCommand(dbPath string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	col, err := st.LoadCollection(ctx)
	if err != nil {
		return err
	}
	if len(col.Classes) == 0 {
		fmt.Println("store is empty")
		return nil
	}
	for _, cl := range col.Classes {
		fmt.Printf("%s (%s / %s)\n", cl.Friendly, cl.Name, cl.Obfuscated)
		for _, m := range cl.Methods {
			edited := ""
			if !m.UpdatedAt.IsZero() {
				edited = ", edited " + humanize.Time(m.UpdatedAt)
			}
			fmt.Printf("  %s  (%d lines, p%d/v%d%s)\n",
				m.Name, len(m.Lines), m.ParamCount, m.LocalCount, edited)
		}
	}
	if at, ok, err := st.UpdatedAt(ctx, store.CollectionKey); err == nil && ok {
		fmt.Printf("last saved %s\n", humanize.Time(at))
	}
	return nil
}

// ImportCommand reads a collection document and makes it the stored
// collection, replacing what was there. Invalid documents change nothing.
func ImportCommand(dbPath string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: regpad import <file>")
	}
	col, err := docfile.ReadCollectionFile(args[0])
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.SaveCollection(context.Background(), col); err != nil {
		return err
	}
	fmt.Printf("imported %d classes from %s\n", len(col.Classes), args[0])
	return nil
}

// ExportCommand writes the stored collection as a document, to a file or
// stdout when no file is given.
func ExportCommand(dbPath string, args []string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	col, err := st.LoadCollection(context.Background())
	if err != nil {
		return err
	}
	if len(args) == 0 {
		data, err := docfile.EncodeCollection(col)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := docfile.WriteCollectionFile(args[0], col); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
