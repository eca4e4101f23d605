package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/segmentio/dremel"
	"github.com/segmentio/dremel/internal/debug"
	"github.com/segmentio/encoding/json"
)

func runAssemble(args []string) error {
	fs := flag.NewFlagSet("assemble", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "path to a dotted-path schema file")
	recordsPath := fs.String("records", "-", "path to a JSON record stream, or - for stdin")
	selectFlag := fs.String("select", "", "comma-separated leaf paths to project")
	debugFlag := fs.Bool("debug", false, "enable trace output on stderr")
	fs.Parse(args)

	debug.Toggle(*debugFlag)

	root, err := loadSchema(*schemaPath)
	if err != nil {
		return err
	}

	selection, err := resolveSelection(root, *selectFlag)
	if err != nil {
		return err
	}

	records, err := readRecords(*recordsPath)
	if err != nil {
		return err
	}

	columns, err := dremel.Shred(root, records)
	if err != nil {
		return err
	}
	debug.Tracef("assemble: shredded %d input records into %d leaves", len(records), len(columns))

	out, err := dremel.Assemble(root, columns, selection)
	if err != nil {
		return err
	}
	debug.Tracef("assemble: reassembled %d records", len(out))

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, r := range out {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("encoding assembled record: %w", err)
		}
	}
	return nil
}
