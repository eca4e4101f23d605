package main

import (
	"flag"
	"os"

	"github.com/segmentio/dremel"
	"github.com/segmentio/dremel/internal/debug"
)

func runShred(args []string) error {
	fs := flag.NewFlagSet("shred", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "path to a dotted-path schema file")
	recordsPath := fs.String("records", "-", "path to a JSON record stream, or - for stdin")
	debugFlag := fs.Bool("debug", false, "enable trace output on stderr")
	fs.Parse(args)

	debug.Toggle(*debugFlag)

	root, err := loadSchema(*schemaPath)
	if err != nil {
		return err
	}

	records, err := readRecords(*recordsPath)
	if err != nil {
		return err
	}
	debug.Tracef("shred: read %d records", len(records))

	columns, err := dremel.Shred(root, records)
	if err != nil {
		return err
	}

	dremel.FprintColumns(os.Stdout, root, columns)
	return nil
}

func readRecords(path string) ([]dremel.Record, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	src, err := dremel.NewJSONRecordSource(f)
	if err != nil {
		return nil, err
	}
	return dremel.Drain(src)
}
