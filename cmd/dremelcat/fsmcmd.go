package main

import (
	"flag"
	"os"

	"github.com/segmentio/dremel"
)

func runFSM(args []string) error {
	fs := flag.NewFlagSet("fsm", flag.ExitOnError)
	schemaPath := fs.String("schema", "", "path to a dotted-path schema file")
	selectFlag := fs.String("select", "", "comma-separated leaf paths to project")
	fs.Parse(args)

	root, err := loadSchema(*schemaPath)
	if err != nil {
		return err
	}

	selection, err := resolveSelection(root, *selectFlag)
	if err != nil {
		return err
	}

	fsm, err := dremel.BuildFSM(root, selection)
	if err != nil {
		return err
	}

	return dremel.FprintFSM(os.Stdout, root, fsm, selection)
}
