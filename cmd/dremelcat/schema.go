package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/segmentio/dremel"
)

// loadSchema reads one dotted field path per line from path, skipping
// blank lines and lines starting with "#", per spec.md §6's textual
// schema format.
func loadSchema(path string) (*dremel.Schema, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening schema file: %w", err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading schema file: %w", err)
	}

	root, err := dremel.ParseSchema(paths)
	if err != nil {
		return nil, fmt.Errorf("parsing schema: %w", err)
	}
	return root, nil
}

// resolveSelection maps a comma-separated list of leaf paths to their
// *dremel.Schema nodes, for the -select flag shared by the fsm and
// assemble subcommands.
func resolveSelection(root *dremel.Schema, csv string) ([]*dremel.Schema, error) {
	if csv == "" {
		return nil, nil
	}
	byPath := make(map[string]*dremel.Schema)
	for _, leaf := range dremel.Leaves(root) {
		byPath[leaf.Path()] = leaf
	}

	var selection []*dremel.Schema
	for _, p := range strings.Split(csv, ",") {
		p = strings.TrimSpace(p)
		leaf, ok := byPath[p]
		if !ok {
			return nil, fmt.Errorf("-select: %q is not a leaf of this schema", p)
		}
		selection = append(selection, leaf)
	}
	return selection, nil
}
