package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/segmentio/dremel"
	"github.com/segmentio/dremel/paperschema"
	"github.com/segmentio/encoding/json"
)

// runDemo shreds and reassembles the Dremel paper's worked example
// end to end, printing the schema, the shredded columns, the FSM, and
// the reassembled records. With -uuid, it appends one synthetic
// record whose DocId is a generated UUID, to demonstrate that leaf
// values are opaque to the shredder/assembler — they only ever move a
// value, never interpret it.
func runDemo(args []string) error {
	fs := flag.NewFlagSet("demo", flag.ExitOnError)
	withUUID := fs.Bool("uuid", false, "append a synthetic record with a generated UUID DocId")
	fs.Parse(args)

	root := paperschema.Schema()
	records := paperschema.Records()

	if *withUUID {
		records = append(records, dremel.Record{
			"DocId": uuid.New(),
			"Name": []interface{}{
				dremel.Record{"Url": "http://generated"},
			},
		})
	}

	fmt.Println("# schema")
	if err := dremel.Fprint(os.Stdout, root); err != nil {
		return err
	}

	columns, err := dremel.Shred(root, records)
	if err != nil {
		return err
	}
	fmt.Println("\n# columns")
	dremel.FprintColumns(os.Stdout, root, columns)

	fsm, err := dremel.BuildFSM(root, nil)
	if err != nil {
		return err
	}
	fmt.Println("\n# fsm")
	if err := dremel.FprintFSM(os.Stdout, root, fsm, nil); err != nil {
		return err
	}

	out, err := dremel.Assemble(root, columns, nil)
	if err != nil {
		return err
	}
	fmt.Println("\n# reassembled records")
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	for _, r := range out {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}
