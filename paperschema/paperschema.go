// Package paperschema is the worked example from the Dremel paper
// (Figure 2, as adapted by spec.md §6/§8): a Document schema with a
// Links group of repeated scalars and a repeated Name group nesting a
// repeated Language group. It is reused by the core package's tests,
// spec.md's round-trip scenarios, and cmd/dremelcat's demo subcommand.
package paperschema

import "github.com/segmentio/dremel"

// Paths is the schema's textual form, as given in spec.md §6.
var Paths = []string{
	"DocId",
	"Links.Backward[*]",
	"Links.Forward[*]",
	"Name[*].Language[*].Code",
	"Name[*].Language[*].Country",
	"Name[*].Url",
}

// Schema compiles Paths into a schema tree. It panics on error since
// Paths is a fixed, known-good constant; callers needing error
// handling should call dremel.ParseSchema(Paths) directly.
func Schema() *dremel.Schema {
	root, err := dremel.ParseSchema(Paths)
	if err != nil {
		panic(err)
	}
	return root
}

// Records is spec.md §8 Scenario A's pair of records: R1 has a
// Forward-only Links group and three Name entries with uneven
// Language/Url population; R2 has both Links directions and a single
// bare Name entry.
func Records() []dremel.Record {
	return []dremel.Record{
		{
			"DocId": 10,
			"Links": dremel.Record{
				"Forward": []interface{}{20, 40, 60},
			},
			"Name": []interface{}{
				dremel.Record{
					"Language": []interface{}{
						dremel.Record{"Code": "en-us", "Country": "us"},
						dremel.Record{"Code": "en"},
					},
					"Url": "http://A",
				},
				dremel.Record{"Url": "http://B"},
				dremel.Record{
					"Language": []interface{}{
						dremel.Record{"Code": "en-gb", "Country": "gb"},
					},
				},
			},
		},
		{
			"DocId": 20,
			"Links": dremel.Record{
				"Backward": []interface{}{10, 30},
				"Forward":  []interface{}{80},
			},
			"Name": []interface{}{
				dremel.Record{"Url": "http://C"},
			},
		},
	}
}
