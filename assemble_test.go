package dremel_test

import (
	"testing"

	"github.com/mitchellh/copystructure"
	"github.com/segmentio/dremel"
	"github.com/segmentio/dremel/paperschema"
	"github.com/stretchr/testify/require"
)

// assembledCopy round-trips records through Shred/Assemble and returns
// the result alongside a pre-shred deep copy, so callers can assert
// Shred never mutated its input.
func assembledCopy(t *testing.T, root *dremel.Schema, records []dremel.Record) ([]dremel.Record, interface{}) {
	t.Helper()

	snapshot, err := copystructure.Copy(records)
	require.NoError(t, err)

	columns, err := dremel.Shred(root, records)
	require.NoError(t, err)

	out, err := dremel.Assemble(root, columns, nil)
	require.NoError(t, err)

	return out, snapshot
}

func TestAssembleDoesNotMutateInput(t *testing.T) {
	root := paperschema.Schema()
	records := paperschema.Records()

	_, snapshot := assembledCopy(t, root, records)

	require.Equal(t, snapshot, records)
}

func TestAssembleRoundTripPaperSchema(t *testing.T) {
	root := paperschema.Schema()
	records := paperschema.Records()

	out, _ := assembledCopy(t, root, records)
	require.Len(t, out, len(records))

	require.Equal(t, 10, out[0]["DocId"])
	require.Equal(t, 20, out[1]["DocId"])

	links0 := out[0]["Links"].(dremel.Record)
	require.Equal(t, []interface{}{}, links0["Backward"])
	require.Equal(t, []interface{}{20, 40, 60}, links0["Forward"])

	links1 := out[1]["Links"].(dremel.Record)
	require.Equal(t, []interface{}{10, 30}, links1["Backward"])
	require.Equal(t, []interface{}{80}, links1["Forward"])

	names0 := out[0]["Name"].([]interface{})
	require.Len(t, names0, 3)
	require.Equal(t, "http://A", names0[0].(dremel.Record)["Url"])
	require.Equal(t, "http://B", names0[1].(dremel.Record)["Url"])
	_, hasURL := names0[2].(dremel.Record)["Url"]
	require.False(t, hasURL, "third Name entry in R1 never gave a Url")

	languages0 := names0[0].(dremel.Record)["Language"].([]interface{})
	require.Len(t, languages0, 2)
	require.Equal(t, "en-us", languages0[0].(dremel.Record)["Code"])
	require.Equal(t, "us", languages0[0].(dremel.Record)["Country"])
	require.Equal(t, "en", languages0[1].(dremel.Record)["Code"])
	_, hasCountry := languages0[1].(dremel.Record)["Country"]
	require.False(t, hasCountry, "second Language entry never gave a Country")

	require.Equal(t, []interface{}{}, names0[1].(dremel.Record)["Language"])

	names1 := out[1]["Name"].([]interface{})
	require.Len(t, names1, 1)
	require.Equal(t, "http://C", names1[0].(dremel.Record)["Url"])
}

// TestAssembleAbsentRepeatedFieldBecomesEmptyList hand-verifies a
// two-level schema's exact assembled shape: a repeated leaf (values)
// always surfaces as a list, present or empty, while an absent
// non-repeated leaf (meta) leaves its key unset rather than nil, and
// an absent group (data, in the fully empty record) still surfaces as
// a mapping, holding only the empty values list, rather than
// disappearing, per the open question in
// spec.md §9 about null/absent groups being indistinguishable.
func TestAssembleAbsentRepeatedFieldBecomesEmptyList(t *testing.T) {
	root, err := dremel.ParseSchema([]string{"data.values[*]", "data.meta"})
	require.NoError(t, err)

	records := []dremel.Record{
		{"data": dremel.Record{"values": []interface{}{1, 2}, "meta": "m1"}},
		{"data": dremel.Record{"values": []interface{}{}, "meta": "m2"}},
		{"data": dremel.Record{}},
		{},
	}

	columns, err := dremel.Shred(root, records)
	require.NoError(t, err)

	out, err := dremel.Assemble(root, columns, nil)
	require.NoError(t, err)

	require.Equal(t, []dremel.Record{
		{"data": dremel.Record{"values": []interface{}{1, 2}, "meta": "m1"}},
		{"data": dremel.Record{"values": []interface{}{}, "meta": "m2"}},
		{"data": dremel.Record{"values": []interface{}{}}},
		{"data": dremel.Record{"values": []interface{}{}}},
	}, out)
}

// TestAssembleColumnSelection projects to {DocId, Name.Url,
// Name.Language.Country}, dropping Links entirely and dropping Code
// from Language. This is the scenario that originally exposed a bug in
// first/last-in-repetition bookkeeping: Country is Language's second
// declared child, but under this projection it is Language's *only*
// surviving child, so scope bookkeeping must judge first/last against
// the projected sibling set, not the schema's full one. A Language
// entry that contributes no value to the one surviving leaf (R1's
// second entry, "en" with no Country) disappears from the list rather
// than surfacing as an empty map, consistent with how an entirely
// null scope is pruned elsewhere in assembly.
func TestAssembleColumnSelection(t *testing.T) {
	root := paperschema.Schema()
	columns, err := dremel.Shred(root, paperschema.Records())
	require.NoError(t, err)

	byPath := leavesByPath(root)
	selection := []*dremel.Schema{byPath["DocId"], byPath["Name.Url"], byPath["Name.Language.Country"]}

	out, err := dremel.Assemble(root, columns, selection)
	require.NoError(t, err)
	require.Len(t, out, 2)

	require.Equal(t, 10, out[0]["DocId"])
	require.Equal(t, 20, out[1]["DocId"])

	_, hasLinks := out[0]["Links"]
	require.False(t, hasLinks, "Links was never selected")

	names0 := out[0]["Name"].([]interface{})
	require.Len(t, names0, 3)

	name0 := names0[0].(dremel.Record)
	require.Equal(t, "http://A", name0["Url"])
	languages0 := name0["Language"].([]interface{})
	require.Len(t, languages0, 1, "the Code-only second entry contributes nothing once Code is unselected")
	require.Equal(t, "us", languages0[0].(dremel.Record)["Country"])

	name1 := names0[1].(dremel.Record)
	require.Equal(t, "http://B", name1["Url"])
	require.Equal(t, []interface{}{}, name1["Language"])

	name2 := names0[2].(dremel.Record)
	_, hasURL := name2["Url"]
	require.False(t, hasURL)
	languages2 := name2["Language"].([]interface{})
	require.Len(t, languages2, 1)
	require.Equal(t, "gb", languages2[0].(dremel.Record)["Country"])

	names1 := out[1]["Name"].([]interface{})
	require.Len(t, names1, 1)
	require.Equal(t, "http://C", names1[0].(dremel.Record)["Url"])
	require.Equal(t, []interface{}{}, names1[0].(dremel.Record)["Language"])
}

func TestAssembleExhaustedColumnStreamIsFatal(t *testing.T) {
	root, err := dremel.ParseSchema([]string{"a", "b"})
	require.NoError(t, err)

	byPath := leavesByPath(root)
	columns := dremel.Columns{
		byPath["a"]: {
			{Value: 1, RepetitionLevel: 0, DefinitionLevel: 1},
			{Value: 2, RepetitionLevel: 0, DefinitionLevel: 1},
		},
		byPath["b"]: {
			{Value: 10, RepetitionLevel: 0, DefinitionLevel: 1},
		},
	}

	_, err = dremel.Assemble(root, columns, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, dremel.ErrExhausted)
}
