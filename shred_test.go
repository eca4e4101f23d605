package dremel_test

import (
	"testing"

	"github.com/segmentio/dremel"
	"github.com/segmentio/dremel/paperschema"
	"github.com/stretchr/testify/require"
)

func requireTriples(t *testing.T, got []dremel.Triple, want ...dremel.Triple) {
	t.Helper()
	require.Equal(t, want, got)
}

func TestShredPaperSchema(t *testing.T) {
	root := paperschema.Schema()
	columns, err := dremel.Shred(root, paperschema.Records())
	require.NoError(t, err)

	byPath := leavesByPath(root)

	requireTriples(t, columns[byPath["DocId"]],
		dremel.Triple{Value: 10, RepetitionLevel: 0, DefinitionLevel: 1},
		dremel.Triple{Value: 20, RepetitionLevel: 0, DefinitionLevel: 1},
	)

	requireTriples(t, columns[byPath["Name.Language.Code"]],
		dremel.Triple{Value: "en-us", RepetitionLevel: 0, DefinitionLevel: 3},
		dremel.Triple{Value: "en", RepetitionLevel: 2, DefinitionLevel: 3},
		dremel.Triple{Value: nil, RepetitionLevel: 1, DefinitionLevel: 1},
		dremel.Triple{Value: "en-gb", RepetitionLevel: 1, DefinitionLevel: 3},
		dremel.Triple{Value: nil, RepetitionLevel: 0, DefinitionLevel: 1},
	)

	requireTriples(t, columns[byPath["Name.Url"]],
		dremel.Triple{Value: "http://A", RepetitionLevel: 0, DefinitionLevel: 2},
		dremel.Triple{Value: "http://B", RepetitionLevel: 1, DefinitionLevel: 2},
		dremel.Triple{Value: nil, RepetitionLevel: 1, DefinitionLevel: 1},
		dremel.Triple{Value: "http://C", RepetitionLevel: 0, DefinitionLevel: 2},
	)
}

func TestShredEmptyListVsMissing(t *testing.T) {
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

	byPath := leavesByPath(root)

	requireTriples(t, columns[byPath["data.values"]],
		dremel.Triple{Value: 1, RepetitionLevel: 0, DefinitionLevel: 2},
		dremel.Triple{Value: 2, RepetitionLevel: 1, DefinitionLevel: 2},
		dremel.Triple{Value: nil, RepetitionLevel: 0, DefinitionLevel: 1},
		dremel.Triple{Value: nil, RepetitionLevel: 0, DefinitionLevel: 1},
		dremel.Triple{Value: nil, RepetitionLevel: 0, DefinitionLevel: 0},
	)

	requireTriples(t, columns[byPath["data.meta"]],
		dremel.Triple{Value: "m1", RepetitionLevel: 0, DefinitionLevel: 2},
		dremel.Triple{Value: "m2", RepetitionLevel: 0, DefinitionLevel: 2},
		dremel.Triple{Value: nil, RepetitionLevel: 0, DefinitionLevel: 1},
		dremel.Triple{Value: nil, RepetitionLevel: 0, DefinitionLevel: 0},
	)
}

func TestShredTypeMismatch(t *testing.T) {
	root, err := dremel.ParseSchema([]string{"r[*]"})
	require.NoError(t, err)

	_, err = dremel.Shred(root, []dremel.Record{{"r": 1}})
	require.Error(t, err)

	var mismatch *dremel.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	require.Equal(t, "r", mismatch.Field)
	require.Equal(t, 1, mismatch.Value)
}

func TestShredTripleLevelsWithinBounds(t *testing.T) {
	root := paperschema.Schema()
	columns, err := dremel.Shred(root, paperschema.Records())
	require.NoError(t, err)

	for leaf, triples := range columns {
		for _, tr := range triples {
			require.GreaterOrEqual(t, tr.RepetitionLevel, 0)
			require.LessOrEqual(t, tr.RepetitionLevel, leaf.RepetitionLevel)
			require.GreaterOrEqual(t, tr.DefinitionLevel, 0)
			require.LessOrEqual(t, tr.DefinitionLevel, leaf.DefinitionLevel)
			if !tr.IsNull() {
				require.Equal(t, leaf.DefinitionLevel, tr.DefinitionLevel)
			}
		}
	}
}

func TestShredIgnoresUnknownFields(t *testing.T) {
	root, err := dremel.ParseSchema([]string{"a"})
	require.NoError(t, err)

	columns, err := dremel.Shred(root, []dremel.Record{{"a": 1, "unknown": "ignored"}})
	require.NoError(t, err)

	byPath := leavesByPath(root)
	requireTriples(t, columns[byPath["a"]],
		dremel.Triple{Value: 1, RepetitionLevel: 0, DefinitionLevel: 1},
	)
}
