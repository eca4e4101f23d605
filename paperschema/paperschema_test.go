package paperschema_test

import (
	"testing"

	"github.com/segmentio/dremel"
	"github.com/segmentio/dremel/paperschema"
	"github.com/stretchr/testify/require"
)

func TestSchemaMatchesPaths(t *testing.T) {
	root := paperschema.Schema()
	require.Len(t, dremel.Leaves(root), 6)
}

func TestRecordsShredWithoutError(t *testing.T) {
	root := paperschema.Schema()
	_, err := dremel.Shred(root, paperschema.Records())
	require.NoError(t, err)
}
