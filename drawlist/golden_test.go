package drawlist_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssflow/core/drawlist"
	"github.com/cssflow/core/internal/dumpcodec"
)

// TestDumpGoldenRoundTrip builds scenario 5's list, snapshots it with Dump,
// and checks the snapshot survives an encode/decode round trip unchanged —
// the property golden tests rely on.
func TestDumpGoldenRoundTrip(t *testing.T) {
	t.Parallel()

	doc := buildScenario5Doc()
	list, err := drawlist.Build(context.Background(), discardLogger(), doc)
	require.NoError(t, err)

	dump := list.Dump()
	assert.NotEmpty(t, dump)
	assert.Equal(t, list.Len(), countLines(dump))

	encoded, err := dumpcodec.Encode(dump)
	require.NoError(t, err)

	decoded, err := dumpcodec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, dump, decoded)
}

func countLines(s string) int {
	n := 0
	for _, c := range s {
		if c == '\n' {
			n++
		}
	}
	return n
}
