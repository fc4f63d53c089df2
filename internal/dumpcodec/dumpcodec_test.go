package dumpcodec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cssflow/core/internal/dumpcodec"
)

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	const dump = "0 block_box subtree=0 index=0 bbox={0 0 10 10}\n" +
		"1 block_box subtree=0 index=1 bbox={0 0 20 20}\n"

	encoded, err := dumpcodec.Encode(dump)
	require.NoError(t, err)
	assert.NotEmpty(t, encoded)

	decoded, err := dumpcodec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, dump, decoded)
}

func TestDecodeInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := dumpcodec.Decode("not valid base64!!")
	assert.Error(t, err)
}
