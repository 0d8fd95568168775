package cli

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

func TestAskCmd_RequiresQuestion(t *testing.T) {
	_, err := execute(t, "ask", "lease.txt")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires at least 2 arg(s)")
}

func TestAskCmd_IngestsThenAsks(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	path := writeTestFile(t, "lease.txt", "This lease runs for 12 months.")

	out, err := execute(t, "ask", path, "How", "long", "is", "the", "term?")

	require.NoError(t, err)
	assert.Len(t, ts.ingest.requests, 1)
	assert.Equal(t, domain.FingerprintOf([]byte("This lease runs for 12 months.")), ts.query.fingerprint)
	assert.Equal(t, "How long is the term?", ts.query.question)
	assert.Contains(t, out, "The agreement runs for 12 months.")
}

func TestAskCmd_FingerprintIsReadAsPath(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()

	_, err := execute(t, "ask", "0cc175b9c0f1b6a831c399e269772661", "Who are the parties?")

	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Empty(t, ts.ingest.requests)
	assert.Empty(t, ts.query.question)
}

func TestAskCmd_CacheMiss(t *testing.T) {
	ts, cleanup := setupTestServices()
	defer cleanup()
	ts.query.err = domain.ErrCacheMiss
	path := writeTestFile(t, "lease.txt", "lease")

	_, err := execute(t, "ask", path, "Who?")

	assert.ErrorIs(t, err, domain.ErrCacheMiss)
}
