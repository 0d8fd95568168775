package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/lexqa/internal/core/domain"
)

func TestQuestionsCmd_ListsSuggestions(t *testing.T) {
	out, err := execute(t, "questions")

	require.NoError(t, err)
	for _, q := range domain.SuggestedQuestions() {
		assert.Contains(t, out, q)
	}
	assert.Contains(t, out, " 1. ")
	assert.Contains(t, out, "10. ")
}
