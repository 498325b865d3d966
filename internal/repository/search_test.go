package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchPattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%po-1%", Search{Text: "  PO-1 "}.Pattern())
	assert.Equal(t, `%50\%\_off\\%`, Search{Text: `50%_off\`}.Pattern())
}

func TestSearch_NoNarrowing(t *testing.T) {
	assert.False(t, Search{}.hasText())
	assert.False(t, Search{Text: "   "}.hasText())
	assert.False(t, Search{Status: "All"}.hasStatus())
	assert.False(t, Search{Status: "all"}.hasStatus())
	assert.True(t, Search{Status: "Late"}.hasStatus())
}
