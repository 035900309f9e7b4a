package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindByInvitation_NewestFirst(t *testing.T) {
	db, sql := newDryRunDB(t)

	repo := NewRSVPRepository()
	_, err := repo.FindByInvitation(db, "inv-1")
	require.NoError(t, err)

	assert.Contains(t, *sql, "ORDER BY created_at DESC")
}
