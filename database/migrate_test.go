package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

func TestCreateDefaultSettings(t *testing.T) {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	settings, err := createDefaultSettings(db)
	require.NoError(t, err)

	// BeforeCreate сгенерировал id, значит вставка пошла по указателю
	assert.NotEmpty(t, settings.ID)
	assert.Equal(t, float64(99), settings.ScratchDesignPrice)
}
