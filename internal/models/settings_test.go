package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSystemSettings(t *testing.T) {
	s := DefaultSystemSettings()
	assert.Equal(t, float64(99), s.ScratchDesignPrice)
}
