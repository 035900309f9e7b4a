package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB возвращает gorm в dry-run режиме и ссылку на SQL
// последнего построенного запроса: проверяем форму запросов без Postgres.
func newDryRunDB(t *testing.T) (*gorm.DB, *string) {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	var captured string
	err = db.Callback().Query().After("gorm:query").Register("capture_sql", func(tx *gorm.DB) {
		captured = tx.Statement.SQL.String()
	})
	require.NoError(t, err)

	return db, &captured
}

func TestCountInvitations_PaidOnly(t *testing.T) {
	db, sql := newDryRunDB(t)

	repo := NewTemplateRepository()
	_, err := repo.CountInvitations(db, "tmpl-1")
	require.NoError(t, err)

	// неоплаченные черновики не блокируют удаление шаблона
	assert.Contains(t, *sql, "template_id = ?")
	assert.Contains(t, *sql, "is_paid = ?")
}
