package migrations_test

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/app/models"
	_ "github.com/shashiranjanraj/storefront/database/migrations"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

func TestSchemaUpAndDown(t *testing.T) {
	db := testkit.NewDB(t)
	r := migration.New(db, io.Discard)

	n, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	for _, table := range []string{"customers", "categories", "products", "orders", "failed_jobs"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&models.Customer{}, "Email"))

	n, err = r.Rollback()
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.False(t, db.Migrator().HasTable("customers"))
}
