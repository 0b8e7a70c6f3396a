// Package testkit holds helpers shared by the storefront's package tests:
// an in-memory database, request helpers and assertions on the JSON
// envelope.
//
//	db := testkit.NewDB(t, &models.Customer{})
//	rec := testkit.Do(t, handler, http.MethodPost, "/login", `{"email":"a@b.c"}`)
//	env := testkit.AssertStatus(t, rec, http.StatusBadRequest)
package testkit

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/database"
)

// NewDB opens a private in-memory SQLite database, auto-migrates models and
// closes it when the test ends.
func NewDB(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	db, err := database.Connect(config.Database{Driver: "sqlite", DSN: ":memory:"}, nil)
	require.NoError(t, err, "testkit: open sqlite")
	t.Cleanup(func() { _ = database.Close(db) })

	if len(models) > 0 {
		require.NoError(t, db.AutoMigrate(models...), "testkit: migrate")
	}
	return db
}
