package migration_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/pkg/migration"
	"github.com/shashiranjanraj/storefront/pkg/testkit"
)

type gadget struct {
	ID   uint
	Name string
}

type sprocket struct {
	ID uint
}

type createGadgets struct{}

func (createGadgets) Up(db *gorm.DB) error   { return db.AutoMigrate(&gadget{}) }
func (createGadgets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&gadget{}) }

type createSprockets struct{}

func (createSprockets) Up(db *gorm.DB) error   { return db.AutoMigrate(&sprocket{}) }
func (createSprockets) Down(db *gorm.DB) error { return db.Migrator().DropTable(&sprocket{}) }

func init() {
	// Registered out of order on purpose: the runner sorts by name.
	migration.Register("20260102000000_create_sprockets", createSprockets{})
	migration.Register("20260101000000_create_gadgets", createGadgets{})
}

func TestRunRollbackStatus(t *testing.T) {
	db := testkit.NewDB(t)
	var out bytes.Buffer
	r := migration.New(db, &out)

	n, err := r.Run()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.True(t, db.Migrator().HasTable(&gadget{}))
	assert.True(t, db.Migrator().HasTable(&sprocket{}))
	assert.Less(t, bytes.Index(out.Bytes(), []byte("create_gadgets")), bytes.Index(out.Bytes(), []byte("create_sprockets")))

	n, err = r.Run()
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Contains(t, out.String(), "Nothing to migrate.")

	rows, err := r.Status()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Ran)
	assert.Equal(t, 1, rows[0].Batch)

	n, err = r.Rollback()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.False(t, db.Migrator().HasTable(&gadget{}))

	rows, err = r.Status()
	require.NoError(t, err)
	assert.False(t, rows[1].Ran)

	n, err = r.Rollback()
	require.NoError(t, err)
	assert.Zero(t, n)
}
