package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blindhunter/blindhunter/database/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) string {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	require.NoError(t, InitDB(dbPath))
	t.Cleanup(func() { _ = CloseDB() })
	return dbPath
}

func TestInitDBMigratesSchema(t *testing.T) {
	setupTestDB(t)

	for _, table := range []string{"users", "companies", "reviews", "settings"} {
		assert.True(t, GetDB().Migrator().HasTable(table), "table %s", table)
	}
}

func TestUniqueConstraintsAreTranslated(t *testing.T) {
	setupTestDB(t)
	db := GetDB()

	require.NoError(t, db.Create(&model.Company{CompanyName: "Acme", Email: "a@acme.io", Phone: "1"}).Error)

	err := db.Create(&model.Company{CompanyName: "Acme 2", Email: "a@acme.io", Phone: "2"}).Error
	assert.True(t, IsDuplicatedKey(err), "got %v", err)

	err = db.Create(&model.User{Username: "alice", Password: "x"}).Error
	require.NoError(t, err)
	err = db.Create(&model.User{Username: "alice", Password: "y"}).Error
	assert.True(t, IsDuplicatedKey(err), "got %v", err)
}

func TestDeletingCompanyCascadesToReviews(t *testing.T) {
	setupTestDB(t)
	db := GetDB()

	company := &model.Company{CompanyName: "Acme", Email: "a@acme.io", Phone: "1"}
	require.NoError(t, db.Create(company).Error)
	require.NoError(t, db.Create(&model.Review{ReviewName: "alice", CompanyId: company.Id, Date: "2024-01-02"}).Error)

	require.NoError(t, db.Delete(&model.Company{}, company.Id).Error)

	var count int64
	require.NoError(t, db.Model(&model.Review{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestIsNotFound(t *testing.T) {
	setupTestDB(t)

	err := GetDB().First(&model.Company{}, 404).Error
	assert.True(t, IsNotFound(err))
}

func TestIsSQLiteDB(t *testing.T) {
	dbPath := setupTestDB(t)
	require.NoError(t, Checkpoint())

	f, err := os.Open(dbPath)
	require.NoError(t, err)
	defer f.Close()

	ok, err := IsSQLiteDB(f)
	require.NoError(t, err)
	assert.True(t, ok)
}
