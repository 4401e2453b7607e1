package repository

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

func TestFileLoad_MissingFileIsEmptyCatalog(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "vault.json"))

	records, err := repo.Load()
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestFileRoundTrip(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "vault.json"))
	want := []models.Account{
		{ID: "id-1", Name: "Gmail", Username: "sam", Password: "enc:abc",
			Category: "Websites", Notes: "personal", CreatedDate: "01/02/2023"},
		{ID: "id-2", Name: "Bank", Username: "sam", Password: "enc:def",
			Category: "Other", Notes: "", CreatedDate: "2020"},
	}

	require.NoError(t, repo.Save(want))

	got, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileSave_ReplacesPreviousContents(t *testing.T) {
	repo := NewFile(filepath.Join(t.TempDir(), "vault.json"))
	require.NoError(t, repo.Save([]models.Account{{ID: "a", Name: "Old"}}))
	require.NoError(t, repo.Save([]models.Account{{ID: "b", Name: "New"}}))

	got, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "New", got[0].Name)
}

func TestFileSave_Mode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	repo := NewFile(path)
	require.NoError(t, repo.Save(nil))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFile(path).Load()
	assert.Error(t, err)
}
