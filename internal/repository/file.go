// Package repository provides persistence implementations for the account
// catalog: a JSON vault file and a PostgreSQL store. Both persist the full
// record set on every save.
package repository

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

// vaultDocument is the on-disk shape of the vault file.
type vaultDocument struct {
	Version  int              `json:"version"`
	Accounts []models.Account `json:"accounts"`
}

// File persists the catalog as a JSON vault file.
type File struct {
	path string
}

// NewFile constructs a file repository writing to path.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads all accounts from the vault file. A missing file yields an
// empty catalog, not an error.
func (f *File) Load() ([]models.Account, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open vault: %w", err)
	}
	defer file.Close()

	var doc vaultDocument
	if err := json.NewDecoder(file).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode vault: %w", err)
	}
	return doc.Accounts, nil
}

// Save writes the full record set to the vault file, replacing the
// previous contents. The file is created 0600.
func (f *File) Save(records []models.Account) error {
	doc := vaultDocument{Version: 1, Accounts: records}
	data, err := json.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encode vault: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return fmt.Errorf("write vault: %w", err)
	}
	return nil
}
