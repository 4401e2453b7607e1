package vault

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/SamuelPGibson/PasswordManager/internal/models"
)

func TestSelect_IsIdempotent(t *testing.T) {
	store := seedStore(t, models.Account{Name: "Gmail"}, models.Account{Name: "Bank"})
	sel := NewSelection(store, zap.NewNop())
	id, _ := store.IDByName("Gmail")

	sel.Select(id)
	sel.Select(id)

	current, ok := sel.Current()
	require.True(t, ok)
	assert.Equal(t, id, current)
}

func TestSelect_ReplacesPrevious(t *testing.T) {
	store := seedStore(t, models.Account{Name: "Gmail"}, models.Account{Name: "Bank"})
	sel := NewSelection(store, zap.NewNop())
	gmail, _ := store.IDByName("Gmail")
	bank, _ := store.IDByName("Bank")

	sel.Select(gmail)
	sel.Select(bank)

	current, ok := sel.Current()
	require.True(t, ok)
	assert.Equal(t, bank, current, "selecting a new record implicitly deselects the previous one")
}

func TestSelect_StaleReferenceIsNoOp(t *testing.T) {
	store := seedStore(t, models.Account{Name: "Gmail"})
	sel := NewSelection(store, zap.NewNop())
	id, _ := store.IDByName("Gmail")
	sel.Select(id)

	sel.Select("gone")

	current, ok := sel.Current()
	require.True(t, ok)
	assert.Equal(t, id, current)
}

func TestDeselectAll(t *testing.T) {
	store := seedStore(t, models.Account{Name: "Gmail"})
	sel := NewSelection(store, zap.NewNop())
	id, _ := store.IDByName("Gmail")
	sel.Select(id)

	sel.DeselectAll()

	_, ok := sel.Current()
	assert.False(t, ok)
}

func TestSelectionInvalidate_OnRemove(t *testing.T) {
	store := seedStore(t, models.Account{Name: "Gmail"})
	sel := NewSelection(store, zap.NewNop())
	id, _ := store.IDByName("Gmail")
	sel.Select(id)

	change, err := store.Remove(id)
	require.NoError(t, err)
	sel.Invalidate(change)

	_, ok := sel.Current()
	assert.False(t, ok)
}

func TestSelectionInvalidate_IgnoresOtherChanges(t *testing.T) {
	store := seedStore(t, models.Account{Name: "Gmail"}, models.Account{Name: "Bank"})
	sel := NewSelection(store, zap.NewNop())
	gmail, _ := store.IDByName("Gmail")
	bank, _ := store.IDByName("Bank")
	sel.Select(gmail)

	change, err := store.Remove(bank)
	require.NoError(t, err)
	sel.Invalidate(change)

	current, ok := sel.Current()
	require.True(t, ok)
	assert.Equal(t, gmail, current)
}
