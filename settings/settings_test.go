package settings

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/samcraw1/walters-kitchen-kiosk/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Setting{}))
	return NewStore(db)
}

func TestPutGetOverwrite(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put(KeyPrintNodeAPIKey, "pn-key"))
	v, err := store.Get(KeyPrintNodeAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "pn-key", v)

	// Upsert overwrites in place.
	require.NoError(t, store.Put(KeyPrintNodeAPIKey, "pn-key-2"))
	v, err = store.Get(KeyPrintNodeAPIKey)
	require.NoError(t, err)
	assert.Equal(t, "pn-key-2", v)
}

func TestGetMissingKeyIsEmpty(t *testing.T) {
	store := newTestStore(t)
	v, err := store.Get(KeySquareMerchantID)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestDeleteIsOneShot(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Put(KeySquareOAuthState, "state-token"))
	require.NoError(t, store.Delete(KeySquareOAuthState))

	v, err := store.Get(KeySquareOAuthState)
	require.NoError(t, err)
	assert.Empty(t, v)

	// Deleting an absent key is not an error.
	require.NoError(t, store.Delete(KeySquareOAuthState))
}

func TestLoadDefaults(t *testing.T) {
	store := newTestStore(t)
	cfg, err := store.Load()
	require.NoError(t, err)

	assert.InDelta(t, DefaultKioskFee, cfg.KioskFee, 1e-9)
	assert.Empty(t, cfg.StripeConnectedAccountID)
	assert.False(t, cfg.PrintingConfigured())
}

func TestLoadParsesKioskFee(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put(KeyKioskFee, "4.50"))
	cfg, err := store.Load()
	require.NoError(t, err)
	assert.InDelta(t, 4.50, cfg.KioskFee, 1e-9)

	// Garbage falls back to the default.
	require.NoError(t, store.Put(KeyKioskFee, "not-a-number"))
	cfg, err = store.Load()
	require.NoError(t, err)
	assert.InDelta(t, DefaultKioskFee, cfg.KioskFee, 1e-9)
}

func TestPrintingConfigured(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Put(KeyPrintNodeAPIKey, "pn-key"))
	require.NoError(t, store.Put(KeyPrintNodePrinterID, "42"))

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.True(t, cfg.PrintingConfigured())
	assert.Equal(t, "42", cfg.PrintNodePrinterID)
}

func TestNilDatabaseReadsAreEmpty(t *testing.T) {
	store := NewStore(nil)

	v, err := store.Get(KeyKioskFee)
	require.NoError(t, err)
	assert.Empty(t, v)

	cfg, err := store.Load()
	require.NoError(t, err)
	assert.InDelta(t, DefaultKioskFee, cfg.KioskFee, 1e-9)

	assert.ErrorIs(t, store.Put(KeyKioskFee, "5.00"), ErrNoDatabase)
}
