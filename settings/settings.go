package settings

import (
	"errors"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/samcraw1/walters-kitchen-kiosk/models"
)

// Keys persisted in the kiosk_settings table.
const (
	KeyStripeConnectedAccountID = "stripe_connected_account_id"
	KeyKioskFee                 = "kiosk_fee"
	KeyPrintNodeAPIKey          = "printnode_api_key"
	KeyPrintNodePrinterID       = "printnode_printer_id"
	KeySquareOAuthState         = "square_oauth_state"
	KeySquareMerchantID         = "square_merchant_id"
	KeySquareAccessToken        = "square_merchant_access_token"
	KeySquareRefreshToken       = "square_merchant_refresh_token"
)

// DefaultKioskFee is used for the processor fee split when the kiosk_fee
// setting is absent or unparseable.
const DefaultKioskFee = 3.00

var ErrNoDatabase = errors.New("database not configured")

// Store reads and writes kiosk_settings rows. A Store over a nil DB answers
// reads with zero values so the kiosk keeps serving without a database.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Get returns the value for key, or "" when the key does not exist.
func (s *Store) Get(key string) (string, error) {
	if s.db == nil {
		return "", nil
	}
	var row models.Setting
	if err := s.db.First(&row, "setting_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return row.SettingValue, nil
}

// Put upserts a single setting.
func (s *Store) Put(key, value string) error {
	if s.db == nil {
		return ErrNoDatabase
	}
	row := models.Setting{SettingKey: key, SettingValue: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"setting_value"}),
	}).Create(&row).Error
}

func (s *Store) Delete(key string) error {
	if s.db == nil {
		return ErrNoDatabase
	}
	return s.db.Delete(&models.Setting{}, "setting_key = ?", key).Error
}

// All returns every setting as a flat map, the shape the admin panel edits.
func (s *Store) All() (map[string]string, error) {
	out := map[string]string{}
	if s.db == nil {
		return out, nil
	}
	var rows []models.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.SettingKey] = row.SettingValue
	}
	return out, nil
}

// Settings is the typed view of the table, loaded at the boundary so the
// rest of the code never touches the string-keyed bag.
type Settings struct {
	StripeConnectedAccountID string
	KioskFee                 float64
	PrintNodeAPIKey          string
	PrintNodePrinterID       string
	SquareOAuthState         string
	SquareMerchantID         string
	SquareAccessToken        string
	SquareRefreshToken       string
}

// Load reads the whole table into a Settings value. Missing keys fall back
// to zero values; the kiosk fee falls back to DefaultKioskFee.
func (s *Store) Load() (Settings, error) {
	raw, err := s.All()
	if err != nil {
		return Settings{}, err
	}
	out := Settings{
		StripeConnectedAccountID: raw[KeyStripeConnectedAccountID],
		KioskFee:                 DefaultKioskFee,
		PrintNodeAPIKey:          raw[KeyPrintNodeAPIKey],
		PrintNodePrinterID:       raw[KeyPrintNodePrinterID],
		SquareOAuthState:         raw[KeySquareOAuthState],
		SquareMerchantID:         raw[KeySquareMerchantID],
		SquareAccessToken:        raw[KeySquareAccessToken],
		SquareRefreshToken:       raw[KeySquareRefreshToken],
	}
	if v := raw[KeyKioskFee]; v != "" {
		if fee, err := strconv.ParseFloat(v, 64); err == nil && fee > 0 {
			out.KioskFee = fee
		}
	}
	return out, nil
}

// PrintingConfigured reports whether the PrintNode integration is usable.
func (s Settings) PrintingConfigured() bool {
	return s.PrintNodeAPIKey != "" && s.PrintNodePrinterID != ""
}
