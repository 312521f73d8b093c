package models

// Setting is one row of the kiosk_settings key-value table. Processor
// credentials, printer configuration and the OAuth state token all live here.
type Setting struct {
	SettingKey   string `gorm:"primaryKey" json:"setting_key"`
	SettingValue string `json:"setting_value"`
}

func (Setting) TableName() string { return "kiosk_settings" }
