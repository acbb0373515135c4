package models

// Setting keys known to the application.
const (
	SettingTurntableCost = "turntableCost"

	// DefaultTurntableCost applies when a tenant has no stored value.
	DefaultTurntableCost = 10
)

// Setting is a tenant-scoped key/value pair.
type Setting struct {
	TenantID string `db:"tenant_id" json:"-"`
	Key      string `db:"key" json:"key"`
	Value    string `db:"value" json:"value"`
}
