package models

// Snapshot is the aggregate payload the front-end boots from: every entity
// set for the tenant plus the effective turntable cost.
type Snapshot struct {
	Students        []Student        `json:"students"`
	Groups          []Group          `json:"groups"`
	Rewards         []Reward         `json:"rewards"`
	Records         []Record         `json:"records"`
	TurntablePrizes []TurntablePrize `json:"turntablePrizes"`
	TurntableCost   int              `json:"turntableCost"`
}

// SnapshotImport restores a previously exported snapshot. Records are
// optional; importing without them keeps balances but drops history.
type SnapshotImport struct {
	Students        []StudentImport  `json:"students" validate:"required"`
	Groups          []Group          `json:"groups"`
	Rewards         []Reward         `json:"rewards"`
	Records         []Record         `json:"records"`
	TurntablePrizes []TurntablePrize `json:"turntablePrizes"`
	TurntableCost   *int             `json:"turntableCost"`
}
