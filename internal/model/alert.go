package model

import "time"

// AlertType classifies what market property an alert watches.
type AlertType string

const (
	AlertTypePrice         AlertType = "price"
	AlertTypeVolume        AlertType = "volume"
	AlertTypeNews          AlertType = "news"
	AlertTypePercentChange AlertType = "percent-change"
	AlertTypeTechnical     AlertType = "technical"
	AlertTypeDividend      AlertType = "dividend"
)

// AlertCondition is the trigger predicate a user picked for an alert.
type AlertCondition string

const (
	ConditionAbove             AlertCondition = "above"
	ConditionBelow             AlertCondition = "below"
	ConditionEquals            AlertCondition = "equals"
	ConditionPercentChangeUp   AlertCondition = "percent-change-up"
	ConditionPercentChangeDown AlertCondition = "percent-change-down"
	ConditionVolumeSpike       AlertCondition = "volume-spike"
	ConditionVolumeDrop        AlertCondition = "volume-drop"
	ConditionRSIOverbought     AlertCondition = "rsi-overbought"
	ConditionRSIOversold       AlertCondition = "rsi-oversold"
	ConditionMACrossover       AlertCondition = "ma-crossover"
	ConditionMACrossunder      AlertCondition = "ma-crossunder"
	ConditionNewHigh           AlertCondition = "new-high"
	ConditionNewLow            AlertCondition = "new-low"
)

// ValidConditions lists every supported trigger condition.
var ValidConditions = []AlertCondition{
	ConditionAbove, ConditionBelow, ConditionEquals,
	ConditionPercentChangeUp, ConditionPercentChangeDown,
	ConditionVolumeSpike, ConditionVolumeDrop,
	ConditionRSIOverbought, ConditionRSIOversold,
	ConditionMACrossover, ConditionMACrossunder,
	ConditionNewHigh, ConditionNewLow,
}

// Alert is a user-defined trigger rule on one symbol.
// Trigger fields (Triggered, TriggeredAt) are mutated only by the evaluation
// engine; everything else only by user CRUD.
type Alert struct {
	ID        string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID    string         `gorm:"index:idx_user_symbol;type:varchar(36);not null" json:"user_id"`
	Symbol    string         `gorm:"index:idx_user_symbol;type:varchar(20);not null" json:"symbol"`
	Type      AlertType      `gorm:"type:varchar(20);not null" json:"type"`
	Condition AlertCondition `gorm:"type:varchar(30);not null" json:"condition"`
	// Threshold is optional: crossover and new-high/low conditions carry none.
	Threshold *float64 `gorm:"type:decimal(20,6)" json:"threshold,omitempty"`
	// Message overrides the synthesized notification text when set.
	Message     string     `gorm:"type:varchar(500)" json:"message,omitempty"`
	Email       string     `gorm:"type:varchar(100)" json:"email,omitempty"`
	IsActive    bool       `gorm:"not null;default:true" json:"is_active"`
	Triggered   bool       `gorm:"not null;default:false" json:"triggered"`
	TriggeredAt *time.Time `json:"triggered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Alert) TableName() string {
	return "alerts"
}

// Eligible reports whether the alert takes part in tick evaluation.
func (a Alert) Eligible() bool {
	return a.IsActive && !a.Triggered
}
