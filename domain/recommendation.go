package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Recommendation struct {
	ID      string `gorm:"primaryKey;type:text" json:"id"`
	StoreID uint   `gorm:"column:store_id;not null;index" json:"store_id"`

	Title       string `gorm:"column:title;not null" json:"title"`
	Description string `gorm:"column:description;type:text" json:"description"`
	Category    string `gorm:"column:category" json:"category"` // conversion, retention, revenue, traffic, inventory
	Priority    string `gorm:"column:priority" json:"priority"` // critical, high, medium, low

	ImpactScore        float64 `gorm:"column:impact_score;type:numeric" json:"impact_score"`
	EffortScore        float64 `gorm:"column:effort_score;type:numeric" json:"effort_score"`
	Confidence         float64 `gorm:"column:confidence;type:numeric" json:"confidence"`
	PotentialRevenue   float64 `gorm:"column:potential_revenue;type:numeric" json:"potential_revenue"`
	ImplementationTime string  `gorm:"column:implementation_time" json:"implementation_time"`

	Steps    datatypes.JSONSlice[string] `gorm:"column:steps;type:jsonb" json:"steps"`
	Evidence datatypes.JSONMap           `gorm:"column:evidence;type:jsonb" json:"evidence"`

	IsImplemented bool       `gorm:"column:is_implemented;default:false" json:"is_implemented"`
	ImplementedAt *time.Time `gorm:"column:implemented_at" json:"implemented_at,omitempty"`
	Dismissed     bool       `gorm:"column:dismissed;default:false" json:"dismissed"`

	GeneratedBy string    `gorm:"column:generated_by" json:"generated_by"` // rule, manual
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}
