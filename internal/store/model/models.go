package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// TradeModel is the persisted form of a normalized trade. Money columns are
// decimal so imports survive round-tripping without float drift; Raw keeps
// the record as imported for audit.
type TradeModel struct {
	ID         uint            `gorm:"primaryKey;autoIncrement"`
	Symbol     string          `gorm:"size:32;index"`
	PnL        decimal.Decimal `gorm:"column:pnl;type:numeric(30,10)"`
	Commission decimal.Decimal `gorm:"type:numeric(30,10)"`
	Qty        float64
	Price      float64
	ExecutedAt time.Time      `gorm:"index"`
	Raw        datatypes.JSON `gorm:"type:json"`
	CreatedAt  time.Time      `gorm:"autoCreateTime"`
}

func (TradeModel) TableName() string { return "trades" }
