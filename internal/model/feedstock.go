package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Feedstock is a raw material tracked by the catalog. Products reference it
// through ProductFeedstock rows; the reverse lookup is a query on the join
// table, the entity itself carries no association set.
type Feedstock struct {
	ID            int64           `gorm:"primaryKey" json:"id"`
	Code          string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"code"`
	Name          string          `gorm:"type:varchar(100);not null" json:"name"`
	Stock         decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"stock"`
	UnitOfMeasure string          `gorm:"type:varchar(4);not null" json:"unitOfMeasure"`
	CreatedAt     time.Time       `json:"-"`
	UpdatedAt     time.Time       `json:"-"`
}
