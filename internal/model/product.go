package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a manufactured item composed of feedstocks in given quantities.
// It exclusively owns its ProductFeedstock rows: deleting the product removes
// them as well.
type Product struct {
	ID        int64           `gorm:"primaryKey" json:"id"`
	Code      string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"code"`
	Name      string          `gorm:"type:varchar(100);not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"unitPrice"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`

	Feedstocks []ProductFeedstock `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"feedstocks,omitempty"`
}

// ProductFeedstock links one product to one feedstock with the quantity the
// product consumes per unit. Identity is the (product, feedstock) pair, so a
// product holds at most one row per feedstock.
type ProductFeedstock struct {
	ProductID   int64           `gorm:"primaryKey;autoIncrement:false" json:"productId"`
	FeedstockID int64           `gorm:"primaryKey;autoIncrement:false" json:"feedstockId"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,6);not null" json:"quantity"`

	Product   *Product   `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Feedstock *Feedstock `gorm:"foreignKey:FeedstockID;constraint:OnDelete:RESTRICT" json:"feedstock,omitempty"`
}
