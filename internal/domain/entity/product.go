package entity

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	ID    int64           `gorm:"primaryKey;autoIncrement"`
	Name  string          `gorm:"type:varchar(255);not null"`
	Price decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (Product) TableName() string {
	return "products"
}
