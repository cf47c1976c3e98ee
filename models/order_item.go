package models

import "time"

// SelectedOption adalah snapshot pilihan customer pada satu item,
// disimpan apa adanya (bukan master option list milik dish).
type SelectedOption struct {
	Name   string `json:"name"`
	Choice string `json:"choice,omitempty"`
}

type OrderItem struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	OrderID   uint             `gorm:"not null;index" json:"order_id"`
	Order     Order            `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	DishID    uint             `gorm:"not null" json:"dish_id"`
	Dish      Dish             `gorm:"foreignKey:DishID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"dish"`
	Options   []SelectedOption `gorm:"serializer:json" json:"options,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
