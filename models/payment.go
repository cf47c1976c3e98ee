package models

import "time"

// Payment mencatat pembelian promosi restoran oleh owner.
// TransactionID datang dari payment gateway di sisi client.
type Payment struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	TransactionID string     `gorm:"type:varchar(100);not null" json:"transaction_id"`
	UserID        uint       `gorm:"not null;index" json:"user_id"`
	User          User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	RestaurantID  uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant    Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
