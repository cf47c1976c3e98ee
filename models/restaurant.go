package models

import "time"

// Restaurant dimiliki satu owner; ikut terhapus saat owner dihapus.
// Kategori nullable: kalau kategori dihapus, restoran tetap ada (SET NULL).
type Restaurant struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name"`
	CoverImg      string     `gorm:"type:varchar(255)" json:"cover_img"`
	Address       string     `gorm:"type:varchar(255);not null" json:"address"`
	OwnerID       uint       `gorm:"not null;index" json:"owner_id"`
	Owner         User       `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	CategoryID    *uint      `gorm:"index" json:"category_id,omitempty"`
	Category      *Category  `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	IsPromoted    bool       `gorm:"default:false" json:"is_promoted"`
	PromotedUntil *time.Time `json:"promoted_until,omitempty"`
	Menu          []Dish     `gorm:"foreignKey:RestaurantID" json:"menu,omitempty"`
	Orders        []Order    `gorm:"foreignKey:RestaurantID" json:"-"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
