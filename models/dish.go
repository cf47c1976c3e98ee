package models

import "time"

// DishChoice adalah pilihan di dalam satu option, mis. size "L" dengan extra 2.
type DishChoice struct {
	Name  string   `json:"name"`
	Extra *float64 `json:"extra,omitempty"`
}

// DishOption adalah opsi yang bisa dipilih pada satu dish.
// Extra langsung ATAU extra per-choice; kalau dua-duanya terisi, hanya Extra
// yang dipakai saat menghitung harga.
type DishOption struct {
	Name    string       `json:"name"`
	Extra   *float64     `json:"extra,omitempty"`
	Choices []DishChoice `json:"choices,omitempty"`
}

// Dish ikut terhapus saat restorannya dihapus. Options disimpan sebagai
// kolom JSON, bukan tabel terpisah.
type Dish struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	Name         string       `gorm:"type:varchar(255);not null" json:"name"`
	Price        float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Description  string       `gorm:"type:text" json:"description"`
	Photo        *string      `gorm:"type:varchar(255)" json:"photo,omitempty"`
	RestaurantID uint         `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant   `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Options      []DishOption `gorm:"serializer:json" json:"options,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
