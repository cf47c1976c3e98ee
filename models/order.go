package models

import "time"

// OrderStatus berjalan linear: Pending -> Cooking -> Cooked -> PickedUp -> Delivered.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusCooking   OrderStatus = "Cooking"
	StatusCooked    OrderStatus = "Cooked"
	StatusPickedUp  OrderStatus = "PickedUp"
	StatusDelivered OrderStatus = "Delivered"
)

// ValidStatus dipakai untuk validasi input sebelum masuk ke service.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusCooking, StatusCooked, StatusPickedUp, StatusDelivered:
		return true
	}
	return false
}

// Order: customer dan restaurant nullable supaya order tetap ada walau
// akun/restorannya dihapus. Driver kosong sampai ada kurir yang mengambil.
// Total adalah snapshot harga saat order dibuat, tidak dihitung ulang.
type Order struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	CustomerID   *uint       `gorm:"index" json:"customer_id,omitempty"`
	Customer     *User       `gorm:"foreignKey:CustomerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"customer,omitempty"`
	DriverID     *uint       `gorm:"index" json:"driver_id,omitempty"`
	Driver       *User       `gorm:"foreignKey:DriverID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"driver,omitempty"`
	RestaurantID *uint       `gorm:"index" json:"restaurant_id,omitempty"`
	Restaurant   *Restaurant `gorm:"foreignKey:RestaurantID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"restaurant,omitempty"`
	Items        []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	Total        float64     `gorm:"type:decimal(10,2);not null;default:0.00" json:"total"`
	Status       OrderStatus `gorm:"type:varchar(20);not null;default:'Pending'" json:"status"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}
