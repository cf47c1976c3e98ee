package models

import "time"

// Role membedakan tipe akun: pemesan, pemilik restoran, kurir.
type Role string

const (
	RoleClient   Role = "client"
	RoleOwner    Role = "owner"
	RoleDelivery Role = "delivery"

	// RoleAny dipakai di route yang hanya butuh login, bukan role tertentu.
	RoleAny Role = "any"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"type:varchar(255);unique;not null" json:"email"`
	Password  string    `gorm:"type:varchar(255);not null" json:"-"`
	Role      Role      `gorm:"type:varchar(20);not null" json:"role"`
	Verified  bool      `gorm:"default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
