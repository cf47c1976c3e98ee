package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/models"
)

func newPaymentTestDB(t *testing.T, name string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.Restaurant{}, &models.Payment{})
	if err != nil {
		t.Fatalf("migration failed: %v", err)
	}
	return db
}

func TestCreatePaymentPromotesRestaurant(t *testing.T) {
	db := newPaymentTestDB(t, "payment_create")
	svc := NewPaymentService(db)

	owner := models.User{Email: "owner@test.com", Password: "x", Role: models.RoleOwner}
	db.Create(&owner)
	restaurant := models.Restaurant{Name: "Warung", Address: "Jl. Satu", OwnerID: owner.ID}
	db.Create(&restaurant)

	before := time.Now()
	payment, err := svc.CreatePayment(owner, "trx-123", restaurant.ID)
	assert.NoError(t, err)
	assert.Equal(t, "trx-123", payment.TransactionID)
	assert.Equal(t, owner.ID, payment.UserID)

	var promoted models.Restaurant
	assert.NoError(t, db.First(&promoted, restaurant.ID).Error)
	assert.True(t, promoted.IsPromoted)
	if assert.NotNil(t, promoted.PromotedUntil) {
		// Masa promosi 7 hari dari sekarang
		expected := before.AddDate(0, 0, 7)
		assert.WithinDuration(t, expected, *promoted.PromotedUntil, time.Minute)
	}
}

func TestCreatePaymentRejectsNonOwner(t *testing.T) {
	db := newPaymentTestDB(t, "payment_reject")
	svc := NewPaymentService(db)

	owner := models.User{Email: "owner@test.com", Password: "x", Role: models.RoleOwner}
	intruder := models.User{Email: "intruder@test.com", Password: "x", Role: models.RoleOwner}
	db.Create(&owner)
	db.Create(&intruder)
	restaurant := models.Restaurant{Name: "Warung", Address: "Jl. Satu", OwnerID: owner.ID}
	db.Create(&restaurant)

	_, err := svc.CreatePayment(intruder, "trx-x", restaurant.ID)
	assert.ErrorIs(t, err, ErrNotRestaurantOwner)

	_, err = svc.CreatePayment(owner, "trx-x", 9999)
	assert.ErrorIs(t, err, ErrRestaurantNotFound)

	var stored models.Restaurant
	db.First(&stored, restaurant.ID)
	assert.False(t, stored.IsPromoted)
}

func TestGetPaymentsScopedToUser(t *testing.T) {
	db := newPaymentTestDB(t, "payment_list")
	svc := NewPaymentService(db)

	a := models.User{Email: "a@test.com", Password: "x", Role: models.RoleOwner}
	b := models.User{Email: "b@test.com", Password: "x", Role: models.RoleOwner}
	db.Create(&a)
	db.Create(&b)
	restoA := models.Restaurant{Name: "A", Address: "Jl. A", OwnerID: a.ID}
	restoB := models.Restaurant{Name: "B", Address: "Jl. B", OwnerID: b.ID}
	db.Create(&restoA)
	db.Create(&restoB)

	_, err := svc.CreatePayment(a, "trx-a", restoA.ID)
	assert.NoError(t, err)
	_, err = svc.CreatePayment(b, "trx-b", restoB.ID)
	assert.NoError(t, err)

	payments, err := svc.GetPayments(a)
	assert.NoError(t, err)
	assert.Len(t, payments, 1)
	assert.Equal(t, "trx-a", payments[0].TransactionID)
}

func TestClearExpiredPromotions(t *testing.T) {
	db := newPaymentTestDB(t, "payment_sweep")
	svc := NewPaymentService(db)

	owner := models.User{Email: "owner@test.com", Password: "x", Role: models.RoleOwner}
	db.Create(&owner)

	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(48 * time.Hour)
	expired := models.Restaurant{Name: "Kadaluarsa", Address: "Jl. Lama", OwnerID: owner.ID, IsPromoted: true, PromotedUntil: &past}
	active := models.Restaurant{Name: "Aktif", Address: "Jl. Baru", OwnerID: owner.ID, IsPromoted: true, PromotedUntil: &future}
	db.Create(&expired)
	db.Create(&active)

	svc.ClearExpiredPromotions()

	var after models.Restaurant
	db.First(&after, expired.ID)
	assert.False(t, after.IsPromoted)
	assert.Nil(t, after.PromotedUntil)

	var activeAfter models.Restaurant
	db.First(&activeAfter, active.ID)
	assert.True(t, activeAfter.IsPromoted)
	assert.NotNil(t, activeAfter.PromotedUntil)
}
