package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/events"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/router"
	"github.com/danuartha/delivery-app/services"
	"github.com/danuartha/delivery-app/utils"
)

func setupApp(t *testing.T, name string) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()

	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{}, &models.Verification{}, &models.Category{},
		&models.Restaurant{}, &models.Dish{},
		&models.Order{}, &models.OrderItem{}, &models.Payment{},
	)
	if err != nil {
		t.Fatalf("migration failed: %v", err)
	}

	hub := events.NewHub()
	paymentSvc := services.NewPaymentService(db)
	return router.SetupRouter(db, hub, paymentSvc), db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		assert.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, path, &buf)
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var resp struct {
		Status  bool                   `json:"status"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Data
}

// signup mendaftarkan user lewat API lalu login untuk dapat token.
func signup(t *testing.T, r *gin.Engine, email string, role models.Role) string {
	w := doJSON(t, r, "POST", "/users", "", gin.H{
		"email":    email,
		"password": "password123",
		"role":     role,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, "POST", "/users/login", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token, _ := decodeData(t, w)["token"].(string)
	assert.NotEmpty(t, token)
	return token
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	r, _ := setupApp(t, "http_lifecycle")

	ownerToken := signup(t, r, "owner@http.test", models.RoleOwner)
	clientToken := signup(t, r, "client@http.test", models.RoleClient)
	driverToken := signup(t, r, "driver@http.test", models.RoleDelivery)

	// Owner menyiapkan restoran dan menu
	w := doJSON(t, r, "POST", "/restaurants", ownerToken, gin.H{
		"name":    "Warung HTTP",
		"address": "Jl. Integrasi 1",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	restaurantID := uint(decodeData(t, w)["id"].(float64))

	w = doJSON(t, r, "POST", fmt.Sprintf("/restaurants/%d/dishes", restaurantID), ownerToken, gin.H{
		"name":  "Burger",
		"price": 10.0,
		"options": []gin.H{
			{"name": "Spice", "extra": 2.0},
		},
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	dishID := uint(decodeData(t, w)["id"].(float64))

	// Hanya client yang boleh membuat order
	orderPayload := gin.H{
		"restaurant_id": restaurantID,
		"items": []gin.H{
			{"dish_id": dishID, "options": []gin.H{{"name": "Spice"}}},
		},
	}
	w = doJSON(t, r, "POST", "/orders", driverToken, orderPayload)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "POST", "/orders", clientToken, orderPayload)
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	data := decodeData(t, w)
	orderID := uint(data["id"].(float64))
	assert.Equal(t, 12.0, data["total"])

	orderPath := fmt.Sprintf("/orders/%d", orderID)

	// Client tidak boleh mengubah status, owner boleh
	w = doJSON(t, r, "PATCH", orderPath, clientToken, gin.H{"status": "Cooking"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "PATCH", orderPath, ownerToken, gin.H{"status": "Cooking"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, "PATCH", orderPath, ownerToken, gin.H{"status": "Cooked"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Kurir pertama mengambil order, kurir kedua ditolak Conflict
	w = doJSON(t, r, "PUT", orderPath+"/take", driverToken, nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	secondDriver := signup(t, r, "driver2@http.test", models.RoleDelivery)
	w = doJSON(t, r, "PUT", orderPath+"/take", secondDriver, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, "PATCH", orderPath, driverToken, gin.H{"status": "PickedUp"})
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, "PATCH", orderPath, driverToken, gin.H{"status": "Delivered"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Detail order hanya untuk pihak yang terlibat
	nosy := signup(t, r, "nosy@http.test", models.RoleClient)
	w = doJSON(t, r, "GET", orderPath, nosy, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "GET", orderPath, clientToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Tanpa login daftar order tertutup
	w = doJSON(t, r, "GET", "/orders", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Filter status tervalidasi
	w = doJSON(t, r, "GET", "/orders?status=Delivered", clientToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, "GET", "/orders?status=Bogus", clientToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEditUnknownOrderReturnsNotFound(t *testing.T) {
	r, _ := setupApp(t, "http_missing_order")
	ownerToken := signup(t, r, "owner@missing.test", models.RoleOwner)

	w := doJSON(t, r, "PATCH", "/orders/9999", ownerToken, gin.H{"status": "Cooking"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaymentPromotesRestaurantOverHTTP(t *testing.T) {
	r, db := setupApp(t, "http_payment")
	ownerToken := signup(t, r, "owner@pay.test", models.RoleOwner)
	clientToken := signup(t, r, "client@pay.test", models.RoleClient)

	w := doJSON(t, r, "POST", "/restaurants", ownerToken, gin.H{
		"name":    "Warung Promo",
		"address": "Jl. Promo 1",
	})
	assert.Equal(t, http.StatusCreated, w.Code)
	restaurantID := uint(decodeData(t, w)["id"].(float64))

	// Client tidak boleh menyentuh endpoint payment
	w = doJSON(t, r, "POST", "/payments", clientToken, gin.H{
		"transaction_id": "trx-http",
		"restaurant_id":  restaurantID,
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, "POST", "/payments", ownerToken, gin.H{
		"transaction_id": "trx-http",
		"restaurant_id":  restaurantID,
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var promoted models.Restaurant
	assert.NoError(t, db.First(&promoted, restaurantID).Error)
	assert.True(t, promoted.IsPromoted)
	assert.NotNil(t, promoted.PromotedUntil)
}
