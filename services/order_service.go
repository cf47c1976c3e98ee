package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/events"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

var (
	ErrRestaurantNotFound = errors.New("restaurant not found")
	ErrDishNotFound       = errors.New("dish not found")
	ErrOrderNotFound      = errors.New("order not found")
	ErrCantSeeOrder       = errors.New("you can't see that")
	ErrCantEditOrder      = errors.New("you can't do that")
	ErrDriverAssigned     = errors.New("This order already has a driver")
)

// allowedTargets memetakan role ke status tujuan yang boleh di-set role itu.
// Customer tidak boleh mengubah status sama sekali. Tabel ini sengaja tidak
// melihat status sekarang: owner boleh langsung set Cooked dari Pending.
var allowedTargets = map[models.Role][]models.OrderStatus{
	models.RoleOwner:    {models.StatusCooking, models.StatusCooked},
	models.RoleDelivery: {models.StatusPickedUp, models.StatusDelivered},
}

func roleMayTarget(role models.Role, target models.OrderStatus) bool {
	for _, s := range allowedTargets[role] {
		if s == target {
			return true
		}
	}
	return false
}

// OrderItemInput adalah satu baris pesanan dari customer: dish yang dipilih
// plus opsi-opsinya sebagaimana dikirim.
type OrderItemInput struct {
	DishID  uint                    `json:"dish_id" binding:"required"`
	Options []models.SelectedOption `json:"options"`
}

// OrderService mengorkestrasi lifecycle order: hitung harga, simpan,
// jalankan aturan transisi, lalu siarkan perubahan lewat Hub.
type OrderService struct {
	DB  *gorm.DB
	Hub *events.Hub
}

func NewOrderService(db *gorm.DB, hub *events.Hub) *OrderService {
	return &OrderService{DB: db, Hub: hub}
}

// CreateOrder menghitung total dari menu restoran, menyimpan order beserta
// snapshot item-nya, lalu mem-publish event pending order untuk si owner.
// Order total dibekukan di sini; perubahan harga dish belakangan tidak
// mempengaruhi order lama.
func (os *OrderService) CreateOrder(customer models.User, restaurantID uint, items []OrderItemInput) (models.Order, error) {
	var restaurant models.Restaurant
	if err := os.DB.Preload("Menu").First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrRestaurantNotFound
		}
		return models.Order{}, err
	}

	total, lines, err := priceOrder(restaurant.Menu, items)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		CustomerID:   &customer.ID,
		RestaurantID: &restaurant.ID,
		Items:        lines,
		Total:        total,
		Status:       models.StatusPending,
	}
	if err := os.DB.Create(&order).Error; err != nil {
		return models.Order{}, err
	}
	order.Restaurant = &restaurant

	utils.InfoLogger.Printf("Order #%d created for restaurant %d, total %.2f", order.ID, restaurant.ID, total)

	// Persist dulu, baru publish: subscriber tidak boleh melihat event untuk
	// state yang belum tersimpan.
	os.Hub.Publish(events.TopicPendingOrder, events.PendingOrder{
		Order:   order,
		OwnerID: restaurant.OwnerID,
	})
	return order, nil
}

// priceOrder menghitung total order dari menu restoran.
// Per baris: harga dasar dish, plus extra option. Kalau option punya extra
// langsung, itu yang dipakai dan choices tidak dilihat; kalau tidak, extra
// diambil dari choice yang namanya cocok. Nama option/choice yang tidak
// dikenal diabaikan tanpa error. Dish yang tidak ada di menu membatalkan
// seluruh order.
func priceOrder(menu []models.Dish, items []OrderItemInput) (float64, []models.OrderItem, error) {
	dishByID := make(map[uint]models.Dish, len(menu))
	for _, d := range menu {
		dishByID[d.ID] = d
	}

	var total float64
	lines := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		dish, ok := dishByID[item.DishID]
		if !ok {
			return 0, nil, ErrDishNotFound
		}

		lineTotal := dish.Price
		for _, sel := range item.Options {
			opt := findOption(dish.Options, sel.Name)
			if opt == nil {
				continue
			}
			if opt.Extra != nil && *opt.Extra != 0 {
				lineTotal += *opt.Extra
				continue
			}
			if choice := findChoice(opt.Choices, sel.Choice); choice != nil && choice.Extra != nil {
				lineTotal += *choice.Extra
			}
		}

		total += lineTotal
		lines = append(lines, models.OrderItem{
			DishID:  dish.ID,
			Options: item.Options,
		})
	}
	return total, lines, nil
}

func findOption(options []models.DishOption, name string) *models.DishOption {
	for i := range options {
		if options[i].Name == name {
			return &options[i]
		}
	}
	return nil
}

func findChoice(choices []models.DishChoice, name string) *models.DishChoice {
	for i := range choices {
		if choices[i].Name == name {
			return &choices[i]
		}
	}
	return nil
}

// CanSeeOrder: satu order hanya terlihat oleh customer-nya, driver-nya, atau
// owner restorannya, sesuai role masing-masing. Role lain tidak saling
// meminjam jalur akses.
func CanSeeOrder(user models.User, order models.Order) bool {
	switch user.Role {
	case models.RoleClient:
		return order.CustomerID != nil && *order.CustomerID == user.ID
	case models.RoleDelivery:
		return order.DriverID != nil && *order.DriverID == user.ID
	case models.RoleOwner:
		return order.Restaurant != nil && order.Restaurant.OwnerID == user.ID
	}
	return false
}

// GetOrders mengembalikan daftar order sesuai role si pemanggil.
func (os *OrderService) GetOrders(user models.User, status *models.OrderStatus) ([]models.Order, error) {
	query := os.DB.Preload("Items").Preload("Restaurant")

	switch user.Role {
	case models.RoleClient:
		query = query.Where("customer_id = ?", user.ID)
	case models.RoleDelivery:
		query = query.Where("driver_id = ?", user.ID)
	case models.RoleOwner:
		query = query.
			Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
			Where("restaurants.owner_id = ?", user.ID)
	default:
		return nil, ErrCantSeeOrder
	}

	if status != nil {
		query = query.Where("orders.status = ?", *status)
	}

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder mengembalikan satu order; ditolak kalau pemanggil tidak berhak
// melihatnya.
func (os *OrderService) GetOrder(user models.User, orderID uint) (models.Order, error) {
	var order models.Order
	err := os.DB.Preload("Restaurant").Preload("Items").Preload("Items.Dish").First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	if !CanSeeOrder(user, order) {
		return models.Order{}, ErrCantSeeOrder
	}
	return order, nil
}

// EditOrder mengubah status order. Visibility dicek dulu, baru tabel
// role-transisi. Setiap perubahan yang berhasil disiarkan ke topic update;
// owner yang menandai Cooked juga memicu broadcast ke para kurir.
func (os *OrderService) EditOrder(user models.User, orderID uint, status models.OrderStatus) (models.Order, error) {
	var order models.Order
	if err := os.DB.Preload("Restaurant").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	if !CanSeeOrder(user, order) {
		return models.Order{}, ErrCantSeeOrder
	}
	if !roleMayTarget(user.Role, status) {
		return models.Order{}, ErrCantEditOrder
	}

	if err := os.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("status", status).Error; err != nil {
		return models.Order{}, err
	}
	order.Status = status

	utils.InfoLogger.Printf("Order #%d status changed to %s by user %d (%s)", order.ID, status, user.ID, user.Role)

	if user.Role == models.RoleOwner && status == models.StatusCooked {
		os.Hub.Publish(events.TopicCookedOrder, order)
	}
	os.Hub.Publish(events.TopicOrderUpdate, order)
	return order, nil
}

// TakeOrder memasangkan kurir ke order yang belum punya driver. Hanya
// berhasil sekali; percobaan kedua ditolak dengan Conflict dan tidak
// memicu event apa pun.
func (os *OrderService) TakeOrder(driver models.User, orderID uint) (models.Order, error) {
	var order models.Order
	if err := os.DB.Preload("Restaurant").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, err
	}

	if order.DriverID != nil {
		return models.Order{}, ErrDriverAssigned
	}

	if err := os.DB.Model(&models.Order{}).Where("id = ?", order.ID).
		Update("driver_id", driver.ID).Error; err != nil {
		return models.Order{}, err
	}
	order.DriverID = &driver.ID
	order.Driver = &driver

	utils.InfoLogger.Printf("Order #%d taken by driver %d", order.ID, driver.ID)

	os.Hub.Publish(events.TopicOrderUpdate, order)
	return order, nil
}
