package services

import (
	"errors"
	"time"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

var ErrNotRestaurantOwner = errors.New("you are not allowed to do this")

// PaymentService mencatat pembelian promosi dan membersihkan promosi yang
// sudah lewat masa berlakunya.
type PaymentService struct {
	DB        *gorm.DB
	scheduler gocron.Scheduler
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

// CreatePayment menyimpan transaksi promosi dan langsung menandai restoran
// sebagai promoted selama 7 hari.
func (ps *PaymentService) CreatePayment(owner models.User, transactionID string, restaurantID uint) (models.Payment, error) {
	var restaurant models.Restaurant
	if err := ps.DB.First(&restaurant, restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Payment{}, ErrRestaurantNotFound
		}
		return models.Payment{}, err
	}
	if restaurant.OwnerID != owner.ID {
		return models.Payment{}, ErrNotRestaurantOwner
	}

	payment := models.Payment{
		TransactionID: transactionID,
		UserID:        owner.ID,
		RestaurantID:  restaurant.ID,
	}

	until := time.Now().AddDate(0, 0, 7)
	err := ps.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}
		return tx.Model(&restaurant).Updates(map[string]interface{}{
			"is_promoted":    true,
			"promoted_until": until,
		}).Error
	})
	if err != nil {
		return models.Payment{}, err
	}

	utils.InfoLogger.Printf("Restaurant %d promoted until %s (payment %s)", restaurant.ID, until.Format(time.RFC3339), transactionID)
	return payment, nil
}

// GetPayments mengembalikan semua payment milik satu user.
func (ps *PaymentService) GetPayments(user models.User) ([]models.Payment, error) {
	var payments []models.Payment
	if err := ps.DB.Where("user_id = ?", user.ID).Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// StartPromotionSweeper menjadwalkan pembersihan promosi kedaluwarsa tiap
// tengah malam.
func (ps *PaymentService) StartPromotionSweeper() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(0, 0, 0),
			),
		),
		gocron.NewTask(ps.ClearExpiredPromotions),
	)
	if err != nil {
		return err
	}
	s.Start()
	ps.scheduler = s
	return nil
}

// StopPromotionSweeper menghentikan scheduler; dipakai saat shutdown.
func (ps *PaymentService) StopPromotionSweeper() {
	if ps.scheduler != nil {
		_ = ps.scheduler.Shutdown()
	}
}

// ClearExpiredPromotions mematikan flag promosi pada restoran yang masa
// promosinya sudah lewat.
func (ps *PaymentService) ClearExpiredPromotions() {
	result := ps.DB.Model(&models.Restaurant{}).
		Where("is_promoted = ? AND promoted_until < ?", true, time.Now()).
		Updates(map[string]interface{}{
			"is_promoted":    false,
			"promoted_until": nil,
		})
	if result.Error != nil {
		utils.ErrorLogger.Printf("promotion sweep failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		utils.InfoLogger.Printf("promotion sweep cleared %d restaurants", result.RowsAffected)
	}
}
