package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/delivery-app/middlewares"
	"github.com/danuartha/delivery-app/services"
	"github.com/danuartha/delivery-app/utils"
)

type PaymentController struct {
	Payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{Payments: payments}
}

// CreatePayment -> owner membeli promosi untuk restorannya
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)

	var req struct {
		TransactionID string `json:"transaction_id" binding:"required"`
		RestaurantID  uint   `json:"restaurant_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	payment, err := pc.Payments.CreatePayment(owner, req.TransactionID, req.RestaurantID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRestaurantNotFound):
			utils.RespondError(c, http.StatusNotFound, err)
		case errors.Is(err, services.ErrNotRestaurantOwner):
			utils.RespondError(c, http.StatusForbidden, err)
		default:
			utils.ErrorLogger.Printf("create payment failed: %v", err)
			utils.RespondError(c, http.StatusInternalServerError, errors.New("could not create payment"))
		}
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Payment created", payment)
}

// GetPayments -> daftar payment milik owner yang login
func (pc *PaymentController) GetPayments(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)

	payments, err := pc.Payments.GetPayments(owner)
	if err != nil {
		utils.ErrorLogger.Printf("load payments failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New("could not load payments"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of payments", payments)
}
