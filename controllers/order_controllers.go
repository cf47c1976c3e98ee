package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/delivery-app/middlewares"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/services"
	"github.com/danuartha/delivery-app/utils"
)

type OrderController struct {
	Orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{Orders: orders}
}

// respondOrderError memetakan error service ke status HTTP. Error yang tidak
// dikenal tidak bocor ke caller, diganti pesan generik per operasi.
func respondOrderError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrRestaurantNotFound),
		errors.Is(err, services.ErrDishNotFound),
		errors.Is(err, services.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, services.ErrCantSeeOrder),
		errors.Is(err, services.ErrCantEditOrder):
		utils.RespondError(c, http.StatusForbidden, err)
	case errors.Is(err, services.ErrDriverAssigned):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("order operation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errors.New(fallback))
	}
}

// CreateOrder -> customer membuat order baru
func (oc *OrderController) CreateOrder(c *gin.Context) {
	customer, _ := middlewares.CurrentUser(c)

	var req struct {
		RestaurantID uint                      `json:"restaurant_id" binding:"required"`
		Items        []services.OrderItemInput `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.CreateOrder(customer, req.RestaurantID, req.Items)
	if err != nil {
		respondOrderError(c, err, "could not create order")
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrders -> daftar order sesuai role, opsional filter ?status=
func (oc *OrderController) GetOrders(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)

	var status *models.OrderStatus
	if raw := c.Query("status"); raw != "" {
		s := models.OrderStatus(raw)
		if !models.ValidStatus(s) {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status"))
			return
		}
		status = &s
	}

	orders, err := oc.Orders.GetOrders(user, status)
	if err != nil {
		respondOrderError(c, err, "could not get orders")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetOrderByID -> detail satu order, dibatasi canSeeOrder
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Orders.GetOrder(user, uint(id))
	if err != nil {
		respondOrderError(c, err, "could not load order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// EditOrder -> owner/driver mengubah status order
func (oc *OrderController) EditOrder(c *gin.Context) {
	user, _ := middlewares.CurrentUser(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	var req struct {
		Status models.OrderStatus `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if !models.ValidStatus(req.Status) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status"))
		return
	}

	order, err := oc.Orders.EditOrder(user, uint(id), req.Status)
	if err != nil {
		respondOrderError(c, err, "could not edit order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order updated", order)
}

// TakeOrder -> kurir mengambil order yang belum punya driver
func (oc *OrderController) TakeOrder(c *gin.Context) {
	driver, _ := middlewares.CurrentUser(c)
	id, _ := strconv.Atoi(c.Param("order_id"))

	order, err := oc.Orders.TakeOrder(driver, uint(id))
	if err != nil {
		respondOrderError(c, err, "could not take order")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order taken", order)
}
