package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/middlewares"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

type DishController struct {
	DB *gorm.DB
}

func NewDishController(db *gorm.DB) *DishController {
	return &DishController{DB: db}
}

// ownedRestaurant memuat restoran dan memastikan pemanggil adalah ownernya.
func (dc *DishController) ownedRestaurant(c *gin.Context, restaurantID int) (models.Restaurant, bool) {
	owner, _ := middlewares.CurrentUser(c)

	var restaurant models.Restaurant
	if err := dc.DB.First(&restaurant, restaurantID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return models.Restaurant{}, false
	}
	if restaurant.OwnerID != owner.ID {
		utils.RespondError(c, http.StatusForbidden, middlewares.ErrNoPermission)
		return models.Restaurant{}, false
	}
	return restaurant, true
}

// CreateDish -> owner menambahkan menu ke restorannya
func (dc *DishController) CreateDish(c *gin.Context) {
	restaurantID, _ := strconv.Atoi(c.Param("restaurant_id"))
	restaurant, ok := dc.ownedRestaurant(c, restaurantID)
	if !ok {
		return
	}

	var req struct {
		Name        string              `json:"name" binding:"required"`
		Price       float64             `json:"price" binding:"required,gte=0"`
		Description string              `json:"description"`
		Photo       *string             `json:"photo"`
		Options     []models.DishOption `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	dish := models.Dish{
		Name:         req.Name,
		Price:        req.Price,
		Description:  req.Description,
		Photo:        req.Photo,
		RestaurantID: restaurant.ID,
		Options:      req.Options,
	}
	if err := dc.DB.Create(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Dish created", dish)
}

// UpdateDish -> owner mengubah menu miliknya
func (dc *DishController) UpdateDish(c *gin.Context) {
	restaurantID, _ := strconv.Atoi(c.Param("restaurant_id"))
	if _, ok := dc.ownedRestaurant(c, restaurantID); !ok {
		return
	}
	dishID, _ := strconv.Atoi(c.Param("dish_id"))

	var dish models.Dish
	if err := dc.DB.Where("restaurant_id = ?", restaurantID).First(&dish, dishID).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}

	var req struct {
		Name        *string             `json:"name"`
		Price       *float64            `json:"price" binding:"omitempty,gte=0"`
		Description *string             `json:"description"`
		Photo       *string             `json:"photo"`
		Options     []models.DishOption `json:"options"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Price != nil {
		dish.Price = *req.Price
	}
	if req.Description != nil {
		dish.Description = *req.Description
	}
	if req.Photo != nil {
		dish.Photo = req.Photo
	}
	if req.Options != nil {
		dish.Options = req.Options
	}

	if err := dc.DB.Save(&dish).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish updated", dish)
}

// DeleteDish -> owner menghapus menu miliknya
func (dc *DishController) DeleteDish(c *gin.Context) {
	restaurantID, _ := strconv.Atoi(c.Param("restaurant_id"))
	if _, ok := dc.ownedRestaurant(c, restaurantID); !ok {
		return
	}
	dishID, _ := strconv.Atoi(c.Param("dish_id"))

	result := dc.DB.Where("restaurant_id = ?", restaurantID).Delete(&models.Dish{}, dishID)
	if result.Error != nil {
		utils.RespondError(c, http.StatusInternalServerError, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondError(c, http.StatusNotFound, errors.New("dish not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Dish deleted", gin.H{"dish_id": dishID})
}
