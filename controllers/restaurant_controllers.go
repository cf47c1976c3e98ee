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

type RestaurantController struct {
	DB *gorm.DB
}

func NewRestaurantController(db *gorm.DB) *RestaurantController {
	return &RestaurantController{DB: db}
}

// CreateRestaurant -> owner membuat restoran baru
func (rc *RestaurantController) CreateRestaurant(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)

	var req struct {
		Name       string `json:"name" binding:"required"`
		CoverImg   string `json:"cover_img"`
		Address    string `json:"address" binding:"required"`
		CategoryID *uint  `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	restaurant := models.Restaurant{
		Name:       req.Name,
		CoverImg:   req.CoverImg,
		Address:    req.Address,
		OwnerID:    owner.ID,
		CategoryID: req.CategoryID,
	}
	if err := rc.DB.Create(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Restaurant created", restaurant)
}

// GetAllRestaurants -> daftar publik, restoran promoted tampil duluan
func (rc *RestaurantController) GetAllRestaurants(c *gin.Context) {
	var restaurants []models.Restaurant
	if err := rc.DB.Preload("Category").
		Order("is_promoted desc").
		Order("created_at desc").
		Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of restaurants", restaurants)
}

// GetRestaurantByID -> detail restoran beserta menu
func (rc *RestaurantController) GetRestaurantByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("restaurant_id"))

	var restaurant models.Restaurant
	if err := rc.DB.Preload("Menu").Preload("Category").First(&restaurant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant detail", restaurant)
}

// GetMyRestaurants -> restoran milik owner yang login
func (rc *RestaurantController) GetMyRestaurants(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)

	var restaurants []models.Restaurant
	if err := rc.DB.Where("owner_id = ?", owner.ID).Find(&restaurants).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "My restaurants", restaurants)
}

// UpdateRestaurant -> hanya owner restoran itu sendiri
func (rc *RestaurantController) UpdateRestaurant(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)
	id, _ := strconv.Atoi(c.Param("restaurant_id"))

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}
	if restaurant.OwnerID != owner.ID {
		utils.RespondError(c, http.StatusForbidden, middlewares.ErrNoPermission)
		return
	}

	var req struct {
		Name       *string `json:"name"`
		CoverImg   *string `json:"cover_img"`
		Address    *string `json:"address"`
		CategoryID *uint   `json:"category_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		restaurant.Name = *req.Name
	}
	if req.CoverImg != nil {
		restaurant.CoverImg = *req.CoverImg
	}
	if req.Address != nil {
		restaurant.Address = *req.Address
	}
	if req.CategoryID != nil {
		restaurant.CategoryID = req.CategoryID
	}

	if err := rc.DB.Save(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant updated", restaurant)
}

// DeleteRestaurant -> hanya owner restoran itu sendiri
func (rc *RestaurantController) DeleteRestaurant(c *gin.Context) {
	owner, _ := middlewares.CurrentUser(c)
	id, _ := strconv.Atoi(c.Param("restaurant_id"))

	var restaurant models.Restaurant
	if err := rc.DB.First(&restaurant, id).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("restaurant not found"))
		return
	}
	if restaurant.OwnerID != owner.ID {
		utils.RespondError(c, http.StatusForbidden, middlewares.ErrNoPermission)
		return
	}

	if err := rc.DB.Delete(&restaurant).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant deleted", gin.H{"restaurant_id": id})
}
