package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/middlewares"
	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

// Register membuat akun baru dengan role client/owner/delivery, lalu
// mengirim kode verifikasi via email (fire-and-forget).
func (uc *UserController) Register(c *gin.Context) {
	type request struct {
		Email    string      `json:"email" binding:"required,email"`
		Password string      `json:"password" binding:"required,min=8"`
		Role     models.Role `json:"role" binding:"required"`
	}
	var req request
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Role != models.RoleClient && req.Role != models.RoleOwner && req.Role != models.RoleDelivery {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid role"))
		return
	}

	var exists int64
	uc.DB.Model(&models.User{}).Where("email = ?", req.Email).Count(&exists)
	if exists > 0 {
		utils.RespondError(c, http.StatusConflict, errors.New("there is a user with that email already"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	user := models.User{
		Email:    req.Email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := uc.DB.Create(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	verification := models.Verification{
		Code:   uuid.NewString(),
		UserID: user.ID,
	}
	if err := uc.DB.Create(&verification).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.SendVerificationEmail(user.Email, verification.Code)

	utils.InfoLogger.Printf("New user registered: %s (role=%s)", user.Email, user.Role)

	utils.RespondJSON(c, http.StatusCreated, "User registered", gin.H{
		"user_id": user.ID,
	})
}

// Login mengembalikan JWT kalau email dan password cocok.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var user models.User
	if err := uc.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"role":  user.Role,
	})
}

// GetProfile mengembalikan data principal yang sedang login.
func (uc *UserController) GetProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Profile data", gin.H{
		"id":       user.ID,
		"email":    user.Email,
		"role":     user.Role,
		"verified": user.Verified,
	})
}

// EditProfile mengubah email/password. Ganti email mereset status verified
// dan menerbitkan kode verifikasi baru.
func (uc *UserController) EditProfile(c *gin.Context) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("user not found in context"))
		return
	}

	var req struct {
		Email    *string `json:"email" binding:"omitempty,email"`
		Password *string `json:"password" binding:"omitempty,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Email != nil && *req.Email != user.Email {
		user.Email = *req.Email
		user.Verified = false

		uc.DB.Where("user_id = ?", user.ID).Delete(&models.Verification{})
		verification := models.Verification{
			Code:   uuid.NewString(),
			UserID: user.ID,
		}
		if err := uc.DB.Create(&verification).Error; err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		utils.SendVerificationEmail(user.Email, verification.Code)
	}
	if req.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.RespondError(c, http.StatusInternalServerError, err)
			return
		}
		user.Password = string(hashed)
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profile updated", gin.H{"id": user.ID})
}

// VerifyEmail menukar kode verifikasi dengan status verified.
func (uc *UserController) VerifyEmail(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var verification models.Verification
	if err := uc.DB.Where("code = ?", req.Code).First(&verification).Error; err != nil {
		utils.RespondError(c, http.StatusNotFound, errors.New("verification not found"))
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", verification.UserID).
		Update("verified", true).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	uc.DB.Delete(&verification)

	utils.RespondJSON(c, http.StatusOK, "Email verified", nil)
}
