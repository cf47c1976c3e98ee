package middlewares

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

// ContextUserKey adalah key context tempat principal yang sudah di-resolve disimpan.
const ContextUserKey = "user"

// AuthMiddleware men-decode token, memuat user dari DB, lalu menaruhnya di
// context request. Token hilang/rusak tidak langsung ditolak di sini:
// route publik tetap jalan tanpa user, dan route yang butuh role akan
// ditolak oleh RequireRoles karena context-nya kosong.
func AuthMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil || claims == nil || claims.UserID == 0 {
			c.Next()
			return
		}

		// Role dan status user bisa berubah setelah token diterbitkan,
		// jadi user selalu dimuat ulang dari DB per request.
		var user models.User
		if err := db.First(&user, claims.UserID).Error; err != nil {
			c.Next()
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// CurrentUser mengambil principal dari context. ok == false berarti request
// tidak membawa kredensial yang valid.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, exists := c.Get(ContextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}

// bearerToken membaca token dari Authorization header, atau dari query param
// untuk koneksi websocket (browser tidak bisa set header saat upgrade).
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}
