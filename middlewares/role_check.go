package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/danuartha/delivery-app/models"
	"github.com/danuartha/delivery-app/utils"
)

// ErrNoPermission dipakai untuk semua penolakan guard. Pesannya sengaja satu
// macam: caller tidak boleh bisa membedakan "tidak login" dan "role salah".
var ErrNoPermission = &PermissionError{"you do not have permission"}

type PermissionError struct {
	Message string
}

func (e *PermissionError) Error() string {
	return e.Message
}

// RequireRoles menolak request yang principal-nya tidak punya salah satu role
// yang dideklarasikan. models.RoleAny meloloskan semua user yang login.
// Route tanpa middleware ini berarti operasi publik.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
			c.Abort()
			return
		}

		for _, role := range roles {
			if role == models.RoleAny || role == user.Role {
				c.Next()
				return
			}
		}

		utils.RespondError(c, http.StatusForbidden, ErrNoPermission)
		c.Abort()
	}
}
