package devapi

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	Password    string `json:"password" binding:"required"`
}

func statusBody(ok bool, message string) gin.H {
	return gin.H{"status": ok, "message": message}
}

// Login handles POST /auth/login.
func (s *Server) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusBody(false, "Invalid request"))
		return
	}

	user, err := s.users.Authenticate(req.Name, req.Password)
	if err != nil {
		s.log.Info("login rejected", zap.String("name", req.Name), zap.Error(err))
		c.JSON(http.StatusUnauthorized, statusBody(false, "Invalid name or password"))
		return
	}

	token, err := s.generateToken(user)
	if err != nil {
		s.log.Error("sign token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, statusBody(false, "Login failed"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// ChangePassword handles POST /users/:id/change-password.
// A wrong old password answers 200 with status=false, as the mobile
// client expects.
func (s *Server) ChangePassword(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, statusBody(false, "Invalid user id"))
		return
	}
	if c.GetInt("user_id") != id {
		c.JSON(http.StatusForbidden, statusBody(false, "Cannot change another user's password"))
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, statusBody(false, "Invalid request"))
		return
	}

	err = s.users.ChangePassword(id, req.OldPassword, req.Password)
	switch {
	case errors.Is(err, errUnknownUser):
		c.JSON(http.StatusNotFound, statusBody(false, "User not found"))
	case errors.Is(err, errWrongPassword):
		c.JSON(http.StatusOK, statusBody(false, "Invalid old password"))
	case err != nil:
		s.log.Error("change password", zap.Int("user_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, statusBody(false, "Password change failed"))
	default:
		c.JSON(http.StatusOK, statusBody(true, "Password changed"))
	}
}

// ListProducts handles GET /products?category_id=&limit=.
func (s *Server) ListProducts(c *gin.Context) {
	categoryID, _ := strconv.Atoi(c.Query("category_id"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	out := make([]product, 0, limit)
	for _, p := range s.products {
		if categoryID > 0 && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
		if len(out) == limit {
			break
		}
	}
	c.JSON(http.StatusOK, out)
}

// GetProduct handles GET /products/:id.
func (s *Server) GetProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, statusBody(false, "Invalid product id"))
		return
	}
	for _, p := range s.products {
		if p.ID == id {
			c.JSON(http.StatusOK, p)
			return
		}
	}
	c.JSON(http.StatusNotFound, statusBody(false, "Product not found"))
}
