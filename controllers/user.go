package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kando-edu/piar-api/models"
	"gorm.io/gorm"
)

type UserController struct {
	db *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{
		db: db,
	}
}

// GetCurrentUser returns the redacted profile of the authenticated account.
func (uc *UserController) GetCurrentUser(c *gin.Context) {
	cedula, exists := c.Get("cedula")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  http.StatusUnauthorized,
			"message": "Not authenticated",
			"error":   "User not found in context",
		})
		return
	}

	var user models.Usuario
	if err := uc.db.Where("cedula = ?", cedula).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"status":  http.StatusNotFound,
				"message": "User not found",
				"error":   "User does not exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  http.StatusInternalServerError,
			"message": "Failed to fetch user",
			"error":   "Database error",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  http.StatusOK,
		"message": "User details retrieved",
		"data": map[string]interface{}{
			"user": userProfile(&user),
		},
	})
}
