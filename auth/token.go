package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Eyiladeogo/MicroMart/models"
)

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

type VerifyInput struct {
	Token string `json:"token" binding:"required"`
}

func isBlacklisted(db *gorm.DB, jti string) (bool, error) {
	var count int64
	err := db.Model(&models.BlacklistedToken{}).Where("jti = ?", jti).Count(&count).Error
	return count > 0, err
}

func blacklist(db *gorm.DB, claims *Claims) error {
	entry := models.BlacklistedToken{
		JTI:       claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	err := db.Create(&entry).Error
	if err != nil {
		// Blacklisting twice is a no-op, not a failure.
		if listed, checkErr := isBlacklisted(db, claims.ID); checkErr == nil && listed {
			return nil
		}
	}
	return err
}

// POST /token/refresh
//
// Exchanges a valid refresh token for a fresh pair. The used refresh token is
// blacklisted so each one can be redeemed only once.
func RefreshHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RefreshInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		claims, err := ParseTokenOfType(input.Refresh, TokenTypeRefresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
			return
		}

		listed, err := isBlacklisted(db, claims.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check token"})
			return
		}
		if listed {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is blacklisted"})
			return
		}

		tokens, err := IssueTokenPair(claims.UserID, claims.Username, claims.IsStaff)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		if err := blacklist(db, claims); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to rotate token"})
			return
		}

		c.JSON(http.StatusOK, tokens)
	}
}

// POST /token/verify
func VerifyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input VerifyInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		claims, err := ParseToken(input.Token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
			return
		}

		if claims.TokenType == TokenTypeRefresh {
			listed, err := isBlacklisted(db, claims.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check token"})
				return
			}
			if listed {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is blacklisted"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{})
	}
}

// POST /token/blacklist
func BlacklistHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RefreshInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		claims, err := ParseTokenOfType(input.Refresh, TokenTypeRefresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
			return
		}

		if err := blacklist(db, claims); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to blacklist token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{})
	}
}
