package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio/api/models"
	"portfolio/api/utils"
)

type AuthHandlers struct {
	Passcode *utils.PasscodeChecker
	JWT      *utils.JWTManager
}

func NewAuthHandlers(passcode *utils.PasscodeChecker, jwt *utils.JWTManager) *AuthHandlers {
	return &AuthHandlers{Passcode: passcode, JWT: jwt}
}

// Login exchanges the blog admin passcode for a bearer token.
func (h *AuthHandlers) Login(c *gin.Context) {
	if !h.Passcode.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "BLOG_ADMIN_PASS not set"})
		return
	}

	var req models.AuthRequest
	// A missing or malformed body is treated as an empty passcode.
	_ = c.ShouldBindJSON(&req)

	if !h.Passcode.Check(req.Passcode) {
		log.Warn().Str("client_ip", c.ClientIP()).Msg("blog admin login rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong passcode"})
		return
	}

	token, err := h.JWT.GenerateAdminToken()
	if err != nil {
		log.Error().Err(err).Msg("failed to issue admin token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
