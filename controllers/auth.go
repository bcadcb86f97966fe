package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kando-edu/piar-api/config"
	"github.com/kando-edu/piar-api/models"
	"github.com/kando-edu/piar-api/utils"
	"github.com/kando-edu/piar-api/validators"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	db     *gorm.DB
	mailer utils.Mailer
	env    *config.Env
}

type AuthResponse struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func NewAuthController(db *gorm.DB, mailer utils.Mailer, env *config.Env) *AuthController {
	return &AuthController{
		db:     db,
		mailer: mailer,
		env:    env,
	}
}

// sendResponse is a helper function to send consistent JSON responses
func (ac *AuthController) sendResponse(c *gin.Context, status int, message string, data interface{}, err interface{}) {
	c.JSON(status, AuthResponse{
		Status:  status,
		Message: message,
		Data:    data,
		Error:   err,
	})
}

const credencialesInvalidas = "Código de usuario, contraseña o código de institución incorrectos"

// userProfile is the redacted account view returned to clients. The
// password hash never leaves this package.
func userProfile(user *models.Usuario) map[string]interface{} {
	return map[string]interface{}{
		"cedula":                user.Cedula,
		"codigo_usuario":        user.CodigoUsuario,
		"nombres":               user.Nombres,
		"apellidos":             user.Apellidos,
		"email":                 user.Email,
		"telefono":              user.Telefono,
		"codigo_institucion":    user.CodigoInstitucion,
		"debe_cambiar_password": user.DebeCambiarPassword,
	}
}

// Login authenticates the (user code, password, institution code) triple and
// issues a session token.
func (ac *AuthController) Login(c *gin.Context) {
	req, ok := validators.ValidateLoginRequest(c)
	if !ok {
		return
	}

	// Start database transaction
	tx := ac.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var user models.Usuario
	if err := tx.Where("codigo_usuario = ? AND codigo_institucion = ? AND estado = ?",
		req.UserCode, req.Institution, true).First(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same message as a wrong password so accounts cannot be enumerated.
			ac.sendResponse(c, http.StatusUnauthorized, "Login failed", nil, map[string]string{
				"message": credencialesInvalidas,
			})
			return
		}
		ac.sendResponse(c, http.StatusInternalServerError, "Login failed", nil, "Database error")
		return
	}

	now := time.Now()

	// A locked account rejects before the password check and consumes no attempt.
	if user.Bloqueado(now) {
		tx.Rollback()
		ac.sendResponse(c, http.StatusLocked, "Login failed", nil, map[string]string{
			"message": "Usuario bloqueado temporalmente. Intente más tarde",
		})
		return
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if !ac.registerFailedAttempt(tx, &user, now) {
			tx.Rollback()
			ac.sendResponse(c, http.StatusInternalServerError, "Login failed", nil, "Failed to update login attempts")
			return
		}
		if err := tx.Commit().Error; err != nil {
			ac.sendResponse(c, http.StatusInternalServerError, "Login failed", nil, "Failed to commit transaction")
			return
		}
		ac.sendResponse(c, http.StatusUnauthorized, "Login failed", nil, map[string]string{
			"message": credencialesInvalidas,
		})
		return
	}

	// Successful login resets the lockout bookkeeping
	if err := tx.Model(&user).Updates(map[string]interface{}{
		"intentos_fallidos": 0,
		"bloqueado_hasta":   nil,
		"ultimo_acceso":     now,
	}).Error; err != nil {
		tx.Rollback()
		ac.sendResponse(c, http.StatusInternalServerError, "Login failed", nil, "Failed to update user")
		return
	}

	token, err := utils.SignSessionToken(&user, ac.env.JWTSecret, time.Duration(ac.env.JWTExpiryHours)*time.Hour)
	if err != nil {
		tx.Rollback()
		ac.sendResponse(c, http.StatusInternalServerError, "Login failed", nil, "Failed to create session token")
		return
	}

	// Commit transaction
	if err := tx.Commit().Error; err != nil {
		ac.sendResponse(c, http.StatusInternalServerError, "Login failed", nil, "Failed to commit transaction")
		return
	}

	ac.sendResponse(c, http.StatusOK, "Inicio de sesión exitoso", map[string]interface{}{
		"token": token,
		"user":  userProfile(&user),
	}, nil)
}

// registerFailedAttempt counts a wrong password and applies the timed
// lockout when the configured threshold is reached. The increment happens
// in SQL so two racing failures are both counted.
func (ac *AuthController) registerFailedAttempt(tx *gorm.DB, user *models.Usuario, now time.Time) bool {
	if err := tx.Model(&models.Usuario{}).Where("cedula = ?", user.Cedula).
		UpdateColumn("intentos_fallidos", gorm.Expr("intentos_fallidos + 1")).Error; err != nil {
		return false
	}

	var updated models.Usuario
	if err := tx.Select("intentos_fallidos").Where("cedula = ?", user.Cedula).First(&updated).Error; err != nil {
		return false
	}

	if updated.IntentosFallidos >= ac.env.LockoutThreshold {
		hasta := now.Add(time.Duration(ac.env.LockoutMinutes) * time.Minute)
		if err := tx.Model(&models.Usuario{}).Where("cedula = ?", user.Cedula).
			Update("bloqueado_hasta", hasta).Error; err != nil {
			return false
		}
	}

	return true
}

// RecoverPassword issues a single-use recovery token and mails the reset
// link. The response is identical whether or not the email exists.
func (ac *AuthController) RecoverPassword(c *gin.Context) {
	req, ok := validators.ValidateRecoverPasswordRequest(c)
	if !ok {
		return
	}

	const accepted = "Si el correo está registrado, se ha enviado un enlace de recuperación"

	var user models.Usuario
	if err := ac.db.Where("email = ? AND estado = ?", req.Email, true).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("recover-password: no account for %s", req.Email)
			ac.sendResponse(c, http.StatusOK, accepted, nil, nil)
			return
		}
		ac.sendResponse(c, http.StatusInternalServerError, "Recovery failed", nil, "Database error")
		return
	}

	raw, selector, verifierHash, err := utils.GenerateResetToken()
	if err != nil {
		ac.sendResponse(c, http.StatusInternalServerError, "Recovery failed", nil, "Failed to generate token")
		return
	}

	tx := ac.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	// At most one active token per email: issuing invalidates the old ones.
	if err := tx.Where("email = ?", user.Email).Delete(&models.PasswordReset{}).Error; err != nil {
		tx.Rollback()
		ac.sendResponse(c, http.StatusInternalServerError, "Recovery failed", nil, "Failed to clear previous tokens")
		return
	}

	reset := models.PasswordReset{
		Email:        user.Email,
		Selector:     selector,
		VerifierHash: verifierHash,
		ExpiresAt:    time.Now().Add(time.Duration(ac.env.ResetTokenExpMinutes) * time.Minute),
	}

	if err := tx.Create(&reset).Error; err != nil {
		tx.Rollback()
		ac.sendResponse(c, http.StatusInternalServerError, "Recovery failed", nil, "Failed to store token")
		return
	}

	resetLink := strings.TrimSuffix(ac.env.FrontendBaseURL, "/") + "/reset-password?token=" + raw
	subject, html := utils.BuildRecoveryEmail(user.Nombres, user.Apellidos, resetLink, ac.env.ResetTokenExpMinutes)

	// Send before commit: a delivery failure must not leave a live token
	// nobody received.
	if err := ac.mailer.Send(c.Request.Context(), user.Email, subject, html); err != nil {
		tx.Rollback()
		log.Printf("recover-password: sending mail to %s: %v", user.Email, err)
		ac.sendResponse(c, http.StatusInternalServerError, "Recovery failed", nil, "Error enviando el correo de recuperación")
		return
	}

	if err := tx.Commit().Error; err != nil {
		ac.sendResponse(c, http.StatusInternalServerError, "Recovery failed", nil, "Failed to commit transaction")
		return
	}

	ac.sendResponse(c, http.StatusOK, accepted, nil, nil)
}

// ResetPassword exchanges a valid recovery token for a password change. The
// token is claimed with a conditional update so it redeems exactly once.
func (ac *AuthController) ResetPassword(c *gin.Context) {
	req, ok := validators.ValidateResetPasswordRequest(c)
	if !ok {
		return
	}

	selector, verifier, err := utils.SplitResetToken(req.Token)
	if err != nil {
		ac.sendResponse(c, http.StatusBadRequest, "Reset failed", nil, map[string]string{
			"message": "Token inválido o expirado",
		})
		return
	}

	now := time.Now()

	tx := ac.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var reset models.PasswordReset
	if err := tx.Where("selector = ?", selector).First(&reset).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ac.sendResponse(c, http.StatusBadRequest, "Reset failed", nil, map[string]string{
				"message": "Token inválido o expirado",
			})
			return
		}
		ac.sendResponse(c, http.StatusInternalServerError, "Reset failed", nil, "Database error")
		return
	}

	if reset.Used || reset.Expirado(now) || !utils.VerifyResetVerifier(verifier, reset.VerifierHash) {
		tx.Rollback()
		ac.sendResponse(c, http.StatusBadRequest, "Reset failed", nil, map[string]string{
			"message": "Token inválido o expirado",
		})
		return
	}

	// Same estado predicate as issuance: a disabled account cannot reset.
	var user models.Usuario
	if err := tx.Where("email = ? AND estado = ?", reset.Email, true).First(&user).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ac.sendResponse(c, http.StatusNotFound, "Reset failed", nil, map[string]string{
				"message": "Usuario no encontrado",
			})
			return
		}
		ac.sendResponse(c, http.StatusInternalServerError, "Reset failed", nil, "Database error")
		return
	}

	// Claim the token. Zero rows means a concurrent request got here first
	// or the token just expired.
	claim := tx.Model(&models.PasswordReset{}).
		Where("id = ? AND used = ? AND expires_at > ?", reset.ID, false, now).
		Update("used", true)
	if claim.Error != nil {
		tx.Rollback()
		ac.sendResponse(c, http.StatusInternalServerError, "Reset failed", nil, "Database error")
		return
	}
	if claim.RowsAffected == 0 {
		tx.Rollback()
		ac.sendResponse(c, http.StatusBadRequest, "Reset failed", nil, map[string]string{
			"message": "Token inválido o expirado",
		})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		tx.Rollback()
		ac.sendResponse(c, http.StatusInternalServerError, "Reset failed", nil, "Failed to process password")
		return
	}

	if err := tx.Model(&user).Updates(map[string]interface{}{
		"password_hash":         string(hashed),
		"debe_cambiar_password": false,
	}).Error; err != nil {
		tx.Rollback()
		ac.sendResponse(c, http.StatusInternalServerError, "Reset failed", nil, "Failed to update password")
		return
	}

	// Password change and token claim commit together or not at all.
	if err := tx.Commit().Error; err != nil {
		ac.sendResponse(c, http.StatusInternalServerError, "Reset failed", nil, "Failed to commit transaction")
		return
	}

	ac.sendResponse(c, http.StatusOK, "Contraseña actualizada correctamente", nil, nil)
}

// AuthMiddleware verifies the Bearer session token on protected routes and
// exposes the identity claims to downstream handlers.
func (ac *AuthController) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, AuthResponse{
				Status:  http.StatusUnauthorized,
				Message: "Authentication required",
				Error:   "Missing bearer token",
			})
			return
		}

		claims, err := utils.VerifySessionToken(strings.TrimPrefix(header, "Bearer "), ac.env.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, AuthResponse{
				Status:  http.StatusUnauthorized,
				Message: "Authentication failed",
				Error:   "Invalid or expired session token",
			})
			return
		}

		c.Set("claims", claims)
		c.Set("cedula", claims.Cedula)

		c.Next()
	}
}
