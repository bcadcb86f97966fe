package validators

import (
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var upperAlnumRe = regexp.MustCompile(`^[A-Z0-9]+$`)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	_ = validate.RegisterValidation("upperalnum", func(fl validator.FieldLevel) bool {
		return upperAlnumRe.MatchString(fl.Field().String())
	})
}

type ValidationError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Value string `json:"value"`
}

type ValidationResponse struct {
	Errors []ValidationError `json:"errors"`
}

func Validate(data interface{}) []ValidationError {
	var validationErrors []ValidationError

	err := validate.Struct(data)
	if err != nil {
		if errors, ok := err.(validator.ValidationErrors); ok {
			for _, e := range errors {
				validationErrors = append(validationErrors, ValidationError{
					Field: e.Field(),
					Tag:   e.Tag(),
					Value: e.Param(),
				})
			}
		}
	}

	return validationErrors
}

// LoginRequest carries the triple that identifies an account. User and
// institution codes are matched case-sensitively against stored values.
type LoginRequest struct {
	UserCode    string `json:"userCode" validate:"required,min=2,max=3,upperalnum" binding:"required"`
	Password    string `json:"password" validate:"required" binding:"required"`
	Institution string `json:"institution" validate:"required,min=3,max=15,upperalnum" binding:"required"`
}

type RecoverPasswordRequest struct {
	Email string `json:"email" validate:"required,email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" validate:"required,min=32" binding:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8" binding:"required"`
}

func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request payload",
		})
		return false
	}

	if errs := Validate(req); len(errs) > 0 {
		c.JSON(http.StatusBadRequest, ValidationResponse{
			Errors: errs,
		})
		return false
	}

	return true
}

func ValidateLoginRequest(c *gin.Context) (*LoginRequest, bool) {
	var req LoginRequest
	if !bindAndValidate(c, &req) {
		return nil, false
	}
	return &req, true
}

func ValidateRecoverPasswordRequest(c *gin.Context) (*RecoverPasswordRequest, bool) {
	var req RecoverPasswordRequest
	if !bindAndValidate(c, &req) {
		return nil, false
	}
	return &req, true
}

func ValidateResetPasswordRequest(c *gin.Context) (*ResetPasswordRequest, bool) {
	var req ResetPasswordRequest
	if !bindAndValidate(c, &req) {
		return nil, false
	}
	return &req, true
}
