package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLoginRequest(t *testing.T) {
	cases := []struct {
		name  string
		req   LoginRequest
		valid bool
	}{
		{"valid", LoginRequest{UserCode: "DOC", Password: "secret", Institution: "IED001"}, true},
		{"two char user code", LoginRequest{UserCode: "AD", Password: "secret", Institution: "IED001"}, true},
		{"user code too short", LoginRequest{UserCode: "D", Password: "secret", Institution: "IED001"}, false},
		{"user code too long", LoginRequest{UserCode: "DOCE", Password: "secret", Institution: "IED001"}, false},
		{"lowercase user code", LoginRequest{UserCode: "doc", Password: "secret", Institution: "IED001"}, false},
		{"missing password", LoginRequest{UserCode: "DOC", Institution: "IED001"}, false},
		{"institution too short", LoginRequest{UserCode: "DOC", Password: "secret", Institution: "IE"}, false},
		{"institution with symbols", LoginRequest{UserCode: "DOC", Password: "secret", Institution: "IED-001"}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := Validate(tc.req)
			if tc.valid {
				assert.Empty(t, errs)
			} else {
				assert.NotEmpty(t, errs)
			}
		})
	}
}

func TestValidateRecoverPasswordRequest(t *testing.T) {
	assert.Empty(t, Validate(RecoverPasswordRequest{Email: "docente@colegio.edu.co"}))
	assert.NotEmpty(t, Validate(RecoverPasswordRequest{Email: "no-es-correo"}))
	assert.NotEmpty(t, Validate(RecoverPasswordRequest{}))
}

func TestValidateResetPasswordRequest(t *testing.T) {
	token := "0123456789abcdef0123456789abcdef.fedcba9876543210"

	assert.Empty(t, Validate(ResetPasswordRequest{Token: token, NewPassword: "NuevaClave9"}))
	assert.NotEmpty(t, Validate(ResetPasswordRequest{Token: "corto", NewPassword: "NuevaClave9"}))
	assert.NotEmpty(t, Validate(ResetPasswordRequest{Token: token, NewPassword: "corta12"}))
	assert.NotEmpty(t, Validate(ResetPasswordRequest{Token: token}))
}
