package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "notely/pkg/domain-errors"
)

type inviteBody struct {
	Email    string `validate:"required,email,max=255"`
	Role     string `validate:"omitempty,oneof=admin member"`
	TenantID string `validate:"notblank"`
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  inviteBody
		msg  string
	}{
		{"valid", inviteBody{Email: "a@acme.test", Role: "member", TenantID: "t"}, ""},
		{"missing email", inviteBody{TenantID: "t"}, "email is required"},
		{"bad email", inviteBody{Email: "nope", TenantID: "t"}, "email must be a valid email"},
		{"bad role", inviteBody{Email: "a@acme.test", Role: "owner", TenantID: "t"}, "role must be one of [admin member]"},
		{"blank field", inviteBody{Email: "a@acme.test", TenantID: "  "}, "tenant_id must not be blank"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.req)
			if tt.msg == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
			assert.EqualError(t, err, tt.msg)
		})
	}
}

func TestToSnakeCase(t *testing.T) {
	assert.Equal(t, "temporary_password", toSnakeCase("TemporaryPassword"))
	assert.Equal(t, "tenant_id", toSnakeCase("TenantID"))
	assert.Equal(t, "email", toSnakeCase("Email"))
}
