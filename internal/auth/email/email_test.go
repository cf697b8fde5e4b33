package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "admin@acme.test", Normalize("  Admin@ACME.test "))
	assert.Equal(t, "", Normalize("   "))
}
