package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"notely/internal/platform/config"
	"notely/internal/platform/logger"
)

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown := Setup(context.Background(), config.Client{}, logger.Discard())

	assert.NoError(t, shutdown(context.Background()))
}
