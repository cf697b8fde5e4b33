package e2e

import (
	"github.com/cucumber/godog"

	"notely/e2e/steps/admin"
	"notely/e2e/steps/auth"
	"notely/e2e/steps/common"
	"notely/e2e/steps/notes"
)

// RegisterSteps registers all step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	common.RegisterSteps(ctx, tc)
	auth.RegisterSteps(ctx, tc)
	notes.RegisterSteps(ctx, tc)
	admin.RegisterSteps(ctx, tc)
}
