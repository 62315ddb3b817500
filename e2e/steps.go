package e2e

import (
	"github.com/cucumber/godog"

	"pezkuwi/e2e/steps/citizen"
	"pezkuwi/e2e/steps/common"
	"pezkuwi/e2e/steps/ratelimit"
)

// RegisterSteps registers all step definitions from modular packages
func RegisterSteps(ctx *godog.ScenarioContext, tc *TestContext) {
	// Register common steps (background, generic requests, assertions)
	common.RegisterSteps(ctx, tc)

	// Register account, governance and education steps
	citizen.RegisterSteps(ctx, tc)

	// Register rate limiting steps
	ratelimit.RegisterSteps(ctx, tc)
}
