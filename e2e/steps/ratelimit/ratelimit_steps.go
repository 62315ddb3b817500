package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string, headers map[string]string) error
	GetResponseField(field string) (interface{}, error)
	GetLastResponseStatus() int
	GetLastResponseHeader() http.Header
}

// RegisterSteps registers per-IP rate limiting steps. The server keys
// buckets on the first X-Forwarded-For hop, so each scenario uses its own
// client address.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &ratelimitSteps{tc: tc}

	ctx.Step(`^I am calling from IP "([^"]*)"$`, steps.callingFromIP)
	ctx.Step(`^I GET "([^"]*)" (\d+) times$`, steps.getNTimes)
	ctx.Step(`^at least one request should have been rate limited$`, steps.atLeastOneLimited)
	ctx.Step(`^the limited response should carry a Retry-After header$`, steps.limitedHasRetryAfter)
}

type ratelimitSteps struct {
	tc          TestContext
	currentIP   string
	limited     int
	retryAfter  string
	lastLimited int
}

func (s *ratelimitSteps) callingFromIP(ctx context.Context, ip string) error {
	s.currentIP = ip
	return nil
}

func (s *ratelimitSteps) getNTimes(ctx context.Context, path string, n int) error {
	headers := map[string]string{}
	if s.currentIP != "" {
		headers["X-Forwarded-For"] = s.currentIP
	}
	for i := 0; i < n; i++ {
		if err := s.tc.GET(path, headers); err != nil {
			return err
		}
		if s.tc.GetLastResponseStatus() == http.StatusTooManyRequests {
			s.limited++
			s.lastLimited = i + 1
			s.retryAfter = s.tc.GetLastResponseHeader().Get("Retry-After")
		}
	}
	return nil
}

func (s *ratelimitSteps) atLeastOneLimited(ctx context.Context) error {
	if s.limited == 0 {
		return fmt.Errorf("no request was rate limited")
	}
	return nil
}

func (s *ratelimitSteps) limitedHasRetryAfter(ctx context.Context) error {
	secs, err := strconv.Atoi(s.retryAfter)
	if err != nil || secs < 1 {
		return fmt.Errorf("request %d had Retry-After %q", s.lastLimited, s.retryAfter)
	}
	return nil
}
