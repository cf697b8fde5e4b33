package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/cucumber/godog"

	"notely/internal/platform/health"
	"notely/internal/platform/httpclient"
	dErrors "notely/pkg/domain-errors"
	"notely/pkg/testutil/fakeapi"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	API() *fakeapi.Server
	Health() *health.Client
	LastError() error
	SetLastError(err error)
	Restart()
}

// RegisterSteps registers common step definitions used across features
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}

	// Background steps
	ctx.Step(`^the notes API is running$`, steps.notesAPIIsRunning)
	ctx.Step(`^I start a new CLI invocation$`, steps.startNewInvocation)

	// Failure injection
	ctx.Step(`^the API rejects the next request with status (\d+) and message "([^"]*)"$`, steps.failNextRequest)

	// Health
	ctx.Step(`^I check the server health$`, steps.checkHealth)

	// Outcome assertions
	ctx.Step(`^the last action should succeed$`, steps.lastActionShouldSucceed)
	ctx.Step(`^the last action should fail with "([^"]*)"$`, steps.lastActionShouldFailWith)

	// Request assertions
	ctx.Step(`^no (GET|POST|PUT|DELETE) request to "([^"]*)" should have been sent$`, steps.noRequestSent)
	ctx.Step(`^(\d+) (GET|POST|PUT|DELETE) requests? to "([^"]*)" should have been sent$`, steps.requestsSent)
	ctx.Step(`^no request should have been sent$`, steps.noRequestsAtAll)
	ctx.Step(`^the last request to "([^"]*)" should carry no authorization header$`, steps.lastRequestWithoutAuth)
	ctx.Step(`^every API request should carry a bearer token$`, steps.everyRequestHasBearer)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) notesAPIIsRunning(ctx context.Context) error {
	s.tc.API().ResetRequests()
	return nil
}

func (s *commonSteps) startNewInvocation(ctx context.Context) error {
	s.tc.Restart()
	return nil
}

func (s *commonSteps) failNextRequest(ctx context.Context, status int, message string) error {
	s.tc.API().FailNext(status, message)
	return nil
}

func (s *commonSteps) checkHealth(ctx context.Context) error {
	status, err := s.tc.Health().Check(ctx)
	s.tc.SetLastError(err)
	if err == nil && !status.Healthy() {
		return fmt.Errorf("server reported status %q", status.Status)
	}
	return nil
}

func (s *commonSteps) lastActionShouldSucceed(ctx context.Context) error {
	if err := s.tc.LastError(); err != nil {
		return fmt.Errorf("expected success but got: %w", err)
	}
	return nil
}

func (s *commonSteps) lastActionShouldFailWith(ctx context.Context, message string) error {
	err := s.tc.LastError()
	if err == nil {
		return fmt.Errorf("expected failure %q but the action succeeded", message)
	}
	if got := userMessage(err); got != message {
		return fmt.Errorf("expected failure %q but got %q", message, got)
	}
	return nil
}

// userMessage is the text the CLI would print for err.
func userMessage(err error) string {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return domainErr.Error()
	}
	return httpclient.ServerMessage(err, err.Error())
}

func (s *commonSteps) noRequestSent(ctx context.Context, method, route string) error {
	return s.requestsSent(ctx, 0, method, route)
}

func (s *commonSteps) requestsSent(ctx context.Context, want int, method, route string) error {
	if got := s.tc.API().Calls(method, route); got != want {
		return fmt.Errorf("expected %d %s %s requests but got %d", want, method, route, got)
	}
	return nil
}

func (s *commonSteps) noRequestsAtAll(ctx context.Context) error {
	if reqs := s.tc.API().Requests(); len(reqs) > 0 {
		return fmt.Errorf("expected no requests but got %d, first %s %s", len(reqs), reqs[0].Method, reqs[0].Path)
	}
	return nil
}

func (s *commonSteps) lastRequestWithoutAuth(ctx context.Context, path string) error {
	reqs := s.tc.API().Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Path != path {
			continue
		}
		if reqs[i].Authorization != "" {
			return fmt.Errorf("request to %s carried %q", path, reqs[i].Authorization)
		}
		return nil
	}
	return fmt.Errorf("no request to %s was recorded", path)
}

func (s *commonSteps) everyRequestHasBearer(ctx context.Context) error {
	for _, r := range s.tc.API().Requests() {
		if !strings.HasPrefix(r.Path, "/api/") || (r.Method == http.MethodPost && r.Path == "/api/auth/login") {
			continue
		}
		if !strings.HasPrefix(r.Authorization, "Bearer ") {
			return fmt.Errorf("%s %s carried no bearer token", r.Method, r.Path)
		}
	}
	return nil
}
