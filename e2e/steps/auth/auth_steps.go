package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	authmodels "notely/internal/auth/models"
	authservice "notely/internal/auth/service"
	"notely/internal/auth/store/session"
	"notely/pkg/testutil/fakeapi"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	API() *fakeapi.Server
	Auth() *authservice.Service
	Sessions() session.Store
	SetLastError(err error)
	UnauthorizedHooks() int
	AdvanceServerClock(d time.Duration)
}

// RegisterSteps registers authentication-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &authSteps{tc: tc}

	// Login steps
	ctx.Step(`^I sign in as "([^"]*)" with password "([^"]*)"$`, steps.signIn)
	ctx.Step(`^I sign in with the demo account "([^"]*)"$`, steps.signInDemo)
	ctx.Step(`^I am signed in as "([^"]*)"$`, steps.givenSignedIn)
	ctx.Step(`^I sign out$`, steps.signOut)
	ctx.Step(`^I refresh my profile$`, steps.refreshProfile)
	ctx.Step(`^I restore my session$`, steps.restoreSession)

	// Token lifetime
	ctx.Step(`^the API issues tokens as if it were (\d+) hours ago$`, steps.issueTokensInThePast)

	// Session assertions
	ctx.Step(`^the stored session should belong to "([^"]*)"$`, steps.storedSessionBelongsTo)
	ctx.Step(`^the stored session should be an? (admin|member) of "([^"]*)"$`, steps.storedSessionRole)
	ctx.Step(`^no session should be stored$`, steps.noSessionStored)
	ctx.Step(`^the stored plan should be "([^"]*)"$`, steps.storedPlanShouldBe)
	ctx.Step(`^the login prompt should have been shown (\d+) times?$`, steps.loginPromptShown)
}

type authSteps struct {
	tc TestContext
}

func (s *authSteps) signIn(ctx context.Context, email, password string) error {
	_, err := s.tc.Auth().Login(ctx, email, password)
	s.tc.SetLastError(err)
	return nil
}

func (s *authSteps) signInDemo(ctx context.Context, email string) error {
	account, ok := authmodels.FindDemoAccount(email)
	if !ok {
		return fmt.Errorf("%s is not a demo account", email)
	}
	return s.signIn(ctx, account.Email, authmodels.DemoPassword)
}

func (s *authSteps) givenSignedIn(ctx context.Context, email string) error {
	if _, err := s.tc.Auth().Login(ctx, email, authmodels.DemoPassword); err != nil {
		return fmt.Errorf("sign in as %s: %w", email, err)
	}
	s.tc.API().ResetRequests()
	return nil
}

func (s *authSteps) signOut(ctx context.Context) error {
	s.tc.SetLastError(s.tc.Auth().Logout(ctx))
	return nil
}

func (s *authSteps) refreshProfile(ctx context.Context) error {
	_, err := s.tc.Auth().Refresh(ctx)
	s.tc.SetLastError(err)
	return nil
}

func (s *authSteps) restoreSession(ctx context.Context) error {
	_, err := s.tc.Auth().Restore(ctx)
	s.tc.SetLastError(err)
	return nil
}

func (s *authSteps) issueTokensInThePast(ctx context.Context, hours int) error {
	s.tc.AdvanceServerClock(-time.Duration(hours) * time.Hour)
	return nil
}

func (s *authSteps) stored(ctx context.Context) (*authmodels.Session, error) {
	sess, err := s.tc.Sessions().Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil, errors.New("no session is stored")
	}
	return sess, err
}

func (s *authSteps) storedSessionBelongsTo(ctx context.Context, email string) error {
	sess, err := s.stored(ctx)
	if err != nil {
		return err
	}
	if sess.Token == "" {
		return errors.New("stored session has no token")
	}
	if sess.User == nil || sess.User.Email != email {
		return fmt.Errorf("stored session belongs to %+v, want %s", sess.User, email)
	}
	return nil
}

func (s *authSteps) storedSessionRole(ctx context.Context, role, tenant string) error {
	sess, err := s.stored(ctx)
	if err != nil {
		return err
	}
	if string(sess.User.Role) != role {
		return fmt.Errorf("stored role is %s, want %s", sess.User.Role, role)
	}
	if sess.User.Tenant.Name != tenant {
		return fmt.Errorf("stored tenant is %s, want %s", sess.User.Tenant.Name, tenant)
	}
	return nil
}

func (s *authSteps) noSessionStored(ctx context.Context) error {
	sess, err := s.tc.Sessions().Load(ctx)
	if errors.Is(err, session.ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("expected no session but found one for %s", sess.User.Email)
}

func (s *authSteps) storedPlanShouldBe(ctx context.Context, plan string) error {
	sess, err := s.stored(ctx)
	if err != nil {
		return err
	}
	if string(sess.User.Tenant.Plan) != plan {
		return fmt.Errorf("stored plan is %s, want %s", sess.User.Tenant.Plan, plan)
	}
	return nil
}

func (s *authSteps) loginPromptShown(ctx context.Context, want int) error {
	if got := s.tc.UnauthorizedHooks(); got != want {
		return fmt.Errorf("login prompt shown %d times, want %d", got, want)
	}
	return nil
}
