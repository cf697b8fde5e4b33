package admin

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	adminservice "notely/internal/admin"
	authmodels "notely/internal/auth/models"
	tenantservice "notely/internal/tenant/service"
	id "notely/pkg/domain"
	"notely/pkg/testutil/fakeapi"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	API() *fakeapi.Server
	Admin() *adminservice.Service
	Upgrades() *tenantservice.UpgradeService
	SetLastError(err error)
	SetLastInvitePassword(pw string)
	LastInvitePassword() string
}

// RegisterSteps registers admin-related step definitions
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &adminSteps{tc: tc}

	// Tenant user steps
	ctx.Step(`^I load the tenant users$`, steps.loadTenantUsers)
	ctx.Step(`^I invite "([^"]*)" as "([^"]*)"$`, steps.invite)
	ctx.Step(`^I invite "([^"]*)" without a role$`, steps.inviteDefaultRole)

	// Tenant plan steps
	ctx.Step(`^I upgrade my tenant$`, steps.upgradeTenant)
	ctx.Step(`^the tenant "([^"]*)" is already on the pro plan$`, steps.tenantAlreadyPro)

	// Assertions
	ctx.Step(`^the tenant user list should include "([^"]*)" as "([^"]*)"$`, steps.userListShouldInclude)
	ctx.Step(`^the invite should report a temporary password$`, steps.inviteReportsPassword)
	ctx.Step(`^the admin panel should say "([^"]*)"$`, steps.adminPanelShouldSay)
	ctx.Step(`^the tenant "([^"]*)" should be on the "([^"]*)" plan on the server$`, steps.serverPlanShouldBe)
}

type adminSteps struct {
	tc TestContext
}

func (s *adminSteps) loadTenantUsers(ctx context.Context) error {
	s.tc.SetLastError(s.tc.Admin().Load(ctx))
	return nil
}

func (s *adminSteps) invite(ctx context.Context, email, role string) error {
	result, err := s.tc.Admin().Invite(ctx, email, authmodels.Role(role))
	s.tc.SetLastError(err)
	if err == nil {
		s.tc.SetLastInvitePassword(result.TemporaryPassword)
	}
	return nil
}

func (s *adminSteps) inviteDefaultRole(ctx context.Context, email string) error {
	return s.invite(ctx, email, "")
}

func (s *adminSteps) upgradeTenant(ctx context.Context) error {
	_, err := s.tc.Upgrades().Upgrade(ctx)
	s.tc.SetLastError(err)
	return nil
}

func (s *adminSteps) tenantAlreadyPro(ctx context.Context, slug string) error {
	return s.tc.API().SetPlan(id.TenantSlug(slug), authmodels.PlanPro)
}

func (s *adminSteps) userListShouldInclude(ctx context.Context, email, role string) error {
	for _, u := range s.tc.Admin().Users() {
		if u.Email != email {
			continue
		}
		if string(u.Role) != role {
			return fmt.Errorf("%s is listed as %s, want %s", email, u.Role, role)
		}
		return nil
	}
	return fmt.Errorf("%s is not in the tenant user list", email)
}

func (s *adminSteps) inviteReportsPassword(ctx context.Context) error {
	pw := s.tc.LastInvitePassword()
	if pw == "" {
		return fmt.Errorf("invite returned no temporary password")
	}
	want := "User invited successfully! Temporary password: " + pw
	if got := s.tc.Admin().Success(); got != want {
		return fmt.Errorf("admin panel says %q, want %q", got, want)
	}
	return nil
}

func (s *adminSteps) adminPanelShouldSay(ctx context.Context, want string) error {
	if got := s.tc.Admin().Error(); got != want {
		return fmt.Errorf("admin panel error is %q, want %q", got, want)
	}
	return nil
}

func (s *adminSteps) serverPlanShouldBe(ctx context.Context, slug, plan string) error {
	got, ok := s.tc.API().Plan(id.TenantSlug(slug))
	if !ok {
		return fmt.Errorf("tenant %s does not exist", slug)
	}
	if string(got) != plan {
		return fmt.Errorf("tenant %s is on %s, want %s", slug, got, plan)
	}
	return nil
}
