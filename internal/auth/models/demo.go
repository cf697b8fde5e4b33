package models

import "notely/internal/auth/email"

// DemoPassword is shared by every seeded demo account.
const DemoPassword = "password"

// DemoAccount is one of the accounts seeded on the demo backend.
type DemoAccount struct {
	Email  string
	Role   Role
	Tenant string
}

// DemoAccounts lists the seeded accounts in display order.
var DemoAccounts = []DemoAccount{
	{Email: "admin@acme.test", Role: RoleAdmin, Tenant: "Acme"},
	{Email: "user@acme.test", Role: RoleMember, Tenant: "Acme"},
	{Email: "admin@globex.test", Role: RoleAdmin, Tenant: "Globex"},
	{Email: "user@globex.test", Role: RoleMember, Tenant: "Globex"},
}

// FindDemoAccount looks up a demo account by email, case-insensitively.
func FindDemoAccount(address string) (DemoAccount, bool) {
	address = email.Normalize(address)
	for _, a := range DemoAccounts {
		if a.Email == address {
			return a, true
		}
	}
	return DemoAccount{}, false
}
