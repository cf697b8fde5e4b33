package models

// Role is a user's role within its tenant.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Plan is a tenant's subscription plan.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// FreePlanNoteLimit is the number of notes a free tenant may hold.
// The client only uses it to gate the create flow; the backend enforces it.
const FreePlanNoteLimit = 3
