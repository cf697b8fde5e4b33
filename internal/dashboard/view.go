package dashboard

import (
	"fmt"
	"io"
	"strings"
	"time"

	admintypes "notely/internal/admin/types"
	authmodels "notely/internal/auth/models"
	notemodels "notely/internal/notes/models"
	notesvc "notely/internal/notes/service"
)

// View is the loaded dashboard. Each goroutine in Load writes its own fields.
type View struct {
	User       *authmodels.User
	Notes      []notemodels.Note
	Usage      string
	NotesError string
	ShowAdmin  bool
	Users      []admintypes.TenantUser
	UsersError string
}

func (v *View) Welcome() string {
	return fmt.Sprintf("Welcome back, %s!", v.User.Email)
}

func (v *View) RoleLine() string {
	return fmt.Sprintf("You're logged in as %s at %s", v.User.Role, v.User.Tenant.Name)
}

// PlanBadge is the upper-cased plan name.
func (v *View) PlanBadge() string {
	return strings.ToUpper(string(v.User.Tenant.Plan))
}

// UpgradeHint is shown to admins of free tenants only.
func (v *View) UpgradeHint() string {
	if v.User.IsAdmin() && v.User.IsFreePlan() {
		return "Free Plan. Run `notely upgrade` to upgrade to Pro."
	}
	return ""
}

// Render writes the view as plain text.
func (v *View) Render(w io.Writer, loc *time.Location) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", v.Welcome())
	fmt.Fprintf(&b, "%s [%s]\n", v.RoleLine(), v.PlanBadge())
	if hint := v.UpgradeHint(); hint != "" {
		fmt.Fprintf(&b, "%s\n", hint)
	}

	if v.ShowAdmin {
		fmt.Fprintf(&b, "\nAdmin Panel - %s (%s), %d users\n", v.User.Tenant.Name, v.User.Tenant.Slug, len(v.Users))
		if v.UsersError != "" {
			fmt.Fprintf(&b, "  %s\n", v.UsersError)
		}
		for _, u := range v.Users {
			fmt.Fprintf(&b, "  %-32s %s\n", u.Email, u.RoleLabel())
		}
	}

	fmt.Fprintf(&b, "\nNotes - %s\n", v.Usage)
	if v.NotesError != "" {
		fmt.Fprintf(&b, "  %s\n", v.NotesError)
	}
	if len(v.Notes) == 0 && v.NotesError == "" {
		b.WriteString("  No notes yet. Run `notely notes create` to add one.\n")
	}
	for _, n := range v.Notes {
		card := notesvc.NewCard(n, loc)
		fmt.Fprintf(&b, "\n  %s  (%s)\n", card.Title, card.ID)
		fmt.Fprintf(&b, "  %s\n", card.Excerpt)
		fmt.Fprintf(&b, "  by %s on %s\n", card.Author, card.Created)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
