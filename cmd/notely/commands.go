package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	authmodels "notely/internal/auth/models"
	notesservice "notely/internal/notes/service"
	id "notely/pkg/domain"
	dErrors "notely/pkg/domain-errors"
)

type command struct {
	run      func(ctx context.Context, a *app, args []string) error
	fallback string
	// offline commands get only stdout and stderr: no config, session or network.
	offline           bool
	quietUnauthorized bool
	requiresSession   bool
}

var commands = map[string]command{
	"login":     {run: cmdLogin, fallback: "Login failed", quietUnauthorized: true},
	"logout":    {run: cmdLogout, fallback: "Logout failed"},
	"whoami":    {run: cmdWhoami, fallback: "Failed to load user", requiresSession: true},
	"accounts":  {run: cmdAccounts, offline: true},
	"dashboard": {run: cmdDashboard, fallback: "Failed to load dashboard", requiresSession: true},
	"notes":     {run: cmdNotes, fallback: "Notes request failed", requiresSession: true},
	"users":     {run: cmdUsers, fallback: "Users request failed", requiresSession: true},
	"upgrade":   {run: cmdUpgrade, fallback: "Failed to upgrade tenant", requiresSession: true},
	"health":    {run: cmdHealth, fallback: "API is unreachable"},
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("notely "+name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func usage(w io.Writer, text string) error {
	fmt.Fprintln(w, "Usage: notely "+text)
	return errUsage
}

func describeUser(u *authmodels.User) string {
	return fmt.Sprintf("%s (%s at %s, %s plan)", u.Email, u.Role, u.Tenant.Name, u.Tenant.Plan)
}

func cmdLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("login", a.stderr)
	email := fs.String("email", "", "Account email")
	password := fs.String("password", "", "Password (defaults to $NOTELY_PASSWORD)")
	demo := fs.String("demo", "", "Sign in as a demo account, e.g. admin@acme.test")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *demo != "" {
		acct, ok := authmodels.FindDemoAccount(*demo)
		if !ok {
			return dErrors.New(dErrors.CodeInvalidInput,
				fmt.Sprintf("Unknown demo account %q. Run `notely accounts` to list them.", *demo))
		}
		*email = acct.Email
		*password = authmodels.DemoPassword
	}
	if *password == "" {
		*password = os.Getenv("NOTELY_PASSWORD")
	}

	sess, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Logged in as %s\n", describeUser(sess.User))
	return nil
}

func cmdLogout(ctx context.Context, a *app, _ []string) error {
	signedIn := a.auth.IsAuthenticated(ctx)
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	if !signedIn {
		fmt.Fprintln(a.stdout, "Not logged in.")
		return nil
	}
	fmt.Fprintln(a.stdout, "Logged out.")
	return nil
}

func cmdWhoami(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("whoami", a.stderr)
	refresh := fs.Bool("refresh", false, "Fetch the user from the server")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var (
		sess *authmodels.Session
		err  error
	)
	if *refresh {
		sess, err = a.auth.Refresh(ctx)
	} else {
		sess, err = a.auth.Require(ctx)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, describeUser(sess.User))
	if exp, ok := sess.ExpiresAt(); ok {
		fmt.Fprintf(a.stdout, "Session expires %s\n", exp.Local().Format(time.RFC1123))
	}
	return nil
}

func cmdAccounts(_ context.Context, a *app, _ []string) error {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tROLE\tTENANT")
	for _, acct := range authmodels.DemoAccounts {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", acct.Email, acct.Role, acct.Tenant)
	}
	fmt.Fprintf(tw, "\nAll demo accounts use the password %q.\n", authmodels.DemoPassword)
	return tw.Flush()
}

func cmdDashboard(ctx context.Context, a *app, _ []string) error {
	view, err := a.dash.Load(ctx)
	if err != nil {
		return err
	}
	return view.Render(a.stdout, time.Local)
}

func cmdNotes(ctx context.Context, a *app, args []string) error {
	const text = "notes list | show <id> | create --title T --content C | edit <id> [--title T] [--content C] | delete <id>"
	if len(args) == 0 {
		return usage(a.stderr, text)
	}
	switch args[0] {
	case "list", "ls":
		return notesList(ctx, a)
	case "show":
		return withNoteID(a, args[1:], "notes show <id>", func(noteID id.NoteID, _ []string) error {
			return notesShow(ctx, a, noteID)
		})
	case "create", "new":
		return notesCreate(ctx, a, args[1:])
	case "edit":
		return withNoteID(a, args[1:], "notes edit <id> [--title T] [--content C]", func(noteID id.NoteID, rest []string) error {
			return notesEdit(ctx, a, noteID, rest)
		})
	case "delete", "rm":
		return withNoteID(a, args[1:], "notes delete <id>", func(noteID id.NoteID, _ []string) error {
			return notesDelete(ctx, a, noteID)
		})
	default:
		return usage(a.stderr, text)
	}
}

func withNoteID(a *app, args []string, text string, fn func(id.NoteID, []string) error) error {
	if len(args) == 0 {
		return usage(a.stderr, text)
	}
	noteID, err := id.ParseNoteID(args[0])
	if err != nil {
		return err
	}
	return fn(noteID, args[1:])
}

func notesList(ctx context.Context, a *app) error {
	if err := a.notes.Load(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.stdout, a.notes.Usage(a.auth.IsFreePlan(ctx)))
	for _, n := range a.notes.Notes() {
		card := notesservice.NewCard(n, time.Local)
		fmt.Fprintf(a.stdout, "\n%s  (%s)\n%s\nby %s on %s\n", card.Title, card.ID, card.Excerpt, card.Author, card.Created)
	}
	return nil
}

func notesShow(ctx context.Context, a *app, noteID id.NoteID) error {
	n, err := a.notesC.Get(ctx, noteID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s\n%s\n\n%s\n\nby %s, created %s, updated %s\n",
		n.Title, strings.Repeat("=", len([]rune(n.Title))), n.Content, n.AuthorEmail(),
		notesservice.FormatDate(n.CreatedAt, time.Local), notesservice.FormatDate(n.UpdatedAt, time.Local))
	return nil
}

func notesCreate(ctx context.Context, a *app, args []string) error {
	fs := newFlagSet("notes create", a.stderr)
	title := fs.String("title", "", "Note title")
	content := fs.String("content", "", "Note content")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	// The plan gate needs the current count.
	if err := a.notes.Load(ctx); err != nil {
		return err
	}
	if err := a.notes.BeginCreate(ctx); err != nil {
		return err
	}
	n, err := a.notes.Create(ctx, *title, *content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Created note %s\n%s\n", n.ID, a.notes.Usage(a.auth.IsFreePlan(ctx)))
	return nil
}

func notesEdit(ctx context.Context, a *app, noteID id.NoteID, args []string) error {
	fs := newFlagSet("notes edit", a.stderr)
	title := fs.String("title", "", "New title (unchanged when omitted)")
	content := fs.String("content", "", "New content (unchanged when omitted)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	if *title == "" || *content == "" {
		current, err := a.notesC.Get(ctx, noteID)
		if err != nil {
			return err
		}
		if *title == "" {
			*title = current.Title
		}
		if *content == "" {
			*content = current.Content
		}
	}
	n, err := a.notes.Update(ctx, noteID, *title, *content)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Updated note %s\n", n.ID)
	return nil
}

func notesDelete(ctx context.Context, a *app, noteID id.NoteID) error {
	if err := a.notes.Delete(ctx, noteID); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Deleted note %s\n", noteID)
	return nil
}

func cmdUsers(ctx context.Context, a *app, args []string) error {
	const text = "users list | invite --email <email> [--role member|admin]"
	if len(args) == 0 {
		return usage(a.stderr, text)
	}
	switch args[0] {
	case "list", "ls":
		if err := a.admin.Load(ctx); err != nil {
			return err
		}
		printUsers(a)
		return nil
	case "invite":
		fs := newFlagSet("users invite", a.stderr)
		email := fs.String("email", "", "Email of the user to invite")
		role := fs.String("role", string(authmodels.RoleMember), "member or admin")
		if err := parseFlags(fs, args[1:]); err != nil {
			return err
		}
		if _, err := a.admin.Invite(ctx, *email, authmodels.Role(strings.ToLower(*role))); err != nil {
			return err
		}
		fmt.Fprintln(a.stdout, a.admin.Success())
		printUsers(a)
		return nil
	default:
		return usage(a.stderr, text)
	}
}

func printUsers(a *app) {
	tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tROLE")
	for _, u := range a.admin.Users() {
		fmt.Fprintf(tw, "%s\t%s\n", u.Email, u.RoleLabel())
	}
	_ = tw.Flush()
}

func cmdUpgrade(ctx context.Context, a *app, _ []string) error {
	sess, err := a.tenant.Upgrade(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "%s is now on the Pro plan. Notes are unlimited.\n", sess.User.Tenant.Name)
	return nil
}

func cmdHealth(ctx context.Context, a *app, _ []string) error {
	status, err := a.health.Check(ctx)
	if err != nil {
		return err
	}
	if !status.Healthy() {
		return dErrors.New(dErrors.CodeInternal, fmt.Sprintf("API reports status %q", status.Status))
	}
	line := "API is healthy"
	if status.Version != "" {
		line += " (version " + status.Version + ")"
	}
	fmt.Fprintln(a.stdout, line)
	return nil
}
