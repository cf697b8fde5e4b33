// Package main provides a CLI tool for generating test tokens for the notely mock API.
// These tokens are signed with the mock API's local key and are only accepted by cmd/mockapi.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	authmodels "notely/internal/auth/models"
	"notely/internal/auth/store/session"
	jwttoken "notely/internal/jwt_token"
	"notely/internal/platform/config"
	id "notely/pkg/domain"
	"notely/pkg/testutil/fakeapi"
)

type tokenOutput struct {
	Token     string            `json:"token"`
	Type      string            `json:"type"`
	ExpiresIn string            `json:"expires_in"`
	Claims    map[string]any    `json:"claims,omitempty"`
	Usage     map[string]string `json:"usage"`
}

func main() {
	defaultKey := config.MockAPIFromEnv().SigningKey

	// Subcommands
	accessCmd := flag.NewFlagSet("access", flag.ExitOnError)
	sessionCmd := flag.NewFlagSet("session", flag.ExitOnError)

	// Access token flags
	accessEmail := accessCmd.String("email", "admin@acme.test", "Demo account to mint the token for")
	accessTTL := accessCmd.Duration("ttl", fakeapi.DefaultTokenTTL, "Token time-to-live")
	accessExpired := accessCmd.Bool("expired", false, "Mint a token that has already expired")
	accessKey := accessCmd.String("key", defaultKey, "Signing key (MOCKAPI_SIGNING_KEY)")
	accessJSON := accessCmd.Bool("json", false, "Output as JSON")

	// Session file flags
	sessionEmail := sessionCmd.String("email", "admin@acme.test", "Demo account to sign in as")
	sessionOut := sessionCmd.String("out", "", "Session file to write (default: NOTELY_SESSION_FILE)")
	sessionPlan := sessionCmd.String("plan", string(authmodels.PlanFree), "Tenant plan recorded on the stored user")
	sessionTTL := sessionCmd.Duration("ttl", fakeapi.DefaultTokenTTL, "Token time-to-live")
	sessionExpired := sessionCmd.Bool("expired", false, "Store a token that has already expired")
	sessionKey := sessionCmd.String("key", defaultKey, "Signing key (MOCKAPI_SIGNING_KEY)")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "access":
		accessCmd.Parse(os.Args[2:])
		generateAccessToken(*accessEmail, *accessKey, *accessTTL, *accessExpired, *accessJSON)
	case "session":
		sessionCmd.Parse(os.Args[2:])
		writeSession(*sessionEmail, *sessionOut, authmodels.Plan(*sessionPlan), *sessionKey, *sessionTTL, *sessionExpired)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`tokengen - Generate test tokens for the notely mock API

WARNING: These tokens use the mock API's local signing key. Only cmd/mockapi accepts them.

Usage:
  tokengen <command> [flags]

Commands:
  access    Mint an access token (JWT) for a demo account
  session   Write a signed-in notely session file for a demo account

Examples:
  # Access token for the Acme admin
  tokengen access

  # Token for a member that expired an hour ago
  tokengen access -email user@acme.test -expired -ttl 1h

  # Sign the CLI in as the Globex admin without a login call
  tokengen session -email admin@globex.test -out ./session.json

  # Output as JSON
  tokengen access -json

Use "tokengen <command> -h" for more information about a command.`)
}

// demoUser rebuilds the user the mock API seeds for email.
func demoUser(email string, plan authmodels.Plan) *authmodels.User {
	account, ok := authmodels.FindDemoAccount(email)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown demo account: %s\n", email)
		os.Exit(1)
	}
	slug := id.TenantSlug(strings.ToLower(account.Tenant))
	return &authmodels.User{
		ID:    fakeapi.SeedUserID(account.Email),
		Email: account.Email,
		Role:  account.Role,
		Tenant: authmodels.Tenant{
			ID:   fakeapi.SeedTenantID(slug),
			Name: account.Tenant,
			Slug: slug,
			Plan: plan,
		},
	}
}

func mint(user *authmodels.User, signingKey string, ttl time.Duration, expired bool) string {
	svc := jwttoken.NewJWTService(signingKey, fakeapi.Issuer, ttl)
	if expired {
		issued := time.Now().Add(-2 * ttl)
		svc.SetClock(func() time.Time { return issued })
	}
	token, err := svc.GenerateAccessToken(user.ID, user.Tenant.ID, string(user.Role))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}
	return token
}

func generateAccessToken(email, signingKey string, ttl time.Duration, expired, jsonOutput bool) {
	user := demoUser(email, authmodels.PlanFree)
	token := mint(user, signingKey, ttl, expired)

	if jsonOutput {
		output := tokenOutput{
			Token:     token,
			Type:      "access_token",
			ExpiresIn: ttl.String(),
			Claims: map[string]any{
				"user_id":   user.ID.String(),
				"tenant_id": user.Tenant.ID.String(),
				"role":      string(user.Role),
				"iss":       fakeapi.Issuer,
				"expired":   expired,
			},
			Usage: map[string]string{
				"header": "Authorization: Bearer <token>",
			},
		}
		printJSON(output)
	} else {
		fmt.Println("Access Token (JWT)")
		fmt.Println("==================")
		fmt.Printf("Account:     %s (%s)\n", user.Email, user.Role)
		fmt.Printf("Tenant:      %s\n", user.Tenant.Slug)
		fmt.Printf("Expires In:  %s\n", ttl)
		if expired {
			fmt.Println("Expired:     yes")
		}
		fmt.Printf("User ID:     %s\n", user.ID)
		fmt.Printf("Tenant ID:   %s\n", user.Tenant.ID)
		fmt.Println()
		fmt.Println("Token:")
		fmt.Println(token)
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  curl -H \"Authorization: Bearer <token>\" http://localhost:5000/api/notes")
	}
}

func writeSession(email, out string, plan authmodels.Plan, signingKey string, ttl time.Duration, expired bool) {
	if out == "" {
		out = config.FromEnv().SessionFile
	}
	user := demoUser(email, plan)
	sess := &authmodels.Session{Token: mint(user, signingKey, ttl, expired), User: user}

	if err := session.NewFile(out).Save(context.Background(), sess); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing session: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Signed in as %s; session written to %s\n", user.Email, out)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}
}
