// Package models holds the tenant resource bodies.
package models

import authmodels "notely/internal/auth/models"

// UpgradeResponse is the body returned by POST /tenants/:slug/upgrade.
// Backends differ in what they echo back, so every field is optional.
type UpgradeResponse struct {
	Message string             `json:"message,omitempty"`
	Tenant  *authmodels.Tenant `json:"tenant,omitempty"`
}
