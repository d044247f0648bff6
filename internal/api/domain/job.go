package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

const (
	// JobStatusInactive marks a job awaiting review. New and edited jobs
	// always land here.
	JobStatusInactive = "inactive"
	// JobStatusActive marks a published job, visible on its public profile.
	JobStatusActive = "active"
	// JobStatusDeclined marks a rejected job; the record carries the reason.
	JobStatusDeclined = "declined"
)

const (
	CategoryStatusActive   = "active"
	CategoryStatusInactive = "inactive"
)

const (
	RoleAdmin     = "admin"
	RoleDeveloper = "developer"
)

var (
	ErrJobNotFound = errors.New("job not found")

	// Creation preconditions. Each surfaces with its own message so the
	// client can tell which account setup step is missing.
	ErrPaypalNotSet     = errors.New("paypal account not set")
	ErrEmailNotVerified = errors.New("email not confirmed")

	// ErrPermissionDenied is the soft denial for activate/decline/delete/save
	// attempts by actors who neither own the job nor hold an elevated role.
	// Handlers report it as a user-facing message, not an error status.
	ErrPermissionDenied = errors.New("permission denied")
)

// Actor is the authenticated caller of a lifecycle operation. It carries
// identity and role memberships only; account flags (verified email, paypal)
// live on the user record and are loaded when a precondition needs them.
type Actor struct {
	ID    int64
	Roles []string
}

func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Elevated reports whether the actor holds a role with blanket permissions
// over all jobs.
func (a Actor) Elevated() bool {
	return a.HasRole(RoleAdmin) || a.HasRole(RoleDeveloper)
}

// FieldErrors is a per-field validation report. A non-empty map means the
// request must be rejected with no write performed.
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	fields := make([]string, 0, len(fe))
	for f := range fe {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s: %s", f, fe[f])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
