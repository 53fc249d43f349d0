// Package audit records security-relevant access events. Recording is
// best-effort: a failed write is logged and swallowed so it can never
// change the outcome of an authentication attempt.
package audit

import (
	"context"

	"github.com/google/uuid"
)

// Access types written to the access_log table.
const (
	TypeOAuthLogin    = "oauth_login"
	TypePasswordLogin = "password_login"
)

// Recorder appends access events. Implementations must swallow their
// own errors; callers treat Record as fire-and-forget.
type Recorder interface {
	Record(ctx context.Context, patientID uuid.UUID, accessType string)
}
