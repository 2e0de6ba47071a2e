package domain

import "time"

const AuditAccountCreated = "account.created"

// AuditEntry records something that happened to an account.
type AuditEntry struct {
	Action     string
	AccountID  int64
	Username   string
	OccurredAt time.Time
}
