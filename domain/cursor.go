package domain

import (
	"time"
)

// Cursor represents pagination cursor for efficient batch paging.
type Cursor struct {
	LastCreatedAt *time.Time
	LastID        string
}
