package domain

import "time"

// User is the owner of sessions, todos and the analytics aggregate.
// Token is the bearer credential presented by API clients.
type User struct {
	ID        string
	Name      string
	Token     string
	CreatedAt time.Time
}
