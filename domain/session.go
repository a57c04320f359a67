package domain

import "time"

// Session represents a signed-in employee session stored in Redis.
type Session struct {
	ID        string    `json:"id"`
	EmpID     int       `json:"emp_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) IsExpired(reference time.Time) bool {
	if s == nil {
		return true
	}
	if reference.IsZero() {
		reference = time.Now()
	}
	return !s.ExpiresAt.After(reference)
}
