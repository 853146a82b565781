package models

import (
	"fmt"
	"strings"
)

// AnonymousUserKey partitions storage for sessions with no identity record
const AnonymousUserKey = "anonymous"

// User is the opaque identity record supplied by the external session
// provider at session start. ID is the stable partition key for all
// per-user storage and the leaderboard hash input.
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// StorageKey returns the per-user storage partition key
func (u *User) StorageKey() string {
	if u == nil || u.ID == "" {
		return AnonymousUserKey
	}
	return u.ID
}

// DisplayName picks the best available name from the account record,
// falling back to a hashed placeholder when nothing usable is present.
func (u *User) DisplayName() string {
	if u != nil {
		if u.Username != "" {
			return u.Username
		}
		if u.Name != "" {
			return u.Name
		}
		if u.Email != "" {
			if at := strings.Index(u.Email, "@"); at > 0 {
				return u.Email[:at]
			}
			return u.Email
		}
	}
	return fmt.Sprintf("Picker%d", HashID(u.StorageKey()))
}
