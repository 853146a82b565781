package models

import "fmt"

// HashID derives a stable, non-cryptographic numeric ID from an opaque user
// identifier. It is the classic 31-based string hash truncated to a signed
// 32-bit value, absolute value taken, so the same input always produces the
// same anonymous ID across sessions.
func HashID(s string) int64 {
	var h int32
	for _, r := range s {
		h = h<<5 - h + int32(r)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

var displayAdjectives = []string{
	"Fire", "Ice", "Lightning", "Storm", "Steel", "Shadow", "Blazing", "Mighty",
	"Swift", "Golden", "Mystic", "Crimson", "Azure", "Jade", "Silver", "Bronze",
	"Diamond", "Emerald", "Vapor", "Echo",
}

var displayNouns = []string{
	"Picker", "Prophet", "Analyst", "Streak", "Eagle", "Tiger", "Champion",
	"Master", "Wizard", "Legend", "Striker", "Scout", "Oracle", "Hunter",
	"Guardian", "Titan", "Specter", "Vanguard", "Pioneer", "Maverick",
}

// AnonymousName generates a consistent anonymous display name from a user ID.
// The same ID always maps to the same name.
func AnonymousName(userID string) string {
	h := HashID(userID)
	adj := displayAdjectives[h%int64(len(displayAdjectives))]
	noun := displayNouns[(h/int64(len(displayAdjectives)))%int64(len(displayNouns))]
	number := (h/int64(len(displayAdjectives)*len(displayNouns)))%999 + 1
	return fmt.Sprintf("%s%s%d", adj, noun, number)
}
