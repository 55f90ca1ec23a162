package domain

import "time"

// MinimumAge is the youngest a user may be at signup.
const MinimumAge = 15

// User models an account in the system.
//
// BirthDate and the consent flags exist for data-privacy reasons: the API
// only exposes them to the user themself.
type User struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	FirstName       string    `json:"first_name,omitempty"`
	LastName        string    `json:"last_name,omitempty"`
	Email           string    `json:"email,omitempty"`
	PasswordHash    string    `json:"-"`
	BirthDate       time.Time `json:"date_birth"`
	CanBeContacted  bool      `json:"can_be_contacted"`
	CanDataBeShared bool      `json:"can_data_be_shared"`
	CreatedAt       time.Time `json:"created_at"`
}

// Age returns the user's age in full years at the given instant.
func (u User) Age(at time.Time) int {
	years := at.Year() - u.BirthDate.Year()
	anniversary := u.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(at) {
		years--
	}
	return years
}
