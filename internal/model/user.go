package model

import "time"

type User struct {
	ID           int64
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	DOB          *time.Time
	Address      *string
}

// Profile is what anyone may see about a user.
type Profile struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// OwnerProfile is returned to the account owner only.
type OwnerProfile struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	DOB       *string `json:"dob"`
	Address   *string `json:"address"`
}

type ProfileUpdate struct {
	FirstName string
	LastName  string
	DOB       time.Time
	Address   string
}
