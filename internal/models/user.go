package models

import "time"

// User is an account row. Profile fields are nullable until the user
// fills them in.
type User struct {
	ID           int
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	DOB          *time.Time
	Address      *string
}

// Token is one issued JWT with its metadata.
type Token struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int    `json:"expires_in"`
}

// TokenPair is the login/refresh response.
type TokenPair struct {
	BearerToken  Token `json:"bearerToken"`
	RefreshToken Token `json:"refreshToken"`
}

// Profile is the public view of a user profile.
type Profile struct {
	Email     string  `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// OwnerProfile adds the fields only the profile owner may see.
type OwnerProfile struct {
	Profile
	DOB     *string `json:"dob"`
	Address *string `json:"address"`
}

// UpdatedProfile echoes a successful profile update.
type UpdatedProfile struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	DOB       string `json:"dob"`
	Address   string `json:"address"`
}
