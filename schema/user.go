package schema

import "github.com/google/uuid"

// User is the profile of the signed-in account.
type User struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
}

// Clone returns an independent copy so callers can hand out snapshots
// without exposing internal state to mutation.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	clone := *u
	if u.AvatarURL != nil {
		avatarURL := *u.AvatarURL
		clone.AvatarURL = &avatarURL
	}
	return &clone
}

// SignInRequest is the payload of POST /auth/signin.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the payload of POST /auth/signup.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshRequest is the payload of POST /auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is returned by sign-in and sign-up: fresh credentials plus
// the account profile.
type AuthResponse struct {
	Credentials
	User User `json:"user"`
}

// ProfileUpdateRequest carries a partial profile update; nil fields are left
// unchanged by the server. The password trio is only populated when the user
// requested a password change.
type ProfileUpdateRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Password        *string `json:"password,omitempty"`
	CurrentPassword *string `json:"currentPassword,omitempty"`
}

// AvatarResponse is returned by the avatar upload endpoint.
type AvatarResponse struct {
	AvatarURL string `json:"avatarUrl"`
}
