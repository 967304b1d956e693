package dto

// UserDetailsRequest is the sign-up and update payload. ID is only
// meaningful on update; a missing or null id decodes to zero.
type UserDetailsRequest struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserDto is the externally visible projection of a user. Password is
// write-only: it carries inbound plaintext and is always empty (and thus
// omitted) on responses. The password hash is never serialized.
type UserDto struct {
	ID                int64  `json:"id"`
	FullName          string `json:"fullName"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password,omitempty"`
	EncryptedPassword string `json:"-"`
}
