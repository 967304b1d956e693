package models

// User is the persisted user record. EncryptedPassword never leaves the
// service layer; handlers only ever see dto.UserDto.
type User struct {
	ID                int64  `json:"id"`
	FullName          string `json:"fullName"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	EncryptedPassword string `json:"-"`
}

// UserPatch is the argument of the partial-update primitive. A nil field
// leaves the corresponding column unchanged.
type UserPatch struct {
	ID                int64
	FullName          *string
	Username          *string
	Email             *string
	EncryptedPassword *string
}
