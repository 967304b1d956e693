package dto

// LoginRequest is the sign-in payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the sign-in response. Username echoes the submitted
// username as-is.
type TokenResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}
