package models

// AuthResponse is the body of successful login/register/update calls.
type AuthResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// APIMessage is the generic `{message}` body used by error responses and
// informational replies such as logout.
type APIMessage struct {
	Message string `json:"message"`
}
