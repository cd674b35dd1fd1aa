package response

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	ExpiresIn int    `json:"expires_in"`
}

type CreatedResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

type VerifyResponse struct {
	Valid bool   `json:"valid"`
	Role  string `json:"role,omitempty"`
	Error string `json:"error,omitempty"`
}
