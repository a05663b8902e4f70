package dto

type AuthResponse struct {
	Token       string `json:"token,omitempty"`
	SignupToken string `json:"signup_token,omitempty"`
	User        any    `json:"user"`
}

type ErrorResponse struct {
	Error     string `json:"error"`
	LoginURL  string `json:"login_url,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}
