package models

// Credential is the bearer token relayed for one request.
type Credential struct {
	Token   string
	Subject string
}

// SessionUser is the subset of the current admin the gateway needs.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Role  string `json:"role,omitempty"`
}
