package models

import "time"

// User is one account in the credential store. Accounts are created
// implicitly on the first authentication attempt for an unseen user_id and
// are never updated or deleted afterwards.
type User struct {
	UserID       string    `json:"user_id"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuthRequest is the payload of /auth and /history.
type AuthRequest struct {
	UserID   string `json:"user_id"`
	Password string `json:"password"`
}

// StatusResponse is the {status, message} envelope used by /auth and by
// error responses.
type StatusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
