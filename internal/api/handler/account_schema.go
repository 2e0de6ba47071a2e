package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// createAccountRequest is the body of POST /accounts. An "id" supplied by the
// client has no field to land in and is dropped.
type createAccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type getAccountRequest struct {
	ID int64 `param:"id" validate:"gt=0"`
}

// accountResponse is the wire view of an account. It never carries the
// password or its hash.
type accountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
