package dirsdk

import "time"

// LoginRequest is the body of POST /v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AccessTokenResponse is the body of a successful refresh. The refresh
// token is not rotated, so only the new access token comes back.
type AccessTokenResponse struct {
	AccessToken string `json:"access_token"`
}

// User is the outward representation of a user record. The password
// hash never appears here.
type User struct {
	ID                  int64      `json:"id"`
	Email               string     `json:"email"`
	FirstName           string     `json:"first_name"`
	LastName            string     `json:"last_name"`
	PhoneNumber         string     `json:"phone_number,omitempty"`
	ExternalDirectoryID string     `json:"external_directory_id,omitempty"`
	NotificationToken   string     `json:"notification_token,omitempty"`
	CreatedUserID       *int64     `json:"created_user_id,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedUserID       *int64     `json:"updated_user_id,omitempty"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// CreateUserRequest is the body of POST /v1/users. An empty Password
// asks the server to generate one and log it for the operator.
type CreateUserRequest struct {
	Email               string `json:"email"`
	Password            string `json:"password,omitempty"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	PhoneNumber         string `json:"phone_number,omitempty"`
	ExternalDirectoryID string `json:"external_directory_id,omitempty"`
	NotificationToken   string `json:"notification_token,omitempty"`
}

// UpdateUserRequest is the body of PUT /v1/users/{id}: the full
// replacement state. An empty Password leaves the password unchanged.
type UpdateUserRequest struct {
	Email               string `json:"email"`
	Password            string `json:"password,omitempty"`
	FirstName           string `json:"first_name"`
	LastName            string `json:"last_name"`
	PhoneNumber         string `json:"phone_number,omitempty"`
	ExternalDirectoryID string `json:"external_directory_id,omitempty"`
	NotificationToken   string `json:"notification_token,omitempty"`
}

// PatchUserRequest is the body of PATCH /v1/users/{id}. Nil fields are
// left untouched.
type PatchUserRequest struct {
	Email               *string `json:"email,omitempty"`
	Password            *string `json:"password,omitempty"`
	FirstName           *string `json:"first_name,omitempty"`
	LastName            *string `json:"last_name,omitempty"`
	PhoneNumber         *string `json:"phone_number,omitempty"`
	ExternalDirectoryID *string `json:"external_directory_id,omitempty"`
	NotificationToken   *string `json:"notification_token,omitempty"`
}

// HealthResponse is the body of the /livez and /readyz probes.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports per-dependency readiness.
type HealthChecks struct {
	Database string `json:"database"`
}
