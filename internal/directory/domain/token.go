package domain

// TokenPair is the result of a successful login: a short-lived access
// token and a long-lived refresh token.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
