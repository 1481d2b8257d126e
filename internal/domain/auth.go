package domain

type TokenRequest struct {
	APIKey string `json:"api_key" validate:"required,min=16"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
