package client

import "context"

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest represents a registration request
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// AuthResponse carries the identity token and account summary
type AuthResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	req := LoginRequest{
		Email:    email,
		Password: password,
	}

	var resp AuthResponse
	if _, err := c.doRequest(ctx, "POST", "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}

	// Automatically set the token for future requests
	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// Signup creates a new free-plan account
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if _, err := c.doRequest(ctx, "POST", "/api/auth/signup", req, &resp); err != nil {
		return nil, err
	}

	if resp.Token != "" {
		c.SetToken(resp.Token)
	}

	return &resp, nil
}

// ForgotPassword requests a reset link. The server answers the same way
// whether or not the account exists, so the message is returned as is.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	env, err := c.doRequest(ctx, "POST", "/api/auth/forgot-password", map[string]string{"email": email}, nil)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// Logout forgets the token locally; tokens are stateless on the server
func (c *Client) Logout() {
	c.SetToken("")
}
