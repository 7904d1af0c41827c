package backend

import (
	"context"
	"net/http"
	"net/url"
)

func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SignupResponse, error) {
	resp := &SignupResponse{}
	err := c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/signup",
		reqBody: req,
		respObj: resp,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	resp := &LoginResponse{}
	err := c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/login",
		reqBody: req,
		respObj: resp,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) VerifyTwoFactor(ctx context.Context, code, tempToken string) (*UserResponse, error) {
	resp := &UserResponse{}
	err := c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/verify-2fa",
		reqBody: map[string]string{"code": code, "tempToken": tempToken},
		respObj: resp,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Logout(ctx context.Context, userID string) error {
	return c.executeRequest(ctx, outboundRequest{
		method: http.MethodPost,
		path:   "/auth/logout",
		userID: userID,
	})
}

func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/forgot-password",
		reqBody: map[string]string{"email": email},
	})
}

func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	return c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/reset-password",
		reqBody: map[string]string{"token": resetToken, "password": password},
	})
}

func (c *Client) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	return c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/change-password",
		userID:  userID,
		reqBody: map[string]string{"currentPassword": currentPassword, "newPassword": newPassword},
	})
}

func (c *Client) VerifyEmail(ctx context.Context, userID, code string) (*UserResponse, error) {
	resp := &UserResponse{}
	err := c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/verify-email",
		userID:  userID,
		reqBody: map[string]string{"code": code},
		respObj: resp,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ResendVerification(ctx context.Context, userID string) error {
	return c.executeRequest(ctx, outboundRequest{
		method: http.MethodPost,
		path:   "/auth/resend-verification",
		userID: userID,
	})
}

func (c *Client) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*UserResponse, error) {
	resp := &UserResponse{}
	err := c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPatch,
		path:    "/users/profile",
		userID:  userID,
		reqBody: update,
		respObj: resp,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) ToggleTwoFactor(ctx context.Context, userID string, enabled bool, password string) (*TwoFactorToggleResponse, error) {
	resp := &TwoFactorToggleResponse{}
	err := c.executeRequest(ctx, outboundRequest{
		method: http.MethodPost,
		path:   "/auth/2fa/toggle",
		userID: userID,
		reqBody: struct {
			Enabled  bool   `json:"enabled"`
			Password string `json:"password"`
		}{enabled, password},
		respObj: resp,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) DeleteAccount(ctx context.Context, userID, password string) error {
	return c.executeRequest(ctx, outboundRequest{
		method:  http.MethodDelete,
		path:    "/users/account",
		userID:  userID,
		reqBody: map[string]string{"password": password},
	})
}

// OAuthAuthorize asks the identity API for the provider authorization URL.
func (c *Client) OAuthAuthorize(ctx context.Context, provider, state, redirectURI string) (string, error) {
	var resp struct {
		URL string `json:"url"`
	}
	err := c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/oauth/" + url.PathEscape(provider) + "/authorize",
		reqBody: map[string]string{"state": state, "redirectUri": redirectURI},
		respObj: &resp,
	})
	if err != nil {
		return "", err
	}
	return resp.URL, nil
}

// OAuthCallback exchanges the provider code for the signed-in user.
func (c *Client) OAuthCallback(ctx context.Context, provider, code, redirectURI string) (*UserResponse, error) {
	resp := &UserResponse{}
	err := c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPost,
		path:    "/auth/oauth/" + url.PathEscape(provider) + "/callback",
		reqBody: map[string]string{"code": code, "redirectUri": redirectURI},
		respObj: resp,
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// SaveReview stores the user's rating and comment for a recipe.
func (c *Client) SaveReview(ctx context.Context, userID, recipeID string, review Review) error {
	return c.executeRequest(ctx, outboundRequest{
		method:  http.MethodPut,
		path:    "/recipes/" + url.PathEscape(recipeID) + "/review",
		userID:  userID,
		reqBody: review,
	})
}
