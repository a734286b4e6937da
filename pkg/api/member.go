package api

import (
	"context"
	"fmt"
	"strconv"

	"github.com/minjipark/encore/pkg/domain"
)

// LoginRequest is the credential payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TokenPair is the result of a successful login.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*TokenPair, error) {
	var tokens TokenPair
	if err := c.post(ctx, "/api/member/login", req, &tokens); err != nil {
		return nil, fmt.Errorf("api.Login: %w", err)
	}
	return &tokens, nil
}

// JoinRequest is the payload for creating a new member account.
type JoinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

// Join registers a new member.
func (c *Client) Join(ctx context.Context, req JoinRequest) error {
	if err := c.post(ctx, "/api/member/join", req, nil); err != nil {
		return fmt.Errorf("api.Join: %w", err)
	}
	return nil
}

// Logout invalidates the server-side token. Callers treat failure as
// advisory: local credential clearing proceeds regardless.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/member/logout", nil, nil); err != nil {
		return fmt.Errorf("api.Logout: %w", err)
	}
	return nil
}

// Me returns the current member's profile.
func (c *Client) Me(ctx context.Context) (*domain.Member, error) {
	var m domain.Member
	if err := c.get(ctx, "/api/member/me", &m); err != nil {
		return nil, fmt.Errorf("api.Me: %w", err)
	}
	return &m, nil
}

// UpdateProfileRequest carries profile edits. A non-nil image switches the
// request to multipart form data.
type UpdateProfileRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
}

// UpdateProfile updates name/nickname and optionally the profile image,
// returning the server's post-update profile.
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest, image *Attachment) (*domain.Member, error) {
	var m domain.Member
	if image != nil {
		fields := map[string]string{
			"name":     req.Name,
			"nickname": req.Nickname,
		}
		if err := c.postMultipart(ctx, "/api/member/profile", fields, image, &m); err != nil {
			return nil, fmt.Errorf("api.UpdateProfile: %w", err)
		}
		return &m, nil
	}
	if err := c.put(ctx, "/api/member/profile", req, &m); err != nil {
		return nil, fmt.Errorf("api.UpdateProfile: %w", err)
	}
	return &m, nil
}

// ChangePassword replaces the member's password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	body := map[string]string{
		"currentPassword": current,
		"newPassword":     next,
	}
	if err := c.put(ctx, "/api/member/password", body, nil); err != nil {
		return fmt.Errorf("api.ChangePassword: %w", err)
	}
	return nil
}

// ListMyOrders returns the member's order history, newest first.
func (c *Client) ListMyOrders(ctx context.Context, page Page) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.get(ctx, "/api/member/orders?"+page.query().Encode(), &orders); err != nil {
		return nil, fmt.Errorf("api.ListMyOrders: %w", err)
	}
	return orders, nil
}

// GetOrder fetches a single order by order number.
func (c *Client) GetOrder(ctx context.Context, orderNo string) (*domain.Order, error) {
	var o domain.Order
	if err := c.get(ctx, "/api/orders/"+orderNo, &o); err != nil {
		return nil, fmt.Errorf("api.GetOrder: %w", err)
	}
	return &o, nil
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
