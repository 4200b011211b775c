package backend

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"casa_arbol_gateway/internal/models"
)

// LoginParams is the OAuth2 password form the backend expects.
type LoginParams struct {
	Username     string
	Password     string
	GrantType    string
	Scope        string
	ClientID     string
	ClientSecret string
}

// Login exchanges credentials for an access token.
// POST /api/v1/login/access-token, errors: 422.
func (c *Client) Login(ctx context.Context, p LoginParams) (*models.Token, error) {
	op := operation{name: "login", method: "POST", path: "/api/v1/login/access-token"}

	form := url.Values{}
	form.Set("username", p.Username)
	form.Set("password", p.Password)
	if p.GrantType != "" {
		form.Set("grant_type", p.GrantType)
	}
	if p.Scope != "" {
		form.Set("scope", p.Scope)
	}
	if p.ClientID != "" {
		form.Set("client_id", p.ClientID)
	}
	if p.ClientSecret != "" {
		form.Set("client_secret", p.ClientSecret)
	}

	var token models.Token
	err := c.do(ctx, op, nil, nil, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &token)
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// SignupParams registers a new user account.
type SignupParams struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// Signup registers a user. POST /api/v1/users/signup, errors: 422.
func (c *Client) Signup(ctx context.Context, p SignupParams) (*models.User, error) {
	op := operation{name: "signup", method: "POST", path: "/api/v1/users/signup"}
	body, err := jsonBody(p)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := c.do(ctx, op, nil, nil, body, "application/json", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CurrentUser fetches the authenticated user. GET /api/v1/users/me.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	op := operation{name: "current_user", method: "GET", path: "/api/v1/users/me", auth: true}
	var user models.User
	if err := c.do(ctx, op, nil, nil, nil, "", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListUsersParams paginates the superuser-only user listing.
type ListUsersParams struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ListUsers lists accounts. GET /api/v1/admin/users, errors: 401, 403, 422.
func (c *Client) ListUsers(ctx context.Context, p ListUsersParams) (*models.UsersPage, error) {
	op := operation{name: "list_users", method: "GET", path: "/api/v1/admin/users", auth: true}
	var page models.UsersPage
	if err := c.do(ctx, op, nil, pagination(p.Skip, p.Limit), nil, "", &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// DeleteUser removes an account. DELETE /api/v1/admin/users/{user_id},
// errors: 401, 403, 404.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	op := operation{name: "delete_user", method: "DELETE", path: "/api/v1/admin/users/{user_id}", auth: true}
	return c.do(ctx, op, map[string]string{"user_id": userID}, nil, nil, "", nil)
}

func pagination(skip, limit int) url.Values {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return q
}
