package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/citasalud/mobile-core/internal/session"
)

// User is the signed-in profile as the backend reports it at login.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Document string `json:"documento,omitempty"`
}

// loginWire tolerates both response shapes the backend has shipped: the user
// nested under "user", or the profile fields inlined at the top level.
type loginWire struct {
	Token string          `json:"token"`
	Role  string          `json:"rol"`
	User  json.RawMessage `json:"user"`

	// Inline fallback fields.
	ID       string `json:"id"`
	Name     string `json:"nombre"`
	Email    string `json:"email"`
	Document string `json:"documento"`
}

// Login authenticates and persists the issued token and role in the session
// store. The normalization of the two historical payload shapes happens here,
// at the boundary, not in screens.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	payload := map[string]string{"email": email, "password": password}

	var wire loginWire
	if err := c.do(ctx, http.MethodPost, "/login", "/login", payload, &wire); err != nil {
		return User{}, err
	}
	if strings.TrimSpace(wire.Token) == "" {
		return User{}, &APIError{Status: http.StatusOK, Message: "Respuesta de inicio de sesión inválida"}
	}

	role, err := session.ParseRole(wire.Role)
	if err != nil {
		return User{}, fmt.Errorf("api: login: %w", err)
	}

	user := User{ID: wire.ID, Name: wire.Name, Email: wire.Email, Document: wire.Document}
	if len(wire.User) > 0 {
		if err := json.Unmarshal(wire.User, &user); err != nil {
			return User{}, fmt.Errorf("api: decode login user: %w", err)
		}
	}

	if err := c.session.Save(wire.Token, role); err != nil {
		return User{}, fmt.Errorf("api: persist session: %w", err)
	}
	c.logger.Info("signed in", "rol", string(role))
	return user, nil
}

// RegisterInput is the self-service patient registration form.
type RegisterInput struct {
	Name      string `json:"nombre"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Document  string `json:"documento"`
	Insurance string `json:"eps,omitempty"`
	BloodType string `json:"tipo_sangre,omitempty"`
}

// Register creates a patient account. It does not sign in; the app sends the
// user to the login screen afterwards.
func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.do(ctx, http.MethodPost, "/registrar", "/registrar", in, nil)
}

// Logout clears the local session. There is no server-side revocation
// endpoint; the token simply stops being stored or attached.
func (c *Client) Logout() error {
	c.logger.Info("signed out")
	return c.session.Clear()
}
