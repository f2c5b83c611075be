package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citasalud/mobile-core/internal/session"
)

func TestLoginNestedUserShape(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-issued",
			"rol":   "paciente",
			"user":  map[string]any{"id": "P1", "nombre": "Ana Ruiz", "email": "ana@example.com"},
		})
	}))

	user, err := client.Login(context.Background(), "ana@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "P1", user.ID)
	assert.Equal(t, "Ana Ruiz", user.Name)

	assert.Equal(t, "tok-issued", sess.Token())
	assert.Equal(t, session.RolePatient, sess.Role())
}

func TestLoginFlatUserShape(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token":  "tok-issued",
			"rol":    "recepcionista",
			"id":     "R9",
			"nombre": "Marta",
		})
	}))

	user, err := client.Login(context.Background(), "marta@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "R9", user.ID)
	assert.Equal(t, "Marta", user.Name)
	assert.Equal(t, session.RoleReceptionist, sess.Role())
}

func TestLoginRejectsMissingToken(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"rol": "paciente"})
	}))

	_, err := client.Login(context.Background(), "ana@example.com", "secret")
	assert.Error(t, err)
	assert.False(t, sess.Authenticated())
}

func TestLoginRejectsUnknownRole(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"token": "tok", "rol": "superuser"})
	}))

	_, err := client.Login(context.Background(), "x@example.com", "secret")
	assert.Error(t, err)
	assert.False(t, sess.Authenticated(), "credentials from an unknown role are not stored")
}

func TestLoginWrongPassword(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Login failures are 401 too, but on a public route there is no
		// session to invalidate.
		http.Error(w, `{"mensaje":"Credenciales incorrectas"}`, http.StatusUnauthorized)
	}))

	_, err := client.Login(context.Background(), "ana@example.com", "wrong")
	assert.Error(t, err)
	assert.False(t, sess.Authenticated())
}

func TestLogoutClearsSession(t *testing.T) {
	client, sess := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	require.NoError(t, sess.Save("tok", session.RolePatient))

	require.NoError(t, client.Logout())
	assert.False(t, sess.Authenticated())
}

func TestRegister(t *testing.T) {
	var got map[string]any
	var auth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/registrar", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.Register(context.Background(), RegisterInput{
		Name:     "Ana Ruiz",
		Email:    "ana@example.com",
		Password: "secret123",
		Document: "CC-1007",
	})
	require.NoError(t, err)
	assert.Empty(t, auth, "/registrar is public")
	assert.Equal(t, "Ana Ruiz", got["nombre"])
	assert.Equal(t, "CC-1007", got["documento"])
}
