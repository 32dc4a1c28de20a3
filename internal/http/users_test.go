package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userEnv(t *testing.T) (*testEnv, *http.Cookie) {
	t.Helper()
	api := newFakeAPI().
		on("GET /auth/profile", http.StatusOK, profileOK).
		on("GET /users", http.StatusOK, usersList)
	env := newEnv(t, api, nil)
	return env, sessionCookie(t, adminToken(t, "ada@edumarket.test", time.Now().Add(time.Hour)))
}

func TestUsersListShowsRoleAndStatus(t *testing.T) {
	env, cookie := userEnv(t)

	resp, body := env.do(t, "GET", "/users", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<td class="avatar">V</td>`)
	assert.Contains(t, body, `<option value="vendor" selected>vendor</option>`)
	assert.Contains(t, body, `name="active" value="true"`)
	assert.Contains(t, body, "Locked")
	assert.Contains(t, body, "01/02/2026")
}

func TestToggleSendsFlippedFlag(t *testing.T) {
	env, cookie := userEnv(t)
	env.api.on("PATCH /users/u1", http.StatusOK, ok)

	resp, _ := env.do(t, "POST", "/users/u1/toggle", "active=true", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/users?notice=updated", resp.Header.Get("Location"))

	calls := env.api.callsTo("PATCH", "/users/u1")
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"isActive": false}, calls[0].Body)

	entries, err := env.audit.Latest(5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "users.active", entries[0].Action)
	assert.Equal(t, "ada@edumarket.test", entries[0].Actor)
}

func TestToggleFailureRefetchesOnce(t *testing.T) {
	env, cookie := userEnv(t)
	env.api.on("PATCH /users/u2", http.StatusInternalServerError, `{"statusCode":500,"message":"Database unavailable"}`)

	resp, body := env.do(t, "POST", "/users/u2/toggle", "active=false", cookie)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, body, "Database unavailable")
	assert.Contains(t, body, "An Le")
	assert.Len(t, env.api.callsTo("GET", "/users"), 1)

	entries, err := env.audit.Latest(5)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestToggleNeedsCurrentStatus(t *testing.T) {
	env, cookie := userEnv(t)

	resp, _ := env.do(t, "POST", "/users/u1/toggle", "active=maybe", cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Empty(t, env.api.callsTo("PATCH", "/users/u1"))
}

func TestSetRole(t *testing.T) {
	env, cookie := userEnv(t)
	env.api.on("PATCH /users/u2", http.StatusOK, ok)

	resp, _ := env.do(t, "POST", "/users/u2/role", "role=vendor", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	calls := env.api.callsTo("PATCH", "/users/u2")
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{"role": "vendor"}, calls[0].Body)
}

func TestSetRoleRejectsUnknownRole(t *testing.T) {
	env, cookie := userEnv(t)

	resp, body := env.do(t, "POST", "/users/u2/role", "role=superuser", cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Unknown role.")
	assert.Empty(t, env.api.callsTo("PATCH", "/users/u2"))
}
