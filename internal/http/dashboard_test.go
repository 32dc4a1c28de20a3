package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardCountsAndRecentChanges(t *testing.T) {
	api := newFakeAPI().
		on("GET /auth/profile", http.StatusOK, profileOK).
		on("GET /users", http.StatusOK, usersList).
		on("GET /documents", http.StatusOK, documentsList).
		on("GET /categories", http.StatusOK, categoriesFlat).
		on("GET /menus", http.StatusOK, menusFlat)
	env := newEnv(t, api, nil)
	cookie := sessionCookie(t, adminToken(t, "ada@edumarket.test", time.Now().Add(time.Hour)))

	_, err := env.audit.Record("menus.delete", "menu", "old", "ada@edumarket.test", nil)
	require.NoError(t, err)

	resp, body := env.do(t, "GET", "/", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	for _, want := range []string{
		"<span>Users</span><strong>2</strong>",
		"<span>Documents</span><strong>3</strong>",
		"<span>Pending review</span><strong>2</strong>",
		"<span>Categories</span><strong>5</strong>",
		"<span>Menu items</span><strong>2</strong>",
		"menus.delete",
	} {
		assert.Contains(t, body, want)
	}
}

func TestDashboardSurvivesPartialFailure(t *testing.T) {
	api := newFakeAPI().
		on("GET /auth/profile", http.StatusOK, profileOK).
		on("GET /users", http.StatusOK, usersList).
		on("GET /documents", http.StatusServiceUnavailable, `{"message":"Maintenance"}`).
		on("GET /categories", http.StatusOK, categoriesFlat).
		on("GET /menus", http.StatusOK, menusFlat)
	env := newEnv(t, api, nil)
	cookie := sessionCookie(t, adminToken(t, "ada@edumarket.test", time.Now().Add(time.Hour)))

	resp, body := env.do(t, "GET", "/", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Maintenance")
	assert.Contains(t, body, "<span>Users</span><strong>2</strong>")
	assert.Contains(t, body, "<span>Documents</span><strong>0</strong>")
}
