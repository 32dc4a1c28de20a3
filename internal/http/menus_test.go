package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuEnv(t *testing.T) (*testEnv, *http.Cookie) {
	t.Helper()
	api := newFakeAPI().
		on("GET /auth/profile", http.StatusOK, profileOK).
		on("GET /categories", http.StatusOK, categoriesFlat).
		on("GET /menus", http.StatusOK, menusFlat).
		on("GET /menus/tree", http.StatusOK, menusTree)
	env := newEnv(t, api, nil)
	return env, sessionCookie(t, adminToken(t, "ada@edumarket.test", time.Now().Add(time.Hour)))
}

func TestMenuRowsShowLinks(t *testing.T) {
	env, cookie := menuEnv(t)

	resp, body := env.do(t, "GET", "/menus", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `padding-left: 10px">&#9662; Home`)
	assert.Contains(t, body, `padding-left: 30px">&#9702; Docs`)
	assert.Contains(t, body, "<td>/categories/math</td>")
}

func TestMenuLinkPickerOffersHomeAndCategories(t *testing.T) {
	env, cookie := menuEnv(t)

	_, body := env.do(t, "GET", "/menus?new=1", "", cookie)
	assert.Contains(t, body, `<option value="/" selected>Home</option>`)
	assert.Contains(t, body, `<option value="/categories/math">Math</option>`)
	assert.Contains(t, body, `<option value="/categories/physics">Physics</option>`)
	assert.Contains(t, body, `name="order" value="2"`)

	_, body = env.do(t, "GET", "/menus/docs/edit", "", cookie)
	assert.Contains(t, body, `<option value="/categories/math" selected>Math</option>`)
	assert.Contains(t, body, `<option value="home" selected>Home</option>`)
}

func TestMenuEditKeepsUnknownLinkAsCurrent(t *testing.T) {
	env, cookie := menuEnv(t)
	env.api.on("GET /menus", http.StatusOK, `[{"id":"blog","label":"Blog","link":"https://blog.edumarket.test","order":1}]`).
		on("GET /menus/tree", http.StatusOK, `[{"id":"blog","label":"Blog","link":"https://blog.edumarket.test","order":1}]`)

	_, body := env.do(t, "GET", "/menus/blog/edit", "", cookie)
	assert.Contains(t, body, `<option value="https://blog.edumarket.test" selected>https://blog.edumarket.test (current)</option>`)
}

func TestMenuCreateSendsNullParent(t *testing.T) {
	env, cookie := menuEnv(t)
	env.api.on("POST /menus", http.StatusCreated, ok)

	resp, _ := env.do(t, "POST", "/menus", "label=Physics&link=%2Fcategories%2Fphysics&order=2", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/menus?notice=created", resp.Header.Get("Location"))

	calls := env.api.callsTo("POST", "/menus")
	require.Len(t, calls, 1)
	parent, present := calls[0].Body["parentId"]
	assert.True(t, present, "parentId is sent explicitly")
	assert.Nil(t, parent)
	assert.Equal(t, "/categories/physics", calls[0].Body["link"])
}

func TestMenuCustomLinkWinsOverPicker(t *testing.T) {
	env, cookie := menuEnv(t)
	env.api.on("PATCH /menus/docs", http.StatusOK, ok)

	resp, _ := env.do(t, "POST", "/menus/docs", "label=Docs&link=%2F&link_custom=%2Fdocs%2Fhelp&order=1&parent_id=home", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	calls := env.api.callsTo("PATCH", "/menus/docs")
	require.Len(t, calls, 1)
	assert.Equal(t, "/docs/help", calls[0].Body["link"])
	assert.Equal(t, "home", calls[0].Body["parentId"])
}

func TestMenuRejectsBadLinkAndSelfParent(t *testing.T) {
	env, cookie := menuEnv(t)

	resp, body := env.do(t, "POST", "/menus", "label=X&link=javascript%3Aalert(1)&order=1", cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Link must be a site path")

	resp, body = env.do(t, "POST", "/menus/home", "label=Home&link=%2F&order=1&parent_id=docs", cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Choose a parent that exists")

	assert.Empty(t, env.api.callsTo("POST", "/menus"))
	assert.Empty(t, env.api.callsTo("PATCH", "/menus/home"))
}

func TestMenuReparentTakesNextOrder(t *testing.T) {
	env, cookie := menuEnv(t)
	env.api.on("PATCH /menus/docs", http.StatusOK, ok)

	resp, _ := env.do(t, "POST", "/menus/docs", "label=Docs&link=%2Fcategories%2Fmath&order=1&parent_id=&prefill_parent=home", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	calls := env.api.callsTo("PATCH", "/menus/docs")
	require.Len(t, calls, 1)
	assert.Nil(t, calls[0].Body["parentId"])
	assert.Equal(t, float64(2), calls[0].Body["order"], "after home at the root")
}

func TestMenuCreateAuditsNewID(t *testing.T) {
	env, cookie := menuEnv(t)
	env.api.on("POST /menus", http.StatusCreated, `{"success":true,"data":{"id":"m9"}}`)

	resp, _ := env.do(t, "POST", "/menus", "label=Physics&link=%2Fcategories%2Fphysics&order=2", cookie)
	require.Equal(t, http.StatusFound, resp.StatusCode)

	history, err := env.audit.ForEntity("menu", "m9")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "menus.create", history[0].Action)
}

func TestMenuFormWithoutCategoriesIsLogged(t *testing.T) {
	env, cookie := menuEnv(t)
	env.api.on("GET /categories", http.StatusInternalServerError, `{"message":"boom"}`)
	logs := observeLogs(t)

	resp, body := env.do(t, "GET", "/menus?new=1", "", cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, `<option value="/" selected>Home</option>`)
	assert.Len(t, logs.FilterMessage("menus.links.fail").All(), 1)
}

func TestMenuFormCategories401SignsOut(t *testing.T) {
	env, cookie := menuEnv(t)
	env.api.on("GET /categories", http.StatusUnauthorized, `{"message":"Unauthorized"}`)

	resp, _ := env.do(t, "GET", "/menus/docs/edit", "", cookie)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}
