package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"eduadmin/internal/apiclient"
	"eduadmin/internal/domain"
	applog "eduadmin/internal/log"
	"eduadmin/internal/services"
	"eduadmin/internal/session"
)

// Session moves the bearer token between the sealed browser cookie and
// the request context the API client reads it from.
type Session struct {
	Sealer *session.Sealer
	Secure bool
	Now    func() time.Time
}

func (s *Session) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// cookieTokens is the per-request TokenStore. Clear expires the cookie on
// the response, so a 401 from the API logs the browser out.
type cookieTokens struct {
	c       *fiber.Ctx
	s       *Session
	token   string
	cleared bool
}

func (t *cookieTokens) Token() string { return t.token }

func (t *cookieTokens) Clear() {
	t.token = ""
	if !t.cleared {
		t.cleared = true
		t.s.expire(t.c)
	}
}

func (s *Session) set(c *fiber.Ctx, token string) error {
	v, err := s.Sealer.Seal(token)
	if err != nil {
		return err
	}
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    v,
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.Secure,
	})
	return nil
}

func (s *Session) expire(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
		Secure:   s.Secure,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
}

// Load attaches the token store to every request. Cookies that fail to
// open, or carry an expired JWT, are dropped before any API call.
func (s *Session) Load() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ts := &cookieTokens{c: c, s: s}
		if v := c.Cookies(session.CookieName); v != "" {
			tok, err := s.Sealer.Open(v)
			switch {
			case err != nil:
				applog.Security(c, "session.cookie.invalid", nil)
				ts.Clear()
			case session.Expired(tok, s.now()):
				applog.Security(c, "session.token.expired", map[string]any{"actor": session.Actor(tok)})
				ts.Clear()
			default:
				ts.token = tok
			}
		}
		c.Locals("tokens", ts)
		c.SetUserContext(apiclient.ContextWithTokens(c.UserContext(), ts))
		return c.Next()
	}
}

func tokenOf(c *fiber.Ctx) string {
	if ts, ok := c.Locals("tokens").(*cookieTokens); ok {
		return ts.Token()
	}
	return ""
}

// actor names the signed-in admin in audit entries.
func actor(c *fiber.Ctx) string {
	if p, ok := c.Locals("user").(*domain.Profile); ok && p.Email != "" {
		return p.Email
	}
	return session.Actor(tokenOf(c))
}

// RequireAdmin sends requests without a token to /login. Page loads also
// fetch the profile for the sidebar; a failure there other than 401 does
// not block the page.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenOf(c) == "" {
			return c.Redirect("/login")
		}
		if c.Method() == fiber.MethodGet {
			p, err := auth.Profile(c.UserContext())
			switch {
			case errors.Is(err, apiclient.ErrUnauthorized):
				return reauth(c)
			case err != nil:
				applog.Error(c, "auth.profile.fail", err, nil)
			default:
				c.Locals("user", &p)
			}
		}
		return c.Next()
	}
}

// reauth answers a request whose API call came back 401. The token store
// has already expired the cookie, so the browser reaches /login without a
// session; the login routes never call reauth, so the redirect cannot
// repeat.
func reauth(c *fiber.Ctx) error {
	applog.Security(c, "session.unauthorized", nil)
	return c.Redirect("/login")
}
