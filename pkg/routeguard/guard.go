package routeguard

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/stocklane/authkit/pkg/cookiejar"
	"github.com/stocklane/authkit/pkg/logger"
)

// Guard decides, before any page handler runs, whether a navigation is
// served or redirected. It is stateless per request: every decision derives
// from the requested path, the presence of the access token cookie, and the
// redirect counter cookie.
//
// The counter is the loop circuit breaker. It grows only while navigations
// keep being redirected and is reset the moment one is served, so a bug or
// corrupted cookie that would bounce the browser between login and home
// forever instead trips the threshold, drops every auth cookie, and lands
// the user on a clean login page.
type Guard struct {
	cfg Config
	jar *cookiejar.Jar
	log *slog.Logger
}

// New creates a guard writing its cookies through jar.
func New(cfg Config, jar *cookiejar.Jar, opts ...Option) *Guard {
	if jar == nil {
		panic("routeguard: cookie jar is required")
	}

	g := &Guard{cfg: cfg, jar: jar}
	for _, opt := range opts {
		opt(g)
	}
	if g.log == nil {
		g.log = logger.Noop()
	}
	return g
}

// Middleware evaluates the routing state machine for each request. Every
// response that passes classification sets the redirect counter explicitly
// (incremented, reset to zero, or removed) so a stale value can never drift
// across navigations.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		count := g.redirectCount(r)

		if count >= g.cfg.Threshold {
			g.log.WarnContext(r.Context(), "redirect loop detected, clearing session",
				slog.String("path", r.URL.Path), slog.Int("redirects", count))
			g.jar.Delete(w, g.cfg.AccessCookie)
			g.jar.Delete(w, g.cfg.RefreshCookie)
			g.jar.Delete(w, g.cfg.CounterCookie)
			http.Redirect(w, r, g.cfg.LoginPath, http.StatusFound)
			return
		}

		_, hasToken := g.jar.Get(r, g.cfg.AccessCookie)

		switch {
		case !g.isPublic(r.URL.Path) && !hasToken:
			g.setCount(w, count+1)
			target := g.cfg.LoginPath + "?from=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusFound)

		case g.isPublic(r.URL.Path) && hasToken:
			g.setCount(w, count+1)
			http.Redirect(w, r, g.cfg.HomePath, http.StatusFound)

		default:
			g.setCount(w, 0)
			next.ServeHTTP(w, r)
		}
	})
}

// redirectCount reads the counter cookie, treating absence or garbage as 0.
func (g *Guard) redirectCount(r *http.Request) int {
	raw, ok := g.jar.Get(r, g.cfg.CounterCookie)
	if !ok {
		return 0
	}
	count, err := strconv.Atoi(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

func (g *Guard) setCount(w http.ResponseWriter, count int) {
	g.jar.Set(w, g.cfg.CounterCookie, strconv.Itoa(count))
}

func (g *Guard) isPublic(path string) bool {
	for _, p := range g.cfg.PublicPaths {
		if path == p {
			return true
		}
	}
	for _, prefix := range g.cfg.PublicPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
