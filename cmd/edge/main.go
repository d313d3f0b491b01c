package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stocklane/authkit/pkg/apiclient"
	"github.com/stocklane/authkit/pkg/config"
	"github.com/stocklane/authkit/pkg/cookiejar"
	"github.com/stocklane/authkit/pkg/credentials"
	"github.com/stocklane/authkit/pkg/httpserver"
	"github.com/stocklane/authkit/pkg/logger"
	"github.com/stocklane/authkit/pkg/refresh"
	"github.com/stocklane/authkit/pkg/routeguard"
	"github.com/stocklane/authkit/svc/auth"
)

type edgeConfig struct {
	Addr        string `env:"EDGE_ADDR" envDefault:":3000"`
	ServiceName string `env:"EDGE_SERVICE_NAME" envDefault:"stocklane-edge"`
}

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var (
		edgeCfg  edgeConfig
		jarCfg   cookiejar.Config
		credCfg  credentials.Config
		apiCfg   apiclient.Config
		authCfg  auth.Config
		guardCfg routeguard.Config
	)
	config.MustLoad(&edgeCfg)
	config.MustLoad(&jarCfg)
	config.MustLoad(&credCfg)
	config.MustLoad(&apiCfg)
	config.MustLoad(&authCfg)
	config.MustLoad(&guardCfg)

	log := logger.New(logger.WithService(edgeCfg.ServiceName))
	logger.SetAsDefault(log)

	jar := cookiejar.NewFromConfig(jarCfg)
	guard := routeguard.New(guardCfg, jar, routeguard.WithLogger(log))

	// Session state lives in the browser's cookies, so the service stack is
	// assembled per request around that request's cookie store.
	sessions := func(w http.ResponseWriter, r *http.Request) *auth.Service {
		tokens := credentials.NewTokens(credentials.NewCookieStore(jar, w, r), credCfg)
		coord := refresh.New(apiclient.NewRenewer(apiCfg), tokens, refresh.WithLogger(log))
		client := apiclient.New(apiCfg, tokens, coord, apiclient.WithLogger(log))
		return auth.New(client, tokens, coord, authCfg, auth.WithLogger(log))
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(guard.Middleware)

	r.Get("/health-status", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		renderLogin(w, "")
	})

	r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		svc := sessions(w, r)
		creds := auth.Credentials{
			Username: r.FormValue("username"),
			Password: r.FormValue("password"),
		}
		if _, err := svc.Login(r.Context(), creds); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			renderLogin(w, errorMessage(err))
			return
		}
		http.Redirect(w, r, safeReturnPath(r.URL.Query().Get("from"), guardCfg.HomePath), http.StatusFound)
	})

	r.Post("/logout", func(w http.ResponseWriter, r *http.Request) {
		sessions(w, r).Logout()
		http.Redirect(w, r, guardCfg.LoginPath, http.StatusFound)
	})

	r.Get("/dashboard", func(w http.ResponseWriter, r *http.Request) {
		user := sessions(w, r).CurrentUser(r.Context())
		if user == nil {
			// The token passed the guard but does not decode to a session.
			http.Redirect(w, r, guardCfg.LoginPath, http.StatusFound)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<h1>Dashboard</h1><p>Signed in as %s</p>", user.Username)
	})

	return httpserver.New(
		httpserver.WithAddr(edgeCfg.Addr),
		httpserver.WithLogger(log),
	).Run(ctx, r)
}

func renderLogin(w http.ResponseWriter, errMsg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, `<h1>Sign in</h1><form method="post"><input name="username"><input name="password" type="password"><button>Sign in</button></form><p>%s</p>`, errMsg)
}

// safeReturnPath keeps post-login redirects on this site.
func safeReturnPath(from, fallback string) string {
	if from == "" || !strings.HasPrefix(from, "/") || strings.HasPrefix(from, "//") {
		return fallback
	}
	if _, err := url.Parse(from); err != nil {
		return fallback
	}
	return from
}

func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return "sign in failed, try again"
}
