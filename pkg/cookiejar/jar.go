package cookiejar

import (
	"net/http"
	"time"
)

// Jar reads and writes named cookies with a fixed set of default attributes.
// It replaces ad hoc Cookie header string handling with typed accessors so
// that attributes like Path and SameSite are always set explicitly.
type Jar struct {
	defaults Options
}

// New creates a jar with the given default attributes applied to every write.
// Defaults are Path "/", HttpOnly and SameSite=Lax unless overridden.
func New(opts ...Option) *Jar {
	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Jar{defaults: applyOptions(defaults, opts)}
}

// Set writes a cookie on the response. Per-call options override the jar
// defaults for this write only.
func (j *Jar) Set(w http.ResponseWriter, name, value string, opts ...Option) {
	options := applyOptions(j.defaults, opts)

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		Expires:  options.Expires,
		MaxAge:   options.MaxAge,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// Get returns the value of the named request cookie. Absence is reported as
// false, never as an error.
func (j *Jar) Get(r *http.Request, name string) (string, bool) {
	cookie, err := r.Cookie(name)
	if err != nil {
		return "", false
	}
	return cookie.Value, true
}

// Delete expires the named cookie on the response. Existing clients inspect
// raw Set-Cookie headers, so the representation is fixed: an empty value with
// the Unix epoch as the Expires attribute and no Max-Age.
func (j *Jar) Delete(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     j.defaults.Path,
		Domain:   j.defaults.Domain,
		Expires:  time.Unix(0, 0),
		Secure:   j.defaults.Secure,
		HttpOnly: j.defaults.HttpOnly,
		SameSite: j.defaults.SameSite,
	})
}
