package credentials

// Tokens is a typed accessor for the access/refresh token pair on top of a
// Store. The two tokens are stored as independent entries so each can be read
// and expired on its own. Tokens is the sole owner of the stored values;
// callers must not cache them elsewhere.
type Tokens struct {
	store Store
	cfg   Config
}

// NewTokens wraps the given store with the token pair accessors.
func NewTokens(store Store, cfg Config) *Tokens {
	return &Tokens{store: store, cfg: cfg}
}

// Access returns the stored access token, if any.
func (t *Tokens) Access() (string, bool) {
	return t.store.Get(t.cfg.AccessCookie)
}

// Refresh returns the stored refresh token, if any.
func (t *Tokens) Refresh() (string, bool) {
	return t.store.Get(t.cfg.RefreshCookie)
}

// SetAccess replaces only the access token, leaving the refresh token as is.
func (t *Tokens) SetAccess(token string) {
	t.store.Set(t.cfg.AccessCookie, token, t.cfg.AccessTTL)
}

// SetPair stores a freshly issued token pair.
func (t *Tokens) SetPair(access, refresh string) {
	t.store.Set(t.cfg.AccessCookie, access, t.cfg.AccessTTL)
	t.store.Set(t.cfg.RefreshCookie, refresh, t.cfg.RefreshTTL)
}

// Clear removes both tokens. Deleting absent entries is a no-op, so Clear is
// safe to call repeatedly.
func (t *Tokens) Clear() {
	t.store.Delete(t.cfg.AccessCookie)
	t.store.Delete(t.cfg.RefreshCookie)
}
