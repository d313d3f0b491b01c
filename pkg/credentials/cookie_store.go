package credentials

import (
	"net/http"
	"sync"
	"time"

	"github.com/stocklane/authkit/pkg/cookiejar"
)

// CookieStore persists credentials as cookies, bound to a single
// request/response pair. Writes go to the response; reads consult writes made
// earlier in the same request before falling back to the request cookies, so
// a token renewed mid-request is immediately visible to later reads.
type CookieStore struct {
	jar *cookiejar.Jar
	w   http.ResponseWriter
	r   *http.Request

	mu      sync.Mutex
	pending map[string]*string // nil value marks a deletion
}

// NewCookieStore binds a jar to the given request and response.
func NewCookieStore(jar *cookiejar.Jar, w http.ResponseWriter, r *http.Request) *CookieStore {
	return &CookieStore{
		jar:     jar,
		w:       w,
		r:       r,
		pending: make(map[string]*string),
	}
}

func (s *CookieStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if value, ok := s.pending[name]; ok {
		if value == nil {
			return "", false
		}
		return *value, true
	}

	return s.jar.Get(s.r, name)
}

func (s *CookieStore) Set(name, value string, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	opts := []cookiejar.Option{}
	if ttl > 0 {
		opts = append(opts, cookiejar.WithMaxAge(int(ttl.Seconds())))
	}
	s.jar.Set(s.w, name, value, opts...)
	s.pending[name] = &value
}

func (s *CookieStore) Delete(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jar.Delete(s.w, name)
	s.pending[name] = nil
}
