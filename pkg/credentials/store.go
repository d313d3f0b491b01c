package credentials

import "time"

// Store persists opaque credential values keyed by name. Implementations must
// behave identically whether invoked during page rendering or from a
// background call. A missing key is reported as false, never as an error.
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string, ttl time.Duration)
	Delete(name string)
}
