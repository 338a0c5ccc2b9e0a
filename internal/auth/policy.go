package auth

import mapset "github.com/deckarep/golang-set/v2"

const (
	LoginPath      = "/_accounts/login/"
	AdminLoginPath = "/admin/login/"
	LogoutPath     = "/_accounts/logout/"
)

// Policy decides which paths can be requested without signing in.
type Policy struct {
	public mapset.Set[string]
}

func NewPolicy(public ...string) *Policy {
	return &Policy{public: mapset.NewSet(public...)}
}

// DefaultPolicy only lets the login pages through.
func DefaultPolicy() *Policy {
	return NewPolicy(LoginPath, AdminLoginPath)
}

// Public reports whether path needs no authentication.
func (p *Policy) Public(path string) bool {
	return p.public.Contains(path)
}
