package cors

import (
	"net/http"
	"slices"
	"strings"
)

const (
	wildcard = "*"
	maxAge   = "600"
)

// allowMethods is sent on preflight responses; every method is allowed.
var allowMethods = strings.Join([]string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodOptions,
}, ", ")

// Policy is the set of origins allowed to read responses cross-origin.
type Policy struct {
	AllowAll bool
	Origins  []string
}

// ParseOrigins turns a comma separated origin list into a Policy. Empty input,
// "*", or a list containing "*" allows every origin.
func ParseOrigins(raw string) Policy {
	if raw == "" || raw == wildcard {
		return Policy{AllowAll: true}
	}

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return Policy{AllowAll: slices.Contains(origins, wildcard), Origins: origins}
}

// Allows reports whether origin may receive CORS headers.
func (p Policy) Allows(origin string) bool {
	return p.AllowAll || slices.Contains(p.Origins, origin)
}

func (p Policy) String() string {
	if p.AllowAll {
		return wildcard
	}
	return strings.Join(p.Origins, ", ")
}

// Middleware applies the policy to every response. Credentials are never allowed.
func Middleware(p Policy, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
			p.preflight(w, r, origin)
			return
		}

		p.setAllowOrigin(w.Header(), origin)
		next.ServeHTTP(w, r)
	})
}

func (p Policy) setAllowOrigin(h http.Header, origin string) {
	if p.AllowAll {
		h.Set("Access-Control-Allow-Origin", wildcard)
		return
	}
	h.Add("Vary", "Origin")
	if p.Allows(origin) {
		h.Set("Access-Control-Allow-Origin", origin)
	}
}

func (p Policy) preflight(w http.ResponseWriter, r *http.Request, origin string) {
	h := w.Header()
	if !p.Allows(origin) {
		h.Add("Vary", "Origin")
		http.Error(w, "Disallowed CORS origin", http.StatusBadRequest)
		return
	}

	p.setAllowOrigin(h, origin)
	h.Set("Access-Control-Allow-Methods", allowMethods)
	if reqHeaders := r.Header.Get("Access-Control-Request-Headers"); reqHeaders != "" {
		h.Set("Access-Control-Allow-Headers", reqHeaders)
	}
	h.Set("Access-Control-Max-Age", maxAge)
	w.WriteHeader(http.StatusOK)
}
