package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Unknown sinaliza que o IP não pôde ser resolvido. Requisições sem
// IP resolvível não passam pelo rate limit (tráfego local/dev).
const Unknown = "unknown"

// FromRequest resolve o IP do cliente por ordem de confiança:
// X-Forwarded-For (primeiro hop), X-Real-IP, RemoteAddr.
func FromRequest(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return first
		}
	}

	if real := strings.TrimSpace(r.Header.Get("X-Real-IP")); real != "" {
		return real
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}

	return Unknown
}
