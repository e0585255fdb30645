package network

import "math/rand/v2"

// UserAgentPool is a fixed set of User-Agent strings picked from uniformly.
type UserAgentPool []string

// DefaultUserAgents mimics current desktop Chrome, Firefox and Edge builds.
var DefaultUserAgents = UserAgentPool{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/92.0.4515.107 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:89.0) Gecko/20100101 Firefox/89.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36 Edg/91.0.864.59",
}

// Pick returns a random entry, or "" for an empty pool.
func (p UserAgentPool) Pick() string {
	if len(p) == 0 {
		return ""
	}
	return p[rand.IntN(len(p))]
}
