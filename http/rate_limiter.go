package http

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"
)

type clientBucket struct {
	tokens     float64
	lastRefill time.Time
}

// RateLimiter is a per-client token bucket holding capacity tokens and
// refilling capacity tokens per window. Client identity is the socket peer,
// or the forwarded address when the peer is a trusted proxy.
type RateLimiter struct {
	mu             sync.Mutex
	capacity       float64
	window         time.Duration
	trustedProxies []netip.Prefix
	clients        map[string]*clientBucket
	now            func() time.Time
	stopCleanup    chan struct{}
	stopOnce       sync.Once
}

func NewRateLimiter(capacity int, window time.Duration, trustedProxies []netip.Prefix) *RateLimiter {
	if window <= 0 {
		window = time.Minute
	}
	rl := &RateLimiter{
		capacity:       float64(capacity),
		window:         window,
		trustedProxies: trustedProxies,
		clients:        make(map[string]*clientBucket),
		now:            time.Now,
		stopCleanup:    make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(r.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

// cleanup drops buckets that have refilled completely; they are
// indistinguishable from a client never seen before.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, bucket := range r.clients {
		if r.refilled(bucket, now) >= r.capacity {
			delete(r.clients, client)
		}
	}
}

func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow consumes one token for client. A non-positive capacity disables limiting.
func (r *RateLimiter) Allow(client string) bool {
	if r.capacity <= 0 {
		return true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[client]
	if !exists {
		r.clients[client] = &clientBucket{tokens: r.capacity - 1, lastRefill: now}
		return true
	}

	bucket.tokens = r.refilled(bucket, now)
	bucket.lastRefill = now

	if bucket.tokens < 1 {
		return false
	}
	bucket.tokens--
	return true
}

func (r *RateLimiter) refilled(bucket *clientBucket, now time.Time) float64 {
	elapsed := now.Sub(bucket.lastRefill)
	tokens := bucket.tokens + r.capacity*elapsed.Seconds()/r.window.Seconds()
	return min(tokens, r.capacity)
}

func (r *RateLimiter) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// ClientKey identifies the caller of req. X-Forwarded-For is only read when
// the peer is a trusted proxy; hops are walked right to left and the first
// untrusted address is the client.
func (r *RateLimiter) ClientKey(req *http.Request) string {
	peer, ok := parseHost(req.RemoteAddr)
	if !ok {
		return req.RemoteAddr
	}
	if !r.trusted(peer) {
		return peer.String()
	}

	hops := strings.Split(req.Header.Get("X-Forwarded-For"), ",")
	client := peer
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		client = hop.Unmap()
		if !r.trusted(client) {
			break
		}
	}
	return client.String()
}

func (r *RateLimiter) trusted(addr netip.Addr) bool {
	for _, p := range r.trustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func parseHost(remoteAddr string) (netip.Addr, bool) {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	addr, err := netip.ParseAddr(host)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
