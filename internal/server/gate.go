package server

import (
	"crypto/subtle"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// PasswordHeader carries the shared access password on /api requests.
const PasswordHeader = "X-Access-Password"

// Gate limits /api to clients that know the shared password. Each client IP
// gets a fixed number of wrong attempts before it is blocked for a while.
// The IP comes from gin's ClientIP, so X-Forwarded-For only counts when the
// peer is a trusted proxy (see WithTrustedProxies).
type Gate struct {
	password    string
	maxAttempts int
	block       time.Duration
	now         func() time.Time

	mu      sync.Mutex
	clients map[string]*gateClient
}

type gateClient struct {
	failures     int
	blockedUntil time.Time
}

// NewGate returns a gate. An empty password lets every request through.
func NewGate(password string, maxAttempts int, block time.Duration) *Gate {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Gate{
		password:    password,
		maxAttempts: maxAttempts,
		block:       block,
		now:         time.Now,
		clients:     make(map[string]*gateClient),
	}
}

type gateResult int

const (
	gateOpen gateResult = iota
	gateMissing
	gateWrong
	gateBlocked
)

// check records one attempt from ip and reports the outcome together with
// the remaining attempts or the time left on the block.
func (g *Gate) check(ip, password string) (gateResult, int, time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	cl := g.clients[ip]
	if cl != nil && !cl.blockedUntil.IsZero() {
		if now.Before(cl.blockedUntil) {
			return gateBlocked, 0, cl.blockedUntil.Sub(now)
		}
		delete(g.clients, ip)
		cl = nil
	}

	if password == "" {
		failures := 0
		if cl != nil {
			failures = cl.failures
		}
		return gateMissing, g.maxAttempts - failures, 0
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(g.password)) == 1 {
		delete(g.clients, ip)
		return gateOpen, g.maxAttempts, 0
	}

	if cl == nil {
		if len(g.clients) >= sweepThreshold {
			g.sweep(now)
		}
		cl = &gateClient{}
		g.clients[ip] = cl
	}
	cl.failures++
	if cl.failures >= g.maxAttempts {
		cl.blockedUntil = now.Add(g.block)
		return gateBlocked, 0, g.block
	}
	return gateWrong, g.maxAttempts - cl.failures, 0
}

// sweepThreshold is the number of tracked clients above which expired
// blocks are dropped before a new client is added.
const sweepThreshold = 1024

func (g *Gate) sweep(now time.Time) {
	for ip, cl := range g.clients {
		if !cl.blockedUntil.IsZero() && !now.Before(cl.blockedUntil) {
			delete(g.clients, ip)
		}
	}
}

// Middleware enforces the gate on a route group.
func (g *Gate) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if g == nil || g.password == "" {
			c.Next()
			return
		}

		result, remaining, wait := g.check(c.ClientIP(), c.GetHeader(PasswordHeader))
		switch result {
		case gateOpen:
			c.Next()
		case gateMissing:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":              "Password required",
				"remaining_attempts": remaining,
			})
		case gateWrong:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":              "Invalid password",
				"remaining_attempts": remaining,
			})
		case gateBlocked:
			secs := int(math.Ceil(wait.Seconds()))
			c.Header("Retry-After", strconv.Itoa(secs))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":               "Too many failed attempts",
				"retry_after_seconds": secs,
			})
		}
	}
}
