// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package limiter implements the admission control described in spec
// §4.4: a token-bucket rate limit keyed by IP address or, for
// authenticated sessions, by namespace. The teacher repo predates this
// feature entirely; this package ports it from the original Rust
// implementation (src/net/limiter.rs, kept for reference under
// _examples/original_source/) into the concurrency idiom the rest of
// this codebase uses — a single sync.Mutex guarding a plain map, the
// same shape as db/mutex.go's shared lock, rather than Rust's
// Mutex<Inner>.
package limiter

import (
	"net"
	"strings"
	"sync"
	"time"

	"github.com/abcum/surreal/cnf"
)

// unit is the key a request is rate limited under: either a raw client
// IP (untrusted/unauthenticated traffic) or a namespace (root-password-free
// authenticated traffic scoped to a single namespace). Mirrors the Rust
// BlockableUnit enum.
type unit struct {
	kind unitKind
	val  string
}

type unitKind int

const (
	unitIP unitKind = iota
	unitNamespace
)

// Session is the subset of connection state the limiter needs to
// classify a request, mirroring the Rust Session{au, ip} fields.
type Session struct {
	Auth *cnf.Auth
	IP   string
}

type limits struct {
	rateLimitedUntil time.Time
	burstUsed        uint16
}

// Limiter is a process-wide admission gate. One Limiter instance should
// be shared across all connections, the same way db/mutex.go's mutex is
// shared across all document locks.
type Limiter struct {
	mu            sync.Mutex
	limits        map[unit]*limits
	lastPrune     time.Time
	durPerReq     time.Duration
	pruneInterval time.Duration
	burst         uint16
}

// New constructs a Limiter allowing rate requests per second with the
// given burst allowance, matching the Rust Limiter::new(rate_limit, burst).
func New(rate float64, burst uint16) *Limiter {

	durPerReq := time.Duration(float64(time.Second) / rate)

	return &Limiter{
		limits:        make(map[unit]*limits),
		lastPrune:     time.Now(),
		durPerReq:     durPerReq,
		pruneInterval: durPerReq * time.Duration(1+burst),
		burst:         burst,
	}

}

// Default constructs a Limiter from cnf.Settings.Query.RateLimit and
// cnf.Settings.Query.RateLimitBurst.
func Default() *Limiter {
	return New(cnf.Settings.Query.RateLimit, cnf.Settings.Query.RateLimitBurst)
}

// ShouldAllow reports whether a new request from session should be
// admitted, consuming one token from its bucket if so.
func (l *Limiter) ShouldAllow(session Session) bool {
	return l.shouldAllowAt(session, time.Now())
}

func (l *Limiter) shouldAllowAt(session Session, now time.Time) bool {

	u, bypass := classify(session)
	if bypass {
		return true
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.limits[u]
	if !ok {
		lim = &limits{rateLimitedUntil: now}
		l.limits[u] = lim
	}

	var ok2 bool
	switch {
	case now.After(lim.rateLimitedUntil):
		lim.burstUsed = 0
		lim.rateLimitedUntil = now
		ok2 = true
	case lim.burstUsed <= l.burst:
		lim.burstUsed++
		lim.rateLimitedUntil = lim.rateLimitedUntil.Add(l.durPerReq)
		ok2 = true
	default:
		ok2 = false
	}

	if now.Sub(l.lastPrune) > l.pruneInterval {
		l.prune(now)
	}

	return ok2

}

// prune drops every tracked unit whose bucket has already fully
// drained, bounding the map's size the same way the Rust
// inner.limits.retain(...) call does. Must be called with mu held.
func (l *Limiter) prune(now time.Time) {
	l.lastPrune = now
	for k, v := range l.limits {
		if !v.rateLimitedUntil.After(now) {
			delete(l.limits, k)
		}
	}
}

// classify derives the BlockableUnit for session, and reports whether
// the session bypasses rate limiting entirely (root/KV auth, per the
// Rust "if you have the root password, you are never rate-limited").
func classify(session Session) (unit, bool) {

	auth := session.Auth
	if auth == nil {
		auth = cnf.NoAuth()
	}

	switch auth.Kind {
	case cnf.AuthKV:
		return unit{}, true
	case cnf.AuthNS, cnf.AuthDB:
		return unit{kind: unitNamespace, val: auth.NS}, false
	}

	return unit{kind: unitIP, val: normalizeIP(session.IP)}, false

}

// normalizeIP strips an optional trailing ":port" and, for IPv6
// addresses, zeroes the low 80 bits (the last 10 octets), keeping only
// the /48 prefix — the same bits an ISP typically delegates to a single
// customer, so per-address limiting would be trivially evaded by
// requesting a new address within the delegation. Ported from the Rust
// should_allow_at's ip_port.rsplit_once(':') + octets[6..] zeroing.
func normalizeIP(ipPort string) string {

	ip := ipPort

	// A bracketed IPv6 host ("[::1]:1234") carries its own delimiters;
	// split on the closing bracket rather than risk rsplitting one of
	// the address's own colons.
	if strings.HasPrefix(ip, "[") {
		if i := strings.Index(ip, "]"); i >= 0 {
			ip = ip[1:i]
		}
	} else if i := strings.LastIndex(ip, ":"); i >= 0 && strings.Count(ip, ":") == 1 {
		// Only an IPv4 "host:port" pair has exactly one colon; an
		// unbracketed IPv6 literal is used as-is.
		ip = ip[:i]
	}

	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}

	v6 := parsed.To16()
	if v4 := parsed.To4(); v4 != nil {
		return v4.String()
	}

	octets := make(net.IP, len(v6))
	copy(octets, v6)
	for i := 6; i < len(octets); i++ {
		octets[i] = 0
	}

	return octets.String()

}
