package handler

import (
	"context"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"

	"github.com/srgjo27/railway_reservation/internal/core/domain"
	"github.com/srgjo27/railway_reservation/internal/platform/apperror"
	"github.com/srgjo27/railway_reservation/internal/platform/auth"
	"github.com/srgjo27/railway_reservation/internal/platform/logger"
)

type ctxKey struct{}

// claimsFrom returns the authenticated caller. It is only valid behind Authenticate.
func claimsFrom(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(ctxKey{}).(*auth.Claims)
	return claims
}

func userIDFrom(r *http.Request) uuid.UUID {
	claims := claimsFrom(r.Context())
	if claims == nil {
		return uuid.Nil
	}
	id, _ := uuid.Parse(claims.UserID)
	return id
}

type Authenticator struct {
	tokens *auth.TokenIssuer
	log    *logger.Logger
}

func NewAuthenticator(tokens *auth.TokenIssuer, log *logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, log: log}
}

// Authenticate requires a valid "Bearer <jwt>" Authorization header.
func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, a.log, apperror.Unauthorized("missing bearer token"))
			return
		}

		claims, err := a.tokens.Parse(token)
		if err != nil {
			writeError(w, a.log, apperror.Unauthorized("invalid or expired token"))
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)), ps)
	}
}

func (a *Authenticator) RequireAdmin(next httprouter.Handle) httprouter.Handle {
	return a.Authenticate(func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if claims := claimsFrom(r.Context()); claims == nil || claims.Role != domain.RoleAdmin {
			writeError(w, a.log, apperror.Forbidden("admin access required"))
			return
		}
		next(w, r, ps)
	})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter applies a token bucket per client address.
type IPRateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    rate.Limit
	burst    int
	trusted  map[string]bool
	log      *logger.Logger
}

// NewIPRateLimiter keys clients by their socket address. X-Forwarded-For is
// only consulted when the request comes from one of trustedProxies.
func NewIPRateLimiter(perSecond float64, burst int, trustedProxies []string, log *logger.Logger) *IPRateLimiter {
	trusted := make(map[string]bool, len(trustedProxies))
	for _, ip := range trustedProxies {
		trusted[strings.TrimSpace(ip)] = true
	}
	return &IPRateLimiter{
		visitors: make(map[string]*visitor),
		limit:    rate.Limit(perSecond),
		burst:    burst,
		trusted:  trusted,
		log:      log,
	}
}

func (l *IPRateLimiter) limiter(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	v, ok := l.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.visitors[ip] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Cleanup forgets clients idle for longer than maxIdle until ctx is done.
func (l *IPRateLimiter) Cleanup(ctx context.Context, maxIdle time.Duration) {
	ticker := time.NewTicker(maxIdle)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.mu.Lock()
			for ip, v := range l.visitors {
				if time.Since(v.lastSeen) > maxIdle {
					delete(l.visitors, ip)
				}
			}
			l.mu.Unlock()
		}
	}
}

func (l *IPRateLimiter) Limit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.limiter(clientIP(r, l.trusted)).Allow() {
			writeError(w, l.log, apperror.TooManyRequests("too many requests, please slow down", nil))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP walks X-Forwarded-For from the right while hops are trusted
// proxies and returns the first untrusted address.
func clientIP(r *http.Request, trusted map[string]bool) string {
	ip := remoteHost(r)
	if !trusted[ip] {
		return ip
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		ip = hop
		if !trusted[hop] {
			break
		}
	}
	return ip
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func Logging(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		log.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
			"ip", remoteHost(r),
		)
	})
}

func Recover(log *logger.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error("panic recovered", "panic", rec, "path", r.URL.Path, "stack", string(debug.Stack()))
				writeError(w, log, apperror.Internal("internal server error", nil))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
