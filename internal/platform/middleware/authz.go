// Copyright (c) 2026 Mangabay. All rights reserved.

// Session and token authentication for the Mangabay API.
//
// # Architecture
//
// Browsers authenticate with an opaque session cookie backed by Redis; API
// clients may instead send an 'Authorization: Bearer' access token. Both
// paths resolve to the same request-scoped [sec.AuthClaims], so downstream
// handlers never care which transport carried the identity.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/tranquochuy/mangabay/internal/platform/apperr"
	"github.com/tranquochuy/mangabay/internal/platform/constants"
	"github.com/tranquochuy/mangabay/internal/platform/ctxutil"
	"github.com/tranquochuy/mangabay/internal/platform/respond"
	"github.com/tranquochuy/mangabay/internal/platform/sec"
)

// SessionResolver looks up an opaque session ID in the server-side store.
//
// # Why an interface?
//
// Defining SessionResolver here decouples the middleware from the `auth`
// service implementation, allowing us to easily inject fakes during unit
// testing.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*sec.AuthClaims, error)
}

// TokenVerifier defines the interface needed to verify access tokens.
type TokenVerifier interface {
	VerifyToken(tokenStr string) (*sec.AuthClaims, error)
}

// Authenticate resolves the request's identity, if any.
//
// # Flow
//  1. Check for the session cookie; if present, resolve it via [SessionResolver].
//  2. Otherwise check for an 'Authorization: Bearer <token>' header.
//  3. If neither is present, the request proceeds as anonymous.
//  4. Inject [*sec.AuthClaims] into the request context for downstream use.
//
// An expired or unknown session cookie is treated as anonymous rather than an
// error: the cookie may simply have outlived its Redis entry.
func Authenticate(sessions SessionResolver, verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			// ── 1. Session Cookie ─────────────────────────────────────────────
			if cookie, err := request.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
				claims, err := sessions.Resolve(request.Context(), cookie.Value)
				if err == nil && claims != nil {
					ctx := ctxutil.WithAuthUser(request.Context(), claims)
					next.ServeHTTP(writer, request.WithContext(ctx))
					return
				}
				// Stale cookie: fall through as anonymous.
			}

			// ── 2. Bearer Access Token ────────────────────────────────────────
			authHeader := request.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				respond.Error(writer, request, apperr.Unauthorized("Invalid authorization format"))
				return
			}

			claims, err := verifier.VerifyToken(parts[1])
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
				return
			}

			// ── 3. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithAuthUser(request.Context(), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Please log in to access this page"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireAdmin blocks requests whose session role is not admin.
//
// # Usage
//
// Must be registered in the router AFTER [Authenticate]. It implies
// [RequireAuth], so admin route groups only need this one guard.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := ctxutil.GetAuthUser(request.Context())

		// ── 1. Authentication Check ───────────────────────────────────────────
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("Please log in to access this page"))
			return
		}

		// ── 2. Authorization Check ────────────────────────────────────────────
		if !claims.Role.IsAdmin() {
			respond.Error(writer, request, apperr.Forbidden("Admin privileges required"))
			return
		}

		next.ServeHTTP(writer, request)
	})
}
