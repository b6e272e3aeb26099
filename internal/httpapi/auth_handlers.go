package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/akshitagupta/varnmala/internal/store"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Context key for user data
type contextKey string

const userContextKey contextKey = "user"

// JWTClaims represents the claims in the JWT token
type JWTClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// AuthUser represents the authenticated user in request context
type AuthUser struct {
	ID    string
	Email string
}

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// isStrongPassword requires at least 8 characters including an uppercase
// letter, a lowercase letter, a digit and one of @$!%*?&.
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, special bool
	for _, c := range password {
		switch {
		case unicode.IsLower(c):
			lower = true
		case unicode.IsUpper(c):
			upper = true
		case unicode.IsDigit(c):
			digit = true
		case strings.ContainsRune("@$!%*?&", c):
			special = true
		}
	}
	return lower && upper && digit && special
}

// withAuth is middleware that requires valid JWT authentication
func (r *Router) withAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		authHeader := req.Header.Get("Authorization")
		if authHeader == "" {
			writeError(w, http.StatusUnauthorized, "missing authorization header")
			return
		}

		// Expect "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			writeError(w, http.StatusUnauthorized, "invalid authorization format")
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(r.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		claims, ok := token.Claims.(*JWTClaims)
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid token claims")
			return
		}

		user := &AuthUser{ID: claims.UserID, Email: claims.Email}
		ctx := context.WithValue(req.Context(), userContextKey, user)
		next.ServeHTTP(w, req.WithContext(ctx))
	}
}

// getAuthUser extracts the authenticated user from context
func getAuthUser(ctx context.Context) *AuthUser {
	user, _ := ctx.Value(userContextKey).(*AuthUser)
	return user
}

// generateJWT creates a new JWT token for a user
func (r *Router) generateJWT(user *store.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(r.cfg.JWTExpiry)

	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: user.ID,
		Email:  user.Email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(r.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// handleSignup registers a new learner account.
func (r *Router) handleSignup(w http.ResponseWriter, req *http.Request) {
	if r.store == nil {
		writeError(w, http.StatusServiceUnavailable, "user accounts not configured")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !isValidEmail(body.Email) {
		writeError(w, http.StatusBadRequest, "invalid email format")
		return
	}
	if !isStrongPassword(body.Password) {
		writeError(w, http.StatusBadRequest,
			"password must have at least 8 characters including uppercase, lowercase, number, and special character")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		r.logger.Printf("auth: hash password: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if _, err := r.store.CreateUser(req.Context(), body.Email, string(hash)); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			writeError(w, http.StatusBadRequest, "email already registered")
			return
		}
		r.logger.Printf("auth: create user: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Registration successful"})
}

// handleSignin checks credentials and issues a JWT.
func (r *Router) handleSignin(w http.ResponseWriter, req *http.Request) {
	if r.store == nil {
		writeError(w, http.StatusServiceUnavailable, "user accounts not configured")
		return
	}

	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := r.store.GetUserByEmail(req.Context(), body.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		r.logger.Printf("auth: lookup user: %v", err)
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	token, expiresAt, err := r.generateJWT(user)
	if err != nil {
		r.logger.Printf("auth: generate JWT: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
		"user":       user,
	})
}

// handleGetMe returns the current user's data.
func (r *Router) handleGetMe(w http.ResponseWriter, req *http.Request) {
	if r.store == nil {
		writeError(w, http.StatusServiceUnavailable, "user accounts not configured")
		return
	}
	authUser := getAuthUser(req.Context())
	if authUser == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	user, err := r.store.GetUserByID(req.Context(), authUser.ID)
	if err != nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user": user})
}
