package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"Radiant/internal/repo"
)

const (
	CookieName = "session_token"
	sessionTTL = 30 * 24 * time.Hour
	minPassLen = 6
)

type contextKey string

const userKey contextKey = "user"

// User is the identity carried in a session token.
type User struct {
	ID    int
	Login string
}

type Service struct {
	Key  []byte
	Repo repo.Repository
	// Secure marks the session cookie HTTPS only.
	Secure bool
	now    func() time.Time
}

func NewService(key []byte, r repo.Repository, secure bool) *Service {
	return &Service{Key: key, Repo: r, Secure: secure, now: time.Now}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type registerRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(b), err
}

// UserFrom returns the user RequireUser stored in ctx.
func UserFrom(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(userKey).(User)
	return u, ok && u.ID != 0
}

func (s *Service) Token(u User) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": u.ID,
		"login":   u.Login,
		"exp":     s.now().Add(sessionTTL).Unix(),
	})
	return token.SignedString(s.Key)
}

// Parse validates a session token and extracts the user.
func (s *Service) Parse(tokenString string) (User, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (any, error) {
		return s.Key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return User{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return User{}, errors.New("unexpected claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return User{}, errors.New("missing user_id")
	}
	login, ok := claims["login"].(string)
	if !ok || login == "" {
		return User{}, errors.New("missing login")
	}
	return User{ID: int(id), Login: login}, nil
}

func tokenFrom(r *http.Request) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if c, err := r.Cookie(CookieName); err == nil {
		return c.Value
	}
	return ""
}

// RequireUser rejects requests without a valid session cookie or bearer
// token.
func (s *Service) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := tokenFrom(r)
		if raw == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		u, err := s.Parse(raw)
		if err != nil {
			log.WithError(err).Debug("session rejected")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userKey, u)))
	})
}

func (s *Service) setCookie(w http.ResponseWriter, u User) error {
	token, err := s.Token(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Expires:  s.now().Add(sessionTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *Service) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "Login, email and password required", http.StatusBadRequest)
		return
	}
	if len(req.Password) < minPassLen {
		http.Error(w, "Password too short", http.StatusBadRequest)
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		log.WithError(err).Error("hash password")
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}
	id, err := s.Repo.CreateUser(r.Context(), req.Login, req.Email, hash)
	if errors.Is(err, repo.ErrDuplicate) {
		http.Error(w, "User already exists", http.StatusConflict)
		return
	}
	if err != nil {
		log.WithError(err).WithField("login", req.Login).Error("create user")
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}

	if err := s.setCookie(w, User{ID: id, Login: req.Login}); err != nil {
		log.WithError(err).Error("sign session")
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte("Registration successful"))
}

func (s *Service) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		http.Error(w, "Login and password required", http.StatusBadRequest)
		return
	}

	id, hash, err := s.Repo.GetByLogin(r.Context(), req.Login)
	if err != nil {
		log.WithError(err).WithField("login", req.Login).Error("look up user")
		http.Error(w, "Storage error", http.StatusInternalServerError)
		return
	}
	if id == 0 || bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		http.Error(w, "Invalid login or password", http.StatusUnauthorized)
		return
	}
	if err := s.setCookie(w, User{ID: id, Login: req.Login}); err != nil {
		log.WithError(err).Error("sign session")
		http.Error(w, "Session error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("Authentication successful"))
}

func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
