// Package admin is the session-authenticated operator console. It is a
// separate authentication domain from the token-based resource API: operators
// log in with email and password, the session lives in Redis, and only staff
// accounts get past the gate.
package admin

import (
	"context"
	"embed"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkorchagin/recipe-api/internal/logger"
	"github.com/dkorchagin/recipe-api/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// SessionCookie is the name of the admin session cookie.
const SessionCookie = "admin_session"

// Authenticator resolves an identity from credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*models.UserDB, error)
}

// UserCreator creates accounts with explicit privilege flags.
type UserCreator interface {
	CreateUser(ctx context.Context, email, password, name string, isStaff, isSuperuser bool) (*models.UserDB, error)
}

// UserReader defines the read operations the console needs.
type UserReader interface {
	GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error)
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserUpdater defines the write operations the console needs. A nil
// passwordHash keeps the stored password.
type UserUpdater interface {
	Update(ctx context.Context, userID uuid.UUID, name string, isActive, isStaff, isSuperuser bool, passwordHash *string) (*models.UserDB, error)
}

// SessionStore persists admin sessions.
type SessionStore interface {
	Save(ctx context.Context, sessionID string, userID uuid.UUID) error
	Get(ctx context.Context, sessionID string) (uuid.UUID, error)
	Delete(ctx context.Context, sessionID string) error
}

// Console bundles the operator console handlers.
type Console struct {
	auth     Authenticator
	creator  UserCreator
	reader   UserReader
	updater  UserUpdater
	sessions SessionStore
}

// NewConsole creates a Console.
func NewConsole(auth Authenticator, creator UserCreator, reader UserReader, updater UserUpdater, sessions SessionStore) *Console {
	return &Console{
		auth:     auth,
		creator:  creator,
		reader:   reader,
		updater:  updater,
		sessions: sessions,
	}
}

// Router returns the console routes, meant to be mounted at /admin.
func (c *Console) Router() chi.Router {
	r := chi.NewRouter()

	r.Get("/login", c.loginPage)
	r.Post("/login", c.login)
	r.Post("/logout", c.logout)

	r.Group(func(r chi.Router) {
		r.Use(c.requireStaff)
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/admin/users", http.StatusFound)
		})
		r.Get("/users", c.listUsers)
		r.Get("/users/new", c.newUserPage)
		r.Post("/users/new", c.createUser)
		r.Get("/users/{id}", c.editUserPage)
		r.Post("/users/{id}", c.updateUser)
	})

	return r
}

// requireStaff resolves the session cookie to a staff user or redirects to the
// login page.
func (c *Console) requireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}

		userID, err := c.sessions.Get(r.Context(), cookie.Value)
		if err != nil || userID == uuid.Nil {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}

		user, err := c.reader.GetByID(r.Context(), userID)
		if err != nil || user == nil || !user.IsStaff || !user.IsActive {
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (c *Console) loginPage(w http.ResponseWriter, r *http.Request) {
	c.render(w, "login.html", map[string]any{})
}

func (c *Console) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	user, err := c.auth.Authenticate(r.Context(), r.PostFormValue("email"), r.PostFormValue("password"))
	if err != nil || !user.IsStaff {
		w.WriteHeader(http.StatusUnauthorized)
		c.render(w, "login.html", map[string]any{"Error": "Invalid credentials"})
		return
	}

	sessionID := uuid.New().String()
	if err := c.sessions.Save(r.Context(), sessionID, user.UserID); err != nil {
		logger.Log.Errorw("failed to save session", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionID,
		Path:     "/admin",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

func (c *Console) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := c.sessions.Delete(r.Context(), cookie.Value); err != nil {
			logger.Log.Errorw("failed to delete session", "err", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/admin",
		MaxAge:   -1,
		HttpOnly: true,
	})
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

func (c *Console) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := c.reader.List(r.Context())
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	c.render(w, "users.html", map[string]any{"Users": users})
}

func (c *Console) newUserPage(w http.ResponseWriter, r *http.Request) {
	c.render(w, "user_form.html", map[string]any{"IsNew": true})
}

func (c *Console) createUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	_, err := c.creator.CreateUser(
		r.Context(),
		r.PostFormValue("email"),
		r.PostFormValue("password"),
		r.PostFormValue("name"),
		r.PostFormValue("is_staff") == "on",
		r.PostFormValue("is_superuser") == "on",
	)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		c.render(w, "user_form.html", map[string]any{"IsNew": true, "Error": err.Error()})
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

func (c *Console) editUserPage(w http.ResponseWriter, r *http.Request) {
	user := c.lookupUser(w, r)
	if user == nil {
		return
	}

	c.render(w, "user_form.html", map[string]any{"User": user})
}

func (c *Console) updateUser(w http.ResponseWriter, r *http.Request) {
	user := c.lookupUser(w, r)
	if user == nil {
		return
	}

	if err := r.ParseForm(); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	// An empty password field keeps the stored hash.
	var passwordHash *string
	if password := r.PostFormValue("password"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		s := string(hashed)
		passwordHash = &s
	}

	_, err := c.updater.Update(
		r.Context(),
		user.UserID,
		r.PostFormValue("name"),
		r.PostFormValue("is_active") == "on",
		r.PostFormValue("is_staff") == "on",
		r.PostFormValue("is_superuser") == "on",
		passwordHash,
	)
	if err != nil {
		logger.Log.Errorw("failed to update user", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/users", http.StatusFound)
}

func (c *Console) lookupUser(w http.ResponseWriter, r *http.Request) *models.UserDB {
	userID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return nil
	}

	user, err := c.reader.GetByID(r.Context(), userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return nil
	}
	if user == nil {
		http.NotFound(w, r)
		return nil
	}

	return user
}

func (c *Console) render(w http.ResponseWriter, name string, data map[string]any) {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		logger.Log.Errorw("failed to render template", "template", name, "err", err)
	}
}
