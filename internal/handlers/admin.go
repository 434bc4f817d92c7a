package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"

	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/actions"
	"github.com/Saxon-Commits/wilsons-seafoods-v2/internal/store"
)

const adminSession = "admin-session"

type AdminHandler struct {
	Store        *store.Store
	Actions      *actions.Actions
	SessionStore *sessions.CookieStore
	Templates    *TemplateCache
}

// page renders an admin template with the CSRF field, pending flashes and the
// active nav section filled in.
func (h *AdminHandler) page(w http.ResponseWriter, r *http.Request, name, section string, data map[string]interface{}) {
	session, _ := h.SessionStore.Get(r, adminSession)
	if data == nil {
		data = map[string]interface{}{}
	}
	data["CsrfField"] = csrf.TemplateField(r)
	data["Flashes"] = GetFlash(session)
	data["Section"] = section
	session.Save(r, w) // Save session to clear flashes
	h.Templates.Render(w, http.StatusOK, name, data)
}

// redirect saves the session before redirecting so flashes survive.
func (h *AdminHandler) redirect(w http.ResponseWriter, r *http.Request, session *sessions.Session, to string) {
	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
	}
	http.Redirect(w, r, to, http.StatusSeeOther)
}

func (h *AdminHandler) flashRedirect(w http.ResponseWriter, r *http.Request, res actions.Result, success, to string) {
	session, _ := h.SessionStore.Get(r, adminSession)
	flashResult(session, res, success)
	h.redirect(w, r, session, to)
}

func (h *AdminHandler) flashError(w http.ResponseWriter, r *http.Request, msg, to string) {
	session, _ := h.SessionStore.Get(r, adminSession)
	session.AddFlash(FlashMessage{Type: "error", Message: msg})
	h.redirect(w, r, session, to)
}

func (h *AdminHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, "login.html", "", nil)
}

func (h *AdminHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSession)

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.Store.GetUserByUsername(r.Context(), username)
	if err != nil {
		slog.Error("Failed to look up user", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Internal Server Error"})
		h.redirect(w, r, session, "/admin/login")
		return
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		slog.Warn("Failed login attempt", "username", username, "ip", clientIP(r))
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid username or password"})
		h.redirect(w, r, session, "/admin/login")
		return
	}

	// Set authenticated session
	session.Values["authenticated"] = true
	session.Values["user_id"] = user.ID
	session.Options.Path = "/"
	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + user.Username + "!"})

	if err := session.Save(r, w); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	slog.Info("Login successful, redirecting to /admin", "user_id", user.ID)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, adminSession)
	session.Values["authenticated"] = false
	delete(session.Values, "user_id")
	session.AddFlash(FlashMessage{Type: "success", Message: "Logged out successfully!"})
	h.redirect(w, r, session, "/admin/login")
}

// AuthMiddleware ensures the user is logged in
func (h *AdminHandler) AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := h.SessionStore.Get(r, adminSession)
		if auth, ok := session.Values["authenticated"].(bool); !ok || !auth {
			slog.Info("AuthMiddleware: User not authenticated, redirecting to /admin/login", "path", r.URL.Path)
			session.AddFlash(FlashMessage{Type: "error", Message: "You must be logged in to access this page."})
			h.redirect(w, r, session, "/admin/login")
			return
		}
		slog.Debug("AuthMiddleware: User authenticated", "user_id", session.Values["user_id"], "path", r.URL.Path)
		next(w, r)
	}
}

func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.GetDashboardStats(r.Context())
	if err != nil {
		slog.Error("Failed to load dashboard stats", "error", err)
		http.Error(w, "Error fetching stats", http.StatusInternalServerError)
		return
	}

	messages, err := h.Store.GetContactSubmissions(r.Context())
	if err != nil {
		slog.Error("Failed to load messages", "error", err)
	}
	if len(messages) > 5 {
		messages = messages[:5]
	}

	h.page(w, r, "admin.html", "dashboard", map[string]interface{}{
		"Stats":    stats,
		"Messages": messages,
	})
}
