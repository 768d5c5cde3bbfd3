package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/middleware"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/service"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"
)

type AuthHTTP struct {
	svc     *service.AuthService
	users   repository.UserRepository
	entries repository.EntryRepository
	log     zerolog.Logger
}

func NewAuthHTTP(s *service.AuthService, users repository.UserRepository, entries repository.EntryRepository, log zerolog.Logger) *AuthHTTP {
	return &AuthHTTP{svc: s, users: users, entries: entries, log: log}
}

type credentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/register: public; role is always student.
func (h *AuthHTTP) Register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in credentialsDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.Register(r.Context(), in.Email, in.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				utils.Error(w, http.StatusBadRequest, "email already in use")
			case errors.Is(err, service.ErrInvalidInput):
				utils.Error(w, http.StatusBadRequest, "invalid email or password")
			default:
				h.log.Error().Err(err).Msg("register failed")
				utils.Error(w, http.StatusInternalServerError, "failed to register")
			}
			return
		}
		token, err := h.svc.Issue(r.Context(), u)
		if err != nil {
			h.log.Error().Err(err).Msg("token issue failed")
			utils.Error(w, http.StatusInternalServerError, "failed to register")
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{"user": u, "token": token})
	}
}

// POST /api/auth/create-admin: admin only; no token is issued for the new
// account.
func (h *AuthHTTP) CreateAdmin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in credentialsDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		u, err := h.svc.CreateAdmin(r.Context(), in.Email, in.Password)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrEmailTaken):
				utils.Error(w, http.StatusBadRequest, "email already in use")
			case errors.Is(err, service.ErrInvalidInput):
				utils.Error(w, http.StatusBadRequest, "invalid email or password")
			default:
				h.log.Error().Err(err).Msg("create admin failed")
				utils.Error(w, http.StatusInternalServerError, "failed to create admin")
			}
			return
		}
		utils.JSON(w, http.StatusCreated, map[string]any{
			"message": "admin account created",
			"admin":   map[string]string{"id": u.ID, "email": u.Email},
		})
	}
}

// POST /api/auth/login
func (h *AuthHTTP) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in credentialsDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		token, u, err := h.svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			// Unknown email and wrong password are indistinguishable here.
			if errors.Is(err, service.ErrInvalidCredentials) {
				utils.Error(w, http.StatusUnauthorized, "invalid credentials")
				return
			}
			h.log.Error().Err(err).Msg("login failed")
			utils.Error(w, http.StatusInternalServerError, "failed to log in")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]any{"user": u, "token": token})
	}
}

// GET /api/auth/me
func (h *AuthHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		u, err := h.users.GetByID(r.Context(), uid)
		if err != nil {
			h.log.Error().Err(err).Msg("me lookup failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch user")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// POST /api/auth/logout: revokes only the session that made this request.
func (h *AuthHTTP) Logout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		tok, _ := utils.GetString(r.Context(), middleware.CtxToken)
		if err := h.svc.Logout(r.Context(), uid, tok); err != nil {
			h.log.Error().Err(err).Msg("logout failed")
			utils.Error(w, http.StatusInternalServerError, "failed to log out")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// GET /api/auth/students: admin view of every student with their entries.
func (h *AuthHTTP) StudentsWithEntries() http.HandlerFunc {
	type studentEntries struct {
		Student models.User        `json:"student"`
		Entries []models.WorkEntry `json:"workEntries"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		students, err := h.users.ListByRole(r.Context(), models.RoleStudent, "")
		if err != nil {
			h.log.Error().Err(err).Msg("student list failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch students")
			return
		}
		out := make([]studentEntries, 0, len(students))
		for _, s := range students {
			entries, err := h.entries.ListByStudent(r.Context(), s.ID)
			if err != nil {
				h.log.Error().Err(err).Str("student", s.ID).Msg("entry list failed")
				utils.Error(w, http.StatusInternalServerError, "failed to fetch students")
				return
			}
			if entries == nil {
				entries = []models.WorkEntry{}
			}
			out = append(out, studentEntries{Student: s, Entries: entries})
		}
		utils.JSON(w, http.StatusOK, out)
	}
}

// GET /api/auth/admins
func (h *AuthHTTP) Admins() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := h.users.ListByRole(r.Context(), models.RoleAdmin, "")
		if err != nil {
			h.log.Error().Err(err).Msg("admin list failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch admins")
			return
		}
		if admins == nil {
			admins = []models.User{}
		}
		utils.JSON(w, http.StatusOK, admins)
	}
}
