package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/AnunayPatil/Earn-and-learn-backend/internal/middleware"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/models"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/repository"
	"github.com/AnunayPatil/Earn-and-learn-backend/internal/utils"
)

// maxImageSize caps profile image uploads at 5 MiB.
const maxImageSize = 5 << 20

type ProfileHTTP struct {
	users     repository.UserRepository
	uploadDir string
	log       zerolog.Logger
}

func NewProfileHTTP(users repository.UserRepository, uploadDir string, log zerolog.Logger) *ProfileHTTP {
	return &ProfileHTTP{users: users, uploadDir: uploadDir, log: log}
}

// GET /api/profile/me
func (h *ProfileHTTP) Me() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		u, err := h.users.GetByID(r.Context(), uid)
		if err != nil {
			h.log.Error().Err(err).Msg("profile fetch failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch profile")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// PATCH /api/profile/me: student only. The update struct holds exactly the
// mutable fields; unknown JSON keys fall out during decoding.
func (h *ProfileHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var up models.ProfileUpdate
		if err := json.NewDecoder(r.Body).Decode(&up); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if up.Gender != nil {
			switch strings.TrimSpace(*up.Gender) {
			case "male", "female", "other", "":
			default:
				utils.Error(w, http.StatusBadRequest, "invalid gender")
				return
			}
		}

		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		u, err := h.users.UpdateProfile(r.Context(), uid, up)
		if err != nil {
			h.log.Error().Err(err).Msg("profile update failed")
			utils.Error(w, http.StatusInternalServerError, "failed to update profile")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}

		// A newly completed profile moves to pending on its own.
		if u.ProfileStatus == models.ProfileIncomplete && u.ProfileComplete() {
			u, err = h.users.SetProfileStatus(r.Context(), uid, models.ProfilePending, "")
			if err != nil || u == nil {
				h.log.Error().Err(err).Msg("profile auto-submit failed")
				utils.Error(w, http.StatusInternalServerError, "failed to update profile")
				return
			}
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// POST /api/profile/me/submit: student only.
func (h *ProfileHTTP) Submit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		u, err := h.users.GetByID(r.Context(), uid)
		if err != nil {
			h.log.Error().Err(err).Msg("profile fetch failed")
			utils.Error(w, http.StatusInternalServerError, "failed to submit profile")
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		if !u.ProfileComplete() {
			utils.Error(w, http.StatusBadRequest, "profile is incomplete, please fill all required fields")
			return
		}
		// Approved profiles stay approved; rejected ones may resubmit.
		if u.ProfileStatus == models.ProfileApproved {
			utils.Error(w, http.StatusBadRequest, "profile already approved")
			return
		}
		u, err = h.users.SetProfileStatus(r.Context(), uid, models.ProfilePending, "")
		if err != nil || u == nil {
			h.log.Error().Err(err).Msg("profile submit failed")
			utils.Error(w, http.StatusInternalServerError, "failed to submit profile")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{
			"message": "profile submitted for approval",
			"status":  u.ProfileStatus,
		})
	}
}

// POST /api/profile/me/image: multipart "profileImage", jpg/jpeg/png, max 5 MiB.
func (h *ProfileHTTP) UploadImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxImageSize)
		if err := r.ParseMultipartForm(maxImageSize); err != nil {
			utils.Error(w, http.StatusBadRequest, "file too large or malformed upload")
			return
		}
		file, hdr, err := r.FormFile("profileImage")
		if err != nil {
			utils.Error(w, http.StatusBadRequest, "no file uploaded")
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(hdr.Filename))
		switch ext {
		case ".jpg", ".jpeg", ".png":
		default:
			utils.Error(w, http.StatusBadRequest, "only image files are allowed")
			return
		}

		dir := filepath.Join(h.uploadDir, "profiles")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			h.log.Error().Err(err).Msg("upload dir create failed")
			utils.Error(w, http.StatusInternalServerError, "failed to store image")
			return
		}
		name := "profile-" + uuid.NewString() + ext
		dst, err := os.Create(filepath.Join(dir, name))
		if err != nil {
			h.log.Error().Err(err).Msg("image create failed")
			utils.Error(w, http.StatusInternalServerError, "failed to store image")
			return
		}
		defer dst.Close()
		if _, err := io.Copy(dst, file); err != nil {
			h.log.Error().Err(err).Msg("image write failed")
			utils.Error(w, http.StatusInternalServerError, "failed to store image")
			return
		}

		uid, _ := utils.GetString(r.Context(), middleware.CtxUserID)
		u, err := h.users.SetProfileImage(r.Context(), uid, "/uploads/profiles/"+name)
		if err != nil || u == nil {
			h.log.Error().Err(err).Msg("image path persist failed")
			utils.Error(w, http.StatusInternalServerError, "failed to store image")
			return
		}
		utils.JSON(w, http.StatusOK, map[string]string{"profileImage": u.ProfileImage})
	}
}

// GET /api/profile/students?status=: admin.
func (h *ProfileHTTP) ListStudents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := strings.TrimSpace(r.URL.Query().Get("status"))
		students, err := h.users.ListByRole(r.Context(), models.RoleStudent, status)
		if err != nil {
			h.log.Error().Err(err).Msg("student profile list failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch student profiles")
			return
		}
		if students == nil {
			students = []models.User{}
		}
		utils.JSON(w, http.StatusOK, students)
	}
}

// GET /api/profile/students/{id}: admin.
func (h *ProfileHTTP) GetStudent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := h.users.GetByID(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			h.log.Error().Err(err).Msg("student fetch failed")
			utils.Error(w, http.StatusInternalServerError, "failed to fetch student profile")
			return
		}
		if u == nil || u.Role != models.RoleStudent {
			utils.Error(w, http.StatusNotFound, "student not found")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}

// PATCH /api/profile/students/{id}/status: admin review decision.
func (h *ProfileHTTP) SetStudentStatus() http.HandlerFunc {
	type inDTO struct {
		Status   string `json:"status"`
		Feedback string `json:"feedback"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		var in inDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if in.Status != models.ProfileApproved && in.Status != models.ProfileRejected {
			utils.Error(w, http.StatusBadRequest, "invalid status")
			return
		}

		id := chi.URLParam(r, "id")
		u, err := h.users.GetByID(r.Context(), id)
		if err != nil {
			h.log.Error().Err(err).Msg("student fetch failed")
			utils.Error(w, http.StatusInternalServerError, "failed to update profile status")
			return
		}
		if u == nil || u.Role != models.RoleStudent {
			utils.Error(w, http.StatusNotFound, "student not found")
			return
		}

		u, err = h.users.SetProfileStatus(r.Context(), id, in.Status, strings.TrimSpace(in.Feedback))
		if err != nil || u == nil {
			h.log.Error().Err(err).Msg("profile status update failed")
			utils.Error(w, http.StatusInternalServerError, "failed to update profile status")
			return
		}
		utils.JSON(w, http.StatusOK, u)
	}
}
