// Package admin exposes the ops HTTP surface: user management, credit
// request settlement, moderation queues and a generation endpoint that
// drives the provider end to end.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Ubaid075/DOT-AI/internal/apperr"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/platform"
	"github.com/Ubaid075/DOT-AI/internal/provider"
	"github.com/Ubaid075/DOT-AI/internal/storage"
)

// Generator is the slice of the provider client the server needs.
type Generator interface {
	Generate(ctx context.Context, req provider.Request) (*provider.Image, error)
}

type Server struct {
	addr     string
	username string
	password string
	log      *slog.Logger
	core     *platform.Platform
	images   Generator
	uploader *storage.Uploader
	router   *chi.Mux
}

// NewServer wires the routes. The platform must already hold an admin
// session; every guarded operation is enforced a second time by the
// platform itself.
func NewServer(addr, username, password string, log *slog.Logger, core *platform.Platform, images Generator, uploader *storage.Uploader) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	s := &Server{
		addr:     addr,
		username: username,
		password: password,
		log:      log,
		core:     core,
		images:   images,
		uploader: uploader,
		router:   r,
	}

	r.Get("/health", s.handleHealth)
	r.Group(func(protected chi.Router) {
		protected.Use(s.basicAuthMiddleware())

		protected.Route("/users", func(r chi.Router) {
			r.Get("/", s.handleListUsers)
			r.Put("/{id}", s.handleUpdateUser)
			r.Delete("/{id}", s.handleDeleteUser)
		})
		protected.Route("/credit-requests", func(r chi.Router) {
			r.Get("/", s.handleListCreditRequests)
			r.Post("/{id}/approve", s.handleApproveCreditRequest)
			r.Post("/{id}/reject", s.handleRejectCreditRequest)
		})
		protected.Route("/reports", func(r chi.Router) {
			r.Get("/", s.handleListReports)
			r.Post("/{id}/resolve", s.handleResolveReport)
			r.Post("/{id}/remove-image", s.handleRemoveReportedImage)
		})
		protected.Route("/reviews", func(r chi.Router) {
			r.Get("/", s.handleListReviews)
			r.Put("/{id}", s.handleUpdateReviewStatus)
			r.Delete("/{id}", s.handleDeleteReview)
		})
		protected.Route("/tickets", func(r chi.Router) {
			r.Get("/", s.handleListTickets)
			r.Put("/{id}", s.handleUpdateTicketStatus)
		})
		protected.Route("/gallery", func(r chi.Router) {
			r.Get("/", s.handleListGallery)
			r.Post("/", s.handleAddGalleryImage)
			r.Delete("/{id}", s.handleDeleteGalleryImage)
		})
		protected.Route("/settings", func(r chi.Router) {
			r.Get("/", s.handleGetSettings)
			r.Put("/", s.handleUpdateSettings)
		})
		protected.Get("/ledger", s.handleListLedger)
		protected.Get("/notifications", s.handleListNotifications)
		protected.Get("/plans", s.handleListPlans)
		protected.Post("/generate", s.handleGenerate)
	})
	return s
}

func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Error("ops shutdown error", "err", err)
		}
	}()

	s.log.Info("ops surface listening", "addr", s.addr)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("ops listen: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.core.Users()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, users)
}

func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	user.ID = chi.URLParam(r, "id")
	if err := s.core.AdminUpdateUser(user); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := s.core.DeleteUser(chi.URLParam(r, "id")); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCreditRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := s.core.CreditRequests()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, requests)
}

func (s *Server) handleApproveCreditRequest(w http.ResponseWriter, r *http.Request) {
	if err := s.core.ApproveCreditRequest(chi.URLParam(r, "id")); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type rejectRequest struct {
	Note string `json:"note"`
}

func (s *Server) handleRejectCreditRequest(w http.ResponseWriter, r *http.Request) {
	var req rejectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.core.RejectCreditRequest(chi.URLParam(r, "id"), req.Note); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	reports, err := s.core.ImageReports()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleResolveReport(w http.ResponseWriter, r *http.Request) {
	if err := s.core.ResolveImageReport(chi.URLParam(r, "id")); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleRemoveReportedImage settles a report by taking down the image: the
// report is resolved first, then the image is removed from the gallery,
// then every other open report against the same image is closed.
func (s *Server) handleRemoveReportedImage(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "id")
	reports, err := s.core.ImageReports()
	if err != nil {
		s.internalError(w, err)
		return
	}
	var imageID string
	for i := range reports {
		if reports[i].ID == reportID {
			imageID = reports[i].ImageID
			break
		}
	}
	if imageID == "" {
		http.Error(w, "report not found", http.StatusNotFound)
		return
	}

	if err := s.core.ResolveImageReport(reportID); err != nil {
		s.domainError(w, err)
		return
	}
	if err := s.core.DeletePublicImage(imageID); err != nil && !apperr.Is(err, apperr.KindNotFound) {
		s.domainError(w, err)
		return
	}
	if err := s.core.ResolveReportsForImage(imageID); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.core.Reviews()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, reviews)
}

type reviewStatusRequest struct {
	Approved bool `json:"approved"`
}

func (s *Server) handleUpdateReviewStatus(w http.ResponseWriter, r *http.Request) {
	var req reviewStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.core.UpdateReviewStatus(chi.URLParam(r, "id"), req.Approved); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.core.DeleteReview(chi.URLParam(r, "id")); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := s.core.SupportTickets()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tickets)
}

type ticketStatusRequest struct {
	Status models.TicketStatus `json:"status"`
}

func (s *Server) handleUpdateTicketStatus(w http.ResponseWriter, r *http.Request) {
	var req ticketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.core.UpdateSupportTicketStatus(chi.URLParam(r, "id"), req.Status); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGallery(w http.ResponseWriter, r *http.Request) {
	images, err := s.core.Gallery()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, images)
}

type galleryImageRequest struct {
	ImageURL string `json:"imageUrl"`
	Title    string `json:"title"`
}

func (s *Server) handleAddGalleryImage(w http.ResponseWriter, r *http.Request) {
	var req galleryImageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		http.Error(w, "imageUrl required", http.StatusBadRequest)
		return
	}
	image, err := s.core.AddPublicImage(req.ImageURL, req.Title)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, image)
}

func (s *Server) handleDeleteGalleryImage(w http.ResponseWriter, r *http.Request) {
	if err := s.core.DeletePublicImage(chi.URLParam(r, "id")); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.core.Settings()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, settings)
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var settings models.SystemSettings
	if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if err := s.core.UpdateSystemSettings(settings); err != nil {
		s.domainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListLedger(w http.ResponseWriter, r *http.Request) {
	entries, err := s.core.CreditHistory()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.core.Notifications()
	if err != nil {
		s.internalError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleListPlans(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.core.Plans())
}

type generateRequest struct {
	Prompt      string `json:"prompt"`
	Style       string `json:"style"`
	AspectRatio string `json:"aspectRatio"`
	Resolution  string `json:"resolution"`
}

// handleGenerate runs the full pipeline: provider call, optional re-host
// to object storage, then the balance-debiting record. The account is
// never debited when the provider fails.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if s.images == nil {
		http.Error(w, "image provider not configured", http.StatusServiceUnavailable)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		http.Error(w, "prompt required", http.StatusBadRequest)
		return
	}

	prompt := req.Prompt
	if req.Style != "" {
		prompt = fmt.Sprintf("%s, %s style", req.Prompt, req.Style)
	}
	image, err := s.images.Generate(r.Context(), provider.Request{
		Prompt:      prompt,
		AspectRatio: req.AspectRatio,
		Resolution:  req.Resolution,
	})
	if err != nil {
		s.providerError(w, err)
		return
	}

	imageURL := image.URL
	if s.uploader != nil {
		hosted, err := s.uploader.Rehost(r.Context(), image.URL)
		if err != nil {
			s.log.Warn("rehost failed, keeping provider url", "err", err)
		} else {
			imageURL = hosted
		}
	}

	recorded, err := s.core.RecordGeneration(imageURL, req.Prompt, req.Style)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, recorded)
}

func (s *Server) basicAuthMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			if !ok || user != s.username || pass != s.password {
				w.Header().Set("WWW-Authenticate", `Basic realm="dot-ai"`)
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) domainError(w http.ResponseWriter, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		http.Error(w, err.Error(), http.StatusBadRequest)
	case apperr.KindNotFound:
		http.Error(w, err.Error(), http.StatusNotFound)
	case apperr.KindForbidden:
		http.Error(w, err.Error(), http.StatusForbidden)
	case apperr.KindUnauthenticated, apperr.KindInvalidCredential, apperr.KindAccountBlocked:
		http.Error(w, err.Error(), http.StatusUnauthorized)
	case apperr.KindAlreadyExists:
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		s.internalError(w, err)
	}
}

func (s *Server) providerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, provider.ErrContentPolicy):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, provider.ErrInvalidRequest):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, provider.ErrCapacity):
		http.Error(w, err.Error(), http.StatusTooManyRequests)
	default:
		http.Error(w, err.Error(), http.StatusBadGateway)
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.log.Error("ops internal error", "err", err)
	http.Error(w, "internal error", http.StatusInternalServerError)
}
