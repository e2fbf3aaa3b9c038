package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ubaid075/DOT-AI/internal/apperr"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/session"
)

// GalleryService owns the shared public gallery: curation, user uploads,
// likes, comments and image reports.
type GalleryService struct {
	gallery  *repository.Gallery
	reports  *repository.Reports
	sessions *session.Manager
	latency  time.Duration
	log      *slog.Logger
}

func NewGalleryService(gallery *repository.Gallery, reports *repository.Reports, sessions *session.Manager, latency time.Duration, log *slog.Logger) *GalleryService {
	return &GalleryService{
		gallery:  gallery,
		reports:  reports,
		sessions: sessions,
		latency:  latency,
		log:      log,
	}
}

// AddPublicImage adds a curated gallery entry owned by the admin account.
func (s *GalleryService) AddPublicImage(imageURL, title string) (*models.PublicImage, error) {
	if _, err := requireAdmin(s.sessions); err != nil {
		return nil, err
	}
	image := models.PublicImage{
		ID:             uuid.NewString(),
		UserID:         "admin",
		Title:          title,
		ImageURL:       imageURL,
		UserName:       "Admin",
		UserProfilePic: repository.AvatarURL("Admin"),
		CreatedAt:      time.Now().UTC(),
		Likes:          []models.Like{},
		Comments:       []models.Comment{},
	}
	if err := s.gallery.Prepend(image); err != nil {
		return nil, err
	}
	return &image, nil
}

// AddUserUploadedImage publishes one of the caller's images to the gallery.
func (s *GalleryService) AddUserUploadedImage(imageURL, title string) (*models.PublicImage, error) {
	current, err := requireSession(s.sessions)
	if err != nil {
		return nil, err
	}
	image := models.PublicImage{
		ID:             uuid.NewString(),
		UserID:         current.ID,
		Title:          title,
		ImageURL:       imageURL,
		UserName:       current.Name,
		UserProfilePic: current.ProfilePic,
		CreatedAt:      time.Now().UTC(),
		Likes:          []models.Like{},
		Comments:       []models.Comment{},
	}
	if err := s.gallery.Prepend(image); err != nil {
		return nil, err
	}
	return &image, nil
}

// UpdateUserUploadedImage replaces the title (and optionally the image)
// of an upload the caller owns.
func (s *GalleryService) UpdateUserUploadedImage(imageID, title, newImageURL string) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	image, err := s.gallery.FindByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return apperr.New(apperr.KindNotFound, "image not found")
	}
	if !isOwner(current, image.UserID) {
		return apperr.New(apperr.KindForbidden, "no permission to edit this image")
	}
	image.Title = title
	if newImageURL != "" {
		image.ImageURL = newImageURL
	}
	return s.gallery.Replace(*image)
}

// DeleteUserUploadedImage removes an upload the caller owns.
func (s *GalleryService) DeleteUserUploadedImage(imageID string) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	image, err := s.gallery.FindByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return apperr.New(apperr.KindNotFound, "image not found")
	}
	if !isOwner(current, image.UserID) {
		return apperr.New(apperr.KindForbidden, "no permission to delete this image")
	}
	return s.gallery.Remove(imageID)
}

// DeletePublicImage removes any gallery entry regardless of ownership.
func (s *GalleryService) DeletePublicImage(imageID string) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}
	image, err := s.gallery.FindByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return apperr.New(apperr.KindNotFound, "image not found")
	}
	return s.gallery.Remove(imageID)
}

// ToggleLike flips the caller's like on an image: at most one like per
// (image, user), and a double toggle restores the original state.
func (s *GalleryService) ToggleLike(imageID string) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	image, err := s.gallery.FindByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return nil
	}
	removed := false
	kept := image.Likes[:0]
	for _, like := range image.Likes {
		if like.UserID == current.ID {
			removed = true
			continue
		}
		kept = append(kept, like)
	}
	image.Likes = kept
	if !removed {
		image.Likes = append(image.Likes, models.Like{
			ID:        uuid.NewString(),
			ImageID:   imageID,
			UserID:    current.ID,
			CreatedAt: time.Now().UTC(),
		})
	}
	return s.gallery.Replace(*image)
}

// AddComment appends to an image's comment thread. Comments have no edit
// or delete primitive.
func (s *GalleryService) AddComment(imageID, text string) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	image, err := s.gallery.FindByID(imageID)
	if err != nil {
		return err
	}
	if image == nil {
		return nil
	}
	image.Comments = append(image.Comments, models.Comment{
		ID:             uuid.NewString(),
		ImageID:        imageID,
		UserID:         current.ID,
		UserName:       current.Name,
		UserProfilePic: current.ProfilePic,
		Text:           text,
		CreatedAt:      time.Now().UTC(),
	})
	return s.gallery.Replace(*image)
}

// SubmitImageReport files a complaint against a gallery image.
func (s *GalleryService) SubmitImageReport(imageID, imageURL, reason string) (*models.ImageReport, error) {
	current, err := requireSession(s.sessions)
	if err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, apperr.Validation("reason", "a reason for the report is required")
	}

	simulateLatency(s.latency)

	report := models.ImageReport{
		ID:               uuid.NewString(),
		ImageID:          imageID,
		ImageURL:         imageURL,
		ReportedByUserID: current.ID,
		ReporterName:     current.Name,
		Reason:           reason,
		Status:           models.ReportPending,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.reports.Prepend(report); err != nil {
		return nil, err
	}
	return &report, nil
}

// ResolveImageReport marks a single report resolved. It does not cascade;
// callers wanting deletion compose this with DeletePublicImage and
// ResolveReportsForImage.
func (s *GalleryService) ResolveImageReport(reportID string) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}
	found, err := s.reports.SetStatus(reportID, models.ReportResolved)
	if err != nil {
		return err
	}
	if !found {
		return apperr.New(apperr.KindNotFound, "report not found")
	}
	return nil
}

// ResolveReportsForImage bulk-resolves every pending report against an
// image, typically after the image itself was deleted.
func (s *GalleryService) ResolveReportsForImage(imageID string) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}
	return s.reports.ResolveAllForImage(imageID)
}
