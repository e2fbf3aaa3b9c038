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

// SupportService covers testimonial reviews and support tickets.
type SupportService struct {
	reviews  *repository.Reviews
	support  *repository.Support
	sessions *session.Manager
	latency  time.Duration
	log      *slog.Logger
}

func NewSupportService(reviews *repository.Reviews, support *repository.Support, sessions *session.Manager, latency time.Duration, log *slog.Logger) *SupportService {
	return &SupportService{
		reviews:  reviews,
		support:  support,
		sessions: sessions,
		latency:  latency,
		log:      log,
	}
}

// AddReview files a testimonial. Reviews start unapproved and only show
// publicly once an admin approves them.
func (s *SupportService) AddReview(rating int, comment string) (*models.Review, error) {
	current, err := requireSession(s.sessions)
	if err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, apperr.Validation("rating", "rating must be between 1 and 5")
	}

	simulateLatency(s.latency)

	review := models.Review{
		ID:             uuid.NewString(),
		UserID:         current.ID,
		Name:           current.Name,
		ProfilePicture: current.ProfilePic,
		Rating:         rating,
		Comment:        comment,
		Date:           time.Now().UTC(),
		Approved:       false,
	}
	if err := s.reviews.Prepend(review); err != nil {
		return nil, err
	}
	return &review, nil
}

func (s *SupportService) UpdateReviewStatus(reviewID string, approved bool) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}
	found, err := s.reviews.SetApproved(reviewID, approved)
	if err != nil {
		return err
	}
	if !found {
		return apperr.New(apperr.KindNotFound, "review not found")
	}
	return nil
}

func (s *SupportService) DeleteReview(reviewID string) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}
	return s.reviews.Remove(reviewID)
}

// SubmitSupportTicket files a ticket denormalized with the caller's
// identity at submission time.
func (s *SupportService) SubmitSupportTicket(message, category string) (*models.SupportMessage, error) {
	current, err := requireSession(s.sessions)
	if err != nil {
		return nil, err
	}
	if message == "" {
		return nil, apperr.Validation("message", "a message is required")
	}

	simulateLatency(s.latency)

	ticket := models.SupportMessage{
		ID:        uuid.NewString(),
		UserID:    current.ID,
		Name:      current.Name,
		Email:     current.Email,
		Message:   message,
		Category:  category,
		Status:    models.TicketPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.support.Prepend(ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateSupportTicketStatus advances a ticket along Pending→Read→Resolved.
// Read may be skipped; moves backwards are rejected and Resolved is
// terminal.
func (s *SupportService) UpdateSupportTicketStatus(ticketID string, status models.TicketStatus) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}
	if status != models.TicketRead && status != models.TicketResolved {
		return apperr.Validation("status", "status must be Read or Resolved")
	}
	ticket, err := s.support.FindByID(ticketID)
	if err != nil {
		return err
	}
	if ticket == nil {
		return apperr.New(apperr.KindNotFound, "ticket not found")
	}
	if ticket.Status == models.TicketResolved {
		return nil
	}
	if ticket.Status == models.TicketRead && status == models.TicketRead {
		return nil
	}
	_, err = s.support.SetStatus(ticketID, status)
	return err
}
