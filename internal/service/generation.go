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

// GenerationService records completed generations against the caller's
// account. It never talks to the image provider: callers invoke it only
// after the provider has returned a successful image, so a provider
// failure can never debit credits.
type GenerationService struct {
	cost     int
	users    *repository.Users
	ledger   *repository.Ledger
	sessions *session.Manager
	log      *slog.Logger
}

func NewGenerationService(cost int, users *repository.Users, ledger *repository.Ledger, sessions *session.Manager, log *slog.Logger) *GenerationService {
	return &GenerationService{
		cost:     cost,
		users:    users,
		ledger:   ledger,
		sessions: sessions,
		log:      log,
	}
}

// RecordGeneration debits the generation cost, bumps the usage counters,
// appends the image to the owner's collection and writes the ledger entry,
// in that order. It deliberately does not verify the balance: the caller
// gates on credits before invoking it, and a misused call drives the
// balance negative rather than failing.
func (s *GenerationService) RecordGeneration(imageURL, prompt, style string) (*models.GeneratedImage, error) {
	current, err := requireSession(s.sessions)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(current.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.New(apperr.KindNotFound, "account record is missing")
	}

	now := time.Now().UTC()
	image := models.GeneratedImage{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ImageURL:  imageURL,
		Prompt:    prompt,
		Style:     style,
		CreatedAt: now,
	}

	user.Credits -= s.cost
	user.UsedCredits += s.cost
	user.TotalGenerated++
	user.GeneratedImages = append(user.GeneratedImages, image)

	if err := persistUser(s.users, s.sessions, *user); err != nil {
		return nil, err
	}
	if err := s.ledger.Append(models.CreditLedgerEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Change:    -s.cost,
		Reason:    models.ReasonGeneration,
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}
	return &image, nil
}
