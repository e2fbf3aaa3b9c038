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

// AccountService covers profile updates, admin user management, favorites,
// notifications and the settings singleton.
type AccountService struct {
	users         *repository.Users
	ledger        *repository.Ledger
	notifications *repository.Notifications
	settings      *repository.Settings
	sessions      *session.Manager
	log           *slog.Logger
}

func NewAccountService(users *repository.Users, ledger *repository.Ledger, notifications *repository.Notifications, settings *repository.Settings, sessions *session.Manager, log *slog.Logger) *AccountService {
	return &AccountService{
		users:         users,
		ledger:        ledger,
		notifications: notifications,
		settings:      settings,
		sessions:      sessions,
		log:           log,
	}
}

// UpdateUser lets the authenticated user replace their own redacted record.
// The stored credential is preserved; the session re-derives from the write.
func (s *AccountService) UpdateUser(updated models.User) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	if !isOwner(current, updated.ID) {
		return apperr.New(apperr.KindForbidden, "cannot update another user's profile")
	}
	stored, err := s.users.FindByID(updated.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return apperr.New(apperr.KindNotFound, "user not found")
	}
	merged := updated
	merged.Password = stored.Password
	return persistUser(s.users, s.sessions, merged)
}

// AdminUpdateUser replaces any user record. A credit diff writes the
// ledger entry first, then the user snapshot; the entry lands even if the
// snapshot write later fails, which keeps the audit trail conservative.
func (s *AccountService) AdminUpdateUser(updated models.User) error {
	admin, err := requireAdmin(s.sessions)
	if err != nil {
		return err
	}
	stored, err := s.users.FindByID(updated.ID)
	if err != nil {
		return err
	}
	if stored == nil {
		return apperr.New(apperr.KindNotFound, "user not found")
	}

	if diff := updated.Credits - stored.Credits; diff != 0 {
		if err := s.ledger.Append(models.CreditLedgerEntry{
			ID:        uuid.NewString(),
			UserID:    updated.ID,
			UserName:  updated.Name,
			Change:    diff,
			Reason:    models.ReasonAdminUpdate,
			AdminID:   admin.ID,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
	}

	merged := updated
	merged.Password = stored.Password
	return persistUser(s.users, s.sessions, merged)
}

// DeleteUser removes an account. Other processes holding a session for the
// deleted user observe the write through the change feed and force-logout.
func (s *AccountService) DeleteUser(userID string) error {
	admin, err := requireAdmin(s.sessions)
	if err != nil {
		return err
	}
	if err := s.users.Remove(userID); err != nil {
		return err
	}
	if admin.ID == userID {
		s.sessions.Logout()
	}
	return nil
}

// AddFavorite bookmarks an image with a display snapshot taken now. A
// second add for the same image id is a no-op, so one removal always
// clears the bookmark.
func (s *AccountService) AddFavorite(imageID, imageURL, prompt string) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(current.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "account record is missing")
	}
	for _, fav := range user.FavoriteImages {
		if fav.ImageID == imageID {
			return nil
		}
	}
	user.FavoriteImages = append(user.FavoriteImages, models.Favorite{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		ImageID:   imageID,
		ImageURL:  imageURL,
		Prompt:    prompt,
		CreatedAt: time.Now().UTC(),
	})
	return persistUser(s.users, s.sessions, *user)
}

// RemoveFavorite drops the bookmark for imageID; absent ids are a no-op.
func (s *AccountService) RemoveFavorite(imageID string) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(current.ID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.New(apperr.KindNotFound, "account record is missing")
	}
	kept := user.FavoriteImages[:0]
	for _, fav := range user.FavoriteImages {
		if fav.ImageID != imageID {
			kept = append(kept, fav)
		}
	}
	user.FavoriteImages = kept
	return persistUser(s.users, s.sessions, *user)
}

// MarkNotificationsRead transitions the caller's notifications unread→read.
// Ids addressed to other users are ignored.
func (s *AccountService) MarkNotificationsRead(ids []string) error {
	current, err := requireSession(s.sessions)
	if err != nil {
		return err
	}
	return s.notifications.MarkRead(current.ID, ids)
}

func (s *AccountService) UpdateSystemSettings(settings models.SystemSettings) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}
	return s.settings.Put(settings)
}
