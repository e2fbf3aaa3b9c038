// Package platform assembles the store, repositories, session manager and
// services into one facade. Every public operation takes the platform
// mutex, so operations within one process are serialized the way single
// writes to the underlying store are.
package platform

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ubaid075/DOT-AI/internal/feed"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/service"
	"github.com/Ubaid075/DOT-AI/internal/session"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

// PubSub combines both sides of the change feed. feed.Bus and feed.Redis
// implement it.
type PubSub interface {
	feed.Publisher
	feed.Subscriber
}

// Options configures one platform instance. Durable is the shared backing
// store; Session is the instance-local session store and is never fed into
// the change feed.
type Options struct {
	Durable store.Store
	Session store.Store
	Feed    PubSub
	Admin   repository.BootstrapAdmin

	SignupCredits  int
	GenerationCost int
	Latency        time.Duration

	// OnChange is invoked after a remote write to key has been reconciled.
	// Optional; called outside the platform mutex.
	OnChange func(key string)

	Log *slog.Logger
}

type Platform struct {
	mu sync.Mutex

	users         *repository.Users
	reviews       *repository.Reviews
	support       *repository.Support
	ledger        *repository.Ledger
	requests      *repository.CreditRequests
	gallery       *repository.Gallery
	notifications *repository.Notifications
	reports       *repository.Reports
	settings      *repository.Settings

	sessions   *session.Manager
	generation *service.GenerationService
	credits    *service.CreditService
	account    *service.AccountService
	galleryOps *service.GalleryService
	supportOps *service.SupportService

	onChange    func(key string)
	unsubscribe func()
	log         *slog.Logger
}

func New(opts Options) *Platform {
	if opts.Log == nil {
		opts.Log = slog.Default()
	}
	origin := uuid.NewString()
	durable := store.NewAdapter(opts.Durable, origin, opts.Feed)
	sessions := store.NewAdapter(opts.Session, origin, nil)

	users := repository.NewUsers(durable, repository.SeedUsers(opts.Admin))
	ledger := repository.NewLedger(durable)
	reviews := repository.NewReviews(durable)
	support := repository.NewSupport(durable)
	requests := repository.NewCreditRequests(durable)
	gallery := repository.NewGallery(durable)
	notifications := repository.NewNotifications(durable)
	reports := repository.NewReports(durable)
	settings := repository.NewSettings(durable)

	manager := session.NewManager(users, ledger, sessions, opts.Latency, opts.SignupCredits, opts.Log)

	p := &Platform{
		users:         users,
		reviews:       reviews,
		support:       support,
		ledger:        ledger,
		requests:      requests,
		gallery:       gallery,
		notifications: notifications,
		reports:       reports,
		settings:      settings,
		sessions:      manager,
		generation:    service.NewGenerationService(opts.GenerationCost, users, ledger, manager, opts.Log),
		credits:       service.NewCreditService(requests, users, ledger, notifications, manager, opts.Latency, opts.Log),
		account:       service.NewAccountService(users, ledger, notifications, settings, manager, opts.Log),
		galleryOps:    service.NewGalleryService(gallery, reports, manager, opts.Latency, opts.Log),
		supportOps:    service.NewSupportService(reviews, support, manager, opts.Latency, opts.Log),
		onChange:      opts.OnChange,
		log:           opts.Log,
	}

	manager.Restore()

	if opts.Feed != nil {
		p.unsubscribe = opts.Feed.Subscribe(func(ev feed.Event) {
			if ev.Origin == origin {
				return
			}
			p.handleRemoteChange(ev)
		})
	}
	return p
}

// Close cancels the feed subscription. The platform remains usable for
// local operations afterwards.
func (p *Platform) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

// handleRemoteChange reconciles a write from another process. It must not
// take the platform mutex: with a synchronous in-process feed the publisher
// may still be holding its own.
func (p *Platform) handleRemoteChange(ev feed.Event) {
	if ev.Key == store.KeyUsers {
		var users []models.User
		if err := json.Unmarshal(ev.Value, &users); err != nil {
			p.log.Warn("discarding malformed feed payload", "key", ev.Key, "err", err)
			return
		}
		p.sessions.Reconcile(users)
	}
	if p.onChange != nil {
		p.onChange(ev.Key)
	}
}

// ---- Session ----

func (p *Platform) CurrentUser() *models.User {
	return p.sessions.Current()
}

func (p *Platform) Login(email, password string) (*models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions.Login(email, password)
}

func (p *Platform) Signup(name, email, password string) (*models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions.Signup(name, email, password)
}

func (p *Platform) Logout() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sessions.Logout()
}

func (p *Platform) UpdatePassword(currentPassword, newPassword string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sessions.UpdatePassword(currentPassword, newPassword)
}

// ---- Generation ----

func (p *Platform) RecordGeneration(imageURL, prompt, style string) (*models.GeneratedImage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation.RecordGeneration(imageURL, prompt, style)
}

// ---- Credits ----

func (p *Platform) RequestCredits(plan models.CreditPlan, transactionID string, amountPaid float64, paymentDate, proofURL, note string) (*models.CreditRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.credits.RequestCredits(plan, transactionID, amountPaid, paymentDate, proofURL, note)
}

func (p *Platform) ApproveCreditRequest(requestID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.credits.ApproveCreditRequest(requestID)
}

func (p *Platform) RejectCreditRequest(requestID, note string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.credits.RejectCreditRequest(requestID, note)
}

// ---- Account ----

func (p *Platform) UpdateUser(updated models.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account.UpdateUser(updated)
}

func (p *Platform) AdminUpdateUser(updated models.User) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account.AdminUpdateUser(updated)
}

func (p *Platform) DeleteUser(userID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account.DeleteUser(userID)
}

func (p *Platform) AddFavorite(imageID, imageURL, prompt string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account.AddFavorite(imageID, imageURL, prompt)
}

func (p *Platform) RemoveFavorite(imageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account.RemoveFavorite(imageID)
}

func (p *Platform) MarkNotificationsRead(ids []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account.MarkNotificationsRead(ids)
}

func (p *Platform) UpdateSystemSettings(settings models.SystemSettings) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.account.UpdateSystemSettings(settings)
}

// ---- Gallery ----

func (p *Platform) AddPublicImage(imageURL, title string) (*models.PublicImage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.AddPublicImage(imageURL, title)
}

func (p *Platform) AddUserUploadedImage(imageURL, title string) (*models.PublicImage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.AddUserUploadedImage(imageURL, title)
}

func (p *Platform) UpdateUserUploadedImage(imageID, title, newImageURL string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.UpdateUserUploadedImage(imageID, title, newImageURL)
}

func (p *Platform) DeleteUserUploadedImage(imageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.DeleteUserUploadedImage(imageID)
}

func (p *Platform) DeletePublicImage(imageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.DeletePublicImage(imageID)
}

func (p *Platform) ToggleLike(imageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.ToggleLike(imageID)
}

func (p *Platform) AddComment(imageID, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.AddComment(imageID, text)
}

func (p *Platform) SubmitImageReport(imageID, imageURL, reason string) (*models.ImageReport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.SubmitImageReport(imageID, imageURL, reason)
}

func (p *Platform) ResolveImageReport(reportID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.ResolveImageReport(reportID)
}

func (p *Platform) ResolveReportsForImage(imageID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.galleryOps.ResolveReportsForImage(imageID)
}

// ---- Reviews and support ----

func (p *Platform) AddReview(rating int, comment string) (*models.Review, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supportOps.AddReview(rating, comment)
}

func (p *Platform) UpdateReviewStatus(reviewID string, approved bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supportOps.UpdateReviewStatus(reviewID, approved)
}

func (p *Platform) DeleteReview(reviewID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supportOps.DeleteReview(reviewID)
}

func (p *Platform) SubmitSupportTicket(message, category string) (*models.SupportMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supportOps.SubmitSupportTicket(message, category)
}

func (p *Platform) UpdateSupportTicketStatus(ticketID string, status models.TicketStatus) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.supportOps.UpdateSupportTicketStatus(ticketID, status)
}

// ---- Listings ----

// Users lists every account with secrets stripped.
func (p *Platform) Users() ([]models.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	users, err := p.users.List()
	if err != nil {
		return nil, err
	}
	out := make([]models.User, len(users))
	for i := range users {
		out[i] = users[i].Redacted()
	}
	return out, nil
}

func (p *Platform) Reviews() ([]models.Review, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reviews.List()
}

func (p *Platform) SupportTickets() ([]models.SupportMessage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.support.List()
}

func (p *Platform) CreditHistory() ([]models.CreditLedgerEntry, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ledger.List()
}

func (p *Platform) CreditRequests() ([]models.CreditRequest, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests.List()
}

func (p *Platform) Gallery() ([]models.PublicImage, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gallery.List()
}

func (p *Platform) Notifications() ([]models.Notification, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.notifications.List()
}

func (p *Platform) ImageReports() ([]models.ImageReport, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reports.List()
}

func (p *Platform) Settings() (models.SystemSettings, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.settings.Get()
}

func (p *Platform) Plans() []models.CreditPlan {
	plans := make([]models.CreditPlan, len(repository.CreditPlans))
	copy(plans, repository.CreditPlans)
	return plans
}

func (p *Platform) Styles() []string {
	styles := make([]string, len(repository.ImageStyles))
	copy(styles, repository.ImageStyles)
	return styles
}
