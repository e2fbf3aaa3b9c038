package platform

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ubaid075/DOT-AI/internal/apperr"
	"github.com/Ubaid075/DOT-AI/internal/feed"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/store"
)

const (
	adminEmail    = "admin@dot-ai.local"
	adminPassword = "ops-secret"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newPlatform builds one platform instance over the shared store and feed,
// modelling one client context or server process.
func newPlatform(t *testing.T, durable store.Store, bus PubSub) *Platform {
	t.Helper()
	p := New(Options{
		Durable:        durable,
		Session:        store.NewMemory(),
		Feed:           bus,
		Admin:          repository.BootstrapAdmin{Email: adminEmail, Password: adminPassword},
		SignupCredits:  25,
		GenerationCost: 1,
		Log:            discardLogger(),
	})
	t.Cleanup(p.Close)
	return p
}

func signup(t *testing.T, p *Platform, name, email string) *models.User {
	t.Helper()
	user, err := p.Signup(name, email, "hunter2")
	require.NoError(t, err)
	return user
}

func loginAdmin(t *testing.T, p *Platform) {
	t.Helper()
	_, err := p.Login(adminEmail, adminPassword)
	require.NoError(t, err)
}

func basicPlan(t *testing.T) models.CreditPlan {
	t.Helper()
	plan := repository.PlanByID("plan_basic")
	require.NotNil(t, plan)
	return *plan
}

func requestCredits(t *testing.T, p *Platform, plan models.CreditPlan) *models.CreditRequest {
	t.Helper()
	request, err := p.RequestCredits(plan, "tx-1001", plan.Price, "2026-09-01", "https://proof.example/receipt.png", "")
	require.NoError(t, err)
	return request
}

func ledgerSum(t *testing.T, p *Platform, userID string) int {
	t.Helper()
	entries, err := p.CreditHistory()
	require.NoError(t, err)
	sum := 0
	for _, e := range entries {
		if e.UserID == userID {
			sum += e.Change
		}
	}
	return sum
}

func TestSignupGenerateScenario(t *testing.T) {
	durable := store.NewMemory()
	p := newPlatform(t, durable, feed.NewBus())

	user := signup(t, p, "Dana", "dana@example.com")
	assert.Equal(t, 25, user.Credits)
	assert.Empty(t, user.Password)

	image, err := p.RecordGeneration("https://img.example/1.png", "a red fox", "Anime")
	require.NoError(t, err)
	assert.Equal(t, user.ID, image.UserID)

	current := p.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, 24, current.Credits)
	assert.Equal(t, 1, current.UsedCredits)
	assert.Equal(t, 1, current.TotalGenerated)
	require.Len(t, current.GeneratedImages, 1)
	assert.Equal(t, "a red fox", current.GeneratedImages[0].Prompt)

	// Balance always equals the ledger sum.
	assert.Equal(t, current.Credits, ledgerSum(t, p, user.ID))
}

func TestGenerationRequiresSession(t *testing.T) {
	p := newPlatform(t, store.NewMemory(), feed.NewBus())

	_, err := p.RecordGeneration("https://img.example/1.png", "prompt", "")
	assert.True(t, apperr.Is(err, apperr.KindUnauthenticated))
}

func TestGenerationDoesNotGateOnBalance(t *testing.T) {
	p := newPlatform(t, store.NewMemory(), feed.NewBus())
	signup(t, p, "Dana", "dana@example.com")

	// Drain the balance, then record one more. Callers gate on credits;
	// the record itself drives the balance negative rather than failing.
	for i := 0; i < 25; i++ {
		_, err := p.RecordGeneration("https://img.example/x.png", "p", "")
		require.NoError(t, err)
	}
	_, err := p.RecordGeneration("https://img.example/x.png", "p", "")
	require.NoError(t, err)

	current := p.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, -1, current.Credits)
	assert.Equal(t, current.Credits, ledgerSum(t, p, current.ID))
}

func TestCreditRequestApprovalAcrossProcesses(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	user := signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)

	plan := basicPlan(t)
	request := requestCredits(t, userTab, plan)
	assert.Equal(t, models.RequestPending, request.Status)

	require.NoError(t, adminTab.ApproveCreditRequest(request.ID))

	// The user's session converged through the change feed without any
	// action in the user's process.
	current := userTab.CurrentUser()
	require.NotNil(t, current)
	assert.Equal(t, 25+plan.Credits, current.Credits)
	assert.Equal(t, current.Credits, ledgerSum(t, userTab, user.ID))

	requests, err := userTab.CreditRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.RequestApproved, requests[0].Status)
	require.NotNil(t, requests[0].ResolvedAt)

	notifications, err := userTab.Notifications()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, user.ID, notifications[0].UserID)
	assert.Equal(t, models.NotifySuccess, notifications[0].Type)
}

func TestApproveIsIdempotent(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	user := signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)
	request := requestCredits(t, userTab, basicPlan(t))

	require.NoError(t, adminTab.ApproveCreditRequest(request.ID))
	balance := userTab.CurrentUser().Credits
	entries, err := adminTab.CreditHistory()
	require.NoError(t, err)
	notifications, err := adminTab.Notifications()
	require.NoError(t, err)

	// Second approval changes nothing: no credit, no entry, no notification.
	require.NoError(t, adminTab.ApproveCreditRequest(request.ID))
	assert.Equal(t, balance, userTab.CurrentUser().Credits)

	after, err := adminTab.CreditHistory()
	require.NoError(t, err)
	assert.Len(t, after, len(entries))
	afterNotes, err := adminTab.Notifications()
	require.NoError(t, err)
	assert.Len(t, afterNotes, len(notifications))

	// Rejecting a settled request is equally a no-op.
	require.NoError(t, adminTab.RejectCreditRequest(request.ID, "late"))
	requests, err := adminTab.CreditRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.RequestApproved, requests[0].Status)
	assert.Equal(t, user.ID, requests[0].UserID)
}

func TestRejectCreditRequest(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)
	request := requestCredits(t, userTab, basicPlan(t))

	require.NoError(t, adminTab.RejectCreditRequest(request.ID, "duplicate transaction"))

	// No balance change on rejection.
	assert.Equal(t, 25, userTab.CurrentUser().Credits)

	requests, err := userTab.CreditRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.RequestRejected, requests[0].Status)
	assert.Equal(t, "duplicate transaction", requests[0].AdminNote)

	notifications, err := userTab.Notifications()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotifyError, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, `"duplicate transaction"`)

	// Approving the rejected request later is a no-op.
	require.NoError(t, adminTab.ApproveCreditRequest(request.ID))
	assert.Equal(t, 25, userTab.CurrentUser().Credits)
}

func TestRequestCreditsValidation(t *testing.T) {
	p := newPlatform(t, store.NewMemory(), feed.NewBus())
	signup(t, p, "Dana", "dana@example.com")
	plan := basicPlan(t)

	_, err := p.RequestCredits(plan, "", plan.Price, "2026-09-01", "https://proof.example/p.png", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = p.RequestCredits(plan, "tx-1", 0, "2026-09-01", "https://proof.example/p.png", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = p.RequestCredits(plan, "tx-1", plan.Price, "2026-09-01", "", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestApprovalRequiresAdmin(t *testing.T) {
	p := newPlatform(t, store.NewMemory(), feed.NewBus())
	signup(t, p, "Dana", "dana@example.com")
	request := requestCredits(t, p, basicPlan(t))

	err := p.ApproveCreditRequest(request.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestAdminUpdateUserWritesLedger(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	user := signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)

	updated := *user
	updated.Credits = 100
	require.NoError(t, adminTab.AdminUpdateUser(updated))

	entries, err := adminTab.CreditHistory()
	require.NoError(t, err)
	var adjustment *models.CreditLedgerEntry
	for i := range entries {
		if entries[i].Reason == models.ReasonAdminUpdate {
			adjustment = &entries[i]
		}
	}
	require.NotNil(t, adjustment)
	assert.Equal(t, 75, adjustment.Change)
	assert.Equal(t, "admin-0", adjustment.AdminID)

	// The user's session picked up the new balance through the feed, and
	// the stored credential survived the admin's redacted snapshot.
	assert.Equal(t, 100, userTab.CurrentUser().Credits)
	userTab.Logout()
	_, err = userTab.Login("dana@example.com", "hunter2")
	require.NoError(t, err)
}

func TestBlockedUserCannotLogin(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	user := signup(t, userTab, "Dana", "dana@example.com")
	userTab.Logout()
	loginAdmin(t, adminTab)

	blocked := *user
	blocked.Status = models.StatusBlocked
	require.NoError(t, adminTab.AdminUpdateUser(blocked))

	_, err := userTab.Login("dana@example.com", "hunter2")
	assert.True(t, apperr.Is(err, apperr.KindAccountBlocked))
}

func TestDeleteUserForcesLogoutInOtherProcess(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	user := signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)

	require.NoError(t, adminTab.DeleteUser(user.ID))

	assert.Nil(t, userTab.CurrentUser())
	assert.NotNil(t, adminTab.CurrentUser())
}

func TestUpdateUserOwnershipAndCredentialPreserved(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	p := newPlatform(t, durable, bus)
	other := newPlatform(t, durable, bus)

	victim := signup(t, p, "Dana", "dana@example.com")
	signup(t, other, "Mallory", "mallory@example.com")

	stolen := *victim
	stolen.Name = "Pwned"
	err := other.UpdateUser(stolen)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	renamed := *victim
	renamed.Name = "Dana R."
	require.NoError(t, p.UpdateUser(renamed))

	p.Logout()
	loggedIn, err := p.Login("dana@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "Dana R.", loggedIn.Name)
}

func TestFavoriteAddIsIdempotent(t *testing.T) {
	p := newPlatform(t, store.NewMemory(), feed.NewBus())
	signup(t, p, "Dana", "dana@example.com")

	require.NoError(t, p.AddFavorite("img-1", "https://img.example/1.png", "fox"))
	require.NoError(t, p.AddFavorite("img-1", "https://img.example/1.png", "fox"))

	current := p.CurrentUser()
	require.Len(t, current.FavoriteImages, 1)

	// One removal clears the bookmark; removing again is a no-op.
	require.NoError(t, p.RemoveFavorite("img-1"))
	assert.Empty(t, p.CurrentUser().FavoriteImages)
	require.NoError(t, p.RemoveFavorite("img-1"))
}

func TestToggleLikeSymmetry(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	loginAdmin(t, adminTab)
	image, err := adminTab.AddPublicImage("https://img.example/pub.png", "Sunset")
	require.NoError(t, err)

	user := signup(t, userTab, "Dana", "dana@example.com")

	require.NoError(t, userTab.ToggleLike(image.ID))
	gallery, err := userTab.Gallery()
	require.NoError(t, err)
	liked := findImage(t, gallery, image.ID)
	require.Len(t, liked.Likes, 1)
	assert.Equal(t, user.ID, liked.Likes[0].UserID)

	require.NoError(t, userTab.ToggleLike(image.ID))
	gallery, err = userTab.Gallery()
	require.NoError(t, err)
	assert.Empty(t, findImage(t, gallery, image.ID).Likes)

	// Liking an image that does not exist is silently ignored.
	require.NoError(t, userTab.ToggleLike("missing"))
}

func TestUploadedImageOwnership(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	owner := newPlatform(t, durable, bus)
	other := newPlatform(t, durable, bus)

	signup(t, owner, "Dana", "dana@example.com")
	signup(t, other, "Mallory", "mallory@example.com")

	image, err := owner.AddUserUploadedImage("https://img.example/up.png", "My upload")
	require.NoError(t, err)

	err = other.UpdateUserUploadedImage(image.ID, "stolen", "")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
	err = other.DeleteUserUploadedImage(image.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	require.NoError(t, owner.UpdateUserUploadedImage(image.ID, "Renamed", ""))
	require.NoError(t, owner.DeleteUserUploadedImage(image.ID))

	err = owner.DeleteUserUploadedImage(image.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCommentsAreAppendOnly(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	loginAdmin(t, adminTab)
	image, err := adminTab.AddPublicImage("https://img.example/pub.png", "Sunset")
	require.NoError(t, err)

	signup(t, userTab, "Dana", "dana@example.com")
	require.NoError(t, userTab.AddComment(image.ID, "lovely"))
	require.NoError(t, userTab.AddComment(image.ID, "lovely"))

	gallery, err := userTab.Gallery()
	require.NoError(t, err)
	assert.Len(t, findImage(t, gallery, image.ID).Comments, 2)
}

func TestReportLifecycle(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	loginAdmin(t, adminTab)
	image, err := adminTab.AddPublicImage("https://img.example/pub.png", "Sunset")
	require.NoError(t, err)

	signup(t, userTab, "Dana", "dana@example.com")

	_, err = userTab.SubmitImageReport(image.ID, image.ImageURL, "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	report, err := userTab.SubmitImageReport(image.ID, image.ImageURL, "inappropriate")
	require.NoError(t, err)
	second, err := userTab.SubmitImageReport(image.ID, image.ImageURL, "spam")
	require.NoError(t, err)

	err = adminTab.ResolveImageReport("missing")
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	// Resolving one report leaves the other pending and the image up.
	require.NoError(t, adminTab.ResolveImageReport(report.ID))
	reports, err := adminTab.ImageReports()
	require.NoError(t, err)
	assert.Equal(t, models.ReportPending, findReport(t, reports, second.ID).Status)
	gallery, err := adminTab.Gallery()
	require.NoError(t, err)
	require.NotNil(t, findImage(t, gallery, image.ID))

	// Takedown composes deletion with bulk resolution.
	require.NoError(t, adminTab.DeletePublicImage(image.ID))
	require.NoError(t, adminTab.ResolveReportsForImage(image.ID))
	reports, err = adminTab.ImageReports()
	require.NoError(t, err)
	for _, r := range reports {
		assert.Equal(t, models.ReportResolved, r.Status)
	}
}

func TestReviewModeration(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	loginAdmin(t, adminTab)
	signup(t, userTab, "Dana", "dana@example.com")

	_, err := userTab.AddReview(0, "bad rating")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	review, err := userTab.AddReview(5, "Great results")
	require.NoError(t, err)
	assert.False(t, review.Approved)

	require.NoError(t, adminTab.UpdateReviewStatus(review.ID, true))
	reviews, err := adminTab.Reviews()
	require.NoError(t, err)
	for _, r := range reviews {
		if r.ID == review.ID {
			assert.True(t, r.Approved)
		}
	}

	require.NoError(t, adminTab.DeleteReview(review.ID))
	reviews, err = adminTab.Reviews()
	require.NoError(t, err)
	for _, r := range reviews {
		assert.NotEqual(t, review.ID, r.ID)
	}
}

func TestSupportTicketStatusIsMonotone(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	loginAdmin(t, adminTab)
	signup(t, userTab, "Dana", "dana@example.com")

	_, err := userTab.SubmitSupportTicket("", "billing")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	ticket, err := userTab.SubmitSupportTicket("My credits vanished", "billing")
	require.NoError(t, err)
	assert.Equal(t, models.TicketPending, ticket.Status)

	err = adminTab.UpdateSupportTicketStatus(ticket.ID, models.TicketPending)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	require.NoError(t, adminTab.UpdateSupportTicketStatus(ticket.ID, models.TicketRead))
	require.NoError(t, adminTab.UpdateSupportTicketStatus(ticket.ID, models.TicketResolved))

	// Resolved is terminal; a later Read does not regress it.
	require.NoError(t, adminTab.UpdateSupportTicketStatus(ticket.ID, models.TicketRead))
	tickets, err := adminTab.SupportTickets()
	require.NoError(t, err)
	assert.Equal(t, models.TicketResolved, findTicket(t, tickets, ticket.ID).Status)
}

func TestApproveAfterRequesterDeleted(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	user := signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)
	request := requestCredits(t, userTab, basicPlan(t))

	require.NoError(t, adminTab.DeleteUser(user.ID))

	// The request transition lands durably, then the settlement finds no
	// user. The inconsistency surfaces to the operator instead of being
	// rolled back or swallowed.
	err := adminTab.ApproveCreditRequest(request.ID)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))

	requests, err := adminTab.CreditRequests()
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, models.RequestApproved, requests[0].Status)
	require.NotNil(t, requests[0].ResolvedAt)

	// No credit posted, nobody notified.
	entries, err := adminTab.CreditHistory()
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotEqual(t, models.ReasonPurchase, e.Reason)
	}
	notifications, err := adminTab.Notifications()
	require.NoError(t, err)
	assert.Empty(t, notifications)
}

func TestMarkNotificationsReadIsOwnerScoped(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	userTab := newPlatform(t, durable, bus)
	otherTab := newPlatform(t, durable, bus)
	adminTab := newPlatform(t, durable, bus)

	signup(t, userTab, "Dana", "dana@example.com")
	signup(t, otherTab, "Mallory", "mallory@example.com")
	loginAdmin(t, adminTab)
	request := requestCredits(t, userTab, basicPlan(t))
	require.NoError(t, adminTab.ApproveCreditRequest(request.ID))

	notifications, err := userTab.Notifications()
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	// Another user naming the id succeeds as a no-op; the notification
	// stays unread until its addressee marks it.
	require.NoError(t, otherTab.MarkNotificationsRead([]string{notifications[0].ID}))
	notifications, err = userTab.Notifications()
	require.NoError(t, err)
	assert.False(t, notifications[0].Read)

	require.NoError(t, userTab.MarkNotificationsRead([]string{notifications[0].ID}))
	notifications, err = userTab.Notifications()
	require.NoError(t, err)
	assert.True(t, notifications[0].Read)
}

func TestNotificationsMarkRead(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)
	request := requestCredits(t, userTab, basicPlan(t))
	require.NoError(t, adminTab.ApproveCreditRequest(request.ID))

	notifications, err := userTab.Notifications()
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.False(t, notifications[0].Read)

	require.NoError(t, userTab.MarkNotificationsRead([]string{notifications[0].ID}))
	notifications, err = userTab.Notifications()
	require.NoError(t, err)
	assert.True(t, notifications[0].Read)
}

func TestSettingsRequireAdmin(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)

	settings, err := userTab.Settings()
	require.NoError(t, err)
	assert.Equal(t, "DOT AI", settings.PlatformName)

	settings.MaintenanceMode = true
	err = userTab.UpdateSystemSettings(settings)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	require.NoError(t, adminTab.UpdateSystemSettings(settings))
	got, err := userTab.Settings()
	require.NoError(t, err)
	assert.True(t, got.MaintenanceMode)
}

func TestUsersListingIsRedacted(t *testing.T) {
	durable := store.NewMemory()
	bus := feed.NewBus()
	adminTab := newPlatform(t, durable, bus)
	userTab := newPlatform(t, durable, bus)

	signup(t, userTab, "Dana", "dana@example.com")
	loginAdmin(t, adminTab)

	users, err := adminTab.Users()
	require.NoError(t, err)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}
}

func findImage(t *testing.T, gallery []models.PublicImage, id string) *models.PublicImage {
	t.Helper()
	for i := range gallery {
		if gallery[i].ID == id {
			return &gallery[i]
		}
	}
	t.Fatalf("image %s not found", id)
	return nil
}

func findReport(t *testing.T, reports []models.ImageReport, id string) *models.ImageReport {
	t.Helper()
	for i := range reports {
		if reports[i].ID == id {
			return &reports[i]
		}
	}
	t.Fatalf("report %s not found", id)
	return nil
}

func findTicket(t *testing.T, tickets []models.SupportMessage, id string) *models.SupportMessage {
	t.Helper()
	for i := range tickets {
		if tickets[i].ID == id {
			return &tickets[i]
		}
	}
	t.Fatalf("ticket %s not found", id)
	return nil
}
