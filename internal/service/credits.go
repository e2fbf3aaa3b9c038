package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ubaid075/DOT-AI/internal/apperr"
	"github.com/Ubaid075/DOT-AI/internal/models"
	"github.com/Ubaid075/DOT-AI/internal/repository"
	"github.com/Ubaid075/DOT-AI/internal/session"
)

// CreditService owns the manual top-up flow: users file credit requests,
// an admin resolves them, approval posts the balance change and ledger
// entry and notifies the requester.
type CreditService struct {
	requests      *repository.CreditRequests
	users         *repository.Users
	ledger        *repository.Ledger
	notifications *repository.Notifications
	sessions      *session.Manager
	latency       time.Duration
	log           *slog.Logger
}

func NewCreditService(requests *repository.CreditRequests, users *repository.Users, ledger *repository.Ledger, notifications *repository.Notifications, sessions *session.Manager, latency time.Duration, log *slog.Logger) *CreditService {
	return &CreditService{
		requests:      requests,
		users:         users,
		ledger:        ledger,
		notifications: notifications,
		sessions:      sessions,
		latency:       latency,
		log:           log,
	}
}

// RequestCredits files a Pending claim that the user paid for a plan
// out-of-band. No balance change happens until an admin approves it.
func (s *CreditService) RequestCredits(plan models.CreditPlan, transactionID string, amountPaid float64, paymentDate, proofURL, note string) (*models.CreditRequest, error) {
	current, err := requireSession(s.sessions)
	if err != nil {
		return nil, err
	}
	if transactionID == "" {
		return nil, apperr.Validation("transactionId", "a valid transaction ID is required")
	}
	if amountPaid <= 0 {
		return nil, apperr.Validation("amountPaid", "a valid amount is required")
	}
	if paymentDate == "" {
		return nil, apperr.Validation("dateOfPayment", "a valid payment date is required")
	}
	if proofURL == "" {
		return nil, apperr.Validation("paymentProof", "payment proof is required")
	}

	simulateLatency(s.latency)

	planCopy := plan
	request := models.CreditRequest{
		ID:            uuid.NewString(),
		UserID:        current.ID,
		UserName:      current.Name,
		TransactionID: transactionID,
		AmountPaid:    amountPaid,
		CreditPackage: plan.Credits,
		Plan:          &planCopy,
		ProofImage:    proofURL,
		Note:          note,
		Status:        models.RequestPending,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.requests.Prepend(request); err != nil {
		return nil, err
	}
	return &request, nil
}

// ApproveCreditRequest runs the approval as two named sequential steps:
// first the request flips to Approved and that write lands durably, then
// the balance, ledger entry and notification follow. Approving a request
// that is absent or already terminal is a no-op.
func (s *CreditService) ApproveCreditRequest(requestID string) error {
	admin, err := requireAdmin(s.sessions)
	if err != nil {
		return err
	}

	// Step 1: transition the request. Idempotent against double-approval.
	request, err := s.requests.FindByID(requestID)
	if err != nil {
		return err
	}
	if request == nil || request.Status != models.RequestPending {
		return nil
	}
	now := time.Now().UTC()
	request.Status = models.RequestApproved
	request.ResolvedAt = &now
	if err := s.requests.Replace(*request); err != nil {
		return err
	}

	// Step 2: settle the balance. If the target user vanished the request
	// stays Approved with no balance change; that inconsistency is returned
	// to the operator rather than swallowed.
	user, err := s.users.FindByID(request.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		s.log.Error("credit request approved but user is missing", "request_id", requestID, "user_id", request.UserID)
		return apperr.New(apperr.KindNotFound, "request approved but the target user no longer exists; balance not credited")
	}
	user.Credits += request.CreditPackage
	if err := persistUser(s.users, s.sessions, *user); err != nil {
		return err
	}
	if err := s.ledger.Append(models.CreditLedgerEntry{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		UserName:  user.Name,
		Change:    request.CreditPackage,
		Reason:    models.ReasonPurchase,
		AdminID:   admin.ID,
		CreatedAt: now,
	}); err != nil {
		return err
	}
	return s.notifications.Append(models.Notification{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Message:   fmt.Sprintf("Your payment for %d credits was approved. They have been added to your account.", request.CreditPackage),
		Type:      models.NotifySuccess,
		CreatedAt: now,
	})
}

// RejectCreditRequest marks a pending request rejected with the admin's
// note and notifies the requester. No balance change. No-op when the
// request is absent or already terminal.
func (s *CreditService) RejectCreditRequest(requestID, note string) error {
	if _, err := requireAdmin(s.sessions); err != nil {
		return err
	}

	request, err := s.requests.FindByID(requestID)
	if err != nil {
		return err
	}
	if request == nil || request.Status != models.RequestPending {
		return nil
	}
	now := time.Now().UTC()
	request.Status = models.RequestRejected
	request.AdminNote = note
	request.ResolvedAt = &now
	if err := s.requests.Replace(*request); err != nil {
		return err
	}
	return s.notifications.Append(models.Notification{
		ID:        uuid.NewString(),
		UserID:    request.UserID,
		Message:   fmt.Sprintf("Your payment request was rejected. Admin note: %q", note),
		Type:      models.NotifyError,
		CreatedAt: now,
	})
}
