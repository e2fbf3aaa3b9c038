package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type AccountStatus string

const (
	StatusActive  AccountStatus = "active"
	StatusBlocked AccountStatus = "blocked"
)

type CreditReason string

const (
	ReasonSignup      CreditReason = "Signup"
	ReasonGeneration  CreditReason = "Generation"
	ReasonPurchase    CreditReason = "Purchase"
	ReasonAdminUpdate CreditReason = "Admin Update"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "Pending"
	RequestApproved RequestStatus = "Approved"
	RequestRejected RequestStatus = "Rejected"
)

type TicketStatus string

const (
	TicketPending  TicketStatus = "Pending"
	TicketRead     TicketStatus = "Read"
	TicketResolved TicketStatus = "Resolved"
)

type ReportStatus string

const (
	ReportPending  ReportStatus = "Pending"
	ReportResolved ReportStatus = "Resolved"
)

type NotificationType string

const (
	NotifySuccess NotificationType = "success"
	NotifyError   NotificationType = "error"
	NotifyInfo    NotificationType = "info"
)

// User is the durable account record. Password is the plaintext credential
// of the mock backend; redacted views carry it empty and omit it on the wire.
type User struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Email           string           `json:"email"`
	Password        string           `json:"password,omitempty"`
	ProfilePic      string           `json:"profilePic,omitempty"`
	Credits         int              `json:"credits"`
	UsedCredits     int              `json:"usedCredits"`
	TotalGenerated  int              `json:"totalGenerated"`
	Role            Role             `json:"role"`
	Status          AccountStatus    `json:"status"`
	CreatedAt       time.Time        `json:"createdAt"`
	LastLogin       time.Time        `json:"lastLogin"`
	GeneratedImages []GeneratedImage `json:"generatedImages"`
	FavoriteImages  []Favorite       `json:"favoriteImages"`
}

// Redacted returns a copy safe to hold in session state.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type GeneratedImage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageURL  string    `json:"imageUrl"`
	Prompt    string    `json:"prompt"`
	Style     string    `json:"style"`
	CreatedAt time.Time `json:"createdAt"`
}

// Favorite bookmarks any image by id. ImageURL and Prompt are snapshots
// taken at favoriting time and are not live-updated.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ImageID   string    `json:"imageId"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Prompt    string    `json:"prompt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type PublicImage struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Title          string    `json:"title"`
	ImageURL       string    `json:"imageUrl"`
	UserName       string    `json:"userName"`
	UserProfilePic string    `json:"userProfilePic"`
	CreatedAt      time.Time `json:"createdAt"`
	Likes          []Like    `json:"likes"`
	Comments       []Comment `json:"comments"`
}

type Like struct {
	ID        string    `json:"id"`
	ImageID   string    `json:"imageId"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Comment struct {
	ID             string    `json:"id"`
	ImageID        string    `json:"imageId"`
	UserID         string    `json:"userId"`
	UserName       string    `json:"userName"`
	UserProfilePic string    `json:"userProfilePic"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CreditPlan struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Credits int     `json:"credits"`
	Price   float64 `json:"price"`
	Notes   string  `json:"notes"`
}

// CreditRequest is a claim that the user paid out-of-band for a plan.
// Once terminal (Approved or Rejected) the record is immutable.
type CreditRequest struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	UserName      string        `json:"userName"`
	TransactionID string        `json:"transactionId"`
	AmountPaid    float64       `json:"amountPaid"`
	CreditPackage int           `json:"creditPackage"`
	Plan          *CreditPlan   `json:"creditPlan,omitempty"`
	ProofImage    string        `json:"proofImage"`
	Note          string        `json:"note,omitempty"`
	AdminNote     string        `json:"adminNote,omitempty"`
	Status        RequestStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
	ResolvedAt    *time.Time    `json:"approvedAt,omitempty"`
}

// CreditLedgerEntry is an append-only signed delta against a user balance.
// The ledger is the audit source of truth; User.Credits is the cached sum.
type CreditLedgerEntry struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	UserName  string       `json:"userName"`
	Change    int          `json:"change"`
	Reason    CreditReason `json:"reason"`
	AdminID   string       `json:"adminId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

type Review struct {
	ID             string    `json:"id"`
	UserID         string    `json:"userId"`
	Name           string    `json:"name"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
	Rating         int       `json:"rating"`
	Comment        string    `json:"comment"`
	Date           time.Time `json:"date"`
	Approved       bool      `json:"approved"`
}

type SupportMessage struct {
	ID        string       `json:"id"`
	UserID    string       `json:"userId"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Message   string       `json:"message"`
	Category  string       `json:"category"`
	Status    TicketStatus `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"createdAt"`
}

type ImageReport struct {
	ID               string       `json:"id"`
	ImageID          string       `json:"imageId"`
	ImageURL         string       `json:"imageUrl"`
	ReportedByUserID string       `json:"reportedByUserId"`
	ReporterName     string       `json:"reporterName"`
	Reason           string       `json:"reason"`
	Status           ReportStatus `json:"status"`
	CreatedAt        time.Time    `json:"createdAt"`
}

type SystemSettings struct {
	PlatformName    string   `json:"platformName"`
	DefaultTheme    string   `json:"defaultTheme"`
	MaintenanceMode bool     `json:"maintenanceMode"`
	EnabledStyles   []string `json:"enabledStyles"`
}
