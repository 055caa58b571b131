package domain

import "time"

// Enumerations
const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAgent   UserRole = "agent"

	ActivityIncomingCall  ActivityCategory = "incoming_call"
	ActivityOutgoingCall  ActivityCategory = "outgoing_call"
	ActivitySiteViewing   ActivityCategory = "site_viewing"
	ActivityOfficeMeeting ActivityCategory = "office_meeting"

	ListingActive       ListingStatus = "active"
	ListingReserved     ListingStatus = "reserved"
	ListingSold         ListingStatus = "sold"
	ListingWithdrawn    ListingStatus = "withdrawn"
	ListingDepositTaken ListingStatus = "deposit_taken"

	SaleKindSale   SaleKind = "sale"
	SaleKindRental SaleKind = "rental"

	RequestBuy  RequestKind = "buy"
	RequestRent RequestKind = "rent"

	RequestOpen    RequestStatus = "open"
	RequestMatched RequestStatus = "matched"
	RequestClosed  RequestStatus = "closed"
)

type UserRole string
type ActivityCategory string
type ListingStatus string
type SaleKind string
type RequestKind string
type RequestStatus string

type Office struct {
	ID        int64
	Name      string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type User struct {
	ID           int64
	OfficeID     *int64
	Name         string
	Email        string
	Phone        string
	Role         UserRole
	IsGoogle     bool
	PasswordHash *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

type Customer struct {
	ID        int64
	AgentID   int64
	Name      string
	Phone     string
	Email     string
	Budget    int64
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

type Property struct {
	ID          int64
	AgentID     int64
	Title       string
	Address     string
	City        string
	District    string
	Price       int64
	Rooms       int
	Area        int
	Status      ListingStatus
	DepositDate *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time
}

type Request struct {
	ID         int64
	AgentID    int64
	CustomerID int64
	Kind       RequestKind
	MinPrice   int64
	MaxPrice   int64
	Area       string
	Status     RequestStatus
	Note       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// Activity is one logged unit of agent work. Category is a free label;
// only the four known categories feed the per-bucket counters, everything
// else still counts toward the daily total.
type Activity struct {
	ID           int64
	AgentID      int64
	Category     ActivityCategory
	ActivityDate time.Time
	CustomerID   *int64
	PropertyID   *int64
	Note         string
	CreatedAt    time.Time
	DeletedAt    *time.Time
}

type Sale struct {
	ID               int64
	AgentID          int64
	Kind             SaleKind
	SaleDate         time.Time
	CommissionAmount int64
	SalePrice        int64
	PropertyID       *int64
	CreatedAt        time.Time
	DeletedAt        *time.Time
}

// DailyStat is the per-(agent, date) summary row. At most one row exists
// per key; recomputing a day overwrites the previous row.
type DailyStat struct {
	UserID          int64
	OfficeID        *int64
	StatDate        string // YYYY-MM-DD
	TotalActivities int
	PhoneCalls      int
	Showings        int
	Appointments    int
	NewProperties   int
	NewCustomers    int
	SalesClosed     int
	RentalsClosed   int
	DepositsTaken   int
	TotalCommission int64
	TotalRevenue    int64
	UpdatedAt       time.Time
}
