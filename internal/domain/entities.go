package domain

import (
	"time"
)

type Medium string

const (
	MediumSpray       Medium = "Spray"
	MediumMural       Medium = "Mural"
	MediumDigital     Medium = "Digital"
	MediumPerformance Medium = "Performance"
	MediumMixed       Medium = "Mixed"
)

type DimensionUnit string

const (
	UnitCentimeters DimensionUnit = "cm"
	UnitMeters      DimensionUnit = "m"
	UnitFeet        DimensionUnit = "ft"
)

type Location struct {
	City    string  `json:"city"`
	Country string  `json:"country"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

type Artist struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Bio         string    `json:"bio"`
	Location    Location  `json:"location"`
	Popularity  int       `json:"popularity"`
	Likes       int       `json:"likes"`
	Specialties []string  `json:"specialties"`
	HourlyRate  float64   `json:"hourlyRate,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Dimensions struct {
	Width  float64       `json:"width"`
	Height float64       `json:"height"`
	Unit   DimensionUnit `json:"unit"`
}

// AreaSquareMeters converts width*height to square meters.
func (d Dimensions) AreaSquareMeters() float64 {
	area := d.Width * d.Height
	switch d.Unit {
	case UnitCentimeters:
		return area / 10000
	case UnitFeet:
		return area * 0.092903
	default:
		return area
	}
}

type Artwork struct {
	ID          string      `json:"id"`
	ArtistID    string      `json:"artistId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Medium      Medium      `json:"medium"`
	Price       float64     `json:"price"`
	Views       int         `json:"views"`
	Likes       int         `json:"likes"`
	IsPublished bool        `json:"isPublished"`
	Tags        []string    `json:"tags"`
	Dimensions  *Dimensions `json:"dimensions,omitempty"`
	TimeSpent   float64     `json:"timeSpent,omitempty"` // hours, 0 = unrecorded
	SoldDate    *time.Time  `json:"soldDate,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// Sold reports whether the artwork has been sold.
func (a *Artwork) Sold() bool {
	return a.SoldDate != nil
}

type Bid struct {
	UserID    string    `json:"userId"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

type Auction struct {
	ID          string    `json:"id"`
	ArtworkID   string    `json:"artworkId"`
	StartingBid float64   `json:"startingBid"`
	CurrentBid  float64   `json:"currentBid"`
	EndTime     time.Time `json:"endTime"`
	IsActive    bool      `json:"isActive"`
	Bidders     []Bid     `json:"bidders"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type AuctionState int

const (
	AuctionStateActive AuctionState = iota
	AuctionStateExpiredUnresolved
	AuctionStateEnded
)

func (s AuctionState) String() string {
	switch s {
	case AuctionStateActive:
		return "active"
	case AuctionStateExpiredUnresolved:
		return "expired"
	case AuctionStateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// State derives the auction lifecycle state from the entity itself. The
// authoritative end condition is the stored EndTime, never a client timer.
func (a *Auction) State(now time.Time) AuctionState {
	if !a.IsActive {
		return AuctionStateEnded
	}
	if now.Before(a.EndTime) {
		return AuctionStateActive
	}
	return AuctionStateExpiredUnresolved
}

type CommissionStatus string

const (
	CommissionPending    CommissionStatus = "Pending"
	CommissionAccepted   CommissionStatus = "Accepted"
	CommissionInProgress CommissionStatus = "In Progress"
	CommissionCompleted  CommissionStatus = "Completed"
	CommissionRejected   CommissionStatus = "Rejected"
)

func (s CommissionStatus) Valid() bool {
	switch s {
	case CommissionPending, CommissionAccepted, CommissionInProgress,
		CommissionCompleted, CommissionRejected:
		return true
	}
	return false
}

type Commission struct {
	ID          string           `json:"id"`
	ArtistID    string           `json:"artistId"`
	ClientName  string           `json:"clientName"`
	ClientEmail string           `json:"clientEmail"`
	WorkType    string           `json:"workType"`
	Budget      float64          `json:"budget"`
	Location    string           `json:"location"`
	Description string           `json:"description"`
	Status      CommissionStatus `json:"status"`
	Notes       string           `json:"notes,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type Performance struct {
	ID            string     `json:"id"`
	ArtistID      string     `json:"artistId"`
	Location      string     `json:"location"`
	StartTime     time.Time  `json:"startTime"`
	EndTime       *time.Time `json:"endTime,omitempty"` // nil = still ongoing
	CashCollected float64    `json:"cashCollected"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Completed reports whether the performance has ended.
func (p *Performance) Completed() bool {
	return p.EndTime != nil
}

// Hours returns the performance duration in hours, 0 while still ongoing.
func (p *Performance) Hours() float64 {
	if p.EndTime == nil {
		return 0
	}
	return p.EndTime.Sub(p.StartTime).Hours()
}

// MediumStats holds per-medium profitability of sold artworks.
type MediumStats struct {
	Income       float64 `json:"income"`
	Count        int     `json:"count"`
	AveragePrice float64 `json:"averagePrice"`
}

// FinancialStats is a derived value object, recomputed per request and
// never persisted.
type FinancialStats struct {
	TotalIncome         float64                `json:"totalIncome"`
	TotalExpenses       float64                `json:"totalExpenses"`
	NetIncome           float64                `json:"netIncome"`
	AveragePrice        float64                `json:"averagePrice"`
	PricePerHour        *float64               `json:"pricePerHour,omitempty"`
	PricePerSqM         *float64               `json:"pricePerSqM,omitempty"`
	MediumProfitability map[string]MediumStats `json:"mediumProfitability"`
	PerformanceIncome   float64                `json:"performanceIncome"`
	CommissionIncome    float64                `json:"commissionIncome"`
	SalesIncome         float64                `json:"salesIncome"`
}

type PerformanceStats struct {
	TotalPerformances     int     `json:"totalPerformances"`
	TotalHours            float64 `json:"totalHours"`
	TotalCash             float64 `json:"totalCash"`
	AveragePerHour        float64 `json:"averagePerHour"`
	AveragePerPerformance float64 `json:"averagePerPerformance"`
}

type CommissionStats struct {
	Total      int     `json:"total"`
	Pending    int     `json:"pending"`
	Accepted   int     `json:"accepted"`
	InProgress int     `json:"inProgress"`
	Completed  int     `json:"completed"`
	Rejected   int     `json:"rejected"`
	TotalValue float64 `json:"totalValue"`
}

type BidEvent struct {
	Type      BidEventType `json:"type"`
	AuctionID string       `json:"auction_id"`
	UserID    string       `json:"user_id,omitempty"`
	Amount    float64      `json:"amount,omitempty"`
	EndTime   time.Time    `json:"end_time"`
	Timestamp time.Time    `json:"timestamp"`
}

type BidEventType string

const (
	BidAccepted     BidEventType = "bid_accepted"
	AuctionExtended BidEventType = "auction_extended"
	AuctionClosed   BidEventType = "auction_ended"
)
