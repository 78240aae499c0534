package database

import (
	"time"

	"github.com/google/uuid"
)

// Role identifies what a user account may do.
type Role string

const (
	RoleUser    Role = "user"
	RoleCompany Role = "company"
)

// User represents an account in the database
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	ICE          *string   `json:"ice,omitempty"`
	PushToken    *string   `json:"pushToken,omitempty"`
	AvatarURL    *string   `json:"avatarUrl,omitempty"`
	Latitude     *float64  `json:"latitude,omitempty"`
	Longitude    *float64  `json:"longitude,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// VehicleStatus is a denormalized availability hint. Booking conflicts are
// always decided from the reservation set, never from this field; "broken"
// is the only value with behavioral weight (it blocks new requests).
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusBooked    VehicleStatus = "booked"
	VehicleStatusBroken    VehicleStatus = "broken"
)

// Vehicle represents a listed car in the database
type Vehicle struct {
	ID          uuid.UUID     `json:"id"`
	CompanyID   uuid.UUID     `json:"companyId"`
	Make        string        `json:"make"`
	Model       string        `json:"model"`
	Year        int           `json:"year"`
	Color       string        `json:"color"`
	Mileage     int           `json:"mileage"`
	PricePerDay float64       `json:"pricePerDay"`
	Status      VehicleStatus `json:"status"`
	Images      []string      `json:"images"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ReservationStatus represents the status of a reservation.
// approved and rejected are terminal.
type ReservationStatus string

const (
	ReservationStatusPending  ReservationStatus = "pending"
	ReservationStatusApproved ReservationStatus = "approved"
	ReservationStatusRejected ReservationStatus = "rejected"
)

// Reservation represents a booking request for a vehicle over the half-open
// interval [StartDate, EndDate).
type Reservation struct {
	ID        uuid.UUID         `json:"id"`
	VehicleID uuid.UUID         `json:"vehicleId"`
	UserID    uuid.UUID         `json:"userId"`
	Status    ReservationStatus `json:"status"`
	StartDate time.Time         `json:"startDate"`
	EndDate   time.Time         `json:"endDate"`
	CreatedAt time.Time         `json:"createdAt"`
}

// Conversation groups the messages exchanged between two users. The pair is
// unordered: (a, b) and (b, a) resolve to the same conversation.
type Conversation struct {
	ID         uuid.UUID `json:"id"`
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	CreatedAt  time.Time `json:"createdAt"`
	Messages   []Message `json:"messages,omitempty"`
}

// Message is a single chat message inside a conversation.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversationId"`
	SenderID       uuid.UUID `json:"senderId"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sentAt"`
}

// Statistics is the read-side aggregation over vehicles and reservations.
type Statistics struct {
	TotalVehicles        int `json:"totalVehicles"`
	TotalReservations    int `json:"totalReservations"`
	PendingReservations  int `json:"pendingReservations"`
	ApprovedReservations int `json:"approvedReservations"`
	RejectedReservations int `json:"rejectedReservations"`
}
