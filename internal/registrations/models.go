package registrations

import (
	"time"

	"github.com/google/uuid"
)

// Participant kinds
const (
	KindStudent = "etudiant"
	KindVisitor = "visiteur"
)

// Payment statuses
const (
	PaymentPaid      = "paye"
	PaymentPending   = "en_attente"
	PaymentCancelled = "annule"
)

// Faculty is a participant's home faculty.
type Faculty struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `json:"name" gorm:"not null;size:255;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Activity is one registerable activity (training, conference, workshop...).
type Activity struct {
	ID           uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name         string    `json:"name" gorm:"not null;size:255"`
	TypeLabel    string    `json:"type_label" gorm:"not null;size:100"`
	StartDate    time.Time `json:"start_date"`
	Capacity     int       `json:"capacity" gorm:"default:0;check:capacity >= 0"`
	DefaultPrice float64   `json:"default_price" gorm:"not null;check:default_price >= 0"`
	Active       bool      `json:"active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// Participation is one registration with its payment state. Rows are only
// ever inserted or deleted by the secretarial screens; the analytics engine
// treats them as an immutable event history.
type Participation struct {
	ID            uuid.UUID  `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	FullName      string     `json:"full_name" gorm:"not null;size:255;index"`
	Kind          string     `json:"kind" gorm:"type:varchar(20);not null;default:'etudiant'"`
	Amount        float64    `json:"amount" gorm:"not null;default:0;check:amount >= 0"`
	PaymentStatus string     `json:"payment_status" gorm:"type:varchar(20);not null;default:'en_attente'"`
	ActivityID    uuid.UUID  `json:"activity_id" gorm:"type:uuid;not null;index"`
	Activity      *Activity  `json:"activity,omitempty" gorm:"foreignKey:ActivityID"`
	FacultyID     *uuid.UUID `json:"faculty_id,omitempty" gorm:"type:uuid;index"`
	Faculty       *Faculty   `json:"faculty,omitempty" gorm:"foreignKey:FacultyID"`
	CreatedAt     time.Time  `json:"created_at" gorm:"autoCreateTime;index"`
}

// CreateParticipationRequest is the secretarial registration form.
type CreateParticipationRequest struct {
	FullName      string     `json:"full_name" binding:"required,min=2,max=255"`
	Kind          string     `json:"kind" binding:"required,oneof=etudiant visiteur"`
	Amount        float64    `json:"amount" binding:"min=0"`
	PaymentStatus string     `json:"payment_status" binding:"omitempty,oneof=paye en_attente annule"`
	ActivityID    uuid.UUID  `json:"activity_id" binding:"required"`
	FacultyID     *uuid.UUID `json:"faculty_id"`
}

// CreateActivityRequest creates a new registerable activity.
type CreateActivityRequest struct {
	Name         string    `json:"name" binding:"required,min=2,max=255"`
	TypeLabel    string    `json:"type_label" binding:"required,min=2,max=100"`
	StartDate    time.Time `json:"start_date"`
	Capacity     int       `json:"capacity" binding:"min=0"`
	DefaultPrice float64   `json:"default_price" binding:"min=0"`
}

// CreateFacultyRequest creates a faculty label.
type CreateFacultyRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

// ListParticipationsQuery bounds participation listings.
type ListParticipationsQuery struct {
	Page  int `form:"page,default=1" binding:"min=1"`
	Limit int `form:"limit,default=50" binding:"min=1,max=500"`
}
