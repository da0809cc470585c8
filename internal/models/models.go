package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account is an employee or administrator record. Non-admin accounts must be
// approved by an admin before they can authenticate.
type Account struct {
	ID           string  `gorm:"type:uuid;primaryKey" json:"id"`
	Surname      string  `gorm:"not null" json:"surname"`
	FirstName    string  `gorm:"not null" json:"first_name"`
	MiddleName   *string `json:"middle_name,omitempty"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `gorm:"not null" json:"-"`

	Position     string    `gorm:"not null" json:"position"`
	SalaryGrade  string    `gorm:"not null" json:"salary_grade"`
	StartingDate time.Time `gorm:"not null" json:"starting_date"`
	JobCategory  string    `gorm:"not null" json:"job_category"`
	AssignedUnit string    `gorm:"not null" json:"assigned_unit"`

	Role       string `gorm:"not null;default:user;index" json:"role"`
	IsApproved bool   `gorm:"not null;default:false;index" json:"is_approved"`
	IsActive   bool   `gorm:"not null;default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Account) IsAdmin() bool { return a.Role == RoleAdmin }

// FullName renders "First [Middle] Surname" for display fields.
func (a *Account) FullName() string {
	if a.MiddleName != nil && *a.MiddleName != "" {
		return a.FirstName + " " + *a.MiddleName + " " + a.Surname
	}
	return a.FirstName + " " + a.Surname
}
