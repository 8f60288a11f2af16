package models

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

type ContractState string

const (
	ContractDraft  ContractState = "draft"
	ContractOpen   ContractState = "open"
	ContractClosed ContractState = "closed"
)

const (
	DefaultProbationMonths = 6
	MinProbationMonths     = 1
	MaxProbationMonths     = 6
)

// DefaultWorkDays is Monday through Friday. Work days are stored as a string
// of weekday digits, 0=Monday .. 6=Sunday, matching work schedule conventions.
const DefaultWorkDays = "01234"

type Contract struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	EmployeeID      uint           `gorm:"not null;index" json:"employee_id"`
	Employee        Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	State           ContractState  `gorm:"not null;size:20;default:draft" json:"state"`
	DateStart       time.Time      `gorm:"not null;type:date" json:"date_start"`
	DateEnd         *time.Time     `gorm:"type:date" json:"date_end"`
	ProbationMonths int            `gorm:"not null;default:6" json:"probation_months"`
	WorkDays        string         `gorm:"not null;size:7;default:01234" json:"work_days"`
}

// Validate checks the fields a contract form can get wrong.
func (c *Contract) Validate() error {
	if c.ProbationMonths < MinProbationMonths || c.ProbationMonths > MaxProbationMonths {
		return fmt.Errorf("probation period must be between %d and %d months", MinProbationMonths, MaxProbationMonths)
	}
	for _, ch := range c.WorkDays {
		if ch < '0' || ch > '6' {
			return fmt.Errorf("work days must be weekday digits 0-6, got %q", c.WorkDays)
		}
	}
	if c.DateEnd != nil && c.DateEnd.Before(c.DateStart) {
		return fmt.Errorf("contract end date precedes start date")
	}
	return nil
}

// ProbationEnd is the first day the employee is out of probation.
func (c *Contract) ProbationEnd() time.Time {
	months := c.ProbationMonths
	if months == 0 {
		months = DefaultProbationMonths
	}
	return c.DateStart.AddDate(0, months, 0)
}

// WorksOn reports whether the given weekday is a working day under this
// contract. time.Weekday has Sunday=0; the stored digits use Monday=0.
func (c *Contract) WorksOn(day time.Weekday) bool {
	digit := byte('0' + (int(day)+6)%7)
	return strings.IndexByte(c.WorkDays, digit) >= 0
}

// ActiveOn reports whether the contract covers the given date.
func (c *Contract) ActiveOn(date time.Time) bool {
	if c.State != ContractOpen {
		return false
	}
	if date.Before(c.DateStart) {
		return false
	}
	if c.DateEnd != nil && date.After(*c.DateEnd) {
		return false
	}
	return true
}
