package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type AllocationState string

const (
	AllocationConfirm  AllocationState = "confirm"
	AllocationValidate AllocationState = "validate"
)

// LeaveAllocation credits leave days to an employee.
//
// AllocationDate identifies the calendar month the credit represents and is
// the idempotency key for the automation jobs. DateFrom/DateTo are the
// validity window, which diverges from AllocationDate when validity is
// deferred past a probation period. The two must never be conflated.
type LeaveAllocation struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
	EmployeeID     uint            `gorm:"not null;uniqueIndex:idx_alloc_employee_month" json:"employee_id"`
	Employee       Employee        `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	LeaveTypeID    uint            `gorm:"not null;uniqueIndex:idx_alloc_employee_month" json:"leave_type_id"`
	LeaveType      LeaveType       `gorm:"foreignKey:LeaveTypeID" json:"leave_type,omitempty"`
	AllocationDate time.Time       `gorm:"not null;type:date;uniqueIndex:idx_alloc_employee_month" json:"allocation_date"`
	DateFrom       time.Time       `gorm:"not null;type:date" json:"date_from"`
	DateTo         time.Time       `gorm:"not null;type:date" json:"date_to"`
	Days           decimal.Decimal `gorm:"not null;type:decimal(10,2)" json:"days"`
	State          AllocationState `gorm:"not null;size:20;default:confirm" json:"state"`
	AutoAllocated  bool            `gorm:"default:false" json:"auto_allocated"`
	Note           string          `gorm:"size:255" json:"note"`
}
