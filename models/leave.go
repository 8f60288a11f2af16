package models

import (
	"time"

	"gorm.io/gorm"
)

// Leave type codes used by the automation jobs to identify types regardless
// of their display names.
const (
	LeaveCodeAnnual  = "ANNUAL"
	LeaveCodeSick    = "SICK"
	LeaveCodeUnpaid  = "UNPAID"
	LeaveCodeHoliday = "HOLIDAY"
)

type LeaveType struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
	Name               string         `gorm:"not null;size:100" json:"name"`
	Code               string         `gorm:"uniqueIndex;not null;size:20" json:"code"`
	RequiresAllocation bool           `gorm:"default:false" json:"requires_allocation"`
	Unpaid             bool           `gorm:"default:false" json:"unpaid"`
	Color              int            `json:"color"`
}

type LeaveState string

const (
	LeaveConfirm  LeaveState = "confirm"
	LeaveValidate LeaveState = "validate"
	LeaveRefuse   LeaveState = "refuse"
)

// Leave is an employee time off request covering a date range.
type Leave struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	EmployeeID  uint           `gorm:"not null;index" json:"employee_id"`
	Employee    Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	LeaveTypeID uint           `gorm:"not null;index" json:"leave_type_id"`
	LeaveType   LeaveType      `gorm:"foreignKey:LeaveTypeID" json:"leave_type,omitempty"`
	State       LeaveState     `gorm:"not null;size:20;default:confirm" json:"state"`
	DateFrom    time.Time      `gorm:"not null;type:date;index" json:"date_from"`
	DateTo      time.Time      `gorm:"not null;type:date;index" json:"date_to"`
	Reason      string         `gorm:"size:500" json:"reason"`
}
