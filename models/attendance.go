package models

import (
	"time"

	"gorm.io/gorm"
)

type WorkingType string

const (
	WorkingFullDay     WorkingType = "full_day"
	WorkingHalfDay     WorkingType = "half_day"
	WorkingOffice      WorkingType = "office"
	WorkingRemote      WorkingType = "remote"
	WorkingHoliday     WorkingType = "holiday"
	WorkingSick        WorkingType = "sick"
	WorkingAnnualLeave WorkingType = "annual_leave"
	WorkingWeekend     WorkingType = "weekend"
	WorkingLeave       WorkingType = "leave"
)

func ValidWorkingType(t WorkingType) bool {
	switch t {
	case WorkingFullDay, WorkingHalfDay, WorkingOffice, WorkingRemote,
		WorkingHoliday, WorkingSick, WorkingAnnualLeave, WorkingWeekend, WorkingLeave:
		return true
	}
	return false
}

// CountsAsWorked reports whether a day tagged with this type goes into the
// worked-days numerator of the attendance summary.
func (t WorkingType) CountsAsWorked() bool {
	switch t {
	case WorkingOffice, WorkingRemote, WorkingFullDay, WorkingHalfDay:
		return true
	}
	return false
}

type Attendance struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	EmployeeID  uint           `gorm:"not null;index" json:"employee_id"`
	Employee    Employee       `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
	Date        time.Time      `gorm:"not null;type:date;index" json:"date"`
	CheckIn     time.Time      `gorm:"not null" json:"check_in"`
	CheckOut    *time.Time     `json:"check_out"`
	WorkingType WorkingType    `gorm:"not null;size:20;default:office" json:"working_type"`
	Month       string         `gorm:"size:7;index" json:"month"`
}

// BeforeSave keeps the derived year-month label in sync with Date.
func (a *Attendance) BeforeSave(tx *gorm.DB) error {
	if !a.Date.IsZero() {
		a.Month = a.Date.Format("2006-01")
	}
	return nil
}
