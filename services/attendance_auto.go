package services

import (
	"log"
	"strings"
	"time"

	"hrtime/models"

	"gorm.io/gorm"
)

// AttendanceReport summarizes one run of the attendance automation job.
type AttendanceReport struct {
	TimeoffRecords int `json:"timeoff_records"`
	WeekendRecords int `json:"weekend_records"`
}

// RunAttendanceAutomation fills the current month with the attendance
// records that nobody clocks in for: approved time off and weekend days.
func RunAttendanceAutomation(db *gorm.DB, today time.Time) (AttendanceReport, error) {
	log.Println("Starting automated attendance creation run...")

	var report AttendanceReport
	var err error

	report.TimeoffRecords, err = CreateTimeoffAttendances(db, today)
	if err != nil {
		return report, err
	}

	report.WeekendRecords, err = CreateWeekendAttendances(db, today)
	if err != nil {
		return report, err
	}

	log.Printf("Automated attendance creation completed: %d time off, %d weekend records",
		report.TimeoffRecords, report.WeekendRecords)
	return report, nil
}

// WorkingTypeForLeave maps a leave type to the attendance working type.
// Codes win; the name is a fallback for types created without one.
func WorkingTypeForLeave(leaveType models.LeaveType) models.WorkingType {
	switch leaveType.Code {
	case models.LeaveCodeSick:
		return models.WorkingSick
	case models.LeaveCodeAnnual:
		return models.WorkingAnnualLeave
	case models.LeaveCodeHoliday:
		return models.WorkingHoliday
	case models.LeaveCodeUnpaid:
		// Unpaid leave shows up as annual leave in attendance
		return models.WorkingAnnualLeave
	}

	name := strings.ToLower(leaveType.Name)
	switch {
	case strings.Contains(name, "sick"):
		return models.WorkingSick
	case strings.Contains(name, "annual"), strings.Contains(name, "paid"):
		return models.WorkingAnnualLeave
	default:
		return models.WorkingHoliday
	}
}

// CreateTimeoffAttendances creates one attendance record per day of every
// approved leave overlapping the current month. Days that already have any
// attendance record are left alone.
func CreateTimeoffAttendances(db *gorm.DB, today time.Time) (int, error) {
	firstDay, lastDay := monthBounds(today)

	var leaves []models.Leave
	err := db.Preload("Employee").Preload("LeaveType").
		Where("state = ? AND date_from <= ? AND date_to >= ?", models.LeaveValidate, lastDay, firstDay).
		Find(&leaves).Error
	if err != nil {
		return 0, err
	}

	created := 0
	for _, leave := range leaves {
		if !leave.Employee.Active {
			continue
		}

		workingType := WorkingTypeForLeave(leave.LeaveType)

		start := dateOnly(leave.DateFrom)
		end := dateOnly(leave.DateTo)
		if start.Before(firstDay) {
			start = firstDay
		}
		if end.After(lastDay) {
			end = lastDay
		}

		for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
			ok, err := createAttendanceIfMissing(db, leave.EmployeeID, day, workingType)
			if err != nil {
				log.Printf("Failed to create %s attendance for %s on %s: %v",
					workingType, leave.Employee.Name, day.Format(dateLayout), err)
				continue
			}
			if ok {
				created++
			}
		}
	}

	return created, nil
}

// CreateWeekendAttendances creates weekend records for the current month for
// every active employee with an open contract, based on the contract's work
// day schedule.
func CreateWeekendAttendances(db *gorm.DB, today time.Time) (int, error) {
	firstDay, lastDay := monthBounds(today)

	var employees []models.Employee
	if err := db.Where("active = ?", true).Find(&employees).Error; err != nil {
		return 0, err
	}

	created := 0
	for _, employee := range employees {
		var contract models.Contract
		err := db.Where("employee_id = ? AND state = ? AND date_start <= ?",
			employee.ID, models.ContractOpen, lastDay).
			Where("date_end IS NULL OR date_end >= ?", firstDay).
			First(&contract).Error
		if err != nil {
			// No active contract this month, nothing to generate
			continue
		}

		for day := firstDay; !day.After(lastDay); day = day.AddDate(0, 0, 1) {
			if contract.WorksOn(day.Weekday()) {
				continue
			}
			ok, err := createAttendanceIfMissing(db, employee.ID, day, models.WorkingWeekend)
			if err != nil {
				log.Printf("Failed to create weekend attendance for %s on %s: %v",
					employee.Name, day.Format(dateLayout), err)
				continue
			}
			if ok {
				created++
			}
		}
	}

	return created, nil
}

func createAttendanceIfMissing(db *gorm.DB, employeeID uint, day time.Time, workingType models.WorkingType) (bool, error) {
	var count int64
	err := db.Model(&models.Attendance{}).
		Where("employee_id = ? AND date = ?", employeeID, day).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	checkOut := day.Add(23*time.Hour + 59*time.Minute)
	attendance := models.Attendance{
		EmployeeID:  employeeID,
		Date:        day,
		CheckIn:     day,
		CheckOut:    &checkOut,
		WorkingType: workingType,
	}
	if err := db.Create(&attendance).Error; err != nil {
		return false, err
	}
	return true, nil
}

func monthBounds(today time.Time) (time.Time, time.Time) {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first, last
}
