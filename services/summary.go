package services

import (
	"sort"
	"time"

	"hrtime/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SummaryRow is one employee's attendance summary over a date range.
// Nothing here is persisted; rows are computed on demand.
type SummaryRow struct {
	EmployeeID       uint    `json:"employee_id"`
	EmployeeName     string  `json:"employee_name"`
	TotalWorkingDays int     `json:"total_working_days"`
	WorkedDays       int     `json:"worked_days"`
	OfficeDays       int     `json:"office_days"`
	RemoteDays       int     `json:"remote_days"`
	LeaveDays        int     `json:"leave_days"`
	HolidayDays      int     `json:"holiday_days"`
	SickDays         int     `json:"sick_days"`
	WeekendDays      int     `json:"weekend_days"`
	Percentage       float64 `json:"attendance_percentage"`
}

// ComputeSummary aggregates attendance for each employee in the date range.
// employeeIDs filters the result; empty means all active employees. The
// denominator counts Monday through Friday only, regardless of individual
// work schedules.
func ComputeSummary(db *gorm.DB, from, to time.Time, employeeIDs []uint) ([]SummaryRow, error) {
	from = dateOnly(from)
	to = dateOnly(to)

	query := db.Where("active = ?", true)
	if len(employeeIDs) > 0 {
		query = query.Where("id IN ?", employeeIDs)
	}
	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		return nil, err
	}

	workingDays := CountWorkingDays(from, to)

	rows := make([]SummaryRow, 0, len(employees))
	for _, employee := range employees {
		row, err := computeEmployeeSummary(db, employee, from, to, workingDays)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Percentage != rows[j].Percentage {
			return rows[i].Percentage > rows[j].Percentage
		}
		return rows[i].EmployeeID < rows[j].EmployeeID
	})
	return rows, nil
}

func computeEmployeeSummary(db *gorm.DB, employee models.Employee, from, to time.Time, workingDays int) (SummaryRow, error) {
	row := SummaryRow{
		EmployeeID:       employee.ID,
		EmployeeName:     employee.Name,
		TotalWorkingDays: workingDays,
	}

	var attendances []models.Attendance
	err := db.Where("employee_id = ? AND date >= ? AND date <= ?", employee.ID, from, to).
		Find(&attendances).Error
	if err != nil {
		return row, err
	}

	// One category per date, so duplicate records never double count
	byDate := make(map[string][]models.WorkingType)
	for _, a := range attendances {
		key := dateOnly(a.Date).Format(dateLayout)
		byDate[key] = append(byDate[key], a.WorkingType)
	}

	for _, types := range byDate {
		switch dominantWorkingType(types) {
		case models.WorkingSick:
			row.SickDays++
			row.LeaveDays++
		case models.WorkingAnnualLeave:
			row.LeaveDays++
		case models.WorkingLeave:
			row.LeaveDays++
		case models.WorkingHoliday:
			row.HolidayDays++
		case models.WorkingWeekend:
			row.WeekendDays++
		case models.WorkingOffice:
			row.OfficeDays++
			row.WorkedDays++
		case models.WorkingRemote:
			row.RemoteDays++
			row.WorkedDays++
		case models.WorkingFullDay, models.WorkingHalfDay:
			row.WorkedDays++
		}
	}

	if workingDays > 0 {
		pct := decimal.NewFromInt(int64(row.WorkedDays) * 100).
			Div(decimal.NewFromInt(int64(workingDays))).
			Round(2)
		row.Percentage, _ = pct.Float64()
	}
	return row, nil
}

// dominantWorkingType picks the category that represents a day with several
// attendance records. Leave categories outrank presence categories.
var workingTypePriority = []models.WorkingType{
	models.WorkingSick,
	models.WorkingAnnualLeave,
	models.WorkingLeave,
	models.WorkingHoliday,
	models.WorkingWeekend,
	models.WorkingOffice,
	models.WorkingRemote,
	models.WorkingFullDay,
	models.WorkingHalfDay,
}

func dominantWorkingType(types []models.WorkingType) models.WorkingType {
	for _, p := range workingTypePriority {
		for _, t := range types {
			if t == p {
				return p
			}
		}
	}
	if len(types) > 0 {
		return types[0]
	}
	return models.WorkingOffice
}
