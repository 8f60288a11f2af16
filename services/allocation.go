package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"hrtime/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Annual leave entitlement. First contract year: 2 days for each of the
// first 11 monthly credits, then a 12th credit topping the year up to 30.
// Later years: 2.5 days per month, still capped at 30 per contract year.
var (
	maxAnnualDaysPerYear = decimal.NewFromInt(30)
	firstYearMonthlyDays = decimal.NewFromInt(2)
	standardMonthlyDays  = decimal.RequireFromString("2.5")
	sickDaysPerYear      = decimal.NewFromInt(15)
)

const firstYearRegularCredits = 11

// AllocationReport summarizes one run of an allocation job.
type AllocationReport struct {
	Employees int             `json:"employees"`
	Records   int             `json:"records"`
	Days      decimal.Decimal `json:"days"`
}

// RunAnnualAllocation walks every active employee with an open contract and
// creates the monthly annual leave credits that are still missing, from the
// original joining date up to and including the current month. Idempotent:
// a month that already has a validated auto credit is never credited again.
func RunAnnualAllocation(db *gorm.DB, today time.Time) (AllocationReport, error) {
	log.Println("Starting annual leave allocation run...")
	today = dateOnly(today)

	var annualType models.LeaveType
	if err := db.Where("code = ?", models.LeaveCodeAnnual).First(&annualType).Error; err != nil {
		return AllocationReport{}, fmt.Errorf("annual leave type missing: %w", err)
	}

	contracts, err := openContracts(db, today)
	if err != nil {
		return AllocationReport{}, err
	}

	report := AllocationReport{Days: decimal.Zero}
	seen := make(map[uint]bool)

	for _, contract := range contracts {
		if seen[contract.EmployeeID] || !contract.Employee.Active {
			continue
		}
		seen[contract.EmployeeID] = true

		days, records, err := allocateAnnualForEmployee(db, contract.Employee, annualType, today)
		if err != nil {
			log.Printf("Annual allocation failed for %s: %v", contract.Employee.Name, err)
			continue
		}
		if records > 0 {
			report.Employees++
			report.Records += records
			report.Days = report.Days.Add(days)
		}
	}

	log.Printf("Annual leave allocation completed: %s days across %d records for %d employees",
		report.Days.String(), report.Records, report.Employees)
	return report, nil
}

func allocateAnnualForEmployee(db *gorm.DB, employee models.Employee, annualType models.LeaveType, today time.Time) (decimal.Decimal, int, error) {
	// The original joining date comes from the employee's first contract,
	// even when they have since been re-contracted.
	var first models.Contract
	if err := db.Where("employee_id = ?", employee.ID).Order("date_start asc").First(&first).Error; err != nil {
		return decimal.Zero, 0, fmt.Errorf("no contract found: %w", err)
	}

	joining := dateOnly(first.DateStart)
	isNewContract := !joining.Before(NewContractCutoff)
	probationEnd := first.ProbationEnd()
	allocationDay := joining.Day()

	var existing []models.LeaveAllocation
	err := db.Where("employee_id = ? AND leave_type_id = ? AND auto_allocated = ? AND state = ?",
		employee.ID, annualType.ID, true, models.AllocationValidate).Find(&existing).Error
	if err != nil {
		return decimal.Zero, 0, err
	}

	// Dedup is keyed on AllocationDate, the month a credit represents.
	// DateFrom is the validity start and moves with probation, so keying on
	// it would re-credit every probation month.
	allocated := make(map[string]bool, len(existing))
	yearDays := make(map[int]decimal.Decimal)
	yearCount := make(map[int]int)
	for _, a := range existing {
		allocated[dateOnly(a.AllocationDate).Format(dateLayout)] = true
		idx := yearsBetween(joining, dateOnly(a.AllocationDate))
		yearDays[idx] = yearDays[idx].Add(a.Days)
		yearCount[idx]++
	}

	contractType := "Old"
	if isNewContract {
		contractType = "New"
	}

	totalDays := decimal.Zero
	records := 0

	// Walk months by calendar month, comparing year+month only. Comparing
	// full allocation dates against today would skip the current month for
	// anyone whose joining day falls later than today's day-of-month.
	year, month := joining.Year(), joining.Month()
	endYear, endMonth := today.Year(), today.Month()
	for year < endYear || (year == endYear && month <= endMonth) {
		allocDate := dayInMonth(year, month, allocationDay)
		key := allocDate.Format(dateLayout)

		month++
		if month > time.December {
			month = time.January
			year++
		}

		if allocated[key] {
			continue
		}

		idx := yearsBetween(joining, allocDate)
		if idx < 0 {
			continue
		}
		total := yearDays[idx]
		if total.GreaterThanOrEqual(maxAnnualDaysPerYear) {
			continue
		}

		var days decimal.Decimal
		if idx == 0 && yearCount[idx] < firstYearRegularCredits {
			days = firstYearMonthlyDays
		} else if idx == 0 {
			// 12th credit in the first year tops the total up to 30
			days = maxAnnualDaysPerYear.Sub(total)
		} else {
			days = standardMonthlyDays
		}
		if total.Add(days).GreaterThan(maxAnnualDaysPerYear) {
			days = maxAnnualDaysPerYear.Sub(total)
		}
		if days.LessThanOrEqual(decimal.Zero) {
			continue
		}

		// Credits earned during probation on the new scheme only become
		// usable once probation ends.
		validityStart := allocDate
		if isNewContract && allocDate.Before(probationEnd) {
			validityStart = probationEnd
		}
		validityEnd := validityStart.AddDate(1, 0, 0)

		allocation := models.LeaveAllocation{
			EmployeeID:     employee.ID,
			LeaveTypeID:    annualType.ID,
			AllocationDate: allocDate,
			DateFrom:       validityStart,
			DateTo:         validityEnd,
			Days:           days,
			State:          models.AllocationValidate,
			AutoAllocated:  true,
			Note:           fmt.Sprintf("Annual Leave - %s (%s Contract)", allocDate.Format("January 2006"), contractType),
		}
		if err := db.Create(&allocation).Error; err != nil {
			log.Printf("Failed to allocate annual leave for %s on %s: %v", employee.Name, key, err)
			continue
		}

		allocated[key] = true
		yearDays[idx] = total.Add(days)
		yearCount[idx]++
		totalDays = totalDays.Add(days)
		records++

		log.Printf("Allocated %s annual leave days to %s for %s (year %d, valid %s to %s)",
			days.String(), employee.Name, allocDate.Format("January 2006"), idx+1,
			validityStart.Format(dateLayout), validityEnd.Format(dateLayout))
	}

	return totalDays, records, nil
}

// RunSickAllocation credits 15 sick days per contract year to employees who
// have completed probation. One credit per contract year, valid for that
// contract year only, clamped to the contract end date.
func RunSickAllocation(db *gorm.DB, today time.Time) (AllocationReport, error) {
	log.Println("Starting sick leave allocation run...")
	today = dateOnly(today)

	var sickType models.LeaveType
	if err := db.Where("code = ?", models.LeaveCodeSick).First(&sickType).Error; err != nil {
		return AllocationReport{}, fmt.Errorf("sick leave type missing: %w", err)
	}

	contracts, err := openContracts(db, today)
	if err != nil {
		return AllocationReport{}, err
	}

	report := AllocationReport{Days: decimal.Zero}
	seen := make(map[uint]bool)

	for _, contract := range contracts {
		if seen[contract.EmployeeID] || !contract.Employee.Active {
			continue
		}
		seen[contract.EmployeeID] = true

		days, err := allocateSickForEmployee(db, contract, sickType, today)
		if err != nil {
			log.Printf("Sick allocation failed for %s: %v", contract.Employee.Name, err)
			continue
		}
		if days.IsPositive() {
			report.Employees++
			report.Records++
			report.Days = report.Days.Add(days)
		}
	}

	log.Printf("Sick leave allocation completed: %s days for %d employees",
		report.Days.String(), report.Employees)
	return report, nil
}

func allocateSickForEmployee(db *gorm.DB, contract models.Contract, sickType models.LeaveType, today time.Time) (decimal.Decimal, error) {
	joining := dateOnly(contract.DateStart)

	if today.Before(contract.ProbationEnd()) {
		return decimal.Zero, nil
	}

	// Contract year window based on the joining anniversary
	idx := yearsBetween(joining, today)
	yearStart := joining.AddDate(idx, 0, 0)
	yearEnd := joining.AddDate(idx+1, 0, 0)

	var count int64
	err := db.Model(&models.LeaveAllocation{}).
		Where("employee_id = ? AND leave_type_id = ? AND auto_allocated = ? AND state = ?",
			contract.EmployeeID, sickType.ID, true, models.AllocationValidate).
		Where("allocation_date >= ? AND allocation_date < ?", yearStart, yearEnd).
		Count(&count).Error
	if err != nil {
		return decimal.Zero, err
	}
	if count > 0 {
		return decimal.Zero, nil
	}

	validityEnd := yearEnd
	if contract.DateEnd != nil && contract.DateEnd.Before(validityEnd) {
		validityEnd = dateOnly(*contract.DateEnd)
	}

	allocation := models.LeaveAllocation{
		EmployeeID:     contract.EmployeeID,
		LeaveTypeID:    sickType.ID,
		AllocationDate: yearStart,
		DateFrom:       yearStart,
		DateTo:         validityEnd,
		Days:           sickDaysPerYear,
		State:          models.AllocationValidate,
		AutoAllocated:  true,
		Note:           fmt.Sprintf("Sick Leave - Contract Year %d", idx+1),
	}
	if err := db.Create(&allocation).Error; err != nil {
		return decimal.Zero, err
	}

	log.Printf("Allocated %s sick leave days to employee %d for contract year %d (valid %s to %s)",
		sickDaysPerYear.String(), contract.EmployeeID, idx+1,
		yearStart.Format(dateLayout), validityEnd.Format(dateLayout))
	return sickDaysPerYear, nil
}

// CheckProbation rejects leave requests that start before the probation end
// of the employee's earliest open contract.
func CheckProbation(db *gorm.DB, employeeID uint, dateFrom time.Time) error {
	var contract models.Contract
	err := db.Where("employee_id = ? AND state = ?", employeeID, models.ContractOpen).
		Order("date_start asc").First(&contract).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	probationEnd := contract.ProbationEnd()
	if dateOnly(dateFrom).Before(probationEnd) {
		return fmt.Errorf("employee is in probation until %s; leave requests are not allowed during probation",
			probationEnd.Format(dateLayout))
	}
	return nil
}

// openContracts returns open contracts in force today, with employees loaded.
func openContracts(db *gorm.DB, today time.Time) ([]models.Contract, error) {
	var contracts []models.Contract
	err := db.Preload("Employee").
		Where("state = ? AND date_start <= ?", models.ContractOpen, today).
		Where("date_end IS NULL OR date_end >= ?", today).
		Order("date_start asc").
		Find(&contracts).Error
	return contracts, err
}
