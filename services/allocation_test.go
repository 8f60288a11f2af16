package services

import (
	"testing"
	"time"

	"hrtime/models"

	"github.com/shopspring/decimal"
)

func TestAnnualAllocationFirstYearSchedule(t *testing.T) {
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Alice", date(2025, time.January, 1), 6)

	report, err := RunAnnualAllocation(db, date(2025, time.December, 15))
	if err != nil {
		t.Fatalf("RunAnnualAllocation: %v", err)
	}
	if report.Records != 12 {
		t.Fatalf("expected 12 allocations, got %d", report.Records)
	}
	if !report.Days.Equal(decimal.NewFromInt(30)) {
		t.Errorf("expected 30 days in the first year, got %s", report.Days)
	}

	var allocations []models.LeaveAllocation
	db.Where("employee_id = ?", employee.ID).Order("allocation_date asc").Find(&allocations)
	if len(allocations) != 12 {
		t.Fatalf("expected 12 allocation records, got %d", len(allocations))
	}
	for i, a := range allocations[:11] {
		if !a.Days.Equal(decimal.NewFromInt(2)) {
			t.Errorf("allocation %d: expected 2 days, got %s", i+1, a.Days)
		}
	}
	if !allocations[11].Days.Equal(decimal.NewFromInt(8)) {
		t.Errorf("12th allocation: expected 8 days topping up to 30, got %s", allocations[11].Days)
	}
}

func TestAnnualAllocationIdempotent(t *testing.T) {
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Bob", date(2025, time.March, 10), 6)

	today := date(2025, time.August, 20)
	if _, err := RunAnnualAllocation(db, today); err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := RunAnnualAllocation(db, today)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if second.Records != 0 {
		t.Errorf("second run created %d records, want 0", second.Records)
	}

	var count int64
	db.Model(&models.LeaveAllocation{}).Where("employee_id = ?", employee.ID).Count(&count)
	if count != 6 {
		t.Errorf("expected 6 allocations for March through August, got %d", count)
	}
}

func TestAnnualAllocationIncludesCurrentMonth(t *testing.T) {
	// Joined on the 15th, today is Feb 2: the February credit must still be
	// created even though the nominal allocation day has not arrived yet.
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Carol", date(2025, time.January, 15), 6)

	if _, err := RunAnnualAllocation(db, date(2026, time.February, 2)); err != nil {
		t.Fatalf("RunAnnualAllocation: %v", err)
	}

	var feb models.LeaveAllocation
	err := db.Where("employee_id = ? AND allocation_date = ?", employee.ID, date(2026, time.February, 15)).
		First(&feb).Error
	if err != nil {
		t.Fatalf("February 2026 allocation missing: %v", err)
	}

	var count int64
	db.Model(&models.LeaveAllocation{}).Where("employee_id = ?", employee.ID).Count(&count)
	if count != 14 {
		t.Errorf("expected 14 months January 2025 through February 2026, got %d", count)
	}
}

func TestAnnualAllocationProbationDefersValidity(t *testing.T) {
	db := newTestDB(t)
	employee, contract := createEmployeeWithContract(t, db, "Dave", date(2025, time.June, 1), 6)

	if _, err := RunAnnualAllocation(db, date(2025, time.August, 20)); err != nil {
		t.Fatalf("RunAnnualAllocation: %v", err)
	}

	probationEnd := contract.ProbationEnd()
	var allocations []models.LeaveAllocation
	db.Where("employee_id = ?", employee.ID).Order("allocation_date asc").Find(&allocations)
	if len(allocations) != 3 {
		t.Fatalf("expected allocations for June, July, August, got %d", len(allocations))
	}
	for _, a := range allocations {
		if !a.DateFrom.Equal(probationEnd) {
			t.Errorf("allocation %s: validity starts %s, want probation end %s",
				a.AllocationDate.Format("2006-01-02"), a.DateFrom.Format("2006-01-02"),
				probationEnd.Format("2006-01-02"))
		}
		// The month represented is unchanged by the deferred validity
		if a.AllocationDate.After(probationEnd) {
			t.Errorf("allocation date %s leaked past probation end", a.AllocationDate.Format("2006-01-02"))
		}
	}
}

func TestAnnualAllocationSecondYearRate(t *testing.T) {
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Erin", date(2024, time.January, 1), 6)

	report, err := RunAnnualAllocation(db, date(2025, time.March, 10))
	if err != nil {
		t.Fatalf("RunAnnualAllocation: %v", err)
	}
	if report.Records != 15 {
		t.Fatalf("expected 12 first-year plus 3 second-year allocations, got %d", report.Records)
	}

	var secondYear []models.LeaveAllocation
	db.Where("employee_id = ? AND allocation_date >= ?", employee.ID, date(2025, time.January, 1)).
		Order("allocation_date asc").Find(&secondYear)
	if len(secondYear) != 3 {
		t.Fatalf("expected 3 second-year allocations, got %d", len(secondYear))
	}
	for _, a := range secondYear {
		if !a.Days.Equal(decimal.RequireFromString("2.5")) {
			t.Errorf("second year allocation %s: expected 2.5 days, got %s",
				a.AllocationDate.Format("2006-01-02"), a.Days)
		}
	}
}

func TestAnnualAllocationMonthEndClamping(t *testing.T) {
	// Joined on the 31st: February's credit lands on the last day of February
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Frank", date(2025, time.January, 31), 6)

	if _, err := RunAnnualAllocation(db, date(2025, time.April, 30)); err != nil {
		t.Fatalf("RunAnnualAllocation: %v", err)
	}

	var feb models.LeaveAllocation
	err := db.Where("employee_id = ? AND allocation_date = ?", employee.ID, date(2025, time.February, 28)).
		First(&feb).Error
	if err != nil {
		t.Fatalf("February allocation not clamped to Feb 28: %v", err)
	}
}

func TestAnnualAllocationOldContractValidity(t *testing.T) {
	// Contracts predating 2024 never defer validity for probation
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Grace", date(2023, time.November, 1), 6)

	if _, err := RunAnnualAllocation(db, date(2024, time.January, 15)); err != nil {
		t.Fatalf("RunAnnualAllocation: %v", err)
	}

	var allocations []models.LeaveAllocation
	db.Where("employee_id = ?", employee.ID).Order("allocation_date asc").Find(&allocations)
	if len(allocations) != 3 {
		t.Fatalf("expected 3 allocations, got %d", len(allocations))
	}
	for _, a := range allocations {
		if !a.DateFrom.Equal(a.AllocationDate) {
			t.Errorf("old contract allocation %s: validity deferred to %s",
				a.AllocationDate.Format("2006-01-02"), a.DateFrom.Format("2006-01-02"))
		}
	}
}

func TestAnnualAllocationSkipsInactiveEmployees(t *testing.T) {
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Heidi", date(2025, time.January, 1), 6)
	db.Model(&models.Employee{}).Where("id = ?", employee.ID).Update("active", false)

	report, err := RunAnnualAllocation(db, date(2025, time.June, 1))
	if err != nil {
		t.Fatalf("RunAnnualAllocation: %v", err)
	}
	if report.Records != 0 {
		t.Errorf("inactive employee received %d allocations", report.Records)
	}
}

func TestSickAllocation(t *testing.T) {
	db := newTestDB(t)
	employee, _ := createEmployeeWithContract(t, db, "Ivan", date(2025, time.January, 1), 6)

	// Still in probation: nothing
	report, err := RunSickAllocation(db, date(2025, time.May, 1))
	if err != nil {
		t.Fatalf("RunSickAllocation: %v", err)
	}
	if report.Records != 0 {
		t.Fatalf("sick leave allocated during probation")
	}

	// After probation: 15 days for the contract year
	report, err = RunSickAllocation(db, date(2025, time.August, 1))
	if err != nil {
		t.Fatalf("RunSickAllocation: %v", err)
	}
	if report.Records != 1 || !report.Days.Equal(decimal.NewFromInt(15)) {
		t.Fatalf("expected one 15-day sick allocation, got %d records, %s days", report.Records, report.Days)
	}

	var allocation models.LeaveAllocation
	sickType := leaveTypeByCode(t, db, models.LeaveCodeSick)
	db.Where("employee_id = ? AND leave_type_id = ?", employee.ID, sickType.ID).First(&allocation)
	if !allocation.AllocationDate.Equal(date(2025, time.January, 1)) {
		t.Errorf("sick allocation date %s, want contract year start", allocation.AllocationDate.Format("2006-01-02"))
	}
	if !allocation.DateTo.Equal(date(2026, time.January, 1)) {
		t.Errorf("sick allocation valid to %s, want contract year end", allocation.DateTo.Format("2006-01-02"))
	}

	// Second run in the same contract year is a no-op
	report, err = RunSickAllocation(db, date(2025, time.November, 1))
	if err != nil {
		t.Fatalf("RunSickAllocation: %v", err)
	}
	if report.Records != 0 {
		t.Errorf("duplicate sick allocation in the same contract year")
	}
}

func TestSickAllocationClampsToContractEnd(t *testing.T) {
	db := newTestDB(t)
	employee, contract := createEmployeeWithContract(t, db, "Judy", date(2025, time.January, 1), 3)
	end := date(2025, time.October, 1)
	db.Model(&contract).Update("date_end", end)

	if _, err := RunSickAllocation(db, date(2025, time.June, 1)); err != nil {
		t.Fatalf("RunSickAllocation: %v", err)
	}

	var allocation models.LeaveAllocation
	sickType := leaveTypeByCode(t, db, models.LeaveCodeSick)
	if err := db.Where("employee_id = ? AND leave_type_id = ?", employee.ID, sickType.ID).First(&allocation).Error; err != nil {
		t.Fatalf("sick allocation missing: %v", err)
	}
	if !allocation.DateTo.Equal(end) {
		t.Errorf("sick allocation valid to %s, want contract end %s",
			allocation.DateTo.Format("2006-01-02"), end.Format("2006-01-02"))
	}
}

func TestCheckProbation(t *testing.T) {
	db := newTestDB(t)
	employee, contract := createEmployeeWithContract(t, db, "Mallory", date(2025, time.January, 1), 6)

	if err := CheckProbation(db, employee.ID, date(2025, time.April, 1)); err == nil {
		t.Errorf("expected probation rejection for a leave in April")
	}
	if err := CheckProbation(db, employee.ID, contract.ProbationEnd()); err != nil {
		t.Errorf("leave on probation end rejected: %v", err)
	}
	if err := CheckProbation(db, employee.ID, date(2026, time.March, 1)); err != nil {
		t.Errorf("leave after probation rejected: %v", err)
	}
}
