package models

import (
	"testing"
	"time"
)

func TestAttendanceMonthLabel(t *testing.T) {
	a := Attendance{Date: time.Date(2024, time.March, 7, 0, 0, 0, 0, time.UTC)}
	if err := a.BeforeSave(nil); err != nil {
		t.Fatalf("BeforeSave: %v", err)
	}
	if a.Month != "2024-03" {
		t.Errorf("Month = %q, want 2024-03", a.Month)
	}
}

func TestValidWorkingType(t *testing.T) {
	if !ValidWorkingType(WorkingOffice) || !ValidWorkingType(WorkingWeekend) {
		t.Errorf("known working types rejected")
	}
	if ValidWorkingType("vacation") {
		t.Errorf("unknown working type accepted")
	}
}

func TestCountsAsWorked(t *testing.T) {
	worked := []WorkingType{WorkingOffice, WorkingRemote, WorkingFullDay, WorkingHalfDay}
	for _, wt := range worked {
		if !wt.CountsAsWorked() {
			t.Errorf("%s should count as worked", wt)
		}
	}
	notWorked := []WorkingType{WorkingSick, WorkingAnnualLeave, WorkingHoliday, WorkingWeekend, WorkingLeave}
	for _, wt := range notWorked {
		if wt.CountsAsWorked() {
			t.Errorf("%s should not count as worked", wt)
		}
	}
}
