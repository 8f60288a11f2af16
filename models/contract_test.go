package models

import (
	"testing"
	"time"
)

func TestContractValidate(t *testing.T) {
	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		contract Contract
		wantErr  bool
	}{
		{"valid", Contract{DateStart: start, ProbationMonths: 6, WorkDays: DefaultWorkDays}, false},
		{"probation too short", Contract{DateStart: start, ProbationMonths: 0, WorkDays: DefaultWorkDays}, true},
		{"probation too long", Contract{DateStart: start, ProbationMonths: 7, WorkDays: DefaultWorkDays}, true},
		{"bad work day digit", Contract{DateStart: start, ProbationMonths: 3, WorkDays: "0127"}, true},
		{"end before start", Contract{DateStart: start, DateEnd: &end, ProbationMonths: 3, WorkDays: DefaultWorkDays}, true},
	}
	for _, tt := range tests {
		err := tt.contract.Validate()
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: Validate() error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestContractProbationEnd(t *testing.T) {
	c := Contract{
		DateStart:       time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		ProbationMonths: 3,
	}
	want := time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)
	if got := c.ProbationEnd(); !got.Equal(want) {
		t.Errorf("ProbationEnd() = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}

	// Zero months falls back to the default
	c.ProbationMonths = 0
	want = time.Date(2024, time.July, 15, 0, 0, 0, 0, time.UTC)
	if got := c.ProbationEnd(); !got.Equal(want) {
		t.Errorf("ProbationEnd() with zero months = %s, want %s", got.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestContractWorksOn(t *testing.T) {
	weekdays := Contract{WorkDays: DefaultWorkDays}
	if !weekdays.WorksOn(time.Monday) || !weekdays.WorksOn(time.Friday) {
		t.Errorf("default schedule should cover Monday through Friday")
	}
	if weekdays.WorksOn(time.Saturday) || weekdays.WorksOn(time.Sunday) {
		t.Errorf("default schedule should not cover the weekend")
	}

	sixDay := Contract{WorkDays: "012345"}
	if !sixDay.WorksOn(time.Saturday) {
		t.Errorf("six day schedule should cover Saturday")
	}
	if sixDay.WorksOn(time.Sunday) {
		t.Errorf("six day schedule should not cover Sunday")
	}
}

func TestContractActiveOn(t *testing.T) {
	start := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	c := Contract{State: ContractOpen, DateStart: start, DateEnd: &end}

	if !c.ActiveOn(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("contract should be active mid-term")
	}
	if c.ActiveOn(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("contract should not be active before its start")
	}
	if c.ActiveOn(time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("contract should not be active after its end")
	}

	c.State = ContractClosed
	if c.ActiveOn(time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("closed contract should never be active")
	}
}
