package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hrtime/database"
	"hrtime/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := atomic.AddInt64(&testDBCounter, 1)
	dsn := fmt.Sprintf("file:servicetest%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Invite{},
		&models.Employee{},
		&models.Contract{},
		&models.LeaveType{},
		&models.LeaveAllocation{},
		&models.Leave{},
		&models.Attendance{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	if err := database.SeedLeaveTypes(db); err != nil {
		t.Fatalf("failed to seed leave types: %v", err)
	}

	return db
}

func createEmployeeWithContract(t *testing.T, db *gorm.DB, name string, dateStart time.Time, probationMonths int) (models.Employee, models.Contract) {
	t.Helper()

	employee := models.Employee{Name: name, Active: true}
	if err := db.Create(&employee).Error; err != nil {
		t.Fatalf("failed to create employee: %v", err)
	}

	contract := models.Contract{
		EmployeeID:      employee.ID,
		State:           models.ContractOpen,
		DateStart:       dateStart,
		ProbationMonths: probationMonths,
		WorkDays:        models.DefaultWorkDays,
	}
	if err := db.Create(&contract).Error; err != nil {
		t.Fatalf("failed to create contract: %v", err)
	}

	return employee, contract
}

func leaveTypeByCode(t *testing.T, db *gorm.DB, code string) models.LeaveType {
	t.Helper()
	var lt models.LeaveType
	if err := db.Where("code = ?", code).First(&lt).Error; err != nil {
		t.Fatalf("leave type %s not seeded: %v", code, err)
	}
	return lt
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
