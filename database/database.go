package database

import (
	"log"

	"hrtime/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init(dsn string) error {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return err
	}

	// Auto migrate the schema
	err = DB.AutoMigrate(
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
		return err
	}

	// Seed default admin if not exists
	if err := seedDefaultAdmin(); err != nil {
		return err
	}

	// Seed the leave types the automation jobs depend on
	if err := SeedLeaveTypes(DB); err != nil {
		return err
	}

	return nil
}

func seedDefaultAdmin() error {
	var count int64
	DB.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:           "admin",
		FullName:           "Administrator",
		PasswordHash:       string(hashedPassword),
		Role:               models.RoleAdmin,
		MustChangePassword: true,
	}

	result := DB.Create(&admin)
	if result.Error != nil {
		return result.Error
	}

	log.Println("Default admin user created (username: admin, password: admin)")
	return nil
}

// SeedLeaveTypes creates the leave types identified by code if they are
// missing. The allocation and attendance jobs look types up by code, so
// renaming a type in the UI does not break them.
func SeedLeaveTypes(db *gorm.DB) error {
	seeds := []models.LeaveType{
		{Name: "Annual Leave", Code: models.LeaveCodeAnnual, RequiresAllocation: true, Color: 5},
		{Name: "Sick Leave", Code: models.LeaveCodeSick, RequiresAllocation: true, Color: 1},
		{Name: "Unpaid Leave", Code: models.LeaveCodeUnpaid, Unpaid: true, Color: 3},
		{Name: "Public Holiday", Code: models.LeaveCodeHoliday, Color: 4},
	}

	for _, seed := range seeds {
		var count int64
		if err := db.Model(&models.LeaveType{}).Where("code = ?", seed.Code).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&seed).Error; err != nil {
			return err
		}
		log.Printf("Created leave type %s (%s)", seed.Name, seed.Code)
	}
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
