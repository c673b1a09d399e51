package bootstrap

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"monagenda.fr/myagenda/internal/model"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Homework{},
		&model.Completion{},
		&model.Comment{},
		&model.Notification{},
	)
}

// SeedAdminUser creates the development admin account once.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@myagenda.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := model.User{
		Username:     "admin",
		Email:        "admin@myagenda.local",
		PasswordHash: string(hashedPasswordBytes),
		IsAdmin:      true,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded")
	log.Println("   Email: admin@myagenda.local")
	log.Println("   Password: admin123")

	return nil
}

// SeedSampleHomework fills an empty development database with a few homework
// rows so the agenda has something to show.
func SeedSampleHomework(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Homework{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	due := func(days int, hour int) *time.Time {
		t := time.Now().AddDate(0, 0, days)
		t = time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, time.Local)
		return &t
	}

	samples := []model.Homework{
		{Title: "Exercices 12 et 13 page 45", Subject: "Maths", Class: "3B", DueDate: due(1, 8)},
		{Title: "Lire le chapitre 3", Subject: "Français", Class: "3B", DueDate: due(3, 10)},
		{Title: "Révisions contrôle d'histoire", Subject: "Histoire", Class: "5A", DueDate: due(5, 14)},
	}

	if err := db.Create(&samples).Error; err != nil {
		return err
	}

	log.Printf("Seeded %d sample homework(s)", len(samples))
	return nil
}
