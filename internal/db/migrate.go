package db

import (
	"cognihub/internal/domain" // Importing domain models

	"github.com/google/uuid"     // UUID generation for seeded rows
	"github.com/sirupsen/logrus" // Logging library

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(dsn string) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{}) // Open a connection to the database
	if err != nil {
		logrus.Fatalf("failed to connect database: %v", err) // Log fatal error if connection fails
	}
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes
	err = db.AutoMigrate(&domain.User{}, &domain.Resource{}, &domain.Community{})
	if err != nil {
		logrus.Fatalf("migration failed: %v", err) // Log fatal error if migration fails
	}
	seedCommunities(db)                 // Seed the default communities
	logrus.Info("Migration completed.") // Log successful migration
}

// seedCommunities inserts the default communities once. Names are unique,
// so re-running the migration never duplicates them.
func seedCommunities(db *gorm.DB) {
	defaults := []domain.Community{
		{Name: "Computer Science Hub", Description: "Campus CS students and faculty", Members: 1240, Type: domain.NetworkEDU},
		{Name: "Exam Prep Circle", Description: "Question paper discussion and prep", Members: 860, Type: domain.NetworkEDU},
		{Name: "Open Learners", Description: "Self-paced learning for everyone", Members: 2300, Type: domain.NetworkGeneral},
		{Name: "Career Switchers", Description: "Community learners changing fields", Members: 640, Type: domain.NetworkGeneral},
	}
	for _, community := range defaults {
		community.ID = uuid.NewString() // UUID primary key
		// Insert only when the name is not taken yet
		result := db.Where("name = ?", community.Name).FirstOrCreate(&community)
		if result.Error != nil {
			logrus.Warnf("failed to seed community %s: %v", community.Name, result.Error) // Log and continue
		}
	}
}
