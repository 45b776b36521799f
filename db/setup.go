package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jobtrail-dev/jobtrail/internal/models"
)

// Connect opens the database and returns the handle. The handle is passed
// into handlers and middleware explicitly; there is no package-level client.
func Connect(dsn string) (*gorm.DB, error) {
	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})

	if err != nil {
		return nil, err
	}

	return conn, nil
}

func Migrate(conn *gorm.DB) error {
	entities := []interface{}{
		&models.User{},
		&models.Company{},
		&models.Contact{},
		&models.Communication{},
		&models.FollowUpAction{},
		&models.Task{},
		&models.Application{},
		&models.Interview{},
		&models.Research{},
		&models.ResearchLink{},
		&models.Document{},
	}

	migrator := conn.Migrator()

	for _, entity := range entities {
		if !migrator.HasTable(entity) {
			if err := conn.AutoMigrate(entity); err != nil {
				return err
			}
		}
	}

	return nil
}
