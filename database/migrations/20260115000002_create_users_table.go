package migrations

import (
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/migration"
	"gorm.io/gorm"
)

type CreateUsersTable struct{}

func init() {
	migration.Register("20260115000002_create_users_table", &CreateUsersTable{})
}

func (CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}
