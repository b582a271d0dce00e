package migrations

import (
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/migration"
	"gorm.io/gorm"
)

type CreateCustomersTable struct{}

func init() {
	migration.Register("20260115000003_create_customers_table", &CreateCustomersTable{})
}

func (CreateCustomersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Customer{})
}

func (CreateCustomersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Customer{})
}
