package migrations

import (
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/migration"
	"gorm.io/gorm"
)

type CreateVendorsTable struct{}

func init() {
	migration.Register("20260115000001_create_vendors_table", &CreateVendorsTable{})
}

func (CreateVendorsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Vendor{})
}

func (CreateVendorsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Vendor{})
}
