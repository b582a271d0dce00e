package migrations

import (
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/migration"
	"gorm.io/gorm"
)

type CreateProductsTable struct{}

func init() {
	migration.Register("20260115000004_create_products_table", &CreateProductsTable{})
}

func (CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Product{})
}
