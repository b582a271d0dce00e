package migrations

import (
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/migration"
	"gorm.io/gorm"
)

// CreateOrdersTable creates both orders and order_items; the two are only
// ever useful together.
type CreateOrdersTable struct{}

func init() {
	migration.Register("20260115000005_create_orders_table", &CreateOrdersTable{})
}

func (CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.OrderItem{}, &models.Order{})
}
