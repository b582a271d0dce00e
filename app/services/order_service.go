package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/pkg/apperr"
	"github.com/vendora/vendora/pkg/authz"
	"github.com/vendora/vendora/pkg/logger"
	"github.com/vendora/vendora/pkg/metrics"
	"gorm.io/gorm"
)

// OrderService implements the order workflow: atomic creation with line-item
// pricing and stock decrement, plus the two follow-on transitions.
type OrderService struct {
	db        *gorm.DB
	orders    *repositories.OrderRepository
	users     *repositories.UserRepository
	customers *repositories.CustomerRepository
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		db:        db,
		orders:    repositories.NewOrderRepository(db),
		users:     repositories.NewUserRepository(db),
		customers: repositories.NewCustomerRepository(db),
	}
}

// OrderItemInput is one proposed line item.
type OrderItemInput struct {
	ProductID uint `json:"product_id" validate:"required"`
	Quantity  int  `json:"quantity"   validate:"required,min=1"`
}

// AssignStaffResult echoes a successful staff assignment.
type AssignStaffResult struct {
	OrderID   uint   `json:"order_id"`
	StaffID   uint   `json:"staff_id"`
	StaffName string `json:"staff_name"`
	Vendor    string `json:"vendor"`
	Status    string `json:"status"`
}

// Create builds an order for the resolved tenant. The order shell, the
// items, the stock decrements and the final total all commit in a single
// transaction; any failure rolls the whole order back so a partially-priced
// order can never persist.
//
// Each product row is locked before its stock is read, so concurrent orders
// against the same product serialize and the combined decrement never
// exceeds the available stock. Decrements clamp at zero rather than
// rejecting the order; the clamp is counted in metrics.
func (s *OrderService) Create(vendor *models.Vendor, actor *models.User, items []OrderItemInput) (*models.Order, error) {
	if vendor == nil {
		return nil, apperr.ErrTenantRequired
	}

	// Customer linkage: customers order for themselves; staff and owners
	// record orders with no customer (phone orders).
	var customer *models.Customer
	if actor != nil && actor.Role == models.RoleCustomer {
		profile, err := s.customers.FindByUser(actor.ID)
		if err != nil && !errors.Is(err, apperr.ErrNotFound) {
			return nil, err
		}
		customer = profile
	}

	var order *models.Order

	err := s.db.Transaction(func(tx *gorm.DB) error {
		orders := s.orders.WithTx(tx)
		products := repositories.NewProductRepository(tx)

		order = &models.Order{
			VendorID: vendor.ID,
			Status:   models.OrderStatusPending,
			Total:    decimal.Zero,
		}
		if customer != nil {
			order.CustomerID = &customer.ID
		}
		if err := orders.Create(order); err != nil {
			return err
		}

		total := decimal.Zero

		for _, item := range items {
			product, err := products.FindForUpdate(item.ProductID)
			if errors.Is(err, apperr.ErrNotFound) {
				return apperr.ValidationField("product_id", "product not found")
			}
			if err != nil {
				return err
			}

			if product.VendorID != vendor.ID {
				return apperr.ErrCrossTenantProduct
			}

			line := &models.OrderItem{
				OrderID:   order.ID,
				ProductID: product.ID,
				Quantity:  item.Quantity,
				Price:     product.Price, // snapshot; later price changes never touch it
			}
			if err := orders.CreateItem(line); err != nil {
				return err
			}
			order.Items = append(order.Items, *line)

			// Stock floors at zero: over-committed quantities are
			// accepted and the shortfall silently absorbed.
			newStock := product.Stock - item.Quantity
			if newStock < 0 {
				newStock = 0
				metrics.StockClamped.WithLabelValues(vendor.Domain).Inc()
			}
			product.Stock = newStock
			if err := products.Update(product); err != nil {
				return err
			}

			total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}

		order.Total = total
		return orders.Update(order)
	})
	if err != nil {
		return nil, err
	}

	metrics.OrdersCreated.WithLabelValues(vendor.Domain).Inc()
	logger.Info("order created",
		"order_id", order.ID,
		"vendor", vendor.Domain,
		"items", len(items),
		"total", order.Total.String(),
	)

	return order, nil
}

// UpdateStatus transitions an order's status. Gated to owners of the
// order's tenant and staff holding (or able to take) the assignment.
func (s *OrderService) UpdateStatus(vendor *models.Vendor, actor *models.User, orderID uint, status string) (*models.Order, error) {
	order, err := s.orders.FindForVendor(orderID, vendor)
	if err != nil {
		return nil, err
	}

	if err := authz.CanTransitionOrder(actor, vendor, order); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(order, status); err != nil {
		return nil, err
	}
	order.Status = status
	return order, nil
}

// AssignStaff assigns an order to a staff member of the same tenant. A
// target that does not exist or does not hold the staff role fails
// validation and leaves the assignment unchanged.
func (s *OrderService) AssignStaff(vendor *models.Vendor, actor *models.User, orderID, staffID uint) (*AssignStaffResult, error) {
	order, err := s.orders.FindForVendor(orderID, vendor)
	if err != nil {
		return nil, err
	}

	if err := authz.CanTransitionOrder(actor, vendor, order); err != nil {
		return nil, err
	}

	staff, err := s.users.FindStaff(staffID, vendor.ID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, apperr.ValidationField("staff_id", "staff member does not exist")
	}
	if err != nil {
		return nil, err
	}

	if err := s.orders.AssignStaff(order, staff.ID); err != nil {
		return nil, err
	}

	return &AssignStaffResult{
		OrderID:   order.ID,
		StaffID:   staff.ID,
		StaffName: staff.Username,
		Vendor:    vendor.Name,
		Status:    "Staff assigned successfully",
	}, nil
}

// MyOrders returns the caller's own orders for the resolved tenant. Unlike
// the list view, a missing customer profile here is a hard not-found.
func (s *OrderService) MyOrders(vendor *models.Vendor, actor *models.User) ([]models.Order, error) {
	if vendor == nil {
		return nil, apperr.ErrTenantRequired
	}
	if actor == nil {
		return nil, apperr.ErrInvalidCredential
	}

	customer, err := s.customers.FindByUserAndVendor(actor.ID, vendor.ID)
	if err != nil {
		return nil, err
	}

	return s.orders.ListByCustomer(customer, vendor)
}
