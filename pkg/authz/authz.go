// Package authz is the single authorization table for the application.
//
// Every permission decision lives here, role by resource at the collection
// level plus object-level checks for specific orders, so policy is auditable
// in one file instead of scattered across handlers:
//
//	resource   owner              staff                        customer
//	vendor     CRUD own tenant    -                            -
//	product    CRUD own tenant    CRUD own tenant              read-only
//	orders     CRUD own tenant    CRUD own tenant              create + read own
//	order obj  full own tenant    unassigned or assigned-self  own orders only
//
// Reads are not gated here at all: tenant scoping in the repositories is
// what restricts visible data, and an out-of-scope record is reported as
// not found rather than forbidden.
package authz

import (
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/pkg/apperr"
)

// requireMember checks the live vendor relationship against the resolved
// tenant. Token claims are never consulted here; only the database row is
// authoritative.
func requireMember(user *models.User, vendor *models.Vendor) error {
	if vendor == nil {
		return apperr.ErrTenantRequired
	}
	if user == nil {
		return apperr.ErrInvalidCredential
	}
	if !user.BelongsTo(vendor) {
		return apperr.ErrTenantMismatch
	}
	return nil
}

// CanManageVendor gates every non-read operation on the vendor record
// itself. Owners only, and only for their own tenant.
func CanManageVendor(user *models.User, vendor *models.Vendor) error {
	if err := requireMember(user, vendor); err != nil {
		return err
	}
	if user.Role != models.RoleOwner {
		return apperr.ErrForbidden
	}
	return nil
}

// CanWriteProduct gates product create/update/delete. Owners and staff of
// the resolved tenant; customers are read-only.
func CanWriteProduct(user *models.User, vendor *models.Vendor) error {
	if err := requireMember(user, vendor); err != nil {
		return err
	}
	switch user.Role {
	case models.RoleOwner, models.RoleStaff:
		return nil
	default:
		return apperr.ErrForbidden
	}
}

// CanCreateOrder gates order creation. Any authenticated member of the
// resolved tenant may create: customers order for themselves, staff and
// owners record phone orders.
func CanCreateOrder(user *models.User, vendor *models.Vendor) error {
	return requireMember(user, vendor)
}

// CanTouchOrder is the object-level order check:
//   - owner: full access within their tenant
//   - staff: manage if the order is unassigned or assigned to them
//   - customer: only orders linked to their own profile; anything else is
//     reported as not found so foreign order IDs stay unguessable
func CanTouchOrder(user *models.User, vendor *models.Vendor, order *models.Order) error {
	if user == nil {
		return apperr.ErrInvalidCredential
	}
	if order == nil {
		return apperr.ErrNotFound
	}

	if user.Role == models.RoleCustomer {
		if order.Customer != nil && order.Customer.UserID == user.ID {
			return nil
		}
		return apperr.ErrNotFound
	}

	if err := requireMember(user, vendor); err != nil {
		return err
	}

	switch user.Role {
	case models.RoleOwner:
		return nil
	case models.RoleStaff:
		if order.AssignedToID == nil || *order.AssignedToID == user.ID {
			return nil
		}
		return apperr.ErrForbidden
	default:
		return apperr.ErrForbidden
	}
}

// CanTransitionOrder gates the status and staff-assignment endpoints:
// owners of the order's tenant, or staff who hold the assignment (or any
// staff while the order is unassigned). Customers never transition orders.
func CanTransitionOrder(user *models.User, vendor *models.Vendor, order *models.Order) error {
	if user != nil && user.Role == models.RoleCustomer {
		return apperr.ErrForbidden
	}
	return CanTouchOrder(user, vendor, order)
}
