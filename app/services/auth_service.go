package services

import (
	"fmt"

	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/repositories"
	"github.com/vendora/vendora/pkg/apperr"
	"github.com/vendora/vendora/pkg/auth"
	"github.com/vendora/vendora/pkg/tenant"
	"gorm.io/gorm"
)

// AuthService implements registration and credential issuance.
type AuthService struct {
	db    *gorm.DB
	users *repositories.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{
		db:    db,
		users: repositories.NewUserRepository(db),
	}
}

// RegisterInput is the registration request body.
type RegisterInput struct {
	Username     string      `json:"username"      validate:"required,alpha_dash,min=2,max=150"`
	Email        string      `json:"email"         validate:"required,email"`
	Password     string      `json:"password"      validate:"required,min=8"`
	Role         models.Role `json:"role"          validate:"required,in=owner,staff,customer"`
	VendorDomain string      `json:"vendor_domain" validate:"nullable,max=255"`
	Phone        string      `json:"phone"         validate:"nullable,max=50"`
	Address      string      `json:"address"       validate:"nullable"`
}

// TokenPair carries an access token and its refresh companion.
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// Register creates a user scoped to a tenant. Owners must supply a vendor
// domain and get-or-create that tenant; no other path creates tenants.
// Staff and customers join the tenant resolved from the request.
// Customer-role users additionally get a linked profile. The whole workflow
// runs in one transaction.
func (s *AuthService) Register(input RegisterInput, resolved *models.Vendor) (*models.User, error) {
	var user *models.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		vendors := repositories.NewVendorRepository(tx)
		users := s.users.WithTx(tx)
		customers := repositories.NewCustomerRepository(tx)

		var vendor *models.Vendor
		var err error

		if input.Role == models.RoleOwner {
			if input.VendorDomain == "" {
				return apperr.ValidationField("vendor_domain", "required for owner registration")
			}
			vendor, err = vendors.GetOrCreateByDomain(
				input.VendorDomain,
				fmt.Sprintf("%s's store", input.Username),
				input.Email,
			)
			if err != nil {
				return err
			}
			// A new domain may now resolve; a re-used one is unchanged
			// but dropping the cache entry is harmless.
			tenant.InvalidateDomain(input.VendorDomain)
		} else {
			if resolved == nil {
				return apperr.ErrTenantRequired
			}
			vendor = resolved
		}

		hash, err := auth.HashPassword(input.Password)
		if err != nil {
			return err
		}

		user = &models.User{
			Username: input.Username,
			Email:    input.Email,
			Password: hash,
			Role:     input.Role,
			VendorID: &vendor.ID,
			Vendor:   vendor,
		}
		if err := users.Create(user); err != nil {
			return err
		}

		if input.Role == models.RoleCustomer {
			profile := &models.Customer{
				UserID:   user.ID,
				VendorID: vendor.ID,
				Phone:    input.Phone,
				Address:  input.Address,
			}
			if err := customers.Create(profile); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials and issues a token pair with embedded tenant
// claims. Unknown usernames and wrong passwords are indistinguishable.
func (s *AuthService) Login(username, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, nil, apperr.ErrInvalidCredential
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperr.ErrInvalidCredential
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh exchanges a valid refresh token for a fresh pair. The user row is
// re-loaded so the new claims reflect the current role and vendor.
func (s *AuthService) Refresh(refreshToken string) (*TokenPair, error) {
	claims, err := auth.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(claims.UserID)
	if err != nil {
		return nil, apperr.ErrInvalidCredential
	}

	return s.issuePair(user)
}

func (s *AuthService) issuePair(user *models.User) (*TokenPair, error) {
	access, err := auth.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshToken(user)
	if err != nil {
		return nil, err
	}
	return &TokenPair{Access: access, Refresh: refresh}, nil
}
