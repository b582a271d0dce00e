package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/app/services"
	"github.com/vendora/vendora/pkg/apperr"
	"github.com/vendora/vendora/pkg/auth"
)

func TestRegisterOwnerCreatesTenant(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	user, err := svc.Register(services.RegisterInput{
		Username:     "alice",
		Email:        "alice@example.com",
		Password:     "super-secret",
		Role:         models.RoleOwner,
		VendorDomain: "alice.test",
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, user.VendorID)
	assert.Equal(t, models.RoleOwner, user.Role)

	var vendor models.Vendor
	require.NoError(t, db.Where("domain = ?", "alice.test").First(&vendor).Error)
	assert.Equal(t, vendor.ID, *user.VendorID)
	assert.Equal(t, "alice's store", vendor.Name)
}

func TestRegisterOwnerRequiresDomain(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	_, err := svc.Register(services.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "super-secret",
		Role:     models.RoleOwner,
	}, nil)
	require.ErrorIs(t, err, apperr.ErrValidation)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Zero(t, users)
}

func TestRegisterOwnerJoinsExistingDomain(t *testing.T) {
	db := newTestDB(t)
	existing := seedVendor(t, db, "alice.test")
	svc := services.NewAuthService(db)

	user, err := svc.Register(services.RegisterInput{
		Username:     "second-owner",
		Email:        "second@example.com",
		Password:     "super-secret",
		Role:         models.RoleOwner,
		VendorDomain: "alice.test",
	}, nil)
	require.NoError(t, err)
	require.NotNil(t, user.VendorID)
	assert.Equal(t, existing.ID, *user.VendorID)

	var vendors int64
	require.NoError(t, db.Model(&models.Vendor{}).Count(&vendors).Error)
	assert.EqualValues(t, 1, vendors, "re-using a domain must not create a second vendor")
}

func TestRegisterStaffRequiresResolvedTenant(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewAuthService(db)

	for _, role := range []models.Role{models.RoleStaff, models.RoleCustomer} {
		_, err := svc.Register(services.RegisterInput{
			Username: "someone-" + string(role),
			Email:    "someone@example.com",
			Password: "super-secret",
			Role:     role,
		}, nil)
		require.ErrorIs(t, err, apperr.ErrTenantRequired, "role %s", role)
	}
}

func TestRegisterCustomerCreatesProfile(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	svc := services.NewAuthService(db)

	user, err := svc.Register(services.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "super-secret",
		Role:     models.RoleCustomer,
		Phone:    "+1-555-0101",
		Address:  "2 Test Lane",
	}, vendor)
	require.NoError(t, err)

	var profile models.Customer
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, vendor.ID, profile.VendorID)
	assert.Equal(t, "+1-555-0101", profile.Phone)
	assert.Equal(t, "2 Test Lane", profile.Address)

	// Staff registration must not create one.
	staff, err := svc.Register(services.RegisterInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "super-secret",
		Role:     models.RoleStaff,
	}, vendor)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Customer{}).Where("user_id = ?", staff.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestRegisterHashesPassword(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	svc := services.NewAuthService(db)

	user, err := svc.Register(services.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "super-secret",
		Role:     models.RoleStaff,
	}, vendor)
	require.NoError(t, err)

	assert.NotEqual(t, "super-secret", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "super-secret"))
}

func TestLoginIssuesTenantClaims(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	svc := services.NewAuthService(db)

	_, err := svc.Register(services.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "super-secret",
		Role:     models.RoleStaff,
	}, vendor)
	require.NoError(t, err)

	user, pair, err := svc.Login("bob", "super-secret")
	require.NoError(t, err)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)

	claims, err := auth.ValidateToken(pair.Access)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.Equal(t, vendor.ID, claims.TenantID)
	assert.Equal(t, "acme.test", claims.TenantDomain)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	svc := services.NewAuthService(db)

	_, err := svc.Register(services.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "super-secret",
		Role:     models.RoleStaff,
	}, vendor)
	require.NoError(t, err)

	// Wrong password and unknown username must be indistinguishable.
	_, _, err = svc.Login("bob", "wrong-password")
	require.ErrorIs(t, err, apperr.ErrInvalidCredential)

	_, _, err = svc.Login("nobody", "super-secret")
	require.ErrorIs(t, err, apperr.ErrInvalidCredential)
}

func TestRefreshIssuesFreshPair(t *testing.T) {
	db := newTestDB(t)
	vendor := seedVendor(t, db, "acme.test")
	svc := services.NewAuthService(db)

	_, err := svc.Register(services.RegisterInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "super-secret",
		Role:     models.RoleStaff,
	}, vendor)
	require.NoError(t, err)

	_, pair, err := svc.Login("bob", "super-secret")
	require.NoError(t, err)

	fresh, err := svc.Refresh(pair.Refresh)
	require.NoError(t, err)
	require.NotEmpty(t, fresh.Access)
	require.NotEmpty(t, fresh.Refresh)

	_, err = svc.Refresh("not-a-token")
	require.ErrorIs(t, err, apperr.ErrInvalidCredential)
}
