package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/vendora/vendora/app/models"
	"github.com/vendora/vendora/config"
	"github.com/vendora/vendora/pkg/apperr"
	"golang.org/x/crypto/bcrypt"
)

// Claims holds the typed JWT payload. Tenant claims are present only when
// the user had a vendor at issuance time. They are advisory: authorization
// always re-checks the live vendor relationship, since role and tenant can
// change after a token is issued.
type Claims struct {
	UserID       uint        `json:"user_id"`
	Role         models.Role `json:"role"`
	TenantID     uint        `json:"tenant_id,omitempty"`
	TenantDomain string      `json:"tenant_domain,omitempty"`
	jwt.RegisteredClaims
}

func secret() []byte {
	return []byte(config.JWTSecret())
}

func claimsFor(user *models.User, ttl time.Duration) Claims {
	claims := Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	if user.VendorID != nil {
		claims.TenantID = *user.VendorID
	}
	if user.Vendor != nil {
		claims.TenantDomain = user.Vendor.Domain
	}
	return claims
}

// GenerateToken creates a signed access token for the given user.
func GenerateToken(user *models.User) (string, error) {
	ttl := time.Duration(config.JWTTTLMinutes()) * time.Minute
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor(user, ttl)).SignedString(secret())
}

// GenerateRefreshToken creates a longer-lived token used to refresh access.
func GenerateRefreshToken(user *models.User) (string, error) {
	ttl := time.Duration(config.JWTRefreshTTLHours()) * time.Hour
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor(user, ttl)).SignedString(secret())
}

// ValidateToken parses and validates a JWT string. Expired or tampered
// tokens surface as apperr.ErrInvalidCredential.
func ValidateToken(t string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(t, &Claims{}, func(tok *jwt.Token) (interface{}, error) {
		return secret(), nil
	})
	if err != nil {
		return nil, apperr.ErrInvalidCredential
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperr.ErrInvalidCredential
	}

	return claims, nil
}

// HashPassword returns a bcrypt hash of the plain-text password.
func HashPassword(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
