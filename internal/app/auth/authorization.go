package auth

import (
	"fmt"

	"github.com/yigit/unicatalog/internal/pkg/apperrors"
	pkgauth "github.com/yigit/unicatalog/internal/pkg/auth"
)

// Capabilities guarding the mutating routes of each resource
const (
	ChangeCourse      = "changeCourse"
	ChangeCatalog     = "changeCatalog"
	ChangeModality    = "changeModality"
	ChangeBlock       = "changeBlock"
	ChangeRequirement = "changeRequirement"
	ChangeDiscipline  = "changeDiscipline"
	ChangeOffering    = "changeOffering"
)

// Capabilities lists every capability the API checks.
var Capabilities = []string{
	ChangeCourse,
	ChangeCatalog,
	ChangeModality,
	ChangeBlock,
	ChangeRequirement,
	ChangeDiscipline,
	ChangeOffering,
}

// AuthorizationService decides whether a credential may exercise a capability
type AuthorizationService struct {
	jwtService *pkgauth.JWTService
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(jwtService *pkgauth.JWTService) *AuthorizationService {
	return &AuthorizationService{jwtService: jwtService}
}

// Authorize validates the credential, given raw or with a Bearer prefix,
// and checks it grants capability.
func (s *AuthorizationService) Authorize(credential, capability string) error {
	claims, err := s.jwtService.ValidateToken(pkgauth.ExtractBearerToken(credential))
	if err != nil {
		return err
	}
	if !claims.Allows(capability) {
		return fmt.Errorf("%w: %s not granted to %q", apperrors.ErrPermissionDenied, capability, claims.Subject)
	}
	return nil
}
