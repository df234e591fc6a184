// Package identity resolves display identities for message defaulting. The
// real user directory lives in the web layer; this adapter only produces the
// default ordering-customer text.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/nvcfn/swiftgate/internal/apperrors"
)

// StaticIdentityService renders a user's display identity from the local
// institution name and the caller-supplied user id.
type StaticIdentityService struct {
	institutionName string
}

// NewStaticIdentityService creates the default identity adapter.
func NewStaticIdentityService(institutionName string) *StaticIdentityService {
	return &StaticIdentityService{institutionName: institutionName}
}

// DisplayName returns the ordering-customer line for a user.
func (s *StaticIdentityService) DisplayName(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", fmt.Errorf("%w: user id must not be empty", apperrors.ErrValidation)
	}
	return fmt.Sprintf("%s CUSTOMER %s", strings.ToUpper(s.institutionName), userID), nil
}
