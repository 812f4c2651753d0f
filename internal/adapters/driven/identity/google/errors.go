package google

import (
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

// mapTokenError converts an OAuth token endpoint failure into a domain error.
// Rejected grants and clients wrap domain.ErrAuth.
func mapTokenError(op string, err error) error {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		reason := rerr.ErrorCode
		if reason == "" && rerr.Response != nil {
			reason = rerr.Response.Status
		}
		if rerr.ErrorDescription != "" {
			reason += ": " + rerr.ErrorDescription
		}
		return fmt.Errorf("%w: %s: %s", domain.ErrAuth, op, reason)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isInvalidGrant reports whether Google rejected the refresh token itself,
// which happens when it expires or the user revokes access.
func isInvalidGrant(err error) bool {
	var rerr *oauth2.RetrieveError
	return errors.As(err, &rerr) && rerr.ErrorCode == "invalid_grant"
}

// mapProfileError converts a userinfo failure into a domain error.
func mapProfileError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("%w: fetch profile: %s", domain.ErrAuth, gerr.Message)
		}
		return fmt.Errorf("fetch profile: status %d: %s", gerr.Code, gerr.Message)
	}
	return fmt.Errorf("fetch profile: %w", err)
}
