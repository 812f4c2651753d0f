package googleads

import (
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/custodia-labs/mcc-cli/internal/core/domain"
)

const unknownAPIError = "unknown API error"

// detailPaths are the places the Ads API puts human-readable failure text.
// GoogleAdsFailure details nest their messages one level deeper.
var detailPaths = []string{
	"error.details.#.message",
	"error.details.#.errors.#.message|@flatten",
}

// parseAPIError builds an *domain.APIError from a non-2xx response.
func parseAPIError(status int, body []byte) error {
	var messages []string
	if gjson.ValidBytes(body) {
		for _, path := range detailPaths {
			for _, m := range gjson.GetBytes(body, path).Array() {
				if s := strings.TrimSpace(m.String()); s != "" {
					messages = append(messages, s)
				}
			}
		}
	}

	msg := strings.Join(messages, "; ")
	if msg == "" {
		msg = unknownAPIError
	}
	return &domain.APIError{StatusCode: status, Message: msg}
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
