package domain

// Token Store keys.
//
//nolint:gosec // G101: These are storage key names, not credentials.
const (
	KeyDeveloperToken      = "developerToken"
	KeyGoogleAccounts      = "googleAccounts"
	KeyLastSelectedAccount = "lastSelectedAccount"
)

// ManagerState is the orchestrator's session state.
type ManagerState int

const (
	// StateUnauthenticated means no account is selected.
	StateUnauthenticated ManagerState = iota
	// StateAuthenticated means an account is selected but the developer
	// token is missing or invalid.
	StateAuthenticated
	// StateReady means the customer list reflects the last refresh.
	StateReady
	// StateRefreshing means a refresh is in flight.
	StateRefreshing
	// StateError means the last refresh or action failed.
	StateError
)

// String returns the string representation of the state.
func (s ManagerState) String() string {
	switch s {
	case StateUnauthenticated:
		return "unauthenticated"
	case StateAuthenticated:
		return "authenticated"
	case StateReady:
		return "ready"
	case StateRefreshing:
		return "refreshing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// ManagerSnapshot is a point-in-time copy of orchestrator state for renderers.
type ManagerSnapshot struct {
	State           ManagerState
	Accounts        []Account
	Selected        *Account
	DeveloperToken  string
	TokenValidation TokenValidation
	Customers       []Customer
	Loading         bool
	Err             error
	Notice          string
}

// Ready returns true when both an account and a valid token are present.
func (s ManagerSnapshot) Ready() bool {
	return s.Selected != nil && s.TokenValidation.Valid
}
