package domain

// Preference namespace and keys holding the authenticated session
const (
	PreferencesNamespace = "auth_prefs"
	KeyAuthToken         = "auth_token"
	KeyUserID            = "user_id"
	KeyUserEmail         = "user_email"
)

// SessionKeys lists every persisted session field
var SessionKeys = []string{KeyAuthToken, KeyUserID, KeyUserEmail}

// AuthSession is the locally persisted login state
type AuthSession struct {
	Token     *string
	UserID    *string
	UserEmail *string
}

// IsAuthenticated reports whether a token is present
func (s AuthSession) IsAuthenticated() bool {
	return s.Token != nil
}
