package models

import "strings"

// Session is the client state the browser app kept in session/local storage.
//
// It is passed explicitly to the HTTP client instead of being read from ambient storage.
type Session struct {
	Token    string
	Role     string
	UserID   string
	Email    string
	Name     string
	Locale   string
	Currency string
}

// Authenticated reports whether the session carries a token.
func (s Session) Authenticated() bool {
	return strings.TrimSpace(s.Token) != ""
}

// Session storage keys, as stored by [Session.Values].
const (
	SessionKeyToken    = "token"
	SessionKeyRole     = "role"
	SessionKeyUserID   = "user_id"
	SessionKeyEmail    = "email"
	SessionKeyName     = "name"
	SessionKeyLocale   = "locale"
	SessionKeyCurrency = "currency"
)

// Values flattens the session into its storage keys, skipping empty values.
func (s Session) Values() map[string]string {
	all := map[string]string{
		SessionKeyToken:    s.Token,
		SessionKeyRole:     s.Role,
		SessionKeyUserID:   s.UserID,
		SessionKeyEmail:    s.Email,
		SessionKeyName:     s.Name,
		SessionKeyLocale:   s.Locale,
		SessionKeyCurrency: s.Currency,
	}
	for k, v := range all {
		if v == "" {
			delete(all, k)
		}
	}
	return all
}

// SessionFromValues is the inverse of [Session.Values].
func SessionFromValues(values map[string]string) Session {
	return Session{
		Token:    values[SessionKeyToken],
		Role:     values[SessionKeyRole],
		UserID:   values[SessionKeyUserID],
		Email:    values[SessionKeyEmail],
		Name:     values[SessionKeyName],
		Locale:   values[SessionKeyLocale],
		Currency: values[SessionKeyCurrency],
	}
}
