package state

import (
	"fmt"

	"github.com/qtts/assetdesk/internal/model"
)

// Session is one login: the signed-in identity and an ID unique to that login.
type Session struct {
	ID   string
	User model.User
}

type loginCommand struct {
	identifier string
	// result, when set, receives the session the command started.
	result *Session
}

// Login makes the first directory identity whose email equals identifier
// (case-sensitive) the session identity and starts a new session ID. With no
// match the command fails with ErrLoginFailed and the session is unchanged.
func Login(identifier string) Command { return loginCommand{identifier: identifier} }

func (c loginCommand) Name() string { return "login" }

func (c loginCommand) apply(s State) (State, error) {
	for _, u := range s.Users {
		if u.Email == c.identifier {
			s.Session = &u
			s.SessionID = newID()
			if c.result != nil {
				*c.result = Session{ID: s.SessionID, User: u}
			}
			return s, nil
		}
	}
	return s, fmt.Errorf("login %q: %w", c.identifier, ErrLoginFailed)
}

type logoutCommand struct{}

// Logout clears the session identity. It never fails.
func Logout() Command { return logoutCommand{} }

func (logoutCommand) Name() string { return "logout" }

func (logoutCommand) apply(s State) (State, error) {
	if s.Session == nil {
		return s, errUnchanged
	}
	s.Session = nil
	s.SessionID = ""
	return s, nil
}

// Login dispatches a Login command and returns the session that command
// started, captured inside the dispatch.
func (st *Store) Login(identifier string) (Session, bool) {
	var started Session
	if err := st.Dispatch(loginCommand{identifier: identifier, result: &started}); err != nil {
		return Session{}, false
	}
	return started, true
}

// Logout dispatches a Logout command.
func (st *Store) Logout() {
	_ = st.Dispatch(Logout())
}
