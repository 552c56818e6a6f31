package storage

import (
	"github.com/manav03panchal/plantcare/internal/logging"
	"github.com/manav03panchal/plantcare/internal/model"
)

// SessionRepo stores values that live only as long as the login session.
// It is backed by a database under the XDG runtime directory.
type SessionRepo struct {
	kv KV
}

// NewSessionRepo creates a new session repository.
func NewSessionRepo(kv KV) *SessionRepo {
	return &SessionRepo{kv: kv}
}

// LastViewed returns the timestamp of the previous list view, if any.
func (r *SessionRepo) LastViewed() (string, bool) {
	data, err := r.kv.GetBytes(model.KeyLastViewed)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			logging.Warn("failed to read last viewed timestamp", logging.KeyError, err)
		}
		return "", false
	}
	if len(data) == 0 {
		return "", false
	}
	return string(data), true
}

// SetLastViewed records the timestamp of the current list view.
func (r *SessionRepo) SetLastViewed(ts string) error {
	return r.kv.SetBytes(model.KeyLastViewed, []byte(ts))
}
