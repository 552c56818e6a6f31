package storage

import (
	"strconv"

	"github.com/manav03panchal/plantcare/internal/logging"
	"github.com/manav03panchal/plantcare/internal/model"
)

// PrefsRepo stores user preferences.
type PrefsRepo struct {
	kv KV
}

// NewPrefsRepo creates a new preferences repository.
func NewPrefsRepo(kv KV) *PrefsRepo {
	return &PrefsRepo{kv: kv}
}

// DarkMode returns the saved theme. Anything other than "true" is light.
func (r *PrefsRepo) DarkMode() bool {
	data, err := r.kv.GetBytes(model.KeyDarkMode)
	if err != nil {
		if !IsErrKeyNotFound(err) {
			logging.Warn("failed to read theme preference", logging.KeyError, err)
		}
		return false
	}
	return string(data) == "true"
}

// SetDarkMode saves the theme as "true" or "false".
func (r *PrefsRepo) SetDarkMode(dark bool) error {
	return r.kv.SetBytes(model.KeyDarkMode, []byte(strconv.FormatBool(dark)))
}
