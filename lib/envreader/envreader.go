package envreader

import (
	"strconv"

	"github.com/gobuffalo/envy"
)

// EnvReader gathers configuration values and remembers every key it could
// not resolve, so callers can fail once with the full list of missing keys.
type EnvReader struct {
	MissingKeys []string
	Errors      bool
}

func (r *EnvReader) GetEnv(key string) string {
	value, err := envy.MustGet(key)
	if err != nil {
		r.Errors = true
		r.MissingKeys = append(r.MissingKeys, key)
		return ""
	}
	return value
}

func (r *EnvReader) GetEnvOpt(key string) string {
	return envy.Get(key, "")
}

func (r *EnvReader) GetEnvBool(key string) bool {
	if value, err := strconv.ParseBool(r.GetEnv(key)); err == nil {
		return value
	}
	return false
}

func (r *EnvReader) GetEnvBoolOpt(key string) bool {
	if value, err := strconv.ParseBool(r.GetEnvOpt(key)); err == nil {
		return value
	}
	return false
}
