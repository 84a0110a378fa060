package envreader_test

import (
	"testing"

	"github.com/agrilabs/growthviz/lib/envreader"
	"github.com/gobuffalo/envy"
	"github.com/stretchr/testify/assert"
)

func TestGetEnvCollectsMissingKeys(t *testing.T) {
	envy.Temp(func() {
		envy.Set("PRESENT_KEY", "present_value")

		r := new(envreader.EnvReader)
		assert.Equal(t, "present_value", r.GetEnv("PRESENT_KEY"))
		assert.False(t, r.Errors)

		assert.Equal(t, "", r.GetEnv("ABSENT_KEY"))
		assert.Equal(t, "", r.GetEnv("OTHER_ABSENT_KEY"))
		assert.True(t, r.Errors)
		assert.Equal(t, []string{"ABSENT_KEY", "OTHER_ABSENT_KEY"}, r.MissingKeys)
	})
}

func TestGetEnvOptNeverErrors(t *testing.T) {
	envy.Temp(func() {
		r := new(envreader.EnvReader)
		assert.Equal(t, "", r.GetEnvOpt("ABSENT_KEY"))
		assert.False(t, r.Errors)
		assert.Empty(t, r.MissingKeys)
	})
}

func TestGetEnvBool(t *testing.T) {
	envy.Temp(func() {
		envy.Set("FLAG_ON", "true")
		envy.Set("FLAG_JUNK", "not-a-bool")

		r := new(envreader.EnvReader)
		assert.True(t, r.GetEnvBool("FLAG_ON"))
		assert.False(t, r.GetEnvBool("FLAG_JUNK"))
		assert.False(t, r.Errors)

		// A required flag that is absent counts as missing, like GetEnv.
		assert.False(t, r.GetEnvBool("FLAG_ABSENT"))
		assert.True(t, r.Errors)
		assert.Equal(t, []string{"FLAG_ABSENT"}, r.MissingKeys)
	})
}

func TestGetEnvBoolOpt(t *testing.T) {
	envy.Temp(func() {
		envy.Set("FLAG_ON", "true")
		envy.Set("FLAG_JUNK", "not-a-bool")

		r := new(envreader.EnvReader)
		assert.True(t, r.GetEnvBoolOpt("FLAG_ON"))
		assert.False(t, r.GetEnvBoolOpt("FLAG_JUNK"))
		assert.False(t, r.GetEnvBoolOpt("FLAG_ABSENT"))
		assert.False(t, r.Errors)
	})
}
