package branding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmbeddedValues(t *testing.T) {
	assert.Equal(t, "mortar", CLIName())
	assert.Equal(t, ".mortar", HomeDir())
	assert.Equal(t, "mortar.remote", RemoteConfigKey())
	assert.Equal(t, "mortar", RemoteConfigSection())
	assert.Equal(t, "remote", RemoteConfigOption())
	assert.Equal(t, "http://install.mortardata.com", InstallURL())
}

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "MORTAR_INSTALL", EnvVar("install"))
	assert.Equal(t, "MORTAR_API_KEY", EnvVar("api_key"))
}
