package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8090", c.EndpointAddr)
	assert.Equal(t, "devtoken", c.AuthToken)
	assert.Equal(t, "*", c.CORSOrigin)
	assert.Equal(t, 10*time.Second, c.ShutdownTimeout)
}
