package internal

import (
	"testing"
	"time"

	"github.com/Netflix/go-env"
	"github.com/stretchr/testify/require"
)

func TestConfig_Defaults(t *testing.T) {
	req := require.New(t)
	var config Config

	err := env.Unmarshal(env.EnvSet{}, &config)

	req.NoError(err)
	req.Equal(8000, config.Port)
	req.Equal("*", config.AllowedOrigin)
	req.Equal(2*time.Second, config.SinkTimeout)
	req.Equal("America/Sao_Paulo", config.Timezone)
	req.NoError(config.Validate())
	req.Equal("0.0.0.0:8000", config.Address())
}

func TestConfig_Overrides_And_Validation(t *testing.T) {
	req := require.New(t)
	var config Config

	err := env.Unmarshal(env.EnvSet{
		"PORT":         "9000",
		"STORE_DRIVER": "sqlite",
		"SINK_TIMEOUT": "500ms",
	}, &config)
	req.NoError(err)
	req.Equal(9000, config.Port)
	req.Equal("sqlite", string(config.StorageOptions().Driver))
	req.Equal(500*time.Millisecond, config.SinkTimeout)
	req.NoError(config.Validate())

	config.StoreDriver = "mongo"
	req.Error(config.Validate())

	config.StoreDriver = "badger"
	config.ConnectionBufferSize = 0
	req.Error(config.Validate())
}
