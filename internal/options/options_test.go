package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// encoderConfig stands in for the config targets the module actually uses,
// such as the blob chunk encoder.
type encoderConfig struct {
	compression uint8
	bigEndian   bool
}

var errBadCompression = errors.New("invalid compression tag")

func withCompression(ct uint8) Option[*encoderConfig] {
	return New(func(c *encoderConfig) error {
		if ct == 0 {
			return errBadCompression
		}
		c.compression = ct

		return nil
	})
}

func withBigEndian() Option[*encoderConfig] {
	return NoError(func(c *encoderConfig) {
		c.bigEndian = true
	})
}

func TestApply(t *testing.T) {
	cfg := &encoderConfig{}

	require.NoError(t, Apply(cfg, withCompression(2), withBigEndian()))
	require.Equal(t, uint8(2), cfg.compression)
	require.True(t, cfg.bigEndian)
}

func TestApply_Empty(t *testing.T) {
	cfg := &encoderConfig{}

	require.NoError(t, Apply(cfg))
	require.Equal(t, encoderConfig{}, *cfg)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	cfg := &encoderConfig{}

	err := Apply(cfg, withCompression(3), withCompression(0), withBigEndian())
	require.ErrorIs(t, err, errBadCompression)
	require.Equal(t, uint8(3), cfg.compression, "options before the failure stay applied")
	require.False(t, cfg.bigEndian, "options after the failure never run")
}

func TestApply_LaterOptionWins(t *testing.T) {
	cfg := &encoderConfig{}

	require.NoError(t, Apply(cfg, withCompression(1), withCompression(4)))
	require.Equal(t, uint8(4), cfg.compression)
}
