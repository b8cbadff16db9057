package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"moodchart/internal/structures"
)

func validConfig() *structures.Config {
	conf := DefaultConfig()
	conf.Storage.DataDir = "/tmp/moodchart"
	conf.Logger.Dir = "/tmp/moodchart/logs"
	return conf
}

func TestConfigValidator_ValidConfig(t *testing.T) {
	v := NewCnfValidator(validConfig())
	assert.NoError(t, v.Validate())
}

func TestConfigValidator_EmptyDataDir(t *testing.T) {
	c := validConfig()
	c.Storage.DataDir = ""
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_UnknownBackupMethod(t *testing.T) {
	c := validConfig()
	c.Backup.Method = "bzip2"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_UnknownNonceMode(t *testing.T) {
	c := validConfig()
	c.Encryption.NonceMode = "sometimes"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_KeyLengthBounds(t *testing.T) {
	c := validConfig()
	c.Encryption.MaxKeyLength = 64
	assert.Error(t, NewCnfValidator(c).Validate())

	c = validConfig()
	c.Encryption.MinKeyLength = 10
	c.Encryption.MaxKeyLength = 5
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidLogLevel(t *testing.T) {
	c := validConfig()
	c.Logger.Level = "verbose"
	assert.Error(t, NewCnfValidator(c).Validate())
}

func TestConfigValidator_InvalidStreakMode(t *testing.T) {
	c := validConfig()
	c.Statistic.StreakStartMode = "naive"
	assert.Error(t, NewCnfValidator(c).Validate())
}
