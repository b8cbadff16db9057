package providers

import (
	"fmt"

	"github.com/gookit/validate"

	"moodchart/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (c *CnfValidator) Validate() error {
	v := validate.Struct(c.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}
	if c.conf.Encryption.MinKeyLength > c.conf.Encryption.MaxKeyLength {
		return fmt.Errorf("invalid config: encryption.minKeyLength %d exceeds maxKeyLength %d",
			c.conf.Encryption.MinKeyLength, c.conf.Encryption.MaxKeyLength)
	}
	return nil
}
