package providers

import (
	"errors"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/gookit/validate"

	"fitscore/internal/structures"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (v *CnfValidator) Validate() error {
	if err := ValidateStruct(v.conf); err != nil {
		return err
	}
	if v.conf.Store.Driver == "sqlite" && v.conf.Store.DSN == "" {
		return errors.New("store.dsn is required for the sqlite driver")
	}
	if tz := v.conf.Compliance.Timezone; tz != "" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("compliance.timezone: %w", err)
		}
	}
	return nil
}

// ValidateStruct checks the validate tags of any struct, nested structs included.
func ValidateStruct(data interface{}) error {
	vd := validate.Struct(data)
	vd.StopOnError = false
	if vd.Validate() {
		return nil
	}
	return vd.Errors
}
