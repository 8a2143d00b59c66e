package domain

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate caches struct metadata; it is safe for concurrent use.
var validate = validator.New(validator.WithRequiredStructEnabled())

// ValidateSnapshot checks the snapshot envelope and vehicle profile. Individual
// alerts and bridges are not checked here; malformed entries are skipped during
// evaluation instead of rejecting the whole snapshot.
func ValidateSnapshot(s RouteSnapshot) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("validate route snapshot: %w", err)
	}
	return nil
}

func validAlert(a RawAlert) bool {
	return validate.Struct(a) == nil
}

func validBridge(b BridgeRecord) bool {
	return validate.Struct(b) == nil
}
