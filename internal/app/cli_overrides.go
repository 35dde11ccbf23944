package app

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/olusolaa/cloud-resource-api/internal/config"
	"github.com/olusolaa/cloud-resource-api/internal/errors"
)

// ProtectedTagFlag is the viper key of the --protected-tag flag.
const ProtectedTagFlag = "protected-tag"

func applyOverrides(cfg *config.Config, v *viper.Viper) error {
	if raw := v.GetString(ProtectedTagFlag); raw != "" {
		key, value, err := parseTagOverride(raw)
		if err != nil {
			return err
		}
		cfg.Permissions.ProtectedTagKey = key
		cfg.Permissions.ProtectedTagValue = value
	}
	return nil
}

// parseTagOverride reads "key=value" or a bare "key" (any value).
func parseTagOverride(override string) (string, string, error) {
	key, value, _ := strings.Cut(strings.TrimSpace(override), "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return "", "", errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("invalid protected tag override '%s'", override), "Use --protected-tag key=value or --protected-tag key.")
	}
	return key, strings.TrimSpace(value), nil
}
