package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pictonet/pictonet/internal/logger"
)

// AppInstance is one tenant of the platform. Records are provisioned by the
// admin service; this service only ever reads them.
type AppInstance struct {
	Id        AppId
	Slug      AppSlug
	Name      string
	Kind      AppKind
	Active    bool
	Policy    PolicyConfig
	CreatedAt time.Time
}

// PolicyConfig is the typed view of the app_instances.config blob.
// An empty AllowedGroups means the app is open to everyone.
type PolicyConfig struct {
	AllowedGroups GroupIds `json:"allowed_group_ids"`
}

// ParsePolicyConfig decodes a config blob into the fixed set of recognized
// keys. Unrecognized keys are logged and dropped, never carried along.
func ParsePolicyConfig(blob []byte) (PolicyConfig, error) {
	var cfg PolicyConfig
	if len(blob) == 0 {
		return cfg, nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(blob, &raw); err != nil {
		return cfg, fmt.Errorf("policy config is not valid json: %w", err)
	}

	for key, value := range raw {
		switch key {
		case "allowed_group_ids":
			if err := json.Unmarshal(value, &cfg.AllowedGroups); err != nil {
				return PolicyConfig{}, fmt.Errorf("allowed_group_ids is malformed: %w", err)
			}
		default:
			logger.Log.Warn("ignoring unrecognized policy config key", "key", key)
		}
	}
	return cfg, nil
}
