package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/cembryonix/k8s-mcp-gateway/pkg/validator"
)

// securityFile mirrors security.yaml's top-level shape. It is the
// YAML-tagged intermediate form that LoadSecurityPolicy copies field by
// field into a validator.Policy.
type securityFile struct {
	Mode                string                        `yaml:"mode"`
	DangerousCommands   map[string][]string            `yaml:"dangerous_commands"`
	SafePatterns        map[string][]string            `yaml:"safe_patterns"`
	RegexRules          map[string][]regexRuleFile      `yaml:"regex_rules"`
	AllowedUnixCommands []string                        `yaml:"allowed_unix_commands"`
}

type regexRuleFile struct {
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
	Message string `yaml:"message"`
}

// LoadSecurityPolicy reads security.yaml and decodes it into a
// validator.Policy, using goccy/go-yaml rather than viper's YAML path
// since the nested list-of-maps regex_rules shape is awkward through
// mapstructure. An absent mode defaults to "strict", matching the
// original's "safer default" intent.
func LoadSecurityPolicy(path string) (validator.Policy, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultPolicy(), nil
		}
		return validator.Policy{}, fmt.Errorf("reading security policy %s: %w", path, err)
	}

	var f securityFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return validator.Policy{}, fmt.Errorf("parsing security policy %s: %w", path, err)
	}

	if f.Mode == "" {
		f.Mode = "strict"
	}

	rules := make(map[string][]validator.RegexRule, len(f.RegexRules))
	for tool, rs := range f.RegexRules {
		for _, r := range rs {
			rules[tool] = append(rules[tool], validator.RegexRule{
				Pattern: r.Pattern,
				Action:  r.Action,
				Message: r.Message,
			})
		}
	}

	return validator.Policy{
		Mode:                f.Mode,
		DangerousCommands:   f.DangerousCommands,
		SafePatterns:        f.SafePatterns,
		RegexRules:          rules,
		AllowedUnixCommands: f.AllowedUnixCommands,
	}, nil
}

// defaultPolicy is used when no security.yaml is present: strict mode
// with no rules configured, so only the pipe-stage allowlist (empty,
// i.e. no non-first stage ever passes) and no tool-specific exceptions
// apply. Operators are expected to supply a real policy in production.
func defaultPolicy() validator.Policy {
	return validator.Policy{Mode: "strict"}
}
