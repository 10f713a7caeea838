package parser

import "strings"

// kubectlResourceActions is the set of verbs after which the first
// positional argument is a resource type rather than a bare value.
var kubectlResourceActions = map[string]bool{
	"get": true, "describe": true, "delete": true, "create": true,
	"apply": true, "patch": true, "edit": true, "label": true,
	"annotate": true, "scale": true, "rollout": true, "expose": true,
	"autoscale": true, "logs": true, "exec": true, "cp": true,
	"port-forward": true, "attach": true, "debug": true,
}

func parseKubectl(tokens []string, raw string) ParsedCommand {
	if len(tokens) == 0 {
		return ParsedCommand{Tool: "kubectl", Raw: raw}
	}

	action := tokens[0]
	args, flags := newFlagParser().parse(tokens[1:])

	var resource, name string
	if kubectlResourceActions[action] && len(args) > 0 {
		if typ, rest, ok := strings.Cut(args[0], "/"); ok {
			resource = normalizeResourceType(typ)
			name = rest
		} else {
			resource = normalizeResourceType(args[0])
			if len(args) > 1 {
				name = args[1]
			}
		}
	}

	return ParsedCommand{
		Tool:     "kubectl",
		Action:   action,
		Resource: resource,
		Name:     name,
		Args:     args,
		Flags:    flags,
		Raw:      raw,
	}
}
