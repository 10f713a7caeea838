package parser

import "strings"

func parseArgocd(tokens []string, raw string) ParsedCommand {
	if len(tokens) == 0 {
		return ParsedCommand{Tool: "argocd", Raw: raw}
	}

	resource := tokens[0]
	var action string
	var rest []string
	if len(tokens) > 1 {
		action = tokens[1]
		rest = tokens[2:]
	}

	args, flags := newFlagParser().parse(rest)

	var name string
	if len(args) > 0 {
		name = args[0]
	}

	return ParsedCommand{
		Tool:     "argocd",
		Action:   strings.TrimSpace(resource + " " + action),
		Resource: resource,
		Name:     name,
		Args:     args,
		Flags:    flags,
		Raw:      raw,
	}
}
