package parser

import "strings"

func parseAWS(tokens []string, raw string) ParsedCommand {
	if len(tokens) == 0 {
		return ParsedCommand{Tool: "aws", Raw: raw}
	}

	service := tokens[0]
	var action string
	var rest []string
	if len(tokens) > 1 {
		action = tokens[1]
		rest = tokens[2:]
	}

	args, flags := newFlagParser().parse(rest)

	return ParsedCommand{
		Tool:     "aws",
		Action:   strings.TrimSpace(service + " " + action),
		Resource: service,
		Args:     args,
		Flags:    flags,
		Raw:      raw,
	}
}

func parseGeneric(tool string, tokens []string, raw string) ParsedCommand {
	var action string
	var args []string
	if len(tokens) > 0 {
		action = tokens[0]
	}
	if len(tokens) > 1 {
		args = tokens[1:]
	}

	return ParsedCommand{
		Tool:   tool,
		Action: action,
		Args:   args,
		Flags:  map[string]*string{},
		Raw:    raw,
	}
}
