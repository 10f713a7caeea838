package parser

// helmNamedActions is the set of actions whose first positional argument
// is the release name.
var helmNamedActions = map[string]bool{
	"install": true, "upgrade": true, "uninstall": true,
	"delete": true, "status": true, "history": true,
}

func parseHelm(tokens []string, raw string) ParsedCommand {
	if len(tokens) == 0 {
		return ParsedCommand{Tool: "helm", Raw: raw}
	}

	action := tokens[0]
	args, flags := newFlagParser().parse(tokens[1:])

	var name string
	if helmNamedActions[action] && len(args) > 0 {
		name = args[0]
	}

	return ParsedCommand{
		Tool:   "helm",
		Action: action,
		Name:   name,
		Args:   args,
		Flags:  flags,
		Raw:    raw,
	}
}
