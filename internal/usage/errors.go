package usage

import (
	"fmt"
	"strings"
)

// Program is the name used as the prefix of every usage message.
var Program = "starcluster"

// MissingAction is returned when no action name follows the global flags.
func MissingAction(globalUsage string) *Error {
	return &Error{
		Kind:    ErrMissingAction,
		Message: "Error: you must specify an action.",
		Usage:   globalUsage,
	}
}

// BadFlag is returned when a flag is malformed, e.g. a value flag without its value.
func BadFlag(detail string, usageText string) *Error {
	return &Error{
		Kind:    ErrBadFlag,
		Message: fmt.Sprintf("%s: error: %s", Program, detail),
		Usage:   usageText,
	}
}

// UnknownAction is returned when a name does not match any registered alias.
func UnknownAction(name string, suggestions ...string) *Error {
	msg := fmt.Sprintf("Error: invalid command '%s'", name)
	if len(suggestions) > 0 {
		msg += "\n\nThe most similar actions are:\n\t" + strings.Join(suggestions, "\n\t")
	}
	return &Error{
		Kind:    ErrUnknownAction,
		Message: msg,
	}
}

// UnknownOption is returned when an action does not declare the given flag.
func UnknownOption(action, flag string) *Error {
	return &Error{
		Kind:    ErrUnknownOption,
		Message: fmt.Sprintf("%s: error: no such option: %s", prefix(action), flag),
	}
}

// InvalidOptionValue is returned when a flag value is outside its declared set or type.
func InvalidOptionValue(action, flag, value string, choices []string) *Error {
	msg := fmt.Sprintf("%s: error: option %s: invalid value: '%s'", prefix(action), flag, value)
	if len(choices) > 0 {
		quoted := make([]string, len(choices))
		for i, c := range choices {
			quoted[i] = "'" + c + "'"
		}
		msg += " (choose from " + strings.Join(quoted, ", ") + ")"
	}
	return &Error{
		Kind:    ErrInvalidOptionValue,
		Message: msg,
	}
}

// MissingArgument is returned when an action requires a positional argument.
func MissingArgument(action, detail, usageText string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("%s: error: %s", prefix(action), detail),
		Usage:   usageText,
	}
}

// DuplicateAlias is returned when two actions claim the same alias.
func DuplicateAlias(alias string) *Error {
	return &Error{
		Kind:    ErrDuplicateAlias,
		Message: fmt.Sprintf("%s: duplicate action alias '%s'", Program, alias),
	}
}

// InvalidSchema is returned when an action's option schema breaks its invariants.
func InvalidSchema(action, detail string) *Error {
	return &Error{
		Kind:    ErrInvalidSchema,
		Message: fmt.Sprintf("%s: invalid options for action '%s': %s", Program, action, detail),
	}
}

// prefix returns "starcluster <action>", or just the program name for global flags.
func prefix(action string) string {
	if action == "" {
		return Program
	}
	return Program + " " + action
}
