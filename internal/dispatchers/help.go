package dispatchers

import (
	"bytes"
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/starcluster/starcluster/internal/ui/style"
)

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	// The command ends at the first [ or <
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

func writeFlags(out *bytes.Buffer, title string, specs []OptionSpec) {
	if len(specs) == 0 {
		return
	}
	out.WriteString(style.Header(title))
	out.WriteString("\n")
	for _, o := range specs {
		fmt.Fprintf(out, "   %s  %s\n", style.Info(fmt.Sprintf("%-34s", flagLabel(o))), flagDescription(o))
	}
	out.WriteString("\n")
}

func flagLabel(o OptionSpec) string {
	var label string
	if o.Short != "" {
		label = "-" + o.Short + ", --" + o.Long
	} else {
		label = "    --" + o.Long
	}
	if o.TakesValue() {
		label += " " + o.hint()
	}
	return label
}

func flagDescription(o OptionSpec) string {
	desc := o.Help
	if o.Kind == KindChoice && o.ValueHint != "" {
		desc += " (choices: " + strings.Join(o.Choices, ", ") + ")"
	}
	if o.Default != nil && !isEmpty(o.Default) {
		desc += style.Muted(fmt.Sprintf(" [default: %v]", o.Default))
	}
	return desc
}

// GlobalUsage renders the program banner, its usage line, every registered
// action with its aliases and summary, and the global flags.
func GlobalUsage(root RootSpec, reg *Registry) string {
	var out bytes.Buffer

	out.WriteString(root.Name)
	if root.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(root.Summary)
	}
	out.WriteString("\n")
	if root.Description != "" {
		out.WriteString(root.Description)
		out.WriteString("\n")
	}
	out.WriteString("\n")

	out.WriteString(style.Header("USAGE"))
	out.WriteString("\n   ")
	out.WriteString(formatUsage(root.Usage))
	out.WriteString("\n\n")

	if reg != nil {
		grouped := make(map[ActionCategory][]*Action)
		for _, a := range reg.Actions() {
			grouped[a.Category] = append(grouped[a.Category], a)
		}

		for _, cat := range categoryOrder {
			actions := grouped[cat]
			if len(actions) == 0 {
				continue
			}
			out.WriteString(style.Header(cat.String()))
			out.WriteString("\n")
			for _, a := range actions {
				names := strings.Join(a.Aliases, ", ")
				fmt.Fprintf(&out, "   %s  %s\n", style.Info(fmt.Sprintf("%-16s", names)), a.Summary)
			}
			out.WriteString("\n")
		}
	}

	writeFlags(&out, "GLOBAL FLAGS", append(slices.Clone(root.Flags), helpFlag()))

	fmt.Fprintf(&out, "See '%s help <action>' for detailed help on a specific action.\n", root.Name)
	return out.String()
}

// ActionUsage renders the usage text produced by an action's own schema:
// summary, usage line and every flag with its default and choices.
func ActionUsage(root RootSpec, a *Action) string {
	var out bytes.Buffer

	out.WriteString(root.Name + " " + a.Name())
	if a.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(a.Summary)
	}
	out.WriteString("\n\n")

	usageLine := a.Usage
	if usageLine == "" {
		usageLine = a.Name() + " [options]"
	}
	out.WriteString(style.Header("USAGE"))
	out.WriteString("\n   ")
	out.WriteString(formatUsage(root.Name + " " + usageLine))
	out.WriteString("\n\n")

	if len(a.Aliases) > 1 {
		out.WriteString(style.Header("ALIASES"))
		out.WriteString("\n   ")
		out.WriteString(strings.Join(a.Aliases, ", "))
		out.WriteString("\n\n")
	}

	writeFlags(&out, "FLAGS", append(a.Schema(), helpFlag()))
	return out.String()
}

func helpFlag() OptionSpec {
	return OptionSpec{Short: "h", Long: "help", Dest: "help", Kind: KindFlag, Help: "Show this help message and exit"}
}

// HelpConfig wires the help action to its output.
type HelpConfig struct {
	// Page displays rendered help text.
	Page func(string)
	// Browse, when set, enables -i/--interactive.
	Browse func(ctx context.Context, root RootSpec, reg *Registry) error
}

// HelpAction builds the built-in help action. It looks actions up through
// reg, which may still be empty when HelpAction is called.
func HelpAction(root RootSpec, reg *Registry, cfg HelpConfig) *Action {
	a := &Action{
		Aliases:  []string{"help"},
		Summary:  fmt.Sprintf("Show %s usage", root.Name),
		Usage:    "help [<action>]",
		Category: CategoryHelp,
		Complete: reg.Aliases,
	}
	if cfg.Browse != nil {
		a.Options = func() []OptionSpec {
			return []OptionSpec{
				{Short: "i", Long: "interactive", Dest: "interactive", Kind: KindFlag, Help: "Browse actions in an interactive terminal view"},
			}
		}
	}

	a.Execute = func(ctx context.Context, args []string, _ *Options, opts *Options) error {
		if opts.Bool("interactive") {
			return cfg.Browse(ctx, root, reg)
		}

		if len(args) == 0 {
			cfg.Page(GlobalUsage(root, reg))
			return nil
		}

		target, err := reg.Resolve(args[0])
		if err != nil {
			return err
		}
		cfg.Page(ActionUsage(root, target))
		return nil
	}
	return a
}
