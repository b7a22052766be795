// Package completions answers shell completion requests. The binary is
// registered as its own completer (complete -C); bash then runs it with
// COMP_LINE and COMP_POINT set and reads one candidate per line.
package completions

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/starcluster/starcluster/internal/dispatchers"
)

// Bash completes the command line found in COMP_LINE.
type Bash struct {
	getenv func(string) string
	out    io.Writer
}

// Detect returns a Bash completer when the shell is asking for completions
// and a no-op completer otherwise.
func Detect(getenv func(string) string, out io.Writer) dispatchers.Completer {
	if _, ok := lookup(getenv, "COMP_LINE"); !ok {
		return dispatchers.NopCompleter{}
	}
	return &Bash{getenv: getenv, out: out}
}

func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	return v, v != ""
}

// Complete implements dispatchers.Completer.
func (b *Bash) Complete(root dispatchers.RootSpec, reg *dispatchers.Registry) (bool, error) {
	line, ok := lookup(b.getenv, "COMP_LINE")
	if !ok {
		return false, nil
	}
	if point, err := strconv.Atoi(b.getenv("COMP_POINT")); err == nil && point >= 0 && point < len(line) {
		line = line[:point]
	}

	words, current := SplitLine(line)
	for _, c := range Candidates(root, reg, words, current) {
		if _, err := fmt.Fprintln(b.out, c); err != nil {
			return true, err
		}
	}
	return true, nil
}

// SplitLine splits a partial command line into the completed words (program
// name excluded) and the word under the cursor.
func SplitLine(line string) (words []string, current string) {
	fields := strings.Fields(line)
	if len(fields) > 0 {
		fields = fields[1:]
	}
	if line == "" || strings.HasSuffix(line, " ") || strings.HasSuffix(line, "\t") || len(fields) == 0 {
		return fields, ""
	}
	return fields[:len(fields)-1], fields[len(fields)-1]
}

// Candidates returns what may replace current given the words before it.
func Candidates(root dispatchers.RootSpec, reg *dispatchers.Registry, words []string, current string) []string {
	specs := root.Flags
	var action *dispatchers.Action

	// Walk the completed words the way the parsers would.
	for i := 0; i < len(words); i++ {
		w := words[i]
		if w == "--" {
			if action == nil {
				return nil
			}
			continue
		}
		if strings.HasPrefix(w, "-") && len(w) > 1 {
			if spec, ok := valueFlag(specs, w); ok {
				if i == len(words)-1 {
					// current is this flag's value
					return filter(spec.Candidates(), current)
				}
				i++
			}
			continue
		}
		if action == nil {
			a, ok := reg.Lookup(w)
			if !ok {
				return nil
			}
			action = a
			specs = a.Schema()
		}
	}

	if name, value, ok := strings.Cut(current, "="); ok && strings.HasPrefix(name, "--") {
		spec, found := findSpec(specs, name)
		if !found || !spec.TakesValue() {
			return nil
		}
		var out []string
		for _, c := range filter(spec.Candidates(), value) {
			out = append(out, name+"="+c)
		}
		return out
	}

	if strings.HasPrefix(current, "-") {
		return filter(flagNames(specs), current)
	}

	if action == nil {
		return filter(reg.Aliases(), current)
	}
	if action.Complete != nil {
		return filter(action.Complete(), current)
	}
	return nil
}

// valueFlag reports whether w is a flag whose value is the next word. In a
// group of short flags like -dc only the last letter may take that value;
// an earlier letter taking a value consumes the rest of the group instead.
func valueFlag(specs []dispatchers.OptionSpec, w string) (dispatchers.OptionSpec, bool) {
	if strings.HasPrefix(w, "--") {
		if strings.Contains(w, "=") {
			return dispatchers.OptionSpec{}, false
		}
		spec, ok := findSpec(specs, w)
		return spec, ok && spec.TakesValue()
	}

	letters := w[1:]
	for i, r := range letters {
		spec, ok := findSpec(specs, "-"+string(r))
		if !ok {
			return dispatchers.OptionSpec{}, false
		}
		if spec.TakesValue() {
			return spec, i == len(letters)-1
		}
	}
	return dispatchers.OptionSpec{}, false
}

func findSpec(specs []dispatchers.OptionSpec, word string) (dispatchers.OptionSpec, bool) {
	name, _, _ := strings.Cut(word, "=")
	for _, s := range specs {
		for _, n := range s.Names() {
			if n == name {
				return s, true
			}
		}
	}
	return dispatchers.OptionSpec{}, false
}

func flagNames(specs []dispatchers.OptionSpec) []string {
	var names []string
	for _, s := range specs {
		names = append(names, s.Names()...)
	}
	names = append(names, "--help", "-h")
	sort.Strings(names)
	return names
}

func filter(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
