// Package toolcmd assembles tool command lines from resolved build options.
package toolcmd

import (
	"strings"

	"go.trai.ch/fpdgen/internal/core/domain"
)

// gccFamily is the tool chain family whose linkers need library groups.
const gccFamily = "GCC"

// archiveFlag is the output flag that must be passed as a separate token.
const archiveFlag = "-cr"

// Definition is one tool run for one module.
type Definition struct {
	Command string
	Family  string
	// Args and EndArgs are split on spaces and tabs before substitution.
	Args         []string
	EndArgs      []string
	OutputFlag   string
	OutputFile   string
	IncludeFlag  string
	IncludePaths []string
	Libraries    []string
	Sources      []string
}

// Assemble returns the argv of the tool: command, arguments, end arguments, output,
// include paths, libraries then sources with duplicates removed.
func Assemble(def Definition, props *domain.Properties) ([]string, error) {
	command := strings.TrimSpace(props.Substitute(def.Command))
	if command == "" {
		return nil, domain.ErrEmptyCommand
	}

	argv := []string{command}
	argv = appendFields(argv, def.Args, props)
	argv = appendFields(argv, def.EndArgs, props)

	flag := def.OutputFlag
	if strings.TrimSpace(flag) != "" && def.OutputFile != "" {
		out := props.Substitute(def.OutputFile)
		if strings.EqualFold(strings.TrimSpace(flag), archiveFlag) {
			argv = append(argv, flag, out)
		} else {
			argv = append(argv, flag+out)
		}
	}

	for _, inc := range def.IncludePaths {
		argv = append(argv, def.IncludeFlag+props.Substitute(inc))
	}

	if len(def.Libraries) > 0 {
		group := strings.EqualFold(def.Family, gccFamily)
		if group {
			argv = append(argv, "-(")
		}
		for _, lib := range def.Libraries {
			argv = append(argv, props.Substitute(lib))
		}
		if group {
			argv = append(argv, "-)")
		}
	}

	seen := make(map[string]struct{}, len(def.Sources))
	for _, src := range def.Sources {
		src = props.Substitute(src)
		if _, ok := seen[src]; ok {
			continue
		}
		seen[src] = struct{}{}
		argv = append(argv, src)
	}

	return argv, nil
}

func appendFields(argv, args []string, props *domain.Properties) []string {
	for _, arg := range args {
		for _, field := range strings.FieldsFunc(arg, isArgSeparator) {
			argv = append(argv, props.Substitute(field))
		}
	}
	return argv
}

func isArgSeparator(r rune) bool {
	return r == ' ' || r == '\t'
}
