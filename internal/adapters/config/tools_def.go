package config

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"go.trai.ch/fpdgen/internal/core/domain"
	"go.trai.ch/zerr"
)

const defineKeyword = "DEFINE"

var macroRef = regexp.MustCompile(`DEF\(([A-Za-z0-9_]+)\)`)

// ParseToolsDef reads a tools definition file into an option table.
//
// Every non comment line is either a DEFINE NAME = value macro, or a
// TARGET_TAG_ARCH_TOOLCODE_ATTRIBUTE = value entry whose value may reference
// earlier macros as DEF(NAME). Undefined macro references are an error.
func ParseToolsDef(r io.Reader) (*domain.OptionTable, error) {
	table := domain.NewOptionTable()
	macros := make(map[string]string)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		name, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, lineError("missing '='", lineNo)
		}
		name = strings.TrimSpace(name)

		value, err := expandMacros(strings.TrimSpace(value), macros)
		if err != nil {
			return nil, zerr.With(err, "line", lineNo)
		}

		if macro, isDefine := strings.CutPrefix(name, defineKeyword+" "); isDefine {
			macros[strings.TrimSpace(macro)] = value
			continue
		}

		key, err := parseKey(name)
		if err != nil {
			return nil, zerr.With(err, "line", lineNo)
		}
		table.Put(key, value)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrToolsDefParseFailed.Error())
	}

	return table, nil
}

func parseKey(name string) (domain.ToolChainKey, error) {
	parts := strings.Split(name, "_")
	if len(parts) != 5 {
		return domain.ToolChainKey{}, zerr.With(
			zerr.Wrap(domain.ErrToolsDefParseFailed, "key must have five elements"),
			"key", name,
		)
	}
	for i, p := range parts {
		if p == "" {
			return domain.ToolChainKey{}, zerr.With(
				zerr.Wrap(domain.ErrToolsDefParseFailed, "empty key element"),
				"key", name,
			)
		}
		parts[i] = strings.ToUpper(p)
	}
	return domain.ToolChainKey{
		Target:    parts[0],
		ToolChain: parts[1],
		Arch:      parts[2],
		ToolCode:  parts[3],
		Attribute: parts[4],
	}, nil
}

func expandMacros(value string, macros map[string]string) (string, error) {
	var missing string
	expanded := macroRef.ReplaceAllStringFunc(value, func(ref string) string {
		name := ref[len("DEF(") : len(ref)-1]
		if v, ok := macros[name]; ok {
			return v
		}
		if missing == "" {
			missing = name
		}
		return ref
	})
	if missing != "" {
		return "", zerr.With(zerr.Wrap(domain.ErrToolsDefParseFailed, "undefined macro"), "macro", missing)
	}
	return expanded, nil
}

func lineError(msg string, lineNo int) error {
	return zerr.With(zerr.Wrap(domain.ErrToolsDefParseFailed, msg), "line", lineNo)
}
