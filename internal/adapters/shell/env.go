package shell

import (
	"maps"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
)

// inheritedVars are the only system variables an image tool sees.
var inheritedVars = []string{
	"EDK_SOURCE",
	"EDK_TOOLS_PATH",
	"HOME",
	"PATH",
	"TERM",
	"USER",
	"WORKSPACE",
}

// resolveEnvironment filters sysEnv down to the inherited variables and lays the
// invocation's variables over them.
func resolveEnvironment(sysEnv []string, invEnv map[string]string) []string {
	vars := make(map[string]string, len(inheritedVars)+len(invEnv))
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if ok && slices.Contains(inheritedVars, k) {
			vars[k] = v
		}
	}
	maps.Copy(vars, invEnv)

	env := make([]string, 0, len(vars))
	for _, k := range slices.Sorted(maps.Keys(vars)) {
		env = append(env, k+"="+vars[k])
	}
	return env
}

// lookPath finds file on the PATH held by env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, entry := range env {
		if p, ok := strings.CutPrefix(entry, "PATH="); ok {
			path = p
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if findExecutable(candidate) == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	info, err := os.Stat(file)
	if err != nil {
		return err
	}
	if mode := info.Mode(); mode.IsDir() || mode&0o111 == 0 {
		return os.ErrPermission
	}
	return nil
}
