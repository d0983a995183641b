package loader

import (
	"fmt"
	"go/build"
	"os/exec"
	"path/filepath"
	"strings"
)

// getPkgName returns the import path for a directory, preferring go
// list and falling back to build.ImportDir for sources outside a
// module.
func getPkgName(searchDir string) (string, error) {
	cmd := exec.Command("go", "list", "-f={{.ImportPath}}")
	cmd.Dir = searchDir

	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err == nil {
		outStr := strings.TrimSpace(stdout.String())

		// GOPATH-mode packages come back prefixed with an underscore.
		if len(outStr) > 0 && outStr[0] == '_' {
			outStr = strings.TrimPrefix(outStr, "_"+build.Default.GOPATH+"/src/")
		}

		lines := strings.Split(outStr, "\n")
		if len(lines) > 0 && lines[0] != "" {
			return lines[0], nil
		}
	}

	if abs, err := filepath.Abs(searchDir); err == nil {
		pkg, err := build.ImportDir(abs, build.ImportComment)
		if err == nil {
			return pkg.ImportPath, nil
		}
	}

	return "", fmt.Errorf("failed to get package name for directory: %s", searchDir)
}
