// Package applier is the optional convenience layer that shells out to the
// patch(1) binary to apply a generated unified-diff hunk directly to a
// tracked file. The core engine (internal/query, internal/patch) never
// calls it itself; applying patches belongs to the CLI entrypoint.
package applier

import (
	"fmt"
	"os/exec"
	"strings"
)

// ApplyPatch runs `patch <path>` (or, if reverse, `patch -R <path>`),
// feeding patchText on stdin. path is named explicitly on the command line
// rather than relied on from a "---"/"+++" header, since internal/patch's
// hunks carry only the bare "@@ -L,N +L,N @@" header.
func ApplyPatch(path, patchText string, reverse bool) error {
	args := []string{}
	if reverse {
		args = append(args, "-R")
	}
	args = append(args, path)

	cmd := exec.Command("patch", args...)
	cmd.Stdin = strings.NewReader(patchText)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("patch apply failed: %s: %w", output, err)
	}
	return nil
}
