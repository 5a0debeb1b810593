// Package cli handles command-line argument parsing for vtd.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"
)

// Version is set at build time.
var Version = "dev"

var subcommands = map[string]bool{
	"next": true, "waiting": true, "inbox": true, "all": true,
	"contexts": true, "edit": true,
}

// Options represents parsed command-line options.
type Options struct {
	Command      string // "next" (default), "waiting", "inbox", "all", "contexts", "checkoff", "edit"
	CheckoffID   string
	Context      []string
	Exclude      []string
	Now          string
	ForceRefresh bool
	Debug        bool
	ShowHelp     bool
	ShowVersion  bool
}

// Parse parses command-line arguments and returns Options.
func Parse(args []string) (*Options, error) {
	opts := &Options{Command: "next"}
	rest := args

	if len(args) > 0 {
		switch {
		case args[0] == "checkoff":
			if len(args) < 2 {
				return nil, fmt.Errorf("missing id for 'checkoff' command. Usage: vtd checkoff <id>")
			}
			opts.Command = "checkoff"
			opts.CheckoffID = args[1]
			rest = args[2:]
		case subcommands[args[0]]:
			opts.Command = args[0]
			rest = args[1:]
		}
	}

	fs := pflag.NewFlagSet("vtd", pflag.ContinueOnError)
	fs.StringSliceVar(&opts.Context, "context", nil, "Include only these contexts (repeatable)")
	fs.StringSliceVar(&opts.Exclude, "exclude", nil, "Exclude these contexts (repeatable)")
	fs.StringVar(&opts.Now, "now", "", "Override the current instant (RFC3339), for testing")
	fs.BoolVar(&opts.ForceRefresh, "force-refresh", false, "Reparse every tracked file regardless of mtime")
	fs.BoolVar(&opts.Debug, "debug", false, "Enable verbose, human-readable logging of parse failures")
	fs.BoolVarP(&opts.ShowHelp, "help", "h", false, "Show help message")
	fs.BoolVarP(&opts.ShowVersion, "version", "v", false, "Show version")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, Usage())
	}

	if err := fs.Parse(rest); err != nil {
		return nil, err
	}

	return opts, nil
}

// Usage returns the help text.
func Usage() string {
	return `vtd - a trusted-system task engine

Usage:
  vtd [next]                  List visible, unblocked next actions
  vtd waiting                 List actions waiting on someone else
  vtd inbox                   List unprocessed inbox items
  vtd all                     List every visible action not waiting on someone
  vtd contexts                List contexts by how many actions use them
  vtd checkoff <id>           Emit a patch marking <id> done (or advancing its recurrence)
  vtd edit                    Open the first tracked file in $EDITOR

Options:
  --context <name>    Only show actions in this context (repeatable)
  --exclude <name>    Hide actions in this context (repeatable)
  --now <RFC3339>     Evaluate as of this instant instead of the wall clock
  --force-refresh     Reparse every tracked file regardless of mtime
  --debug             Log parse failures (bad lines) verbosely
  -h, --help          Show this help message
  -v, --version       Show version

Examples:
  vtd
  vtd next --context home
  vtd checkoff 3f9c
  vtd contexts`
}

// VersionString returns the version string.
func VersionString() string {
	return fmt.Sprintf("vtd version %s", Version)
}
