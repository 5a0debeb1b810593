package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/tbrunner/vtd/internal/applier"
	"github.com/tbrunner/vtd/internal/cli"
	"github.com/tbrunner/vtd/internal/config"
	"github.com/tbrunner/vtd/internal/logging"
	"github.com/tbrunner/vtd/internal/node"
	"github.com/tbrunner/vtd/internal/patch"
	"github.com/tbrunner/vtd/internal/query"
	"github.com/tbrunner/vtd/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts, err := cli.Parse(os.Args[1:])
	if err != nil {
		return err
	}

	if opts.ShowHelp {
		fmt.Println(cli.Usage())
		return nil
	}
	if opts.ShowVersion {
		fmt.Println(cli.VersionString())
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	now := time.Now()
	if opts.Now != "" {
		now, err = time.Parse(time.RFC3339, opts.Now)
		if err != nil {
			return fmt.Errorf("failed to parse --now: %w", err)
		}
	}

	include := cfg.Context.Include
	if len(opts.Context) > 0 {
		include = opts.Context
	}
	exclude := cfg.Context.Exclude
	if len(opts.Exclude) > 0 {
		exclude = opts.Exclude
	}
	log, err := logging.New(opts.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	engine := query.NewEngine(query.NewContextFilter(include, exclude))
	engine.SetLogger(log)

	files, err := cfg.TrackedFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve tracked files: %w", err)
	}
	for _, f := range files {
		engine.AddFile(f)
	}
	engine.Refresh(opts.ForceRefresh)

	switch opts.Command {
	case "next":
		fmt.Print(report.Actions("Next Actions", engine.NextActions(now), now))
	case "waiting":
		fmt.Print(report.Actions("Waiting", engine.Waiting(now), now))
	case "inbox":
		fmt.Print(report.Actions("Inbox", engine.Inboxes(now), now))
	case "all":
		fmt.Print(report.Actions("All Actions", engine.AllActions(now), now))
	case "contexts":
		fmt.Print(report.Contexts(engine.ContextList(now)))
	case "checkoff":
		return checkoff(cfg, engine, opts.CheckoffID, now)
	case "edit":
		return editFirstFile(cfg, files)
	default:
		return fmt.Errorf("unknown command %q", opts.Command)
	}
	return nil
}

// findByID searches every registered file for a doable whose Ids contains
// id, returning it and the pathname of the file that owns it.
func findByID(engine *query.Engine, id string) (*node.Node, string) {
	var found *node.Node
	var foundPath string
	for pathname, root := range engine.Files {
		query.Walk(root, nil, func(n *node.Node) {
			if found != nil {
				return
			}
			for _, nodeID := range n.Ids {
				if nodeID == id {
					found = n
					foundPath = pathname
					return
				}
			}
		})
		if found != nil {
			break
		}
	}
	return found, foundPath
}

func checkoff(cfg *config.Config, engine *query.Engine, id string, now time.Time) error {
	target, pathname := findByID(engine, id)
	if target == nil {
		return fmt.Errorf("no node with id %q", id)
	}

	patchText := patch.DefaultCheckoff(target, now)
	if patchText == "" {
		fmt.Println("Nothing to do (already done).")
		return nil
	}

	fmt.Print(patchText)
	if !cfg.Patch.AutoApply {
		return nil
	}
	return applier.ApplyPatch(pathname, patchText, false)
}

func editFirstFile(cfg *config.Config, files []string) error {
	if len(files) == 0 {
		return fmt.Errorf("no tracked files configured")
	}

	editorCmd := cfg.EditorCommand(files[0])
	parts := strings.Fields(editorCmd)
	if len(parts) == 0 {
		return fmt.Errorf("empty editor command")
	}

	c := exec.Command(parts[0], parts[1:]...)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	return c.Run()
}
