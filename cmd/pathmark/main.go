package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/nikbrunner/pathmark/internal/checker"
	"github.com/nikbrunner/pathmark/internal/config"
	"github.com/nikbrunner/pathmark/internal/exporter"
	"github.com/nikbrunner/pathmark/internal/importer"
	"github.com/nikbrunner/pathmark/internal/model"
	"github.com/nikbrunner/pathmark/internal/picker"
	"github.com/nikbrunner/pathmark/internal/search"
	"github.com/nikbrunner/pathmark/internal/shell"
	"github.com/nikbrunner/pathmark/internal/storage"
	"github.com/nikbrunner/pathmark/internal/tui"
	"golang.org/x/term"
)

// checkWorkers bounds the number of concurrent stats in `pathmark check`.
const checkWorkers = 8

func main() {
	args, debug := stripDebugFlag(os.Args[1:])

	if debug {
		f, err := openDebugLog()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.Println("--- pathmark debug session ---")
	} else {
		log.SetOutput(io.Discard)
	}

	if err := run(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error %v\n", err)
		os.Exit(1)
	}
}

// stripDebugFlag removes the debug flag so that the remaining arguments can
// be dispatched as a subcommand or a query. --debug is accepted anywhere;
// -d only before the subcommand, because update uses it for the description.
func stripDebugFlag(args []string) ([]string, bool) {
	debug := false
	rest := make([]string, 0, len(args))
	for _, a := range args {
		if a == "--debug" || (a == "-d" && len(rest) == 0) {
			debug = true
			continue
		}
		rest = append(rest, a)
	}
	return rest, debug
}

func openDebugLog() (*os.File, error) {
	dir := config.DataDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return tea.LogToFile(filepath.Join(dir, "debug.log"), "pathmark")
}

func run(args []string) error {
	if len(args) == 0 {
		return runBrowser(false)
	}

	switch args[0] {
	case "help", "--help", "-h":
		printHelp()
		return nil
	case "command":
		return runBrowser(true)
	case "add":
		return runAdd(args[1:])
	case "delete":
		return runDelete(args[1:])
	case "update":
		return runUpdate(args[1:])
	case "list":
		return runList(args[1:])
	case "init":
		return runInit()
	case "import":
		return runImport(args[1:])
	case "export":
		return runExport(args[1:])
	case "check":
		return runCheck(args[1:])
	default:
		// Treat as search query (join all remaining args)
		return runQuickSearch(strings.Join(args, " "))
	}
}

func printHelp() {
	help := `pathmark - bookmarks for filesystem paths

Usage:
  pathmark                          Browse bookmarks, print the chosen path
  pathmark command                  Browse bookmarks, print a shell command for the choice
  pathmark <query>                  Quick search -> select -> print path
  pathmark add <path> [name] [desc] Bookmark a path
  pathmark delete <path>            Delete the bookmark for a path
  pathmark update <id> [-p path] [-n name] [-d desc]
                                    Change a bookmark
  pathmark list [-p]                List bookmarks (-p: paths only)
  pathmark init                     Add the pm() function to ~/.bashrc / ~/.zshrc
  pathmark import <file.html>       Import file:// links from a bookmark export
  pathmark export [file.html]       Export bookmarks as HTML (stdout by default)
  pathmark check [--prune]          Report missing paths (--prune: delete them)
  pathmark help                     Show this help

Flags:
  -d, --debug                       Log to debug.log in the data directory

Browser Keybindings:
  Type          Filter by name
  ↑/↓ ctrl+k/j  Move selection
  Enter         Choose
  ctrl+d        Delete (h/l choose, y/n, Enter confirm)
  ctrl+e        Edit name, path and description
  ctrl+y        Copy path to clipboard
  Esc / ctrl+c  Quit

Configuration:
  ~/.config/pathmark/config.toml, optional .env beside it,
  PATHMARK_DATABASE, PATHMARK_BACKEND, PATHMARK_EDITOR
`
	fmt.Print(help)
}

// openStore loads the configuration and opens the configured store.
func openStore() (config.Config, storage.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := storage.Open(cfg)
	if err != nil {
		return cfg, nil, fmt.Errorf("opening bookmarks: %w", err)
	}
	return cfg, store, nil
}

// runBrowser runs the interactive browser. The UI is drawn on stderr so
// stdout carries only the result, for command substitution.
func runBrowser(asCommand bool) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stderr.Fd())) {
		return errors.New("starting browser: an interactive terminal is required")
	}

	cfg, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(os.Stderr))

	app := tui.NewApp(tui.AppParams{
		Store:           store,
		RefreshInterval: cfg.RefreshInterval(),
		NameWidth:       cfg.NameWidth,
		ShowHidden:      cfg.ShowHidden,
	})
	if err := app.Err(); err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("running browser: %w", err)
	}

	finalApp := finalModel.(tui.App)
	if err := finalApp.Err(); err != nil {
		return fmt.Errorf("browsing bookmarks: %w", err)
	}

	b, ok := finalApp.Choice()
	if !ok {
		return nil
	}
	return emit(store, b, asCommand, cfg.EditorCommand())
}

// emit stamps the visit and prints the chosen bookmark.
func emit(store storage.Store, b model.Bookmark, asCommand bool, editor string) error {
	if err := store.MarkVisited(b.ID, time.Now()); err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("recording visit: %w", err)
	}

	if !asCommand {
		fmt.Println(b.Path)
		return nil
	}

	cmd := shell.Command(b, editor)
	if cmd == "" {
		fmt.Fprintf(os.Stderr, "%s no longer exists\n", b.Path)
		return nil
	}
	fmt.Println(cmd)
	return nil
}

// runQuickSearch ranks bookmarks by query and prints the chosen path.
func runQuickSearch(query string) error {
	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.List()
	if err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}

	results := search.Rank(all, query)

	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "No bookmarks found for '%s'\n", query)
		return nil
	}

	var chosen model.Bookmark
	if len(results) == 1 {
		// Single result - select it directly
		chosen = results[0].Bookmark
	} else {
		// Multiple results - show picker
		lipgloss.SetDefaultRenderer(lipgloss.NewRenderer(os.Stderr))
		program := tea.NewProgram(picker.New(results, query), tea.WithOutput(os.Stderr))
		finalModel, err := program.Run()
		if err != nil {
			return fmt.Errorf("running picker: %w", err)
		}

		b, ok := finalModel.(picker.Picker).Choice()
		if !ok {
			return nil
		}
		chosen = b
	}

	return emit(store, chosen, false, "")
}

func runAdd(args []string) error {
	if len(args) < 1 || len(args) > 3 {
		return errors.New("adding bookmark: usage: pathmark add <path> [name] [description]")
	}

	params := model.NewBookmarkParams{Path: args[0]}
	if len(args) > 1 {
		params.Name = args[1]
	}
	if len(args) > 2 {
		params.Description = args[2]
	}

	b, err := model.NewBookmark(params)
	if err != nil {
		return fmt.Errorf("adding bookmark: %w", err)
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	created, err := store.Create(b)
	if err != nil {
		return fmt.Errorf("adding bookmark: %w", err)
	}
	fmt.Printf("Added %s\n", created)
	return nil
}

func runDelete(args []string) error {
	if len(args) != 1 {
		return errors.New("deleting bookmark: usage: pathmark delete <path>")
	}

	path, err := model.CanonicalPath(args[0])
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	deleted, err := storage.DeleteByPath(store, path)
	if err != nil {
		return fmt.Errorf("deleting bookmark: %w", err)
	}
	fmt.Printf("Deleted %s\n", deleted)
	return nil
}

func runUpdate(args []string) error {
	if len(args) < 1 {
		return errors.New("updating bookmark: usage: pathmark update <id> [-p path] [-n name] [-d description]")
	}

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("updating bookmark: invalid id %q", args[0])
	}

	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	path := fs.String("p", "", "new path")
	name := fs.String("n", "", "new name")
	desc := fs.String("d", "", "new description")
	if err := fs.Parse(args[1:]); err != nil {
		return fmt.Errorf("updating bookmark: %w", err)
	}

	// Only flags given on the command line change a field; -n "" clears the name.
	var params model.UpdateParams
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			params.Path = path
		case "n":
			params.Name = name
		case "d":
			params.Description = desc
		}
	})
	if params.Empty() {
		return errors.New("updating bookmark: nothing to change")
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	b, err := store.Get(id)
	if err != nil {
		return fmt.Errorf("updating bookmark %d: %w", id, err)
	}
	b, err = params.Apply(b)
	if err != nil {
		return fmt.Errorf("updating bookmark %d: %w", id, err)
	}
	if err := store.Update(b); err != nil {
		return fmt.Errorf("updating bookmark %d: %w", id, err)
	}
	fmt.Printf("Updated %s\n", b)
	return nil
}

func runList(args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	pathsOnly := fs.Bool("p", false, "print paths only")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("listing bookmarks: %w", err)
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.List()
	if err != nil {
		return fmt.Errorf("listing bookmarks: %w", err)
	}

	if *pathsOnly {
		for _, b := range all {
			fmt.Println(b.Path)
		}
		return nil
	}

	if len(all) == 0 {
		fmt.Println("No bookmarks yet. Add one with: pathmark add <path>")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "NAME", "PATH", "DESCRIPTION", "VISITED")
	for _, b := range all {
		visited := "never"
		if b.VisitedAt != nil {
			visited = humanize.Time(*b.VisitedAt)
		}
		t.Row(strconv.FormatInt(b.ID, 10), b.DisplayName(), b.Path, b.Description, visited)
	}
	fmt.Println(t.Render())
	return nil
}

func runInit() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("finding home directory: %w", err)
	}

	results, err := shell.Install(home)
	if err != nil {
		return fmt.Errorf("installing shell function: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No ~/.bashrc or ~/.zshrc found. Add this to your shell config:")
		fmt.Println(shell.Function)
		return nil
	}

	for _, r := range results {
		if r.Added {
			fmt.Printf("Added pm() to %s\n", r.File)
		} else {
			fmt.Printf("pm() already present in %s\n", r.File)
		}
	}
	fmt.Println("Done. Restart your shell and run pm to browse bookmarks.")
	return nil
}

func runImport(args []string) error {
	if len(args) != 1 {
		return errors.New("importing bookmarks: usage: pathmark import <file.html>")
	}

	file, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	entries, ignored, err := importer.ParseHTMLBookmarks(file)
	if err != nil {
		return fmt.Errorf("parsing HTML: %w", err)
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	stats, err := importer.Import(store, entries)
	if err != nil {
		return err
	}

	fmt.Printf("Imported %d bookmarks", stats.Added)
	if stats.Skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", stats.Skipped)
	}
	if ignored > 0 {
		fmt.Printf(", ignored %d non-local links", ignored)
	}
	fmt.Println()
	return nil
}

func runExport(args []string) error {
	if len(args) > 1 {
		return errors.New("exporting bookmarks: usage: pathmark export [file.html]")
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.List()
	if err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}

	if len(args) == 0 {
		return exporter.Write(os.Stdout, all)
	}

	if err := os.WriteFile(args[0], []byte(exporter.ExportHTML(all)), 0o644); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}
	fmt.Printf("Exported %d bookmarks to %s\n", len(all), args[0])
	return nil
}

func runCheck(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	prune := fs.Bool("prune", false, "delete bookmarks whose path is missing")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("checking bookmarks: %w", err)
	}

	_, store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	all, err := store.List()
	if err != nil {
		return fmt.Errorf("loading bookmarks: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := checker.Check(ctx, all, checkWorkers, func(completed, total int) {
		fmt.Fprintf(os.Stderr, "\rChecking %d/%d", completed, total)
	})
	if len(all) > 0 {
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return fmt.Errorf("checking bookmarks: %w", err)
	}

	counts := checker.Summary(results)
	fmt.Printf("%d healthy, %d missing, %d unreadable\n",
		counts[checker.Healthy], counts[checker.Missing], counts[checker.Unreadable])

	for _, r := range checker.Filter(results, checker.Unreadable) {
		fmt.Printf("  unreadable  %s (%s)\n", r.Bookmark.Path, r.Error)
	}

	missing := checker.Filter(results, checker.Missing)
	for _, r := range missing {
		fmt.Printf("  missing     %s\n", r.Bookmark.Path)
	}

	if !*prune || len(missing) == 0 {
		return nil
	}

	deleted := 0
	for _, r := range missing {
		err := store.Delete(r.Bookmark.ID)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("pruning %s: %w", r.Bookmark.Path, err)
		}
		deleted++
	}
	fmt.Printf("Pruned %d bookmarks\n", deleted)
	return nil
}
