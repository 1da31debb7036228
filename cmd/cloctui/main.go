package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cloctui/cloc"
	"cloctui/config"
	"cloctui/history"
	"cloctui/stats"
	"cloctui/tui"
)

const installGuidance = `
CLOC is not installed on your system.
Please install CLOC to use this application.
Visit https://github.com/AlDanial/cloc for more information.

Depending your operating system, one of these installation methods may work for you
(all but the last two entries for Windows require a Perl interpreter):

npm install -g cloc              # https://www.npmjs.com/package/cloc
sudo apt install cloc            # Debian, Ubuntu
sudo yum install cloc            # Red Hat, Fedora
sudo dnf install cloc            # Fedora 22 or later
sudo pacman -S cloc              # Arch
yay -S cloc-git                  # Arch AUR (latest git version)
sudo emerge -av dev-util/cloc    # Gentoo https://packages.gentoo.org/packages/dev-util/cloc
sudo apk add cloc                # Alpine Linux
doas pkg_add cloc                # OpenBSD
sudo pkg install cloc            # FreeBSD
sudo port install cloc           # macOS with MacPorts
brew install cloc                # macOS with Homebrew
winget install AlDanial.Cloc     # Windows with winget
choco install cloc               # Windows with Chocolatey
scoop install cloc               # Windows with Scoop
`

func main() {
	root := newRootCmd()
	root.AddCommand(newHistoryCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var fullscreen bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "cloctui [path]",
		Short: "A terminal frontend for CLOC (Count Lines of Code)",
		Long: "CLOCTUI - a terminal frontend for CLOC (Count Lines of Code).\n\n" +
			"Path must be provided. Use '.' for the current directory or specify a path to a directory.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cloc.SetVerboseLogging(verbose)

			// Missing cloc is a user-facing condition, not a shell failure.
			if err := cloc.Probe(""); err != nil {
				fmt.Print(installGuidance + "\n")
				return nil
			}

			if len(args) == 0 {
				fmt.Println(cmd.Long)
				return nil
			}

			target, err := expandPath(args[0])
			if err != nil {
				return err
			}
			if err := cloc.ValidateTarget(target); err != nil {
				return err
			}
			return runUI(target, fullscreen)
		},
	}
	cmd.Flags().BoolVarP(&fullscreen, "fullscreen", "f", false,
		"Run in fullscreen / full terminal mode")
	cmd.Flags().BoolVar(&verbose, "verbose", false,
		"Log scanner activity to stderr")
	return cmd
}

func runUI(target string, fullscreen bool) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("cloctui requires an interactive terminal")
	}

	cfg := config.Get()

	scanner := cloc.Scanner{
		WorkDir: cfg.GetString("scan", "working_dir", ""),
		Timeout: time.Duration(cfg.GetInt("scan", "timeout_seconds", 15)) * time.Second,
	}

	app := tui.NewClocApp(target, scanner, tui.Options{
		CellPadding:  cfg.GetInt("table", "cell_padding", 1),
		MinPathWidth: cfg.GetInt("table", "min_path_width", 15),
		ZebraStripes: cfg.GetBool("table", "zebra_stripes", true),
		Recorder:     newRecorder(cfg),
	})
	return tui.Run(app, tui.RunOptions{EchoOnExit: !fullscreen})
}

// newRecorder wires the history store in as a best-effort scan recorder.
// History problems are logged, never surfaced.
func newRecorder(cfg config.Config) tui.Recorder {
	if !cfg.GetBool("history", "enabled", true) {
		return nil
	}
	return func(target string, startedAt time.Time, res *stats.ScanResult) {
		path, err := config.HistoryDBPath()
		if err != nil {
			log.Printf("History: %v", err)
			return
		}
		store, err := history.Open(path, cfg.GetInt("history", "max_entries", 500))
		if err != nil {
			log.Printf("History: %v", err)
			return
		}
		defer store.Close()
		if err := store.Record(target, startedAt, res); err != nil {
			log.Printf("History: %v", err)
		}
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent scans",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.HistoryDBPath()
			if err != nil {
				return err
			}
			store, err := history.Open(path, config.Get().GetInt("history", "max_entries", 500))
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.Recent(limit)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Println("No scans recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tTARGET\tFILES\tLINES\tCODE\tCOMMENT\tBLANK")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%d\n",
					e.StartedAt.Format("2006-01-02 15:04"),
					e.Target, e.Files, e.Lines, e.Code, e.Comment, e.Blank)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of scans to show")
	return cmd
}

// expandPath resolves ~ and makes the target absolute.
func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(path)
}
