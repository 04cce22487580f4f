package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/tabmover/internal/cli/styles"
	"github.com/bnema/tabmover/internal/infrastructure/config"
)

var (
	logsFollow bool
	logsLines  int
	logsList   bool
)

const (
	defaultLogsLines = 50
	followPollDelay  = 100 * time.Millisecond
)

var logsCmd = &cobra.Command{
	Use:   "logs [file]",
	Short: "View simulator logs",
	Long: `View tabmover log files from the log directory.

Without arguments, shows the active simulator log. Rotated backups can be
named explicitly; --list shows what is available.

Examples:
  tabmover logs               # Last 50 lines of simulator.log
  tabmover logs -f            # Follow logs in real-time
  tabmover logs -n 200        # Show last 200 lines
  tabmover logs --list        # List log files`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogs,
}

func init() {
	rootCmd.AddCommand(logsCmd)

	logsCmd.Flags().BoolVarP(&logsFollow, "follow", "f", false, "follow log output in real-time")
	logsCmd.Flags().IntVarP(&logsLines, "lines", "n", defaultLogsLines, "number of lines to show")
	logsCmd.Flags().BoolVar(&logsList, "list", false, "list log files")
}

func runLogs(_ *cobra.Command, args []string) error {
	app := GetApp()
	if app == nil {
		return fmt.Errorf("app not initialized")
	}

	logDir := app.Config.Logging.LogDir
	if logDir == "" {
		dir, err := config.GetLogDir()
		if err != nil {
			return fmt.Errorf("resolve log directory: %w", err)
		}
		logDir = dir
	}

	if logsList {
		return listLogFiles(logDir, app.Theme)
	}

	name := simulatorLogName
	if len(args) == 1 {
		name = filepath.Base(args[0])
	}
	logPath := filepath.Join(logDir, name)
	if _, err := os.Stat(logPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no log file at %s (run 'tabmover simulate' first)", logPath)
		}
		return fmt.Errorf("stat log file: %w", err)
	}

	if logsFollow {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return followLog(ctx, logPath, os.Stdout, app.Theme)
	}

	lines, err := lastLines(logPath, logsLines)
	if err != nil {
		return err
	}
	for _, line := range lines {
		fmt.Println(colorizeLogLine(line, app.Theme))
	}
	return nil
}

func listLogFiles(logDir string, theme *styles.Theme) error {
	entries, err := os.ReadDir(logDir)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Println(theme.Subtle.Render("No logs yet"))
			return nil
		}
		return fmt.Errorf("read log directory: %w", err)
	}

	type logFile struct {
		name    string
		size    int64
		modTime time.Time
	}
	var files []logFile
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), simulatorLogName) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, logFile{name: e.Name(), size: info.Size(), modTime: info.ModTime()})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].modTime.After(files[j].modTime) })

	fmt.Printf("\n  %s %s\n\n", styles.IconLogs, theme.Subtle.Render(logDir))
	for _, f := range files {
		fmt.Printf("    %s  %s  %s\n",
			theme.Highlight.Render(f.name),
			theme.Subtle.Render(f.modTime.Format("2006-01-02 15:04:05")),
			formatSize(f.size),
		)
	}
	if len(files) == 0 {
		fmt.Println(theme.Subtle.Render("    No logs yet"))
	}
	fmt.Println()
	return nil
}

// lastLines returns up to n trailing lines of the file.
func lastLines(path string, n int) (lines []string, retErr error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close log file: %w", closeErr)
		}
	}()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
		if n > 0 && len(lines) > n {
			lines = lines[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}
	return lines, nil
}

// followLog prints lines appended to the file until ctx is done.
func followLog(ctx context.Context, logPath string, w io.Writer, theme *styles.Theme) error {
	file, err := os.Open(logPath)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		return fmt.Errorf("seek log file: %w", err)
	}

	fmt.Fprintln(w, theme.Subtle.Render("Following logs... (Ctrl+C to stop)"))
	fmt.Fprintln(w)

	reader := bufio.NewReader(file)
	pending := ""
	for {
		chunk, err := reader.ReadString('\n')
		pending += chunk
		if err != nil && err != io.EOF {
			return fmt.Errorf("read log file: %w", err)
		}
		if err == io.EOF {
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(followPollDelay):
			}
			continue
		}

		line := strings.TrimSuffix(pending, "\n")
		pending = ""
		fmt.Fprintln(w, colorizeLogLine(line, theme))
	}
}

// logEntry represents a parsed JSON log entry.
type logEntry struct {
	Level     string `json:"level"`
	Time      string `json:"time"`
	Message   string `json:"message"`
	Component string `json:"component"`
}

// colorizeLogLine adds color based on log level.
func colorizeLogLine(line string, theme *styles.Theme) string {
	var entry logEntry
	if err := json.Unmarshal([]byte(line), &entry); err == nil {
		return formatJSONLogLine(entry, theme)
	}

	// Console format
	switch {
	case containsAny(line, "ERR"):
		return theme.ErrorStyle.Render(line)
	case containsAny(line, "WRN"):
		return theme.WarningStyle.Render(line)
	case containsAny(line, "DBG", "TRC"):
		return theme.Subtle.Render(line)
	default:
		return line
	}
}

// formatJSONLogLine formats a parsed JSON log entry with colors.
func formatJSONLogLine(entry logEntry, theme *styles.Theme) string {
	timeStr := ""
	if entry.Time != "" {
		if t, err := time.Parse(time.RFC3339, entry.Time); err == nil {
			timeStr = t.Format("15:04:05")
		} else {
			timeStr = entry.Time
		}
	}

	var levelStr string
	switch entry.Level {
	case "error":
		levelStr = theme.ErrorStyle.Render("ERR")
	case "warn":
		levelStr = theme.WarningStyle.Render("WRN")
	case "info":
		levelStr = theme.Highlight.Render("INF")
	case "debug":
		levelStr = theme.Subtle.Render("DBG")
	case "trace":
		levelStr = theme.Subtle.Render("TRC")
	default:
		levelStr = entry.Level
	}

	msg := entry.Message
	if entry.Component != "" {
		msg = theme.Subtle.Render("["+entry.Component+"]") + " " + msg
	}
	return fmt.Sprintf("%s %s %s", theme.Subtle.Render(timeStr), levelStr, msg)
}

// containsAny checks if s contains any of the substrings.
func containsAny(s string, substrs ...string) bool {
	for _, substr := range substrs {
		if strings.Contains(s, substr) {
			return true
		}
	}
	return false
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
