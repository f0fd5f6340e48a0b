package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/coffer/internal/domain/config"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// ConfigRenderer renders config-related output
type ConfigRenderer struct {
	out  io.Writer
	json bool
}

// NewConfigRenderer creates a new config renderer
func NewConfigRenderer(out io.Writer, jsonOut bool) *ConfigRenderer {
	return &ConfigRenderer{out: out, json: jsonOut}
}

// getRelativePath returns the relative path from current directory
func getRelativePath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}

	relPath, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return path
	}

	return relPath
}

// RenderConfig renders the effective configuration
func (r *ConfigRenderer) RenderConfig(result *usecase.ShowConfigResult) error {
	cfg := result.Config
	if r.json {
		return RenderJSON(r.out, map[string]any{
			"configPath":        result.ConfigPath,
			"configExists":      result.Exists,
			"dataLocation":      result.DataLocation,
			"storage":           cfg.Storage,
			"guards":            cfg.Guards,
			"strictAddresses":   cfg.StrictAddresses,
			"actor":             cfg.ActorID,
			"expenseCategories": cfg.ExpenseCategories,
			"defaultLockDays":   cfg.DefaultLockDays,
		})
	}

	fmt.Fprintln(r.out, "📋 Current config:")
	if result.Exists {
		fmt.Fprintf(r.out, "📁 config file: %s\n", getRelativePath(result.ConfigPath))
	} else {
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("No %s found, using defaults", config.FileName)))
	}
	backend := cfg.Storage.Backend
	if backend == "" {
		backend = config.BackendJSON
	}
	fmt.Fprintf(r.out, "📦 data:        %s (%s)\n", getRelativePath(result.DataLocation), backend)

	fmt.Fprintln(r.out)
	actor := cfg.ActorID
	if actor == "" {
		actor = "(first member)"
	}
	fmt.Fprintf(r.out, "Actor:             %s\n", actor)
	fmt.Fprintf(r.out, "Default lock:      %d days\n", cfg.DefaultLockDays)
	fmt.Fprintf(r.out, "Strict addresses:  %s\n", onOff(cfg.StrictAddresses))
	fmt.Fprintf(r.out, "Expense categories: %s\n", strings.Join(cfg.ExpenseCategories, ", "))

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, heading("Guards"))
	fmt.Fprintf(r.out, "  reject_duplicate_votes  %s\n", onOff(cfg.Guards.RejectDuplicateVotes))
	fmt.Fprintf(r.out, "  require_pending         %s\n", onOff(cfg.Guards.RequirePending))
	fmt.Fprintf(r.out, "  enforce_time_lock       %s\n", onOff(cfg.Guards.EnforceTimeLock))
	fmt.Fprintf(r.out, "  enforce_pause           %s\n", onOff(cfg.Guards.EnforcePause))
	return nil
}

func onOff(v bool) string {
	if v {
		return color.New(color.FgGreen).Sprint("on")
	}
	return color.New(color.FgYellow).Sprint("off")
}
