package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/coffer/internal/usecase"
)

// InitRenderer renders init command results
type InitRenderer struct {
	out io.Writer
}

// NewInitRenderer creates a new init renderer
func NewInitRenderer(out io.Writer) *InitRenderer {
	return &InitRenderer{out: out}
}

// Render renders the init project result
func (r *InitRenderer) Render(result *usecase.InitProjectResult) error {
	for _, step := range result.Steps {
		if step.Success {
			msg := step.Message
			if msg == "" {
				msg = step.Name
			}
			fmt.Fprintln(r.out, FormatSuccess(msg))
			continue
		}
		fmt.Fprintln(r.out, color.New(color.FgRed).Sprintf("❌ %s", step.Name))
		if step.Message != "" {
			fmt.Fprintf(r.out, "   %s\n", step.Message)
		}
		if step.Error != nil {
			fmt.Fprintf(r.out, "   %s\n", step.Error.Error())
		}
	}

	for _, step := range result.Steps {
		if !step.Success {
			return nil
		}
	}
	r.printNextSteps(result)
	return nil
}

func (r *InitRenderer) printNextSteps(result *usecase.InitProjectResult) {
	fmt.Fprintln(r.out)
	if result.AlreadyInitialized {
		fmt.Fprintln(r.out, FormatWarning("coffer was already initialized in this project"))
		return
	}
	color.New(color.FgGreen, color.Bold).Fprintln(r.out, "🎉 coffer initialized successfully!")

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, heading("📋 Next steps:"))
	fmt.Fprintln(r.out, "1. Review coffer.toml (storage backend, guards, acting user)")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "2. Look around:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   coffer dashboard")
	color.New(color.FgHiBlack).Fprintln(r.out, "   coffer treasury list")
	color.New(color.FgHiBlack).Fprintln(r.out, "   coffer proposal list --status pending")
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, "3. Vote on a proposal:")
	color.New(color.FgHiBlack).Fprintln(r.out, "   coffer proposal vote <id> --approve --as <member>")
}
