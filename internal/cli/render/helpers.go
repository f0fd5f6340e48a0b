package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/shopspring/decimal"
	"github.com/trebuchet-org/coffer/internal/domain"
	"github.com/trebuchet-org/coffer/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// shortIDLen is the number of ID characters shown in tables. Commands
// accept any unique ID prefix.
const shortIDLen = 8

const timeLayout = "2006-01-02 15:04"

var (
	printer = message.NewPrinter(language.English)
	title   = cases.Title(language.English)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatError formats an error for the terminal. Validation failures are
// listed one field per line; other errors keep their full chain.
func FormatError(err error) string {
	var errs domain.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		var b strings.Builder
		b.WriteString(color.New(color.FgRed).Sprint("❌ Invalid input:"))
		for _, fe := range errs {
			fmt.Fprintf(&b, "\n   • %s: %s", color.New(color.Bold).Sprint(fe.Field), fe.Message)
		}
		return b.String()
	}

	msg := err.Error()
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// FormatMoney renders an amount rounded to cents with thousands separators,
// e.g. $2,450,000.00
func FormatMoney(amount decimal.Decimal) string {
	rounded := amount.Round(2)
	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}
	whole := rounded.Truncate(0)
	cents := rounded.Sub(whole).Shift(2).IntPart()
	return fmt.Sprintf("%s$%s.%02d", sign, printer.Sprintf("%d", whole.IntPart()), cents)
}

// FormatTime renders a timestamp in the local zone
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}

// FormatDuration renders a remaining time-lock as days and hours
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "elapsed"
	}
	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", int(d/time.Minute)+1)
	}
}

// ShortID truncates an identifier for table display
func ShortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

// Label turns an enum value such as spending_limit into "Spending Limit"
func Label(raw string) string {
	return title.String(strings.ReplaceAll(raw, "_", " "))
}

// ProposalStatus colors a proposal status
func ProposalStatus(s models.ProposalStatus) string {
	switch s {
	case models.ProposalStatusPending:
		return color.New(color.FgYellow).Sprint(s)
	case models.ProposalStatusApproved:
		return color.New(color.FgCyan).Sprint(s)
	case models.ProposalStatusExecuted:
		return color.New(color.FgGreen).Sprint(s)
	case models.ProposalStatusRejected:
		return color.New(color.FgRed).Sprint(s)
	default:
		return color.New(color.Faint).Sprint(s)
	}
}

// TransactionStatus colors a ledger entry status
func TransactionStatus(s models.TransactionStatus) string {
	switch s {
	case models.TransactionStatusCompleted:
		return color.New(color.FgGreen).Sprint(s)
	case models.TransactionStatusPending:
		return color.New(color.FgYellow).Sprint(s)
	default:
		return color.New(color.FgRed).Sprint(s)
	}
}

// ProgressBar draws a fixed width bar for a fraction in [0, 1]
func ProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	return color.New(color.FgGreen).Sprint(strings.Repeat("█", filled)) +
		color.New(color.Faint).Sprint(strings.Repeat("░", width-filled))
}

// newTable returns a borderless table in the style used by every list
func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.Style().Box.PaddingRight = "  "
	t.Style().Format.Header = text.FormatDefault
	t.AppendHeader(header)
	return t
}

func heading(s string) string {
	return color.New(color.FgCyan, color.Bold).Sprint(s)
}

func faint(s string) string {
	return color.New(color.Faint).Sprint(s)
}
