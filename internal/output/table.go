package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/kappa/open-tab-tracker/internal/models"
)

// TableRenderer is implemented by types that can render themselves as a table.
type TableRenderer interface {
	Headers() []string
	Rows() [][]string
}

// PrintTable writes data as a formatted table to the writer.
func PrintTable(w io.Writer, data TableRenderer) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader(data.Headers())

	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, row := range data.Rows() {
		table.Append(row)
	}

	table.Render()
	return nil
}

// TabsTable flattens a report's windows into one row per tab, in window
// order, for the "tabs" subcommand.
type TabsTable struct {
	Report models.Report
}

func (t TabsTable) Headers() []string {
	return []string{"Window", "Active", "Group", "Title", "URL"}
}

func (t TabsTable) Rows() [][]string {
	rows := make([][]string, 0)
	for wi, win := range t.Report.Result.Windows {
		winLabel := fmt.Sprintf("%d", wi+1)
		if win.Deleted {
			winLabel = color.HiBlackString("%s (closed)", winLabel)
		} else if win.Active {
			winLabel = color.GreenString("%s*", winLabel)
		}
		for _, tab := range win.Tabs {
			active := ""
			switch {
			case tab.Deleted:
				active = color.HiBlackString("closed")
			case tab.Active:
				active = color.GreenString("active")
			}
			rows = append(rows, []string{winLabel, active, tab.Group, tab.Title, tab.URL})
		}
	}
	return rows
}

// BrowserRow is one detected browser installation, shaped for table display.
// Note carries anything the user should know before pointing a command at
// this browser, like a missing external tool.
type BrowserRow struct {
	Name string
	Path string
	Note string
}

// BrowsersTable renders the detected-browser listing for the "list"
// subcommand.
type BrowsersTable struct {
	Rows_ []BrowserRow
}

func (t BrowsersTable) Headers() []string {
	return []string{"Browser", "Session Path", "Notes"}
}

func (t BrowsersTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Rows_))
	for _, r := range t.Rows_ {
		note := r.Note
		if note != "" {
			note = color.YellowString("%s", note)
		}
		rows = append(rows, []string{r.Name, r.Path, note})
	}
	return rows
}

// CountRow is one persisted tab-count observation, shaped for table display.
type CountRow struct {
	Browser    string
	Count      int
	ObservedAt time.Time
}

// CountsTable renders a browser's recorded tab-count history for the
// "history" subcommand.
type CountsTable struct {
	Rows_ []CountRow
}

func (t CountsTable) Headers() []string {
	return []string{"Observed At", "Browser", "Tab Count"}
}

func (t CountsTable) Rows() [][]string {
	rows := make([][]string, 0, len(t.Rows_))
	for _, r := range t.Rows_ {
		rows = append(rows, []string{
			r.ObservedAt.Local().Format(time.RFC3339),
			r.Browser,
			fmt.Sprintf("%d", r.Count),
		})
	}
	return rows
}
