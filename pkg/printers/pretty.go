package printers

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/agenda/pkg/event"
)

type PrettyPrint struct {
	ShowID bool
}

const layoutClock = "2006-01-02 15:04"

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Print(title)
	_, _ = c.Printf(" - %d", count)

	switch count {
	case 1:
		_, _ = c.Println(" event")
	default:
		_, _ = c.Println(" events")
	}
}

func (pp *PrettyPrint) Events(events ...*event.Event) {
	if len(events) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 48
	if pp.ShowID {
		table.AddRow("ID", "TITLE", "START", "END", "DESCRIPTION")
	} else {
		table.AddRow("TITLE", "START", "END", "DESCRIPTION")
	}
	for _, e := range events {
		start := e.Start.Local().Format(layoutClock)
		end := e.End.Local().Format(layoutClock)
		if pp.ShowID {
			table.AddRow(e.ID, e.Title, start, end, e.Description)
		} else {
			table.AddRow(e.Title, start, end, e.Description)
		}
	}
	fmt.Println(table)
	fmt.Println("")
}

// Message prints a dispatcher status line.
func (pp *PrettyPrint) Message(msg string) {
	fmt.Println(msg)
}

// Chat prints a transcript line with the role dimmed.
func (pp *PrettyPrint) Chat(role, text string) {
	r := color.New(color.Faint)
	_, _ = r.Printf("%s: ", role)
	fmt.Println(text)
}
