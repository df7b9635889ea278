package internal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/starford/rolodex/internal/logic"
	"github.com/starford/rolodex/internal/models"
)

const prompt = "> "

var (
	feedbackStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// console runs command lines from in and renders results to out.
type console struct {
	mgr *logic.Manager
	in  io.Reader
	out io.Writer
}

// loop reads lines until EOF, an exit command or ctx cancellation.
func (c *console) loop(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)
	fmt.Fprintln(c.out, renderPersons(c.mgr.Filtered()))
	fmt.Fprint(c.out, prompt)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		exit, _ := c.execute(ctx, scanner.Text())
		if exit {
			return nil
		}
		fmt.Fprint(c.out, prompt)
	}
	return scanner.Err()
}

// execute runs one line and prints its outcome. The error is the command's
// failure, already shown to the user.
func (c *console) execute(ctx context.Context, line string) (bool, error) {
	res, err := c.mgr.Execute(ctx, line)
	if err != nil {
		fmt.Fprintln(c.out, errorStyle.Render(err.Error()))
		return false, err
	}
	if res.ShowHelp {
		fmt.Fprintln(c.out, helpStyle.Render(res.Feedback))
		return res.Exit, nil
	}
	fmt.Fprintln(c.out, feedbackStyle.Render(res.Feedback))
	if res.Exit {
		return true, nil
	}
	fmt.Fprintln(c.out, renderPersons(c.mgr.Filtered()))
	return false, nil
}

// renderPersons draws the displayed list with 1-based positions.
func renderPersons(persons []models.Person) string {
	if len(persons) == 0 {
		return helpStyle.Render("(no persons)")
	}
	rows := make([][]string, len(persons))
	for i, p := range persons {
		rows[i] = []string{
			strconv.Itoa(i + 1), p.Name, p.Phone, p.Email,
			string(p.Status), strings.Join(p.Tags, ", "), p.Remark,
		}
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("#", "Name", "Phone", "Email", "Status", "Tags", "Remark").
		Rows(rows...)
	return t.String()
}
