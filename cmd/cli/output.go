package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/hairizuanbinnoorazman/script-tracker/dashboard"
	"github.com/hairizuanbinnoorazman/script-tracker/script"
	"gopkg.in/yaml.v3"
)

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return nil
}

func printYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return enc.Close()
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func printMessage(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}

func confirmAction(in io.Reader, out io.Writer, prompt string, skipConfirm bool) bool {
	if skipConfirm {
		return true
	}

	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes" || answer == "s" || answer == "si" || answer == "sí"
	}
	return false
}

var statusColors = map[script.Status]*color.Color{
	script.StatusPending: color.New(color.FgYellow),
	script.StatusApplied: color.New(color.FgGreen),
	script.StatusError:   color.New(color.FgRed, color.Bold),
}

// colorStatus renders the Spanish status label in the status colour. Colour
// is dropped automatically when stdout is not a terminal.
func colorStatus(s script.Status) string {
	text := dashboard.StatusText(s)
	if c, ok := statusColors[s]; ok {
		return c.Sprint(text)
	}
	return text
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}

func printScriptTable(w io.Writer, scripts []script.Script) {
	headers := []string{"ID", "NAME", "CATEGORY", "PRIORITY", "STATUS", "RESPONSIBLE", "CREATED"}
	rows := make([][]string, 0, len(scripts))
	for _, s := range scripts {
		rows = append(rows, []string{
			fmt.Sprintf("%d", s.ID),
			truncate(s.Name, 40),
			s.Category,
			dashboard.PriorityText(s.Priority),
			colorStatus(s.Status),
			s.Responsible,
			dashboard.FormatDate(&s.DateCreated),
		})
	}
	printTable(w, headers, rows)
}

func printScriptDetail(w io.Writer, s script.Script) {
	card := dashboard.ProjectCard(s)
	rows := [][]string{
		{"ID:", fmt.Sprintf("%d", s.ID)},
		{"Name:", s.Name},
		{"Path:", card.Path},
		{"Category:", s.Category},
		{"Priority:", card.Priority.Text},
		{"Status:", colorStatus(s.Status)},
		{"Responsible:", card.Responsible},
		{"Created:", card.Created},
	}
	if card.Applied != "" {
		rows = append(rows, []string{"Applied:", card.Applied})
	}
	if len(s.Dependencies) > 0 {
		rows = append(rows, []string{"Dependencies:", strings.Join(s.Dependencies, ", ")})
	}
	if s.Notes != "" {
		rows = append(rows, []string{"Notes:", s.Notes})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 1, ' ', 0)
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}
