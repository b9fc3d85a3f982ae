package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/tanker327/react-project-structure-best-practices/internal/errors"
	"github.com/tanker327/react-project-structure-best-practices/internal/services"
)

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renders rows as aligned columns; the first row is the header
func renderTable(w io.Writer, rows [][]string) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	for r, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			style := cellStyle
			if r == 0 {
				style = headerStyle
			}
			cells[i] = style.Width(widths[i] + 2).Render(cell)
		}
		fmt.Fprintln(w, strings.TrimRight(lipgloss.JoinHorizontal(lipgloss.Top, cells...), " "))
	}
}

func renderProducts(w io.Writer, items []services.Product) {
	if len(items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no products"))
		return
	}

	rows := [][]string{{"NAME", "PRICE", "CATEGORY", "STOCK", "ID"}}
	for _, p := range items {
		rows = append(rows, []string{p.Name, fmt.Sprintf("%.2f", p.Price), p.Category, fmt.Sprint(p.Stock), p.ID})
	}

	renderTable(w, rows)
}

func renderUsers(w io.Writer, items []services.User) {
	if len(items) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no users"))
		return
	}

	rows := [][]string{{"USERNAME", "EMAIL", "NAME", "ADMIN", "ID"}}
	for _, u := range items {
		rows = append(rows, []string{u.Username, u.Email, u.Name, fmt.Sprint(u.IsAdmin), u.ID})
	}

	renderTable(w, rows)
}

// renders a failure; normalized errors show kind, status, operation and violations
func renderError(w io.Writer, err error) {
	e, ok := apperrors.As(err)
	if !ok {
		fmt.Fprintln(w, errorStyle.Render("error:")+" "+err.Error())
		return
	}

	var b strings.Builder

	b.WriteString(kindStyle.Render(e.Kind().String()))
	if e.StatusCode() != 0 {
		b.WriteString(" " + warnStyle.Render(fmt.Sprintf("HTTP %d", e.StatusCode())))
	}
	if op := e.Operation(); op != "" {
		b.WriteString(" " + mutedStyle.Render(op))
	}
	b.WriteString("\n" + e.Message())

	for _, v := range e.Violations() {
		b.WriteString("\n  • " + v.Path + ": " + v.Message)
	}

	ctx := e.Context()
	keys := make([]string, 0, len(ctx))
	for k := range ctx {
		switch k {
		case apperrors.KeyOperation, apperrors.KeyEntity, apperrors.KeyMethod, apperrors.KeyViolations:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteString("\n" + mutedStyle.Render(k+": ") + contextValue(ctx[k]))
	}

	fmt.Fprintln(w, boxStyle.Render(b.String()))
}

// renders a context value as JSON, or with fmt when it cannot be encoded
func contextValue(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}

	return string(raw)
}
