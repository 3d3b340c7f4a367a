// Package renderer turns records and computed figures into markdown.
//
// Each report is an assembly template (e.g. summary.md) that includes
// partials named after it (e.g. summary_totals.md). Amounts are formatted in
// the currency of the record.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/date"
)

//go:embed *.md
var templates embed.FS

// CashFlow is the data of the cash flow report.
type CashFlow struct {
	Currency string
	Period   date.Period
	Flows    []wealth.Flow
	Skipped  int // transactions with an unreadable date
}

// RenderSummary renders the summary of a record.
func RenderSummary(s *wealth.Summary) string {
	partials := map[string]string{
		"summary_title":      "summary_title.md",
		"summary_totals":     "summary_totals.md",
		"summary_allocation": "summary_allocation.md",
		"summary_issues":     "summary_issues.md",
	}
	return renderTemplate("summary", "summary.md", partials, s.Currency, s)
}

// RenderCashFlow renders the per period cash flow of a record.
func RenderCashFlow(c *CashFlow) string {
	return renderTemplate("cashflow", "cashflow.md", nil, c.Currency, c)
}

// RenderRecord renders every line item of a record.
func RenderRecord(r *wealth.Record) string {
	partials := map[string]string{
		"record_assets":       "record_assets.md",
		"record_liabilities":  "record_liabilities.md",
		"record_sips":         "record_sips.md",
		"record_transactions": "record_transactions.md",
	}
	return renderTemplate("record", "record.md", partials, r.Currency, r)
}

// funcs returns the template functions formatting amounts in currency.
func funcs(currency string) template.FuncMap {
	return template.FuncMap{
		"money": func(a wealth.Amount) string { return a.Format(currency) },
	}
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, currency string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs(currency)).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		content, err := fs.ReadFile(templates, file)
		if err != nil {
			return fmt.Sprintf("error reading partial template %q: %v", file, err)
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
