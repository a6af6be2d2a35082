package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Ayash-Bera/propsearch/internal/models"
)

var (
	heading = color.New(color.FgCyan, color.Bold)
	label   = color.New(color.FgHiBlack)
	good    = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
)

type printer struct {
	w        io.Writer
	jsonMode bool
}

func newPrinter(w io.Writer, jsonMode bool) *printer {
	return &printer{w: w, jsonMode: jsonMode}
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) field(name string, value any) {
	label.Fprintf(p.w, "  %-14s ", name+":")
	fmt.Fprintln(p.w, value)
}

func (p *printer) parse(r models.ParseResult) error {
	if p.jsonMode {
		return p.writeJSON(r)
	}
	p.parseResult(r, "")
	return nil
}

func (p *printer) parseResult(r models.ParseResult, prefix string) {
	heading.Fprintf(p.w, "%s%s\n", prefix, r.Kind)
	if r.Kind == models.KindMultiQuestion {
		for i, part := range r.Parts {
			p.parseResult(part, fmt.Sprintf("[%d] ", i+1))
		}
		return
	}

	p.field("query", r.Query)
	if r.Kind == models.KindQuestion {
		p.field("question", r.QuestionType)
		if r.Analysis != models.AnalysisNone {
			p.field("analysis", r.Analysis)
		}
		if len(r.Locations) > 0 {
			p.field("locations", strings.Join(r.Locations, ", "))
		}
	}
	if encoded := r.Filters.Values().Encode(); encoded != "" {
		p.field("filters", encoded)
	} else {
		p.field("filters", "(none)")
	}
	if r.UsedFallback {
		warn.Fprintln(p.w, "  resolved with LLM fallback")
	}
}

func (p *printer) search(r models.SearchResult) error {
	if p.jsonMode {
		return p.writeJSON(r)
	}

	source := "provider"
	if r.Cached {
		source = "cache"
	}
	heading.Fprintf(p.w, "%d of %d properties (page %d/%d, from %s)\n",
		len(r.Listings), r.TotalCount, r.Page, r.TotalPages, source)

	for _, l := range r.Listings {
		price := "price on request"
		if l.Price != nil {
			price = fmt.Sprintf("AED %.0f", *l.Price)
		}
		good.Fprintf(p.w, "  %-16s", price)
		fmt.Fprintf(p.w, " %s", l.Title)
		if l.LocationName != "" {
			label.Fprintf(p.w, " (%s)", l.LocationName)
		}
		fmt.Fprintln(p.w)
	}
	return nil
}

func (p *printer) ask(r models.AskResponse) error {
	if p.jsonMode {
		return p.writeJSON(r)
	}
	if r.Multi != nil {
		for i, part := range r.Multi.Answers {
			heading.Fprintf(p.w, "[%d] %s (%s)\n", i+1, part.Query, part.Type)
			p.answer(part.Answer)
		}
		return nil
	}
	p.answer(r.Answer)
	return nil
}

func (p *printer) answer(a *models.Answer) {
	if a == nil {
		return
	}
	if a.Kind == models.AnswerNoData || a.Kind == models.AnswerUnresolved {
		warn.Fprintln(p.w, a.Text)
	} else {
		good.Fprintln(p.w, a.Text)
	}

	for _, step := range a.Steps {
		fmt.Fprintf(p.w, "  - %s\n", step)
	}
	for _, note := range a.Notes {
		fmt.Fprintf(p.w, "  %s\n", note)
	}
	if a.Search != nil {
		p.search(*a.Search)
	}
	for _, in := range a.Insights {
		label.Fprintf(p.w, "  [%s] ", in.Type)
		fmt.Fprintln(p.w, in.Message)
	}
	for _, s := range a.Suggestions {
		label.Fprintf(p.w, "  tip: %s\n", s)
	}
}

func (p *printer) stats(s models.CacheStats) error {
	if p.jsonMode {
		return p.writeJSON(s)
	}
	heading.Fprintf(p.w, "query cache (%s)\n", s.Backend)
	p.field("entries", s.Entries)
	p.field("live", s.LiveEntries)
	return nil
}
