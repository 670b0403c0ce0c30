package dashboard

import (
	"fmt"
	"strings"
	"time"

	"github.com/simaogato/partsdash-backend/internal/domain"
	"github.com/simaogato/partsdash-backend/internal/usecase/formatter"
)

// QueryParams is the raw, transport-level form of a PanelRequest.
// Every transport (gRPC, HTTP, CLI) collects these strings and hands them
// over unparsed.
type QueryParams struct {
	From    string
	To      string
	Sort    string
	Dir     string
	Query   string
	Fields  []string
	Period  string
	MinDays *int
}

// Request parses the params into a PanelRequest.
// defaultMinDays is used when MinDays is not set.
func (p QueryParams) Request(defaultMinDays int) (PanelRequest, error) {
	from, err := parseDay("from", p.From)
	if err != nil {
		return PanelRequest{}, err
	}
	to, err := parseDay("to", p.To)
	if err != nil {
		return PanelRequest{}, err
	}

	fields := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		for _, part := range strings.Split(f, ",") {
			if part = strings.TrimSpace(part); part != "" {
				fields = append(fields, part)
			}
		}
	}

	req := PanelRequest{
		Range: domain.DateRange{From: from, To: to},
		View: domain.ViewState{
			SortKey:      strings.TrimSpace(p.Sort),
			Direction:    domain.SortDirection(strings.ToLower(strings.TrimSpace(p.Dir))),
			Query:        p.Query,
			SearchFields: fields,
		},
		Period:  domain.Period(strings.ToLower(strings.TrimSpace(p.Period))),
		MinDays: defaultMinDays,
	}
	if p.MinDays != nil {
		req.MinDays = *p.MinDays
	}

	if err := req.Range.Validate(); err != nil {
		return PanelRequest{}, err
	}
	if err := req.View.Validate(); err != nil {
		return PanelRequest{}, err
	}

	return req, nil
}

func parseDay(name, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(formatter.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s date %q, expected YYYY-MM-DD", name, raw)
	}
	return t, nil
}
