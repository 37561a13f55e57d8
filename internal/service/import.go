package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/aminah/showtrack/internal/model"
)

// Defaults applied to imported rows. A CSV export from a ratings site has
// no personal opinion in it yet.
const (
	importDefaultPersonalRating  = 1
	importDefaultRecommendations = 0
)

// ImportRowError records one failed row of a bulk import.
type ImportRowError struct {
	Row   int    `json:"row"` // 1-based data row number (header not counted)
	Title string `json:"title,omitempty"`
	Error string `json:"error"`
}

// ImportResult summarises a bulk CSV import.
type ImportResult struct {
	Created int              `json:"created"`
	Failed  []ImportRowError `json:"failed"`
}

// ImportCSV reads shows from CSV and creates them one row at a time.
//
// Expected header columns: title, type, genres, dateReleased,
// rottenTomatoRating, whereToWatch. Multi-value cells (genres,
// whereToWatch) are space-separated enum names. personalRating and
// recommendations are optional and default to 1 and 0.
//
// FAILURE SEMANTICS — PER ROW, NO ROLLBACK:
// Each row is an independent create, sequentially awaited. A bad row is
// logged, recorded in the result, and skipped; earlier rows stay
// persisted and later rows are still attempted. There is no batching and
// no aggregate transaction — re-running a fixed file re-imports only what
// you re-include.
func (s *ShowService) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("importing shows: reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"title", "type", "genres", "dateReleased", "rottenTomatoRating", "whereToWatch"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("importing shows: CSV is missing required column %q", required)
		}
	}

	result := &ImportResult{Failed: []ImportRowError{}}
	for rowNum := 1; ; rowNum++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A structurally broken row (wrong field count, bad quoting).
			// Log it, record it, move on — same policy as a validation
			// failure.
			s.logger.Warn("import: unreadable CSV row",
				slog.Int("row", rowNum),
				slog.String("error", err.Error()),
			)
			result.Failed = append(result.Failed, ImportRowError{Row: rowNum, Error: err.Error()})
			continue
		}

		cell := func(name string) string {
			i, ok := col[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		in, err := rowToInput(cell)
		if err == nil {
			_, err = s.Create(ctx, in)
		}
		if err != nil {
			s.logger.Warn("import: row rejected",
				slog.Int("row", rowNum),
				slog.String("title", cell("title")),
				slog.String("error", err.Error()),
			)
			result.Failed = append(result.Failed, ImportRowError{
				Row:   rowNum,
				Title: cell("title"),
				Error: err.Error(),
			})
			continue
		}
		result.Created++
	}

	s.logger.Info("import finished",
		slog.Int("created", result.Created),
		slog.Int("failed", len(result.Failed)),
	)
	return result, nil
}

// rowToInput maps one CSV row to a ShowInput. Validation proper happens in
// Create; this only deals with cell-to-field conversion.
func rowToInput(cell func(string) string) (ShowInput, error) {
	date, err := model.ParseDate(cell("dateReleased"))
	if err != nil {
		return ShowInput{}, err
	}

	critic, err := strconv.Atoi(cell("rottenTomatoRating"))
	if err != nil {
		return ShowInput{}, fmt.Errorf("invalid rottenTomatoRating %q", cell("rottenTomatoRating"))
	}

	personal := importDefaultPersonalRating
	if v := cell("personalRating"); v != "" {
		personal, err = strconv.Atoi(v)
		if err != nil {
			return ShowInput{}, fmt.Errorf("invalid personalRating %q", v)
		}
	}

	recommendations := importDefaultRecommendations
	if v := cell("recommendations"); v != "" {
		recommendations, err = strconv.Atoi(v)
		if err != nil {
			return ShowInput{}, fmt.Errorf("invalid recommendations %q", v)
		}
	}

	return ShowInput{
		Type:               cell("type"),
		Title:              cell("title"),
		Genres:             strings.Fields(cell("genres")),
		DateReleased:       date,
		PersonalRating:     personal,
		RottenTomatoRating: critic,
		Recommendations:    recommendations,
		WhereToWatch:       strings.Fields(cell("whereToWatch")),
	}, nil
}
