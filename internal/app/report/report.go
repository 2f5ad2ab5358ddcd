// Package report groups recorded statistics per athlete and renders them as
// plain text.
package report

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/samber/lo"
)

const (
	dateLayout = "02/01/2006"
	rule       = "================================================================================"
	noNote     = "N/A"
	noScore    = "-"
)

type Line struct {
	EventName string
	EventDate time.Time
	Score     *int
	Notes     string
}

// Note returns the first line of the statistic notes, or N/A.
func (l Line) Note() string {
	note, _, _ := strings.Cut(l.Notes, "\n")
	note = strings.TrimRight(note, "\r")
	if strings.TrimSpace(note) == "" {
		return noNote
	}
	return note
}

type Group struct {
	Athlete *athlete.Athlete
	Lines   []Line
}

// Build returns one group per athlete ordered by athlete name. Lines of a
// group are ordered by event date.
func Build(entries []statistic.Entry) []Group {
	byAthlete := lo.GroupBy(entries, func(e statistic.Entry) string {
		return e.Athlete.AthleteID
	})

	groups := make([]Group, 0, len(byAthlete))
	for _, athleteEntries := range byAthlete {
		lines := lo.Map(athleteEntries, func(e statistic.Entry, _ int) Line {
			return Line{
				EventName: e.Event.Name,
				EventDate: e.Event.Date,
				Score:     e.Statistic.Score,
				Notes:     e.Statistic.Notes,
			}
		})
		slices.SortStableFunc(lines, func(x, y Line) int {
			return x.EventDate.Compare(y.EventDate)
		})
		groups = append(groups, Group{Athlete: athleteEntries[0].Athlete, Lines: lines})
	}

	slices.SortFunc(groups, func(x, y Group) int {
		return cmp.Or(
			cmp.Compare(x.Athlete.Name, y.Athlete.Name),
			cmp.Compare(x.Athlete.AthleteID, y.Athlete.AthleteID),
		)
	})
	return groups
}

func Render(w io.Writer, groups []Group) error {
	p := &printer{w: w}

	p.printf("%s\nFINAL REPORT: STATISTICS BY ATHLETE\n%s\n", rule, rule)
	for _, g := range groups {
		p.printf("\n--- ATHLETE: %s (%s) ---\n", g.Athlete.Name, g.Athlete.Sport)
		for _, l := range g.Lines {
			p.printf("  > Event: %s (%s)\n", l.EventName, l.EventDate.Format(dateLayout))
			p.printf("    - Score: %s | Note: %s\n", formatScore(l.Score), l.Note())
		}
	}
	p.printf("\n%s\nEND OF REPORT.\n%s\n", rule, rule)

	return p.err
}

func formatScore(score *int) string {
	if score == nil {
		return noScore
	}
	return strconv.Itoa(*score)
}

// printer keeps the first write error and skips the writes after it.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}
