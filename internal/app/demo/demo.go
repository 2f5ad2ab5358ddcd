// Package demo seeds the reference scenario, runs every query over it and
// prints the results together with the statistics report.
package demo

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/burenotti/sportstats/internal/app/athletequery"
	"github.com/burenotti/sportstats/internal/app/eventquery"
	"github.com/burenotti/sportstats/internal/app/registry"
	"github.com/burenotti/sportstats/internal/app/report"
	"github.com/burenotti/sportstats/internal/domain/athlete"
	"github.com/burenotti/sportstats/internal/domain/event"
	"github.com/burenotti/sportstats/internal/domain/sport"
	"github.com/burenotti/sportstats/internal/domain/statistic"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const banner = "================================================================================"

type Deps struct {
	Registry     *registry.Service
	UoW          *registry.UnitOfWork
	AthleteQuery *athletequery.Queries
	EventQuery   *eventquery.Queries
	Logger       *slog.Logger
}

type Result struct {
	Athletes   []*athlete.Athlete
	Events     []*event.Event
	Statistics []*statistic.Statistic

	WinningRunners     []*athlete.Athlete
	TopRunners         []*athlete.Athlete
	TopFootballPlayers []*athlete.Athlete
	ForeignEvents      []*event.Event
	Participants       []*athlete.Athlete
	Report             []report.Group
}

// Run wipes the registry, seeds it and writes the query results and the
// report to out. since bounds the date based queries.
// Output written before a failure is still flushed to out.
func Run(ctx context.Context, d Deps, since time.Time, out io.Writer) (*Result, error) {
	w := bufio.NewWriter(out)
	res, err := run(ctx, d, since, w)
	if flushErr := w.Flush(); flushErr != nil && err == nil {
		err = fmt.Errorf("write demo output: %w", flushErr)
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func run(ctx context.Context, d Deps, since time.Time, w io.Writer) (*Result, error) {
	res := &Result{}

	section(w, "CLEARING PREVIOUS DATA...")
	if err := d.Registry.Reset(ctx, d.UoW); err != nil {
		return nil, fmt.Errorf("reset registry: %w", err)
	}
	fmt.Fprintln(w, "Data cleared.")

	if err := seed(ctx, d, w, res); err != nil {
		return nil, err
	}
	d.Logger.Info("demo data seeded",
		"athletes", len(res.Athletes),
		"events", len(res.Events),
		"statistics", len(res.Statistics),
	)

	if err := query(ctx, d, since, res); err != nil {
		return nil, err
	}
	printQueries(w, since, res)

	entries, err := d.Registry.Statistics(ctx, d.UoW, statistic.Filter{})
	if err != nil {
		return nil, fmt.Errorf("load report entries: %w", err)
	}
	res.Report = report.Build(entries)

	fmt.Fprintln(w)
	if err := report.Render(w, res.Report); err != nil {
		return nil, err
	}
	return res, nil
}

func seed(ctx context.Context, d Deps, w io.Writer, res *Result) error {
	section(w, "CREATING ATHLETES...")
	for _, p := range athletes {
		a, err := d.Registry.RegisterAthlete(ctx, d.UoW, p)
		if err != nil {
			return fmt.Errorf("register athlete %q: %w", p.Name, err)
		}
		res.Athletes = append(res.Athletes, a)
		fmt.Fprintf(w, "-> Created: %s\n", a)
	}
	fmt.Fprintf(w, "\nAthletes created: %d\n", len(res.Athletes))

	section(w, "CREATING EVENTS...")
	for _, p := range events {
		e, err := d.Registry.ScheduleEvent(ctx, d.UoW, p)
		if err != nil {
			return fmt.Errorf("schedule event %q: %w", p.Name, err)
		}
		res.Events = append(res.Events, e)
		fmt.Fprintf(w, "-> Created: %s\n", e)
	}
	fmt.Fprintf(w, "\nEvents created: %d\n", len(res.Events))

	section(w, "CREATING STATISTICS...")
	for _, s := range statistics {
		a, e := res.Athletes[s.athlete], res.Events[s.event]
		st, err := d.Registry.RecordStatistic(ctx, d.UoW, a.AthleteID, e.EventID, s.fields)
		if err != nil {
			return fmt.Errorf("record statistic of %q at %q: %w", a.Name, e.Name, err)
		}
		res.Statistics = append(res.Statistics, st)
		fmt.Fprintf(w, "-> Created: %s\n", st)
	}
	fmt.Fprintf(w, "\nStatistics created: %d\n", len(res.Statistics))
	return nil
}

// query runs the read-only queries concurrently; each one fills its own
// field of res.
func query(ctx context.Context, d Deps, since time.Time, res *Result) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		res.WinningRunners, err = d.AthleteQuery.FindWinningRunners(ctx, since)
		return wrap("find winning runners", err)
	})
	g.Go(func() (err error) {
		res.TopRunners, err = d.AthleteQuery.FindTopScorersInOfficialEvents(ctx, sport.Running)
		return wrap("find top runners", err)
	})
	g.Go(func() (err error) {
		res.TopFootballPlayers, err = d.AthleteQuery.FindTopScorersInOfficialEvents(ctx, sport.Football)
		return wrap("find top football players", err)
	})
	g.Go(func() (err error) {
		res.ForeignEvents, err = d.EventQuery.FindEventsWithForeignParticipants(ctx, since)
		return wrap("find events with foreign participants", err)
	})
	g.Go(func() (err error) {
		res.Participants, err = d.AthleteQuery.FindParticipants(ctx, res.Events[saoSilvestre])
		return wrap("find participants", err)
	})

	return g.Wait()
}

func printQueries(w io.Writer, since time.Time, res *Result) {
	day := since.Format("02/01/2006")
	athleteNames := func(as []*athlete.Athlete) []string {
		return lo.Map(as, func(a *athlete.Athlete, _ int) string { return a.Name })
	}
	eventNames := func(es []*event.Event) []string {
		return lo.Map(es, func(e *event.Event, _ int) string { return e.Name })
	}

	section(w, "RUNNING QUERIES...")
	printNames(w, "Winning runners (score 1) since "+day, athleteNames(res.WinningRunners))
	printNames(w, "Top scorers in official events (RUNNING)", athleteNames(res.TopRunners))
	printNames(w, "Top scorers in official events (FOOTBALL)", athleteNames(res.TopFootballPlayers))
	printNames(w, "Events with foreign participants since "+day, eventNames(res.ForeignEvents))
	printNames(w, "Participants of "+res.Events[saoSilvestre].Name, athleteNames(res.Participants))
}

func printNames(w io.Writer, title string, names []string) {
	fmt.Fprintf(w, "\n--- %s ---\n", title)
	fmt.Fprintf(w, "Result (%d): [%s]\n", len(names), strings.Join(names, ", "))
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n%s\n%s\n", banner, title, banner)
}

func wrap(op string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
