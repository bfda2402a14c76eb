// Command trackmeet is the CLI surface for the track-meet scheduling
// core (§6): roster ingestion, scheduling, the event-overview CSV
// round-trip, hurdle/HTML/report exports, and the out-of-core admin
// subsystem's credential check.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/k0kubun/colorstring"
	"github.com/k0kubun/pp"
	"github.com/mattn/go-colorable"

	"github.com/asmundg/trackmeet-scheduler/internal/admin"
	"github.com/asmundg/trackmeet-scheduler/internal/corelog"
	"github.com/asmundg/trackmeet-scheduler/internal/eventcsv"
	"github.com/asmundg/trackmeet-scheduler/internal/htmlschedule"
	"github.com/asmundg/trackmeet-scheduler/internal/hurdleplan"
	"github.com/asmundg/trackmeet-scheduler/internal/reports"
	"github.com/asmundg/trackmeet-scheduler/internal/rosteringest"
	"github.com/asmundg/trackmeet-scheduler/internal/scheduler"
)

var stdout = colorable.NewColorableStdout()

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 1
	}

	var err error
	switch args[0] {
	case "schedule":
		err = cmdSchedule(args[1:])
	case "info":
		err = cmdInfo(args[1:])
	case "export-events":
		err = cmdExportEvents(args[1:])
	case "schedule-from-events":
		err = cmdScheduleFromEvents(args[1:])
	case "reports":
		err = cmdReports(args[1:])
	case "admin":
		err = cmdAdmin(args[1:])
	default:
		printUsage()
		return 1
	}

	if err != nil {
		colorPrintf("[red]error:[reset] %s\n", err)
		return 1
	}
	return 0
}

// colorPrintf writes a colorstring-tagged, printf-formatted line to
// stdout through the colorable wrapper so the color codes survive on
// Windows consoles.
func colorPrintf(format string, args ...interface{}) {
	fmt.Fprint(stdout, colorstring.Color(fmt.Sprintf(format, args...)))
}

func printUsage() {
	colorPrintf(`[yellow]usage:[reset] trackmeet <command> [flags]

commands:
  schedule <roster.csv> [--output html] [--start-hour H] [--start-minute M]
           [--personnel N] [--max-duration MIN] [--timeout SEC] [--title S]
  info <roster.csv>
  export-events <roster.csv> <events.csv>
  schedule-from-events <events.csv> <roster.csv> [--output html]
  reports start-lists|competitors-by-club|tyrving-csv|competition-manager <source> [--output O]
  admin test-login
`)
}

// schedule runs the full Former → Solver → (HTML + hurdle plan) pipeline.
func cmdSchedule(args []string) error {
	fs := flag.NewFlagSet("schedule", flag.ContinueOnError)
	output := fs.String("output", "", "HTML schedule output path")
	startHour := fs.Int("start-hour", 9, "wall-clock start hour")
	startMinute := fs.Int("start-minute", 0, "wall-clock start minute")
	personnel := fs.Int("personnel", 0, "total personnel available (stored in the solver config; the solver does not constrain on it)")
	maxDuration := fs.Int("max-duration", 240, "maximum meet duration in minutes")
	timeoutSec := fs.Int("timeout", 30, "seconds; logged only: the solver is bounded by a step count, not by wall-clock time")
	title := fs.String("title", "Track meet", "schedule title")
	verbose := fs.Bool("verbose", false, "debug-level logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("schedule: roster.csv path required")
	}
	rosterPath := fs.Arg(0)

	log := corelog.New(*verbose)

	f, err := os.Open(rosterPath)
	if err != nil {
		return (&scheduler.IOError{Path: rosterPath, Err: err})
	}
	defer f.Close()

	parsed, err := rosteringest.Parse(f, log)
	if err != nil {
		return &scheduler.IOError{Path: rosterPath, Err: err}
	}
	for _, w := range parsed.Warnings {
		log.Warn().Int("line", w.Line).Str("reason", w.Reason).Msg("roster row skipped")
	}

	roster := &scheduler.Roster{
		Athletes:    parsed.Athletes,
		EventGroups: scheduler.FormEventGroups(parsed.Athletes, parsed.Events, log),
	}

	cfg := scheduler.Config{
		TotalPersonnel:      *personnel,
		MaxTimeSlots:        (*maxDuration) / scheduler.DefaultSlotDurationMinutes,
		SlotDurationMinutes: scheduler.DefaultSlotDurationMinutes,
		VenueConfig:         scheduler.DefaultVenueResolutionConfig,
	}

	log.Debug().Int("timeout_sec", *timeoutSec).Msg("solver budget is step-bounded, not wall-clock; flag kept for CLI parity with the roster config surface")

	result := scheduler.Solve(roster, cfg, log)
	if *verbose {
		pp.Fprintln(stdout, result)
	}
	if result.Status != scheduler.StatusSolved {
		return &scheduler.UnsolvableError{Reason: string(result.FailureReason)}
	}

	colorPrintf("[green]scheduled[reset] %d event groups, makespan %d slots\n",
		len(result.Groups), result.MakespanSlots)

	if *output != "" {
		out, err := os.Create(*output)
		if err != nil {
			return &scheduler.IOError{Path: *output, Err: err}
		}
		defer out.Close()
		if err := htmlschedule.Render(out, result, *title, *startHour, *startMinute); err != nil {
			return err
		}
	}

	heats := hurdleplan.Build(result, *startHour, *startMinute)
	for _, h := range heats {
		colorPrintf("[cyan]hurdle heat[reset] %s at %s: %d hurdles, first at %sm, spacing %sm\n",
			h.Group.ID, h.StartTime, h.NumHurdles,
			hurdleplan.FormatMeters(h.FirstHurdleMeters), hurdleplan.FormatMeters(h.SpacingMeters))
	}

	return nil
}

// info dumps parsed roster statistics without scheduling.
func cmdInfo(args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "debug-level logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("info: roster.csv path required")
	}

	log := corelog.New(*verbose)
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}
	defer f.Close()

	parsed, err := rosteringest.Parse(f, log)
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}

	groups := scheduler.FormEventGroups(parsed.Athletes, parsed.Events, log)
	colorPrintf("[green]athletes:[reset] %d\n", len(parsed.Athletes))
	colorPrintf("[green]events:[reset] %d\n", len(parsed.Events))
	colorPrintf("[green]event groups:[reset] %d\n", len(groups))
	colorPrintf("[yellow]warnings:[reset] %d\n", len(parsed.Warnings))
	for _, w := range parsed.Warnings {
		fmt.Fprintf(stdout, "  line %d: %s\n", w.Line, w.Reason)
	}
	return nil
}

// export-events solves the roster and writes the event-overview CSV,
// without rendering HTML or reports.
func cmdExportEvents(args []string) error {
	fs := flag.NewFlagSet("export-events", flag.ContinueOnError)
	verbose := fs.Bool("verbose", false, "debug-level logging")
	startHour := fs.Int("start-hour", 9, "wall-clock start hour")
	startMinute := fs.Int("start-minute", 0, "wall-clock start minute")
	maxDuration := fs.Int("max-duration", 240, "maximum meet duration in minutes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("export-events: roster.csv and events.csv paths required")
	}

	log := corelog.New(*verbose)
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}
	defer f.Close()

	parsed, err := rosteringest.Parse(f, log)
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}

	roster := &scheduler.Roster{
		Athletes:    parsed.Athletes,
		EventGroups: scheduler.FormEventGroups(parsed.Athletes, parsed.Events, log),
	}
	cfg := scheduler.Config{
		MaxTimeSlots:        (*maxDuration) / scheduler.DefaultSlotDurationMinutes,
		SlotDurationMinutes: scheduler.DefaultSlotDurationMinutes,
		VenueConfig:         scheduler.DefaultVenueResolutionConfig,
	}

	result := scheduler.Solve(roster, cfg, log)
	if result.Status != scheduler.StatusSolved {
		return &scheduler.UnsolvableError{Reason: string(result.FailureReason)}
	}

	baseDate := time.Date(0, 1, 1, *startHour, *startMinute, 0, 0, time.UTC)
	rows, err := eventcsv.RowsFromResult(result, baseDate)
	if err != nil {
		return err
	}

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(1), Err: err}
	}
	defer out.Close()
	return eventcsv.Write(out, rows)
}

// schedule-from-events re-ingests a hand-edited event-overview CSV,
// validates it, and materializes the final schedule without re-solving.
func cmdScheduleFromEvents(args []string) error {
	fs := flag.NewFlagSet("schedule-from-events", flag.ContinueOnError)
	output := fs.String("output", "", "HTML schedule output path")
	startHour := fs.Int("start-hour", 9, "wall-clock start hour")
	startMinute := fs.Int("start-minute", 0, "wall-clock start minute")
	title := fs.String("title", "Track meet", "schedule title")
	verbose := fs.Bool("verbose", false, "debug-level logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("schedule-from-events: events.csv and roster.csv paths required")
	}

	log := corelog.New(*verbose)

	ef, err := os.Open(fs.Arg(0))
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}
	defer ef.Close()
	rows, err := eventcsv.Read(ef)
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}

	rf, err := os.Open(fs.Arg(1))
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(1), Err: err}
	}
	defer rf.Close()
	parsed, err := rosteringest.Parse(rf, log)
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(1), Err: err}
	}

	groups := scheduler.FormEventGroups(parsed.Athletes, parsed.Events, log)
	baseDateStr := time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")

	violations := eventcsv.Validate(rows, groups, parsed.Athletes, baseDateStr, scheduler.DefaultSlotDurationMinutes, true)
	if len(violations) > 0 {
		fmt.Fprintln(stdout, eventcsv.FormatViolations(violations))
		return fmt.Errorf("schedule-from-events: %d constraint violation(s)", len(violations))
	}

	result, err := eventcsv.Materialize(rows, groups, baseDateStr, scheduler.DefaultSlotDurationMinutes)
	if err != nil {
		return err
	}

	if *output != "" {
		out, err := os.Create(*output)
		if err != nil {
			return &scheduler.IOError{Path: *output, Err: err}
		}
		defer out.Close()
		return htmlschedule.Render(out, result, *title, *startHour, *startMinute)
	}
	return nil
}

// reports dispatches the post-scheduling export subcommands.
func cmdReports(args []string) error {
	fs := flag.NewFlagSet("reports", flag.ContinueOnError)
	output := fs.String("output", "", "output CSV path (default: stdout)")
	startHour := fs.Int("start-hour", 9, "wall-clock start hour")
	startMinute := fs.Int("start-minute", 0, "wall-clock start minute")
	verbose := fs.Bool("verbose", false, "debug-level logging")
	if len(args) < 2 {
		return fmt.Errorf("reports: subcommand and source roster.csv required")
	}
	sub := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("reports %s: source roster.csv required", sub)
	}

	log := corelog.New(*verbose)
	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}
	defer f.Close()

	parsed, err := rosteringest.Parse(f, log)
	if err != nil {
		return &scheduler.IOError{Path: fs.Arg(0), Err: err}
	}

	w := stdout
	var closeOut func()
	if *output != "" {
		out, err := os.Create(*output)
		if err != nil {
			return &scheduler.IOError{Path: *output, Err: err}
		}
		w = out
		closeOut = func() { out.Close() }
	}
	if closeOut != nil {
		defer closeOut()
	}

	switch sub {
	case "competitors-by-club":
		rows := reports.CompetitorsByClub(parsed.Athletes)
		return reports.WriteCompetitorsByClub(w, rows)
	case "tyrving-csv":
		rows := reports.TyrvingRows(parsed.Athletes, "")
		return reports.WriteTyrvingCSV(w, rows)
	case "start-lists":
		roster := &scheduler.Roster{
			Athletes:    parsed.Athletes,
			EventGroups: scheduler.FormEventGroups(parsed.Athletes, parsed.Events, log),
		}
		cfg := scheduler.Config{
			MaxTimeSlots:        240 / scheduler.DefaultSlotDurationMinutes,
			SlotDurationMinutes: scheduler.DefaultSlotDurationMinutes,
			VenueConfig:         scheduler.DefaultVenueResolutionConfig,
		}
		result := scheduler.Solve(roster, cfg, log)
		if result.Status != scheduler.StatusSolved {
			return &scheduler.UnsolvableError{Reason: string(result.FailureReason)}
		}
		groups, err := reports.StartListRows(context.Background(), result, parsed.Athletes)
		if err != nil {
			return err
		}
		for _, g := range groups {
			for _, e := range g {
				fmt.Fprintf(w, "%s,%s,lane %d,%s,%s\n", e.GroupID, e.Event, e.Lane, e.Name, e.Club)
			}
		}
		return nil
	case "competition-manager":
		roster := &scheduler.Roster{
			Athletes:    parsed.Athletes,
			EventGroups: scheduler.FormEventGroups(parsed.Athletes, parsed.Events, log),
		}
		cfg := scheduler.Config{
			MaxTimeSlots:        240 / scheduler.DefaultSlotDurationMinutes,
			SlotDurationMinutes: scheduler.DefaultSlotDurationMinutes,
			VenueConfig:         scheduler.DefaultVenueResolutionConfig,
		}
		result := scheduler.Solve(roster, cfg, log)
		if result.Status != scheduler.StatusSolved {
			return &scheduler.UnsolvableError{Reason: string(result.FailureReason)}
		}
		rows, err := reports.CompetitionManagerRows(result, *startHour, *startMinute)
		if err != nil {
			return err
		}
		return reports.WriteCompetitionManagerCSV(w, rows)
	case "field-cards":
		return fmt.Errorf("reports field-cards: PDF rendering is out of scope for this module")
	default:
		return fmt.Errorf("reports: unknown subcommand %q", sub)
	}
}

// admin only implements the test-login credential check; the remote
// automation itself is out-of-core (§1).
func cmdAdmin(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("admin: subcommand required (test-login)")
	}
	switch args[0] {
	case "test-login":
		cfg := admin.LoadConfig()
		session := admin.NewSession(cfg)
		if err := session.Login(); err != nil {
			return err
		}
		colorPrintf("[green]login successful[reset]\n")
		return nil
	default:
		return fmt.Errorf("admin: unknown subcommand %q", args[0])
	}
}
