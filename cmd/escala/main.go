package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"escala/internal"
	"escala/internal/config"
	"escala/internal/llm"
	"escala/internal/pdftext"
	"escala/internal/pipeline"
	"escala/internal/storage"
	"escala/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "parse":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		target := fs.String("target", "", "name or registration to search for")
		out := fs.String("out", "", "optional output xlsx path")
		templatePath := fs.String("template", cfg.TemplatePath, "roster template toml override")
		noManual := fs.Bool("no-manual", false, "do not merge stored manual entries")
		_ = fs.Parse(os.Args[2:])
		files := fs.Args()
		if strings.TrimSpace(*target) == "" || len(files) == 0 {
			must(fmt.Errorf("--target and at least one roster file are required"))
		}

		tpl := pipeline.DefaultTemplate()
		if strings.TrimSpace(*templatePath) != "" {
			tpl, err = pipeline.LoadTemplate(*templatePath)
			must(err)
		}

		parser := pipeline.NewParser(pdftext.Opener{}, tpl)
		result, err := parser.ParseFiles(files, *target)
		must(err)

		view := result
		if !*noManual {
			manual, err := db.ListManualShifts()
			must(err)
			view = pipeline.MergeManual(result, manual)
		}

		report := pipeline.BuildReport(view, cfg.MonthlyGoalHours)
		printReport(view, report, cfg.MonthlyGoalHours)

		shiftCount := 0
		totalHours := 0.0
		for _, month := range report {
			shiftCount += len(month.Shifts)
			totalHours += month.TotalHours
		}
		_ = db.InsertRun(traceID(), view.TargetSearch, len(files), len(report), shiftCount, totalHours)

		if strings.TrimSpace(*out) != "" {
			must(pipeline.ExportResultToXLSX(view, cfg.MonthlyGoalHours, *out))
			fmt.Printf("exported report to %s\n", *out)
		}
	case "manual:add":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		date := fs.String("date", "", "date DD/MM/YYYY")
		hours := fs.Float64("hours", 0, "hour amount")
		start := fs.String("start", "", "optional start HH:MM")
		end := fs.String("end", "", "optional end HH:MM")
		desc := fs.String("desc", "", "optional description")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*date) == "" || *hours <= 0 {
			must(fmt.Errorf("--date and a positive --hours are required"))
		}
		shift := internal.Shift{
			ID:          uuid.NewString(),
			Date:        strings.TrimSpace(*date),
			StartTime:   strings.TrimSpace(*start),
			EndTime:     strings.TrimSpace(*end),
			Hours:       *hours,
			Description: strings.TrimSpace(*desc),
			IsManual:    true,
		}
		must(db.InsertManualShift(shift))
		fmt.Printf("manual entry added id=%s date=%s hours=%s\n", shift.ID, shift.Date, util.FormatHours(shift.Hours))
	case "manual:list":
		manual, err := db.ListManualShifts()
		must(err)
		if len(manual) == 0 {
			fmt.Println("no manual entries")
			return
		}
		for _, s := range manual {
			window := ""
			if s.StartTime != "" || s.EndTime != "" {
				window = fmt.Sprintf(" %s-%s", s.StartTime, s.EndTime)
			}
			fmt.Printf("%s  %s%s  %s  %s\n", s.ID, s.Date, window, util.FormatHours(s.Hours), s.Description)
		}
	case "manual:remove":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "manual entry id")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*id) == "" {
			must(fmt.Errorf("--id is required"))
		}
		removed, err := db.DeleteManualShift(strings.TrimSpace(*id))
		must(err)
		if !removed {
			must(fmt.Errorf("no manual entry with id=%s", *id))
		}
		fmt.Println("manual entry removed")
	case "llm:analyze":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		file := fs.String("file", "", "roster pdf path")
		target := fs.String("target", "", "name to search for")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*file) == "" || strings.TrimSpace(*target) == "" {
			must(fmt.Errorf("--file and --target are required"))
		}
		must(cfg.Require("GEMINI_API_KEY", cfg.GeminiAPIKey))

		data, err := os.ReadFile(*file)
		must(err)

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		analyzer := llm.NewAnalyzer(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.MonthlyGoalHours)
		summary, err := analyzer.AnalyzeRosterPDF(ctx, data, *target)
		must(err)
		printSummary(summary)
	default:
		usage()
		os.Exit(1)
	}
}

func printReport(view *internal.ProcessResult, report []pipeline.MonthReport, goal float64) {
	if view.DetectedName != "" {
		fmt.Printf("detected name: %s\n", view.DetectedName)
	}
	if len(report) == 0 {
		fmt.Printf("no shifts found for %q, check the name against the roster\n", view.TargetSearch)
		return
	}

	for _, month := range report {
		status := "credit"
		if month.Balance < 0 {
			status = "debit"
		}
		fmt.Printf("%s  worked=%s  goal=%s  balance=%s (%s)  shifts=%d\n",
			month.MonthYear,
			util.FormatHours(month.TotalHours),
			util.FormatHours(goal),
			util.FormatHours(month.Balance),
			status,
			len(month.Shifts))
		for _, shift := range month.Shifts {
			source := shift.FileName
			if shift.IsManual {
				source = "manual"
				if shift.Description != "" {
					source = "manual: " + shift.Description
				}
			}
			window := ""
			if shift.StartTime != "" || shift.EndTime != "" {
				window = fmt.Sprintf(" %s-%s", shift.StartTime, shift.EndTime)
			}
			fmt.Printf("  %s%s  %s  [%s]\n", shift.Date, window, util.FormatHours(shift.Hours), source)
		}
	}
}

func printSummary(summary internal.AnalysisSummary) {
	fmt.Printf("person: %s\n", summary.PersonName)
	for _, s := range summary.Shifts {
		desc := ""
		if s.Description != "" {
			desc = "  " + s.Description
		}
		fmt.Printf("  %s %s-%s  %s%s\n", s.Date, s.StartTime, s.EndTime, util.FormatHours(s.HoursWorked), desc)
	}
	fmt.Printf("total=%s goal=%s balance=%s\n",
		util.FormatHours(summary.TotalHours),
		util.FormatHours(summary.MonthlyGoal),
		util.FormatHours(summary.Balance))
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}

func usage() {
	fmt.Println("usage: escala <command>")
	fmt.Println("commands:")
	fmt.Println("  parse --target=NAME [--out=report.xlsx] [--template=tpl.toml] [--no-manual] FILES...")
	fmt.Println("  manual:add --date=DD/MM/YYYY --hours=N [--start=HH:MM --end=HH:MM] [--desc=...]")
	fmt.Println("  manual:list")
	fmt.Println("  manual:remove --id=UUID")
	fmt.Println("  llm:analyze --file=roster.pdf --target=NAME")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
