package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/benbjohnson/clock"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/miniremind/internal/app"
	"github.com/nhle/miniremind/internal/classify"
	"github.com/nhle/miniremind/internal/engine"
	"github.com/nhle/miniremind/internal/model"
	"github.com/nhle/miniremind/internal/notify"
	"github.com/nhle/miniremind/internal/scheduler"
	"github.com/nhle/miniremind/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := configPath()
	cfg, err := model.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = model.DefaultDBPath()
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	args := os.Args[1:]
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	args = stripValueFlag(args, "--config")

	if len(args) == 0 {
		return runTUI(s, cfg, cfgPath)
	}

	switch args[0] {
	case "list":
		return cmdList(s, jsonOutput)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: miniremind add <title> [--at \"YYYY-MM-DD HH:MM\"] [--every <minutes> --from HH:MM --to HH:MM] [--workdays] [--category <name>]")
		}
		return cmdAdd(s, args[1], args[2:], jsonOutput)
	case "complete":
		if len(args) < 2 {
			return fmt.Errorf("usage: miniremind complete <id>")
		}
		return cmdSetCompleted(s, args[1], true, jsonOutput)
	case "reopen":
		if len(args) < 2 {
			return fmt.Errorf("usage: miniremind reopen <id>")
		}
		return cmdSetCompleted(s, args[1], false, jsonOutput)
	case "delete":
		if len(args) < 2 {
			return fmt.Errorf("usage: miniremind delete <id>")
		}
		return cmdDelete(s, args[1], jsonOutput)
	default:
		return fmt.Errorf("unknown command: %s\nUsage: miniremind [list|add|complete|reopen|delete]", args[0])
	}
}

// configPath resolves the config file location from the environment, a
// --config flag, or the default under the user config directory.
func configPath() string {
	if p := os.Getenv("MINIREMIND_CONFIG"); p != "" {
		return p
	}
	for i, a := range os.Args {
		if a == "--config" && i+1 < len(os.Args) {
			return os.Args[i+1]
		}
	}
	return model.DefaultConfigPath()
}

func hasFlag(args []string, flag string) bool {
	for _, a := range args {
		if a == flag {
			return true
		}
	}
	return false
}

func removeFlag(args []string, flag string) []string {
	var result []string
	for _, a := range args {
		if a != flag {
			result = append(result, a)
		}
	}
	return result
}

// stripValueFlag removes a flag and its value argument.
func stripValueFlag(args []string, flag string) []string {
	var result []string
	for i := 0; i < len(args); i++ {
		if args[i] == flag {
			i++
			continue
		}
		result = append(result, args[i])
	}
	return result
}

func runTUI(s store.Store, cfg *model.AppConfig, cfgPath string) error {
	eval := engine.NewEvaluator(time.Duration(cfg.Engine.GraceWindowSec) * time.Second)

	var notifier engine.Notifier = notify.Null{}
	if cfg.Alert.Notify {
		notifier = notify.NewDesktop()
	}
	var player engine.Player = notify.NullPlayer{}
	if cfg.Alert.Sound {
		player = notify.NewExecPlayer()
	}
	arb := engine.NewArbiter(notifier, player, cfg.Alert.DefaultSound)

	sched := scheduler.New(
		s,
		clock.New(),
		eval,
		arb,
		time.Duration(cfg.Engine.TickIntervalSec)*time.Second,
	)
	defer sched.Stop()

	m := app.New(s, cfg, cfgPath, sched)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err := p.Run()
	return err
}

// CLI commands

func cmdList(s store.Store, jsonOut bool) error {
	reminders, err := s.GetReminders(context.Background(), store.ReminderFilter{
		Status:  store.StatusAll,
		SortBy:  "created_at",
		SortAsc: true,
	})
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(reminders)
	}

	if len(reminders) == 0 {
		fmt.Println("No reminders. Run 'miniremind add <title>' to create one.")
		return nil
	}

	now := time.Now()
	for _, r := range reminders {
		status := "○"
		if r.IsCompleted {
			status = "✓"
		}
		display, _ := engine.Project(now, &r)
		fmt.Printf("%s %-36s %-24s [%s] %s\n", status, r.ID, r.Title, r.Category, display)
	}
	return nil
}

func cmdAdd(s store.Store, title string, flags []string, jsonOut bool) error {
	r := model.Reminder{
		Title:    title,
		Category: classify.Classify(title),
		Mode:     model.ModeOnce,
		Priority: model.PriorityMedium,
	}

	// A once reminder ten minutes out unless flags say otherwise.
	due := time.Now().Add(10 * time.Minute).Truncate(time.Minute)
	r.DueAt = &due

	for i := 0; i < len(flags); i++ {
		switch flags[i] {
		case "--at":
			if i+1 >= len(flags) {
				return fmt.Errorf("--at needs a value")
			}
			t, err := time.ParseInLocation("2006-01-02 15:04", flags[i+1], time.Local)
			if err != nil {
				return fmt.Errorf("parsing --at: %w", err)
			}
			utc := t.UTC()
			r.DueAt = &utc
			i++
		case "--every":
			if i+1 >= len(flags) {
				return fmt.Errorf("--every needs a value")
			}
			minutes, err := strconv.Atoi(flags[i+1])
			if err != nil {
				return fmt.Errorf("parsing --every: %w", err)
			}
			r.Mode = model.ModeInterval
			r.DueAt = nil
			r.PeriodMinutes = minutes
			if r.WindowStart == "" {
				r.WindowStart = "09:00"
			}
			if r.WindowEnd == "" {
				r.WindowEnd = "18:00"
			}
			if r.RepeatScope == "" {
				r.RepeatScope = model.RepeatDaily
			}
			i++
		case "--from":
			if i+1 >= len(flags) {
				return fmt.Errorf("--from needs a value")
			}
			r.WindowStart = flags[i+1]
			i++
		case "--to":
			if i+1 >= len(flags) {
				return fmt.Errorf("--to needs a value")
			}
			r.WindowEnd = flags[i+1]
			i++
		case "--workdays":
			r.RepeatScope = model.RepeatWorkdays
		case "--category":
			if i+1 >= len(flags) {
				return fmt.Errorf("--category needs a value")
			}
			r.Category = flags[i+1]
			i++
		default:
			return fmt.Errorf("unknown flag: %s", flags[i])
		}
	}

	created, err := s.CreateReminder(context.Background(), r)
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(created)
	}
	fmt.Printf("Created %s (%s)\n", created.Title, created.ID)
	return nil
}

func cmdSetCompleted(s store.Store, id string, completed bool, jsonOut bool) error {
	if err := s.SetCompleted(context.Background(), id, completed); err != nil {
		return err
	}

	r, err := s.GetReminderByID(context.Background(), id)
	if err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(r)
	}
	state := "reopened"
	if completed {
		state = "completed"
	}
	fmt.Printf("%s: %s\n", r.Title, state)
	return nil
}

func cmdDelete(s store.Store, id string, jsonOut bool) error {
	if err := s.DeleteReminder(context.Background(), id); err != nil {
		return err
	}

	if jsonOut {
		return outputJSON(map[string]string{"deleted": id})
	}
	fmt.Printf("Deleted %s\n", id)
	return nil
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
