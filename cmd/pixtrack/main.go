package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stefanpenner/pixtrack/pkg/activity"
	"github.com/stefanpenner/pixtrack/pkg/app"
	"github.com/stefanpenner/pixtrack/pkg/config"
	"github.com/stefanpenner/pixtrack/pkg/pixela"
	"github.com/stefanpenner/pixtrack/pkg/store"
	gsync "github.com/stefanpenner/pixtrack/pkg/sync"
	"github.com/stefanpenner/pixtrack/pkg/tui"
)

const usage = "Usage: pixtrack [status [date]|track <activity> [date]|login <username> <token>|logout|activities] [--json] [--dir <path>]"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	args := os.Args[1:]
	if dir, rest, ok := takeValue(args, "--dir"); ok {
		cfg.DataDir = dir
		args = rest
	}
	jsonOutput := hasFlag(args, "--json")
	args = removeFlag(args, "--json")
	noRemember := hasFlag(args, "--no-remember")
	args = removeFlag(args, "--no-remember")

	s, err := store.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	if len(args) > 0 && !cfg.Debug {
		log.SetOutput(io.Discard)
	}

	registry, err := activity.Load(s.ActivitiesPath())
	if err != nil {
		log.Printf("activities: %v, using defaults", err)
		registry = activity.Default()
	}

	client := pixela.NewClient(cfg.APIBaseURL, cfg.RequestTimeout)
	engine := gsync.NewEngine(client, registry)
	ctrl := app.NewController(engine, s, app.WithNotifier(app.NewNotifier(cfg.StatusLifetime)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.MetricsAddress != "" {
		go serveMetrics(cfg.MetricsAddress)
	}

	if len(args) == 0 {
		return runTUI(ctx, s, ctrl)
	}

	switch args[0] {
	case "status":
		return cmdStatus(ctx, os.Stdout, ctrl, argAt(args, 1), jsonOutput)
	case "track":
		if len(args) < 2 {
			return fmt.Errorf("usage: pixtrack track <activity> [date]")
		}
		return cmdTrack(ctx, os.Stdout, ctrl, args[1], argAt(args, 2), jsonOutput)
	case "login":
		if len(args) < 3 {
			return fmt.Errorf("usage: pixtrack login <username> <token> [--no-remember]")
		}
		return cmdLogin(ctx, os.Stdout, ctrl, args[1], args[2], !noRemember, jsonOutput)
	case "logout":
		return cmdLogout(os.Stdout, s, jsonOutput)
	case "activities":
		return cmdActivities(os.Stdout, registry, jsonOutput)
	default:
		return fmt.Errorf("unknown command: %s\n%s", args[0], usage)
	}
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
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

// takeValue removes "flag value" from args and returns the value.
func takeValue(args []string, flag string) (string, []string, bool) {
	for i, a := range args {
		if a == flag && i+1 < len(args) {
			rest := append(append([]string{}, args[:i]...), args[i+2:]...)
			return args[i+1], rest, true
		}
	}
	return "", args, false
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("metrics listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("metrics server: %v", err)
	}
}

func runTUI(ctx context.Context, s *store.Store, ctrl *app.Controller) error {
	f, err := tea.LogToFile(s.LogPath(), "pixtrack")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		log.SetOutput(io.Discard)
	} else {
		defer f.Close()
	}

	m := tui.NewModel(ctx, ctrl)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Start file watcher
	cleanup, err := tui.StartWatcher(s.Root, s.CredentialsPath(), p)
	if err != nil {
		log.Printf("file watcher failed: %v", err)
	} else {
		defer cleanup()
	}

	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

// CLI Commands

type activityJSON struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	GraphID string `json:"graph_id"`
	Tracked *bool  `json:"tracked,omitempty"`
	Error   string `json:"error,omitempty"`
}

type statusJSON struct {
	Date       string         `json:"date"`
	Username   string         `json:"username"`
	Activities []activityJSON `json:"activities"`
	Log        []string       `json:"log"`
}

// configured runs the startup flow without its refresh and fails when there
// are no saved credentials.
func configured(ctrl *app.Controller) error {
	ctrl.Start()
	if !ctrl.State().Configured() {
		return fmt.Errorf("not logged in, run: pixtrack login <username> <token>")
	}
	return nil
}

func selectDate(ctx context.Context, ctrl *app.Controller, input string) error {
	if input == "" {
		return app.RunSync(ctx, ctrl, app.ResetDate{})
	}
	return app.RunSync(ctx, ctrl, app.SelectDate{Input: input})
}

func cmdStatus(ctx context.Context, w io.Writer, ctrl *app.Controller, date string, jsonOut bool) error {
	if err := configured(ctrl); err != nil {
		return err
	}
	if err := selectDate(ctx, ctrl, date); err != nil {
		return err
	}
	return printStatus(w, ctrl, jsonOut)
}

func printStatus(w io.Writer, ctrl *app.Controller, jsonOut bool) error {
	st := ctrl.State()
	registry := ctrl.Registry()
	lines, _ := app.RenderLog(st.Tracked, registry)

	if jsonOut {
		out := statusJSON{
			Date:     st.Date.String(),
			Username: st.Credentials.Username,
			Log:      lines,
		}
		for _, def := range registry.All() {
			tracked := st.ButtonTracked(def.Key)
			out.Activities = append(out.Activities, activityJSON{
				Key:     def.Key,
				Name:    def.Name,
				Icon:    def.Icon,
				GraphID: def.GraphID,
				Tracked: &tracked,
				Error:   st.LookupErrors[def.Key],
			})
		}
		return outputJSON(w, out)
	}

	fmt.Fprintf(w, "%s (%s)\n\n", st.Date, st.Credentials.Username)
	for i, def := range registry.All() {
		mark := tui.IconUntracked
		if st.ButtonTracked(def.Key) {
			mark = tui.IconTracked
		}
		line := fmt.Sprintf("%d. %s %s", i+1, mark, def.Label())
		if reason := st.LookupErrors[def.Key]; reason != "" {
			line += "  (" + tui.IconLookupError + " " + reason + ")"
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
	return nil
}

func cmdTrack(ctx context.Context, w io.Writer, ctrl *app.Controller, key, date string, jsonOut bool) error {
	if err := configured(ctrl); err != nil {
		return err
	}
	if date != "" {
		// Move to the date without waiting on its refresh.
		if _, err := ctrl.Dispatch(app.SelectDate{Input: date}); err != nil {
			return err
		}
	}
	if err := app.RunSync(ctx, ctrl, app.TrackActivity{Key: key}); err != nil {
		if errors.Is(err, app.ErrUnknownActivity) {
			return fmt.Errorf("%w (known: %s)", err, strings.Join(ctrl.Registry().Keys(), ", "))
		}
		return err
	}

	msg, _ := ctrl.Notifier().Latest()
	if jsonOut {
		return outputJSON(w, map[string]interface{}{
			"activity": key,
			"date":     ctrl.State().Date.String(),
			"tracked":  true,
			"message":  msg.Text,
		})
	}
	fmt.Fprintln(w, msg.Text)
	return nil
}

func cmdLogin(ctx context.Context, w io.Writer, ctrl *app.Controller, username, token string, remember, jsonOut bool) error {
	ctrl.Start()
	if err := app.RunSync(ctx, ctrl, app.SaveSettings{Username: username, Token: token, Remember: remember}); err != nil {
		return err
	}

	msg, _ := ctrl.Notifier().Latest()
	if jsonOut {
		return outputJSON(w, map[string]interface{}{
			"username":   ctrl.State().Credentials.Username,
			"remembered": ctrl.State().Remembered,
			"message":    msg.Text,
		})
	}
	fmt.Fprintln(w, msg.Text)
	return printStatus(w, ctrl, false)
}

func cmdLogout(w io.Writer, s *store.Store, jsonOut bool) error {
	if err := s.ClearCredentials(); err != nil {
		return err
	}
	if jsonOut {
		return outputJSON(w, map[string]bool{"logged_out": true})
	}
	fmt.Fprintln(w, "Saved credentials removed.")
	return nil
}

func cmdActivities(w io.Writer, registry *activity.Registry, jsonOut bool) error {
	if jsonOut {
		out := make([]activityJSON, 0, registry.Len())
		for _, def := range registry.All() {
			out = append(out, activityJSON{Key: def.Key, Name: def.Name, Icon: def.Icon, GraphID: def.GraphID})
		}
		return outputJSON(w, out)
	}
	for i, def := range registry.All() {
		fmt.Fprintf(w, "%d. %-12s %s  (%s)\n", i+1, def.Key, def.Label(), def.GraphID)
	}
	return nil
}

func outputJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
