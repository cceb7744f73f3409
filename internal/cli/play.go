package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"typedterm/internal/app"
	"typedterm/internal/render"
	"typedterm/internal/scenario"
	"typedterm/internal/terminal"
	"typedterm/internal/typing"
	"typedterm/internal/ui"
)

type playFlags struct {
	scenario    string
	speed       time.Duration
	pause       int
	loop        bool
	keepHistory bool
	plain       bool
}

var pf playFlags

func init() {
	rootCmd.AddCommand(playCmd)
	addPlayFlags(playCmd)
	playCmd.Flags().SetInterspersed(false)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&pf.scenario, "scenario", "s", "", "scenario to play (fuzzy matched)")
	cmd.Flags().DurationVar(&pf.speed, "speed", 0, "delay between characters (default from config)")
	cmd.Flags().IntVar(&pf.pause, "pause", 0, "pause after each command, in characters")
	cmd.Flags().BoolVar(&pf.loop, "loop", false, "restart after the last command")
	cmd.Flags().BoolVar(&pf.keepHistory, "keep-history", false, "keep history when looping")
	cmd.Flags().BoolVar(&pf.plain, "plain", false, "print to stdout instead of opening the TUI")
}

var playCmd = &cobra.Command{
	Use:   "play [scenario | commands...]",
	Short: "Type a scenario or ad-hoc commands into an animated terminal",
	Example: `  typedterm play deploy
  typedterm play "npm install --save react" "npm run dev"
  typedterm play -s dock --loop`,
	RunE: runPlay,
}

// pickScenario resolves what to play: -s, a single argument naming a
// scenario, literal commands, or the configured default.
func pickScenario(list []scenario.Scenario, flag string, args []string, def string) (scenario.Scenario, error) {
	if flag != "" {
		sc, ok := scenario.Find(list, flag)
		if !ok {
			return scenario.Scenario{}, fmt.Errorf("no scenario matches %q", flag)
		}
		return sc, nil
	}
	if len(args) == 1 {
		for _, s := range list {
			if strings.EqualFold(s.Name, args[0]) {
				return s, nil
			}
		}
	}
	if len(args) > 0 {
		return scenario.Adhoc(args...), nil
	}
	if sc, ok := scenario.Find(list, def); ok {
		return sc, nil
	}
	if len(list) == 0 {
		return scenario.Scenario{}, fmt.Errorf("no scenarios configured")
	}
	return list[0], nil
}

// typingOptions overlays the play flags on the configured options.
func (f playFlags) typingOptions(base typing.Options) typing.Options {
	if f.speed > 0 {
		base.CharDelay = f.speed
	}
	if f.pause > 0 {
		base.LinePause = f.pause
	}
	if f.loop {
		base.Loop = true
	}
	if f.keepHistory {
		base.KeepHistory = true
	}
	return base.Normalize()
}

func runPlay(cmd *cobra.Command, args []string) error {
	list := appCfg.AllScenarios()
	sc, err := pickScenario(list, pf.scenario, args, appCfg.Terminal.Scenario)
	if err != nil {
		return err
	}
	opts := pf.typingOptions(appCfg.TypingOptions())

	if pf.plain || !isatty.IsTerminal(os.Stdout.Fd()) {
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		p := render.Probe(lipgloss.DefaultRenderer())
		return playPlain(ctx, cmd.OutOrStdout(), p, sc, opts, typing.NewScheduler(nil))
	}
	return app.Start(ui.Options{
		Mode:       ui.ModeTerminal,
		Scenario:   sc,
		Scenarios:  list,
		Typing:     opts,
		ConfigPath: appCfgPath,
	})
}

// playPlain types sc to w as a stream, without taking over the terminal.
// It returns when the run finishes or ctx is cancelled.
func playPlain(ctx context.Context, w io.Writer, p render.Provider, sc scenario.Scenario, opts typing.Options, sched *typing.Scheduler) error {
	sess := terminal.NewSession(sc.Commands, opts, sched)
	pr := &plainPrinter{w: w, p: p}
	unsubscribe := sess.Subscribe(pr.update)
	defer unsubscribe()

	sess.Mount()
	defer sess.Unmount()

	select {
	case <-sess.Done():
	case <-ctx.Done():
		fmt.Fprintln(w)
	}
	return pr.err
}

// plainPrinter writes the difference between consecutive snapshots. Session
// subscribers are called one at a time, so it needs no lock.
type plainPrinter struct {
	w     io.Writer
	p     render.Provider
	seen  int
	typed string
	err   error
}

func (pr *plainPrinter) write(s string) {
	if pr.err == nil {
		_, pr.err = io.WriteString(pr.w, s)
	}
}

func (pr *plainPrinter) update(s terminal.Snapshot) {
	if len(s.History) < pr.seen {
		// history was cleared by a loop restart
		pr.write("\n")
		pr.seen = 0
	}
	for _, e := range s.History[pr.seen:] {
		switch e.Kind {
		case terminal.EntryCommand:
			if pr.typed == "" {
				pr.write(pr.p.Paint(render.RolePrompt, "$ "))
			}
			pr.write(strings.TrimPrefix(e.Content, pr.typed) + "\n")
			pr.typed = ""
		case terminal.EntryError:
			pr.write(pr.p.Paint(render.RoleError, e.Content) + "\n")
		default:
			pr.write(pr.p.Paint(render.RoleOutput, e.Content) + "\n")
		}
	}
	pr.seen = len(s.History)
	if len(s.Buffer) > len(pr.typed) && strings.HasPrefix(s.Buffer, pr.typed) {
		if pr.typed == "" {
			pr.write(pr.p.Paint(render.RolePrompt, "$ "))
		}
		pr.write(s.Buffer[len(pr.typed):])
		pr.typed = s.Buffer
	}
}
