package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eiannone/keyboard"
	"github.com/rs/zerolog"
	log "github.com/rs/zerolog/log"
)

var cfg struct {
	LogLevel  string
	LogFile   string
	Backend   string
	AudioSink string
	UI        bool
	Out       string
	Seconds   float64
	Note      int
	Pedal     string
	RadioIP   string
	Station   string
	Beacon    string
	WPM       int
}

func init() {
	flag.StringVar(&cfg.LogLevel, "log-level", "info", "minimum level of messages to log to console")
	flag.StringVar(&cfg.LogFile, "log-file", "", "file to log to while the UI is up")
	flag.StringVar(&cfg.Backend, "backend", "pulse", "audio backend: pulse or oto")
	flag.StringVar(&cfg.AudioSink, "sink", "default", "pulse sink to play to")
	flag.BoolVar(&cfg.UI, "ui", false, "run the full-screen UI")
	flag.StringVar(&cfg.Out, "out", "", "render to this WAV file instead of playing")
	flag.Float64Var(&cfg.Seconds, "seconds", 1, "length of the -out render")
	flag.IntVar(&cfg.Note, "note", noteA4, "starting MIDI note")
	flag.StringVar(&cfg.Pedal, "pedal", "", "serial device with reset/cycle pedals")
	flag.StringVar(&cfg.RadioIP, "radio", "", "follow the CW pitch of this radio (IP or discovery spec)")
	flag.StringVar(&cfg.Station, "station", "Flex", "station name to bind to with -radio")
	flag.StringVar(&cfg.Beacon, "beacon", "", "key the voice with this text in morse")
	flag.IntVar(&cfg.WPM, "wpm", 20, "beacon speed")
}

func setupLogging(w io.Writer) {
	log.Logger = zerolog.New(
		zerolog.ConsoleWriter{
			Out: w,
		},
	).With().Timestamp().Logger()

	logLevel, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatal().Str("level", cfg.LogLevel).Msg("Unknown log level")
	}
	zerolog.SetGlobalLevel(logLevel)
}

func openOutput(h *Host) (Output, error) {
	switch cfg.Backend {
	case "oto":
		return NewOtoOutput(h)
	default:
		return NewPulseOutput(h, cfg.AudioSink)
	}
}

func main() {
	flag.Parse()

	var logOut io.Writer = os.Stderr
	if cfg.UI {
		logOut = io.Discard
		if cfg.LogFile != "" {
			f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				setupLogging(os.Stderr)
				log.Fatal().Err(err).Msg("open log file")
			}
			defer f.Close()
			logOut = f
		}
	}
	setupLogging(logOut)

	host, err := NewHost(DefaultRuntime)
	if err != nil {
		log.Fatal().Err(err).Msg("NewHost failed")
	}
	defer host.Close()
	host.SetPitch(NewPitch(uint8(max(0, min(cfg.Note, 127))), 0))

	if cfg.Out != "" {
		frames := int(cfg.Seconds * SampleRate)
		if err := RenderWavFile(cfg.Out, host, frames); err != nil {
			log.Fatal().Err(err).Str("file", cfg.Out).Msg("render failed")
		}
		log.Info().Str("file", cfg.Out).Int("frames", frames).Msg("rendered")
		return
	}

	out, err := openOutput(host)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("audio output failed")
	}
	defer out.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c
		log.Info().Msg("Exit on SIGINT")
		cancel()
	}()

	if cfg.Pedal != "" {
		pedal, err := NewPedal(cfg.Pedal)
		if err != nil {
			log.Fatal().Err(err).Send()
		}
		defer pedal.Close()
		go HandlePedal(pedal, host)
	}

	if cfg.RadioIP != "" {
		go func() {
			if err := FollowRadio(ctx, cfg.RadioIP, cfg.Station, host); err != nil {
				log.Error().Err(err).Msg("radio follow failed")
			}
		}()
	}

	if cfg.Beacon != "" {
		go NewBeacon(host, cfg.Beacon, cfg.WPM).Run(ctx)
	}

	ctl := NewControls(host)
	if cfg.UI {
		p := tea.NewProgram(NewUI(host, ctl), tea.WithAltScreen(), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("ui")
		}
		return
	}

	runKeyboard(ctx, cancel, ctl)
}

// runKeyboard is the plain terminal front end.
func runKeyboard(ctx context.Context, cancel context.CancelFunc, ctl *Controls) {
	keypresses, err := keyboard.GetKeys(1)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
	defer keyboard.Close()

	log.Info().Msg("entering main loop")

	for {
		select {
		case <-ctx.Done():
			return
		case key := <-keypresses:
			if key.Err != nil {
				log.Error().Err(key.Err).Send()
				cancel()
				continue
			}
			if key.Rune != 0 {
				if key.Rune == 'q' {
					cancel()
				} else {
					ctl.Rune(key.Rune)
				}
				continue
			}
			switch key.Key {
			case keyboard.KeyEsc, keyboard.KeyCtrlC:
				cancel()
			case keyboard.KeyArrowUp:
				ctl.Step(1)
			case keyboard.KeyArrowDown:
				ctl.Step(-1)
			case keyboard.KeyPgup:
				ctl.Step(coarseStep(ctl.Selected()))
			case keyboard.KeyPgdn:
				ctl.Step(-coarseStep(ctl.Selected()))
			}
		}
	}
}
