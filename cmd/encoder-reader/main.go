// Command encoder-reader decodes a rotary encoder, its push switch and a NEXT
// button from GPIO and writes one event name per line to stdout.
// The status LED is lit for as long as the process runs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sweeney/encoder-reader/internal/config"
	"github.com/sweeney/encoder-reader/internal/emit"
	"github.com/sweeney/encoder-reader/internal/gpio"
	"github.com/sweeney/encoder-reader/internal/lifecycle"
	"github.com/sweeney/encoder-reader/internal/logic"
)

func main() {
	cfgFile := flag.String("cfg", "", "YAML tuning file (optional)")
	poll := flag.Duration("poll", config.DefaultPoll, "GPIO polling interval")
	nextDebounce := flag.Duration("next-debounce", logic.DefaultNextDebounce, "Minimum spacing between BTN_NEXT events")
	heartbeat := flag.Duration("heartbeat", 0, "Heartbeat log interval (0 to disable)")
	printState := flag.Bool("print-state", false, "Print current input levels and exit")

	flag.Parse()

	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	cfg, err := resolveConfig(*cfgFile, set, *poll, *nextDebounce, *heartbeat)
	if err != nil {
		log.Fatalf("fatal: %v", err)
	}

	if err := run(cfg, *printState); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}

// resolveConfig applies the tuning file, if any, then every flag given on
// the command line.
func resolveConfig(path string, set map[string]bool, poll, nextDebounce, heartbeat time.Duration) (config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return cfg, err
		}
	}

	if path == "" || set["poll"] {
		cfg.Poll = poll
	}
	if path == "" || set["next-debounce"] {
		cfg.NextDebounce = nextDebounce
	}
	if path == "" || set["heartbeat"] {
		cfg.Heartbeat = heartbeat
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func run(cfg config.Config, printState bool) error {
	ignoreBrokenPipe()

	guard := lifecycle.New()
	guard.Watch(syscall.SIGINT, syscall.SIGTERM)
	defer func() {
		if err := guard.Shutdown(); err != nil {
			log.Printf("release gpio: %v", err)
		}
	}()

	lines, err := gpio.NewRealLines(gpio.DefaultMap)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	if err := start(guard, lines); err != nil {
		return err
	}

	if printState {
		return printLevels(lines, os.Stdout)
	}

	m := gpio.DefaultMap
	log.Printf("started: poll=%v next-debounce=%v heartbeat=%v chip=%s clk=%d dt=%d sw=%d next=%d led=%d",
		cfg.Poll, cfg.NextDebounce, cfg.Heartbeat, m.Chip, m.CLK, m.DT, m.SW, m.NEXT, m.LED)

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	err = runLoop(lines, emit.NewWriter(os.Stdout), cfg.NextDebounce, cfg.Heartbeat, time.Now, ticker.C, guard.Stopping)
	if err != nil {
		guard.RequestStop()
	}
	if s := guard.Signal(); s != nil {
		log.Printf("received %v, shutting down", s)
	}
	return err
}

// ignoreBrokenPipe makes a write to a closed stdout fail with EPIPE instead
// of killing the process, so the emit error path still runs teardown.
func ignoreBrokenPipe() {
	signal.Ignore(syscall.SIGPIPE)
}

// start hands lines to the guard for release, moves it to Running and
// drives the status LED on.
func start(guard *lifecycle.Guard, lines gpio.Lines) error {
	guard.Adopt(lines)
	if err := guard.Start(); err != nil {
		return err
	}
	if err := lines.SetStatus(true); err != nil {
		return fmt.Errorf("assert status line: %w", err)
	}
	return nil
}

func printLevels(lines gpio.Lines, w io.Writer) error {
	var s gpio.Sample
	if err := lines.Read(&s); err != nil {
		return fmt.Errorf("read gpio: %w", err)
	}
	_, err := fmt.Fprintln(w, s)
	return err
}

// runLoop samples the inputs on every tick until stopping reports true or
// tick is closed. The stop flag is checked once per tick, so shutdown is
// seen within one polling interval. Read and emit failures end the loop
// with an error.
func runLoop(lines gpio.Lines, emitter emit.Emitter, nextDebounce, heartbeat time.Duration, now func() time.Time, tick <-chan time.Time, stopping func() bool) error {
	decoder := logic.NewDecoder(nextDebounce, now())

	var s gpio.Sample
	sample := func() error {
		if err := lines.Read(&s); err != nil {
			return fmt.Errorf("gpio read: %w", err)
		}
		t := now()

		events := decoder.Process(logic.Input{
			CLK:  s.CLK,
			DT:   s.DT,
			SW:   s.SW,
			NEXT: s.NEXT,
			Time: t,
		})

		for _, event := range events {
			if err := emitter.Emit(event); err != nil {
				return fmt.Errorf("emit: %w", err)
			}
		}

		if hb := decoder.CheckHeartbeat(t, heartbeat); hb != nil {
			c := hb.Counts
			log.Printf("heartbeat: uptime=%v cw=%d ccw=%d press=%d release=%d next=%d",
				hb.Uptime.Truncate(time.Second), c.CW, c.CCW, c.Press, c.Release, c.Next)
		}
		return nil
	}

	// Starting levels: a line already low now is not an edge.
	if err := sample(); err != nil {
		return err
	}

	var err error
	for {
		if _, ok := <-tick; !ok {
			break
		}
		if stopping() {
			break
		}
		if err = sample(); err != nil {
			break
		}
	}

	c := decoder.EventCountsSnapshot()
	log.Printf("stopped: cw=%d ccw=%d press=%d release=%d next=%d", c.CW, c.CCW, c.Press, c.Release, c.Next)
	return err
}
