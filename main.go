package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/nickysemenza/gola"
	"github.com/sirupsen/logrus"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"k8s.io/utils/clock"

	"github.com/robmorgan/lumen/config"
	"github.com/robmorgan/lumen/console"
	"github.com/robmorgan/lumen/cuelist"
	"github.com/robmorgan/lumen/fixture"
	"github.com/robmorgan/lumen/logger"
	"github.com/robmorgan/lumen/monitor"
	"github.com/robmorgan/lumen/osctrigger"
	"github.com/robmorgan/lumen/show"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	flag.Parse()

	ctx := context.Background()
	if err := Run(ctx, *configPath); err != nil {
		logger.GetProjectLogger().Fatalf("lumen exited with error: %v", err)
	}
}

// Run starts the cue engine and every configured input and output, then blocks until the console quits or the
// process is interrupted.
func Run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// initialize the global config
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Console && cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	// initialize the logger
	logger := logger.GetProjectLogger()
	logger.WithFields(logrus.Fields{"config": configPath, "fps": cfg.FPS}).Info("Initialized config")

	wg := sync.WaitGroup{}
	clk := clock.RealClock{}

	// load the show
	logger.Info("Loading show...")
	cl, err := show.Load(cfg.ShowPath, clk)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Warnf("show %s not found, starting with the demo show", cfg.ShowPath)
		cl, err = loveSensationShow(clk)
	}
	if err != nil {
		return err
	}

	// init cue master
	logger.Info("Initializing cue list master...")
	master := cuelist.InitializeMaster(clk, cl, cfg.FPS)
	defer saveShow(master, cfg.ShowPath)

	// initialize the fixtures
	logger.Info("Initializing fixtures...")
	fg, err := fixture.NewGroupFromPatch(cfg.Patch, cfg.Effects)
	if err != nil {
		return fmt.Errorf("patching fixtures: %w", err)
	}
	dmx := fixture.NewDMXState()
	sinks := []cuelist.Sink{fixture.NewOutput(fg, dmx)}

	// configure OLA for DMX output
	if cfg.OLAAddress != "" {
		logger.Info("Connecting to OLA...")
		client, err := gola.New(cfg.OLAAddress)
		if err != nil {
			logger.Errorf("could not connect to OLA: %v", err)
		} else {
			wg.Add(1)
			go func() {
				err := fixture.SendDMXWorker(ctx, client, clk, cfg.DMXTick, dmx, &wg)
				if err != nil && !errors.Is(err, context.Canceled) {
					logger.Errorf("DMX worker stopped: %v", err)
				}
			}()
		}
	}

	// state monitor
	if cfg.MonitorAddress != "" {
		hub := monitor.NewHub(clk, master)
		sinks = append(sinks, hub)
		startMonitor(ctx, &wg, cfg.MonitorAddress, hub)
	}

	// OSC input
	if cfg.OSCAddress != "" {
		if err := startOSC(ctx, &wg, cfg.OSCAddress, master); err != nil {
			logger.Errorf("could not start OSC server: %v", err)
		}
	}

	// MIDI input
	if cfg.MIDIInPort != "" {
		defer midi.CloseDriver()
		stop, err := listenMIDI(cfg.MIDIInPort, master)
		if err != nil {
			logger.Errorf("could not open MIDI input: %v", err)
		} else {
			defer stop()
		}
	}

	// process cues forever
	logger.Info("Processing cues forever...")
	master.ProcessForever(ctx, &wg, sinks...)

	if cfg.Console {
		if err := console.Run(ctx, master); err != nil {
			logger.Errorf("console exited: %v", err)
		}
	} else {
		// handle CTRL+C interrupt
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
	}

	logger.Info("shutting down lumen")
	cancel()
	wg.Wait()
	return nil
}

// saveShow writes the cue list back so learned triggers survive a restart.
func saveShow(master *cuelist.Master, path string) {
	err := master.WithCueList(func(cl *cuelist.CueList) error {
		return show.Save(path, cl)
	})
	if err != nil {
		logger.GetProjectLogger().Errorf("could not save show: %v", err)
	}
}

func startMonitor(ctx context.Context, wg *sync.WaitGroup, addr string, hub *monitor.Hub) {
	logger := logger.GetProjectLogger()
	srv := &http.Server{Addr: addr, Handler: hub.Handler(), ReadHeaderTimeout: 5 * time.Second}

	wg.Add(2)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		logger.Infof("Monitor listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("monitor server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

func startOSC(ctx context.Context, wg *sync.WaitGroup, addr string, master *cuelist.Master) error {
	logger := logger.GetProjectLogger()
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return err
	}
	server := osctrigger.NewServer(addr, master)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Infof("OSC listening on %s", addr)
		if err := server.Serve(conn); err != nil && ctx.Err() == nil {
			logger.Errorf("OSC server: %v", err)
		}
	}()
	go func() {
		<-ctx.Done()
		conn.Close()
	}()
	return nil
}

func listenMIDI(portName string, master *cuelist.Master) (func(), error) {
	logger := logger.GetProjectLogger()
	port, err := findInPort(portName)
	if err != nil {
		for _, p := range midi.GetInPorts() {
			logger.Infof("available MIDI input: %s", p)
		}
		return nil, err
	}

	logger.Infof("Listening for MIDI on %s", port)
	return midi.ListenTo(port, func(msg midi.Message, timestampms int32) {
		if _, err := master.HandleMIDI(msg); err != nil {
			logger.Warnf("midi %s: %v", msg, err)
		}
	})
}

func findInPort(substr string) (drivers.In, error) {
	lower := strings.ToLower(substr)
	for _, port := range midi.GetInPorts() {
		if strings.Contains(strings.ToLower(port.String()), lower) {
			return port, nil
		}
	}
	return nil, fmt.Errorf("no MIDI input port matching %q", substr)
}
