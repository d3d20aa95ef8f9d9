package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zllovesuki/OverlayManager/config"
	"github.com/zllovesuki/OverlayManager/controller"
	"github.com/zllovesuki/OverlayManager/overlay"
	"github.com/zllovesuki/OverlayManager/supervisor"
	"github.com/zllovesuki/OverlayManager/system/display"
	"github.com/zllovesuki/OverlayManager/system/display/window"
	"github.com/zllovesuki/OverlayManager/system/persist"
	"github.com/zllovesuki/OverlayManager/system/remote"
	"github.com/zllovesuki/OverlayManager/system/surface"
	"github.com/zllovesuki/OverlayManager/system/timer"
	"github.com/zllovesuki/OverlayManager/util"

	"github.com/gdamore/tcell/v2"
	suture "github.com/thejerf/suture/v4"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Compile time injected variables
var (
	Version     = "v0.0.0-dev"
	IsDebug     = "yes"
	logLocation = `/var/log/OverlayManager.log`
)

func main() {
	var (
		sinks      util.ArrayFlags
		configPath = flag.String("config", "overlay.yaml", "path to the configuration file")
		fullscreen = flag.Bool("fullscreen", false, "open the SDL window full screen")
		statsAddr  = flag.String("statsview", "", "serve runtime statistics at this address, e.g. localhost:18066")
		version    = flag.Bool("version", false, "print the version and exit")
	)
	flag.Var(&sinks, "sink", "display sink, repeatable: sdl or terminal (overrides display.sinks)")
	flag.Parse()

	if *version {
		fmt.Println(Version)
		return
	}

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[supervisor] cannot load configuration: %+v\n", err)
	}
	if len(sinks) > 0 {
		conf.Display.Sinks = sinks
	}
	if conf.Log.Path == "" {
		conf.Log.Path = logLocation
	}

	terminal := false
	for _, s := range conf.Display.Sinks {
		if s == config.SinkTerminal {
			terminal = true
		}
	}

	// the terminal preview owns stderr, so logs go to the file like a release build
	if IsDebug == "no" || terminal {
		log.SetOutput(&lumberjack.Logger{
			Filename:   conf.Log.Path,
			MaxSize:    conf.Log.MaxSize,
			MaxBackups: conf.Log.MaxBackups,
			MaxAge:     conf.Log.MaxAge,
			Compress:   conf.Log.Compress,
		})
	}

	log.Printf("OverlayManager version: %s\n", Version)

	dryRun := os.Getenv("DRY_RUN") != ""

	var (
		sf     surface.Surface
		raster *surface.Raster
		state  persist.ConfigRegistry
	)
	if dryRun {
		sf = surface.NewDryRecorder(conf.Display.Width, conf.Display.Height)
		state, err = persist.NewDryRegistryHelper(conf.StatePath)
	} else {
		raster, err = surface.NewRaster(conf.Raster())
		if err != nil {
			log.Fatalf("[supervisor] cannot initialize the surface: %+v\n", err)
		}
		sf = raster
		state, err = persist.NewFileHelper(conf.StatePath)
	}
	if err != nil {
		log.Fatalf("[supervisor] cannot initialize the state file: %+v\n", err)
	}

	manager, err := overlay.New(overlay.Config{
		Surface:   sf,
		Scheduler: timer.NewScheduler(),
		Timeouts:  conf.OverlayTimeouts(),
	})
	if err != nil {
		log.Fatalf("[supervisor] cannot create overlay manager: %+v\n", err)
	}

	control, err := controller.New(controller.Config{
		Overlay:       manager,
		Registry:      state,
		Lineup:        conf.ChannelLineup(),
		InitialVolume: conf.Controller.InitialVolume,
		DigitDelay:    conf.Controller.DigitDelay,
		VolumeStep:    conf.Controller.VolumeStep,
	})
	if err != nil {
		log.Fatalf("[supervisor] cannot create controller: %+v\n", err)
	}

	grpcServer, err := supervisor.NewGRPCServer(supervisor.GRPCRunConfig{
		Address: conf.GRPCAddress,
		Version: Version,
		Overlay: manager,
		Tuner:   control,
		Keys:    control,
	})
	if err != nil {
		log.Fatalf("[supervisor] cannot create gRPCServer: %+v\n", err)
	}

	evtHook := &supervisor.EventHook{}

	ctx, cancel := context.WithCancel(context.Background())

	/*
		How the supervisor tree is structured:
			OverlayManager:	overlay
			Controller:		controller
			gRPCServer:		supervisor/grpc.go
			HidListener:	system/remote
			SDLWindow:		system/display/window
			TerminalSink:	system/display

								rootSupervisor  +----+  externalWeb
									+    +      +
									|    |      +---->  statsView (optional)
									|    |
				overlaySupervisor  +---+    +---+   inputSupervisor
				+ + +                            + +
				| | |                            | |
				| | +-> gRPCServer               | +-> HidListener
				| |                              |
				| +---> Controller               +---> SDLWindow / TerminalSink
				|
				+-----> OverlayManager

		The OverlayManager can only be served once. When its surface fails it
		terminates the whole tree instead of being restarted on a broken display.
	*/

	overlaySupervisor := suture.New("overlaySupervisor", suture.Spec{})
	overlaySupervisor.Add(manager)
	overlaySupervisor.Add(control)
	overlaySupervisor.Add(grpcServer)

	inputSupervisor := suture.New("inputSupervisor", suture.Spec{})
	if hid, enabled := conf.Hid(); enabled {
		inputSupervisor.Add(remote.NewHidListener(hid, control.KeyCh()))
	}
	for _, s := range conf.Display.Sinks {
		if raster == nil {
			log.Printf("[supervisor] dry run: ignoring %s sink\n", s)
			continue
		}
		switch s {
		case config.SinkSDL:
			w, err := window.New(window.Config{
				Width:      conf.Display.Width,
				Height:     conf.Display.Height,
				Fullscreen: *fullscreen,
				Keys:       control.KeyCh(),
			})
			if err != nil {
				log.Fatalf("[supervisor] cannot create window: %+v\n", err)
			}
			raster.AddSink(w)
			inputSupervisor.Add(w)
		case config.SinkTerminal:
			screen, err := tcell.NewScreen()
			if err != nil {
				log.Fatalf("[supervisor] cannot open terminal: %+v\n", err)
			}
			t := display.NewTerminal(screen, control.KeyCh())
			raster.AddSink(t)
			inputSupervisor.Add(t)
		}
	}

	rootSupervisor := suture.New("Supervisor", suture.Spec{
		EventHook: evtHook.Event,
	})
	rootSupervisor.Add(overlaySupervisor)
	rootSupervisor.Add(inputSupervisor)
	if conf.WebAddress != "" {
		rootSupervisor.Add(NewWeb(webConfig{
			Address:   conf.WebAddress,
			Handler:   grpcServer.GetWebHandler(),
			Raster:    raster,
			LogPath:   conf.Log.Path,
			LogToFile: IsDebug == "no" || terminal,
			Crashes:   evtHook.Crashes,
		}))
	}
	if *statsAddr != "" {
		rootSupervisor.Add(newStatsView(*statsAddr))
	}

	sigc := make(chan os.Signal, 1)

	go func() {
		supervisorErr := rootSupervisor.Serve(ctx)
		if supervisorErr != nil {
			log.Printf("[supervisor] rootSupervisor returns error: %+v\n", supervisorErr)
			if err := manager.Err(); err != nil {
				log.Printf("[supervisor] overlay stopped on: %+v\n", err)
			}
			sigc <- syscall.SIGTERM
		}
	}()

	signal.Notify(
		sigc,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)

	sig := <-sigc
	log.Printf("[supervisor] signal received: %+v\n", sig)

	cancel()
	select {
	case <-manager.Done():
	case <-time.After(time.Second): // 1 second for grace period
	}
	if err := sf.Close(); err != nil {
		log.Printf("[supervisor] error closing surface: %+v\n", err)
	}
}
