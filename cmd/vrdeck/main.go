package main

import (
	"flag"
	"os"

	vrdeck "github.com/vrdeck/vrdeck"
	"github.com/vrdeck/vrdeck/app"
	"github.com/vrdeck/vrdeck/config"
	"github.com/vrdeck/vrdeck/tray"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the JSON config file")
	source := flag.String("source", "", "override the frame source (blank, pattern)")
	fps := flag.Int("fps", 0, "override the target frame rate")
	logPath := flag.String("log", "", "write the log to this file instead of the console")
	debug := flag.Bool("debug", false, "enable debug logging")
	noTray := flag.Bool("no-tray", false, "run without the system tray menu")
	flag.Parse()

	var log vrdeck.Logger
	if *logPath != "" {
		fileLog, err := vrdeck.NewFileLogger(*logPath, "vrdeck", *debug)
		if err != nil {
			vrdeck.NewDefaultLogger("vrdeck", false).Errorf("open log file: %v", err)
			os.Exit(1)
		}
		log = fileLog
	} else {
		log = vrdeck.NewDefaultLogger("vrdeck", *debug)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Errorf("load config: %v", err)
		os.Exit(1)
	}
	if *source != "" {
		cfg.Source = *source
	}
	if *fps > 0 {
		cfg.TargetFPS = *fps
	}
	cfg.Normalize()

	if *noTray {
		os.Exit(runApp(log, cfg, *configPath, nil))
	}

	// The tray owns the main goroutine (it needs the main thread on some
	// platforms); the render loop runs on its own locked OS thread.
	menu := tray.NewMenu(log)
	status := 0
	go func() {
		status = runApp(log, cfg, *configPath, menu.Commands())
		menu.Quit()
	}()
	menu.Run(func() {})
	os.Exit(status)
}

func runApp(log vrdeck.Logger, cfg config.Config, configPath string, commands <-chan tray.Command) int {
	a, err := app.New(app.Options{
		Config:     cfg,
		ConfigPath: configPath,
		Commands:   commands,
		Log:        log,
	})
	if err != nil {
		log.Errorf("startup: %v", err)
		return 1
	}
	defer a.Close()

	if err := a.Run(); err != nil {
		log.Errorf("render loop: %v", err)
		return 1
	}
	return 0
}
