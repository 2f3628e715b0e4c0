package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap/zapcore"

	"github.com/lkmio/transcoder/config"
	"github.com/lkmio/transcoder/log"
)

func main() {
	configPath := flag.String("config", "./config.json", "application config path")
	inputPath := flag.String("input", "", "input stream descriptor path (JSON); if empty, no stream is published at startup")
	httpAddr := flag.String("http", "0.0.0.0:8090", "diagnostics HTTP server address")
	logPath := flag.String("log", "./logs/transcoderd.log", "log file path")
	flag.Parse()

	log.InitLogger(zapcore.InfoLevel, *logPath, 10, 100, 7, false)

	app, err := config.Load(*configPath)
	if err != nil {
		log.Sugar.Fatalw("failed to load application config", "path", *configPath, "err", err)
	}

	parent := newDemoApp()
	e := newEngine(app, parent)

	if *inputPath != "" {
		inputStream, err := loadInputStream(*inputPath)
		if err != nil {
			log.Sugar.Fatalw("failed to load input stream descriptor", "path", *inputPath, "err", err)
		}
		e.Publish(inputStream)
	}

	go startDiagnosticsServer(*httpAddr, e, parent)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Sugar.Infow("shutting down")
	e.StopAll()
}
