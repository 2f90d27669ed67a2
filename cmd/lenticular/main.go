// Lenticular Viewer - interactive preview of zigzag lenticular billboards.
package main

import (
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/rlester7/lenticular-viewer/internal/config"
	"github.com/rlester7/lenticular-viewer/internal/logger"
)

func main() {
	runtime.LockOSThread()

	config.ParseFlags()
	cfg, err := config.Load()
	if err != nil {
		// Logger is not up yet
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	defer logger.Sync()

	app := NewApp(cfg)
	defer app.Close()

	app.Run()

	if err := cfg.Save(); err != nil {
		logger.Warn("failed to save config", zap.Error(err))
	}
}
