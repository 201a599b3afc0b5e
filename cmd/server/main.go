package main

import (
	"flag"
	"fmt"
	"os"
	"syscall"

	"github.com/orders-next/internal/app"
	"github.com/orders-next/internal/config"
	"github.com/orders-next/internal/logger"
	"github.com/orders-next/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset = "\033[0m"
	ansiBold  = "\033[1m"
	ansiDim   = "\033[2m"
	ansiGreen = "\033[32m"
	ansiCyan  = "\033[36m"
)

func main() {
	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	if err := models.SeedStatuses(); err != nil {
		stdLog.Fatalf("status seed failed: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	var mode string
	flag.StringVar(&mode, "mode", app.ModeAll, "run mode: all (default), api, worker")
	flag.Parse()

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    mode,
	}); err != nil {
		stdLog.Fatalf("service run failed: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiCyan + " ██████╗ ██████╗ ██████╗ ███████╗██████╗ ███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔═══██╗██╔══██╗██╔══██╗██╔════╝██╔══██╗██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + "██║   ██║██████╔╝██║  ██║█████╗  ██████╔╝███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██║   ██║██╔══██╗██║  ██║██╔══╝  ██╔══██╗╚════██║" + ansiReset)
	fmt.Println(ansiCyan + "╚██████╔╝██║  ██║██████╔╝███████╗██║  ██║███████║" + ansiReset)
	fmt.Println(ansiCyan + " ╚═════╝ ╚═╝  ╚═╝╚═════╝ ╚══════╝╚═╝  ╚═╝╚══════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Orders API" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------" + ansiReset)
}
