package main

import (
	"os"

	"github.com/DRSN-tech/grocery-merchant/internal/app"
	config "github.com/DRSN-tech/grocery-merchant/internal/cfg"
	"github.com/DRSN-tech/grocery-merchant/pkg/logger"
	"github.com/spf13/pflag"
)

//	@title			Grocery Merchant API
//	@version		1.0
//	@description	Инструменты голосового ассистента: поиск товаров, предпочтения и заказы.
//	@BasePath		/api/v1
func main() {
	envFile := pflag.String("env", ".env", "path to .env file")
	pflag.Parse()

	bootLog := logger.NewSlogLogger()

	if err := config.LoadDotEnv(*envFile); err != nil {
		bootLog.Errorf(err, "failed to load env file")
		os.Exit(1)
	}

	cfg, err := config.Load(bootLog)
	if err != nil {
		bootLog.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	log := logger.New(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
