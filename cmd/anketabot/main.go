package main

import (
	"log"

	"github.com/m3rciful/anketabot/core/bootstrap"
	corecmd "github.com/m3rciful/anketabot/core/cmd"
	coreconfig "github.com/m3rciful/anketabot/core/config"
	"github.com/m3rciful/anketabot/internal/app"
)

type configCarrier struct {
	cfg *coreconfig.Config
}

func (c configCarrier) CoreConfig() *coreconfig.Config {
	return c.cfg
}

func main() {
	err := corecmd.Run(corecmd.Options{
		DefaultConfigPath: "configs/config.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			cfg, err := coreconfig.Load(path)
			if err != nil {
				return nil, err
			}
			return configCarrier{cfg: cfg}, nil
		},
		Bootstrap: func(carrier corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			cfg := carrier.CoreConfig()
			if err := bootstrap.Run(bootstrap.Options{Config: cfg}); err != nil {
				return nil, err
			}
			return app.New(cfg)
		},
	})
	if err != nil {
		log.Fatalf("anketabot: %v", err)
	}
}
