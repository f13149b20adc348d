package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/zeromicro/go-zero/rest"

	"livslogg/internal/api"
	"livslogg/internal/cli"
	"livslogg/internal/config"
	"livslogg/internal/svc"
	"livslogg/pkg/confkit"
)

var configFile = flag.String("f", "etc/livslogg.yaml", "the config file")

func main() {
	flag.Parse()
	args := flag.Args()

	confkit.LoadDotenvOnce()

	cfg := loadConfig(*configFile)
	sc := svc.NewServiceContext(*cfg)

	if len(args) > 0 && args[0] == "serve" {
		serve(cfg, sc)
		return
	}

	os.Exit(cli.Run(context.Background(), sc, args, os.Stdout, os.Stderr))
}

// loadConfig loads the YAML config when present; the CLI also works with
// pure defaults so `livslogg log ...` runs without any config file.
func loadConfig(path string) *config.Config {
	if _, err := os.Stat(path); err == nil {
		return config.MustLoad(path)
	}
	cfg := &config.Config{StorePath: "livslogg.csv", TaskPath: "tasks.csv"}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

func serve(cfg *config.Config, sc *svc.ServiceContext) {
	cli.LogConfigSummary(cfg)

	server := rest.MustNewServer(cfg.RestConf)
	defer server.Stop()

	api.RegisterHandlers(server, sc)

	fmt.Printf("Starting server at %s:%d...\n", cfg.Host, cfg.Port)
	server.Start()
}
