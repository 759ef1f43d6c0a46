package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/emzola/biblioteca/config"
	"github.com/emzola/biblioteca/internal/jsonlog"
	"github.com/emzola/biblioteca/migrations"
	"github.com/emzola/biblioteca/repository/postgres"
)

// Usage: migrate [up|down|status|version] [config flags]
func main() {
	logger := jsonlog.New(os.Stdout, jsonlog.LevelInfo)

	command, args := "up", os.Args[1:]
	if len(args) > 0 && args[0] != "" && args[0][0] != '-' {
		command, args = args[0], args[1:]
	}

	cfg, err := config.Load(args)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	if cfg.Storage.Driver != config.DriverPostgres {
		logger.PrintFatal(fmt.Errorf("migrations require the %s storage driver", config.DriverPostgres), nil)
	}

	db, err := postgres.OpenDBConn(cfg)
	if err != nil {
		logger.PrintFatal(err, nil)
	}
	defer db.Close()

	switch command {
	case "up":
		err = migrations.Up(db)
	case "down":
		err = migrations.Down(db)
	case "status":
		err = migrations.Status(db)
	case "version":
		var v int64
		v, err = migrations.Version(db)
		if err == nil {
			logger.PrintInfo("schema version", map[string]string{"version": strconv.FormatInt(v, 10)})
		}
	default:
		err = fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		logger.PrintFatal(err, map[string]string{"command": command})
	}
	logger.PrintInfo("migration command completed", map[string]string{"command": command})
}
