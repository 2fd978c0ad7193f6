package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/graeme-hill/atscript-go/lib"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
)

func main() {
	configFile := flag.String("config", lib.DefaultConfigFile, "path to the YAML config file")
	all := flag.Bool("all", false, "run every test case")
	flag.Parse()

	cfg, err := lib.LoadConfig(*configFile)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	if err := cfg.ConfigureLogging(); err != nil {
		logrus.WithError(err).Fatal("configuring logging")
	}

	// golden N: remember N as the default test and stop
	if flag.NArg() > 0 {
		number, err := cast.ToIntE(flag.Arg(0))
		if err != nil {
			logrus.WithError(err).Fatal("test number must be an integer")
		}
		if err := lib.SaveTestNumber(cfg.StateFile, number); err != nil {
			logrus.WithError(err).Fatal("saving test number")
		}
		logrus.WithField("test", number).Info("set as default")
		return
	}

	var scripts []*lib.Script
	if *all {
		scripts, err = lib.ReadScriptsDir(cfg.ScriptsDir)
		if err != nil {
			logrus.WithError(err).Fatal("reading test cases")
		}
	} else {
		number, ok, err := lib.LoadTestNumber(cfg.StateFile)
		if err != nil {
			logrus.WithError(err).Fatal("loading test number")
		}
		if !ok {
			logrus.Warn("No test number set. Use `golden <number>` first.")
			return
		}
		script, err := lib.FindScript(cfg.ScriptsDir, number)
		if err != nil {
			logrus.WithError(err).Fatal("finding test case")
		}
		scripts = []*lib.Script{script}
	}

	ctx := context.Background()
	var store *lib.RunStore
	if cfg.DatabaseURL != "" {
		store, err = lib.OpenRunStore(ctx, cfg.DatabaseURL, cfg.RunsTable)
		if err != nil {
			logrus.WithError(err).Fatal("opening run store")
		}
	}

	failed := 0
	for _, script := range scripts {
		result := lib.RunScript(script)
		report(result)
		if !result.Passed {
			failed++
		}

		if store != nil {
			id, err := store.Record(ctx, result)
			if err != nil {
				logrus.WithError(err).WithField("test", script.Name).Error("recording run")
				continue
			}
			logrus.WithFields(logrus.Fields{"test": script.Name, "run": id}).Debug("recorded run")
		}
	}

	if store != nil {
		store.Close()
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func report(result lib.Result) {
	log := logrus.WithFields(logrus.Fields{
		"test":    result.Script.Name,
		"elapsed": result.Elapsed,
	})

	fmt.Print(lib.Report(result))

	if result.Passed {
		log.Info("Test passed")
		return
	}

	if result.Err != nil {
		log = log.WithError(result.Err)
	}
	log.Error("Test failed")
}
