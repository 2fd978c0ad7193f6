package main

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/graeme-hill/atscript-go/lib"
	"github.com/sirupsen/logrus"
)

func main() {
	configFile := flag.String("config", lib.DefaultConfigFile, "path to the YAML config file")
	verbose := flag.Bool("v", false, "trace statement execution")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: atscript [-config file] [-v] <script.at>")
		os.Exit(2)
	}

	cfg, err := lib.LoadConfig(*configFile)
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}
	if err := cfg.ConfigureLogging(); err != nil {
		logrus.WithError(err).Fatal("configuring logging")
	}

	file := flag.Arg(0)
	source, err := ioutil.ReadFile(file)
	if err != nil {
		logrus.WithError(err).WithField("script", file).Fatal("reading script")
	}

	tokens, err := lib.Tokenize(string(source))
	if err != nil {
		logrus.WithField("script", file).Error(err)
		os.Exit(1)
	}

	interp := lib.NewInterpreter(os.Stdout).WithLogger(logrus.WithField("script", file))
	if _, err := interp.Interpret(tokens); err != nil {
		logrus.WithField("script", file).Error(err)
		os.Exit(1)
	}
}
