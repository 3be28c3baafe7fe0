package main

import (
	"context"
	"fmt"
	"os"

	"github.com/trezcool/masomo-apply/core"
	"github.com/trezcool/masomo-apply/services/logger"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewZapLogger(conf.Log.Level, conf.Log.Format)

	cli := commandLine{conf: conf, logger: logger, out: os.Stdout}
	err := cli.run(context.Background(), os.Args[1:])
	cli.close()
	_ = logger.Sync()

	if err != nil {
		fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		os.Exit(1)
	}
}
