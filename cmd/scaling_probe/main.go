package main

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"

	"scaling_probe/internal/probe"
	"scaling_probe/pkg/utils"
)

func main() {
	ctx, stop := utils.TerminationContext(context.Background())

	err := newRootCommand(os.Stdout, buildProbe).ExecuteContext(ctx)
	interrupted := ctx.Err() != nil
	stop()

	if err != nil {
		if interrupted {
			logrus.Info("Received interruption signal, stopped")
		} else {
			logrus.Error(err)
		}
	}

	os.Exit(probe.ExitCode(err))
}
