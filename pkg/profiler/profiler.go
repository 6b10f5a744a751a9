package profiler

import (
	"net/http"
	_ "net/http/pprof"
	"runtime"

	"github.com/sirupsen/logrus"

	"scaling_probe/pkg/config"
)

func SetupProfilerServer(config config.ProfilerConfig) {
	if config.Mutex {
		runtime.SetMutexProfileFraction(1)
	}

	if config.Enable {
		logrus.Infof("Profiler listening on %s", config.Address)
		logrus.Warn(http.ListenAndServe(config.Address, nil))
	}
}
