package config

import (
	log "github.com/sirupsen/logrus"
	"time"
)

type GlobalConfiguration struct {
	logLevel       log.Level
	logFile        string
	httpPort       int
	updateInterval time.Duration
	location       *time.Location
	maxPatternSize uint64
}

func (config *GlobalConfiguration) LogLevel() log.Level {
	return config.logLevel
}

// LogFile is a rotation pattern like "/var/log/stftime.%Y%m%d"; empty
// means stderr only.
func (config *GlobalConfiguration) LogFile() string {
	return config.logFile
}

func (config *GlobalConfiguration) HttpPort() int {
	return config.httpPort
}

func (config *GlobalConfiguration) UpdateInterval() time.Duration {
	return config.updateInterval
}

// Location is where "now" is taken when no explicit instant is given.
func (config *GlobalConfiguration) Location() *time.Location {
	return config.location
}

func (config *GlobalConfiguration) MaxPatternSize() uint64 {
	return config.maxPatternSize
}
