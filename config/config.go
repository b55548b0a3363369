package config

import (
	"errors"
	"flag"
	"fmt"
	"github.com/davecgh/go-spew/spew"
	log "github.com/sirupsen/logrus"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"
)

type configuration struct {
	global  *GlobalConfiguration
	http    *HttpConfiguration
	sinks   []*Sink
	presets Raw
}

var (
	instance                *configuration
	once                    sync.Once
	configSearchDirectories []string
	hasGlobalDebugEnabled   bool
	isBackgroundForced      bool
	explicitConfigPath      string
)

const (
	CfgFileName = "config"
	PathLocal   = "."
	PathGlobal  = "/etc/stftime"
)

const (
	defaultHttpPort       = 80
	defaultUpdateInterval = time.Hour
	defaultMaxPatternSize = 4 * 1024
	defaultRegion         = "eu-central-1"
)

func init() {
	flag.BoolVar(&hasGlobalDebugEnabled, "debug", false, "Enable debug log; overwrites any configuration file loglevel")
	flag.BoolVar(&isBackgroundForced, "background", false, "Do not attach to the terminal")
	flag.StringVar(&explicitConfigPath, "config", "", "Path to the configuration file; skips the search path")

	configSearchDirectories = append(configSearchDirectories, PathLocal)

	userHome, err := os.UserHomeDir()

	if err == nil {
		userHome = fmt.Sprintf("%s%c%s", userHome, os.PathSeparator, ".stftime")
		configSearchDirectories = append(configSearchDirectories, userHome)
	}

	configSearchDirectories = append(configSearchDirectories, PathGlobal)
}

// ParseFlags parses the command line. Call it once from main before the
// first GetInstance.
func ParseFlags() {
	flag.Parse()

	if hasGlobalDebugEnabled {
		log.SetLevel(log.DebugLevel)
		log.Debug("Debug log level enabled")
	}
}

func HasGlobalDebugEnabled() bool {
	return hasGlobalDebugEnabled
}

func IsRunningInBackgroundForced() bool {
	return isBackgroundForced
}

func GetInstance() *configuration {
	once.Do(func() {
		instance = initConfig()
	})
	return instance
}

// NewConfigurationInstance builds a configuration from an already parsed
// document without touching the process-wide instance.
func NewConfigurationInstance(cfg Raw) *configuration {
	if cfg == nil {
		cfg = Raw{}
	}

	c := &configuration{
		global:  parseGlobal(cfg),
		http:    parseHttp(cfg.Sub("http")),
		sinks:   parseSinks(cfg.Sub("sinks")),
		presets: cfg.Sub("presets"),
	}

	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("Parsed sinks: %s", spew.Sdump(c.sinks))
	}

	return c
}

func (c *configuration) Global() *GlobalConfiguration {
	return c.global
}

func (c *configuration) Http() *HttpConfiguration {
	return c.http
}

func (c *configuration) Sinks() []*Sink {
	return c.sinks
}

// Presets is the raw `presets:` section.
func (c *configuration) Presets() Raw {
	return c.presets
}

func candidatePaths() []string {
	if explicitConfigPath != "" {
		return []string{explicitConfigPath}
	}

	var paths []string
	for _, directory := range configSearchDirectories {
		paths = append(paths,
			filepath.Join(directory, CfgFileName+".yaml"),
			filepath.Join(directory, CfgFileName+".toml"))
	}
	return paths
}

func formatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatToml
	}
	return FormatYaml
}

func initConfig() *configuration {
	var file *os.File = nil
	var err error = nil
	var path string

	for _, possibleConfigPath := range candidatePaths() {
		log.Debugf("Checking for configuration file at %s", possibleConfigPath)

		file, err = os.Open(possibleConfigPath)

		if err == nil {
			log.Infof("Found configuration file at location %s", possibleConfigPath)
			path = possibleConfigPath
			break
		}
	}

	if file == nil {
		log.Fatal("Could not find any configuration file")
	}

	defer file.Close()

	cfg, err := ParseFormat(file, formatOf(path))
	if err != nil {
		log.Fatalf("Failed to parse configuration file: %s", err)
	}

	return NewConfigurationInstance(cfg)
}

func parseGlobal(cfg Raw) *GlobalConfiguration {
	logLevel := log.InfoLevel
	if cfg.Has("log_level") {
		parsedLevel, err := log.ParseLevel(cfg.String("log_level"))
		if err == nil {
			logLevel = parsedLevel
		} else {
			log.Warnf("Cannot parse log level, defaulting to 'info': %s", err)
		}
	}

	httpPort := defaultHttpPort
	if cfg.Has("port") {
		httpPort = int(cfg.Int64("port"))
	}

	updateInterval := defaultUpdateInterval
	if cfg.Has("update_interval") {
		updateInterval = cfg.Duration("update_interval")
	}

	if updateInterval < time.Minute {
		log.Warn("Update interval must not be less than 1 minute, defaulting to 1 hour.")
		updateInterval = defaultUpdateInterval
	}

	location := time.Local
	if cfg.Has("location") {
		loaded, err := time.LoadLocation(cfg.String("location"))
		if err == nil {
			location = loaded
		} else {
			log.Warnf("Cannot load location '%s', defaulting to local time: %s", cfg.String("location"), err)
		}
	}

	maxPatternSize := uint64(defaultMaxPatternSize)
	if cfg.Has("max_pattern_size") {
		if size := cfg.Bytes("max_pattern_size"); size > 0 {
			maxPatternSize = size
		} else {
			log.Warnf("Cannot parse max_pattern_size, defaulting to %d bytes", defaultMaxPatternSize)
		}
	}

	return &GlobalConfiguration{
		logLevel:       logLevel,
		logFile:        cfg.String("log_file"),
		httpPort:       httpPort,
		updateInterval: updateInterval,
		location:       location,
		maxPatternSize: maxPatternSize,
	}
}

func parseSinks(cfg Raw) []*Sink {
	var sinks []*Sink

	for sinkName := range cfg {
		sink, err := parseSink(cfg.Sub(sinkName), sinkName)

		if err != nil {
			log.Errorf("Sink '%s' could not be parsed: %s", sinkName, err)
			continue
		}

		sinks = append(sinks, sink)
	}

	return sinks
}

func parseSink(cfg Raw, sinkName string) (*Sink, error) {
	if sinkName == "" {
		return nil, errors.New("Missing sink name")
	}

	if cfg == nil {
		return nil, errors.New("Missing sink configuration entries")
	}

	const paramRegion = "region"
	const paramForcePathStyle = "force_path_style"
	const paramAccessKeyId = "access_key_id"
	const paramSecretAccessKey = "secret_access_key"
	const paramEndpoint = "endpoint"
	const paramToken = "token"
	const paramRoleArn = "role_arn"
	const paramBucket = "bucket"
	const paramPrefix = "prefix"

	// check if local sink or S3 sink
	if cfg.Has("path") {
		path := cfg.String("path")
		if path == "" {
			return nil, errors.New("Parameter 'path' has been set, but is empty")
		}

		return &Sink{Name: sinkName, Directory: path, Prefix: cfg.String(paramPrefix)}, nil
	}

	bucket := cfg.String(paramBucket)
	if bucket == "" {
		return nil, errors.New("Either 'path' or 'bucket' must be set")
	}

	region := defaultRegion
	if cfg.Has(paramRegion) {
		region = cfg.String(paramRegion)
	}

	return &Sink{
		Name:           sinkName,
		Bucket:         bucket,
		Prefix:         cfg.String(paramPrefix),
		Region:         region,
		ForcePathStyle: cfg.Bool(paramForcePathStyle),
		AccessKey:      cfg.String(paramAccessKeyId),
		SecretKey:      cfg.String(paramSecretAccessKey),
		Endpoint:       cfg.String(paramEndpoint),
		Token:          cfg.String(paramToken),
		RoleArn:        cfg.String(paramRoleArn),
	}, nil
}
