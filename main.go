package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/tatermelon/stftime/config"
	"github.com/tatermelon/stftime/storage"
	"github.com/tatermelon/stftime/web"
)

const app = "stftime"

var gitRepo = "tatermelon/stftime"
var gitCommit = "unknown"
var gitTag = "unknown"

const (
	logMaxAge       = 7 * config.Day
	logRotationTime = config.Day
	previewTimeout  = 30 * time.Second
)

func printVersion() {
	if gitTag == "" {
		gitTag = "err-no-git-tag"
	}

	log.Printf("%s (dist=%s; version=%s; commit=%s)", app, gitRepo, gitTag, gitCommit)
}

func main() {
	config.ParseFlags()
	configureLogrus()
	configureTerminal()
	printVersion()

	global := config.GetInstance().Global()

	if !config.HasGlobalDebugEnabled() {
		log.SetLevel(global.LogLevel())
	}

	if global.LogFile() != "" {
		configureLogFile(global.LogFile())
	}

	if err := storage.InitializeConfiguration(); err != nil {
		log.Fatalf("Unable to load presets: %s", err)
	}

	schedulePublishing()

	web.StartServer()
}

func configureTerminal() {
	if config.IsRunningInBackgroundForced() {
		return
	}

	// set up termbox, @see https://github.com/nsf/termbox-go/blob/master/_demos/raw_input.go
	err := termbox.Init()

	if err != nil {
		log.Warnf("Unable to run in interactive mode: %s", err)
		return
	}

	go func() {
		for {
			var current string
			var data [64]byte

			// we have to poll the raw events; normal events don't include escape sequences
			switch ev := termbox.PollRawEvent(data[:]); ev.Type {
			case termbox.EventRaw:
				d := data[:ev.N]
				current = fmt.Sprintf("%q", d)

				if current == `"\x12"` /* Ctrl+R */ || current == `"r"` {
					log.Printf("Forcing publish...")
					publish()
				} else if current == `"p"` {
					preview()
				} else if current == `"\x1b"` /* ESC */ || current == `"q"` || current == `"\x03"` {
					log.Printf("Exiting...")
					termbox.Close()
					os.Exit(0)
				}
			case termbox.EventError:
				panic(ev.Err)
			}
		}
	}()
}

func configureLogrus() {
	customFormatter := new(log.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	log.SetFormatter(customFormatter)
}

func configureLogFile(pattern string) {
	writer, err := rotatelogs.New(
		pattern,
		rotatelogs.WithMaxAge(logMaxAge),
		rotatelogs.WithRotationTime(logRotationTime),
	)

	if err != nil {
		log.Errorf("Unable to write logs to %s: %s", pattern, err)
		return
	}

	log.SetOutput(io.MultiWriter(os.Stderr, writer))
}

// publish runs one publish pass. Writes that are still pending when the
// next pass is due get cancelled.
func publish() {
	global := config.GetInstance().Global()

	ctx, cancel := context.WithTimeout(context.Background(), global.UpdateInterval())
	defer cancel()

	storage.Publish(ctx, time.Now(), global.Location())
}

func preview() {
	global := config.GetInstance().Global()

	for _, r := range storage.Preview(time.Now(), global.Location()) {
		log.Infof("%s -> %s: %s", r.Name, r.Object, r.Text)
	}

	ctx, cancel := context.WithTimeout(context.Background(), previewTimeout)
	defer cancel()

	for _, sinkName := range storage.GetSinkNames() {
		objects, err := storage.Published(ctx, sinkName)
		if err != nil {
			log.Warnf("Unable to list sink '%s': %s", sinkName, err)
			continue
		}
		log.Infof("Sink '%s' holds %d objects", sinkName, len(objects))
	}
}

func schedulePublishing() {
	updateInterval := config.GetInstance().Global().UpdateInterval()

	ticker := time.NewTicker(updateInterval)
	go func() {
		publish()
		for range ticker.C {
			publish()
		}
	}()
}
