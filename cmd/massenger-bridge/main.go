package main

//go-build: CGO_ENABLED=0

import (
	"flag"
	"os"

	"github.com/golang/glog"

	bridge "github.com/robotalks/massenger/pkg/bridge/mqtt"
	"github.com/robotalks/massenger/pkg/env"
	"github.com/robotalks/massenger/pkg/framework"
	"github.com/robotalks/massenger/pkg/massenger"
)

var (
	mqttURL      = "mqtt://localhost:1883/massenger/"
	pollInterval = massenger.DefaultPollInterval
)

func init() {
	if val := os.Getenv("MASSENGER_MQTT_URL"); val != "" {
		mqttURL = val
	}
	env.SetupLinkFlags()
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.DurationVar(&pollInterval, "poll", pollInterval, "Poll interval.")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	queue, err := bridge.NewQueueFromURL(mqttURL)
	if err != nil {
		glog.Fatalf("invalid MQTT URL: %v", err)
	}
	link := env.DefaultLink().MustOpen()

	poller := massenger.NewPoller(link.Massenger, nil)
	poller.Interval = pollInterval
	b := bridge.NewBridge(queue, poller)

	err = framework.NewRunner().HandleSignals().Go(
		framework.NamedRun("link", link),
		framework.NamedRun("poller", poller),
		framework.NamedRun("bridge", b),
	).Wait()
	if err != nil {
		glog.Fatal(err)
	}
}
