// Command rwsctl is a thin demonstrator CLI over the rws client: read
// controller state, or watch subscription events and optionally relay
// them onto Redis.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/streamspace-dev/rws/internal/config"
	"github.com/streamspace-dev/rws/internal/redisrelay"
	"github.com/streamspace-dev/rws/internal/rws/catalog"
	"github.com/streamspace-dev/rws/internal/rws/client"
	"github.com/streamspace-dev/rws/internal/rws/subscribe"
	v1 "github.com/streamspace-dev/rws/internal/rws/subscribe/v1"
	v2 "github.com/streamspace-dev/rws/internal/rws/subscribe/v2"
	"github.com/streamspace-dev/rws/internal/rwslog"
)

var log = rwslog.New("rwsctl")

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	opts, err := connectionOptionsFromEnv()
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "state":
		runState(opts)
	case "watch":
		runWatch(opts, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: rwsctl <state|watch> [flags]")
}

func connectionOptionsFromEnv() (*config.ConnectionOptions, error) {
	opts := &config.ConnectionOptions{
		Host:     getEnvOrDefault("RWS_HOST", ""),
		Username: getEnvOrDefault("RWS_USERNAME", "Default User"),
		Password: getEnvOrDefault("RWS_PASSWORD", ""),
		Version:  config.Version(getEnvOrDefault("RWS_VERSION", string(config.VersionV2))),
		Port:     getEnvIntOrDefault("RWS_PORT", 0),
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func runState(opts *config.ConnectionOptions) {
	cl, err := client.New(opts)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	ctx := context.Background()
	defer cl.Close(ctx)

	state, err := cl.GetControllerState(ctx)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	mode, err := cl.GetOperationMode(ctx)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	fmt.Printf("ctrlstate=%s opmode=%s\n", state, mode)
}

func runWatch(opts *config.ConnectionOptions, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	resourceFlag := fs.String("resource", "", "comma-separated list of resource URIs to subscribe to")
	redisURL := fs.String("redis-url", "", "optional redis:// URL to relay events onto")
	redisChannel := fs.String("redis-channel", "rws.events", "redis channel to publish events on")
	fs.Parse(args)

	if *resourceFlag == "" {
		log.Printf("watch requires --resource")
		os.Exit(2)
	}

	cl, err := client.New(opts)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer cl.Close(context.Background())

	resources := make([]subscribe.Resource, 0)
	for _, uri := range strings.Split(*resourceFlag, ",") {
		resources = append(resources, subscribe.Resource{URI: uri, Priority: catalog.PriorityMedium})
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var group *subscribe.Group
	var subprotocol string
	if opts.Version == config.VersionV1 {
		mgr := v1.New(cl.Transport())
		group, err = mgr.Open(ctx, resources)
		subprotocol = v1.Subprotocol
	} else {
		mgr := v2.New(cl.Transport())
		group, err = mgr.Open(ctx, resources)
		subprotocol = v2.Subprotocol
	}
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
	defer group.Close(context.Background())

	var relay *redisrelay.Relay
	handler := func(ev subscribe.Event) {
		switch ev := ev.(type) {
		case subscribe.IOSignalStateEvent:
			fmt.Printf("io signal=%s value=%s\n", ev.Signal, ev.Value)
		case subscribe.RAPIDExecutionStateEvent:
			fmt.Printf("rapid state=%s\n", ev.State)
		case subscribe.ControllerStateEvent:
			fmt.Printf("ctrlstate=%s\n", ev.State)
		case subscribe.OperationModeEvent:
			fmt.Printf("opmode=%s\n", ev.Mode)
		}
	}
	if *redisURL != "" {
		relay, err = redisrelay.New(*redisURL, *redisChannel)
		if err != nil {
			log.Printf("%v", err)
			os.Exit(1)
		}
		defer relay.Close()
		relayHandler := relay.Handler()
		prev := handler
		handler = func(ev subscribe.Event) {
			prev(ev)
			relayHandler(ev)
		}
	}

	receiver, err := group.Watch(ctx, subprotocol, handler)
	if err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		receiver.Shutdown()
	}()

	if err := receiver.Run(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
