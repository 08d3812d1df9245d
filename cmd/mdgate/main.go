// Command mdgate is the market-data gateway process: it subscribes to a
// configured universe of equity symbols across one or more feed venues and
// republishes the latest snapshot per symbol into a shared-memory region
// for local consumer processes to read.
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/AlephTX/mdgate/internal/abi"
	"github.com/AlephTX/mdgate/internal/config"
	"github.com/AlephTX/mdgate/internal/diag"
	"github.com/AlephTX/mdgate/internal/feed"
	"github.com/AlephTX/mdgate/internal/ingest"
	"github.com/AlephTX/mdgate/internal/writer"
)

func main() {
	var (
		cfgPath      = flag.String("config", "config.toml", "path to gateway TOML config")
		shmName      = flag.String("shm-name", "", "override region name from config")
		unlinkOnExit = flag.Bool("unlink-on-exit", false, "override unlink_on_exit from config")
		envFile      = flag.String("env-file", ".env", "optional .env file to load before config")
	)
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Printf("mdgate: .env load: %v", err)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("mdgate: config: %v", err)
	}
	if *shmName != "" {
		cfg.RegionName = *shmName
	}
	if *unlinkOnExit {
		cfg.UnlinkOnExit = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	nowNs := func() uint64 { return uint64(time.Now().UnixNano()) }

	w, err := writer.Create(cfg.RegionName, cfg.SymbolCount, nowNs())
	if err != nil {
		log.Fatalf("mdgate: writer create: %v", err)
	}
	log.Printf("mdgate: region /dev/shm%s ready, %d symbols", normalizedName(cfg.RegionName), cfg.SymbolCount)

	for id, sym := range cfg.Symbols {
		if err := w.WriteSymbolDirEntry(uint32(id), sym); err != nil {
			log.Fatalf("mdgate: symbol dir: %v", err)
		}
	}

	symbols, err := ingest.NewSymbolTable(cfg.Symbols)
	if err != nil {
		log.Fatalf("mdgate: symbol table: %v", err)
	}
	adapter := ingest.NewAdapter(symbols, w, nowNs)

	var diagPub *diag.Publisher
	if cfg.DiagSocketPath != "" {
		diagPub = diag.NewPublisher(cfg.DiagSocketPath)
		defer diagPub.Close()
	}

	h := &gatewayHandler{writer: w, adapter: adapter}

	var wg sync.WaitGroup
	for name, venue := range cfg.Venues {
		if !venue.Enabled {
			continue
		}
		var src feed.Source
		if venue.Mock {
			src = &feed.MockSource{Symbols: venue.Symbols, Handler: h, Seed: int64(len(venue.Symbols)) + 1}
		} else {
			src = &feed.WSRelay{Name: name, URL: venue.WSURL, Symbols: venue.Symbols, Handler: h}
		}

		wg.Add(1)
		go func(name string, src feed.Source) {
			defer wg.Done()
			log.Printf("mdgate: venue %s starting", name)
			if err := src.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Printf("mdgate: venue %s stopped: %v", name, err)
			}
		}(name, src)
	}

	heartbeatInterval := time.Duration(cfg.HeartbeatIntervalMs) * time.Millisecond
	wg.Add(1)
	go runHeartbeat(ctx, &wg, w, adapter, diagPub, cfg, heartbeatInterval)

	wg.Wait()

	w.SetMdStatus(abi.StatusDisconnected)
	if cfg.UnlinkOnExit {
		if err := writer.Unlink(cfg.RegionName); err != nil {
			log.Printf("mdgate: unlink: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		log.Printf("mdgate: close: %v", err)
	}
	log.Println("mdgate: stopped")
}

func normalizedName(name string) string {
	if len(name) > 0 && name[0] == '/' {
		return name
	}
	return "/" + name
}
