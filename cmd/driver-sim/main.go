// README: Driver simulator; inserts one randomized driver row into the shared store.
package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	mrand "math/rand"
	"os"
	"strings"

	"ridedispatch/internal/config"
	"ridedispatch/internal/infra"
	"ridedispatch/internal/logging"
	"ridedispatch/internal/modules/driver"
	"ridedispatch/internal/modules/zone"
)

var (
	firstNames = []string{"Alex", "Ben", "Charlie", "Dana", "Emily", "Frank", "Grace", "Henry"}
	lastNames  = []string{"Smith", "Jones", "Chen", "Lee", "Singh", "Garcia"}
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log := logging.New(cfg.LogLevel)

	ctx := context.Background()
	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init failed")
	}
	defer dbPool.Close()

	d := randomDriver()
	id, err := driver.NewStore(dbPool).Upsert(ctx, d)
	if err != nil {
		log.Fatal().Err(err).Msg("driver insert failed")
	}

	log.Info().
		Int64("id", id).
		Str("driver_id", d.DriverID).
		Str("name", d.Name).
		Str("status", string(d.Status)).
		Str("location", d.Location).
		Msg("driver registered")
	fmt.Fprintf(os.Stdout, "registered %s (%s) at %s, status %s\n", d.Name, d.DriverID, d.Location, d.Status)
}

func randomDriver() *driver.Driver {
	// New drivers come up either available or offline; on_trip is only ever
	// set by the matching engine.
	status := driver.StatusAvailable
	if mrand.Intn(2) == 1 {
		status = driver.StatusOffline
	}
	zones := zone.Names()
	return &driver.Driver{
		DriverID: "DRV-" + randomHex(3),
		Name:     firstNames[mrand.Intn(len(firstNames))] + " " + lastNames[mrand.Intn(len(lastNames))],
		Status:   status,
		Location: zones[mrand.Intn(len(zones))],
	}
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return strings.ToUpper(hex.EncodeToString(b))
}
