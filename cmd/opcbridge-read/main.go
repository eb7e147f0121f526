// Package main demonstrates the asynchronous OPC UA client end to end: it
// connects to a built-in simulator, reads and writes variables, calls a
// method, browses the address space, and monitors a value through a
// subscription.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/c360/opcbridge/bridge"
	"github.com/c360/opcbridge/config"
	"github.com/c360/opcbridge/engine/enginetest"
	"github.com/c360/opcbridge/metric"
	"github.com/c360/opcbridge/ua"
)

// Build information constants
const (
	Version = "0.1.0"
	appName = "opcbridge-read"
)

var (
	objectsNodeID     = ua.NewNumericNodeID(0, 85)
	temperatureNodeID = ua.NewStringNodeID(1, "plant.temperature")
	setpointNodeID    = ua.NewStringNodeID(1, "plant.setpoint")
	resetNodeID       = ua.NewStringNodeID(1, "plant.reset")
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()

	if cliCfg.ShowVersion {
		fmt.Printf("%s %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil
	}
	if err := validateFlags(cliCfg); err != nil {
		return err
	}

	cycleTime := cliCfg.CycleTime
	maxReferences := uint32(0)
	metricsEnabled := false
	metricsListen := ""
	logCfg := config.LoggingConfig{Level: cliCfg.LogLevel, Format: cliCfg.LogFormat}

	if cliCfg.ConfigPath != "" {
		cfg, err := config.Load(cliCfg.ConfigPath)
		if err != nil {
			return err
		}
		cycleTime = cfg.Driver.CycleTime.AsDuration()
		maxReferences = cfg.Browse.MaxReferencesPerNode
		metricsEnabled = cfg.Metrics.Enabled
		metricsListen = cfg.Metrics.Listen
		logCfg = cfg.Logging
	}

	logger := setupLogger(logCfg)

	registry := metric.NewRegistry()
	if metricsEnabled {
		go serveMetrics(logger, registry, metricsListen)
	}

	sim := buildSimulator()

	client, err := bridge.Connect(sim, "opc.tcp://localhost:4840",
		bridge.WithLogger(logger),
		bridge.WithCycleTime(cycleTime),
		bridge.WithMetrics(registry.Core()),
		bridge.WithMaxReferencesPerNode(maxReferences),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("close failed", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := walkAttributes(ctx, logger, client); err != nil {
		return err
	}
	if err := walkReadWrite(ctx, logger, client); err != nil {
		return err
	}
	if err := walkMethodCall(ctx, logger, client); err != nil {
		return err
	}
	if err := walkBrowse(ctx, logger, client); err != nil {
		return err
	}
	if err := walkSubscription(ctx, logger, client); err != nil {
		return err
	}

	stats := client.DriverStats()
	logger.Info("walk-through complete",
		"iterations", stats.Iterations,
		"missed_cycles", stats.MissedCycles)
	return nil
}

// buildSimulator populates a small address space: two variables, a reset
// method, and hierarchical references from the objects folder.
func buildSimulator() *enginetest.Simulator {
	sim := enginetest.NewSimulator()

	sim.AddObject(objectsNodeID, "Objects")
	sim.AddVariable(temperatureNodeID, "Temperature",
		ua.NewVariant(21.5), ua.NewNumericNodeID(0, 11))
	sim.AddVariable(setpointNodeID, "Setpoint",
		ua.NewVariant(20.0), ua.NewNumericNodeID(0, 11))
	sim.AddMethod(resetNodeID, "Reset",
		func([]ua.Variant) ([]ua.Variant, ua.StatusCode) {
			return []ua.Variant{ua.NewVariant(true)}, ua.StatusGood
		})

	sim.AddReference(objectsNodeID, temperatureNodeID)
	sim.AddReference(objectsNodeID, setpointNodeID)
	sim.AddReference(objectsNodeID, resetNodeID)

	return sim
}

func walkAttributes(ctx context.Context, logger *slog.Logger, client *bridge.Client) error {
	attributeIDs := []ua.AttributeID{
		ua.AttributeIDBrowseName,
		ua.AttributeIDDisplayName,
		ua.AttributeIDValue,
		ua.AttributeIDDataType,
	}

	values, err := client.ReadAttributes(ctx, temperatureNodeID, attributeIDs)
	if err != nil {
		return fmt.Errorf("read attributes: %w", err)
	}

	for i, value := range values {
		logger.Info("attribute",
			"node", temperatureNodeID,
			"attribute", attributeIDs[i],
			"value", value)
	}
	return nil
}

func walkReadWrite(ctx context.Context, logger *slog.Logger, client *bridge.Client) error {
	before, err := client.ReadValue(ctx, setpointNodeID)
	if err != nil {
		return fmt.Errorf("read setpoint: %w", err)
	}
	logger.Info("setpoint before write", "value", before)

	if err := client.WriteValue(ctx, setpointNodeID,
		ua.NewDataValue(ua.NewVariant(22.5))); err != nil {
		return fmt.Errorf("write setpoint: %w", err)
	}

	after, err := client.ReadValue(ctx, setpointNodeID)
	if err != nil {
		return fmt.Errorf("read setpoint back: %w", err)
	}
	logger.Info("setpoint after write", "value", after)
	return nil
}

func walkMethodCall(ctx context.Context, logger *slog.Logger, client *bridge.Client) error {
	outputs, err := client.CallMethod(ctx, objectsNodeID, resetNodeID, nil)
	if err != nil {
		return fmt.Errorf("call reset: %w", err)
	}

	logger.Info("reset called", "outputs", len(outputs))
	return nil
}

func walkBrowse(ctx context.Context, logger *slog.Logger, client *bridge.Client) error {
	page, err := client.Browse(ctx, objectsNodeID)
	if err != nil {
		return fmt.Errorf("browse objects: %w", err)
	}

	references := page.References
	for !page.ContinuationPoint.IsAbsent() {
		pages, err := client.BrowseNext(ctx,
			[]ua.ContinuationPoint{page.ContinuationPoint})
		if err != nil {
			return fmt.Errorf("browse next: %w", err)
		}
		page = pages[0]
		references = append(references, page.References...)
	}

	for _, reference := range references {
		logger.Info("reference",
			"node", reference.NodeID,
			"browse_name", reference.BrowseName,
			"class", reference.NodeClass)
	}
	return nil
}

func walkSubscription(ctx context.Context, logger *slog.Logger, client *bridge.Client) error {
	sub, err := client.CreateSubscription(ctx)
	if err != nil {
		return fmt.Errorf("create subscription: %w", err)
	}
	defer func() { _ = sub.Close() }()

	logger.Info("subscription created", "subscription_id", sub.ID())

	item, err := sub.CreateMonitoredItem(ctx, temperatureNodeID)
	if err != nil {
		return fmt.Errorf("create monitored item: %w", err)
	}
	defer func() { _ = item.Close() }()

	logger.Info("monitored item created", "monitored_item_id", item.ID())
	return nil
}

func serveMetrics(logger *slog.Logger, registry *metric.Registry, listen string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(
		registry.Prometheus(),
		promhttp.HandlerOpts{},
	))

	server := &http.Server{
		Addr:              listen,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("serving metrics", "listen", listen)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics server failed", "error", err)
	}
}
