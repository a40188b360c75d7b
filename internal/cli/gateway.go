package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/WaClaw/WaClaw/internal/agent"
	"github.com/WaClaw/WaClaw/internal/audit"
	"github.com/WaClaw/WaClaw/internal/bus"
	"github.com/WaClaw/WaClaw/internal/channels"
	"github.com/WaClaw/WaClaw/internal/config"
	"github.com/WaClaw/WaClaw/internal/provider"
	"github.com/WaClaw/WaClaw/internal/timeline"
	"github.com/WaClaw/WaClaw/internal/tools"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Start the WhatsApp gateway (webhook + agent loop)",
	Run:   runGateway,
}

func runGateway(cmd *cobra.Command, args []string) {
	printHeader("🌐 WaClaw Gateway")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Provider.APIKey == "" {
		fmt.Println("Error: provider API key not set. Set WACLAW_PROVIDER_API_KEY or use ~/.waclaw/config.json")
		os.Exit(1)
	}
	if cfg.WhatsApp.AccessToken == "" || cfg.WhatsApp.PhoneNumberID == "" || cfg.WhatsApp.BossPhone == "" {
		fmt.Println("Error: WhatsApp settings incomplete. Need WACLAW_WHATSAPP_ACCESS_TOKEN, WACLAW_WHATSAPP_PHONE_NUMBER_ID, WACLAW_WHATSAPP_BOSS_PHONE")
		os.Exit(1)
	}

	timeSvc, err := timeline.New(cfg.Timeline.Path)
	if err != nil {
		fmt.Printf("Failed to init timeline: %v\n", err)
		os.Exit(1)
	}
	defer timeSvc.Close()

	msgBus := bus.NewMessageBus()
	prov := provider.NewOpenAIProvider(cfg.Provider.APIKey, cfg.Provider.APIBase, cfg.Provider.Model)
	wa := channels.NewWhatsAppChannel(cfg.WhatsApp, msgBus)

	var auditor audit.Publisher = audit.NopPublisher{}
	if cfg.Audit.Enabled && cfg.Audit.Brokers != "" {
		auditor = audit.NewKafkaPublisher(cfg.Audit.Brokers, cfg.Audit.Topic)
		fmt.Printf("Audit trail: kafka %s topic %s\n", cfg.Audit.Brokers, cfg.Audit.Topic)
	}
	defer auditor.Close()

	var notifier tools.Notifier
	if cfg.Slack.Enabled && cfg.Slack.BotToken != "" {
		notifier = channels.NewSlackNotifier(cfg.Slack)
		fmt.Printf("Escalation mirror: slack channel %s\n", cfg.Slack.Channel)
	}

	registry := tools.NewRegistry()
	registry.Register(tools.NewBroadcastTool(wa, cfg.WhatsApp.BossPhone, auditor))
	registry.Register(tools.NewEscalateTool(wa, cfg.WhatsApp.BossPhone, auditor, notifier))

	engine := agent.NewEngine(prov, registry, cfg.Provider.Model, cfg.Provider.MaxToolIterations)
	loop := agent.NewLoop(agent.LoopOptions{
		Bus:            msgBus,
		Engine:         engine,
		Timeline:       timeSvc,
		Audit:          auditor,
		BossPhone:      cfg.WhatsApp.BossPhone,
		RequestTimeout: cfg.Gateway.RequestTimeout,
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go msgBus.DispatchOutbound(ctx)
	if err := wa.Start(ctx); err != nil {
		fmt.Printf("Failed to start WhatsApp channel: %v\n", err)
		os.Exit(1)
	}
	go func() {
		if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
			slog.Error("agent loop stopped", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:    cfg.Gateway.Listen,
		Handler: wa.Handler(),
	}
	go func() {
		fmt.Printf("Webhook listening on %s\n", cfg.Gateway.Listen)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("webhook server failed", "error", err)
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		fmt.Printf("\nReceived %v, shutting down...\n", sig)
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
	cancel()
	fmt.Println("Gateway stopped.")
}
