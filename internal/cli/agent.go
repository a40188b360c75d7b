package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/WaClaw/WaClaw/internal/agent"
	"github.com/WaClaw/WaClaw/internal/config"
	"github.com/WaClaw/WaClaw/internal/policy"
	"github.com/WaClaw/WaClaw/internal/provider"
	"github.com/WaClaw/WaClaw/internal/tools"
)

var (
	agentMessage string
	agentAsRole  string
	agentFrom    string
)

var agentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Run one reasoning pass locally (no webhook, dispatches to stdout)",
	Run:   runAgent,
}

func init() {
	agentCmd.Flags().StringVarP(&agentMessage, "message", "m", "", "Message to send to the agent")
	agentCmd.Flags().StringVar(&agentAsRole, "as", "contact", "Sender role: boss or contact")
	agentCmd.Flags().StringVar(&agentFrom, "from", "10000000000", "Sender number to simulate")
}

// consoleDispatcher prints would-be outbound messages instead of sending
// them, so the command works without WhatsApp credentials.
type consoleDispatcher struct{}

func (consoleDispatcher) Dispatch(ctx context.Context, recipient, text string) error {
	fmt.Printf("\n--- outbound to %s ---\n%s\n---\n", recipient, text)
	return nil
}

func runAgent(cmd *cobra.Command, args []string) {
	if agentMessage == "" {
		fmt.Println("Error: --message is required")
		os.Exit(1)
	}
	if agentAsRole != "boss" && agentAsRole != "contact" {
		fmt.Println("Error: --as must be boss or contact")
		os.Exit(1)
	}

	printHeader("🤖 WaClaw Agent")

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Provider.APIKey == "" {
		fmt.Println("Error: provider API key not set. Set WACLAW_PROVIDER_API_KEY or use ~/.waclaw/config.json")
		os.Exit(1)
	}

	boss := cfg.WhatsApp.BossPhone
	if boss == "" {
		boss = "19999999999"
	}
	sender := agentFrom
	if agentAsRole == "boss" {
		sender = boss
	}

	dispatcher := consoleDispatcher{}
	registry := tools.NewRegistry()
	registry.Register(tools.NewBroadcastTool(dispatcher, boss, nil))
	registry.Register(tools.NewEscalateTool(dispatcher, boss, nil, nil))

	prov := provider.NewOpenAIProvider(cfg.Provider.APIKey, cfg.Provider.APIBase, cfg.Provider.Model)
	engine := agent.NewEngine(prov, registry, cfg.Provider.Model, cfg.Provider.MaxToolIterations)

	pol := policy.Select(sender, boss)
	fmt.Printf("Role: %s  Model: %s\n", pol.Role, cfg.Provider.Model)
	fmt.Println("Thinking...")

	reply, err := engine.Run(context.Background(), pol, agentMessage)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println()
	fmt.Println(reply)
}
