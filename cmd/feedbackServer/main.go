package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Demigod345/privatefeedback-go/pkg/config"
	"github.com/Demigod345/privatefeedback-go/pkg/contractCaller/caller"
	"github.com/Demigod345/privatefeedback-go/pkg/encryption"
	"github.com/Demigod345/privatefeedback-go/pkg/logger"
	"github.com/Demigod345/privatefeedback-go/pkg/mail"
	"github.com/Demigod345/privatefeedback-go/pkg/service"
	"github.com/Demigod345/privatefeedback-go/pkg/transactionSigner"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

const (
	// Inbound rate limit across both endpoints; each accepted request costs
	// a chain write or read plus a mail send.
	requestsPerSecond = 20
	requestBurst      = 40
)

func main() {
	// Best-effort .env for local runs; real deployments set the environment.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "feedbackServer",
		Usage: "Private feedback attestation server",
		Description: `Verifies signed interaction claims, issues on-chain interaction
attestations, and invites participants to disclose private feedback via
wallet-gated encrypted magic links.`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Value:   8080,
				Usage:   "HTTP server port",
				EnvVars: []string{config.EnvFeedbackPort},
			},
			&cli.StringFlag{
				Name:     "mail-seed",
				Usage:    "Messaging-account secret seed",
				EnvVars:  []string{config.EnvFeedbackMailSeed},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "service-id",
				Usage:    "Decimal service identifier attested on chain",
				EnvVars:  []string{config.EnvFeedbackServiceID},
				Required: true,
			},
			&cli.StringFlag{
				Name:     "private-key",
				Usage:    "Hex-encoded ECDSA private key for chain writes",
				EnvVars:  []string{config.EnvFeedbackPrivateKey},
				Required: true,
			},
			&cli.StringFlag{
				Name:    "rpc-url",
				Value:   config.DefaultRPCURL,
				Usage:   "Ethereum JSON-RPC endpoint",
				EnvVars: []string{config.EnvFeedbackRPCURL},
			},
			&cli.StringFlag{
				Name:    "registry-address",
				Value:   config.DefaultRegistryAddress,
				Usage:   "Interaction attestation registry contract address",
				EnvVars: []string{config.EnvFeedbackRegistryAddress},
			},
			&cli.StringFlag{
				Name:    "schema-uid",
				Value:   config.DefaultSchemaUID,
				Usage:   "Attestation schema UID",
				EnvVars: []string{config.EnvFeedbackSchemaUID},
			},
			&cli.StringFlag{
				Name:    "policy-chain",
				Value:   string(config.ChainName_BaseSepolia),
				Usage:   "Chain name in access policies: base, baseSepolia, baseAnvil",
				EnvVars: []string{config.EnvFeedbackPolicyChain},
			},
			&cli.StringSliceFlag{
				Name:    "threshold-node",
				Usage:   "Threshold-encryption network node endpoint (repeatable)",
				EnvVars: []string{config.EnvFeedbackThresholdNodes},
			},
			&cli.StringFlag{
				Name:    "mail-api-url",
				Value:   config.DefaultMailAPIURL,
				Usage:   "Messaging API base URL",
				EnvVars: []string{config.EnvFeedbackMailAPIURL},
			},
			&cli.StringFlag{
				Name:    "interaction-link-base",
				Value:   config.DefaultInteractionLinkBase,
				Usage:   "Magic-link base for interaction notifications",
				EnvVars: []string{config.EnvFeedbackInteractionLinkBase},
			},
			&cli.StringFlag{
				Name:    "disclosure-link-base",
				Value:   config.DefaultDisclosureLinkBase,
				Usage:   "Magic-link base for disclosure notifications",
				EnvVars: []string{config.EnvFeedbackDisclosureLinkBase},
			},
			&cli.DurationFlag{
				Name:    "confirmation-timeout",
				Value:   config.DefaultConfirmationTimeout,
				Usage:   "Maximum wait for transaction confirmation",
				EnvVars: []string{config.EnvFeedbackConfirmTimeout},
			},
			&cli.DurationFlag{
				Name:    "replay-window",
				Usage:   "Freshness window for claim timestamps; 0 disables the replay guard",
				EnvVars: []string{config.EnvFeedbackReplayWindow},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvFeedbackVerbose},
			},
		},
		Action: runFeedbackServer,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func parseConfig(c *cli.Context) (*config.ServerConfig, error) {
	cfg := &config.ServerConfig{
		Port:                c.Int("port"),
		Verbose:             c.Bool("verbose"),
		MailSeed:            c.String("mail-seed"),
		MailAPIURL:          c.String("mail-api-url"),
		ServiceID:           c.String("service-id"),
		PrivateKey:          c.String("private-key"),
		RpcUrl:              c.String("rpc-url"),
		SchemaUID:           c.String("schema-uid"),
		RegistryAddress:     c.String("registry-address"),
		ConfirmationTimeout: c.Duration("confirmation-timeout"),
		PolicyChain:         config.ChainName(c.String("policy-chain")),
		ThresholdNodes:      c.StringSlice("threshold-node"),
		InteractionLinkBase: c.String("interaction-link-base"),
		DisclosureLinkBase:  c.String("disclosure-link-base"),
		ReplayWindow:        c.Duration("replay-window"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runFeedbackServer(c *cli.Context) error {
	cfg, err := parseConfig(c)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: cfg.Verbose})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = l.Sync() }()

	ethClient, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return fmt.Errorf("failed to connect to RPC endpoint %s: %w", cfg.RpcUrl, err)
	}

	signer, err := transactionSigner.NewTransactionSigner(&transactionSigner.SignerConfig{
		PrivateKey:          cfg.PrivateKey,
		ConfirmationTimeout: cfg.ConfirmationTimeout,
	}, ethClient, l)
	if err != nil {
		return fmt.Errorf("failed to create transaction signer: %w", err)
	}

	registry, err := caller.NewContractCaller(ethClient, signer,
		common.HexToAddress(cfg.RegistryAddress), l)
	if err != nil {
		return fmt.Errorf("failed to create contract caller: %w", err)
	}

	if len(cfg.ThresholdNodes) == 0 {
		return fmt.Errorf("at least one threshold network node is required (set %s)", config.EnvFeedbackThresholdNodes)
	}
	quorum := (2*len(cfg.ThresholdNodes) + 2) / 3
	gateway, err := encryption.NewGateway(l, string(cfg.PolicyChain), cfg.ThresholdNodes, quorum)
	if err != nil {
		return fmt.Errorf("failed to create encryption gateway: %w", err)
	}
	connectCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := gateway.Connect(connectCtx); err != nil {
		return fmt.Errorf("failed to connect to threshold network: %w", err)
	}

	transport, err := mail.NewHTTPTransport(l, cfg.MailAPIURL, []byte(cfg.MailSeed))
	if err != nil {
		return fmt.Errorf("failed to create mail transport: %w", err)
	}
	renderer, err := mail.NewDefaultRenderer()
	if err != nil {
		return fmt.Errorf("failed to create mail renderer: %w", err)
	}
	interactionDispatcher, err := mail.NewDispatcher(l, cfg.InteractionLinkBase, renderer, transport)
	if err != nil {
		return fmt.Errorf("failed to create interaction dispatcher: %w", err)
	}
	disclosureDispatcher, err := mail.NewDispatcher(l, cfg.DisclosureLinkBase, renderer, transport)
	if err != nil {
		return fmt.Errorf("failed to create disclosure dispatcher: %w", err)
	}

	serviceID, err := cfg.ServiceIDBig()
	if err != nil {
		return err
	}

	var replayGuard *service.ReplayGuard
	if cfg.ReplayWindow > 0 {
		replayGuard = service.NewReplayGuard(cfg.ReplayWindow)
	}

	svc, err := service.NewFeedbackService(&service.ServiceParams{
		Logger:              l,
		ServiceID:           serviceID,
		Registry:            registry,
		Encrypter:           gateway,
		InteractionNotifier: interactionDispatcher,
		DisclosureNotifier:  disclosureDispatcher,
		ReplayGuard:         replayGuard,
	})
	if err != nil {
		return fmt.Errorf("failed to create feedback service: %w", err)
	}

	server := service.NewServer(l, svc, cfg.Port, requestsPerSecond, requestBurst)
	if err := server.Start(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	l.Sugar().Infow("Feedback server started",
		"port", cfg.Port,
		"chain", cfg.PolicyChain,
		"registry", cfg.RegistryAddress,
		"sender", signer.GetFromAddress().Hex(),
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	l.Sugar().Info("Shutting down")
	return server.Stop()
}
