package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vladimirvalcourt/phishguard/internal/adapters/gateway"
	"github.com/vladimirvalcourt/phishguard/internal/adapters/store"
	"github.com/vladimirvalcourt/phishguard/internal/config"
	"github.com/vladimirvalcourt/phishguard/internal/core"
	"github.com/vladimirvalcourt/phishguard/internal/factory"
	"github.com/vladimirvalcourt/phishguard/internal/logging"
	"github.com/vladimirvalcourt/phishguard/internal/utils"
)

var (
	// LLM provider flags
	provider    = flag.String("provider", "none", "LLM provider for second opinions (openai, gemini, bedrock, none)")
	maxTokens   = flag.Int("max-tokens", 500, "Maximum tokens for LLM response")
	temperature = flag.Float64("temperature", 0.3, "Temperature for LLM generation")
	maxBodySize = flag.Int("max-body-size", 4096, "Maximum email body size to send to LLM")
	llmTimeout  = flag.Duration("llm-timeout", 15*time.Second, "Timeout for the LLM call")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-3.5-turbo", "OpenAI model name")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Analysis flags
	trustedDomains = flag.String("trusted-domains", "", "Comma-separated list of trusted sender domains")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	var cfg *config.Config
	if *configFile != "" {
		cfg, err = config.NewFromFile(*configFile)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", *configFile))
	} else {
		cfg = createConfigFromFlags()
	}

	llmClient, err := factory.NewLLMFactory(cfg, logger).CreateClient()
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	scorer, err := core.NewRiskScorer(cfg.GetWeights())
	if err != nil {
		logger.Fatal("Invalid scoring weights", zap.Error(err))
	}

	timeout, err := cfg.GetDuration("llm.timeout")
	if err != nil {
		logger.Fatal("Invalid LLM timeout", zap.Error(err))
	}

	textProc := utils.NewTextProcessor(logger)
	urlAnalyzer := core.NewURLAnalyzer(cfg.GetStringSlice("scoring.legitimate_domains"), logger)
	extractor := core.NewFeatureExtractor(urlAnalyzer, logger)
	opinion := core.NewSecondOpinion(
		llmClient, textProc, logger, timeout,
		cfg.GetInt("openai.max_tokens"),
		float32(cfg.GetFloat64("openai.temperature")),
		cfg.GetInt("openai.max_body_size"),
	)

	service := core.NewAnalyzerService(
		extractor, scorer, opinion,
		nil, // no quota for one-shot runs
		store.NewMemoryStore(logger),
		logger,
		cfg.GetStringSlice("scoring.trusted_sender_domains"),
	)

	cli, err := gateway.NewCliGateway(service, logger, *verbose)
	if err != nil {
		logger.Fatal("Failed to create CLI gateway", zap.Error(err))
	}

	email, err := readEmail(logger)
	if err != nil {
		logger.Fatal("Failed to read email", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if _, err := cli.ProcessEmail(ctx, "cli", email); err != nil {
		os.Exit(1)
	}
}

// readEmail parses an RFC 822 message from the input file or stdin.
func readEmail(logger *zap.Logger) (core.EmailContent, error) {
	var reader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			return core.EmailContent{}, fmt.Errorf("failed to open input file %s: %w", *inputFile, err)
		}
		defer file.Close()
		reader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		reader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	msg, err := mail.ReadMessage(bufio.NewReader(reader))
	if err != nil {
		return core.EmailContent{}, fmt.Errorf("failed to parse email: %w", err)
	}

	body, err := gateway.ExtractText(msg)
	if err != nil {
		return core.EmailContent{}, fmt.Errorf("failed to extract text content: %w", err)
	}

	sender := msg.Header.Get("From")
	if addr, err := mail.ParseAddress(sender); err == nil {
		sender = addr.Address
	}

	return core.EmailContent{
		Subject: gateway.DecodeHeader(msg.Header.Get("Subject")),
		Body:    body,
		Sender:  sender,
	}, nil
}

// createConfigFromFlags builds a configuration from the command line flags.
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("llm.provider", *provider)
	v.Set("llm.timeout", llmTimeout.String())

	v.Set("openai.api_key", *openaiAPIKey)
	v.Set("openai.model_name", *openaiModelName)
	v.Set("openai.max_tokens", *maxTokens)
	v.Set("openai.temperature", *temperature)
	v.Set("openai.max_body_size", *maxBodySize)

	v.Set("gemini.api_key", *geminiAPIKey)
	v.Set("gemini.model_name", *geminiModelName)
	v.Set("gemini.max_tokens", *maxTokens)
	v.Set("gemini.temperature", *temperature)
	v.Set("gemini.max_body_size", *maxBodySize)

	v.Set("bedrock.region", *bedrockRegion)
	v.Set("bedrock.model_id", *bedrockModelID)
	v.Set("bedrock.max_tokens", *maxTokens)
	v.Set("bedrock.temperature", *temperature)
	v.Set("bedrock.max_body_size", *maxBodySize)

	if *trustedDomains != "" {
		domains := strings.Split(*trustedDomains, ",")
		for i, domain := range domains {
			domains[i] = strings.TrimSpace(domain)
		}
		v.Set("scoring.trusted_sender_domains", domains)
	}

	return config.NewFromViper(v)
}
