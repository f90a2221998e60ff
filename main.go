package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/Dileepkumaryarramasu/ai-agent-blog/generator"
	"github.com/Dileepkumaryarramasu/ai-agent-blog/publisher"
	"github.com/Dileepkumaryarramasu/ai-agent-blog/server"
)

const (
	defaultConfigPath = "config/config.json"
	defaultNiche      = "budget camping gear for beginners"

	providerOpenAI = "openai"
	providerHF     = "hf"
	providerMock   = "mock"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", defaultConfigPath, "path to config.json")
	niche := flag.String("niche", "", "niche to write about (overrides NICHE)")
	provider := flag.String("provider", "", "llm provider: openai, hf, or mock (overrides USE_OPENAI)")
	outDir := flag.String("out", "", "output directory for posts (overrides config.out_dir)")
	htmlPreview := flag.Bool("html", false, "also write an HTML preview next to the post")
	list := flag.Bool("list", false, "list saved posts and exit")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	explicitConfig := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "config" {
			explicitConfig = true
		}
	})

	cfg, err := loadConfig(*configPath, explicitConfig)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *outDir != "" {
		cfg.OutDir = *outDir
	}

	pub := publisher.New(cfg, verbose, log.Default())

	if *list {
		infos, err := pub.ListPosts()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, info := range infos {
			fmt.Printf("%s\t%s\t%s\n", info.Date, info.Filename, info.Title)
		}
		return
	}

	spec := generator.Spec{
		Niche:        resolveNiche(*niche),
		AffiliateURL: cfg.AffiliateURL,
	}

	prov := resolveProvider(*provider, cfg)
	llm, err := buildLLM(prov, cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// Web server mode
	if *serve {
		agent, err := generator.NewAgent(llm)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		srv, err := server.New(agent, pub, spec)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.ServerAddr
		if *addr != "" {
			listen = *addr
		}
		if listen == "" {
			listen = ":8080"
		}
		log.Printf("Starting web server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	log.Printf("[cli] generating post provider=%s niche=%q", prov, spec.Niche)
	path, err := runOnce(context.Background(), llm, pub, spec, *htmlPreview)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log.Printf("[cli] saved post to %s", path)
	fmt.Println(path)
}

// runOnce is the single-shot pipeline: generate one post and save it.
func runOnce(ctx context.Context, llm generator.LLMClient, pub *publisher.Publisher, spec generator.Spec, htmlPreview bool) (string, error) {
	agent, err := generator.NewAgent(llm)
	if err != nil {
		return "", err
	}
	post, err := agent.Generate(ctx, spec)
	if err != nil {
		return "", err
	}
	path, err := pub.SavePost(post.Title, post.Markdown)
	if err != nil {
		return "", err
	}
	if htmlPreview {
		if _, err := pub.SavePreview(path); err != nil {
			return "", err
		}
	}
	return path, nil
}

// loadConfig tolerates a missing file at the default path; a path the user
// asked for explicitly must exist.
func loadConfig(path string, explicit bool) (publisher.Config, error) {
	cfg, err := publisher.LoadConfig(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return publisher.Config{}, nil
		}
		return publisher.Config{}, err
	}
	return cfg, nil
}

// resolveProvider picks the provider with precedence flag > USE_OPENAI env >
// config file > openai.
func resolveProvider(flagVal string, cfg publisher.Config) string {
	if flagVal != "" {
		return flagVal
	}
	if v, ok := os.LookupEnv("USE_OPENAI"); ok {
		if truthy(v) {
			return providerOpenAI
		}
		return providerHF
	}
	if cfg.LLM != nil && cfg.LLM.Provider != "" {
		return cfg.LLM.Provider
	}
	return providerOpenAI
}

func resolveNiche(flagVal string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv("NICHE"); v != "" {
		return v
	}
	return defaultNiche
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "yes":
		return true
	}
	return false
}

// buildLLM assembles the provider client from config plus the credential
// environment variables.
func buildLLM(provider string, cfg publisher.Config) (generator.LLMClient, error) {
	settings := generator.LLMSettings{Provider: provider}
	if cfg.LLM != nil {
		settings.Model = cfg.LLM.Model
		settings.APIKey = cfg.LLM.APIKey
		settings.BaseURL = cfg.LLM.BaseURL
	}

	switch provider {
	case providerOpenAI:
		if settings.APIKey == "" {
			settings.APIKey = os.Getenv("OPENAI_API_KEY")
		}
		return generator.NewOpenAILLMFromConfig(&settings)
	case providerHF:
		if settings.APIKey == "" {
			settings.APIKey = os.Getenv("HF_INFERENCE_API_TOKEN")
		}
		return generator.NewHFLLMFromConfig(&settings)
	case providerMock:
		return generator.MockLLM{}, nil
	default:
		return nil, fmt.Errorf("%w: llm provider %s not supported", generator.ErrConfiguration, provider)
	}
}
