package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"ai_content_generator/agent"
	"ai_content_generator/config"
	"ai_content_generator/publisher"
	"ai_content_generator/schema"
	"ai_content_generator/server"
	"ai_content_generator/storage"
	"ai_content_generator/trace"
	"ai_content_generator/workflow"
)

var verbose bool

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	configPath := flag.String("config", "config/config.json", "path to config.json")
	topic := flag.String("topic", "", "topic for content generation")
	platformArg := flag.String("platform", "", "target platform: "+joinPlatforms())
	toneArg := flag.String("tone", "", "tone for the generated content: "+joinTones())
	publish := flag.Bool("publish", false, "publish the result to LinkedIn")
	serve := flag.Bool("serve", false, "start web server")
	addr := flag.String("addr", "", "http listen address when --serve (overrides config.server_addr)")
	linkedinAuth := flag.Bool("linkedin-auth", false, "run the LinkedIn OAuth flow and save the token to .env")
	oauthAddr := flag.String("oauth-addr", "localhost:8000", "callback listen address for --linkedin-auth")
	flag.BoolVar(&verbose, "v", false, "enable info logs")
	flag.Parse()

	// .env is optional; environment variables win when both exist.
	_ = godotenv.Load()

	if *linkedinAuth {
		if err := runLinkedInAuth(*oauthAddr); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	graph, tracer, err := buildGraph(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer tracer.Sync()

	// Web server mode
	if *serve {
		srv, err := server.New(graph, publisher.TokenFromEnv())
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

	if *topic == "" || *platformArg == "" || *toneArg == "" {
		fmt.Fprintln(os.Stderr, "--topic, --platform, and --tone are required")
		os.Exit(1)
	}
	platform, err := schema.ParsePlatform(*platformArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	tone, err := schema.ParseTone(*toneArg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	req := schema.Request{Topic: *topic, Platform: platform, Tone: tone}

	ctx := context.Background()
	log.Printf("[cli] generating topic=%q platform=%s tone=%s", req.Topic, req.Platform, req.Tone)
	state, err := graph.Run(ctx, req)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	displayResults(state)

	if *publish {
		if err := publishToLinkedIn(ctx, state); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}

// buildGraph wires the stage agents behind the configured provider.
func buildGraph(cfg config.Config) (*workflow.Graph, *trace.Tracer, error) {
	var (
		llm    agent.LLMClient
		images agent.ImageClient
	)
	switch cfg.LLM.Provider {
	case "openai":
		key, err := cfg.ResolveAPIKey()
		if err != nil {
			return nil, nil, err
		}
		client, err := agent.NewOpenAILLMFromConfig(&agent.LLMSettings{
			Provider:   cfg.LLM.Provider,
			Model:      cfg.LLM.Model,
			ImageModel: cfg.LLM.ImageModel,
			APIKey:     key,
			BaseURL:    cfg.LLM.BaseURL,
		})
		if err != nil {
			return nil, nil, err
		}
		llm, images = client, client
	case "mock":
		// Offline stand-in for local debugging; no credentials needed.
		llm, images = agent.MockLLM{}, agent.MockImage{}
	default:
		return nil, nil, fmt.Errorf("llm provider %s not supported", cfg.LLM.Provider)
	}

	store, err := storage.NewImageStore(cfg.ImagesDir)
	if err != nil {
		return nil, nil, err
	}
	tracer, err := trace.New(verbose)
	if err != nil {
		return nil, nil, err
	}

	research, err := agent.NewResearchAgent(llm)
	if err != nil {
		return nil, nil, err
	}
	content, err := agent.NewContentAgent(llm)
	if err != nil {
		return nil, nil, err
	}
	image, err := agent.NewImageAgent(llm, images, store)
	if err != nil {
		return nil, nil, err
	}

	graph, err := workflow.New(research, content, image, tracer)
	if err != nil {
		return nil, nil, err
	}
	return graph, tracer, nil
}

func displayResults(state *workflow.State) {
	banner := strings.Repeat("=", 50)
	fmt.Println(banner)
	fmt.Printf("GENERATED CONTENT FOR %s\n", strings.ToUpper(string(state.Request.Platform)))
	fmt.Println(banner)

	if state.Content.Title != "" {
		fmt.Println("\nTITLE: " + state.Content.Title)
	}
	fmt.Println("\nCONTENT:")
	fmt.Println(state.Content.Content)

	if state.Image != nil {
		fmt.Println("\nGENERATED IMAGE:")
		fmt.Printf("Prompt: %s\n", state.Image.ImagePrompt)
		fmt.Printf("Saved to: %s\n", state.Image.ImagePath)
	}
	if state.ImageErr != nil {
		fmt.Printf("\nWARNING: image generation failed, content is still usable: %v\n", state.ImageErr)
	}
	fmt.Println(banner)
}

func publishToLinkedIn(ctx context.Context, state *workflow.State) error {
	client, err := publisher.New(ctx, publisher.TokenFromEnv(), verbose, log.Default())
	if err != nil {
		return err
	}
	var postID string
	if state.Image != nil {
		postID, err = client.PostImage(ctx, *state.Content, state.Image.ImagePath)
	} else {
		postID, err = client.PostText(ctx, *state.Content)
	}
	if err != nil {
		return err
	}
	log.Printf("[cli] published to linkedin post_id=%s", postID)
	fmt.Println(postID)
	return nil
}

func runLinkedInAuth(listenAddr string) error {
	token, err := publisher.Authorize(context.Background(), listenAddr, ".env")
	if err != nil {
		return err
	}
	fmt.Printf("Access token saved to .env (ends with ...%s)\n", tail(token, 6))
	return nil
}

func tail(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

func joinPlatforms() string {
	parts := make([]string, 0, len(schema.Platforms()))
	for _, p := range schema.Platforms() {
		parts = append(parts, string(p))
	}
	return strings.Join(parts, "|")
}

func joinTones() string {
	parts := make([]string, 0, len(schema.Tones()))
	for _, t := range schema.Tones() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, "|")
}
