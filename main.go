package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"llm_code_deployment/config"
	"llm_code_deployment/deployer"
	"llm_code_deployment/generator"
	"llm_code_deployment/server"
)

func main() {
	serve := flag.Bool("serve", false, "start the HTTP API server")
	addr := flag.String("addr", "", "listen address when --serve (overrides HOST/PORT)")
	task := flag.String("task", "", "task name for one-shot generation")
	brief := flag.String("brief", "", "task brief for one-shot generation")
	round := flag.Int("round", 1, "generation round (1 for initial, 2+ for revisions)")
	out := flag.String("out", "", "output directory for local fallback deploys (overrides OUT_DIR)")
	mock := flag.Bool("mock", false, "use the mock LLM instead of the configured API")
	verbose := flag.Bool("v", false, "enable debug logs")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *out != "" {
		cfg.OutDir = *out
	}

	log := newLogger(cfg.Debug || *verbose)
	if missing := cfg.MissingRequired(); len(missing) > 0 {
		log.Warnf("missing environment variables: %s (running degraded)", strings.Join(missing, ", "))
	}

	llm := buildLLM(cfg, *mock, log)
	agent := generator.NewAgent(llm)

	var github *deployer.Client
	if cfg.GitHubToken != "" && cfg.GitHubUsername != "" {
		github, err = deployer.NewClient(deployer.Options{
			Token:    cfg.GitHubToken,
			Username: cfg.GitHubUsername,
			Logger:   log,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	if *serve {
		srv, err := server.New(server.Options{
			Agent:        agent,
			GitHub:       github,
			Notifier:     deployer.NewNotifier(nil, log),
			SharedSecret: cfg.SharedSecret,
			OutDir:       cfg.OutDir,
			Logger:       log,
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		listen := cfg.Addr()
		if *addr != "" {
			listen = *addr
		}
		log.Infof("starting server on %s", listen)
		if err := http.ListenAndServe(listen, srv.Routes()); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	// One-shot mode: generate and deploy a single app from the command line.
	if *task == "" || *brief == "" {
		fmt.Fprintln(os.Stderr, "--task and --brief are required (or pass --serve)")
		os.Exit(1)
	}

	ctx := context.Background()
	b := generator.Brief{
		Task:  *task,
		Brief: *brief,
		Round: *round,
		Nonce: uuid.NewString(),
	}
	app, err := agent.Generate(ctx, b, nil)
	if err != nil {
		log.WithError(err).Warn("generation failed, using fallback app")
		app = generator.Fallback(*task)
	}

	var dep deployer.Deployment
	if github != nil {
		dep, err = github.Deploy(ctx, deployer.Request{AppName: *task, App: app})
		if err != nil {
			log.WithError(err).Warn("github deployment failed, deploying locally")
		}
	}
	if dep.RepoName == "" {
		dep, err = deployer.LocalDeploy(cfg.OutDir, *task, app)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	log.Info(deployer.FormatSummary(dep, app.Metadata))
	fmt.Println(dep.PagesURL)
}

func newLogger(debug bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if debug {
		log.SetLevel(logrus.DebugLevel)
	}
	return log
}

func buildLLM(cfg config.Config, mock bool, log *logrus.Logger) generator.LLMClient {
	if mock {
		return generator.MockLLM{}
	}
	if cfg.OpenAIAPIKey == "" {
		log.Warn("OPENAI_API_KEY unset; only deterministic builders and fallbacks are available")
		return nil
	}
	llm, err := generator.NewOpenAILLMFromConfig(&generator.LLMSettings{
		Model:   cfg.OpenAIModel,
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIAPIBase,
	})
	if err != nil {
		log.WithError(err).Warn("llm client unavailable")
		return nil
	}
	log.Infof("using model: %s", cfg.OpenAIModel)
	return llm
}
