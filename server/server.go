package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"llm_code_deployment/deployer"
	"llm_code_deployment/generator"
)

// Version reported by the health endpoints.
const Version = "1.0.0"

const requestTimeout = 120 * time.Second

// Server wires the generation and deployment pipeline behind the HTTP API.
type Server struct {
	agent   *generator.Agent
	github  *deployer.Client
	notify  *deployer.Notifier
	store   *deploymentStore
	limiter *rateLimiter
	log     *logrus.Logger
	secret  string
	outDir  string
}

// Options configures a Server.
type Options struct {
	Agent        *generator.Agent
	GitHub       *deployer.Client // nil degrades to local fallback deploys
	Notifier     *deployer.Notifier
	SharedSecret string
	OutDir       string
	Logger       *logrus.Logger
	// RequestsPerSecond/Burst bound per-client request rates; zero values
	// pick sane defaults.
	RequestsPerSecond float64
	Burst             int
}

func New(opts Options) (*Server, error) {
	if opts.Agent == nil {
		return nil, errors.New("generator agent required")
	}
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	notify := opts.Notifier
	if notify == nil {
		notify = deployer.NewNotifier(nil, log)
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = "out"
	}
	rps := opts.RequestsPerSecond
	if rps == 0 {
		rps = 5
	}
	burst := opts.Burst
	if burst == 0 {
		burst = 10
	}
	return &Server{
		agent:   opts.Agent,
		github:  opts.GitHub,
		notify:  notify,
		store:   newStore(),
		limiter: newRateLimiter(rps, burst),
		log:     log,
		secret:  opts.SharedSecret,
		outDir:  outDir,
	}, nil
}

// Routes builds the full handler chain.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.Use(metricsMiddleware)
	r.HandleFunc("/", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/request", s.handleRequest).Methods(http.MethodPost)
	api.HandleFunc("/evaluate", s.handleEvaluate).Methods(http.MethodPost)
	api.Use(sharedSecretAuth(s.secret, s.log))

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})

	var handler http.Handler = r
	handler = s.limiter.middleware(s.log)(handler)
	handler = corsMiddleware(handler)
	handler = requestLogging(s.log)(handler)
	return handler
}

// --- Request/response shapes ---

type taskRequest struct {
	Email         string                 `json:"email"`
	Secret        string                 `json:"secret"`
	Task          string                 `json:"task"`
	Round         int                    `json:"round"`
	Nonce         string                 `json:"nonce"`
	Brief         string                 `json:"brief"`
	EvaluationURL string                 `json:"evaluation_url"`
	Attachments   []generator.Attachment `json:"attachments"`
	ReturnCode    bool                   `json:"return_code"`
}

type evaluateRequest struct {
	Email          string         `json:"email"`
	Secret         string         `json:"secret"`
	Task           string         `json:"task"`
	Round          int            `json:"round"`
	Nonce          string         `json:"nonce"`
	EvaluationData map[string]any `json:"evaluation_data"`
	Timestamp      string         `json:"timestamp"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

type deploymentBlock struct {
	RepoName  string `json:"repo_name"`
	RepoURL   string `json:"repo_url"`
	CommitSHA string `json:"commit_sha"`
	PagesURL  string `json:"pages_url"`
}

type responseMetadata struct {
	Round     int    `json:"round"`
	Nonce     string `json:"nonce"`
	Timestamp string `json:"timestamp"`
}

type requestResponse struct {
	Success                bool             `json:"success"`
	Message                string           `json:"message"`
	Deployment             deploymentBlock  `json:"deployment"`
	EvaluationNotification deployer.Result  `json:"evaluation_notification"`
	Metadata               responseMetadata `json:"metadata"`
	Errors                 []string         `json:"errors"`
	Fallback               bool             `json:"fallback"`
	Code                   *generator.App   `json:"code,omitempty"`
}

// --- Handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
	})
}

// handleRequest runs the generate → deploy → notify pipeline. Downstream
// failures degrade to fallbacks and are reported in the errors list; the
// route answers 200 whenever a deployable artifact was produced.
func (s *Server) handleRequest(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Round < 1 {
		req.Round = 1
	}
	s.log.WithFields(logrus.Fields{"email": req.Email, "round": req.Round, "task": req.Task}).
		Info("processing generation request")

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	errs := []string{}
	brief := generator.Brief{
		Task:        req.Task,
		Brief:       req.Brief,
		Round:       req.Round,
		Nonce:       req.Nonce,
		Attachments: req.Attachments,
	}

	// Revision rounds reuse the prior app and repository when known.
	var prevApp *generator.App
	var existingRepo string
	if req.Round > 1 {
		if rec, ok := s.store.lookup(req.Email, req.Task); ok {
			prevApp = &rec.App
			if !rec.Deployment.Fallback {
				existingRepo = rec.Deployment.RepoName
			}
		}
	}

	app, err := s.agent.Generate(ctx, brief, prevApp)
	if err != nil {
		errs = append(errs, fmt.Sprintf("LLM generation error: %v", err))
		app = generator.Fallback(req.Task)
	}

	dep, deployErrs := s.deploy(ctx, req, app, existingRepo)
	errs = append(errs, deployErrs...)

	notification := deployer.Result{}
	if deployer.ValidateEvaluationURL(req.EvaluationURL) {
		notification = s.notify.Notify(ctx, req.EvaluationURL, req.Email, req.Task, req.Round, req.Nonce, dep, app.Metadata)
		if notification.Error != "" {
			errs = append(errs, "Evaluation notify failed: "+notification.Error)
		}
	}

	s.store.record(req.Email, req.Task, req.Round, app, dep)
	s.log.Info(deployer.FormatSummary(dep, app.Metadata))

	resp := requestResponse{
		Success: true,
		Message: "Application generated and deployed successfully",
		Deployment: deploymentBlock{
			RepoName:  dep.RepoName,
			RepoURL:   dep.RepoURL,
			CommitSHA: dep.CommitSHA,
			PagesURL:  dep.PagesURL,
		},
		EvaluationNotification: notification,
		Metadata: responseMetadata{
			Round:     req.Round,
			Nonce:     req.Nonce,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Errors:   errs,
		Fallback: dep.Fallback,
	}
	if req.ReturnCode {
		resp.Code = &app
	}
	writeJSON(w, http.StatusOK, resp)
}

// deploy pushes to GitHub when a client is configured, falling back to a
// local filesystem deployment on any failure.
func (s *Server) deploy(ctx context.Context, req taskRequest, app generator.App, existingRepo string) (deployer.Deployment, []string) {
	var errs []string
	if s.github != nil {
		dep, err := s.github.Deploy(ctx, deployer.Request{
			AppName:      req.Task,
			App:          app,
			Revision:     req.Round > 1,
			ExistingRepo: existingRepo,
		})
		if err == nil {
			return dep, errs
		}
		errs = append(errs, fmt.Sprintf("GitHub deployment failed: %v", err))
	}

	dep, err := deployer.LocalDeploy(s.outDir, req.Task, app)
	if err != nil {
		errs = append(errs, fmt.Sprintf("Local fallback deploy failed: %v", err))
		return deployer.Deployment{Fallback: true}, errs
	}
	return dep, errs
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.WithFields(logrus.Fields{
		"email": req.Email,
		"round": req.Round,
		"data":  req.EvaluationData,
	}).Info("received evaluation")

	s.store.addEvaluation(evaluationRecord{
		Email:      req.Email,
		Task:       req.Task,
		Round:      req.Round,
		Nonce:      req.Nonce,
		Data:       req.EvaluationData,
		ReceivedAt: time.Now(),
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"message":   "Evaluation received successfully",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// --- Helpers ---

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
