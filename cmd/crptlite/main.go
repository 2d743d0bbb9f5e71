package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AlexKimmel/CrptLite/internal/auth"
	"github.com/AlexKimmel/CrptLite/internal/config"
	"github.com/AlexKimmel/CrptLite/internal/crpt"
	"github.com/AlexKimmel/CrptLite/internal/obs"
	"github.com/AlexKimmel/CrptLite/internal/ratelimit"
)

func main() {
	cfgPath := flag.String("config", "./config.yaml", "path to config file")
	docPath := flag.String("doc", "", "path to the document JSON file")
	sigPath := flag.String("sig", "", "path to the detached signature file")
	format := flag.String("format", string(crpt.FormatManual), "document format (MANUAL, XML, CSV)")
	docType := flag.String("type", string(crpt.TypeIntroduceGoods), "document type")
	flag.Parse()

	if *docPath == "" || *sigPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := obs.SetupLogger(cfg.Observability.LogLevel)

	doc, err := readDocument(*docPath)
	if err != nil {
		log.Fatalf("read document: %v", err)
	}
	sig, err := os.ReadFile(*sigPath)
	if err != nil {
		log.Fatalf("read signature: %v", err)
	}

	reg := prometheus.NewRegistry()
	metrics := obs.NewMetrics(reg)
	if addr := cfg.Observability.MetricsAddr; addr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error().Err(err).Msg("metrics server error")
			}
		}()
	}

	creds := auth.NewStatic(cfg.API.Token)
	if creds.IsZero() {
		logger.Warn().Msg("no auth token configured, submitting unauthenticated")
	}

	limiter := ratelimit.New(cfg.Limit.Requests, cfg.Limit.Window())
	transport := crpt.NewHTTPTransport(cfg.API.Timeout(), obs.Logger(logger), metrics.Middleware())
	submitter := crpt.NewSubmitter(
		crpt.SubmitterConfig{
			BaseURL:      cfg.API.BaseURL,
			Credentials:  creds,
			ProductGroup: crpt.ProductGroup(strings.ToUpper(cfg.API.ProductGroup)),
		},
		limiter,
		transport,
		crpt.JSONSerializer{},
		logger,
		metrics.Hooks(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	body, err := submitter.Submit(ctx, doc, string(sig),
		crpt.DocFormat(strings.ToUpper(*format)), crpt.DocType(strings.ToUpper(*docType)))
	if err != nil {
		logger.Error().Err(err).Msg("submission failed")
		os.Exit(1)
	}
	fmt.Println(body)
}

// readDocument loads the document and fills in a doc_id when the file
// carries none.
func readDocument(path string) (*crpt.Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc crpt.Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	if doc.DocID == "" {
		doc.DocID = uuid.NewString()
	}
	return &doc, nil
}
