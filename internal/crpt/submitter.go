package crpt

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/AlexKimmel/CrptLite/internal/auth"
)

const createDocumentPath = "/lk/documents/create"

var (
	// ErrTransport classifies network/IO failures during the POST. The
	// submitted call still yields an empty body; nothing is retried.
	ErrTransport = errors.New("transport failure")
	// ErrSerialize classifies request body encoding failures.
	ErrSerialize = errors.New("serialization failure")
)

// Gate admits an operation or blocks until it may start.
type Gate interface {
	Acquire(ctx context.Context) error
}

// Hooks receive submitter events for metrics wiring. Nil funcs are skipped.
type Hooks struct {
	// OnWait reports the time a submission spent blocked in the gate.
	OnWait func(d time.Duration)
	// OnResult reports each submission outcome; gate wait excluded from d.
	OnResult func(outcome string, d time.Duration)
}

// Outcome labels reported through Hooks.OnResult.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
)

// SubmitterConfig carries the registry settings. ProductGroup may be empty;
// it is then omitted from the request body.
type SubmitterConfig struct {
	BaseURL      string
	Credentials  auth.Credentials
	ProductGroup ProductGroup
}

// Submitter registers documents with the CRPT registry, throttled by the
// injected gate. Safe for concurrent use.
type Submitter struct {
	cfg        SubmitterConfig
	gate       Gate
	transport  Transport
	serializer Serializer
	log        zerolog.Logger
	hooks      Hooks
}

func NewSubmitter(cfg SubmitterConfig, gate Gate, transport Transport, serializer Serializer, logger zerolog.Logger, hooks Hooks) *Submitter {
	return &Submitter{
		cfg:        cfg,
		gate:       gate,
		transport:  transport,
		serializer: serializer,
		log:        logger,
		hooks:      hooks,
	}
}

// SubmitRF registers a document for goods produced in the RF: MANUAL format,
// LP_INTRODUCE_GOODS type.
func (s *Submitter) SubmitRF(ctx context.Context, doc *Document, signature string) (string, error) {
	return s.Submit(ctx, doc, signature, FormatManual, TypeIntroduceGoods)
}

// Submit registers a document with the given format and type. It blocks on
// the gate, then performs exactly one POST. A transport failure yields an
// empty body and an error wrapping ErrTransport; a cancelled gate wait aborts
// the call with ctx's error before anything is sent.
func (s *Submitter) Submit(ctx context.Context, doc *Document, signature string, format DocFormat, typ DocType) (string, error) {
	waitStart := time.Now()
	if err := s.gate.Acquire(ctx); err != nil {
		return "", fmt.Errorf("admission aborted: %w", err)
	}
	if s.hooks.OnWait != nil {
		s.hooks.OnWait(time.Since(waitStart))
	}

	payload, err := s.buildPayload(doc, signature, format, typ)
	if err != nil {
		return "", err
	}

	start := time.Now()
	raw, err := s.transport.Post(ctx, s.cfg.BaseURL+createDocumentPath, s.cfg.Credentials.Header(), payload)
	if err != nil {
		s.report(OutcomeTransport, start)
		s.log.Error().Err(err).Str("doc_id", doc.DocID).Msg("document registration failed")
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	s.report(OutcomeOK, start)
	s.log.Info().Str("doc_id", doc.DocID).Str("type", string(typ)).Msg("document registered")
	return string(raw), nil
}

// buildPayload assembles the base64 envelope. A failed or empty document
// serialization degrades to an empty encoded document; the registry rejects
// it, the call itself does not abort.
func (s *Submitter) buildPayload(doc *Document, signature string, format DocFormat, typ DocType) ([]byte, error) {
	converted, err := s.serializer.Convert(doc)
	if err != nil {
		s.log.Warn().Err(err).Str("doc_id", doc.DocID).Msg("document serialization failed, sending empty payload")
		converted = nil
	}

	b := body{
		DocumentFormat:  format,
		ProductDocument: base64.StdEncoding.EncodeToString(converted),
		ProductGroup:    s.cfg.ProductGroup,
		Signature:       base64.StdEncoding.EncodeToString([]byte(signature)),
		Type:            typ,
	}
	payload, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialize, err)
	}
	return payload, nil
}

func (s *Submitter) report(outcome string, start time.Time) {
	if s.hooks.OnResult != nil {
		s.hooks.OnResult(outcome, time.Since(start))
	}
}
