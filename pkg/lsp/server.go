// Package lsp serves sharplint diagnostics over the Language Server Protocol.
package lsp

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/yaklabco/sharplint/internal/logging"
	"github.com/yaklabco/sharplint/pkg/config"
	"github.com/yaklabco/sharplint/pkg/langdetect"
	"github.com/yaklabco/sharplint/pkg/lint"
)

// Name is the server name reported to clients.
const Name = "sharplint"

// ErrNoEngine is returned by New when Options.Engine is nil.
var ErrNoEngine = errors.New("lsp: engine is required")

// Options configures a Server.
type Options struct {
	// Engine parses and analyzes documents.
	Engine *lint.Engine

	// Config selects rules and severities. Nil uses config defaults.
	Config *config.Config

	// Version is reported in the initialize response.
	Version string

	// Logger receives server logs. Nil uses the default logger.
	Logger *log.Logger
}

// Server analyzes open documents and publishes their diagnostics.
type Server struct {
	engine  *lint.Engine
	session *lint.Session
	store   *Store
	logger  *log.Logger
	version string

	handler protocol.Handler

	mu       sync.Mutex
	shutdown bool
}

// New creates a server. Unknown rule keys in the configuration are logged and
// otherwise ignored.
func New(opts Options) (*Server, error) {
	if opts.Engine == nil {
		return nil, ErrNoEngine
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Default()
	}

	session, err := opts.Engine.NewSession(cfg)
	if session == nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	if err != nil {
		logger.Warn("configuration problems", logging.FieldError, err)
	}

	srv := &Server{
		engine:  opts.Engine,
		session: session,
		store:   NewStore(),
		logger:  logger,
		version: opts.Version,
	}
	srv.handler = protocol.Handler{
		Initialize:            srv.initialize,
		Initialized:           srv.initialized,
		Shutdown:              srv.shutdownRequest,
		SetTrace:              srv.setTrace,
		TextDocumentDidOpen:   srv.didOpen,
		TextDocumentDidChange: srv.didChange,
		TextDocumentDidSave:   srv.didSave,
		TextDocumentDidClose:  srv.didClose,
	}
	return srv, nil
}

// Handler returns the protocol handler.
func (s *Server) Handler() *protocol.Handler {
	return &s.handler
}

// Store returns the open-document store.
func (s *Server) Store() *Store {
	return s.store
}

// RunStdio serves the protocol over stdin and stdout until the client exits.
func (s *Server) RunStdio() error {
	s.logger.Info("language server starting", logging.FieldVersion, s.version)
	if err := server.NewServer(&s.handler, Name, false).RunStdio(); err != nil {
		return fmt.Errorf("serve stdio: %w", err)
	}
	return nil
}

// Diagnose analyzes one document and returns its LSP diagnostics. Documents
// that are not C# yield no diagnostics.
func (s *Server) Diagnose(ctx context.Context, doc Document) ([]protocol.Diagnostic, error) {
	path := doc.Path
	if path == "" {
		path = doc.URI
	}
	if !langdetect.IsCSharp(path) {
		return []protocol.Diagnostic{}, nil
	}

	content := []byte(doc.Text)
	tree, result, err := s.engine.AnalyzeFile(ctx, s.session, path, content)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	for _, fault := range result.Faults {
		logger.Warn("analyzer fault",
			logging.FieldAnalyzer, fault.Analyzer,
			logging.FieldKind, fault.Kind,
			logging.FieldPanic, fault.Value,
		)
	}

	result.Diagnostics.Sort()
	return ToProtocol(tree.Text, result.Diagnostics.Records()), nil
}

func (s *Server) publish(ctx *glsp.Context, doc Document) error {
	docCtx := logging.With(logging.WithLogger(context.Background(), s.logger), logging.FieldURI, doc.URI)
	logger := logging.FromContext(docCtx)

	diags, err := s.Diagnose(docCtx, doc)
	if err != nil {
		logger.Error("analysis failed", logging.FieldError, err)
		return err
	}

	logger.Debug("publishing diagnostics",
		logging.FieldDocVersion, doc.Version,
		logging.FieldDiagnosticsTotal, len(diags),
	)

	version := protocol.UInteger(toUint32(int(doc.Version)))
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(doc.URI),
		Version:     &version,
		Diagnostics: diags,
	})
	return nil
}

func (s *Server) clear(ctx *glsp.Context, uri string) {
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: []protocol.Diagnostic{},
	})
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		s.logger.Info("client connected", "client", params.ClientInfo.Name)
	}

	full := protocol.TextDocumentSyncKindFull
	caps := protocol.ServerCapabilities{
		TextDocumentSync: &protocol.TextDocumentSyncOptions{
			OpenClose: &protocol.True,
			Change:    &full,
			Save:      protocol.SaveOptions{IncludeText: &protocol.True},
		},
	}

	version := s.version
	return protocol.InitializeResult{
		Capabilities: caps,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	return nil
}

func (s *Server) shutdownRequest(_ *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

// ShuttingDown reports whether the client has requested shutdown.
func (s *Server) ShuttingDown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shutdown
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	doc := Document{
		URI:     uri,
		Path:    URIToPath(uri),
		Text:    params.TextDocument.Text,
		Version: int32(params.TextDocument.Version),
	}
	s.store.Set(doc)
	return s.publish(ctx, doc)
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	text, ok := fullText(params.ContentChanges[len(params.ContentChanges)-1])
	if !ok {
		return nil
	}

	uri := string(params.TextDocument.URI)
	doc := Document{
		URI:     uri,
		Path:    URIToPath(uri),
		Text:    text,
		Version: int32(params.TextDocument.Version),
	}
	if !s.store.Set(doc) {
		return nil
	}
	return s.publish(ctx, doc)
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	doc, ok := s.store.Get(string(params.TextDocument.URI))
	if !ok {
		return nil
	}
	if params.Text != nil {
		doc.Text = *params.Text
		s.store.Set(doc)
	}
	return s.publish(ctx, doc)
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.store.Delete(uri)
	s.clear(ctx, uri)
	return nil
}

// fullText extracts the document text from a full-sync change event.
func fullText(change any) (string, bool) {
	switch typed := change.(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		return typed.Text, true
	case protocol.TextDocumentContentChangeEvent:
		if typed.Range != nil {
			return "", false
		}
		return typed.Text, true
	default:
		return "", false
	}
}
