// SPDX-License-Identifier: Apache-2.0
package main

import (
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"bread/internal/config"
	"bread/internal/lsp"
)

const lsName = "bread" // Name identifier for the language server

var (
	version = "0.1.0"        // Server version
	handler protocol.Handler // Protocol handler instance (wired up below)
)

func main() {
	commonlog.Configure(1, nil)
	log := commonlog.GetLogger("bread.lsp")

	// Settings come from the nearest bread.toml of the working directory.
	cfg, err := config.LoadNearest(".")
	if err != nil {
		log.Errorf("ignoring config: %s", err)
		cfg = config.Default()
	}

	breadHandler := lsp.NewHandler(cfg)

	handler = protocol.Handler{
		Initialize:                     breadHandler.Initialize,
		Initialized:                    breadHandler.Initialized,
		Shutdown:                       breadHandler.Shutdown,
		SetTrace:                       breadHandler.SetTrace,
		TextDocumentDidOpen:            breadHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           breadHandler.TextDocumentDidClose,
		TextDocumentDidChange:          breadHandler.TextDocumentDidChange,
		TextDocumentCompletion:         breadHandler.TextDocumentCompletion,
		TextDocumentSemanticTokensFull: breadHandler.TextDocumentSemanticTokensFull,
	}

	// debug=false keeps glsp's own message tracing off
	s := server.NewServer(&handler, lsName, false)

	log.Infof("starting bread LSP server %s", version)

	if err := s.RunStdio(); err != nil {
		log.Errorf("error running bread LSP server: %s", err)
		os.Exit(1)
	}
}
