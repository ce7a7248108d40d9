// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package langserver

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"os"
	"sync"

	"github.com/golang/glog"
	"github.com/sourcegraph/jsonrpc2"

	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/assembler"
	"github.com/yoavbh10/Laboratory-C-Final-Project/pkg/preproc"
)

const (
	SERVER_NAME      = "asm10"
	SYNC_FULL        = 1
	DEFAULT_TCP_ADDR = "127.0.0.1:2035"
)

// Server assembles open documents and publishes their diagnostics. Each
// connection gets its own Server.
type Server struct {
	Assembler assembler.Config
	Preproc   preproc.Config

	mu        sync.Mutex
	documents map[DocumentURI]*document
}

func NewServer(asmConfig assembler.Config, preConfig preproc.Config) *Server {
	return &Server{
		Assembler: asmConfig,
		Preproc:   preConfig,
		documents: make(map[DocumentURI]*document),
	}
}

// Serve runs the protocol over rwc until the peer disconnects or ctx ends.
func (s *Server) Serve(ctx context.Context, rwc io.ReadWriteCloser) {
	conn := jsonrpc2.NewConn(
		ctx, jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), s,
	)

	select {
	case <-conn.DisconnectNotify():
	case <-ctx.Done():
		conn.Close()
	}
}

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}

	return os.Stdout.Close()
}

func ServeStdio(ctx context.Context, asmConfig assembler.Config, preConfig preproc.Config) {
	NewServer(asmConfig, preConfig).Serve(ctx, stdrwc{})
}

// ListenAndServeTCP accepts connections on addr until ctx ends, serving each
// with a fresh Server.
func ListenAndServeTCP(ctx context.Context, addr string, asmConfig assembler.Config, preConfig preproc.Config) error {
	listener, err := net.Listen("tcp", addr)

	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	glog.Infof("listening for TCP connections on %s", listener.Addr())

	connectionCount := 0

	for {
		conn, err := listener.Accept()

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}

			return err
		}

		connectionCount++
		id := connectionCount
		glog.Infof("connection #%d from %s", id, conn.RemoteAddr())

		go func() {
			NewServer(asmConfig, preConfig).Serve(ctx, conn)
			glog.Infof("connection #%d closed", id)
		}()
	}
}

func (s *Server) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	glog.V(1).Infof("request: %s", req.Method)

	switch req.Method {
	case "initialize":
		conn.Reply(ctx, req.ID, InitializeResult{
			Capabilities: ServerCapabilities{
				TextDocumentSync: SYNC_FULL,
				HoverProvider:    true,
			},
			ServerInfo: ServerInfo{SERVER_NAME},
		})

	case "initialized":

	case "textDocument/didOpen":
		params := DidOpenTextDocumentParams{}

		if s.decode(ctx, conn, req, &params) {
			s.update(ctx, conn, params.TextDocument)
		}

	case "textDocument/didChange":
		params := DidChangeTextDocumentParams{}

		if !s.decode(ctx, conn, req, &params) || len(params.ContentChanges) == 0 {
			return
		}

		s.mu.Lock()
		item := TextDocumentItem{URI: params.TextDocument.URI}
		if doc, exists := s.documents[params.TextDocument.URI]; exists {
			item = doc.Item
		}
		s.mu.Unlock()

		item.Version = params.TextDocument.Version
		item.Text = params.ContentChanges[len(params.ContentChanges)-1].Text
		s.update(ctx, conn, item)

	case "textDocument/didClose":
		params := DidCloseTextDocumentParams{}

		if s.decode(ctx, conn, req, &params) {
			s.mu.Lock()
			delete(s.documents, params.TextDocument.URI)
			s.mu.Unlock()

			// Clear what the client still shows for the closed document.
			conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
				URI:         params.TextDocument.URI,
				Diagnostics: []Diagnostic{},
			})
		}

	case "textDocument/hover":
		params := TextDocumentPositionParams{}

		if !s.decode(ctx, conn, req, &params) {
			return
		}

		s.mu.Lock()
		doc, exists := s.documents[params.TextDocument.URI]
		var text string
		var ok bool
		if exists {
			text, ok = doc.hover(params.Position)
		}
		s.mu.Unlock()

		if !ok {
			conn.Reply(ctx, req.ID, nil)
			return
		}

		conn.Reply(ctx, req.ID, Hover{MarkupContent{"markdown", text}})

	case "shutdown":
		conn.Reply(ctx, req.ID, nil)

	case "exit":
		conn.Close()

	default:
		if !req.Notif {
			conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: "method not supported: " + req.Method,
			})
		}
	}
}

// decode unmarshals the request parameters into params, replying with an
// error to requests whose parameters are malformed.
func (s *Server) decode(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request, params interface{}) bool {
	if req.Params != nil {
		if err := json.Unmarshal(*req.Params, params); err == nil {
			return true
		}
	}

	glog.Warningf("invalid parameters for %s", req.Method)

	if !req.Notif {
		conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidParams,
			Message: "invalid parameters",
		})
	}

	return false
}

func (s *Server) update(ctx context.Context, conn *jsonrpc2.Conn, item TextDocumentItem) {
	doc := &document{Item: item}
	diagnostics := s.analyze(doc)

	s.mu.Lock()
	s.documents[item.URI] = doc
	s.mu.Unlock()

	glog.V(1).Infof("%s: %d diagnostics", item.URI, len(diagnostics))

	conn.Notify(ctx, "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         item.URI,
		Version:     item.Version,
		Diagnostics: diagnostics,
	})
}
