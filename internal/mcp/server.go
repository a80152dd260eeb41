package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/arturoeanton/resume-insight-assistant/internal/service"
)

// Server exposes the candidate question-answering pipeline as Model Context
// Protocol tools over JSON-RPC.
type Server struct {
	chatService *service.ChatService
	port        string
}

// NewServer creates a new MCP server.
func NewServer(chatService *service.ChatService, port string) *Server {
	return &Server{chatService: chatService, port: port}
}

// Tool represents an MCP tool definition.
type Tool struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

// JSONRPCRequest represents a JSON-RPC 2.0 request.
type JSONRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// JSONRPCResponse represents a JSON-RPC 2.0 response.
type JSONRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

// RPCError represents a JSON-RPC error.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

var errMissingQuery = errors.New("argument 'query' is required")

const queryArgsSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string", "description": "Natural-language question about the candidates"}
	},
	"required": ["query"]
}`

// Handler returns the HTTP handler serving /mcp.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/mcp", s.handleRPC)
	return mux
}

// Start begins the MCP server on the configured port.
func (s *Server) Start() error {
	slog.Info("MCP server starting", "port", s.port)
	return http.ListenAndServe(":"+s.port, s.Handler())
}

func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req JSONRPCRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, nil, -32700, "parse error")
		return
	}

	var result interface{}
	var err error

	switch req.Method {
	case "initialize":
		result = map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"serverInfo": map[string]string{
				"name":    "resume-insight-assistant",
				"version": "0.1.0",
			},
			"capabilities": map[string]interface{}{
				"tools": map[string]bool{"listChanged": false},
			},
		}
	case "tools/list":
		result = listTools()
	case "tools/call":
		result, err = s.callTool(r.Context(), req.Params)
	default:
		writeError(w, req.ID, -32601, "method not found")
		return
	}

	if err != nil {
		writeError(w, req.ID, -32602, err.Error())
		return
	}
	writeResult(w, req.ID, result)
}

func listTools() map[string]interface{} {
	tools := []Tool{
		{
			Name:        "ask_candidates",
			Description: "Answer a question using only the candidate records relevant to it",
			InputSchema: json.RawMessage(queryArgsSchema),
		},
		{
			Name:        "search_candidates",
			Description: "Return the candidate records semantically relevant to a query, without generating an answer",
			InputSchema: json.RawMessage(queryArgsSchema),
		},
		{
			Name:        "analyze_query",
			Description: "Extract intent and search criteria from a query",
			InputSchema: json.RawMessage(queryArgsSchema),
		},
	}
	return map[string]interface{}{"tools": tools}
}

func (s *Server) callTool(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var req struct {
		Name      string `json:"name"`
		Arguments struct {
			Query string `json:"query"`
		} `json:"arguments"`
	}
	if err := json.Unmarshal(params, &req); err != nil {
		return nil, fmt.Errorf("invalid params: %w", err)
	}
	query := req.Arguments.Query

	switch req.Name {
	case "ask_candidates":
		if query == "" {
			return nil, errMissingQuery
		}
		resp := s.chatService.Answer(ctx, query)
		return textContent(resp.Reply, map[string]interface{}{"outcome": resp.Outcome}), nil

	case "search_candidates":
		if query == "" {
			return nil, errMissingQuery
		}
		block, hits := s.chatService.Search(ctx, query)
		ids := make([]string, len(hits))
		for i, h := range hits {
			ids[i] = h.ID
		}
		return textContent(block, map[string]interface{}{"candidate_ids": ids}), nil

	case "analyze_query":
		if query == "" {
			return nil, errMissingQuery
		}
		return jsonContent(s.chatService.Analyze(ctx, query))

	default:
		return nil, fmt.Errorf("unknown tool: %s", req.Name)
	}
}

func textContent(text string, extra map[string]interface{}) map[string]interface{} {
	out := map[string]interface{}{
		"content": []map[string]interface{}{
			{"type": "text", "text": text},
		},
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

func jsonContent(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	return textContent(string(data), nil), nil
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, id interface{}, code int, message string) {
	resp := JSONRPCResponse{JSONRPC: "2.0", ID: id, Error: &RPCError{Code: code, Message: message}}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
