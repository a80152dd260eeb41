package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arturoeanton/resume-insight-assistant/internal/domain"
	"github.com/arturoeanton/resume-insight-assistant/internal/service"
	"github.com/arturoeanton/resume-insight-assistant/internal/testutil"
)

type rpcResult struct {
	Result struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
		Tools        []Tool   `json:"tools"`
		CandidateIDs []string `json:"candidate_ids"`
		Outcome      string   `json:"outcome"`
	} `json:"result"`
	Error *RPCError `json:"error"`
}

func newTestServer(t *testing.T, llm *testutil.ScriptedLLM) *httptest.Server {
	t.Helper()
	retriever := service.BuildRetrievalService(context.Background(), testutil.NewKeywordEmbedder(), domain.SampleCandidates(), service.DefaultRetrievalOptions())
	chat := service.NewChatService(service.NewIntentAnalyzer(llm, "m"), retriever, llm, "m")
	srv := httptest.NewServer(NewServer(chat, "0").Handler())
	t.Cleanup(srv.Close)
	return srv
}

func rpc(t *testing.T, srv *httptest.Server, method string, params interface{}) rpcResult {
	t.Helper()
	p, _ := json.Marshal(params)
	body, _ := json.Marshal(JSONRPCRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: p})
	resp, err := http.Post(srv.URL+"/mcp", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var out rpcResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	return out
}

func call(name, query string) map[string]interface{} {
	return map[string]interface{}{"name": name, "arguments": map[string]string{"query": query}}
}

func TestToolsList(t *testing.T) {
	out := rpc(t, newTestServer(t, &testutil.ScriptedLLM{}), "tools/list", nil)
	if len(out.Result.Tools) != 3 {
		t.Fatalf("expected 3 tools, got %d", len(out.Result.Tools))
	}
}

func TestAskCandidates(t *testing.T) {
	llm := &testutil.ScriptedLLM{StructuredReply: `{}`, FreeformReply: "Charlie knows Python."}
	out := rpc(t, newTestServer(t, llm), "tools/call", call("ask_candidates", "Who knows Python?"))
	if out.Error != nil {
		t.Fatal(out.Error.Message)
	}
	if out.Result.Content[0].Text != "Charlie knows Python." || out.Result.Outcome != string(domain.OutcomeAnswer) {
		t.Errorf("unexpected result: %+v", out.Result)
	}
}

func TestSearchCandidates_NoLLM(t *testing.T) {
	llm := &testutil.ScriptedLLM{}
	out := rpc(t, newTestServer(t, llm), "tools/call", call("search_candidates", "Who knows Python?"))
	if strings.Join(out.Result.CandidateIDs, ",") != "c3,c4,c1" {
		t.Errorf("candidate ids = %v", out.Result.CandidateIDs)
	}
	if len(llm.Calls()) != 0 {
		t.Error("search must not call the LLM")
	}
}

func TestAnalyzeQuery(t *testing.T) {
	llm := &testutil.ScriptedLLM{StructuredReply: `{"intent":"summarize_candidate","criteria":{"candidate_names":["Bob"]}}`}
	out := rpc(t, newTestServer(t, llm), "tools/call", call("analyze_query", "Tell me about Bob"))
	var analysis domain.AnalyzedQuery
	if err := json.Unmarshal([]byte(out.Result.Content[0].Text), &analysis); err != nil {
		t.Fatal(err)
	}
	if analysis.Intent != domain.IntentSummarizeCandidate || analysis.Criteria.CandidateNames[0] != "Bob" {
		t.Errorf("analysis = %+v", analysis)
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t, &testutil.ScriptedLLM{})
	if out := rpc(t, srv, "tools/call", call("ask_candidates", "")); out.Error == nil {
		t.Error("missing query should be an error")
	}
	if out := rpc(t, srv, "tools/call", call("drop_tables", "x")); out.Error == nil {
		t.Error("unknown tool should be an error")
	}
	if out := rpc(t, srv, "resources/list", nil); out.Error == nil || out.Error.Code != -32601 {
		t.Errorf("unknown method: %+v", out.Error)
	}
}

func TestJSONContent_EncodeError(t *testing.T) {
	if _, err := jsonContent(make(chan int)); err == nil {
		t.Error("unencodable value should return an error")
	}
	out, err := jsonContent(domain.DefaultAnalysis("q"))
	if err != nil {
		t.Fatal(err)
	}
	text := out["content"].([]map[string]interface{})[0]["text"].(string)
	if !strings.Contains(text, `"intent":"unknown"`) {
		t.Errorf("text = %s", text)
	}
}
