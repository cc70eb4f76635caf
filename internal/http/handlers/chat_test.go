package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wordmint/internal/domain"
	httpServer "wordmint/internal/http"
	"wordmint/internal/service"
	"wordmint/internal/session"

	"github.com/gin-gonic/gin"
)

const testAddress = "0x00112233445566778899aabbccddeeff00112233"

type stubStream struct {
	toks []string
	i    int
}

func (s *stubStream) Next() (string, error) {
	if s.i >= len(s.toks) {
		return "", io.EOF
	}
	tok := s.toks[s.i]
	s.i++
	return tok, nil
}

type stubCompleter struct{ toks []string }

func (s *stubCompleter) Stream(ctx context.Context, turns []domain.ConversationTurn) (service.TokenStream, error) {
	return &stubStream{toks: s.toks}, nil
}

type stubWords struct{}

func (stubWords) SecretWord(ctx context.Context) (string, error) { return "tree", nil }

type stubIssuer struct{ calls int }

func (s *stubIssuer) Issue(ctx context.Context, req domain.PrizeRequest) (domain.TransactionRecord, error) {
	s.calls++
	return domain.TransactionRecord{TransactionID: "tx-1"}, nil
}

type stubConfirmer struct{}

func (stubConfirmer) WaitForHash(ctx context.Context, rec domain.TransactionRecord) (domain.TransactionRecord, error) {
	rec.TransactionHash = "0xdead"
	return rec, nil
}

type testServer struct {
	srv       *httptest.Server
	completer *stubCompleter
	issuer    *stubIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	service.InitJWT()

	gin.SetMode(gin.TestMode)

	completer := &stubCompleter{toks: []string{"Yes ", "(19 questions left)"}}
	issuer := &stubIssuer{}
	sessions := session.NewStore(20, time.Hour)
	orch := service.NewOrchestrator(sessions, completer, stubWords{}, issuer, stubConfirmer{}, time.Second)

	r := gin.New()
	httpServer.RegisterRoutes(r, sessions, orch, "test")

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return &testServer{srv: srv, completer: completer, issuer: issuer}
}

func (ts *testServer) newToken(t *testing.T) string {
	t.Helper()
	resp, err := http.Post(ts.srv.URL+"/api/v1/session", "application/json", nil)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}

	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode session response: %v", err)
	}
	if body.Token == "" {
		t.Fatal("empty session token")
	}
	return body.Token
}

func (ts *testServer) chat(t *testing.T, token string, messages []domain.ConversationTurn) *http.Response {
	t.Helper()
	payload, _ := json.Marshal(map[string]any{"messages": messages})
	req, _ := http.NewRequest(http.MethodPost, ts.srv.URL+"/api/v1/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("chat request: %v", err)
	}
	return resp
}

func TestChat_StreamsModelReply(t *testing.T) {
	ts := newTestServer(t)
	token := ts.newToken(t)

	resp := ts.chat(t, token, []domain.ConversationTurn{{Role: domain.RoleUser, Content: "is it alive"}})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "(19 questions left)") {
		t.Fatalf("body = %q", body)
	}
}

func TestChat_RequiresToken(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.chat(t, "", []domain.ConversationTurn{{Role: domain.RoleUser, Content: "hi"}})
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d; want 401", resp.StatusCode)
	}
}

func TestChat_EmptyMessagesRejected(t *testing.T) {
	ts := newTestServer(t)
	token := ts.newToken(t)

	resp := ts.chat(t, token, nil)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d; want 400", resp.StatusCode)
	}
}

func TestChat_ClaimFlowEndToEnd(t *testing.T) {
	ts := newTestServer(t)
	token := ts.newToken(t)

	// assistant announces the win on this turn
	ts.completer.toks = []string{"Yes, it is a tree! Congratulations! Please provide an Ethereum address to receive your prize"}
	resp := ts.chat(t, token, []domain.ConversationTurn{{Role: domain.RoleUser, Content: "is it a tree"}})
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	// the next turn supplies the claim address
	resp = ts.chat(t, token, []domain.ConversationTurn{{Role: domain.RoleUser, Content: testAddress}})
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "0xdead") || !strings.Contains(string(body), testAddress) {
		t.Fatalf("claim reply = %q", body)
	}
	if ts.issuer.calls != 1 {
		t.Fatalf("issuer called %d times", ts.issuer.calls)
	}
}
