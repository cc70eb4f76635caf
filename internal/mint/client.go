package mint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"wordmint/internal/domain"
	"wordmint/internal/logger"
)

// ErrConfirmTimeout is returned when a submitted transaction's hash did not
// become available within the confirmation deadline. The mint itself is
// never retried because of it.
var ErrConfirmTimeout = errors.New("transaction hash not available within deadline")

// IssueError is a terminal failure of the minting call: a transport error,
// a non-2xx status, or an unusable response body.
type IssueError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *IssueError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("mint request failed: %v", e.Err)
	}
	return fmt.Sprintf("mint request rejected: status %d: %s", e.StatusCode, e.Body)
}

func (e *IssueError) Unwrap() error { return e.Err }

// Client talks to the Syndicate transaction-minting API
type Client struct {
	baseURL    string
	apiKey     string
	projectID  string
	httpClient *http.Client

	pollInterval   time.Duration
	confirmTimeout time.Duration
}

// NewClient creates a minting client with default polling bounds
func NewClient(apiKey, projectID string) *Client {
	return &Client{
		baseURL:   SyndicateAPIBase,
		apiKey:    apiKey,
		projectID: projectID,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		pollInterval:   DefaultPollInterval,
		confirmTimeout: DefaultConfirmTimeout,
	}
}

// WithBaseURL overrides the API endpoint (tests, staging)
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// WithConfirmBounds overrides the confirmation poll interval and deadline
func (c *Client) WithConfirmBounds(interval, timeout time.Duration) *Client {
	if interval > 0 {
		c.pollInterval = interval
	}
	if timeout > 0 {
		c.confirmTimeout = timeout
	}
	return c
}

// NewPrizeRequest describes the minting call for one recipient. Everything
// but the recipient is fixed.
func NewPrizeRequest(recipient string) domain.PrizeRequest {
	return domain.PrizeRequest{
		RecipientAddress:  recipient,
		ContractAddress:   PrizeContractAddress,
		ChainID:           PrizeChainID,
		FunctionSignature: MintFunctionSignature,
	}
}

type sendTransactionRequest struct {
	ProjectID         string            `json:"projectId"`
	ContractAddress   string            `json:"contractAddress"`
	ChainID           int               `json:"chainId"`
	FunctionSignature string            `json:"functionSignature"`
	Args              map[string]string `json:"args"`
}

type sendTransactionResponse struct {
	TransactionID string `json:"transactionId"`
}

type transactionRequestResponse struct {
	TransactionAttempts []struct {
		Hash string `json:"hash"`
	} `json:"transactionAttempts"`
}

// Issue submits one minting transaction for the prize request. A single
// attempt: it either returns the transaction record or a terminal
// *IssueError for this claim.
func (c *Client) Issue(ctx context.Context, prize domain.PrizeRequest) (domain.TransactionRecord, error) {
	var rec domain.TransactionRecord

	body := sendTransactionRequest{
		ProjectID:         c.projectID,
		ContractAddress:   prize.ContractAddress,
		ChainID:           prize.ChainID,
		FunctionSignature: prize.FunctionSignature,
		Args:              map[string]string{"account": prize.RecipientAddress},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return rec, &IssueError{Err: err}
	}

	url := c.baseURL + "/transact/sendTransaction"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return rec, &IssueError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return rec, &IssueError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return rec, &IssueError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	var out sendTransactionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return rec, &IssueError{StatusCode: resp.StatusCode, Err: err}
	}
	if out.TransactionID == "" {
		return rec, &IssueError{StatusCode: resp.StatusCode, Body: "response missing transactionId"}
	}

	rec.TransactionID = out.TransactionID
	return rec, nil
}

// WaitForHash polls the minting service until the transaction's first
// attempt carries an on-chain hash, returning the record with the hash
// attached. Individual poll failures are swallowed and retried with mild
// backoff; the loop is bounded by the configured deadline and by ctx.
func (c *Client) WaitForHash(ctx context.Context, rec domain.TransactionRecord) (domain.TransactionRecord, error) {
	deadline := time.Now().Add(c.confirmTimeout)
	interval := c.pollInterval

	for {
		hash, err := c.fetchHash(ctx, rec.TransactionID)
		if err != nil {
			if ctx.Err() != nil {
				return rec, ctx.Err()
			}
			logger.Debug("confirmation poll failed", "tx", rec.TransactionID, "err", err)
		}
		if hash != "" {
			rec.TransactionHash = hash
			return rec, nil
		}

		if time.Now().Add(interval).After(deadline) {
			return rec, ErrConfirmTimeout
		}

		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		case <-time.After(interval):
		}

		interval = interval * 3 / 2
		if interval > maxPollInterval {
			interval = maxPollInterval
		}
	}
}

func (c *Client) fetchHash(ctx context.Context, transactionID string) (string, error) {
	url := fmt.Sprintf("%s/wallet/project/%s/request/%s", c.baseURL, c.projectID, transactionID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("API error: %s - %s", resp.Status, string(raw))
	}

	var out transactionRequestResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.TransactionAttempts) == 0 {
		return "", nil
	}

	return out.TransactionAttempts[0].Hash, nil
}
