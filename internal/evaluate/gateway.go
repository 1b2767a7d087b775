// Package evaluate forwards execution results to an external scoring
// service. The service judges the submission against the problem
// statement and returns feedback the sandbox itself cannot produce.
package evaluate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/executor"
)

// Evaluation is the scoring service's verdict on a submission.
type Evaluation struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
	Passed   bool   `json:"passed"`
}

// Gateway submits an execution result for external evaluation.
type Gateway interface {
	Evaluate(ctx context.Context, result *executor.ExecutionResult, problem string) (*Evaluation, error)
}

// HTTPGateway talks to the scoring service over HTTP.
type HTTPGateway struct {
	url    string
	client *http.Client
}

// NewHTTPGateway returns a gateway for the given endpoint, or nil when
// the endpoint is unconfigured.
func NewHTTPGateway(url string, timeout time.Duration) *HTTPGateway {
	if url == "" {
		return nil
	}
	return &HTTPGateway{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

type evaluateRequest struct {
	Problem string                `json:"problem"`
	Success bool                  `json:"success"`
	Output  string                `json:"output"`
	Results []executor.TestResult `json:"testResults,omitempty"`
}

func (g *HTTPGateway) Evaluate(ctx context.Context, result *executor.ExecutionResult, problem string) (*Evaluation, error) {
	payload := evaluateRequest{
		Problem: problem,
		Success: result.Success,
		Output:  result.Output,
		Results: result.TestResults,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build evaluation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call evaluation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("evaluation service returned status %d", resp.StatusCode)
	}

	var eval Evaluation
	if err := json.NewDecoder(resp.Body).Decode(&eval); err != nil {
		return nil, fmt.Errorf("decode evaluation response: %w", err)
	}
	return &eval, nil
}
