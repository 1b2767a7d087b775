package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/apperror"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/evaluate"
	"github.com/BUTTERCUPXCZ/interview-sandbox/internal/executor"
)

// ExecuteHandler handles code execution requests.
type ExecuteHandler struct {
	exec    executor.Executor
	gateway evaluate.Gateway
	logger  *slog.Logger
}

// NewExecuteHandler creates a new ExecuteHandler. The gateway may be
// nil, in which case results are returned without external evaluation.
func NewExecuteHandler(exec executor.Executor, gateway evaluate.Gateway, logger *slog.Logger) *ExecuteHandler {
	return &ExecuteHandler{
		exec:    exec,
		gateway: gateway,
		logger:  logger,
	}
}

type executeRequest struct {
	Code      string              `json:"code"`
	Language  string              `json:"language"`
	TestCases []executor.TestCase `json:"testCases,omitempty"`
	Problem   string              `json:"problem,omitempty"`
}

type executeResponse struct {
	*executor.ExecutionResult
	Evaluation *evaluate.Evaluation `json:"evaluation,omitempty"`
}

// HandleExecute runs a code submission and returns the execution result.
func (h *ExecuteHandler) HandleExecute(w http.ResponseWriter, r *http.Request) {
	var req executeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid execution request body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("request body must be valid JSON"))
		return
	}

	if req.Code == "" {
		writeError(w, apperror.ValidationFailed("code cannot be empty"))
		return
	}
	if req.Language == "" {
		writeError(w, apperror.ValidationFailed("language cannot be empty"))
		return
	}

	h.logger.Info("executing code submission",
		slog.String("language", req.Language),
		slog.Int("testCases", len(req.TestCases)),
	)

	result, err := h.exec.Execute(r.Context(), executor.ExecutionRequest{
		Code:      req.Code,
		Language:  req.Language,
		TestCases: req.TestCases,
	})
	if err != nil {
		h.logger.Error("code execution failed", slog.String("error", err.Error()))
		writeError(w, err)
		return
	}

	resp := executeResponse{ExecutionResult: result}
	if h.gateway != nil && req.Problem != "" {
		eval, evalErr := h.gateway.Evaluate(r.Context(), result, req.Problem)
		if evalErr != nil {
			// The execution result stands on its own, a scoring outage
			// must not fail the request.
			h.logger.Warn("evaluation failed", slog.String("error", evalErr.Error()))
		} else {
			resp.Evaluation = eval
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
