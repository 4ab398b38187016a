package calculator

import "wordcalc/internal/numeric"

// ValueRequest is the JSON body for digit, bracket and operator input.
type ValueRequest struct {
	Value string `json:"value"`
}

// KeysRequest is the JSON body for POST /calculator/sessions/{id}/keys.
type KeysRequest struct {
	Keys string `json:"keys"` // e.g. "12+3=", see Calculator.Press
}

// EvaluateRequest is the JSON body for the stateless POST /calculator/evaluate.
type EvaluateRequest struct {
	Left     string `json:"left"`
	Operator string `json:"operator"`
	Right    string `json:"right"`
}

// EvaluationResponse describes one evaluated operation. Numbers are sent in
// their display form so Infinity and NaN survive JSON.
type EvaluationResponse struct {
	Operation string `json:"operation"`
	Left      string `json:"left"`
	Right     string `json:"right"`
	Result    string `json:"result"`
	Step      string `json:"step"`
	Recorded  bool   `json:"recorded"`
}

func newEvaluationResponse(ev *Evaluation) *EvaluationResponse {
	if ev == nil {
		return nil
	}
	return &EvaluationResponse{
		Operation: ev.Op.Name(),
		Left:      numeric.Format(ev.Left),
		Right:     numeric.Format(ev.Right),
		Result:    numeric.Format(ev.Result),
		Step:      ev.Expr,
		Recorded:  ev.Recorded,
	}
}

// SessionResponse is the JSON response for session endpoints.
type SessionResponse struct {
	SessionID  string              `json:"session_id"`
	View       View                `json:"view"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
}

// KeyResult records one replayed key.
type KeyResult struct {
	Key        string              `json:"key"`
	Display    string              `json:"display"`
	Evaluation *EvaluationResponse `json:"evaluation,omitempty"`
}

// KeysResponse is the JSON response for POST /calculator/sessions/{id}/keys.
type KeysResponse struct {
	SessionID string      `json:"session_id"`
	Keys      []KeyResult `json:"keys"`
	View      View        `json:"view"`
}

// EvaluateResponse is the JSON response for POST /calculator/evaluate.
type EvaluateResponse struct {
	EvaluationResponse
	Words string `json:"words"`
}

// WordsResponse is the JSON response for GET /calculator/words.
type WordsResponse struct {
	Number string `json:"number"`
	Words  string `json:"words"`
}
