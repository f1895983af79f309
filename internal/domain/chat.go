package domain

// QuestionType classifies what a visitor question is asking about. Exactly
// one type is assigned per question; QuestionGeneral is the default when no
// pattern group matches.
type QuestionType string

const (
	QuestionPersonalInfo QuestionType = "PERSONAL_INFO"
	QuestionTechnical    QuestionType = "TECHNICAL"
	QuestionProject      QuestionType = "PROJECT"
	QuestionGeneralSkill QuestionType = "GENERAL_SKILL"
	QuestionOverview     QuestionType = "OVERVIEW"
	QuestionComparison   QuestionType = "COMPARISON"
	QuestionChallenge    QuestionType = "CHALLENGE"
	QuestionGeneral      QuestionType = "GENERAL"
)

// ResponseType tags a ChatResponse so the caller's UI can react to it
// (e.g. show a contact button for PERSONAL_INFO).
type ResponseType string

const (
	ResponseSuccess      ResponseType = "SUCCESS"
	ResponseRateLimited  ResponseType = "RATE_LIMITED"
	ResponseCannotAnswer ResponseType = "CANNOT_ANSWER"
	ResponsePersonalInfo ResponseType = "PERSONAL_INFO"
	ResponseInvalidInput ResponseType = "INVALID_INPUT"
	ResponseSystemError  ResponseType = "SYSTEM_ERROR"
	ResponseSpamDetected ResponseType = "SPAM_DETECTED"
	ResponseError        ResponseType = "ERROR"
)

// ChatRequest is one incoming visitor question. It lives for a single call
// and is never persisted.
type ChatRequest struct {
	Question        string `json:"question"`
	SelectedProject string `json:"selectedProject,omitempty"`
	SessionID       string `json:"sessionId,omitempty"`
}

// ChatResponse is the single well-formed result every chat request ends in.
// ErrorDetail carries a short machine-readable reason code, never internal
// error text.
type ChatResponse struct {
	Text         string       `json:"text"`
	ResponseType ResponseType `json:"responseType"`
	Success      bool         `json:"success"`
	ErrorDetail  string       `json:"errorDetail,omitempty"`
}

// ClassificationResult is the classifier's verdict for one question.
// Invariant: a non-empty ImmediateAnswer implies UseModel is false.
type ClassificationResult struct {
	Type              QuestionType
	ShowContactAction bool
	ImmediateAnswer   string
	UseModel          bool
	Confidence        float64
}

// UsageReport carries request counters for the usage endpoint. Counters are
// fixed at zero until a real rate limiter lands.
type UsageReport struct {
	DailyCount int `json:"dailyCount"`
	TotalCount int `json:"totalCount"`
	DailyLimit int `json:"dailyLimit"`
}
