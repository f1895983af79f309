package usecase

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"portfolio-chat/internal/domain"
)

const (
	personalInfoConfidence = 0.9
	defaultConfidence      = 0.5
	minConfidence          = 0.1
	maxConfidence          = 0.95

	personalInfoAnswer = "I keep personal details like contact info off this chat. " +
		"Please use the contact button below and I'll get back to you directly."
)

// Pattern groups are static, ordered and immutable after init. Keyword lists
// carry English and Korean variants and the first group that matches wins.
// Single ASCII words ("age", "bug") match on word boundaries so they cannot
// fire inside "language" or "debugging"; phrases and Korean keywords match by
// substring containment.
var (
	personalInfoKeywords = []string{
		"email", "e-mail", "이메일", "phone", "전화", "휴대폰", "연락처", "contact",
		"salary", "연봉", "급여", "age", "나이", "몇 살", "address", "주소", "어디 살",
		"school", "학교", "university", "대학", "company you work", "current employer",
		"어느 회사", "다니는 회사",
	}

	generalSkillKeywords = []string{
		"overall", "전반", "전체적으로", "what can you do", "뭘 할 수", "skill set",
		"skillset", "기술 스택", "tech stack", "스택", "what technologies",
		"어떤 기술", "모든 기술",
	}

	// Questions naming a specific project fall through to the later groups
	// even when they use general-skill phrasing.
	specificProjectExclusions = []string{
		"this project", "that project", "this app", "that app", "this service",
		"이 프로젝트", "그 프로젝트", "저 프로젝트", "이 앱", "그 앱", "해당 프로젝트",
		"이 서비스",
	}

	technicalKeywords = []string{
		"language", "언어", "framework", "프레임워크", "architecture", "아키텍처",
		"database", "데이터베이스", "backend", "백엔드", "frontend", "프론트엔드",
		"java", "spring", "react", "typescript", "python", "golang", "docker",
		"kubernetes", "aws", "infra", "인프라", "library", "라이브러리",
	}

	projectKeywords = []string{
		"project", "프로젝트", "application", "애플리케이션", "service", "서비스",
		"system", "시스템", "portfolio", "포트폴리오", "built", "made", "만든",
		"개발한",
	}

	comparisonKeywords = []string{
		"vs", "versus", "compare", "comparison", "비교", "차이", "difference",
		"pros and cons", "장단점", "better", "더 나은", "trade-off", "tradeoff",
	}

	challengeKeywords = []string{
		"challenge", "difficult", "hardest", "어려", "힘들", "bug", "버그",
		"problem", "문제", "trouble", "issue", "solve", "solved", "해결",
		"solution", "troubleshoot",
	}

	overviewKeywords = []string{
		"introduce", "소개", "describe", "설명", "what is", "뭐야", "무엇",
		"overview", "개요", "tell me about", "알려줘", "who are you", "누구",
	}
)

// scoredGroups are the groups whose confidence is derived from match density.
// Order matters: first match wins.
var scoredGroups = []struct {
	qtype    domain.QuestionType
	keywords []string
}{
	{domain.QuestionTechnical, technicalKeywords},
	{domain.QuestionProject, projectKeywords},
	{domain.QuestionComparison, comparisonKeywords},
	{domain.QuestionChallenge, challengeKeywords},
}

// Classify maps a question to its type, an advisory confidence score and an
// optional immediate answer. Pure function; calling it twice on the same
// input yields the same result.
func Classify(question string) domain.ClassificationResult {
	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		// Unreachable behind the validator; classified as General without
		// a model call if it happens anyway.
		return domain.ClassificationResult{
			Type:       domain.QuestionGeneral,
			UseModel:   false,
			Confidence: defaultConfidence,
		}
	}
	lower := strings.ToLower(trimmed)

	if countMatches(lower, personalInfoKeywords) > 0 {
		return domain.ClassificationResult{
			Type:              domain.QuestionPersonalInfo,
			ShowContactAction: true,
			ImmediateAnswer:   personalInfoAnswer,
			UseModel:          false,
			Confidence:        personalInfoConfidence,
		}
	}

	if countMatches(lower, generalSkillKeywords) > 0 && countMatches(lower, specificProjectExclusions) == 0 {
		return modelResult(domain.QuestionGeneralSkill, defaultConfidence)
	}

	for _, group := range scoredGroups {
		if matched := countMatches(lower, group.keywords); matched > 0 {
			confidence := clampConfidence(float64(matched) / float64(len(group.keywords)))
			return modelResult(group.qtype, confidence)
		}
	}

	if countMatches(lower, overviewKeywords) > 0 {
		return modelResult(domain.QuestionOverview, defaultConfidence)
	}

	return modelResult(domain.QuestionGeneral, defaultConfidence)
}

func modelResult(qtype domain.QuestionType, confidence float64) domain.ClassificationResult {
	return domain.ClassificationResult{
		Type:       qtype,
		UseModel:   true,
		Confidence: confidence,
	}
}

func countMatches(lower string, keywords []string) int {
	matched := 0
	for _, kw := range keywords {
		if keywordMatches(lower, kw) {
			matched++
		}
	}
	return matched
}

func keywordMatches(lower, kw string) bool {
	if isASCIIWord(kw) {
		return containsWord(lower, kw)
	}
	return strings.Contains(lower, kw)
}

// isASCIIWord reports whether kw is a single hyphenless-or-hyphenated ASCII
// token, the kind that needs boundary matching.
func isASCIIWord(kw string) bool {
	for _, r := range kw {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-':
		default:
			return false
		}
	}
	return kw != ""
}

// containsWord reports whether w occurs in lower delimited by non-word runes
// (or the string edges). A trailing "s" counts as the same word, so "project"
// matches "projects" but never "projection".
func containsWord(lower, w string) bool {
	for start := 0; start+len(w) <= len(lower); {
		idx := strings.Index(lower[start:], w)
		if idx < 0 {
			return false
		}
		idx += start

		boundedLeft := idx == 0
		if !boundedLeft {
			r, _ := utf8.DecodeLastRuneInString(lower[:idx])
			boundedLeft = !isWordRune(r)
		}
		if boundedLeft && boundedRight(lower, idx+len(w)) {
			return true
		}
		start = idx + 1
	}
	return false
}

func boundedRight(lower string, end int) bool {
	if end == len(lower) {
		return true
	}
	r, size := utf8.DecodeRuneInString(lower[end:])
	if !isWordRune(r) {
		return true
	}
	if r != 's' {
		return false
	}
	if end+size == len(lower) {
		return true
	}
	next, _ := utf8.DecodeRuneInString(lower[end+size:])
	return !isWordRune(next)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func clampConfidence(c float64) float64 {
	if c < minConfidence {
		return minConfidence
	}
	if c > maxConfidence {
		return maxConfidence
	}
	return c
}
