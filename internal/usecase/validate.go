package usecase

import (
	"regexp"
	"strings"
	"unicode"

	"portfolio-chat/internal/domain"
)

const (
	minQuestionRunes = 2
	maxQuestionRunes = 500

	// Rune count above which the character-class ratio check applies.
	ratioCheckMinRunes = 3

	msgEnterQuestion = "Please enter a question."
	msgQuestionShort = "Your question is too short. Could you say a bit more?"
	msgQuestionLong  = "Your question is too long. Please keep it under 500 characters."
	msgSpamDetected  = "That doesn't look like a question I can help with. Please ask about the portfolio."
)

// ValidationOutcome is the validator's verdict. When OK is false,
// ResponseType and Message describe the rejection and Reason carries a short
// code for the response's errorDetail field.
type ValidationOutcome struct {
	OK           bool
	ResponseType domain.ResponseType
	Message      string
	Reason       string
}

// punctuationRun matches runs of three or more punctuation characters, the
// cheapest spam signal ("!!!!!", "???", "....").
var punctuationRun = regexp.MustCompile(`[!?.,;:~^*#@$%&(){}\[\]<>/\\|+=_-]{3,}`)

// spamExact are inputs rejected outright when they make up the whole question.
var spamExact = []string{"spam", "test", "테스트", "스팸"}

// spamSubstrings are token runs that mark a question as meaningless wherever
// they appear: laughter runs and duplicated greetings.
var spamSubstrings = []string{
	"ㅋㅋㅋ", "ㅎㅎㅎ", "hahaha", "lolol", "kkkk",
	"hihi", "hellohello", "hey hey hey", "안녕안녕",
}

// Validate applies the input rules in order; the first failing rule wins.
// Pure function of the input string, no side effects.
func Validate(raw string) ValidationOutcome {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return rejected(domain.ResponseInvalidInput, msgEnterQuestion, "empty_question")
	}

	runes := []rune(trimmed)
	if len(runes) < minQuestionRunes {
		return rejected(domain.ResponseInvalidInput, msgQuestionShort, "question_too_short")
	}
	if len(runes) > maxQuestionRunes {
		return rejected(domain.ResponseInvalidInput, msgQuestionLong, "question_too_long")
	}

	lower := strings.ToLower(trimmed)
	if matchesSpamTokens(lower) {
		return rejected(domain.ResponseSpamDetected, msgSpamDetected, "spam_token")
	}
	if hasRuneRun(runes, 5) || hasRepeatedBlock(runes, 2, 3) {
		return rejected(domain.ResponseSpamDetected, msgSpamDetected, "meaningless_repetition")
	}
	if len(runes) >= ratioCheckMinRunes && badCharacterRatio(runes) {
		return rejected(domain.ResponseSpamDetected, msgSpamDetected, "character_ratio")
	}

	return ValidationOutcome{OK: true, ResponseType: domain.ResponseSuccess}
}

func rejected(rt domain.ResponseType, message, reason string) ValidationOutcome {
	return ValidationOutcome{ResponseType: rt, Message: message, Reason: reason}
}

func matchesSpamTokens(lower string) bool {
	for _, token := range spamExact {
		if lower == token {
			return true
		}
	}
	for _, token := range spamSubstrings {
		if strings.Contains(lower, token) {
			return true
		}
	}
	return punctuationRun.MatchString(lower)
}

// hasRuneRun reports whether the same rune appears n or more times in a row.
// RE2 has no backreferences, so this is a plain scan.
func hasRuneRun(runes []rune, n int) bool {
	run := 1
	for i := 1; i < len(runes); i++ {
		if runes[i] == runes[i-1] {
			run++
			if run >= n {
				return true
			}
			continue
		}
		run = 1
	}
	return false
}

// hasRepeatedBlock reports whether any block of at least minBlock runes is
// immediately repeated so it occurs minOccurs or more times consecutively
// ("asdasdasd" with minBlock=2, minOccurs=3).
func hasRepeatedBlock(runes []rune, minBlock, minOccurs int) bool {
	n := len(runes)
	for size := minBlock; size*minOccurs <= n; size++ {
		for start := 0; start+size*minOccurs <= n; start++ {
			if blockRepeats(runes, start, size, minOccurs) {
				return true
			}
		}
	}
	return false
}

func blockRepeats(runes []rune, start, size, occurs int) bool {
	for rep := 1; rep < occurs; rep++ {
		for i := 0; i < size; i++ {
			if runes[start+i] != runes[start+rep*size+i] {
				return false
			}
		}
	}
	return true
}

// badCharacterRatio rejects input dominated by symbols: more than half
// non-alphanumeric, or less than 30% alphanumeric. Whitespace is excluded
// from the length base.
func badCharacterRatio(runes []rune) bool {
	var alnum, other int
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			alnum++
		case unicode.IsSpace(r):
		default:
			other++
		}
	}
	total := alnum + other
	if total < ratioCheckMinRunes {
		return false
	}
	if other*2 > total {
		return true
	}
	return alnum*10 < total*3
}
