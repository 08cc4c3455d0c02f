package domain

import "time"

type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageBengali Language = "bn"
	LanguageOdia    Language = "or"
)

func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguageBengali, LanguageOdia:
		return true
	}
	return false
}

// Languages lists the supported assistant languages in display order.
func Languages() []Language {
	return []Language{LanguageEnglish, LanguageHindi, LanguageBengali, LanguageOdia}
}

type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

type Turn struct {
	Speaker         Speaker
	Text            string
	Language        Language
	Recommendations []string
	SentAt          time.Time
}

type ChatReply struct {
	Response        string
	Language        Language
	Recommendations []string
}
