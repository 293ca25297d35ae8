package kuromoji

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/future-architect/fessanalysis/nlp"
)

// DefaultStopTags is the part-of-speech stop list used when stoptags is not set.
var DefaultStopTags = []string{
	"接続詞",
	"助詞", "助詞-格助詞", "助詞-格助詞-一般", "助詞-格助詞-引用", "助詞-格助詞-連語",
	"助詞-接続助詞", "助詞-係助詞", "助詞-副助詞", "助詞-間投助詞", "助詞-並立助詞", "助詞-終助詞",
	"助詞-副助詞／並立助詞／終助詞", "助詞-連体化", "助詞-副詞化", "助詞-特殊",
	"助動詞",
	"記号", "記号-一般", "記号-読点", "記号-句点", "記号-空白", "記号-括弧開", "記号-括弧閉",
	"その他-間投",
	"フィラー",
	"非言語音",
}

type filterFactory struct {
	name   string
	filter func(token *nlp.Token) bool
}

func (f *filterFactory) Name() string {
	return f.name
}

func (f *filterFactory) Create(input nlp.TokenStream) nlp.TokenStream {
	return nlp.FilterFunc(input, f.filter)
}

func NewPartOfSpeechFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	stopTags := DefaultStopTags
	if settings.Has("stoptags") {
		stopTags = settings.GetStringSlice("stoptags")
	}
	stopTagMap := make(map[string]bool)
	for _, tag := range stopTags {
		stopTagMap[tag] = true
	}
	return &filterFactory{
		name: name,
		filter: func(token *nlp.Token) bool {
			return !stopTagMap[token.PartOfSpeech]
		},
	}, nil
}

const prolongedSoundMark = 'ー'

func NewStemmerFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	minimumLength, err := settings.GetInt("minimum_length", 4)
	if err != nil {
		return nil, fmt.Errorf("invalid minimum_length: %w", err)
	}
	if minimumLength < 2 {
		return nil, errors.New("minimum_length must be 2 or more")
	}
	return &filterFactory{
		name: name,
		filter: func(token *nlp.Token) bool {
			if !token.Keyword {
				token.Term = stemKatakana(token.Term, minimumLength)
			}
			return true
		},
	}, nil
}

func stemKatakana(term string, minimumLength int) string {
	length := utf8.RuneCountInString(term)
	if length < minimumLength {
		return term
	}
	for _, r := range term {
		if !unicode.Is(unicode.Katakana, r) && r != prolongedSoundMark {
			return term
		}
	}
	last, size := utf8.DecodeLastRuneInString(term)
	if last == prolongedSoundMark {
		return term[:len(term)-size]
	}
	return term
}

func NewBaseFormFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	return &filterFactory{
		name: name,
		filter: func(token *nlp.Token) bool {
			if !token.Keyword && token.BaseForm != "" {
				token.Term = token.BaseForm
			}
			return true
		},
	}, nil
}

func NewReadingFormFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	useRomaji, err := settings.GetBool("use_romaji", false)
	if err != nil {
		return nil, fmt.Errorf("invalid use_romaji: %w", err)
	}
	if useRomaji {
		return nil, errors.New("use_romaji is not supported")
	}
	return &filterFactory{
		name: name,
		filter: func(token *nlp.Token) bool {
			if token.Reading != "" {
				token.Term = token.Reading
			}
			return true
		},
	}, nil
}
