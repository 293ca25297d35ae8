package kuromoji

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/future-architect/fessanalysis/nlp"
	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// UnknownPartOfSpeech tags the per-character tokens extended mode emits for unknown words.
const UnknownPartOfSpeech = "未知語"

type TokenizerFactory struct {
	name               string
	mode               tokenizer.TokenizeMode
	discardPunctuation bool
	kagome             *tokenizer.Tokenizer
}

var _ nlp.TokenizerFactory = &TokenizerFactory{}

func ParseMode(mode string) (tokenizer.TokenizeMode, error) {
	switch strings.ToLower(mode) {
	case "", "search":
		return tokenizer.Search, nil
	case "normal":
		return tokenizer.Normal, nil
	case "extended":
		return tokenizer.Extended, nil
	}
	return tokenizer.Normal, fmt.Errorf("unknown tokenizer mode: %s", mode)
}

func NewTokenizerFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenizerFactory, error) {
	mode, err := ParseMode(settings.GetString("mode", ""))
	if err != nil {
		return nil, err
	}
	discardPunctuation, err := settings.GetBool("discard_punctuation", true)
	if err != nil {
		return nil, fmt.Errorf("invalid discard_punctuation: %w", err)
	}
	options := []tokenizer.Option{tokenizer.OmitBosEos()}
	userDict, err := loadUserDictionary(env, settings)
	if err != nil {
		return nil, err
	}
	if userDict != nil {
		options = append(options, tokenizer.UserDict(userDict))
	}
	kagome, err := tokenizer.New(systemDictionary(), options...)
	if err != nil {
		return nil, fmt.Errorf("can't initialize tokenizer: %w", err)
	}
	return &TokenizerFactory{
		name:               name,
		mode:               mode,
		discardPunctuation: discardPunctuation,
		kagome:             kagome,
	}, nil
}

// loadUserDictionary reads user_dictionary (a file) or user_dictionary_rules (inline lines). Setting both is an error.
func loadUserDictionary(env nlp.Environment, settings nlp.Settings) (*dict.UserDict, error) {
	path := settings.GetString("user_dictionary", "")
	rules := settings.GetStringSlice("user_dictionary_rules")
	if path != "" && len(rules) > 0 {
		return nil, fmt.Errorf("only one of user_dictionary or user_dictionary_rules can be set")
	}
	var reader io.Reader
	if path != "" {
		f, err := os.Open(env.ResolvePath(path))
		if err != nil {
			return nil, fmt.Errorf("can't open user dictionary: %w", err)
		}
		defer f.Close()
		reader = f
	} else if len(rules) > 0 {
		reader = strings.NewReader(strings.Join(rules, "\n"))
	} else {
		return nil, nil
	}
	records, err := dict.NewUserDicRecords(reader)
	if err != nil {
		return nil, fmt.Errorf("can't parse user dictionary: %w", err)
	}
	return records.NewUserDict()
}

func (t *TokenizerFactory) Name() string {
	return t.name
}

func (t *TokenizerFactory) Create() nlp.Tokenizer {
	return &kagomeTokenizer{factory: t}
}

type kagomeTokenizer struct {
	factory *TokenizerFactory
}

func (k *kagomeTokenizer) Tokenize(text string) nlp.TokenStream {
	f := k.factory
	var result []*nlp.Token
	var position uint32
	for _, token := range f.kagome.Analyze(text, f.mode) {
		if token.Surface == "" {
			continue
		}
		pos := partOfSpeech(token.POS())
		if token.Class == tokenizer.DUMMY {
			// unigram of an unknown word in extended mode
			pos = UnknownPartOfSpeech
		}
		if f.discardPunctuation && strings.HasPrefix(pos, "記号") {
			continue
		}
		baseForm, _ := token.BaseForm()
		reading, _ := token.Reading()
		result = append(result, &nlp.Token{
			Term:         token.Surface,
			Start:        token.Start,
			End:          token.End,
			Position:     position,
			Type:         token.Class.String(),
			PartOfSpeech: pos,
			BaseForm:     valueOrEmpty(baseForm),
			Reading:      valueOrEmpty(reading),
		})
		position++
	}
	return nlp.NewSliceStream(result)
}

// partOfSpeech joins the POS columns the way stoptags are written, e.g. "助詞-格助詞-一般".
func partOfSpeech(pos []string) string {
	parts := make([]string, 0, len(pos))
	for _, part := range pos {
		if part == "*" || part == "" {
			break
		}
		parts = append(parts, part)
	}
	return strings.Join(parts, "-")
}

func valueOrEmpty(value string) string {
	if value == "*" {
		return ""
	}
	return value
}
