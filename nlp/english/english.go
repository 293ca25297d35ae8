// Package english registers the standard tokenizer and the lowercase, stop and snowball filters.
package english

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/future-architect/fessanalysis/nlp"
	"github.com/kljensen/snowball"
)

const (
	StandardTokenizerType = "standard"
	LowercaseFilterType   = "lowercase"
	StopFilterType        = "stop"
	SnowballFilterType    = "snowball"
)

var defaultStopWords = []string{
	"a", "an", "and", "are", "as", "at", "be", "but", "by", "for", "if", "in", "into", "is", "it",
	"no", "not", "of", "on", "or", "such", "that", "the", "their", "then", "there", "these",
	"they", "this", "to", "was", "will", "with",
}

func init() {
	nlp.RegisterTokenizer(StandardTokenizerType, NewStandardTokenizerFactory)
	nlp.RegisterTokenFilter(LowercaseFilterType, NewLowercaseFilterFactory)
	nlp.RegisterTokenFilter(StopFilterType, NewStopFilterFactory)
	nlp.RegisterTokenFilter(SnowballFilterType, NewSnowballFilterFactory)
}

type standardTokenizer struct {
	name string
}

func NewStandardTokenizerFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenizerFactory, error) {
	return &standardTokenizer{name: name}, nil
}

func (s *standardTokenizer) Name() string {
	return s.name
}

func (s *standardTokenizer) Create() nlp.Tokenizer {
	return s
}

func (s *standardTokenizer) Tokenize(text string) nlp.TokenStream {
	var result []*nlp.Token
	start := -1
	var position uint32
	runes := []rune(text)
	for i := 0; i <= len(runes); i++ {
		inWord := i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsNumber(runes[i]))
		if inWord && start < 0 {
			start = i
		} else if !inWord && start >= 0 {
			result = append(result, &nlp.Token{
				Term:     string(runes[start:i]),
				Start:    start,
				End:      i,
				Position: position,
				Type:     "<ALPHANUM>",
			})
			position++
			start = -1
		}
	}
	return nlp.NewSliceStream(result)
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

func NewLowercaseFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	return &filterFactory{
		name: name,
		filter: func(token *nlp.Token) bool {
			token.Term = strings.ToLower(token.Term)
			return true
		},
	}, nil
}

func NewStopFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	stopWordsSrc := defaultStopWords
	if settings.Has("stopwords") {
		stopWordsSrc = settings.GetStringSlice("stopwords")
	}
	ignoreCase, err := settings.GetBool("ignore_case", false)
	if err != nil {
		return nil, fmt.Errorf("invalid ignore_case: %w", err)
	}
	stopWords := make(map[string]bool)
	for _, stopWord := range stopWordsSrc {
		if ignoreCase {
			stopWord = strings.ToLower(stopWord)
		}
		stopWords[stopWord] = true
	}
	return &filterFactory{
		name: name,
		filter: func(token *nlp.Token) bool {
			term := token.Term
			if ignoreCase {
				term = strings.ToLower(term)
			}
			return !stopWords[term]
		},
	}, nil
}

func NewSnowballFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	language := strings.ToLower(settings.GetString("language", "english"))
	if _, err := snowball.Stem("test", language, false); err != nil {
		return nil, fmt.Errorf("unsupported snowball language %s: %w", language, err)
	}
	return &filterFactory{
		name: name,
		filter: func(token *nlp.Token) bool {
			if token.Keyword {
				return true
			}
			if stemmed, err := snowball.Stem(token.Term, language, false); err == nil {
				token.Term = stemmed
			}
			return true
		},
	}, nil
}
