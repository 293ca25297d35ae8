// Package kuromoji is the Japanese analysis backend. Importing it registers the kuromoji_* components,
// which the fess_japanese_* components pick up as their delegates.
package kuromoji

import (
	"sync"

	"github.com/future-architect/fessanalysis/nlp"
	"github.com/ikawaha/kagome-dict/dict"
	"github.com/ikawaha/kagome-dict/ipa"
)

const (
	TokenizerType          = "kuromoji_tokenizer"
	PartOfSpeechFilterType = "kuromoji_part_of_speech"
	StemmerFilterType      = "kuromoji_stemmer"
	BaseFormFilterType     = "kuromoji_baseform"
	ReadingFormFilterType  = "kuromoji_readingform"
)

func init() {
	nlp.RegisterTokenizer(TokenizerType, NewTokenizerFactory)
	nlp.RegisterTokenFilter(PartOfSpeechFilterType, NewPartOfSpeechFilterFactory)
	nlp.RegisterTokenFilter(StemmerFilterType, NewStemmerFilterFactory)
	nlp.RegisterTokenFilter(BaseFormFilterType, NewBaseFormFilterFactory)
	nlp.RegisterTokenFilter(ReadingFormFilterType, NewReadingFormFilterFactory)
}

var once sync.Once
var systemDict *dict.Dict

func systemDictionary() *dict.Dict {
	once.Do(func() {
		systemDict = ipa.Dict()
	})
	return systemDict
}
