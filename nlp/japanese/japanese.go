// Package japanese provides the fess_japanese_* analysis components. Each of them forwards to the
// matching kuromoji_* component when a Japanese backend is linked in, and yields nothing otherwise.
package japanese

import (
	"fmt"

	"github.com/future-architect/fessanalysis/nlp"
	"github.com/sirupsen/logrus"
)

const (
	TokenizerType          = "fess_japanese_tokenizer"
	PartOfSpeechFilterType = "fess_japanese_part_of_speech"
	StemmerFilterType      = "fess_japanese_stemmer"
	BaseFormFilterType     = "fess_japanese_baseform"
	ReadingFormFilterType  = "fess_japanese_readingform"
)

// Names the delegates are registered under by the backend.
const (
	KuromojiTokenizerFactory          = "kuromoji_tokenizer"
	KuromojiPartOfSpeechFilterFactory = "kuromoji_part_of_speech"
	KuromojiStemmerFilterFactory      = "kuromoji_stemmer"
	KuromojiBaseFormFilterFactory     = "kuromoji_baseform"
	KuromojiReadingFormFilterFactory  = "kuromoji_readingform"
)

var logger = logrus.New()

func init() {
	nlp.RegisterTokenizer(TokenizerType, NewTokenizerFactory)
	nlp.RegisterTokenFilter(PartOfSpeechFilterType, NewPartOfSpeechFilterFactory)
	nlp.RegisterTokenFilter(StemmerFilterType, NewStemmerFilterFactory)
	nlp.RegisterTokenFilter(BaseFormFilterType, NewBaseFormFilterFactory)
	nlp.RegisterTokenFilter(ReadingFormFilterType, NewReadingFormFilterFactory)
}

func configurationError(className, name string, err error) error {
	return &nlp.ConfigurationError{
		Component: className,
		Name:      name,
		Err:       err,
	}
}

func recovered(r interface{}) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
