package unigram

import (
	"github.com/future-architect/fessanalysis/nlp"
)

const TokenizerType = "unigram"

func init() {
	nlp.RegisterTokenizer(TokenizerType, func(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenizerFactory, error) {
		return &factory{name: name}, nil
	})
}

type factory struct {
	name string
}

func (f *factory) Name() string {
	return f.name
}

func (f *factory) Create() nlp.Tokenizer {
	return tokenizer{}
}

type tokenizer struct{}

func (tokenizer) Tokenize(text string) nlp.TokenStream {
	return nlp.NewSliceStream(unigramSplitter(text))
}

func unigramSplitter(content string) []*nlp.Token {
	chars := []rune(content)
	result := make([]*nlp.Token, len(chars))
	for i, char := range chars {
		result[i] = &nlp.Token{
			Term:     string(char),
			Start:    i,
			End:      i + 1,
			Position: uint32(i),
			Type:     "<UNIGRAM>",
		}
	}
	return result
}
