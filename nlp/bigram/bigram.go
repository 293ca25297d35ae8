package bigram

import (
	"github.com/future-architect/fessanalysis/nlp"
)

const TokenizerType = "bigram"

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
	return nlp.NewSliceStream(bigramSplitter(text))
}

func bigramSplitter(content string) []*nlp.Token {
	chars := []rune(content)
	if len(chars) < 2 {
		return []*nlp.Token{}
	}
	result := make([]*nlp.Token, len(chars)-1)
	for i := 0; i < len(chars)-1; i++ {
		result[i] = &nlp.Token{
			Term:     string(chars[i : i+2]),
			Start:    i,
			End:      i + 2,
			Position: uint32(i),
			Type:     "<BIGRAM>",
		}
	}
	return result
}
