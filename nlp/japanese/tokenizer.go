package japanese

import (
	"errors"

	"github.com/future-architect/fessanalysis/nlp"
)

type TokenizerFactory struct {
	name     string
	delegate nlp.TokenizerFactory
}

var _ nlp.TokenizerFactory = &TokenizerFactory{}

// NewTokenizerFactory resolves kuromoji_tokenizer once. A missing backend is not an error, a failing one is.
func NewTokenizerFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenizerFactory, error) {
	delegate, err := loadTokenizer(KuromojiTokenizerFactory, index, indexSettings, env, name, settings)
	if err != nil {
		return nil, err
	}
	return &TokenizerFactory{
		name:     name,
		delegate: delegate,
	}, nil
}

func loadTokenizer(className string, index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (delegate nlp.TokenizerFactory, err error) {
	constructor, ok := env.Plugins().LookupTokenizer(className)
	if !ok {
		logger.Infof("%s is not found.", className)
		return nil, nil
	}
	logger.Infof("%s is found.", className)
	defer func() {
		if r := recover(); r != nil {
			delegate = nil
			err = configurationError(className, name, recovered(r))
		}
	}()
	delegate, err = constructor(index, indexSettings, env, name, settings)
	if err != nil {
		return nil, configurationError(className, name, err)
	}
	if delegate == nil {
		return nil, configurationError(className, name, errors.New("constructor returned no factory"))
	}
	// a typed nil factory panics here and is reported by the recover above
	_ = delegate.Name()
	return delegate, nil
}

func (t *TokenizerFactory) Name() string {
	return t.name
}

func (t *TokenizerFactory) HasDelegate() bool {
	return t.delegate != nil
}

func (t *TokenizerFactory) Create() nlp.Tokenizer {
	if t.delegate != nil {
		return t.delegate.Create()
	}
	return nlp.EmptyTokenizer{}
}
