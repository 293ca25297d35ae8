package japanese

import (
	"errors"

	"github.com/future-architect/fessanalysis/nlp"
)

// FilterFactory is shared by every fess_japanese_* filter. Without a delegate it returns an empty stream,
// not the input.
type FilterFactory struct {
	name      string
	className string
	delegate  nlp.TokenFilterFactory
}

var _ nlp.TokenFilterFactory = &FilterFactory{}

func NewPartOfSpeechFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	return newFilterFactory(KuromojiPartOfSpeechFilterFactory, index, indexSettings, env, name, settings)
}

func NewStemmerFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	return newFilterFactory(KuromojiStemmerFilterFactory, index, indexSettings, env, name, settings)
}

func NewBaseFormFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	return newFilterFactory(KuromojiBaseFormFilterFactory, index, indexSettings, env, name, settings)
}

func NewReadingFormFilterFactory(index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	return newFilterFactory(KuromojiReadingFormFilterFactory, index, indexSettings, env, name, settings)
}

func newFilterFactory(className string, index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	delegate, err := loadFilter(className, index, indexSettings, env, name, settings)
	if err != nil {
		return nil, err
	}
	return &FilterFactory{
		name:      name,
		className: className,
		delegate:  delegate,
	}, nil
}

func loadFilter(className string, index nlp.Index, indexSettings nlp.Settings, env nlp.Environment, name string, settings nlp.Settings) (delegate nlp.TokenFilterFactory, err error) {
	constructor, ok := env.Plugins().LookupTokenFilter(className)
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

func (f *FilterFactory) Name() string {
	return f.name
}

// Delegate reports which backend component is in use, if any.
func (f *FilterFactory) Delegate() (string, bool) {
	return f.className, f.delegate != nil
}

func (f *FilterFactory) Create(input nlp.TokenStream) nlp.TokenStream {
	if f.delegate != nil {
		return f.delegate.Create(input)
	}
	return nlp.EmptyTokenStream()
}
