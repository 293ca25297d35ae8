package fessanalysis

import (
	"fmt"

	"github.com/future-architect/fessanalysis/nlp"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

type Analyzer struct {
	Name      string
	Tokenizer nlp.TokenizerFactory
	Filters   []nlp.TokenFilterFactory
}

// Analyze runs the tokenizer and then every filter in order.
func (a *Analyzer) Analyze(text string) []*nlp.Token {
	stream := a.Tokenizer.Create().Tokenize(text)
	for _, filter := range a.Filters {
		stream = filter.Create(stream)
	}
	return nlp.Collect(stream)
}

// AnalysisService holds the components built from the analysis section of one index's settings.
type AnalysisService struct {
	index      nlp.Index
	settings   nlp.Settings
	env        nlp.Environment
	tokenizers map[string]nlp.TokenizerFactory
	filters    map[string]nlp.TokenFilterFactory
	analyzers  map[string]*Analyzer
}

func NewAnalysisService(index nlp.Index, settings nlp.Settings, env nlp.Environment) (*AnalysisService, error) {
	if settings == nil {
		settings = nlp.Settings{}
	}
	s := &AnalysisService{
		index:      index,
		settings:   settings,
		env:        env,
		tokenizers: make(map[string]nlp.TokenizerFactory),
		filters:    make(map[string]nlp.TokenFilterFactory),
		analyzers:  make(map[string]*Analyzer),
	}
	errs := &CombinedError{Message: fmt.Sprintf("can't configure analysis of index %s", index.Name)}
	analysis := analysisSettings(settings)

	tokenizerSettings := analysis.Sub("tokenizer")
	for _, name := range tokenizerSettings.Keys() {
		componentSettings := tokenizerSettings.Sub(name)
		tokenizer, err := s.newTokenizer(name, componentSettings.GetString("type", ""), componentSettings)
		if err != nil {
			errs.append(err)
			continue
		}
		s.tokenizers[name] = tokenizer
	}

	filterSettings := analysis.Sub("filter")
	for _, name := range filterSettings.Keys() {
		componentSettings := filterSettings.Sub(name)
		filter, err := s.newTokenFilter(name, componentSettings.GetString("type", ""), componentSettings)
		if err != nil {
			errs.append(err)
			continue
		}
		s.filters[name] = filter
	}

	analyzerSettings := analysis.Sub("analyzer")
	for _, name := range analyzerSettings.Keys() {
		analyzer, err := s.newAnalyzer(name, analyzerSettings.Sub(name))
		if err != nil {
			errs.append(err)
			continue
		}
		s.analyzers[name] = analyzer
		logger.Infof("analyzer [%s] is configured for index [%s]", name, index.Name)
	}

	if err := errs.errorOrNil(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *AnalysisService) newTokenizer(name, componentType string, settings nlp.Settings) (nlp.TokenizerFactory, error) {
	if componentType == "" {
		return nil, fmt.Errorf("tokenizer [%s] must have a type", name)
	}
	constructor, ok := s.env.Plugins().LookupTokenizer(componentType)
	if !ok {
		return nil, fmt.Errorf("unknown tokenizer type [%s] for [%s]", componentType, name)
	}
	return constructor(s.index, s.settings, s.env, name, settings)
}

func (s *AnalysisService) newTokenFilter(name, componentType string, settings nlp.Settings) (nlp.TokenFilterFactory, error) {
	if componentType == "" {
		return nil, fmt.Errorf("filter [%s] must have a type", name)
	}
	constructor, ok := s.env.Plugins().LookupTokenFilter(componentType)
	if !ok {
		return nil, fmt.Errorf("unknown filter type [%s] for [%s]", componentType, name)
	}
	return constructor(s.index, s.settings, s.env, name, settings)
}

func (s *AnalysisService) newAnalyzer(name string, settings nlp.Settings) (*Analyzer, error) {
	analyzerType := settings.GetString("type", "custom")
	if analyzerType != "custom" {
		return nil, fmt.Errorf("analyzer [%s] has unsupported type [%s]", name, analyzerType)
	}
	tokenizerName := settings.GetString("tokenizer", "")
	if tokenizerName == "" {
		return nil, fmt.Errorf("analyzer [%s] must specify a tokenizer", name)
	}
	tokenizer, ok := s.tokenizers[tokenizerName]
	if !ok {
		var err error
		tokenizer, err = s.newTokenizer(tokenizerName, tokenizerName, nlp.Settings{})
		if err != nil {
			return nil, fmt.Errorf("analyzer [%s]: %w", name, err)
		}
		s.tokenizers[tokenizerName] = tokenizer
	}
	result := &Analyzer{
		Name:      name,
		Tokenizer: tokenizer,
	}
	for _, filterName := range settings.GetStringSlice("filter") {
		filter, ok := s.filters[filterName]
		if !ok {
			var err error
			filter, err = s.newTokenFilter(filterName, filterName, nlp.Settings{})
			if err != nil {
				return nil, fmt.Errorf("analyzer [%s]: %w", name, err)
			}
			s.filters[filterName] = filter
		}
		result.Filters = append(result.Filters, filter)
	}
	return result, nil
}

func (s *AnalysisService) Analyzer(name string) (*Analyzer, bool) {
	analyzer, ok := s.analyzers[name]
	return analyzer, ok
}

func (s *AnalysisService) Tokenizer(name string) (nlp.TokenizerFactory, bool) {
	tokenizer, ok := s.tokenizers[name]
	return tokenizer, ok
}

func (s *AnalysisService) TokenFilter(name string) (nlp.TokenFilterFactory, bool) {
	filter, ok := s.filters[name]
	return filter, ok
}
