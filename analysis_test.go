package fessanalysis_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/future-architect/fessanalysis"
	"github.com/future-architect/fessanalysis/nlp"
	_ "github.com/future-architect/fessanalysis/nlp/english"
	"github.com/future-architect/fessanalysis/nlp/japanese"
	_ "github.com/future-architect/fessanalysis/nlp/kuromoji"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const japaneseIndexSettings = `{"index":{"analysis":{
	"tokenizer":{"ja_tokenizer":{"type":"fess_japanese_tokenizer","mode":"search"}},
	"filter":{"ja_pos":{"type":"fess_japanese_part_of_speech"}},
	"analyzer":{"ja_analyzer":{"type":"custom","tokenizer":"ja_tokenizer","filter":["ja_pos","fess_japanese_stemmer"]}}
}}}`

// withoutKuromoji is a registry in which the Japanese backend is not installed.
func withoutKuromoji() *nlp.Registry {
	registry := nlp.DefaultRegistry.Clone()
	registry.UnregisterTokenizer(japanese.KuromojiTokenizerFactory)
	registry.UnregisterTokenFilter(japanese.KuromojiPartOfSpeechFilterFactory)
	registry.UnregisterTokenFilter(japanese.KuromojiStemmerFilterFactory)
	registry.UnregisterTokenFilter(japanese.KuromojiBaseFormFilterFactory)
	registry.UnregisterTokenFilter(japanese.KuromojiReadingFormFilterFactory)
	return registry
}

func loadSettings(t *testing.T, src string) nlp.Settings {
	t.Helper()
	settings, err := fessanalysis.LoadSettings(strings.NewReader(src))
	require.Nil(t, err)
	return settings
}

func terms(tokens []*nlp.Token) []string {
	var result []string
	for _, token := range tokens {
		result = append(result, token.Term)
	}
	return result
}

func TestLoadSettings(t *testing.T) {
	settings := loadSettings(t, japaneseIndexSettings)
	assert.Equal(t, "search", settings.GetString("index.analysis.tokenizer.ja_tokenizer.mode", ""))

	settings = loadSettings(t, "analysis:\n  analyzer:\n    en:\n      tokenizer: standard\n      filter: [lowercase]\n")
	assert.Equal(t, []string{"lowercase"}, settings.GetStringSlice("analysis.analyzer.en.filter"))

	settings = loadSettings(t, "")
	assert.Empty(t, settings)

	_, err := fessanalysis.LoadSettings(strings.NewReader("{"))
	assert.Error(t, err)
}

func TestAnalysisService_WithKuromoji(t *testing.T) {
	service, err := fessanalysis.NewAnalysisService(nlp.Index{Name: "dataset"}, loadSettings(t, japaneseIndexSettings), nlp.Environment{})
	require.Nil(t, err)
	analyzer, ok := service.Analyzer("ja_analyzer")
	require.True(t, ok)
	assert.Equal(t, []string{"すもも", "もも", "もも", "うち"}, terms(analyzer.Analyze("すもももももももものうち")))
	assert.Equal(t, []string{"コンピュータ"}, terms(analyzer.Analyze("コンピューター")))

	tokenizer, ok := service.Tokenizer("ja_tokenizer")
	require.True(t, ok)
	assert.True(t, tokenizer.(*japanese.TokenizerFactory).HasDelegate())
}

func TestAnalysisService_WithoutKuromoji(t *testing.T) {
	service, err := fessanalysis.NewAnalysisService(nlp.Index{Name: "dataset"}, loadSettings(t, japaneseIndexSettings), nlp.Environment{Registry: withoutKuromoji()})
	require.Nil(t, err)
	analyzer, ok := service.Analyzer("ja_analyzer")
	require.True(t, ok)
	assert.Empty(t, analyzer.Analyze("東京スカイツリー"))

	filter, ok := service.TokenFilter("ja_pos")
	require.True(t, ok)
	_, hasDelegate := filter.(*japanese.FilterFactory).Delegate()
	assert.False(t, hasDelegate)
}

func TestAnalysisService_BareTypes(t *testing.T) {
	service, err := fessanalysis.NewAnalysisService(nlp.Index{Name: "en"}, loadSettings(t, `{"analysis":{"analyzer":{
		"english":{"tokenizer":"standard","filter":["lowercase","stop","snowball"]}
	}}}`), nlp.Environment{})
	require.Nil(t, err)
	analyzer, ok := service.Analyzer("english")
	require.True(t, ok)
	assert.Equal(t, []string{"go", "program", "languag"}, terms(analyzer.Analyze("Go is a programming language")))
}

func TestAnalysisService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		env      nlp.Environment
	}{
		{
			name:     "unknown tokenizer type",
			settings: `{"analysis":{"tokenizer":{"t":{"type":"nothing"}}}}`,
		},
		{
			name:     "tokenizer without type",
			settings: `{"analysis":{"tokenizer":{"t":{"mode":"search"}}}}`,
		},
		{
			name:     "unknown filter in analyzer",
			settings: `{"analysis":{"analyzer":{"a":{"tokenizer":"standard","filter":["nothing"]}}}}`,
		},
		{
			name:     "analyzer without tokenizer",
			settings: `{"analysis":{"analyzer":{"a":{"filter":["lowercase"]}}}}`,
		},
		{
			name:     "unsupported analyzer type",
			settings: `{"analysis":{"analyzer":{"a":{"type":"kuromoji"}}}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, err := fessanalysis.NewAnalysisService(nlp.Index{Name: "broken"}, loadSettings(t, tt.settings), tt.env)
			assert.Nil(t, service)
			var combined *fessanalysis.CombinedError
			if assert.True(t, errors.As(err, &combined)) {
				assert.Len(t, combined.Errors, 1)
			}
		})
	}
}

func TestAnalysisService_DelegateFailureIsFatal(t *testing.T) {
	settings := loadSettings(t, `{"index":{"analysis":{"tokenizer":{"ja":{"type":"fess_japanese_tokenizer","mode":"turbo"}}}}}`)
	service, err := fessanalysis.NewAnalysisService(nlp.Index{Name: "dataset"}, settings, nlp.Environment{})
	assert.Nil(t, service)
	var combined *fessanalysis.CombinedError
	require.True(t, errors.As(err, &combined))
	var configErr *nlp.ConfigurationError
	if assert.True(t, errors.As(combined.Errors[0], &configErr)) {
		assert.Equal(t, japanese.KuromojiTokenizerFactory, configErr.Component)
		assert.Equal(t, "ja", configErr.Name)
	}

	// the same settings load when the backend is absent
	service, err = fessanalysis.NewAnalysisService(nlp.Index{Name: "dataset"}, settings, nlp.Environment{Registry: withoutKuromoji()})
	assert.Nil(t, err)
	assert.NotNil(t, service)
}
