package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettings_Get(t *testing.T) {
	settings := Settings{
		"index": map[string]interface{}{
			"analysis": map[string]interface{}{
				"tokenizer": map[string]interface{}{
					"ja": map[string]interface{}{
						"type": "fess_japanese_tokenizer",
						"mode": "extended",
					},
				},
			},
			"number_of_shards": 1,
		},
		"index.refresh_interval": "1s",
	}
	tests := []struct {
		name string
		key  string
		want interface{}
		ok   bool
	}{
		{name: "nested", key: "index.analysis.tokenizer.ja.mode", want: "extended", ok: true},
		{name: "flat key", key: "index.refresh_interval", want: "1s", ok: true},
		{name: "int value", key: "index.number_of_shards", want: 1, ok: true},
		{name: "missing", key: "index.analysis.filter", want: nil, ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := settings.Get(tt.key)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "fess_japanese_tokenizer", settings.Sub("index.analysis.tokenizer").Sub("ja").GetString("type", ""))
	assert.Empty(t, settings.Sub("index.analysis.missing"))
}

func TestSettings_TypedGetters(t *testing.T) {
	settings := Settings{
		"discard_punctuation": "false",
		"minimum_length":      "5",
		"stoptags":            []interface{}{"助詞", "助動詞"},
		"stopwords":           "a, the ,",
	}
	b, err := settings.GetBool("discard_punctuation", true)
	assert.Nil(t, err)
	assert.False(t, b)

	b, err = settings.GetBool("missing", true)
	assert.Nil(t, err)
	assert.True(t, b)

	i, err := settings.GetInt("minimum_length", 4)
	assert.Nil(t, err)
	assert.Equal(t, 5, i)

	assert.Equal(t, []string{"助詞", "助動詞"}, settings.GetStringSlice("stoptags"))
	assert.Equal(t, []string{"a", "the"}, settings.GetStringSlice("stopwords"))
	assert.Nil(t, settings.GetStringSlice("missing"))
	assert.Equal(t, []string{"discard_punctuation", "minimum_length", "stoptags", "stopwords"}, settings.Keys())

	_, err = Settings{"minimum_length": "four"}.GetInt("minimum_length", 4)
	assert.Error(t, err)
}
