package fessanalysis_test

import (
	"context"
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/future-architect/fessanalysis"
	"github.com/future-architect/fessanalysis/nlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const datasetSettings = `{"index":{"analysis":{
	"tokenizer":{"ja_user_dict":{"type":"fess_japanese_tokenizer","mode":"extended","user_dictionary":"userdict_ja.txt"}},
	"analyzer":{
		"ja_analyzer":{"type":"custom","tokenizer":"ja_user_dict","filter":["fess_japanese_stemmer"]},
		"en_analyzer":{"type":"custom","tokenizer":"standard","filter":["lowercase"]}
	}
}}}`

func newDatasetIndex(t *testing.T, env nlp.Environment) *fessanalysis.Index {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	index, err := fessanalysis.NewIndex(ctx, fessanalysis.Option{
		Name:     "dataset",
		Settings: loadSettings(t, datasetSettings),
		Mapping: map[string]string{
			"msg":   "ja_analyzer",
			"title": "en_analyzer",
		},
		Env: env,
	})
	require.Nil(t, err)
	t.Cleanup(func() {
		index.Close()
	})
	return index
}

func TestIndex_JapaneseWithoutKuromoji(t *testing.T) {
	index := newDatasetIndex(t, nlp.Environment{Registry: withoutKuromoji()})

	key, err := index.PostDocument("1", map[string]string{"msg": "東京スカイツリー", "id": "1"})
	require.Nil(t, err)
	assert.Equal(t, "1", key)

	count, err := index.DocCount()
	assert.Nil(t, err)
	assert.Equal(t, 1, count)

	keys, err := index.MatchPhrase("msg", "東京スカイツリー")
	assert.Nil(t, err)
	assert.Empty(t, keys)

	tokens, err := index.Analyze("ja_analyzer", "東京スカイツリー")
	assert.Nil(t, err)
	assert.Len(t, tokens, 0)

	doc, err := index.FindDocument("1")
	require.Nil(t, err)
	assert.Equal(t, "東京スカイツリー", doc.Fields["msg"])
}

func TestIndex_JapaneseWithKuromoji(t *testing.T) {
	dir := t.TempDir()
	err := ioutil.WriteFile(filepath.Join(dir, "userdict_ja.txt"), []byte("東京スカイツリー,東京 スカイツリー,トウキョウ スカイツリー,カスタム名詞\n"), 0644)
	require.Nil(t, err)
	index := newDatasetIndex(t, nlp.Environment{ConfigDir: dir})

	_, err = index.PostDocument("1", map[string]string{"msg": "東京スカイツリー", "id": "1"})
	require.Nil(t, err)
	_, err = index.PostDocument("2", map[string]string{"msg": "大阪城"})
	require.Nil(t, err)

	keys, err := index.MatchPhrase("msg", "東京スカイツリー")
	assert.Nil(t, err)
	assert.Equal(t, []string{"1"}, keys)

	tokens, err := index.Analyze("ja_analyzer", "東京スカイツリー")
	assert.Nil(t, err)
	assert.NotEmpty(t, tokens)

	keys, err = index.MatchPhrase("msg", "名古屋")
	assert.Nil(t, err)
	assert.Empty(t, keys)
}

func TestIndex_ReplaceAndRemove(t *testing.T) {
	index := newDatasetIndex(t, nlp.Environment{Registry: withoutKuromoji()})

	_, err := index.PostDocument("doc", map[string]string{"title": "Hello Big World"})
	require.Nil(t, err)
	keys, err := index.MatchPhrase("title", "big world")
	assert.Nil(t, err)
	assert.Equal(t, []string{"doc"}, keys)

	keys, err = index.MatchPhrase("title", "world big")
	assert.Nil(t, err)
	assert.Empty(t, keys, "order matters")

	_, err = index.PostDocument("doc", map[string]string{"title": "Small World"})
	require.Nil(t, err)
	keys, err = index.MatchPhrase("title", "big world")
	assert.Nil(t, err)
	assert.Empty(t, keys)
	keys, err = index.MatchPhrase("title", "small world")
	assert.Nil(t, err)
	assert.Equal(t, []string{"doc"}, keys)

	count, err := index.DocCount()
	assert.Nil(t, err)
	assert.Equal(t, 1, count)

	err = index.RemoveDocument("doc")
	assert.Nil(t, err)
	keys, err = index.MatchPhrase("title", "world")
	assert.Nil(t, err)
	assert.Empty(t, keys)
	count, err = index.DocCount()
	assert.Nil(t, err)
	assert.Equal(t, 0, count)

	_, err = index.FindDocument("doc")
	assert.Error(t, err)
	assert.Error(t, index.RemoveDocument("doc"))
}

func TestIndex_PostDocuments(t *testing.T) {
	index := newDatasetIndex(t, nlp.Environment{Registry: withoutKuromoji()})

	keys, err := index.PostDocuments(context.Background(), []*fessanalysis.Document{
		{Key: "a", Fields: map[string]string{"title": "red apple"}},
		{Fields: map[string]string{"title": "green apple"}},
		{Key: "c", Fields: map[string]string{"title": "red cherry"}},
	})
	require.Nil(t, err)
	require.Len(t, keys, 3)
	assert.Equal(t, "a", keys[0])
	assert.NotEmpty(t, keys[1])

	found, err := index.MatchPhrase("title", "apple")
	assert.Nil(t, err)
	assert.ElementsMatch(t, []string{"a", keys[1]}, found)

	found, err = index.MatchPhrase("title", "red")
	assert.Nil(t, err)
	assert.ElementsMatch(t, []string{"a", "c"}, found)

	count, err := index.DocCount()
	assert.Nil(t, err)
	assert.Equal(t, 3, count)
}

func TestIndex_Errors(t *testing.T) {
	index := newDatasetIndex(t, nlp.Environment{Registry: withoutKuromoji()})
	_, err := index.MatchPhrase("body", "hello")
	assert.Error(t, err)
	_, err = index.Analyze("missing", "hello")
	assert.Error(t, err)

	_, err = fessanalysis.NewIndex(context.Background(), fessanalysis.Option{
		Settings: loadSettings(t, datasetSettings),
		Mapping:  map[string]string{"msg": "missing_analyzer"},
		Env:      nlp.Environment{Registry: withoutKuromoji()},
	})
	assert.Error(t, err)
}
