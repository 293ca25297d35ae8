package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/future-architect/fessanalysis"
	"github.com/future-architect/fessanalysis/nlp"
	_ "github.com/future-architect/fessanalysis/nlp/bigram"
	_ "github.com/future-architect/fessanalysis/nlp/english"
	"github.com/future-architect/fessanalysis/nlp/japanese"
	_ "github.com/future-architect/fessanalysis/nlp/kuromoji"
	_ "github.com/future-architect/fessanalysis/nlp/unigram"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gopkg.in/alecthomas/kingpin.v2"

	_ "gocloud.dev/docstore/memdocstore"
	_ "gocloud.dev/docstore/mongodocstore"
)

var logger = logrus.New()

var (
	settingsFile    = kingpin.Flag("settings", "Index settings file (JSON or YAML)").Required().ExistingFile()
	configDir       = kingpin.Flag("config-dir", "Folder to resolve dictionary files").ExistingDir()
	withoutKuromoji = kingpin.Flag("without-kuromoji", "Run as if the Japanese backend was not installed").Bool()

	analyzeCmd   = kingpin.Command("analyze", "Analyze text")
	analyzerName = analyzeCmd.Flag("analyzer", "Analyzer name").Required().String()
	texts        = analyzeCmd.Arg("TEXT", "Text to analyze").Required().Strings()

	indexCmd    = kingpin.Command("index", "Index documents and run a phrase query")
	documentURL = indexCmd.Flag("document-url", "Document store URL. Default value is 'mem://' or FESS_ANALYSIS_DOCUMENT_URL envvar").String()
	mapping     = indexCmd.Flag("mapping", "Field mapping as field=analyzer").Required().StringMap()
	phrase      = indexCmd.Flag("phrase", "Phrase query as field=text").StringMap()
	inputFolder = indexCmd.Arg("INPUT", "Input Folder").Required().ExistingDir()
)

func environment() nlp.Environment {
	env := nlp.Environment{
		ConfigDir: *configDir,
	}
	if env.ConfigDir == "" {
		env.ConfigDir = filepath.Dir(*settingsFile)
	}
	if *withoutKuromoji {
		registry := nlp.DefaultRegistry.Clone()
		registry.UnregisterTokenizer(japanese.KuromojiTokenizerFactory)
		registry.UnregisterTokenFilter(japanese.KuromojiPartOfSpeechFilterFactory)
		registry.UnregisterTokenFilter(japanese.KuromojiStemmerFilterFactory)
		registry.UnregisterTokenFilter(japanese.KuromojiBaseFormFilterFactory)
		registry.UnregisterTokenFilter(japanese.KuromojiReadingFormFilterFactory)
		env.Registry = registry
	}
	return env
}

func loadSettings() (nlp.Settings, error) {
	f, err := os.Open(*settingsFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return fessanalysis.LoadSettings(f)
}

func analyze() error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	service, err := fessanalysis.NewAnalysisService(nlp.Index{Name: "analyze"}, settings, environment())
	if err != nil {
		return err
	}
	analyzer, ok := service.Analyzer(*analyzerName)
	if !ok {
		return fmt.Errorf("analyzer [%s] is not found", *analyzerName)
	}
	tokens := analyzer.Analyze(strings.Join(*texts, " "))
	if len(tokens) == 0 {
		color.Cyan("No Tokens")
	}
	for _, token := range tokens {
		color.Blue("%-4d %s", token.Position, token.Term)
		fmt.Printf("     [%d:%d] %s %s\n", token.Start, token.End, token.Type, token.PartOfSpeech)
	}
	return nil
}

func readDocuments(folder string) ([]*fessanalysis.Document, error) {
	var docs []*fessanalysis.Document
	err := filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		doc, err := decodeDocument(f)
		if err != nil {
			logger.WithError(err).Warnf("parse file error: %s", path)
			return nil
		}
		if doc.Key == "" {
			doc.Key = path
		}
		docs = append(docs, doc)
		return nil
	})
	return docs, err
}

// decodeDocument reads one JSON object. Scalar values become strings and "id" is the key.
func decodeDocument(r io.Reader) (*fessanalysis.Document, error) {
	var values map[string]interface{}
	err := json.NewDecoder(r).Decode(&values)
	if err != nil {
		return nil, err
	}
	fields := make(map[string]string, len(values))
	for name, value := range values {
		str, err := cast.ToStringE(value)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", name, err)
		}
		fields[name] = str
	}
	return &fessanalysis.Document{Key: fields["id"], Fields: fields}, nil
}

func openIndex(ctx context.Context, settings nlp.Settings, env nlp.Environment, url string, fieldMapping map[string]string) (*fessanalysis.Index, error) {
	return fessanalysis.NewIndex(ctx, fessanalysis.Option{
		Name:        "cli",
		DocumentURL: url,
		Settings:    settings,
		Mapping:     fieldMapping,
		Env:         env,
	})
}

func index(ctx context.Context) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	idx, err := openIndex(ctx, settings, environment(), *documentURL, *mapping)
	if err != nil {
		return err
	}
	defer idx.Close()

	docs, err := readDocuments(*inputFolder)
	if err != nil {
		return err
	}
	keys, err := idx.PostDocuments(ctx, docs)
	if err != nil {
		return err
	}
	for _, key := range keys {
		fmt.Printf("  adding %s\n", key)
	}

	for field, text := range *phrase {
		found, err := idx.MatchPhrase(field, text)
		if err != nil {
			return err
		}
		color.Green("%s:\"%s\" -> %d hit(s)", field, text, len(found))
		for _, key := range found {
			color.Cyan("  %s", key)
		}
	}
	return nil
}

func main() {
	ctx := context.Background()

	var err error
	switch kingpin.Parse() {
	case analyzeCmd.FullCommand():
		err = analyze()
	case indexCmd.FullCommand():
		err = index(ctx)
	}
	if err != nil {
		logger.WithError(err).Error("command failed")
		os.Exit(1)
	}
}
