package fessanalysis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/future-architect/fessanalysis/nlp"
	"github.com/rs/xid"
	"github.com/shibukawa/compints"
	"golang.org/x/sync/errgroup"
)

type Option struct {
	Name               string
	DocumentURL        string
	Settings           nlp.Settings
	Mapping            map[string]string
	Env                nlp.Environment
	CounterConcurrency int
}

// Index analyzes mapped fields of posted documents and keeps positional postings for phrase matching.
type Index struct {
	ctx      context.Context
	name     string
	analysis *AnalysisService
	mapping  map[string]*Analyzer
	storage  *storage
	lock     sync.Mutex
	close    sync.Once
}

// fieldTokens is field -> term -> positions.
type fieldTokens map[string]map[string][]uint32

func initOpt(opt Option) (Option, error) {
	if opt.Name == "" {
		opt.Name = "index"
	}
	if opt.DocumentURL == "" {
		opt.DocumentURL = os.Getenv("FESS_ANALYSIS_DOCUMENT_URL")
	}
	if opt.DocumentURL == "" {
		opt.DocumentURL = "mem://"
	}
	if opt.CounterConcurrency == 0 {
		opt.CounterConcurrency = 5
	}
	if opt.CounterConcurrency < 0 {
		return opt, errors.New("NewIndex: CounterConcurrency must be positive")
	}
	return opt, nil
}

func NewIndex(ctx context.Context, opt Option) (*Index, error) {
	option, err := initOpt(opt)
	if err != nil {
		return nil, err
	}
	analysis, err := NewAnalysisService(nlp.Index{Name: option.Name, UUID: xid.New().String()}, option.Settings, option.Env)
	if err != nil {
		return nil, err
	}
	mapping := make(map[string]*Analyzer)
	for field, analyzerName := range option.Mapping {
		analyzer, ok := analysis.Analyzer(analyzerName)
		if !ok {
			return nil, fmt.Errorf("analyzer [%s] for field [%s] is not found", analyzerName, field)
		}
		mapping[field] = analyzer
	}
	s, err := openStorage(ctx, option.DocumentURL, option.Name, option.CounterConcurrency)
	if err != nil {
		return nil, err
	}
	result := &Index{
		ctx:      ctx,
		name:     option.Name,
		analysis: analysis,
		mapping:  mapping,
		storage:  s,
	}
	closeOnDone(ctx, result)
	return result, nil
}

// closeOnDone closes c when ctx ends. It reports false for a context that never ends.
func closeOnDone(ctx context.Context, c io.Closer) bool {
	done := ctx.Done()
	if done == nil {
		return false
	}
	go func() {
		<-done
		c.Close()
	}()
	return true
}

// Close closes document store connection.
func (i *Index) Close() (err error) {
	i.close.Do(func() {
		err = i.storage.close()
	})
	return
}

func (i *Index) AnalysisService() *AnalysisService {
	return i.analysis
}

// Analyze runs the named analyzer without touching the index.
func (i *Index) Analyze(analyzerName, text string) ([]*nlp.Token, error) {
	analyzer, ok := i.analysis.Analyzer(analyzerName)
	if !ok {
		return nil, fmt.Errorf("analyzer [%s] is not found", analyzerName)
	}
	return analyzer.Analyze(text), nil
}

func (i *Index) analyzeFields(fields map[string]string) fieldTokens {
	result := make(fieldTokens)
	for field, content := range fields {
		analyzer, ok := i.mapping[field]
		if !ok {
			continue
		}
		terms := make(map[string][]uint32)
		for _, token := range analyzer.Analyze(content) {
			terms[token.Term] = append(terms[token.Term], token.Position)
		}
		result[field] = terms
	}
	return result
}

// PostDocument stores the document under uniqueKey, replacing an existing one. An empty key is generated.
func (i *Index) PostDocument(uniqueKey string, fields map[string]string) (string, error) {
	if uniqueKey == "" {
		uniqueKey = xid.New().String()
	}
	tokens := i.analyzeFields(fields)
	i.lock.Lock()
	defer i.lock.Unlock()
	err := i.postAnalyzedDocument(uniqueKey, fields, tokens)
	if err != nil {
		return "", err
	}
	return uniqueKey, nil
}

// PostDocuments analyzes documents in parallel and stores them in order.
func (i *Index) PostDocuments(ctx context.Context, docs []*Document) ([]string, error) {
	keys := make([]string, len(docs))
	analyzed := make([]fieldTokens, len(docs))
	errGroup, ctx := errgroup.WithContext(ctx)
	for n, doc := range docs {
		n, doc := n, doc
		keys[n] = doc.Key
		if keys[n] == "" {
			keys[n] = xid.New().String()
		}
		errGroup.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			analyzed[n] = i.analyzeFields(doc.Fields)
			return nil
		})
	}
	if err := errGroup.Wait(); err != nil {
		return nil, err
	}
	i.lock.Lock()
	defer i.lock.Unlock()
	for n, doc := range docs {
		err := i.postAnalyzedDocument(keys[n], doc.Fields, analyzed[n])
		if err != nil {
			return keys[:n], fmt.Errorf("fail to register document %s: %w", keys[n], err)
		}
	}
	return keys, nil
}

func (i *Index) postAnalyzedDocument(uniqueKey string, fields map[string]string, tokens fieldTokens) error {
	existingDocKey := documentKey{
		ID: documentKeyID(uniqueKey),
	}
	err := i.storage.get(&existingDocKey)
	var docID uint32
	if err == nil {
		docID = existingDocKey.DocID
		oldDoc := documentEntity{ID: documentEntityID(docID)}
		err = i.storage.get(&oldDoc)
		if err != nil {
			return fmt.Errorf("fail to read document %s: %w", uniqueKey, err)
		}
		err = i.removePostings(docID, i.analyzeFields(oldDoc.Fields))
		if err != nil {
			return err
		}
		err = i.storage.replace(&documentEntity{
			ID:        documentEntityID(docID),
			DocID:     docID,
			UniqueKey: uniqueKey,
			Fields:    fields,
		})
		if err != nil {
			return fmt.Errorf("fail to replace document %s: %w", uniqueKey, err)
		}
	} else if isNotFound(err) {
		docID, err = i.storage.incrementDocID()
		if err != nil {
			return err
		}
		err = i.storage.create(&documentKey{
			ID:    documentKeyID(uniqueKey),
			DocID: docID,
		})
		if err != nil {
			return fmt.Errorf("fail to register document's unique key: %w", err)
		}
		err = i.storage.create(&documentEntity{
			ID:        documentEntityID(docID),
			DocID:     docID,
			UniqueKey: uniqueKey,
			Fields:    fields,
		})
		if err != nil {
			return fmt.Errorf("fail to register document %s: %w", uniqueKey, err)
		}
		err = i.storage.incrementDocCount()
		if err != nil {
			return err
		}
	} else {
		return err
	}
	return i.addPostings(docID, tokens)
}

func sortedKeys(tokens map[string][]uint32) []string {
	keys := make([]string, 0, len(tokens))
	for key := range tokens {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (i *Index) addPostings(docID uint32, tokens fieldTokens) error {
	for field, terms := range tokens {
		for _, term := range sortedKeys(terms) {
			err := i.addDocumentToToken(field, term, docID, terms[term])
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (i *Index) removePostings(docID uint32, tokens fieldTokens) error {
	for field, terms := range tokens {
		for _, term := range sortedKeys(terms) {
			err := i.removeDocumentFromToken(field, term, docID)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (i *Index) addDocumentToToken(field, term string, docID uint32, positions []uint32) error {
	existingToken := tokenEntity{
		ID: tokenEntityID(field, term),
	}
	err := i.storage.get(&existingToken)
	posting := postingEntity{
		DocumentID: docID,
		Positions:  compints.CompressToBytes(positions, true),
	}
	if isNotFound(err) {
		return i.storage.create(&tokenEntity{
			ID:       tokenEntityID(field, term),
			Field:    field,
			Term:     term,
			Postings: []postingEntity{posting},
		})
	} else if err != nil {
		return err
	}
	newToken := tokenEntity{
		ID:       existingToken.ID,
		Field:    field,
		Term:     term,
		Postings: append(existingToken.Postings, posting),
	}
	sort.Slice(newToken.Postings, func(i, j int) bool {
		return newToken.Postings[i].DocumentID < newToken.Postings[j].DocumentID
	})
	err = i.storage.replace(&newToken)
	if err != nil {
		return fmt.Errorf("fail to replace token: '%s': %w", term, err)
	}
	return nil
}

func (i *Index) removeDocumentFromToken(field, term string, docID uint32) error {
	existingToken := tokenEntity{
		ID: tokenEntityID(field, term),
	}
	err := i.storage.get(&existingToken)
	if isNotFound(err) {
		return nil
	} else if err != nil {
		return err
	}
	newPostings := make([]postingEntity, 0, len(existingToken.Postings))
	for _, existingPosting := range existingToken.Postings {
		if existingPosting.DocumentID != docID {
			newPostings = append(newPostings, existingPosting)
		}
	}
	if len(newPostings) == 0 {
		return i.storage.delete(&existingToken)
	}
	existingToken.Postings = newPostings
	return i.storage.replace(&existingToken)
}

func (i *Index) FindDocument(uniqueKey string) (*Document, error) {
	_, doc, err := i.findDocumentByKey(uniqueKey)
	if err != nil {
		return nil, err
	}
	return &Document{
		Key:    doc.UniqueKey,
		Fields: doc.Fields,
	}, nil
}

func (i *Index) findDocumentByKey(uniqueKey string) (*documentKey, *documentEntity, error) {
	existingDocKey := documentKey{
		ID: documentKeyID(uniqueKey),
	}
	err := i.storage.get(&existingDocKey)
	if err != nil {
		return nil, nil, err
	}
	doc := documentEntity{
		ID: documentEntityID(existingDocKey.DocID),
	}
	err = i.storage.get(&doc)
	if err != nil {
		return nil, nil, err
	}
	return &existingDocKey, &doc, nil
}

func (i *Index) RemoveDocument(uniqueKey string) error {
	i.lock.Lock()
	defer i.lock.Unlock()
	docKey, doc, err := i.findDocumentByKey(uniqueKey)
	if err != nil {
		return err
	}
	err = i.removePostings(doc.DocID, i.analyzeFields(doc.Fields))
	if err != nil {
		return err
	}
	errs := &CombinedError{Message: fmt.Sprintf("fail to remove document %s", uniqueKey)}
	errs.appendIfError(i.storage.delete(docKey))
	errs.appendIfError(i.storage.delete(doc))
	errs.appendIfError(i.storage.decrementDocCount())
	return errs.errorOrNil()
}

func (i *Index) DocCount() (int, error) {
	return i.storage.docCount()
}
