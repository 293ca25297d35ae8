package fessanalysis

import (
	"context"
	"fmt"

	"github.com/future-architect/gocloudurls"
	"github.com/shibukawa/cloudcounter"
	"gocloud.dev/docstore"
	_ "gocloud.dev/docstore/memdocstore"
	"gocloud.dev/gcerrors"
)

const (
	documentID    cloudcounter.CounterKey = "document_id"
	documentCount cloudcounter.CounterKey = "document_count"
)

// storage keeps documents, unique keys and postings in one collection keyed by "id".
type storage struct {
	ctx        context.Context
	collection *docstore.Collection
	counter    *cloudcounter.Counter
}

func openStorage(ctx context.Context, documentURL, index string, concurrency int) (*storage, error) {
	url, err := gocloudurls.NormalizeDocStoreURL(documentURL, gocloudurls.Option{
		Collection: index,
		KeyName:    "id",
	})
	if err != nil {
		return nil, fmt.Errorf("can't parse document URL: %w", err)
	}
	collection, err := docstore.OpenCollection(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("can't open collection: %w", err)
	}
	result := &storage{
		ctx:        ctx,
		collection: collection,
	}
	result.counter = cloudcounter.NewCounter(collection, cloudcounter.Option{
		Concurrency: concurrency,
		Prefix:      index + "c",
	})
	err = result.counter.Register(ctx, documentID)
	if err != nil {
		collection.Close()
		return nil, err
	}
	err = result.counter.Register(ctx, documentCount)
	if err != nil {
		collection.Close()
		return nil, err
	}
	return result, nil
}

func isNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound
}

func (s *storage) incrementDocID() (uint32, error) {
	id, err := s.counter.Increment(s.ctx, documentID)
	return uint32(id), err
}

func (s *storage) incrementDocCount() error {
	_, err := s.counter.Increment(s.ctx, documentCount)
	return err
}

func (s *storage) decrementDocCount() error {
	return s.counter.Decrement(s.ctx, documentCount)
}

func (s *storage) docCount() (int, error) {
	return s.counter.Get(s.ctx, documentCount)
}

func (s *storage) create(doc interface{}) error {
	return s.collection.Create(s.ctx, doc)
}

func (s *storage) replace(doc interface{}) error {
	return s.collection.Replace(s.ctx, doc)
}

func (s *storage) get(doc interface{}) error {
	return s.collection.Get(s.ctx, doc)
}

func (s *storage) delete(doc interface{}) error {
	return s.collection.Delete(s.ctx, doc)
}

// batchTokenGet reports the indexes of tokens that could not be read.
func (s *storage) batchTokenGet(ctx context.Context, tokens []*tokenEntity) (map[int]bool, error) {
	actions := s.collection.Actions()
	for i := range tokens {
		actions = actions.Get(tokens[i])
	}
	return actionErrors(actions.Do(ctx))
}

func (s *storage) batchDocGet(ctx context.Context, docs []*documentEntity) (map[int]bool, error) {
	actions := s.collection.Actions()
	for i := range docs {
		actions = actions.Get(docs[i])
	}
	return actionErrors(actions.Do(ctx))
}

func actionErrors(err error) (map[int]bool, error) {
	if err == nil {
		return nil, nil
	}
	if errs, ok := err.(docstore.ActionListError); ok {
		hasErrors := make(map[int]bool)
		for _, actionErr := range errs {
			if !isNotFound(actionErr.Err) {
				return nil, actionErr.Err
			}
			hasErrors[actionErr.Index] = true
		}
		return hasErrors, nil
	}
	return nil, err
}

func (s *storage) close() error {
	return s.collection.Close()
}
