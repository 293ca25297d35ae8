package fessanalysis

import (
	"fmt"
	"strconv"
)

type Document struct {
	Key    string            `json:"key"`
	Fields map[string]string `json:"fields"`
}

type documentEntity struct {
	ID        string            `docstore:"id"`
	DocID     uint32            `docstore:"doc_id"`
	UniqueKey string            `docstore:"unique_key"`
	Fields    map[string]string `docstore:"fields"`
}

type documentKey struct {
	ID    string `docstore:"id"`
	DocID uint32 `docstore:"doc_id"`
}

type tokenEntity struct {
	ID       string          `docstore:"id"`
	Field    string          `docstore:"field"`
	Term     string          `docstore:"term"`
	Postings []postingEntity `docstore:"postings"`
}

type postingEntity struct {
	DocumentID uint32 `docstore:"document_id"`
	Positions  []byte `docstore:"positions"`
}

func documentEntityID(docID uint32) string {
	return "d" + strconv.FormatUint(uint64(docID), 10)
}

func documentKeyID(uniqueKey string) string {
	return "k" + uniqueKey
}

func tokenEntityID(field, term string) string {
	return fmt.Sprintf("t%d:%s:%s", len(field), field, term)
}
