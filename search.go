package fessanalysis

import (
	"fmt"

	"github.com/future-architect/fessanalysis/nlp"
	"github.com/shibukawa/compints"
)

// MatchPhrase returns the keys of documents whose field holds the analyzed text as a phrase.
// Text that analyzes to no tokens matches nothing.
func (i *Index) MatchPhrase(field, text string) ([]string, error) {
	analyzer, ok := i.mapping[field]
	if !ok {
		return nil, fmt.Errorf("field [%s] is not mapped", field)
	}
	queryTokens := analyzer.Analyze(text)
	if len(queryTokens) == 0 {
		return nil, nil
	}

	termIndex := make(map[string]int)
	var tokens []*tokenEntity
	for _, queryToken := range queryTokens {
		if _, ok := termIndex[queryToken.Term]; ok {
			continue
		}
		termIndex[queryToken.Term] = len(tokens)
		tokens = append(tokens, &tokenEntity{ID: tokenEntityID(field, queryToken.Term)})
	}
	missing, err := i.storage.batchTokenGet(i.ctx, tokens)
	if err != nil {
		return nil, err
	}
	if len(missing) > 0 {
		return nil, nil
	}

	// term index -> doc ID -> positions
	postings := make([]map[uint32][]uint32, len(tokens))
	docIDGroups := make([][]uint32, len(tokens))
	for n, token := range tokens {
		postings[n] = make(map[uint32][]uint32)
		for _, posting := range token.Postings {
			positions, err := compints.DecompressFromBytes(posting.Positions, true)
			if err != nil {
				return nil, fmt.Errorf("Compressed data is broken of position of doc %d of token %s: %w", posting.DocumentID, token.Term, err)
			}
			postings[n][posting.DocumentID] = positions
			docIDGroups[n] = append(docIDGroups[n], posting.DocumentID)
		}
	}

	phrase := phrasePositions(queryTokens, termIndex)
	var docs []*documentEntity
	for _, docID := range intersection(docIDGroups...) {
		if matchPhrase(docID, phrase, postings) {
			docs = append(docs, &documentEntity{ID: documentEntityID(docID)})
		}
	}
	if len(docs) == 0 {
		return nil, nil
	}
	missing, err = i.storage.batchDocGet(i.ctx, docs)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(docs))
	for n, doc := range docs {
		if !missing[n] {
			result = append(result, doc.UniqueKey)
		}
	}
	return result, nil
}

type queryPosition struct {
	term   int
	offset uint32
}

// phrasePositions gives each query token's offset from the first query token.
func phrasePositions(queryTokens []*nlp.Token, termIndex map[string]int) []queryPosition {
	base := queryTokens[0].Position
	result := make([]queryPosition, len(queryTokens))
	for n, token := range queryTokens {
		result[n] = queryPosition{
			term:   termIndex[token.Term],
			offset: token.Position - base,
		}
	}
	return result
}

func matchPhrase(docID uint32, phrase []queryPosition, postings []map[uint32][]uint32) bool {
	for _, start := range postings[phrase[0].term][docID] {
		matched := true
		for _, p := range phrase[1:] {
			if !containsPosition(postings[p.term][docID], start+p.offset) {
				matched = false
				break
			}
		}
		if matched {
			return true
		}
	}
	return false
}

func containsPosition(sorted []uint32, position uint32) bool {
	low, high := 0, len(sorted)
	for low < high {
		mid := (low + high) / 2
		if sorted[mid] < position {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low < len(sorted) && sorted[low] == position
}
