// Package tfidf weights terms by how distinctive they are to a document
// relative to the rest of the corpus.
package tfidf

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/cognicore/revscope/pkg/revscope/ingest"
)

// TopOverallCap bounds the corpus-wide ranking.
const TopOverallCap = 100

// Doc is one tokenized document.
type Doc struct {
	ID    string
	Terms []string
}

// TermWeight is a term with its TF-IDF weight.
type TermWeight struct {
	Term   string  `json:"term"`
	Weight float64 `json:"weight"`
}

// DocumentTerms holds the ranked terms of one document.
type DocumentTerms struct {
	DocumentID string       `json:"document_id"`
	Terms      []TermWeight `json:"terms"`
}

// Result is the output of Compute.
type Result struct {
	PerDocument []DocumentTerms `json:"per_document"`
	TopOverall  []TermWeight    `json:"top_overall"`
}

// Top returns at most limit entries of the corpus-wide ranking.
// A limit <= 0 returns the full ranking.
func (r Result) Top(limit int) []TermWeight {
	if limit <= 0 || len(r.TopOverall) <= limit {
		return r.TopOverall
	}
	return r.TopOverall[:limit]
}

// Corpus stores document frequencies for terms across a collection.
type Corpus struct {
	docs       []Doc
	vocab      []string // first-seen order
	vocabIndex map[string]int
	docFreq    map[string]int
}

// NewCorpus builds a corpus from tokenized documents. Blank terms are
// dropped. Each term is counted once per document for document frequency.
func NewCorpus(docs []Doc) *Corpus {
	c := &Corpus{
		docs:       make([]Doc, len(docs)),
		vocabIndex: make(map[string]int),
		docFreq:    make(map[string]int),
	}
	for i, d := range docs {
		terms := make([]string, 0, len(d.Terms))
		seen := make(map[string]bool)
		for _, t := range d.Terms {
			t = strings.TrimSpace(t)
			if t == "" {
				continue
			}
			terms = append(terms, t)
			if _, ok := c.vocabIndex[t]; !ok {
				c.vocabIndex[t] = len(c.vocab)
				c.vocab = append(c.vocab, t)
			}
			if !seen[t] {
				seen[t] = true
				c.docFreq[t]++
			}
		}
		id := d.ID
		if id == "" {
			id = fmt.Sprintf("doc-%d", i)
		}
		c.docs[i] = Doc{ID: id, Terms: terms}
	}
	return c
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// Vocabulary returns the distinct terms in first-seen order.
func (c *Corpus) Vocabulary() []string {
	out := make([]string, len(c.vocab))
	copy(out, c.vocab)
	return out
}

// DocFreq returns how many documents contain term.
func (c *Corpus) DocFreq(term string) int {
	return c.docFreq[term]
}

// IDF returns the smoothed inverse document frequency
// ln((N+1)/(df+1)) + 1. Since df <= N the value is always >= 1.
func (c *Corpus) IDF(term string) float64 {
	n := float64(len(c.docs))
	df := float64(c.docFreq[term])
	return math.Log((n+1)/(df+1)) + 1
}

// TermFrequency returns count(term)/len(terms) for every term. The length is
// floored to 1 so an empty document yields an empty map.
func TermFrequency(terms []string) map[string]float64 {
	tf := make(map[string]float64)
	for _, t := range terms {
		tf[t]++
	}
	total := float64(len(terms))
	if total == 0 {
		total = 1
	}
	for t, count := range tf {
		tf[t] = count / total
	}
	return tf
}

// Compute weights every (document, term) pair of the corpus. Only positive
// weights are kept. Per-document lists are sorted by weight descending with
// ties in corpus first-seen order; TopOverall sums each term's weight over
// all documents and keeps the TopOverallCap heaviest.
func Compute(docs []Doc) Result {
	if len(docs) == 0 {
		return Result{PerDocument: []DocumentTerms{}, TopOverall: []TermWeight{}}
	}
	return NewCorpus(docs).Compute()
}

// Compute runs the weighting over the corpus.
func (c *Corpus) Compute() Result {
	res := Result{
		PerDocument: make([]DocumentTerms, 0, len(c.docs)),
		TopOverall:  []TermWeight{},
	}

	idf := make(map[string]float64, len(c.vocab))
	for _, t := range c.vocab {
		idf[t] = c.IDF(t)
	}

	for _, d := range c.docs {
		tf := TermFrequency(d.Terms)
		terms := make([]TermWeight, 0, len(tf))
		for t, f := range tf {
			w := f * idf[t]
			if w > 0 {
				terms = append(terms, TermWeight{Term: t, Weight: w})
			}
		}
		sort.Slice(terms, func(i, j int) bool {
			if terms[i].Weight != terms[j].Weight {
				return terms[i].Weight > terms[j].Weight
			}
			return c.vocabIndex[terms[i].Term] < c.vocabIndex[terms[j].Term]
		})
		res.PerDocument = append(res.PerDocument, DocumentTerms{DocumentID: d.ID, Terms: terms})
	}

	// Sum per term in the order terms are met while walking the ranked lists.
	index := make(map[string]int)
	for _, d := range res.PerDocument {
		for _, tw := range d.Terms {
			if i, ok := index[tw.Term]; ok {
				res.TopOverall[i].Weight += tw.Weight
				continue
			}
			index[tw.Term] = len(res.TopOverall)
			res.TopOverall = append(res.TopOverall, tw)
		}
	}
	sort.SliceStable(res.TopOverall, func(i, j int) bool {
		return res.TopOverall[i].Weight > res.TopOverall[j].Weight
	})
	if len(res.TopOverall) > TopOverallCap {
		res.TopOverall = res.TopOverall[:TopOverallCap]
	}

	return res
}

// FromDocuments tokenizes each document's Text() on whitespace.
func FromDocuments(docs []ingest.Document) []Doc {
	out := make([]Doc, len(docs))
	for i, d := range docs {
		out[i] = Doc{ID: d.ID, Terms: strings.Fields(d.Text())}
	}
	return out
}
