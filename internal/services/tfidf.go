package services

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Vectorizer turns a corpus into TF-IDF rows over a shared vocabulary.
type Vectorizer interface {
	FitTransform(corpus []string) ([][]float64, error)
}

type tfidfVectorizer struct {
	tokenizer Tokenizer
}

func NewTFIDFVectorizer(tokenizer Tokenizer) Vectorizer {
	if tokenizer == nil {
		tokenizer = NewTokenizer()
	}
	return &tfidfVectorizer{tokenizer: tokenizer}
}

// FitTransform implements Vectorizer.
//
// The vocabulary is every term seen in the corpus, in sorted order. Term
// frequency is the raw count, idf is ln((1+n)/(1+df))+1 and each row is
// L2-normalised. A document without terms yields a zero row.
func (v *tfidfVectorizer) FitTransform(corpus []string) ([][]float64, error) {
	counts := make([]map[string]float64, len(corpus))
	df := make(map[string]float64)

	for i, doc := range corpus {
		counts[i] = make(map[string]float64)
		for _, term := range v.tokenizer.Tokenize(doc) {
			counts[i][term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocabulary := make([]string, 0, len(df))
	for term := range df {
		vocabulary = append(vocabulary, term)
	}
	sort.Strings(vocabulary)

	n := float64(len(corpus))
	idf := make([]float64, len(vocabulary))
	for j, term := range vocabulary {
		idf[j] = math.Log((1+n)/(1+df[term])) + 1
	}

	rows := make([][]float64, len(corpus))
	for i := range corpus {
		row := make([]float64, len(vocabulary))
		for j, term := range vocabulary {
			if c, ok := counts[i][term]; ok {
				row[j] = c * idf[j]
			}
		}
		if norm := floats.Norm(row, 2); norm > 0 {
			floats.Scale(1/norm, row)
		}
		rows[i] = row
	}

	return rows, nil
}

// CosineSimilarity returns the cosine of the angle between a and b, or 0 when
// either vector has zero length.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	normA := floats.Norm(a, 2)
	normB := floats.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0
	}

	sim := floats.Dot(a, b) / (normA * normB)
	switch {
	case math.IsNaN(sim):
		return 0
	case sim > 1:
		return 1
	case sim < 0:
		return 0
	}
	return sim
}
