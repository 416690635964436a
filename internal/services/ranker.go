package services

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Ranker scores résumé texts against a job description.
type Ranker interface {
	// Rank returns one score in [0,1] per résumé, in input order.
	Rank(jobDescription string, resumes []string) ([]float64, error)
}

type tfidfRanker struct {
	vectorizer Vectorizer
	log        *zap.Logger
}

func NewRanker(vectorizer Vectorizer, log *zap.Logger) Ranker {
	if vectorizer == nil {
		vectorizer = NewTFIDFVectorizer(nil)
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &tfidfRanker{vectorizer: vectorizer, log: log}
}

// Rank implements Ranker. Scores are relative to the corpus formed by the job
// description and this batch of résumés.
func (r *tfidfRanker) Rank(jobDescription string, resumes []string) ([]float64, error) {
	if len(resumes) == 0 {
		return []float64{}, nil
	}

	start := time.Now()

	corpus := make([]string, 0, len(resumes)+1)
	corpus = append(corpus, jobDescription)
	corpus = append(corpus, resumes...)

	vectors, err := r.vectorizer.FitTransform(corpus)
	if err != nil {
		return nil, fmt.Errorf("failed to vectorize corpus: %w", err)
	}

	jobVector := vectors[0]
	scores := make([]float64, len(resumes))
	for i, vec := range vectors[1:] {
		scores[i] = CosineSimilarity(jobVector, vec)
	}

	observeRanking(len(resumes), time.Since(start))
	r.log.Debug("ranked resumes",
		zap.Int("resumes", len(resumes)),
		zap.Int("vocabulary", len(jobVector)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return scores, nil
}
