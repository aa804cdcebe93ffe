package ingest

// Pipeline runs documents through normalization and records the cleaned
// text back on the document.
type Pipeline struct {
	normalizer *Normalizer
}

// NewPipeline creates an ingestion pipeline with the given normalizer
func NewPipeline(normalizer *Normalizer) *Pipeline {
	if normalizer == nil {
		normalizer = NewNormalizer(DefaultOptions(), nil)
	}
	return &Pipeline{normalizer: normalizer}
}

// Normalizer returns the normalizer used by the pipeline.
func (p *Pipeline) Normalizer() *Normalizer {
	return p.normalizer
}

// Process normalizes the raw text of one document. The returned document is
// a copy with ProcessedText set.
func (p *Pipeline) Process(doc Document) (Document, ProcessedDocument) {
	processed := p.normalizer.Normalize(doc.RawText)
	doc.ProcessedText = processed.Processed
	return doc, processed
}

// ProcessAll runs Process over a corpus, preserving order.
func (p *Pipeline) ProcessAll(docs []Document) ([]Document, []ProcessedDocument) {
	outDocs := make([]Document, len(docs))
	outProcessed := make([]ProcessedDocument, len(docs))
	for i, d := range docs {
		outDocs[i], outProcessed[i] = p.Process(d)
	}
	return outDocs, outProcessed
}
