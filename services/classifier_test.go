package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	content string
	err     error
	empty   bool
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.empty {
		return &llms.ContentResponse{}, nil
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.content}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return f.content, f.err
}

func newTestClassifier(m llms.Model) *OpenAIClassifier {
	return &OpenAIClassifier{model: m, timeout: time.Second}
}

func TestClassifyParsesLabel(t *testing.T) {
	c := newTestClassifier(&fakeModel{content: `{"label": "Anxiety", "confidence": 0.87}`})

	label, err := c.Classify(context.Background(), "checked the lock again")
	require.NoError(t, err)
	assert.Equal(t, "anxiety", label.Label)
	assert.InDelta(t, 0.87, label.Confidence, 1e-9)
}

func TestClassifyClampsConfidence(t *testing.T) {
	c := newTestClassifier(&fakeModel{content: `{"label": "shame", "confidence": 1.7}`})
	label, err := c.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 1.0, label.Confidence)

	c = newTestClassifier(&fakeModel{content: `{"label": "shame", "confidence": -0.2}`})
	label, err = c.Classify(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, 0.0, label.Confidence)
}

func TestClassifyMalformedResponse(t *testing.T) {
	for _, content := range []string{"not json", `{"label": ""}`, `{"confidence": 0.5}`} {
		c := newTestClassifier(&fakeModel{content: content})
		_, err := c.Classify(context.Background(), "text")
		assert.ErrorIs(t, err, ErrUnavailable, "content %q", content)
	}
}

func TestClassifyEmptyChoices(t *testing.T) {
	c := newTestClassifier(&fakeModel{empty: true})
	_, err := c.Classify(context.Background(), "text")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassifyProviderDown(t *testing.T) {
	c := newTestClassifier(&fakeModel{err: errors.New("dial tcp: connection refused")})
	_, err := c.Classify(context.Background(), "text")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestClassifyRateLimited(t *testing.T) {
	c := newTestClassifier(&fakeModel{err: errors.New("API returned unexpected status code: 429")})
	_, err := c.Classify(context.Background(), "text")
	assert.ErrorIs(t, err, ErrRateLimited)
}
