package reviews

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/cognicore/revscope/pkg/revscope/dataset"
)

// MockReplyRate is the share of mock reviews that get a developer reply.
const MockReplyRate = 0.3

var (
	mockTexts = []string{
		"Great app, I use it daily!",
		"Could use some improvements but overall good.",
		"The latest update broke several features.",
		"Love this app, it's very helpful.",
		"Terrible experience, constant crashes.",
		"App works as expected, no complaints.",
		"Useful features but slow performance.",
		"Best app in its category!",
		"Too many ads, considering uninstalling.",
		"The interface is confusing.",
	}
	mockUsers = []string{
		"John Smith", "Emma Wilson", "Michael Brown",
		"Sophia Johnson", "William Davis", "Olivia Miller",
		"James Taylor", "Ava Anderson", "Robert Thomas",
		"Isabella White",
	}
	mockVersions = []string{"1.0.0", "1.1.0", "2.0.0", "2.1.5", "3.0.1"}
)

const mockReply = "Thank you for your feedback! We're working to improve the app."

// Mock generates count reviews for appID with random text, score 1-5 and a
// date within the 90 days before now. A nil rng uses a random source.
// IDs are "review-<appID>-<i>".
func Mock(appID string, count int, rng *rand.Rand, now time.Time) []Review {
	if rng == nil {
		rng = dataset.RandomSource()
	}
	out := make([]Review, 0, count)
	for i := 0; i < count; i++ {
		r := Review{
			ID:       fmt.Sprintf("review-%s-%d", appID, i),
			UserName: mockUsers[rng.IntN(len(mockUsers))],
			Content:  mockTexts[rng.IntN(len(mockTexts))],
			Score:    float64(1 + rng.IntN(5)),
			Version:  mockVersions[rng.IntN(len(mockVersions))],
			At:       now.AddDate(0, 0, -rng.IntN(90)),
		}
		if rng.Float64() < MockReplyRate {
			r.ReplyContent = mockReply
		}
		out = append(out, r)
	}
	return out
}
