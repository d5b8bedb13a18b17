package quiz

import (
	"github.com/carpick/carpick/internal/screen"
	"github.com/carpick/carpick/internal/screens/summary"
	"github.com/carpick/carpick/internal/session"
)

// newSummaryScreenAdapter creates a summary screen from session data.
func newSummaryScreenAdapter(s *session.Summary) screen.Screen {
	return summary.New(s)
}
