package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		now       time.Time
		wantStart string
		wantEnd   string
	}{
		{time.Date(2024, 4, 1, 0, 5, 0, 0, time.UTC), "01/03/2024", "31/03/2024"},
		{time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC), "01/02/2024", "29/02/2024"},
		{time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC), "01/12/2023", "31/12/2023"},
	}
	for _, tt := range tests {
		p := PreviousMonth(tt.now)
		assert.Equal(t, tt.wantStart, p.Start.String())
		assert.Equal(t, tt.wantEnd, p.End.String())
	}
}
