package task

import (
	"encoding/json"
	"testing"

	"videofeed/ingest/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoRecordTask_RoundTrip(t *testing.T) {
	video := &domain.Video{Category: "Comedy", Name: "A", VideoURL: "http://x/a.mp4?_t=3", Width: 1280}

	rec := NewVideoRecordTask(video)
	assert.Equal(t, "VideoRecordTask", rec.TaskType())

	data, err := rec.TaskValue()
	require.NoError(t, err)

	var decoded VideoRecordTask
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "http://x/a.mp4?_t=3", decoded.Columns[domain.ColumnVideoURL])
	assert.Equal(t, "Comedy", decoded.Columns[domain.ColumnCategory])
	// JSON numbers decode as float64.
	assert.Equal(t, float64(1280), decoded.Columns[domain.ColumnVideoWidth])
}
