package task

import "videofeed/ingest/internal/domain"

// VideoRecordTask carries one ingested record to downstream consumers.
type VideoRecordTask struct {
	Columns map[string]any `json:"columns"`
}

func NewVideoRecordTask(video *domain.Video) *VideoRecordTask {
	return &VideoRecordTask{Columns: video.ColumnValues()}
}

func (t *VideoRecordTask) TaskType() string {
	return "VideoRecordTask"
}

func (t *VideoRecordTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
